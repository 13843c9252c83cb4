package repository

import (
	"context"
	"learning_dashboard_backend/internal/model"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func subjectFixture(name string) model.Subject {
	return model.Subject{Name: name, Category: model.CategoryCore, Icon: "fas fa-book", Color: "blue-500"}
}

func TestSeedDefault(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	seeded, err := Seed(ctx, s, DefaultSeed())
	require.NoError(t, err)
	assert.True(t, seeded)

	loki, err := s.GetUserByUsername(ctx, "loki")
	require.NoError(t, err)
	assert.Equal(t, uint(1), loki.ID)
	assert.Equal(t, 7, loki.LearningStreak)
	assert.Equal(t, 73.0, loki.OverallProgress)
	require.NotNil(t, loki.Email)
	assert.Equal(t, "loki@learning.com", *loki.Email)

	subjects, err := s.ListSubjects(ctx)
	require.NoError(t, err)
	require.Len(t, subjects, 9)
	assert.Equal(t, uint(2), subjects[0].ID)
	assert.Equal(t, "Mathematics", subjects[0].Name)
	assert.Equal(t, uint(10), subjects[8].ID)

	progress, err := s.ListProgress(ctx, loki.ID)
	require.NoError(t, err)
	require.Len(t, progress, 9)
	assert.Equal(t, uint(11), progress[0].ID)
	assert.Equal(t, subjects[0].ID, progress[0].SubjectID)
	assert.Equal(t, []string{"Calculus", "Algebra"}, []string(progress[0].StrongAreas))
	assert.NotNil(t, progress[0].WeakAreas)

	snap, err := s.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint(20), snap.NextID)
}

func TestSeedSkipsPopulatedStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	_, err := s.CreateUser(ctx, model.User{Username: "ann", DisplayName: "Ann"})
	require.NoError(t, err)

	seeded, err := Seed(ctx, s, DefaultSeed())
	require.NoError(t, err)
	assert.False(t, seeded)

	subjects, err := s.ListSubjects(ctx)
	require.NoError(t, err)
	assert.Empty(t, subjects)
}

func TestSeedRejectsUnknownSubject(t *testing.T) {
	data := SeedData{
		Users:    []SeedUser{{Username: "ann", DisplayName: "Ann"}},
		Progress: []SeedProgress{{Username: "ann", Subject: "Nope", StrengthLevel: "weak"}},
	}
	_, err := Seed(context.Background(), NewMemoryStore(), data)
	assert.ErrorContains(t, err, "unknown subject")
}

func TestLoadSeedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	content := `
users:
  - username: ann
    display_name: Ann
    learning_streak: 3
subjects:
  - name: Spanish
    category: languages
    icon: fas fa-language
    color: red-500
progress:
  - username: ann
    subject: Spanish
    progress_percentage: 20
    strength_level: weak
    weak_areas: [Subjunctive]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	data, err := LoadSeedFile(path)
	require.NoError(t, err)
	require.Len(t, data.Users, 1)
	assert.Equal(t, 3, data.Users[0].LearningStreak)

	ctx := context.Background()
	s := NewMemoryStore()
	_, err = Seed(ctx, s, data)
	require.NoError(t, err)

	langs, err := s.ListSubjectsByCategory(ctx, model.CategoryLanguages)
	require.NoError(t, err)
	require.Len(t, langs, 1)

	p, err := s.GetProgressBySubject(ctx, 1, langs[0].ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Subjunctive"}, []string(p.WeakAreas))
}

func TestLoadSeedFileMissing(t *testing.T) {
	_, err := LoadSeedFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
