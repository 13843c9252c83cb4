package repository

import (
	"context"
	"learning_dashboard_backend/internal/model"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runStoreSuite 对任意 Store 实现跑同一组行为测试
func runStoreSuite(t *testing.T, newStore func(t *testing.T) Store) {
	ctx := context.Background()

	t.Run("ids are unique across kinds", func(t *testing.T) {
		s := newStore(t)
		u, err := s.CreateUser(ctx, model.User{Username: "ann", DisplayName: "Ann"})
		require.NoError(t, err)
		sub, err := s.CreateSubject(ctx, model.Subject{Name: "Math", Category: model.CategoryCore, Icon: "i", Color: "c"})
		require.NoError(t, err)
		course, err := s.CreateCourse(ctx, model.Course{SubjectID: sub.ID, Title: "Algebra", Difficulty: model.DifficultyBeginner})
		require.NoError(t, err)
		sess, err := s.CreateSession(ctx, model.StudySession{UserID: u.ID, Status: model.SessionActive})
		require.NoError(t, err)

		assert.Equal(t, []uint{1, 2, 3, 4}, []uint{u.ID, sub.ID, course.ID, sess.ID})
	})

	t.Run("duplicate username", func(t *testing.T) {
		s := newStore(t)
		_, err := s.CreateUser(ctx, model.User{Username: "ann", DisplayName: "Ann"})
		require.NoError(t, err)
		_, err = s.CreateUser(ctx, model.User{Username: "ann", DisplayName: "Other"})
		assert.ErrorIs(t, err, ErrDuplicate)
	})

	t.Run("missing records", func(t *testing.T) {
		s := newStore(t)
		_, err := s.GetUser(ctx, 999)
		assert.ErrorIs(t, err, ErrNotFound)
		_, err = s.GetUserByUsername(ctx, "ghost")
		assert.ErrorIs(t, err, ErrNotFound)
		_, err = s.GetCourse(ctx, 999)
		assert.ErrorIs(t, err, ErrNotFound)
		_, err = s.GetActiveSession(ctx, 999)
		assert.ErrorIs(t, err, ErrNotFound)
		_, err = s.UpdateSessionStatus(ctx, 999, model.SessionCompleted, nil)
		assert.ErrorIs(t, err, ErrNotFound)
		_, err = s.UpdateUser(ctx, 999, model.UserUpdate{})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("empty lists are not nil", func(t *testing.T) {
		s := newStore(t)
		courses, err := s.ListCoursesBySubject(ctx, 42)
		require.NoError(t, err)
		assert.NotNil(t, courses)
		assert.Empty(t, courses)

		recs, err := s.ListActiveRecommendations(ctx, 42)
		require.NoError(t, err)
		assert.NotNil(t, recs)
		assert.Empty(t, recs)
	})

	t.Run("update user", func(t *testing.T) {
		s := newStore(t)
		u, err := s.CreateUser(ctx, model.User{Username: "ann", DisplayName: "Ann"})
		require.NoError(t, err)

		streak := 4
		updated, err := s.UpdateUser(ctx, u.ID, model.UserUpdate{LearningStreak: &streak})
		require.NoError(t, err)
		assert.Equal(t, 4, updated.LearningStreak)
		assert.Equal(t, "Ann", updated.DisplayName)

		got, err := s.GetUser(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, 4, got.LearningStreak)
	})

	t.Run("subjects by category", func(t *testing.T) {
		s := newStore(t)
		for _, c := range []model.SubjectCategory{model.CategoryCore, model.CategoryProgramming, model.CategoryCore} {
			_, err := s.CreateSubject(ctx, model.Subject{Name: string(c), Category: c, Icon: "i", Color: "c"})
			require.NoError(t, err)
		}

		core, err := s.ListSubjectsByCategory(ctx, model.CategoryCore)
		require.NoError(t, err)
		assert.Len(t, core, 2)

		langs, err := s.ListSubjectsByCategory(ctx, model.CategoryLanguages)
		require.NoError(t, err)
		assert.Empty(t, langs)

		all, err := s.ListSubjects(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 3)
	})

	t.Run("upsert progress keeps one record per subject", func(t *testing.T) {
		s := newStore(t)
		pct := 40.0
		first, err := s.UpsertProgress(ctx, model.ProgressInput{
			UserID: 1, SubjectID: 2, ProgressPercentage: &pct,
			StrengthLevel: model.StrengthWeak, WeakAreas: []string{"Loops"},
		})
		require.NoError(t, err)

		pct = 60
		second, err := s.UpsertProgress(ctx, model.ProgressInput{
			UserID: 1, SubjectID: 2, ProgressPercentage: &pct, StrengthLevel: model.StrengthAverage,
		})
		require.NoError(t, err)

		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, 60.0, second.ProgressPercentage)
		assert.Equal(t, model.StrengthAverage, second.StrengthLevel)
		assert.Equal(t, []string{"Loops"}, []string(second.WeakAreas))

		list, err := s.ListProgress(ctx, 1)
		require.NoError(t, err)
		assert.Len(t, list, 1)
	})

	t.Run("update progress strength", func(t *testing.T) {
		s := newStore(t)
		_, err := s.UpsertProgress(ctx, model.ProgressInput{UserID: 1, SubjectID: 2, StrengthLevel: model.StrengthWeak})
		require.NoError(t, err)

		require.NoError(t, s.UpdateProgressStrength(ctx, 1, 2, model.StrengthStrong, []string{}, []string{"Graphs"}))
		p, err := s.GetProgressBySubject(ctx, 1, 2)
		require.NoError(t, err)
		assert.Equal(t, model.StrengthStrong, p.StrengthLevel)
		assert.Equal(t, []string{"Graphs"}, []string(p.StrongAreas))

		// 不存在的记录静默忽略
		require.NoError(t, s.UpdateProgressStrength(ctx, 7, 7, model.StrengthStrong, nil, nil))
		_, err = s.GetProgressBySubject(ctx, 7, 7)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("assessments by subject", func(t *testing.T) {
		s := newStore(t)
		score := 80.0
		_, err := s.CreateAssessment(ctx, model.Assessment{UserID: 1, SubjectID: 2, Type: model.AssessmentQuick, Score: &score})
		require.NoError(t, err)
		_, err = s.CreateAssessment(ctx, model.Assessment{UserID: 1, SubjectID: 3, Type: model.AssessmentDiagnostic})
		require.NoError(t, err)

		all, err := s.ListAssessments(ctx, 1)
		require.NoError(t, err)
		assert.Len(t, all, 2)

		bySubject, err := s.ListAssessmentsBySubject(ctx, 1, 2)
		require.NoError(t, err)
		require.Len(t, bySubject, 1)
		require.NotNil(t, bySubject[0].Score)
		assert.Equal(t, 80.0, *bySubject[0].Score)
		assert.False(t, bySubject[0].CompletedAt.IsZero())
	})

	t.Run("session lifecycle", func(t *testing.T) {
		s := newStore(t)
		duration := 30
		sess, err := s.CreateSession(ctx, model.StudySession{UserID: 1, Duration: &duration, Status: model.SessionActive})
		require.NoError(t, err)
		assert.Nil(t, sess.CompletedAt)
		assert.False(t, sess.StartedAt.IsZero())

		active, err := s.GetActiveSession(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, sess.ID, active.ID)

		actual := 28
		done, err := s.UpdateSessionStatus(ctx, sess.ID, model.SessionCompleted, &actual)
		require.NoError(t, err)
		assert.Equal(t, model.SessionCompleted, done.Status)
		require.NotNil(t, done.CompletedAt)
		require.NotNil(t, done.ActualDuration)
		assert.Equal(t, 28, *done.ActualDuration)

		_, err = s.GetActiveSession(ctx, 1)
		assert.ErrorIs(t, err, ErrNotFound)

		paused, err := s.UpdateSessionStatus(ctx, sess.ID, model.SessionPaused, nil)
		require.NoError(t, err)
		assert.Nil(t, paused.CompletedAt)
		assert.Nil(t, paused.ActualDuration)

		sessions, err := s.ListSessions(ctx, 1)
		require.NoError(t, err)
		assert.Len(t, sessions, 1)
	})

	t.Run("session created completed", func(t *testing.T) {
		s := newStore(t)
		sess, err := s.CreateSession(ctx, model.StudySession{UserID: 1, Status: model.SessionCompleted})
		require.NoError(t, err)
		assert.NotNil(t, sess.CompletedAt)
	})

	t.Run("recommendations soft delete", func(t *testing.T) {
		s := newStore(t)
		a, err := s.CreateRecommendation(ctx, model.AiRecommendation{UserID: 1, Type: model.RecommendationFocusArea, Content: "Review loops", Priority: model.PriorityHigh, IsActive: true})
		require.NoError(t, err)
		_, err = s.CreateRecommendation(ctx, model.AiRecommendation{UserID: 1, Type: model.RecommendationContent, Content: "Read chapter 3", Priority: model.PriorityLow, IsActive: true})
		require.NoError(t, err)

		require.NoError(t, s.MarkRecommendationInactive(ctx, a.ID))
		require.NoError(t, s.MarkRecommendationInactive(ctx, 999))

		active, err := s.ListActiveRecommendations(ctx, 1)
		require.NoError(t, err)
		require.Len(t, active, 1)
		assert.Equal(t, "Read chapter 3", active[0].Content)
	})

	t.Run("achievements", func(t *testing.T) {
		s := newStore(t)
		a, err := s.CreateAchievement(ctx, model.Achievement{UserID: 1, Title: "First steps", Icon: "fas fa-star", Color: "amber-500"})
		require.NoError(t, err)
		assert.False(t, a.EarnedAt.IsZero())

		list, err := s.ListAchievements(ctx, 1)
		require.NoError(t, err)
		assert.Len(t, list, 1)
		other, err := s.ListAchievements(ctx, 2)
		require.NoError(t, err)
		assert.Empty(t, other)
	})

	t.Run("counts and snapshot", func(t *testing.T) {
		s := newStore(t)
		_, err := s.CreateUser(ctx, model.User{Username: "ann", DisplayName: "Ann"})
		require.NoError(t, err)
		_, err = s.CreateSubject(ctx, model.Subject{Name: "Math", Category: model.CategoryCore, Icon: "i", Color: "c"})
		require.NoError(t, err)

		counts, err := s.Counts(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, counts[KindUser])
		assert.Equal(t, 1, counts[KindSubject])
		assert.Equal(t, 0, counts[KindCourse])
		assert.Len(t, counts, len(Kinds))

		snap, err := s.Snapshot(ctx)
		require.NoError(t, err)
		assert.Equal(t, uint(3), snap.NextID)
		assert.Len(t, snap.Users, 1)
		assert.Len(t, snap.Subjects, 1)
		assert.Empty(t, snap.Courses)
	})
}

func TestMemoryStore(t *testing.T) {
	runStoreSuite(t, func(t *testing.T) Store { return NewMemoryStore() })
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	_, err := s.UpsertProgress(ctx, model.ProgressInput{UserID: 1, SubjectID: 2, StrengthLevel: model.StrengthWeak, WeakAreas: []string{"Loops"}})
	require.NoError(t, err)

	p, err := s.GetProgressBySubject(ctx, 1, 2)
	require.NoError(t, err)
	p.WeakAreas[0] = "mutated"

	again, err := s.GetProgressBySubject(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, "Loops", again.WeakAreas[0])
}

func TestMemoryStoreUpsertRefreshesLastAccessed(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	s := NewMemoryStore(WithClock(func() time.Time { return now }))

	first, err := s.UpsertProgress(ctx, model.ProgressInput{UserID: 1, SubjectID: 2, StrengthLevel: model.StrengthWeak})
	require.NoError(t, err)

	now = now.Add(time.Hour)
	second, err := s.UpsertProgress(ctx, model.ProgressInput{UserID: 1, SubjectID: 2, StrengthLevel: model.StrengthStrong})
	require.NoError(t, err)

	assert.True(t, second.LastAccessedAt.After(first.LastAccessedAt))
}

func TestMemoryStoreConcurrentCreates(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	const n = 50
	ids := make(chan uint, n*2)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sub, err := s.CreateSubject(ctx, model.Subject{Name: "s", Category: model.CategoryCore})
			if err == nil {
				ids <- sub.ID
			}
			a, err := s.CreateAchievement(ctx, model.Achievement{UserID: 1, Title: "a"})
			if err == nil {
				ids <- a.ID
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[uint]bool)
	for id := range ids {
		assert.False(t, seen[id], "id %d allocated twice", id)
		seen[id] = true
	}
	assert.Len(t, seen, n*2)
}
