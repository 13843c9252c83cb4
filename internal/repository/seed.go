package repository

import (
	"context"
	"fmt"
	"learning_dashboard_backend/internal/model"
	"os"

	"gopkg.in/yaml.v3"
)

// SeedData 启动时写入的初始数据；进度按学科名称关联
type SeedData struct {
	Users    []SeedUser     `yaml:"users"`
	Subjects []SeedSubject  `yaml:"subjects"`
	Progress []SeedProgress `yaml:"progress"`
}

type SeedUser struct {
	Username        string  `yaml:"username"`
	DisplayName     string  `yaml:"display_name"`
	Email           string  `yaml:"email"`
	LearningStreak  int     `yaml:"learning_streak"`
	TotalStudyHours float64 `yaml:"total_study_hours"`
	OverallProgress float64 `yaml:"overall_progress"`
}

type SeedSubject struct {
	Name        string `yaml:"name"`
	Category    string `yaml:"category"`
	Icon        string `yaml:"icon"`
	Color       string `yaml:"color"`
	Description string `yaml:"description"`
}

type SeedProgress struct {
	Username           string   `yaml:"username"`
	Subject            string   `yaml:"subject"`
	ProgressPercentage float64  `yaml:"progress_percentage"`
	StrengthLevel      string   `yaml:"strength_level"`
	TimeSpent          float64  `yaml:"time_spent"`
	WeakAreas          []string `yaml:"weak_areas"`
	StrongAreas        []string `yaml:"strong_areas"`
}

// DefaultSeed 默认演示数据：用户 loki 与九门学科
func DefaultSeed() SeedData {
	return SeedData{
		Users: []SeedUser{{
			Username:        "loki",
			DisplayName:     "Loki",
			Email:           "loki@learning.com",
			LearningStreak:  7,
			TotalStudyHours: 45.5,
			OverallProgress: 73,
		}},
		Subjects: []SeedSubject{
			{Name: "Mathematics", Category: "core", Icon: "fas fa-calculator", Color: "blue-500", Description: "Advanced mathematical concepts"},
			{Name: "Science", Category: "core", Icon: "fas fa-atom", Color: "green-500", Description: "Scientific principles and discoveries"},
			{Name: "History", Category: "core", Icon: "fas fa-landmark", Color: "amber-500", Description: "World history and civilizations"},
			{Name: "Literature", Category: "core", Icon: "fas fa-book-open", Color: "purple-500", Description: "Classic and modern literature"},
			{Name: "Python", Category: "programming", Icon: "fab fa-python", Color: "blue-600", Description: "Python programming language"},
			{Name: "JavaScript", Category: "programming", Icon: "fab fa-js-square", Color: "yellow-500", Description: "JavaScript development"},
			{Name: "React", Category: "programming", Icon: "fab fa-react", Color: "cyan-500", Description: "React framework"},
			{Name: "Logical Reasoning", Category: "aptitude", Icon: "fas fa-puzzle-piece", Color: "indigo-500", Description: "Logic and reasoning skills"},
			{Name: "Quantitative Aptitude", Category: "aptitude", Icon: "fas fa-chart-line", Color: "green-600", Description: "Mathematical problem solving"},
		},
		Progress: []SeedProgress{
			{Username: "loki", Subject: "Mathematics", ProgressPercentage: 85, StrengthLevel: "strong", TimeSpent: 12.5, StrongAreas: []string{"Calculus", "Algebra"}},
			{Username: "loki", Subject: "Science", ProgressPercentage: 72, StrengthLevel: "average", TimeSpent: 8.3, WeakAreas: []string{"Chemistry"}, StrongAreas: []string{"Physics"}},
			{Username: "loki", Subject: "History", ProgressPercentage: 45, StrengthLevel: "weak", TimeSpent: 3.2, WeakAreas: []string{"World War II", "Ancient History"}},
			{Username: "loki", Subject: "Literature", ProgressPercentage: 78, StrengthLevel: "strong", TimeSpent: 6.7, StrongAreas: []string{"Poetry", "Analysis"}},
			{Username: "loki", Subject: "Python", ProgressPercentage: 92, StrengthLevel: "strong", TimeSpent: 15.2, StrongAreas: []string{"Data Structures", "OOP"}},
			{Username: "loki", Subject: "JavaScript", ProgressPercentage: 68, StrengthLevel: "average", TimeSpent: 9.1, WeakAreas: []string{"Async/Await"}, StrongAreas: []string{"ES6", "DOM"}},
			{Username: "loki", Subject: "React", ProgressPercentage: 34, StrengthLevel: "weak", TimeSpent: 4.5, WeakAreas: []string{"Component Lifecycle", "State Management"}},
			{Username: "loki", Subject: "Logical Reasoning", ProgressPercentage: 81, StrengthLevel: "strong", TimeSpent: 7.8, StrongAreas: []string{"Pattern Recognition"}},
			{Username: "loki", Subject: "Quantitative Aptitude", ProgressPercentage: 76, StrengthLevel: "strong", TimeSpent: 8.9, StrongAreas: []string{"Statistics"}},
		},
	}
}

func LoadSeedFile(path string) (SeedData, error) {
	var data SeedData
	raw, err := os.ReadFile(path)
	if err != nil {
		return data, fmt.Errorf("read seed file: %w", err)
	}
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return data, fmt.Errorf("parse seed file: %w", err)
	}
	return data, nil
}

// Seed 通过普通的创建操作写入初始数据，id 由全局计数器分配。
// 存储中已有用户时直接跳过，返回 false。
func Seed(ctx context.Context, store Store, data SeedData) (bool, error) {
	counts, err := store.Counts(ctx)
	if err != nil {
		return false, err
	}
	if counts[KindUser] > 0 {
		return false, nil
	}

	users := make(map[string]uint, len(data.Users))
	for _, su := range data.Users {
		u := model.User{
			Username:        su.Username,
			DisplayName:     su.DisplayName,
			LearningStreak:  su.LearningStreak,
			TotalStudyHours: su.TotalStudyHours,
			OverallProgress: su.OverallProgress,
		}
		if su.Email != "" {
			email := su.Email
			u.Email = &email
		}
		created, err := store.CreateUser(ctx, u)
		if err != nil {
			return false, fmt.Errorf("seed user %q: %w", su.Username, err)
		}
		users[su.Username] = created.ID
	}

	subjects := make(map[string]uint, len(data.Subjects))
	for _, ss := range data.Subjects {
		category := model.SubjectCategory(ss.Category)
		if !category.Valid() {
			return false, fmt.Errorf("seed subject %q: invalid category %q", ss.Name, ss.Category)
		}
		sub := model.Subject{
			Name:     ss.Name,
			Category: category,
			Icon:     ss.Icon,
			Color:    ss.Color,
		}
		if ss.Description != "" {
			desc := ss.Description
			sub.Description = &desc
		}
		created, err := store.CreateSubject(ctx, sub)
		if err != nil {
			return false, fmt.Errorf("seed subject %q: %w", ss.Name, err)
		}
		subjects[ss.Name] = created.ID
	}

	for _, sp := range data.Progress {
		userID, ok := users[sp.Username]
		if !ok {
			return false, fmt.Errorf("seed progress: unknown user %q", sp.Username)
		}
		subjectID, ok := subjects[sp.Subject]
		if !ok {
			return false, fmt.Errorf("seed progress: unknown subject %q", sp.Subject)
		}
		level := model.StrengthLevel(sp.StrengthLevel)
		if !level.Valid() {
			return false, fmt.Errorf("seed progress %s/%s: invalid strength level %q", sp.Username, sp.Subject, sp.StrengthLevel)
		}

		pct, spent := sp.ProgressPercentage, sp.TimeSpent
		in := model.ProgressInput{
			UserID:             userID,
			SubjectID:          subjectID,
			ProgressPercentage: &pct,
			StrengthLevel:      level,
			TimeSpent:          &spent,
			WeakAreas:          nonNil(sp.WeakAreas),
			StrongAreas:        nonNil(sp.StrongAreas),
		}
		if _, err := store.UpsertProgress(ctx, in); err != nil {
			return false, fmt.Errorf("seed progress %s/%s: %w", sp.Username, sp.Subject, err)
		}
	}
	return true, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
