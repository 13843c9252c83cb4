package service

import (
	"context"
	"errors"
	"learning_dashboard_backend/internal/config"
	"learning_dashboard_backend/internal/model"
	"learning_dashboard_backend/internal/repository"
	"learning_dashboard_backend/pkg/logger"
	"math"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"
)

type DashboardService struct {
	UserRepo     repository.UserRepository
	ProgressRepo repository.ProgressRepository
	SessionRepo  repository.SessionRepository

	mu       sync.RWMutex
	settings config.DashboardConfig
	now      func() time.Time
}

func NewDashboardService(
	userRepo repository.UserRepository,
	progressRepo repository.ProgressRepository,
	sessionRepo repository.SessionRepository,
	settings config.DashboardConfig,
) *DashboardService {
	return &DashboardService{
		UserRepo:     userRepo,
		ProgressRepo: progressRepo,
		SessionRepo:  sessionRepo,
		settings:     settings,
		now:          time.Now,
	}
}

// UpdateSettings 配置热更新时调用
func (s *DashboardService) UpdateSettings(settings config.DashboardConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = settings
}

func (s *DashboardService) currentSettings() config.DashboardConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// GetDashboardStats 每次调用都重新计算；未知用户返回全零统计而不是报错
func (s *DashboardService) GetDashboardStats(ctx context.Context, userID uint) (*model.DashboardStats, error) {
	stats := &model.DashboardStats{}

	user, err := s.UserRepo.GetUser(ctx, userID)
	switch {
	case err == nil:
		stats.LearningStreak = user.LearningStreak
		stats.TotalStudyHours = user.TotalStudyHours
		stats.OverallProgress = user.OverallProgress
	case errors.Is(err, repository.ErrNotFound):
		// 保持零值
	default:
		return nil, err
	}

	progress, err := s.ProgressRepo.ListProgress(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, p := range progress {
		switch p.StrengthLevel {
		case model.StrengthStrong:
			stats.StrengthVsWeakness.StrongAreas++
		case model.StrengthWeak:
			stats.StrengthVsWeakness.WeakAreas++
		}
	}
	stats.WeakAreas = stats.StrengthVsWeakness.WeakAreas

	settings := s.currentSettings()
	if settings.HoursMode == config.HoursModeDerived {
		weekly, today, err := s.deriveHours(ctx, userID, settings)
		if err != nil {
			return nil, err
		}
		stats.WeeklyHours = weekly
		stats.TodayHours = today
	} else {
		stats.WeeklyHours = slices.Clone(settings.PlaceholderWeeklyHours)
		stats.TodayHours = settings.PlaceholderTodayHours
	}
	if stats.WeeklyHours == nil {
		stats.WeeklyHours = make([]float64, 7)
	}

	return stats, nil
}

// deriveHours 按自然日汇总最近 7 天已完成会话的时长，最后一个元素是今天。
// 今日时长另外加上今天开始、仍在进行中的会话已经过去的时间。
func (s *DashboardService) deriveHours(ctx context.Context, userID uint, settings config.DashboardConfig) ([]float64, float64, error) {
	sessions, err := s.SessionRepo.ListSessions(ctx, userID)
	if err != nil {
		return nil, 0, err
	}

	loc, err := settings.Location()
	if err != nil {
		logger.Log.Warn("Invalid dashboard timezone, falling back to local", zap.String("timezone", settings.Timezone), zap.Error(err))
		loc = time.Local
	}

	now := s.now().In(loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	start := today.AddDate(0, 0, -6)

	weekly := make([]float64, 7)
	var activeToday float64
	for _, session := range sessions {
		switch session.Status {
		case model.SessionCompleted:
			if session.CompletedAt == nil {
				continue
			}
			at := session.CompletedAt.In(loc)
			if at.Before(start) || !at.Before(today.AddDate(0, 0, 1)) {
				continue
			}
			for i := 0; i < 7; i++ {
				if at.Before(start.AddDate(0, 0, i+1)) {
					weekly[i] += float64(session.Minutes()) / 60
					break
				}
			}
		case model.SessionActive:
			started := session.StartedAt.In(loc)
			if !started.Before(today) && started.Before(now) {
				activeToday += now.Sub(started).Hours()
			}
		}
	}

	for i := range weekly {
		weekly[i] = roundHours(weekly[i])
	}
	return weekly, roundHours(weekly[6] + activeToday), nil
}

func roundHours(h float64) float64 {
	return math.Round(h*100) / 100
}
