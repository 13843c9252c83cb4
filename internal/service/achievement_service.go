package service

import (
	"context"
	"learning_dashboard_backend/internal/model"
	"learning_dashboard_backend/internal/repository"
)

type AchievementService struct {
	AchievementRepo repository.AchievementRepository
}

func NewAchievementService(achievementRepo repository.AchievementRepository) *AchievementService {
	return &AchievementService{AchievementRepo: achievementRepo}
}

type AchievementRequest struct {
	UserID      uint    `json:"userId" binding:"required"`
	Title       string  `json:"title" binding:"required,max=200"`
	Description *string `json:"description"`
	Icon        string  `json:"icon" binding:"required"`
	Color       string  `json:"color" binding:"required"`
}

func (s *AchievementService) GetUserAchievements(ctx context.Context, userID uint) ([]model.Achievement, error) {
	return s.AchievementRepo.ListAchievements(ctx, userID)
}

func (s *AchievementService) Award(ctx context.Context, req AchievementRequest) (*model.Achievement, error) {
	return s.AchievementRepo.CreateAchievement(ctx, model.Achievement{
		UserID:      req.UserID,
		Title:       req.Title,
		Description: req.Description,
		Icon:        req.Icon,
		Color:       req.Color,
	})
}
