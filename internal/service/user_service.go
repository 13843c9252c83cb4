package service

import (
	"context"
	"errors"
	"learning_dashboard_backend/internal/apperr"
	"learning_dashboard_backend/internal/model"
	"learning_dashboard_backend/internal/repository"
	"strings"
)

type UserService struct {
	UserRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{UserRepo: userRepo}
}

type CreateUserRequest struct {
	Username        string  `json:"username" binding:"required,max=100"`
	DisplayName     string  `json:"displayName" binding:"required,max=100"`
	Email           *string `json:"email" binding:"omitempty,email"`
	LearningStreak  int     `json:"learningStreak" binding:"min=0"`
	TotalStudyHours float64 `json:"totalStudyHours" binding:"min=0"`
	OverallProgress float64 `json:"overallProgress" binding:"min=0,max=100"`
}

func (s *UserService) GetUser(ctx context.Context, id uint) (*model.User, error) {
	user, err := s.UserRepo.GetUser(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.NotFoundf("User not found")
	}
	return user, err
}

func (s *UserService) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	user, err := s.UserRepo.GetUserByUsername(ctx, username)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.NotFoundf("User not found")
	}
	return user, err
}

func (s *UserService) CreateUser(ctx context.Context, req CreateUserRequest) (*model.User, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return nil, apperr.Validationf("username is required")
	}

	user, err := s.UserRepo.CreateUser(ctx, model.User{
		Username:        username,
		DisplayName:     req.DisplayName,
		Email:           req.Email,
		LearningStreak:  req.LearningStreak,
		TotalStudyHours: req.TotalStudyHours,
		OverallProgress: req.OverallProgress,
	})
	if errors.Is(err, repository.ErrDuplicate) {
		return nil, apperr.Validationf("username %q is already taken", username)
	}
	return user, err
}

func (s *UserService) UpdateUser(ctx context.Context, id uint, upd model.UserUpdate) (*model.User, error) {
	user, err := s.UserRepo.UpdateUser(ctx, id, upd)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.NotFoundf("User not found")
	}
	return user, err
}
