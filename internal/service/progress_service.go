package service

import (
	"context"
	"errors"
	"learning_dashboard_backend/internal/apperr"
	"learning_dashboard_backend/internal/model"
	"learning_dashboard_backend/internal/repository"
)

type ProgressService struct {
	ProgressRepo repository.ProgressRepository
}

func NewProgressService(progressRepo repository.ProgressRepository) *ProgressService {
	return &ProgressService{ProgressRepo: progressRepo}
}

type StrengthRequest struct {
	StrengthLevel string   `json:"strengthLevel" binding:"required,oneof=strong average weak"`
	WeakAreas     []string `json:"weakAreas"`
	StrongAreas   []string `json:"strongAreas"`
}

func (s *ProgressService) ListProgress(ctx context.Context, userID uint) ([]model.UserProgress, error) {
	return s.ProgressRepo.ListProgress(ctx, userID)
}

// GetProgressBySubject 记录不存在时返回 (nil, nil)，由接口层输出 null
func (s *ProgressService) GetProgressBySubject(ctx context.Context, userID, subjectID uint) (*model.UserProgress, error) {
	p, err := s.ProgressRepo.GetProgressBySubject(ctx, userID, subjectID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	return p, err
}

func (s *ProgressService) Upsert(ctx context.Context, in model.ProgressInput) (*model.UserProgress, error) {
	if !in.StrengthLevel.Valid() {
		return nil, apperr.Validationf("invalid strengthLevel %q", in.StrengthLevel)
	}
	if in.ProgressPercentage != nil && (*in.ProgressPercentage < 0 || *in.ProgressPercentage > 100) {
		return nil, apperr.Validationf("progressPercentage must be between 0 and 100")
	}
	return s.ProgressRepo.UpsertProgress(ctx, in)
}

func (s *ProgressService) UpdateStrength(ctx context.Context, userID, subjectID uint, req StrengthRequest) error {
	level := model.StrengthLevel(req.StrengthLevel)
	if !level.Valid() {
		return apperr.Validationf("invalid strengthLevel %q", req.StrengthLevel)
	}
	weak, strong := req.WeakAreas, req.StrongAreas
	if weak == nil {
		weak = []string{}
	}
	if strong == nil {
		strong = []string{}
	}
	return s.ProgressRepo.UpdateProgressStrength(ctx, userID, subjectID, level, weak, strong)
}
