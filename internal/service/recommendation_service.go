package service

import (
	"context"
	"learning_dashboard_backend/internal/apperr"
	"learning_dashboard_backend/internal/model"
	"learning_dashboard_backend/internal/repository"
)

type RecommendationService struct {
	RecommendationRepo repository.RecommendationRepository
}

func NewRecommendationService(recommendationRepo repository.RecommendationRepository) *RecommendationService {
	return &RecommendationService{RecommendationRepo: recommendationRepo}
}

type RecommendationRequest struct {
	UserID   uint   `json:"userId" binding:"required"`
	Type     string `json:"type" binding:"required,oneof=study_plan content focus_area"`
	Content  string `json:"content" binding:"required"`
	Priority string `json:"priority" binding:"required,oneof=high medium low"`
	IsActive *bool  `json:"isActive"`
}

// ListActive 只返回未失效的建议
func (s *RecommendationService) ListActive(ctx context.Context, userID uint) ([]model.AiRecommendation, error) {
	return s.RecommendationRepo.ListActiveRecommendations(ctx, userID)
}

func (s *RecommendationService) Create(ctx context.Context, req RecommendationRequest) (*model.AiRecommendation, error) {
	typ := model.RecommendationType(req.Type)
	if !typ.Valid() {
		return nil, apperr.Validationf("invalid recommendation type %q", req.Type)
	}
	priority := model.Priority(req.Priority)
	if !priority.Valid() {
		return nil, apperr.Validationf("invalid priority %q", req.Priority)
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	return s.RecommendationRepo.CreateRecommendation(ctx, model.AiRecommendation{
		UserID:   req.UserID,
		Type:     typ,
		Content:  req.Content,
		Priority: priority,
		IsActive: active,
	})
}

func (s *RecommendationService) Deactivate(ctx context.Context, id uint) error {
	return s.RecommendationRepo.MarkRecommendationInactive(ctx, id)
}
