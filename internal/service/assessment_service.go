package service

import (
	"context"
	"learning_dashboard_backend/internal/apperr"
	"learning_dashboard_backend/internal/model"
	"learning_dashboard_backend/internal/repository"

	"gorm.io/datatypes"
)

type AssessmentService struct {
	AssessmentRepo repository.AssessmentRepository
}

func NewAssessmentService(assessmentRepo repository.AssessmentRepository) *AssessmentService {
	return &AssessmentService{AssessmentRepo: assessmentRepo}
}

type AssessmentRequest struct {
	UserID              uint           `json:"userId" binding:"required"`
	SubjectID           uint           `json:"subjectId" binding:"required"`
	Type                string         `json:"type" binding:"required,oneof=quick comprehensive diagnostic"`
	Questions           datatypes.JSON `json:"questions" binding:"required" swaggertype:"array,object"`
	Answers             datatypes.JSON `json:"answers" swaggertype:"array,object"`
	Score               *float64       `json:"score" binding:"omitempty,min=0"`
	WeakAreasIdentified []string       `json:"weakAreasIdentified"`
	Recommendations     *string        `json:"recommendations"`
}

// ListAssessments subjectID 为 0 时不过滤学科
func (s *AssessmentService) ListAssessments(ctx context.Context, userID, subjectID uint) ([]model.Assessment, error) {
	if subjectID == 0 {
		return s.AssessmentRepo.ListAssessments(ctx, userID)
	}
	return s.AssessmentRepo.ListAssessmentsBySubject(ctx, userID, subjectID)
}

func (s *AssessmentService) CreateAssessment(ctx context.Context, req AssessmentRequest) (*model.Assessment, error) {
	typ := model.AssessmentType(req.Type)
	if !typ.Valid() {
		return nil, apperr.Validationf("invalid assessment type %q", req.Type)
	}
	return s.AssessmentRepo.CreateAssessment(ctx, model.Assessment{
		UserID:              req.UserID,
		SubjectID:           req.SubjectID,
		Type:                typ,
		Questions:           req.Questions,
		Answers:             req.Answers,
		Score:               req.Score,
		WeakAreasIdentified: req.WeakAreasIdentified,
		Recommendations:     req.Recommendations,
	})
}
