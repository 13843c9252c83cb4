package service

import (
	"context"
	"errors"
	"learning_dashboard_backend/internal/apperr"
	"learning_dashboard_backend/internal/model"
	"learning_dashboard_backend/internal/repository"

	"gorm.io/datatypes"
)

// CatalogService 学科与课程目录
type CatalogService struct {
	SubjectRepo repository.SubjectRepository
	CourseRepo  repository.CourseRepository
}

func NewCatalogService(subjectRepo repository.SubjectRepository, courseRepo repository.CourseRepository) *CatalogService {
	return &CatalogService{SubjectRepo: subjectRepo, CourseRepo: courseRepo}
}

type SubjectRequest struct {
	Name        string  `json:"name" binding:"required,max=100"`
	Category    string  `json:"category" binding:"required,oneof=core programming aptitude languages"`
	Icon        string  `json:"icon" binding:"required"`
	Color       string  `json:"color" binding:"required"`
	Description *string `json:"description"`
}

type CourseRequest struct {
	SubjectID      uint           `json:"subjectId" binding:"required"`
	Title          string         `json:"title" binding:"required,max=200"`
	Description    *string        `json:"description"`
	Difficulty     string         `json:"difficulty" binding:"required,oneof=beginner intermediate advanced"`
	EstimatedHours int            `json:"estimatedHours" binding:"min=0"`
	Content        datatypes.JSON `json:"content" swaggertype:"object"`
}

// ListSubjects category 为空时返回全部
func (s *CatalogService) ListSubjects(ctx context.Context, category string) ([]model.Subject, error) {
	if category == "" {
		return s.SubjectRepo.ListSubjects(ctx)
	}
	return s.SubjectRepo.ListSubjectsByCategory(ctx, model.SubjectCategory(category))
}

func (s *CatalogService) CreateSubject(ctx context.Context, req SubjectRequest) (*model.Subject, error) {
	category := model.SubjectCategory(req.Category)
	if !category.Valid() {
		return nil, apperr.Validationf("invalid category %q", req.Category)
	}
	return s.SubjectRepo.CreateSubject(ctx, model.Subject{
		Name:        req.Name,
		Category:    category,
		Icon:        req.Icon,
		Color:       req.Color,
		Description: req.Description,
	})
}

func (s *CatalogService) ListCourses(ctx context.Context, subjectID uint) ([]model.Course, error) {
	return s.CourseRepo.ListCoursesBySubject(ctx, subjectID)
}

func (s *CatalogService) GetCourse(ctx context.Context, id uint) (*model.Course, error) {
	course, err := s.CourseRepo.GetCourse(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.NotFoundf("Course not found")
	}
	return course, err
}

func (s *CatalogService) CreateCourse(ctx context.Context, req CourseRequest) (*model.Course, error) {
	difficulty := model.Difficulty(req.Difficulty)
	if !difficulty.Valid() {
		return nil, apperr.Validationf("invalid difficulty %q", req.Difficulty)
	}
	if _, err := s.SubjectRepo.GetSubject(ctx, req.SubjectID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.Validationf("subject %d does not exist", req.SubjectID)
		}
		return nil, err
	}
	return s.CourseRepo.CreateCourse(ctx, model.Course{
		SubjectID:      req.SubjectID,
		Title:          req.Title,
		Description:    req.Description,
		Difficulty:     difficulty,
		EstimatedHours: req.EstimatedHours,
		Content:        req.Content,
	})
}
