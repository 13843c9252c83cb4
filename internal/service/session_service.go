package service

import (
	"context"
	"errors"
	"learning_dashboard_backend/internal/apperr"
	"learning_dashboard_backend/internal/model"
	"learning_dashboard_backend/internal/repository"
)

type SessionService struct {
	SessionRepo repository.SessionRepository
}

func NewSessionService(sessionRepo repository.SessionRepository) *SessionService {
	return &SessionService{SessionRepo: sessionRepo}
}

type SessionRequest struct {
	UserID         uint   `json:"userId" binding:"required"`
	SubjectID      *uint  `json:"subjectId"`
	CourseID       *uint  `json:"courseId"`
	Duration       *int   `json:"duration" binding:"omitempty,min=0"`
	ActualDuration *int   `json:"actualDuration" binding:"omitempty,min=0"`
	Status         string `json:"status" binding:"omitempty,oneof=active paused completed abandoned"`
}

type SessionStatusRequest struct {
	Status         string `json:"status" binding:"required,oneof=active paused completed abandoned"`
	ActualDuration *int   `json:"actualDuration" binding:"omitempty,min=0"`
}

func (s *SessionService) ListSessions(ctx context.Context, userID uint) ([]model.StudySession, error) {
	return s.SessionRepo.ListSessions(ctx, userID)
}

// GetActiveSession 没有进行中的会话时返回 (nil, nil)
func (s *SessionService) GetActiveSession(ctx context.Context, userID uint) (*model.StudySession, error) {
	session, err := s.SessionRepo.GetActiveSession(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	return session, err
}

// StartSession 未指定状态时默认 active
func (s *SessionService) StartSession(ctx context.Context, req SessionRequest) (*model.StudySession, error) {
	status := model.SessionActive
	if req.Status != "" {
		status = model.SessionStatus(req.Status)
	}
	if !status.Valid() {
		return nil, apperr.Validationf("invalid status %q", req.Status)
	}
	return s.SessionRepo.CreateSession(ctx, model.StudySession{
		UserID:         req.UserID,
		SubjectID:      req.SubjectID,
		CourseID:       req.CourseID,
		Duration:       req.Duration,
		ActualDuration: req.ActualDuration,
		Status:         status,
	})
}

// UpdateStatus 任意状态之间都允许切换
func (s *SessionService) UpdateStatus(ctx context.Context, id uint, req SessionStatusRequest) (*model.StudySession, error) {
	status := model.SessionStatus(req.Status)
	if !status.Valid() {
		return nil, apperr.Validationf("invalid status %q", req.Status)
	}
	session, err := s.SessionRepo.UpdateSessionStatus(ctx, id, status, req.ActualDuration)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.NotFoundf("Session not found")
	}
	return session, err
}
