package model

import "time"

type SessionStatus string

const (
	SessionActive    SessionStatus = "active"
	SessionPaused    SessionStatus = "paused"
	SessionCompleted SessionStatus = "completed"
	SessionAbandoned SessionStatus = "abandoned"
)

func (s SessionStatus) Valid() bool {
	switch s {
	case SessionActive, SessionPaused, SessionCompleted, SessionAbandoned:
		return true
	}
	return false
}

// StudySession Duration/ActualDuration 单位为分钟
type StudySession struct {
	ID             uint          `gorm:"primaryKey;autoIncrement:false" json:"id"`
	UserID         uint          `gorm:"index" json:"userId"`
	SubjectID      *uint         `json:"subjectId"`
	CourseID       *uint         `json:"courseId"`
	Duration       *int          `json:"duration"`
	ActualDuration *int          `json:"actualDuration"`
	Status         SessionStatus `gorm:"size:20;not null;index" json:"status"`
	StartedAt      time.Time     `json:"startedAt"`
	CompletedAt    *time.Time    `json:"completedAt"`
}

func (StudySession) TableName() string {
	return "study_sessions"
}

func (s StudySession) Clone() StudySession {
	s.SubjectID = clonePtr(s.SubjectID)
	s.CourseID = clonePtr(s.CourseID)
	s.Duration = clonePtr(s.Duration)
	s.ActualDuration = clonePtr(s.ActualDuration)
	s.CompletedAt = clonePtr(s.CompletedAt)
	return s
}

// ApplyStatus 状态流转不做限制；只有 completed 会写入完成时间
func (s *StudySession) ApplyStatus(status SessionStatus, actualDuration *int, now time.Time) {
	s.Status = status
	s.ActualDuration = clonePtr(actualDuration)
	if status == SessionCompleted {
		s.CompletedAt = &now
	} else {
		s.CompletedAt = nil
	}
}

// Minutes 实际时长，未记录时退回计划时长
func (s StudySession) Minutes() int {
	if s.ActualDuration != nil {
		return *s.ActualDuration
	}
	if s.Duration != nil {
		return *s.Duration
	}
	return 0
}
