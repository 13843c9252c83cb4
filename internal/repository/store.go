package repository

import (
	"context"
	"errors"
	"learning_dashboard_backend/internal/model"
)

var (
	// ErrNotFound 按 id 或自然键查不到记录
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate 唯一键冲突（目前只有用户名）
	ErrDuplicate = errors.New("duplicate record")
)

// 实体种类，用于计数和监控标签
const (
	KindUser           = "users"
	KindSubject        = "subjects"
	KindCourse         = "courses"
	KindProgress       = "progress"
	KindAssessment     = "assessments"
	KindStudySession   = "study_sessions"
	KindAchievement    = "achievements"
	KindRecommendation = "recommendations"
)

var Kinds = []string{
	KindUser, KindSubject, KindCourse, KindProgress,
	KindAssessment, KindStudySession, KindAchievement, KindRecommendation,
}

type UserRepository interface {
	GetUser(ctx context.Context, id uint) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	CreateUser(ctx context.Context, user model.User) (*model.User, error)
	UpdateUser(ctx context.Context, id uint, upd model.UserUpdate) (*model.User, error)
}

type SubjectRepository interface {
	ListSubjects(ctx context.Context) ([]model.Subject, error)
	ListSubjectsByCategory(ctx context.Context, category model.SubjectCategory) ([]model.Subject, error)
	GetSubject(ctx context.Context, id uint) (*model.Subject, error)
	CreateSubject(ctx context.Context, subject model.Subject) (*model.Subject, error)
}

type CourseRepository interface {
	ListCoursesBySubject(ctx context.Context, subjectID uint) ([]model.Course, error)
	GetCourse(ctx context.Context, id uint) (*model.Course, error)
	CreateCourse(ctx context.Context, course model.Course) (*model.Course, error)
}

type ProgressRepository interface {
	ListProgress(ctx context.Context, userID uint) ([]model.UserProgress, error)
	GetProgressBySubject(ctx context.Context, userID, subjectID uint) (*model.UserProgress, error)
	// UpsertProgress 按 (UserID, SubjectID) 合并或新建，并刷新 LastAccessedAt
	UpsertProgress(ctx context.Context, in model.ProgressInput) (*model.UserProgress, error)
	// UpdateProgressStrength 记录不存在时不做任何事
	UpdateProgressStrength(ctx context.Context, userID, subjectID uint, level model.StrengthLevel, weakAreas, strongAreas []string) error
}

type AssessmentRepository interface {
	CreateAssessment(ctx context.Context, assessment model.Assessment) (*model.Assessment, error)
	ListAssessments(ctx context.Context, userID uint) ([]model.Assessment, error)
	ListAssessmentsBySubject(ctx context.Context, userID, subjectID uint) ([]model.Assessment, error)
}

type SessionRepository interface {
	CreateSession(ctx context.Context, session model.StudySession) (*model.StudySession, error)
	GetSession(ctx context.Context, id uint) (*model.StudySession, error)
	GetActiveSession(ctx context.Context, userID uint) (*model.StudySession, error)
	UpdateSessionStatus(ctx context.Context, id uint, status model.SessionStatus, actualDuration *int) (*model.StudySession, error)
	ListSessions(ctx context.Context, userID uint) ([]model.StudySession, error)
}

type AchievementRepository interface {
	ListAchievements(ctx context.Context, userID uint) ([]model.Achievement, error)
	CreateAchievement(ctx context.Context, achievement model.Achievement) (*model.Achievement, error)
}

type RecommendationRepository interface {
	ListActiveRecommendations(ctx context.Context, userID uint) ([]model.AiRecommendation, error)
	CreateRecommendation(ctx context.Context, rec model.AiRecommendation) (*model.AiRecommendation, error)
	MarkRecommendationInactive(ctx context.Context, id uint) error
}

// Store 全部实体的持久化接口；所有 id 来自同一个全局计数器
type Store interface {
	UserRepository
	SubjectRepository
	CourseRepository
	ProgressRepository
	AssessmentRepository
	SessionRepository
	AchievementRepository
	RecommendationRepository

	Counts(ctx context.Context) (map[string]int, error)
	Snapshot(ctx context.Context) (*model.Snapshot, error)
	Close() error
}
