package repository

import (
	"context"
	"learning_dashboard_backend/internal/model"
	"slices"
	"sync"
	"time"
)

var _ Store = (*MemoryStore)(nil)

// MemoryStore 进程内存储，进程退出即丢失。所有操作共用一把读写锁，
// id 计数器由全部实体共享。
type MemoryStore struct {
	mu     sync.RWMutex
	nextID uint
	now    func() time.Time

	users           *collection[model.User]
	subjects        *collection[model.Subject]
	courses         *collection[model.Course]
	progress        *collection[model.UserProgress]
	assessments     *collection[model.Assessment]
	sessions        *collection[model.StudySession]
	achievements    *collection[model.Achievement]
	recommendations *collection[model.AiRecommendation]
}

type MemoryOption func(*MemoryStore)

// WithClock 替换时间源，测试用
func WithClock(now func() time.Time) MemoryOption {
	return func(s *MemoryStore) { s.now = now }
}

func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	s := &MemoryStore{
		nextID:          1,
		now:             time.Now,
		users:           newCollection(model.User.Clone),
		subjects:        newCollection(model.Subject.Clone),
		courses:         newCollection(model.Course.Clone),
		progress:        newCollection(model.UserProgress.Clone),
		assessments:     newCollection(model.Assessment.Clone),
		sessions:        newCollection(model.StudySession.Clone),
		achievements:    newCollection(model.Achievement.Clone),
		recommendations: newCollection[model.AiRecommendation](nil),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// allocID 调用方必须持有写锁
func (s *MemoryStore) allocID() uint {
	id := s.nextID
	s.nextID++
	return id
}

func (s *MemoryStore) GetUser(ctx context.Context, id uint) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users.get(id)
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (s *MemoryStore) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users.find(func(u model.User) bool { return u.Username == username })
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (s *MemoryStore) CreateUser(ctx context.Context, user model.User) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users.find(func(u model.User) bool { return u.Username == user.Username }); exists {
		return nil, ErrDuplicate
	}

	user.ID = s.allocID()
	user.CreatedAt = s.now()
	s.users.insert(user.ID, user)
	return &user, nil
}

func (s *MemoryStore) UpdateUser(ctx context.Context, id uint, upd model.UserUpdate) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users.get(id)
	if !ok {
		return nil, ErrNotFound
	}
	u.Apply(upd)
	s.users.insert(id, u)
	return &u, nil
}

func (s *MemoryStore) ListSubjects(ctx context.Context) ([]model.Subject, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.subjects.filter(nil), nil
}

func (s *MemoryStore) ListSubjectsByCategory(ctx context.Context, category model.SubjectCategory) ([]model.Subject, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.subjects.filter(func(sub model.Subject) bool { return sub.Category == category }), nil
}

func (s *MemoryStore) GetSubject(ctx context.Context, id uint) (*model.Subject, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sub, ok := s.subjects.get(id)
	if !ok {
		return nil, ErrNotFound
	}
	return &sub, nil
}

func (s *MemoryStore) CreateSubject(ctx context.Context, subject model.Subject) (*model.Subject, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	subject.ID = s.allocID()
	s.subjects.insert(subject.ID, subject)
	return &subject, nil
}

func (s *MemoryStore) ListCoursesBySubject(ctx context.Context, subjectID uint) ([]model.Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.courses.filter(func(c model.Course) bool { return c.SubjectID == subjectID }), nil
}

func (s *MemoryStore) GetCourse(ctx context.Context, id uint) (*model.Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.courses.get(id)
	if !ok {
		return nil, ErrNotFound
	}
	return &c, nil
}

func (s *MemoryStore) CreateCourse(ctx context.Context, course model.Course) (*model.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	course.ID = s.allocID()
	s.courses.insert(course.ID, course)
	return &course, nil
}

func (s *MemoryStore) ListProgress(ctx context.Context, userID uint) ([]model.UserProgress, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.progress.filter(func(p model.UserProgress) bool { return p.UserID == userID }), nil
}

func (s *MemoryStore) GetProgressBySubject(ctx context.Context, userID, subjectID uint) (*model.UserProgress, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.findProgress(userID, subjectID)
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (s *MemoryStore) findProgress(userID, subjectID uint) (model.UserProgress, bool) {
	return s.progress.find(func(p model.UserProgress) bool {
		return p.UserID == userID && p.SubjectID == subjectID
	})
}

func (s *MemoryStore) UpsertProgress(ctx context.Context, in model.ProgressInput) (*model.UserProgress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, exists := s.findProgress(in.UserID, in.SubjectID)
	if exists {
		p.Merge(in)
	} else {
		p = model.NewProgress(in)
		p.ID = s.allocID()
	}
	p.LastAccessedAt = s.now()
	s.progress.insert(p.ID, p)
	return &p, nil
}

func (s *MemoryStore) UpdateProgressStrength(ctx context.Context, userID, subjectID uint, level model.StrengthLevel, weakAreas, strongAreas []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.findProgress(userID, subjectID)
	if !ok {
		return nil
	}
	p.StrengthLevel = level
	p.WeakAreas = slices.Clone(weakAreas)
	p.StrongAreas = slices.Clone(strongAreas)
	p.LastAccessedAt = s.now()
	s.progress.insert(p.ID, p)
	return nil
}

func (s *MemoryStore) CreateAssessment(ctx context.Context, assessment model.Assessment) (*model.Assessment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	assessment.ID = s.allocID()
	assessment.CompletedAt = s.now()
	s.assessments.insert(assessment.ID, assessment)
	return &assessment, nil
}

func (s *MemoryStore) ListAssessments(ctx context.Context, userID uint) ([]model.Assessment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.assessments.filter(func(a model.Assessment) bool { return a.UserID == userID }), nil
}

func (s *MemoryStore) ListAssessmentsBySubject(ctx context.Context, userID, subjectID uint) ([]model.Assessment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.assessments.filter(func(a model.Assessment) bool {
		return a.UserID == userID && a.SubjectID == subjectID
	}), nil
}

func (s *MemoryStore) CreateSession(ctx context.Context, session model.StudySession) (*model.StudySession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	session.ID = s.allocID()
	session.StartedAt = now
	session.CompletedAt = nil
	if session.Status == model.SessionCompleted {
		session.CompletedAt = &now
	}
	s.sessions.insert(session.ID, session)
	return &session, nil
}

func (s *MemoryStore) GetSession(ctx context.Context, id uint) (*model.StudySession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions.get(id)
	if !ok {
		return nil, ErrNotFound
	}
	return &session, nil
}

func (s *MemoryStore) GetActiveSession(ctx context.Context, userID uint) (*model.StudySession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions.find(func(ss model.StudySession) bool {
		return ss.UserID == userID && ss.Status == model.SessionActive
	})
	if !ok {
		return nil, ErrNotFound
	}
	return &session, nil
}

func (s *MemoryStore) UpdateSessionStatus(ctx context.Context, id uint, status model.SessionStatus, actualDuration *int) (*model.StudySession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions.get(id)
	if !ok {
		return nil, ErrNotFound
	}
	session.ApplyStatus(status, actualDuration, s.now())
	s.sessions.insert(id, session)
	return &session, nil
}

func (s *MemoryStore) ListSessions(ctx context.Context, userID uint) ([]model.StudySession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessions.filter(func(ss model.StudySession) bool { return ss.UserID == userID }), nil
}

func (s *MemoryStore) ListAchievements(ctx context.Context, userID uint) ([]model.Achievement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.achievements.filter(func(a model.Achievement) bool { return a.UserID == userID }), nil
}

func (s *MemoryStore) CreateAchievement(ctx context.Context, achievement model.Achievement) (*model.Achievement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	achievement.ID = s.allocID()
	achievement.EarnedAt = s.now()
	s.achievements.insert(achievement.ID, achievement)
	return &achievement, nil
}

func (s *MemoryStore) ListActiveRecommendations(ctx context.Context, userID uint) ([]model.AiRecommendation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.recommendations.filter(func(r model.AiRecommendation) bool {
		return r.UserID == userID && r.IsActive
	}), nil
}

func (s *MemoryStore) CreateRecommendation(ctx context.Context, rec model.AiRecommendation) (*model.AiRecommendation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec.ID = s.allocID()
	rec.CreatedAt = s.now()
	s.recommendations.insert(rec.ID, rec)
	return &rec, nil
}

func (s *MemoryStore) MarkRecommendationInactive(ctx context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.recommendations.get(id)
	if !ok {
		return nil
	}
	rec.IsActive = false
	s.recommendations.insert(id, rec)
	return nil
}

func (s *MemoryStore) Counts(ctx context.Context) (map[string]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return map[string]int{
		KindUser:           s.users.len(),
		KindSubject:        s.subjects.len(),
		KindCourse:         s.courses.len(),
		KindProgress:       s.progress.len(),
		KindAssessment:     s.assessments.len(),
		KindStudySession:   s.sessions.len(),
		KindAchievement:    s.achievements.len(),
		KindRecommendation: s.recommendations.len(),
	}, nil
}

func (s *MemoryStore) Snapshot(ctx context.Context) (*model.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return &model.Snapshot{
		TakenAt:         s.now(),
		NextID:          s.nextID,
		Users:           s.users.filter(nil),
		Subjects:        s.subjects.filter(nil),
		Courses:         s.courses.filter(nil),
		Progress:        s.progress.filter(nil),
		Assessments:     s.assessments.filter(nil),
		StudySessions:   s.sessions.filter(nil),
		Achievements:    s.achievements.filter(nil),
		Recommendations: s.recommendations.filter(nil),
	}, nil
}

func (s *MemoryStore) Close() error {
	return nil
}
