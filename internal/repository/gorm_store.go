package repository

import (
	"context"
	"errors"
	"learning_dashboard_backend/internal/model"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var _ Store = (*GormStore)(nil)

const globalSequence = "global"

// GormStore 基于 gorm 的 Store 实现（mysql / sqlite）。id 由 id_sequences 表
// 在写事务内递增得到，保证跨实体唯一。
type GormStore struct {
	DB  *gorm.DB
	now func() time.Time
}

func NewGormStore(db *gorm.DB) (*GormStore, error) {
	seq := model.IDSequence{Name: globalSequence, NextValue: 0}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&seq).Error; err != nil {
		return nil, err
	}
	return &GormStore{DB: db, now: time.Now}, nil
}

func (s *GormStore) nextID(tx *gorm.DB) (uint, error) {
	err := tx.Model(&model.IDSequence{}).
		Where("name = ?", globalSequence).
		UpdateColumn("next_value", gorm.Expr("next_value + ?", 1)).Error
	if err != nil {
		return 0, err
	}

	var seq model.IDSequence
	if err := tx.First(&seq, "name = ?", globalSequence).Error; err != nil {
		return 0, err
	}
	return seq.NextValue, nil
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *GormStore) GetUser(ctx context.Context, id uint) (*model.User, error) {
	var u model.User
	if err := s.DB.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (s *GormStore) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	var u model.User
	if err := s.DB.WithContext(ctx).Where("username = ?", username).First(&u).Error; err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (s *GormStore) CreateUser(ctx context.Context, user model.User) (*model.User, error) {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.User{}).Where("username = ?", user.Username).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicate
		}

		id, err := s.nextID(tx)
		if err != nil {
			return err
		}
		user.ID = id
		user.CreatedAt = s.now()
		return tx.Create(&user).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, ErrDuplicate
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *GormStore) UpdateUser(ctx context.Context, id uint, upd model.UserUpdate) (*model.User, error) {
	var u model.User
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&u, id).Error; err != nil {
			return notFound(err)
		}
		u.Apply(upd)
		return tx.Save(&u).Error
	})
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *GormStore) ListSubjects(ctx context.Context) ([]model.Subject, error) {
	subjects := make([]model.Subject, 0)
	err := s.DB.WithContext(ctx).Order("id asc").Find(&subjects).Error
	return subjects, err
}

func (s *GormStore) ListSubjectsByCategory(ctx context.Context, category model.SubjectCategory) ([]model.Subject, error) {
	subjects := make([]model.Subject, 0)
	err := s.DB.WithContext(ctx).Where("category = ?", category).Order("id asc").Find(&subjects).Error
	return subjects, err
}

func (s *GormStore) GetSubject(ctx context.Context, id uint) (*model.Subject, error) {
	var sub model.Subject
	if err := s.DB.WithContext(ctx).First(&sub, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &sub, nil
}

func (s *GormStore) CreateSubject(ctx context.Context, subject model.Subject) (*model.Subject, error) {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		id, err := s.nextID(tx)
		if err != nil {
			return err
		}
		subject.ID = id
		return tx.Create(&subject).Error
	})
	if err != nil {
		return nil, err
	}
	return &subject, nil
}

func (s *GormStore) ListCoursesBySubject(ctx context.Context, subjectID uint) ([]model.Course, error) {
	courses := make([]model.Course, 0)
	err := s.DB.WithContext(ctx).Where("subject_id = ?", subjectID).Order("id asc").Find(&courses).Error
	return courses, err
}

func (s *GormStore) GetCourse(ctx context.Context, id uint) (*model.Course, error) {
	var c model.Course
	if err := s.DB.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &c, nil
}

func (s *GormStore) CreateCourse(ctx context.Context, course model.Course) (*model.Course, error) {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		id, err := s.nextID(tx)
		if err != nil {
			return err
		}
		course.ID = id
		return tx.Create(&course).Error
	})
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (s *GormStore) ListProgress(ctx context.Context, userID uint) ([]model.UserProgress, error) {
	progress := make([]model.UserProgress, 0)
	err := s.DB.WithContext(ctx).Where("user_id = ?", userID).Order("id asc").Find(&progress).Error
	return progress, err
}

func (s *GormStore) GetProgressBySubject(ctx context.Context, userID, subjectID uint) (*model.UserProgress, error) {
	var p model.UserProgress
	err := s.DB.WithContext(ctx).
		Where("user_id = ? AND subject_id = ?", userID, subjectID).
		First(&p).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

func (s *GormStore) UpsertProgress(ctx context.Context, in model.ProgressInput) (*model.UserProgress, error) {
	var p model.UserProgress
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("user_id = ? AND subject_id = ?", in.UserID, in.SubjectID).First(&p).Error
		switch {
		case err == nil:
			p.Merge(in)
			p.LastAccessedAt = s.now()
			return tx.Save(&p).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			p = model.NewProgress(in)
			id, err := s.nextID(tx)
			if err != nil {
				return err
			}
			p.ID = id
			p.LastAccessedAt = s.now()
			return tx.Create(&p).Error
		default:
			return err
		}
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *GormStore) UpdateProgressStrength(ctx context.Context, userID, subjectID uint, level model.StrengthLevel, weakAreas, strongAreas []string) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p model.UserProgress
		err := tx.Where("user_id = ? AND subject_id = ?", userID, subjectID).First(&p).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		p.StrengthLevel = level
		p.WeakAreas = weakAreas
		p.StrongAreas = strongAreas
		p.LastAccessedAt = s.now()
		return tx.Save(&p).Error
	})
}

func (s *GormStore) CreateAssessment(ctx context.Context, assessment model.Assessment) (*model.Assessment, error) {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		id, err := s.nextID(tx)
		if err != nil {
			return err
		}
		assessment.ID = id
		assessment.CompletedAt = s.now()
		return tx.Create(&assessment).Error
	})
	if err != nil {
		return nil, err
	}
	return &assessment, nil
}

func (s *GormStore) ListAssessments(ctx context.Context, userID uint) ([]model.Assessment, error) {
	assessments := make([]model.Assessment, 0)
	err := s.DB.WithContext(ctx).Where("user_id = ?", userID).Order("id asc").Find(&assessments).Error
	return assessments, err
}

func (s *GormStore) ListAssessmentsBySubject(ctx context.Context, userID, subjectID uint) ([]model.Assessment, error) {
	assessments := make([]model.Assessment, 0)
	err := s.DB.WithContext(ctx).
		Where("user_id = ? AND subject_id = ?", userID, subjectID).
		Order("id asc").
		Find(&assessments).Error
	return assessments, err
}

func (s *GormStore) CreateSession(ctx context.Context, session model.StudySession) (*model.StudySession, error) {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		id, err := s.nextID(tx)
		if err != nil {
			return err
		}
		now := s.now()
		session.ID = id
		session.StartedAt = now
		session.CompletedAt = nil
		if session.Status == model.SessionCompleted {
			session.CompletedAt = &now
		}
		return tx.Create(&session).Error
	})
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *GormStore) GetSession(ctx context.Context, id uint) (*model.StudySession, error) {
	var session model.StudySession
	if err := s.DB.WithContext(ctx).First(&session, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &session, nil
}

func (s *GormStore) GetActiveSession(ctx context.Context, userID uint) (*model.StudySession, error) {
	var session model.StudySession
	err := s.DB.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, model.SessionActive).
		Order("id asc").
		First(&session).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &session, nil
}

func (s *GormStore) UpdateSessionStatus(ctx context.Context, id uint, status model.SessionStatus, actualDuration *int) (*model.StudySession, error) {
	var session model.StudySession
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&session, id).Error; err != nil {
			return notFound(err)
		}
		session.ApplyStatus(status, actualDuration, s.now())
		return tx.Save(&session).Error
	})
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *GormStore) ListSessions(ctx context.Context, userID uint) ([]model.StudySession, error) {
	sessions := make([]model.StudySession, 0)
	err := s.DB.WithContext(ctx).Where("user_id = ?", userID).Order("id asc").Find(&sessions).Error
	return sessions, err
}

func (s *GormStore) ListAchievements(ctx context.Context, userID uint) ([]model.Achievement, error) {
	achievements := make([]model.Achievement, 0)
	err := s.DB.WithContext(ctx).Where("user_id = ?", userID).Order("id asc").Find(&achievements).Error
	return achievements, err
}

func (s *GormStore) CreateAchievement(ctx context.Context, achievement model.Achievement) (*model.Achievement, error) {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		id, err := s.nextID(tx)
		if err != nil {
			return err
		}
		achievement.ID = id
		achievement.EarnedAt = s.now()
		return tx.Create(&achievement).Error
	})
	if err != nil {
		return nil, err
	}
	return &achievement, nil
}

func (s *GormStore) ListActiveRecommendations(ctx context.Context, userID uint) ([]model.AiRecommendation, error) {
	recs := make([]model.AiRecommendation, 0)
	err := s.DB.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("id asc").
		Find(&recs).Error
	return recs, err
}

func (s *GormStore) CreateRecommendation(ctx context.Context, rec model.AiRecommendation) (*model.AiRecommendation, error) {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		id, err := s.nextID(tx)
		if err != nil {
			return err
		}
		rec.ID = id
		rec.CreatedAt = s.now()
		return tx.Create(&rec).Error
	})
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *GormStore) MarkRecommendationInactive(ctx context.Context, id uint) error {
	return s.DB.WithContext(ctx).
		Model(&model.AiRecommendation{}).
		Where("id = ?", id).
		Update("is_active", false).Error
}

func (s *GormStore) Counts(ctx context.Context) (map[string]int, error) {
	tables := map[string]any{
		KindUser:           &model.User{},
		KindSubject:        &model.Subject{},
		KindCourse:         &model.Course{},
		KindProgress:       &model.UserProgress{},
		KindAssessment:     &model.Assessment{},
		KindStudySession:   &model.StudySession{},
		KindAchievement:    &model.Achievement{},
		KindRecommendation: &model.AiRecommendation{},
	}

	counts := make(map[string]int, len(tables))
	for kind, m := range tables {
		var n int64
		if err := s.DB.WithContext(ctx).Model(m).Count(&n).Error; err != nil {
			return nil, err
		}
		counts[kind] = int(n)
	}
	return counts, nil
}

func (s *GormStore) Snapshot(ctx context.Context) (*model.Snapshot, error) {
	snap := &model.Snapshot{TakenAt: s.now()}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var seq model.IDSequence
		if err := tx.First(&seq, "name = ?", globalSequence).Error; err != nil {
			return err
		}
		snap.NextID = seq.NextValue + 1

		for _, dest := range []any{
			&snap.Users, &snap.Subjects, &snap.Courses, &snap.Progress,
			&snap.Assessments, &snap.StudySessions, &snap.Achievements, &snap.Recommendations,
		} {
			if err := tx.Order("id asc").Find(dest).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}

func (s *GormStore) Close() error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
