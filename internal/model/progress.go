package model

import "time"

type StrengthLevel string

const (
	StrengthStrong  StrengthLevel = "strong"
	StrengthAverage StrengthLevel = "average"
	StrengthWeak    StrengthLevel = "weak"
)

func (l StrengthLevel) Valid() bool {
	switch l {
	case StrengthStrong, StrengthAverage, StrengthWeak:
		return true
	}
	return false
}

// UserProgress 用户在某学科上的进度，(UserID, SubjectID) 唯一
type UserProgress struct {
	ID                 uint          `gorm:"primaryKey;autoIncrement:false" json:"id"`
	UserID             uint          `gorm:"not null;uniqueIndex:idx_progress_user_subject" json:"userId"`
	SubjectID          uint          `gorm:"not null;uniqueIndex:idx_progress_user_subject" json:"subjectId"`
	CourseID           *uint         `json:"courseId"`
	ProgressPercentage float64       `gorm:"not null;default:0" json:"progressPercentage"`
	StrengthLevel      StrengthLevel `gorm:"size:20;not null" json:"strengthLevel"`
	TimeSpent          float64       `gorm:"not null;default:0" json:"timeSpent"`
	LastAccessedAt     time.Time     `json:"lastAccessedAt"`
	WeakAreas          StringList    `json:"weakAreas"`
	StrongAreas        StringList    `json:"strongAreas"`
}

func (UserProgress) TableName() string {
	return "user_progress"
}

func (p UserProgress) Clone() UserProgress {
	p.CourseID = clonePtr(p.CourseID)
	p.WeakAreas = cloneStrings(p.WeakAreas)
	p.StrongAreas = cloneStrings(p.StrongAreas)
	return p
}

// ProgressInput upsert 输入，nil 字段在更新时保持原值
type ProgressInput struct {
	UserID             uint          `json:"userId" binding:"required"`
	SubjectID          uint          `json:"subjectId" binding:"required"`
	CourseID           *uint         `json:"courseId"`
	ProgressPercentage *float64      `json:"progressPercentage" binding:"omitempty,min=0,max=100"`
	StrengthLevel      StrengthLevel `json:"strengthLevel" binding:"required,oneof=strong average weak"`
	TimeSpent          *float64      `json:"timeSpent" binding:"omitempty,min=0"`
	WeakAreas          []string      `json:"weakAreas"`
	StrongAreas        []string      `json:"strongAreas"`
}

// Merge 把输入字段合并到已有记录
func (p *UserProgress) Merge(in ProgressInput) {
	if in.CourseID != nil {
		p.CourseID = clonePtr(in.CourseID)
	}
	if in.ProgressPercentage != nil {
		p.ProgressPercentage = *in.ProgressPercentage
	}
	if in.StrengthLevel != "" {
		p.StrengthLevel = in.StrengthLevel
	}
	if in.TimeSpent != nil {
		p.TimeSpent = *in.TimeSpent
	}
	if in.WeakAreas != nil {
		p.WeakAreas = cloneStrings(in.WeakAreas)
	}
	if in.StrongAreas != nil {
		p.StrongAreas = cloneStrings(in.StrongAreas)
	}
}

// NewProgress 由输入构造新记录，未提供的数值字段取 0
func NewProgress(in ProgressInput) UserProgress {
	p := UserProgress{
		UserID:        in.UserID,
		SubjectID:     in.SubjectID,
		StrengthLevel: in.StrengthLevel,
	}
	p.Merge(in)
	return p
}
