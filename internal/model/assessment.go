package model

import (
	"time"

	"gorm.io/datatypes"
)

type AssessmentType string

const (
	AssessmentQuick         AssessmentType = "quick"
	AssessmentComprehensive AssessmentType = "comprehensive"
	AssessmentDiagnostic    AssessmentType = "diagnostic"
)

func (t AssessmentType) Valid() bool {
	switch t {
	case AssessmentQuick, AssessmentComprehensive, AssessmentDiagnostic:
		return true
	}
	return false
}

// Assessment 已完成的测评，创建后不可修改
type Assessment struct {
	ID                  uint           `gorm:"primaryKey;autoIncrement:false" json:"id"`
	UserID              uint           `gorm:"index" json:"userId"`
	SubjectID           uint           `gorm:"index" json:"subjectId"`
	Type                AssessmentType `gorm:"size:20;not null" json:"type"`
	Questions           datatypes.JSON `json:"questions"`
	Answers             datatypes.JSON `json:"answers"`
	Score               *float64       `json:"score"`
	WeakAreasIdentified StringList     `json:"weakAreasIdentified"`
	Recommendations     *string        `gorm:"type:text" json:"recommendations"`
	CompletedAt         time.Time      `json:"completedAt"`
}

func (a Assessment) Clone() Assessment {
	a.Questions = cloneJSON(a.Questions)
	a.Answers = cloneJSON(a.Answers)
	a.Score = clonePtr(a.Score)
	a.WeakAreasIdentified = cloneStrings(a.WeakAreasIdentified)
	a.Recommendations = clonePtr(a.Recommendations)
	return a
}
