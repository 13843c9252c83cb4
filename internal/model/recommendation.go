package model

import "time"

type RecommendationType string

const (
	RecommendationStudyPlan RecommendationType = "study_plan"
	RecommendationContent   RecommendationType = "content"
	RecommendationFocusArea RecommendationType = "focus_area"
)

func (t RecommendationType) Valid() bool {
	switch t {
	case RecommendationStudyPlan, RecommendationContent, RecommendationFocusArea:
		return true
	}
	return false
}

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// AiRecommendation 通过 IsActive=false 软删除
type AiRecommendation struct {
	ID        uint               `gorm:"primaryKey;autoIncrement:false" json:"id"`
	UserID    uint               `gorm:"index" json:"userId"`
	Type      RecommendationType `gorm:"size:20;not null" json:"type"`
	Content   string             `gorm:"type:text;not null" json:"content"`
	Priority  Priority           `gorm:"size:10;not null" json:"priority"`
	IsActive  bool               `gorm:"not null" json:"isActive"`
	CreatedAt time.Time          `json:"createdAt"`
}

func (AiRecommendation) TableName() string {
	return "ai_recommendations"
}
