package model

import "time"

// swagger:model User
type User struct {
	ID              uint      `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Username        string    `gorm:"size:100;uniqueIndex;not null" json:"username"`
	DisplayName     string    `gorm:"size:100;not null" json:"displayName"`
	Email           *string   `gorm:"size:100" json:"email"`
	LearningStreak  int       `gorm:"not null;default:0" json:"learningStreak"`
	TotalStudyHours float64   `gorm:"not null;default:0" json:"totalStudyHours"`
	OverallProgress float64   `gorm:"not null;default:0" json:"overallProgress"`
	CreatedAt       time.Time `json:"createdAt"`
}

func (User) TableName() string {
	return "users"
}

func (u User) Clone() User {
	u.Email = clonePtr(u.Email)
	return u
}

// UserUpdate 局部更新，nil 字段保持原值
type UserUpdate struct {
	DisplayName     *string  `json:"displayName"`
	Email           *string  `json:"email"`
	LearningStreak  *int     `json:"learningStreak" binding:"omitempty,min=0"`
	TotalStudyHours *float64 `json:"totalStudyHours" binding:"omitempty,min=0"`
	OverallProgress *float64 `json:"overallProgress" binding:"omitempty,min=0,max=100"`
}

func (u *User) Apply(upd UserUpdate) {
	if upd.DisplayName != nil {
		u.DisplayName = *upd.DisplayName
	}
	if upd.Email != nil {
		u.Email = clonePtr(upd.Email)
	}
	if upd.LearningStreak != nil {
		u.LearningStreak = *upd.LearningStreak
	}
	if upd.TotalStudyHours != nil {
		u.TotalStudyHours = *upd.TotalStudyHours
	}
	if upd.OverallProgress != nil {
		u.OverallProgress = *upd.OverallProgress
	}
}
