package model

import "time"

type Achievement struct {
	ID          uint      `gorm:"primaryKey;autoIncrement:false" json:"id"`
	UserID      uint      `gorm:"index" json:"userId"`
	Title       string    `gorm:"size:200;not null" json:"title"`
	Description *string   `gorm:"type:text" json:"description"`
	Icon        string    `gorm:"size:100;not null" json:"icon"`
	Color       string    `gorm:"size:50;not null" json:"color"`
	EarnedAt    time.Time `json:"earnedAt"`
}

func (a Achievement) Clone() Achievement {
	a.Description = clonePtr(a.Description)
	return a
}
