package model

import "gorm.io/datatypes"

type SubjectCategory string

const (
	CategoryCore        SubjectCategory = "core"
	CategoryProgramming SubjectCategory = "programming"
	CategoryAptitude    SubjectCategory = "aptitude"
	CategoryLanguages   SubjectCategory = "languages"
)

func (c SubjectCategory) Valid() bool {
	switch c {
	case CategoryCore, CategoryProgramming, CategoryAptitude, CategoryLanguages:
		return true
	}
	return false
}

type Subject struct {
	ID          uint            `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Name        string          `gorm:"size:100;not null" json:"name"`
	Category    SubjectCategory `gorm:"size:20;not null;index" json:"category"`
	Icon        string          `gorm:"size:100;not null" json:"icon"`
	Color       string          `gorm:"size:50;not null" json:"color"`
	Description *string         `gorm:"type:text" json:"description"`
}

func (s Subject) Clone() Subject {
	s.Description = clonePtr(s.Description)
	return s
}

type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return true
	}
	return false
}

type Course struct {
	ID             uint           `gorm:"primaryKey;autoIncrement:false" json:"id"`
	SubjectID      uint           `gorm:"index" json:"subjectId"`
	Title          string         `gorm:"size:200;not null" json:"title"`
	Description    *string        `gorm:"type:text" json:"description"`
	Difficulty     Difficulty     `gorm:"size:20;not null" json:"difficulty"`
	EstimatedHours int            `gorm:"not null;default:0" json:"estimatedHours"`
	Content        datatypes.JSON `json:"content"`
}

func (c Course) Clone() Course {
	c.Description = clonePtr(c.Description)
	c.Content = cloneJSON(c.Content)
	return c
}
