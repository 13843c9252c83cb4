package model

import "time"

// Snapshot 存储在某一时刻的完整拷贝，用于导出
type Snapshot struct {
	TakenAt         time.Time          `json:"takenAt"`
	NextID          uint               `json:"nextId"`
	Users           []User             `json:"users"`
	Subjects        []Subject          `json:"subjects"`
	Courses         []Course           `json:"courses"`
	Progress        []UserProgress     `json:"progress"`
	Assessments     []Assessment       `json:"assessments"`
	StudySessions   []StudySession     `json:"studySessions"`
	Achievements    []Achievement      `json:"achievements"`
	Recommendations []AiRecommendation `json:"recommendations"`
}
