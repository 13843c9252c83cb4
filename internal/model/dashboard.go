package model

type StrengthVsWeakness struct {
	StrongAreas int `json:"strongAreas"`
	WeakAreas   int `json:"weakAreas"`
}

// DashboardStats 仪表盘汇总，每次请求重新计算
type DashboardStats struct {
	LearningStreak     int                `json:"learningStreak"`
	TodayHours         float64            `json:"todayHours"`
	OverallProgress    float64            `json:"overallProgress"`
	WeakAreas          int                `json:"weakAreas"`
	TotalStudyHours    float64            `json:"totalStudyHours"`
	WeeklyHours        []float64          `json:"weeklyHours"`
	StrengthVsWeakness StrengthVsWeakness `json:"strengthVsWeakness"`
}
