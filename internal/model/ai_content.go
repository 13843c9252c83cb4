package model

type PersonalizedContent struct {
	Explanation      string     `json:"explanation"`
	Examples         []string   `json:"examples"`
	PracticeProblems []string   `json:"practiceProblems"`
	Difficulty       Difficulty `json:"difficulty"`
}

type AssessmentQuestion struct {
	ID            string   `json:"id"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
	Topic         string   `json:"topic"`
	Difficulty    string   `json:"difficulty"`
}

type WeaknessAnalysis struct {
	WeakAreas       []string `json:"weakAreas"`
	Recommendations []string `json:"recommendations"`
	FocusTopics     []string `json:"focusTopics"`
	StudyPlan       string   `json:"studyPlan"`
}

// GeneratedRecommendation 模型返回的每日建议，不直接落库
type GeneratedRecommendation struct {
	Type       string   `json:"type"`
	Content    string   `json:"content"`
	Priority   Priority `json:"priority"`
	Actionable bool     `json:"actionable"`
}

type ProgrammingExercise struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	StarterCode string   `json:"starterCode"`
	Solution    string   `json:"solution"`
	Explanation string   `json:"explanation"`
	TestCases   []string `json:"testCases"`
}
