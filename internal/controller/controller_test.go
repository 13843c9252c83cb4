package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"learning_dashboard_backend/internal/apperr"
	"learning_dashboard_backend/internal/config"
	"learning_dashboard_backend/internal/model"
	"learning_dashboard_backend/internal/repository"
	"learning_dashboard_backend/internal/service"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubGenerator struct {
	lastCount int
	err       error
}

func (g *stubGenerator) GeneratePersonalizedContent(ctx context.Context, subject, topic, userLevel string, weakAreas []string) (*model.PersonalizedContent, error) {
	if g.err != nil {
		return nil, g.err
	}
	return &model.PersonalizedContent{Explanation: subject + "/" + topic, Examples: weakAreas, Difficulty: model.Difficulty(userLevel)}, nil
}

func (g *stubGenerator) GenerateAssessmentQuestions(ctx context.Context, subject, difficulty string, count int) ([]model.AssessmentQuestion, error) {
	g.lastCount = count
	if g.err != nil {
		return nil, g.err
	}
	questions := make([]model.AssessmentQuestion, count)
	for i := range questions {
		questions[i] = model.AssessmentQuestion{Topic: subject, Difficulty: difficulty}
	}
	return questions, nil
}

func (g *stubGenerator) AnalyzeWeaknesses(ctx context.Context, assessmentResults, userHistory json.RawMessage) (*model.WeaknessAnalysis, error) {
	return &model.WeaknessAnalysis{WeakAreas: []string{"recursion"}}, g.err
}

func (g *stubGenerator) GenerateDailyRecommendations(ctx context.Context, userProgress, recentActivity json.RawMessage) ([]model.GeneratedRecommendation, error) {
	if g.err != nil {
		return nil, g.err
	}
	return []model.GeneratedRecommendation{{Type: "focus", Content: "review graphs", Priority: model.PriorityHigh, Actionable: true}}, nil
}

func (g *stubGenerator) GenerateProgrammingExercise(ctx context.Context, language, topic, difficulty string) (*model.ProgrammingExercise, error) {
	if g.err != nil {
		return nil, g.err
	}
	return &model.ProgrammingExercise{Title: language + " " + topic}, nil
}

type testServer struct {
	router    *gin.Engine
	store     *repository.MemoryStore
	generator *stubGenerator
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	store := repository.NewMemoryStore()
	_, err := repository.Seed(context.Background(), store, repository.DefaultSeed())
	require.NoError(t, err)

	generator := &stubGenerator{}
	settings := config.DashboardConfig{
		HoursMode:              config.HoursModePlaceholder,
		PlaceholderWeeklyHours: []float64{2.5, 3, 1.5, 4, 2, 3.5, 2},
		PlaceholderTodayHours:  2.5,
		Timezone:               "UTC",
	}

	users := NewUserController(service.NewUserService(store))
	dashboard := NewDashboardController(service.NewDashboardService(store, store, store, settings))
	catalog := NewCatalogController(service.NewCatalogService(store, store))
	progress := NewProgressController(service.NewProgressService(store))
	assessments := NewAssessmentController(service.NewAssessmentService(store))
	sessions := NewSessionController(service.NewSessionService(store))
	achievements := NewAchievementController(service.NewAchievementService(store))
	recs := NewRecommendationController(service.NewRecommendationService(store))
	ai := NewAIController(generator)
	health := NewHealthController(store)

	r := gin.New()
	api := r.Group("/api")
	api.GET("/health", health.HealthCheck)
	api.GET("/user/:id", users.GetUser)
	api.GET("/user/username/:username", users.GetUserByUsername)
	api.POST("/users", users.CreateUser)
	api.PATCH("/user/:id", users.UpdateUser)
	api.GET("/dashboard/:userId", dashboard.GetDashboard)
	api.GET("/subjects", catalog.ListSubjects)
	api.POST("/subjects", catalog.CreateSubject)
	api.GET("/subjects/:subjectId/courses", catalog.ListCourses)
	api.GET("/courses/:id", catalog.GetCourse)
	api.POST("/courses", catalog.CreateCourse)
	api.GET("/users/:userId/progress", progress.ListProgress)
	api.GET("/users/:userId/progress/subjects/:subjectId", progress.GetProgressBySubject)
	api.PATCH("/users/:userId/progress/subjects/:subjectId/strength", progress.UpdateStrength)
	api.POST("/progress", progress.UpsertProgress)
	api.GET("/users/:userId/assessments", assessments.ListAssessments)
	api.POST("/assessments", assessments.CreateAssessment)
	api.GET("/users/:userId/sessions", sessions.ListSessions)
	api.GET("/users/:userId/sessions/active", sessions.GetActiveSession)
	api.POST("/sessions", sessions.CreateSession)
	api.PATCH("/sessions/:id", sessions.UpdateSession)
	api.GET("/users/:userId/achievements", achievements.GetUserAchievements)
	api.POST("/achievements", achievements.AwardAchievement)
	api.GET("/users/:userId/recommendations", recs.ListRecommendations)
	api.POST("/recommendations", recs.CreateRecommendation)
	api.PATCH("/recommendations/:id/deactivate", recs.DeactivateRecommendation)
	api.POST("/ai/generate-content", ai.GenerateContent)
	api.POST("/ai/generate-assessment", ai.GenerateAssessment)
	api.POST("/ai/analyze-weaknesses", ai.AnalyzeWeaknesses)
	api.POST("/ai/daily-recommendations", ai.DailyRecommendations)
	api.POST("/ai/programming-exercise", ai.ProgrammingExercise)

	return &testServer{router: r, store: store, generator: generator}
}

func (s *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestDashboardSeededExample(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/dashboard/1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	stats := decode[model.DashboardStats](t, w)
	assert.Equal(t, 7, stats.LearningStreak)
	assert.Equal(t, 73.0, stats.OverallProgress)
	assert.Equal(t, 45.5, stats.TotalStudyHours)
	assert.Equal(t, 2.5, stats.TodayHours)
	assert.Equal(t, []float64{2.5, 3, 1.5, 4, 2, 3.5, 2}, stats.WeeklyHours)
	assert.Equal(t, 2, stats.WeakAreas)
	assert.Equal(t, model.StrengthVsWeakness{StrongAreas: 5, WeakAreas: 2}, stats.StrengthVsWeakness)
}

func TestDashboardUnknownUserIsZero(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/dashboard/999", nil)
	require.Equal(t, http.StatusOK, w.Code)
	stats := decode[model.DashboardStats](t, w)
	assert.Zero(t, stats.LearningStreak)
	assert.Zero(t, stats.WeakAreas)
	assert.Len(t, stats.WeeklyHours, 7)
}

func TestDashboardRejectsBadID(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/dashboard/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "message")
}

func TestSessionLifecycle(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/sessions", gin.H{"userId": 1, "duration": 30, "status": "active"})
	require.Equal(t, http.StatusCreated, w.Code)
	created := decode[model.StudySession](t, w)
	assert.Equal(t, model.SessionActive, created.Status)
	assert.Nil(t, created.CompletedAt)

	w = s.do(t, http.MethodGet, "/api/users/1/sessions/active", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, created.ID, decode[model.StudySession](t, w).ID)

	w = s.do(t, http.MethodPatch, "/api/sessions/"+itoa(created.ID), gin.H{"status": "completed", "actualDuration": 28})
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodGet, "/api/users/1/sessions", nil)
	require.Equal(t, http.StatusOK, w.Code)
	sessions := decode[[]model.StudySession](t, w)
	require.Len(t, sessions, 1)
	assert.Equal(t, model.SessionCompleted, sessions[0].Status)
	require.NotNil(t, sessions[0].ActualDuration)
	assert.Equal(t, 28, *sessions[0].ActualDuration)
	assert.NotNil(t, sessions[0].CompletedAt)

	w = s.do(t, http.MethodGet, "/api/users/1/sessions/active", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "null", w.Body.String())
}

func TestUpdateSessionErrors(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPatch, "/api/sessions/9999", gin.H{"status": "completed"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Session not found", decode[map[string]string](t, w)["message"])

	w = s.do(t, http.MethodPatch, "/api/sessions/9999", gin.H{"status": "finished"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUserEndpoints(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/user/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "loki", decode[model.User](t, w).Username)

	w = s.do(t, http.MethodGet, "/api/user/username/loki", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(1), decode[model.User](t, w).ID)

	w = s.do(t, http.MethodGet, "/api/user/42", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "User not found", decode[map[string]string](t, w)["message"])

	w = s.do(t, http.MethodPost, "/api/users", gin.H{"username": "ada", "displayName": "Ada"})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, uint(20), decode[model.User](t, w).ID)

	w = s.do(t, http.MethodPost, "/api/users", gin.H{"username": "ada", "displayName": "Ada again"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPost, "/api/users", gin.H{"displayName": "nobody"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPatch, "/api/user/1", gin.H{"learningStreak": 8})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 8, decode[model.User](t, w).LearningStreak)
}

func TestSubjectsAndCourses(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/subjects", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]model.Subject](t, w), 9)

	w = s.do(t, http.MethodGet, "/api/subjects?category=programming", nil)
	require.Equal(t, http.StatusOK, w.Code)
	for _, subj := range decode[[]model.Subject](t, w) {
		assert.Equal(t, model.CategoryProgramming, subj.Category)
	}

	w = s.do(t, http.MethodPost, "/api/courses", gin.H{"subjectId": 2, "title": "Intro", "difficulty": "beginner"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	course := decode[model.Course](t, w)

	w = s.do(t, http.MethodGet, "/api/subjects/2/courses", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]model.Course](t, w), 1)

	w = s.do(t, http.MethodGet, "/api/courses/"+itoa(course.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodGet, "/api/courses/9999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodGet, "/api/subjects/3/courses", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())
}

func TestProgressEndpoints(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/users/1/progress", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]model.UserProgress](t, w), 9)

	subj, err := s.store.CreateSubject(context.Background(), model.Subject{Name: "Rust", Category: model.CategoryProgramming, Icon: "r", Color: "orange"})
	require.NoError(t, err)

	path := "/api/users/1/progress/subjects/" + itoa(subj.ID)
	w = s.do(t, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "null", w.Body.String())

	w = s.do(t, http.MethodPost, "/api/progress", gin.H{"userId": 1, "subjectId": subj.ID, "strengthLevel": "weak", "progressPercentage": 10})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	first := decode[model.UserProgress](t, w)

	w = s.do(t, http.MethodPost, "/api/progress", gin.H{"userId": 1, "subjectId": subj.ID, "strengthLevel": "average", "progressPercentage": 40})
	require.Equal(t, http.StatusCreated, w.Code)
	second := decode[model.UserProgress](t, w)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 40.0, second.ProgressPercentage)

	w = s.do(t, http.MethodPatch, path+"/strength", gin.H{"strengthLevel": "strong", "strongAreas": []string{"ownership"}})
	require.Equal(t, http.StatusNoContent, w.Code)

	w = s.do(t, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, w.Code)
	updated := decode[model.UserProgress](t, w)
	assert.Equal(t, model.StrengthStrong, updated.StrengthLevel)
	assert.Equal(t, []string{"ownership"}, []string(updated.StrongAreas))
}

func TestAssessmentEndpoints(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/assessments", gin.H{
		"userId":    1,
		"subjectId": 2,
		"type":      "quick",
		"questions": []string{"q1"},
		"answers":   []int{0},
		"score":     80,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.do(t, http.MethodGet, "/api/users/1/assessments?subjectId=2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]model.Assessment](t, w), 1)

	w = s.do(t, http.MethodGet, "/api/users/1/assessments?subjectId=3", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[[]model.Assessment](t, w))

	w = s.do(t, http.MethodGet, "/api/users/1/assessments?subjectId=x", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAchievementsAndRecommendations(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/achievements", gin.H{"userId": 1, "title": "7 day streak", "icon": "fire", "color": "red"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.do(t, http.MethodGet, "/api/users/1/achievements", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]model.Achievement](t, w), 1)

	w = s.do(t, http.MethodPost, "/api/recommendations", gin.H{"userId": 1, "type": "focus_area", "content": "graphs", "priority": "high"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	rec := decode[model.AiRecommendation](t, w)
	assert.True(t, rec.IsActive)

	w = s.do(t, http.MethodPatch, "/api/recommendations/"+itoa(rec.ID)+"/deactivate", nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = s.do(t, http.MethodGet, "/api/users/1/recommendations", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())
}

func TestAIEndpoints(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/ai/generate-assessment", gin.H{"subject": "DSA", "difficulty": "medium"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, service.DefaultQuestionCount, s.generator.lastCount)
	body := decode[map[string][]model.AssessmentQuestion](t, w)
	assert.Len(t, body["questions"], service.DefaultQuestionCount)

	w = s.do(t, http.MethodPost, "/api/ai/generate-content", gin.H{"subject": "DSA", "topic": "graphs", "userLevel": "beginner"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "DSA/graphs", decode[model.PersonalizedContent](t, w).Explanation)

	w = s.do(t, http.MethodPost, "/api/ai/daily-recommendations", gin.H{"userProgress": []int{1}})
	require.Equal(t, http.StatusOK, w.Code)
	recs := decode[map[string][]model.GeneratedRecommendation](t, w)
	assert.Len(t, recs["recommendations"], 1)

	w = s.do(t, http.MethodPost, "/api/ai/programming-exercise", gin.H{"language": "go", "topic": "maps"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAIUpstreamFailure(t *testing.T) {
	s := newTestServer(t)
	s.generator.err = apperr.Upstream(errors.New("Failed to generate programming exercise: status 429"))

	w := s.do(t, http.MethodPost, "/api/ai/programming-exercise", gin.H{"language": "go", "topic": "maps", "difficulty": "easy"})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Failed to generate programming exercise: status 429", decode[map[string]string](t, w)["message"])
}

func TestHealthCheck(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}
