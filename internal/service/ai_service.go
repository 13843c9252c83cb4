package service

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"learning_dashboard_backend/internal/apperr"
	"learning_dashboard_backend/internal/config"
	"learning_dashboard_backend/internal/model"
	"learning_dashboard_backend/pkg/logger"
	"learning_dashboard_backend/pkg/monitoring"
	"learning_dashboard_backend/pkg/tracing"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ContentGenerator AI 内容生成能力，每个方法对应一种任务
type ContentGenerator interface {
	GeneratePersonalizedContent(ctx context.Context, subject, topic, userLevel string, weakAreas []string) (*model.PersonalizedContent, error)
	GenerateAssessmentQuestions(ctx context.Context, subject, difficulty string, count int) ([]model.AssessmentQuestion, error)
	AnalyzeWeaknesses(ctx context.Context, assessmentResults, userHistory json.RawMessage) (*model.WeaknessAnalysis, error)
	GenerateDailyRecommendations(ctx context.Context, userProgress, recentActivity json.RawMessage) ([]model.GeneratedRecommendation, error)
	GenerateProgrammingExercise(ctx context.Context, language, topic, difficulty string) (*model.ProgrammingExercise, error)
}

var _ ContentGenerator = (*AIService)(nil)

const DefaultQuestionCount = 5

type AIService struct {
	config config.AIConfig
	client *http.Client
	cache  ResponseCache
}

// NewAIService cache 可以为 nil
func NewAIService(cfg config.AIConfig, cache ResponseCache) *AIService {
	return &AIService{
		config: cfg,
		client: &http.Client{},
		cache:  cache,
	}
}

type AIChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type ChatCompletionRequest struct {
	Model          string          `json:"model"`
	Messages       []AIChatMessage `json:"messages"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type ChatCompletionResponse struct {
	Choices []struct {
		Message AIChatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (s *AIService) GeneratePersonalizedContent(ctx context.Context, subject, topic, userLevel string, weakAreas []string) (*model.PersonalizedContent, error) {
	prompt := fmt.Sprintf(`Generate personalized learning content for a learner studying %s, specifically %s.
User level: %s
Weak areas: %s

Provide content that addresses the learner's specific needs and weak areas.
Respond with JSON in this format: {
  "explanation": "clear explanation tailored to the learner's level",
  "examples": ["practical example 1", "practical example 2"],
  "practiceProblems": ["problem 1", "problem 2", "problem 3"],
  "difficulty": "beginner|intermediate|advanced"
}`, subject, topic, userLevel, strings.Join(weakAreas, ", "))

	var out model.PersonalizedContent
	err := s.complete(ctx, "personalized_content",
		"You are an expert AI tutor specializing in personalized education. Generate comprehensive, actionable learning content.",
		prompt, &out)
	if err != nil {
		return nil, upstreamError("Failed to generate personalized content", err)
	}
	return &out, nil
}

func (s *AIService) GenerateAssessmentQuestions(ctx context.Context, subject, difficulty string, count int) ([]model.AssessmentQuestion, error) {
	if count <= 0 {
		count = DefaultQuestionCount
	}
	prompt := fmt.Sprintf(`Generate %d assessment questions for %s at %s level.
Each question should test different aspects and help identify strengths/weaknesses.

Respond with JSON in this format: {
  "questions": [
    {
      "id": "unique_id",
      "question": "question text",
      "options": ["option1", "option2", "option3", "option4"],
      "correctAnswer": 0,
      "explanation": "why this answer is correct",
      "topic": "specific topic tested",
      "difficulty": "easy|medium|hard"
    }
  ]
}`, count, subject, difficulty)

	var out struct {
		Questions []model.AssessmentQuestion `json:"questions"`
	}
	err := s.complete(ctx, "assessment_questions",
		"You are an expert assessment creator. Generate high-quality, educational questions that accurately assess knowledge.",
		prompt, &out)
	if err != nil {
		return nil, upstreamError("Failed to generate assessment questions", err)
	}
	if out.Questions == nil {
		out.Questions = []model.AssessmentQuestion{}
	}
	return out.Questions, nil
}

func (s *AIService) AnalyzeWeaknesses(ctx context.Context, assessmentResults, userHistory json.RawMessage) (*model.WeaknessAnalysis, error) {
	prompt := fmt.Sprintf(`Analyze the learner's performance and identify weaknesses.
Assessment results: %s
Learning history: %s

Provide detailed analysis and recommendations for improvement.
Respond with JSON in this format: {
  "weakAreas": ["area1", "area2"],
  "recommendations": ["recommendation1", "recommendation2"],
  "focusTopics": ["topic1", "topic2"],
  "studyPlan": "detailed study plan"
}`, rawOrEmpty(assessmentResults), rawOrEmpty(userHistory))

	var out model.WeaknessAnalysis
	err := s.complete(ctx, "weakness_analysis",
		"You are an expert learning analyst. Provide detailed, actionable insights for a personalized learning journey.",
		prompt, &out)
	if err != nil {
		return nil, upstreamError("Failed to analyze weaknesses", err)
	}
	return &out, nil
}

func (s *AIService) GenerateDailyRecommendations(ctx context.Context, userProgress, recentActivity json.RawMessage) ([]model.GeneratedRecommendation, error) {
	prompt := fmt.Sprintf(`Generate personalized daily recommendations based on progress and activity.
User progress: %s
Recent activity: %s

Generate 3-5 specific, actionable recommendations for today's learning.
Respond with JSON in this format: {
  "recommendations": [
    {
      "type": "focus|strength|improvement",
      "content": "specific recommendation text",
      "priority": "high|medium|low",
      "actionable": true
    }
  ]
}`, rawOrEmpty(userProgress), rawOrEmpty(recentActivity))

	var out struct {
		Recommendations []model.GeneratedRecommendation `json:"recommendations"`
	}
	err := s.complete(ctx, "daily_recommendations",
		"You are a personal AI learning assistant. Generate encouraging, specific recommendations.",
		prompt, &out)
	if err != nil {
		return nil, upstreamError("Failed to generate recommendations", err)
	}
	if out.Recommendations == nil {
		out.Recommendations = []model.GeneratedRecommendation{}
	}
	return out.Recommendations, nil
}

func (s *AIService) GenerateProgrammingExercise(ctx context.Context, language, topic, difficulty string) (*model.ProgrammingExercise, error) {
	prompt := fmt.Sprintf(`Generate a %s level %s programming exercise for %s.
Include problem description, starter code, solution, and explanation.

Respond with JSON in this format: {
  "title": "exercise title",
  "description": "problem description",
  "starterCode": "starting code template",
  "solution": "complete solution",
  "explanation": "step-by-step explanation",
  "testCases": ["test case 1", "test case 2"]
}`, difficulty, language, topic)

	var out model.ProgrammingExercise
	err := s.complete(ctx, "programming_exercise",
		"You are an expert programming instructor. Generate educational coding exercises.",
		prompt, &out)
	if err != nil {
		return nil, upstreamError("Failed to generate programming exercise", err)
	}
	return &out, nil
}

// complete 发送一次 JSON 模式的对话请求并把结果解码到 out。
// 命中缓存时不访问上游；失败不重试。
func (s *AIService) complete(ctx context.Context, task, system, prompt string, out any) error {
	start := time.Now()
	key := cacheKey(task, system, prompt)

	if s.cache != nil {
		if cached, ok, err := s.cache.Get(ctx, key); err != nil {
			logger.Log.Warn("AI cache read failed", zap.String("task", task), zap.Error(err))
		} else if ok && json.Unmarshal(cached, out) == nil {
			monitoring.ObserveAICall(task, "cache_hit", time.Since(start))
			return nil
		}
	}

	content, err := s.chat(ctx, task, system, prompt)
	if err == nil {
		err = json.Unmarshal([]byte(content), out)
	}
	if err != nil {
		monitoring.ObserveAICall(task, "error", time.Since(start))
		logger.Log.Error("AI generation failed", zap.String("task", task), zap.Error(err))
		return err
	}
	monitoring.ObserveAICall(task, "ok", time.Since(start))

	if s.cache != nil && s.config.CacheTTL > 0 {
		if err := s.cache.Set(ctx, key, []byte(content), s.config.CacheTTL); err != nil {
			logger.Log.Warn("AI cache write failed", zap.String("task", task), zap.Error(err))
		}
	}
	return nil
}

func (s *AIService) chat(ctx context.Context, task, system, prompt string) (string, error) {
	if s.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.Timeout)
		defer cancel()
	}

	ctx, span := tracing.StartSpan(ctx, "ai."+task, attribute.String("ai.model", s.config.Model))
	defer span.End()

	reqBody := ChatCompletionRequest{
		Model: s.config.Model,
		Messages: []AIChatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: prompt},
		},
		ResponseFormat: &responseFormat{Type: "json_object"},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimRight(s.config.BaseURL, "/")+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.config.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("AI API error (status %d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var result ChatCompletionResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", err
	}
	if result.Error != nil {
		return "", errors.New(result.Error.Message)
	}
	if len(result.Choices) == 0 || result.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("AI returned no choices")
	}
	return result.Choices[0].Message.Content, nil
}

func upstreamError(prefix string, err error) error {
	return apperr.Upstream(fmt.Errorf("%s: %w", prefix, err))
}

func cacheKey(task, system, prompt string) string {
	sum := sha256.Sum256([]byte(system + "\x00" + prompt))
	return task + ":" + hex.EncodeToString(sum[:])
}

func rawOrEmpty(raw json.RawMessage) string {
	if len(bytes.TrimSpace(raw)) == 0 {
		return "[]"
	}
	return string(raw)
}
