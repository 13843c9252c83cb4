package service

import (
	"context"
	"encoding/json"
	"io"
	"learning_dashboard_backend/internal/apperr"
	"learning_dashboard_backend/internal/config"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCompletions 模拟 OpenAI 兼容接口，content 为返回给调用方的消息内容
func fakeCompletions(t *testing.T, status int, content string, seen func(ChatCompletionRequest, *http.Request)) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req ChatCompletionRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if seen != nil {
			seen(req, r)
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status != http.StatusOK {
			_, _ = w.Write([]byte(`{"error":{"message":"rate limited"}}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": content}},
			},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testAIConfig(baseURL string) config.AIConfig {
	return config.AIConfig{
		BaseURL: baseURL,
		APIKey:  "test-key",
		Model:   "gpt-4o",
		Timeout: 5 * time.Second,
	}
}

func TestGeneratePersonalizedContent(t *testing.T) {
	var got ChatCompletionRequest
	var auth string
	srv := fakeCompletions(t, http.StatusOK,
		`{"explanation":"Loops repeat work","examples":["for i := range 3"],"practiceProblems":["sum 1..n"],"difficulty":"beginner"}`,
		func(req ChatCompletionRequest, r *http.Request) {
			got = req
			auth = r.Header.Get("Authorization")
		})

	svc := NewAIService(testAIConfig(srv.URL), nil)
	content, err := svc.GeneratePersonalizedContent(context.Background(), "Python", "loops", "beginner", []string{"iteration", "ranges"})
	require.NoError(t, err)

	assert.Equal(t, "Loops repeat work", content.Explanation)
	assert.Equal(t, []string{"sum 1..n"}, content.PracticeProblems)
	assert.Equal(t, "Bearer test-key", auth)
	assert.Equal(t, "gpt-4o", got.Model)
	require.NotNil(t, got.ResponseFormat)
	assert.Equal(t, "json_object", got.ResponseFormat.Type)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Contains(t, got.Messages[1].Content, "iteration, ranges")
}

func TestGenerateAssessmentQuestionsDefaultsCount(t *testing.T) {
	var prompt string
	srv := fakeCompletions(t, http.StatusOK,
		`{"questions":[{"id":"q1","question":"2+2?","options":["3","4"],"correctAnswer":1,"explanation":"","topic":"arithmetic","difficulty":"easy"}]}`,
		func(req ChatCompletionRequest, r *http.Request) { prompt = req.Messages[1].Content })

	svc := NewAIService(testAIConfig(srv.URL), nil)
	questions, err := svc.GenerateAssessmentQuestions(context.Background(), "Math", "easy", 0)
	require.NoError(t, err)
	require.Len(t, questions, 1)
	assert.Equal(t, 1, questions[0].CorrectAnswer)
	assert.True(t, strings.HasPrefix(prompt, "Generate 5 assessment questions"))
}

func TestAIUpstreamFailure(t *testing.T) {
	srv := fakeCompletions(t, http.StatusTooManyRequests, "", nil)
	svc := NewAIService(testAIConfig(srv.URL), nil)

	_, err := svc.GenerateProgrammingExercise(context.Background(), "Go", "maps", "easy")
	require.Error(t, err)
	assert.Equal(t, apperr.UpstreamFailure, apperr.KindOf(err))
	assert.Contains(t, err.Error(), "Failed to generate programming exercise")
	assert.Contains(t, err.Error(), "status 429")
}

func TestAIInvalidJSONIsUpstreamFailure(t *testing.T) {
	srv := fakeCompletions(t, http.StatusOK, "not json", nil)
	svc := NewAIService(testAIConfig(srv.URL), nil)

	_, err := svc.AnalyzeWeaknesses(context.Background(), json.RawMessage(`[{"score":40}]`), nil)
	assert.Equal(t, apperr.UpstreamFailure, apperr.KindOf(err))
}

func TestAITimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// 读完请求体后服务端才能感知客户端断开
		io.Copy(io.Discard, r.Body)
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	t.Cleanup(func() {
		srv.CloseClientConnections()
		srv.Close()
	})

	cfg := testAIConfig(srv.URL)
	cfg.Timeout = 50 * time.Millisecond
	svc := NewAIService(cfg, nil)

	start := time.Now()
	_, err := svc.GenerateDailyRecommendations(context.Background(), json.RawMessage(`{}`), nil)
	assert.Equal(t, apperr.UpstreamFailure, apperr.KindOf(err))
	assert.Less(t, time.Since(start), time.Second)
}

type memoryCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func (c *memoryCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	return v, ok, nil
}

func (c *memoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	return nil
}

func TestAICacheSkipsSecondUpstreamCall(t *testing.T) {
	var calls atomic.Int32
	srv := fakeCompletions(t, http.StatusOK,
		`{"recommendations":[{"type":"focus","content":"Review recursion","priority":"high","actionable":true}]}`,
		func(ChatCompletionRequest, *http.Request) { calls.Add(1) })

	cfg := testAIConfig(srv.URL)
	cfg.CacheTTL = time.Minute
	svc := NewAIService(cfg, &memoryCache{data: map[string][]byte{}})

	ctx := context.Background()
	progress := json.RawMessage(`{"overallProgress":73}`)
	first, err := svc.GenerateDailyRecommendations(ctx, progress, nil)
	require.NoError(t, err)
	second, err := svc.GenerateDailyRecommendations(ctx, progress, nil)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), calls.Load())
}
