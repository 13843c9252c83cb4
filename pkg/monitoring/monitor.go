package monitoring

import (
	"context"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	AICalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ai_generation_calls_total",
			Help: "Total number of AI content generation calls",
		},
		[]string{"task", "result"},
	)

	AIDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ai_generation_duration_seconds",
			Help:    "Duration of upstream AI calls",
			Buckets: []float64{0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"task"},
	)

	storeEntitiesDesc = prometheus.NewDesc(
		"store_entities",
		"Number of records held by the entity store",
		[]string{"kind"}, nil,
	)

	initOnce    sync.Once
	storeSource atomic.Pointer[CountFunc]
)

// CountFunc 返回各实体种类的记录数
type CountFunc func(ctx context.Context) (map[string]int, error)

// Init 注册全部指标，可重复调用
func Init() {
	initOnce.Do(func() {
		prometheus.MustRegister(RequestCounter)
		prometheus.MustRegister(RequestDuration)
		prometheus.MustRegister(AICalls)
		prometheus.MustRegister(AIDuration)
		prometheus.MustRegister(storeCollector{})
	})
}

// SetStoreSource 指定实体计数来源，后设置的覆盖先前的
func SetStoreSource(fn CountFunc) {
	storeSource.Store(&fn)
}

// ObserveAICall 记录一次 AI 调用，result 取 ok / error / cache_hit
func ObserveAICall(task, result string, elapsed time.Duration) {
	AICalls.WithLabelValues(task, result).Inc()
	if result != "cache_hit" {
		AIDuration.WithLabelValues(task).Observe(elapsed.Seconds())
	}
}

type storeCollector struct{}

func (storeCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- storeEntitiesDesc
}

func (storeCollector) Collect(ch chan<- prometheus.Metric) {
	fn := storeSource.Load()
	if fn == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	counts, err := (*fn)(ctx)
	if err != nil {
		return
	}
	for kind, n := range counts {
		ch <- prometheus.MustNewConstMetric(storeEntitiesDesc, prometheus.GaugeValue, float64(n), kind)
	}
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start).Seconds()
		status := c.Writer.Status()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}

		RequestCounter.WithLabelValues(
			c.Request.Method,
			endpoint,
			strconv.Itoa(status),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			endpoint,
		).Observe(duration)
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
