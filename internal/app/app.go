package app

import (
	"context"
	"errors"
	"learning_dashboard_backend/internal/config"
	"learning_dashboard_backend/internal/controller"
	"learning_dashboard_backend/internal/middleware"
	"learning_dashboard_backend/internal/repository"
	"learning_dashboard_backend/internal/service"
	"learning_dashboard_backend/pkg/configwatcher"
	"learning_dashboard_backend/pkg/database"
	"learning_dashboard_backend/pkg/logger"
	"learning_dashboard_backend/pkg/monitoring"
	"learning_dashboard_backend/pkg/security"
	"learning_dashboard_backend/pkg/tracing"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	serviceName     = "learning-dashboard"
	shutdownTimeout = 5 * time.Second
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	Store  repository.Store
	Redis  *redis.Client

	services *services
	tracer   *sdktrace.TracerProvider

	// 后台任务（限流清理等）的生命周期
	ctx    context.Context
	cancel context.CancelFunc

	mu              sync.Mutex
	configCallbacks []func(*config.Config)

	closeOnce sync.Once
	closeErr  error
}

type services struct {
	user           *service.UserService
	catalog        *service.CatalogService
	progress       *service.ProgressService
	assessment     *service.AssessmentService
	session        *service.SessionService
	achievement    *service.AchievementService
	recommendation *service.RecommendationService
	dashboard      *service.DashboardService
	ai             *service.AIService
	auth           *service.AuthService
	storage        *service.StorageService
	snapshot       *service.SnapshotService
}

type controllers struct {
	user           *controller.UserController
	dashboard      *controller.DashboardController
	catalog        *controller.CatalogController
	progress       *controller.ProgressController
	assessment     *controller.AssessmentController
	session        *controller.SessionController
	achievement    *controller.AchievementController
	recommendation *controller.RecommendationController
	ai             *controller.AIController
	admin          *controller.AdminController
	health         *controller.HealthController
}

// RegisterConfigCallback 配置文件热更新后按注册顺序回调
func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) reloadConfig(cfg *config.Config) {
	a.mu.Lock()
	callbacks := append([]func(*config.Config){}, a.configCallbacks...)
	a.mu.Unlock()

	for _, cb := range callbacks {
		cb(cfg)
	}
	logger.Log.Info("Configuration reloaded", zap.String("file", cfg.ConfigFile))
}

func openStore(cfg *config.Config) (repository.Store, error) {
	if cfg.Store.Driver == "memory" {
		return repository.NewMemoryStore(), nil
	}

	db, err := database.InitDB(cfg.Store.Driver, &cfg.Database, cfg.Server.Mode)
	if err != nil {
		return nil, err
	}
	return repository.NewGormStore(db)
}

func seedStore(ctx context.Context, cfg *config.Config, store repository.Store) error {
	if !cfg.Store.Seed {
		return nil
	}

	data := repository.DefaultSeed()
	if cfg.Store.SeedFile != "" {
		loaded, err := repository.LoadSeedFile(cfg.Store.SeedFile)
		if err != nil {
			return err
		}
		data = loaded
	}

	seeded, err := repository.Seed(ctx, store, data)
	if err != nil {
		return err
	}
	if seeded {
		logger.Log.Info("Store seeded",
			zap.Int("users", len(data.Users)),
			zap.Int("subjects", len(data.Subjects)),
			zap.Int("progress", len(data.Progress)),
		)
	}
	return nil
}

func (a *App) initServices(ctx context.Context, cfg *config.Config) (*services, error) {
	store := a.Store
	s := &services{}

	s.user = service.NewUserService(store)
	s.catalog = service.NewCatalogService(store, store)
	s.progress = service.NewProgressService(store)
	s.assessment = service.NewAssessmentService(store)
	s.session = service.NewSessionService(store)
	s.achievement = service.NewAchievementService(store)
	s.recommendation = service.NewRecommendationService(store)
	s.dashboard = service.NewDashboardService(store, store, store, cfg.Dashboard)
	s.auth = service.NewAuthService(cfg)

	var cache service.ResponseCache
	if a.Redis != nil {
		cache = service.NewRedisResponseCache(a.Redis)
	}
	s.ai = service.NewAIService(cfg.AI, cache)

	storage, err := service.NewStorageService(ctx, &cfg.Storage)
	if err != nil {
		return nil, err
	}
	s.storage = storage
	s.snapshot = service.NewSnapshotService(store, storage)

	return s, nil
}

func (a *App) initControllers(s *services) *controllers {
	return &controllers{
		user:           controller.NewUserController(s.user),
		dashboard:      controller.NewDashboardController(s.dashboard),
		catalog:        controller.NewCatalogController(s.catalog),
		progress:       controller.NewProgressController(s.progress),
		assessment:     controller.NewAssessmentController(s.assessment),
		session:        controller.NewSessionController(s.session),
		achievement:    controller.NewAchievementController(s.achievement),
		recommendation: controller.NewRecommendationController(s.recommendation),
		ai:             controller.NewAIController(s.ai),
		admin:          controller.NewAdminController(s.auth, s.snapshot),
		health:         controller.NewHealthController(a.Store),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.Recovery())

	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	if cfg.RateLimit.MaxRequests > 0 {
		window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
		if window <= 0 {
			window = time.Minute
		}
		router.Use(security.RateLimiter(a.ctx, cfg.RateLimit.MaxRequests, window))
	}

	router.Use(monitoring.MetricsMiddleware())

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}
}

// NewApp 按配置打开存储、填充演示数据并装配路由
func NewApp(cfg *config.Config) (*App, error) {
	store, err := openStore(cfg)
	if err != nil {
		return nil, err
	}

	var rdb *redis.Client
	if cfg.Redis.Enabled {
		rdb, err = database.InitRedis(context.Background(), &cfg.Redis)
		if err != nil {
			// AI 缓存可选，Redis 不可用时退化为直连
			logger.Log.Warn("Redis unavailable, AI cache disabled", zap.Error(err))
			rdb = nil
		}
	}

	app, err := newApp(cfg, store, rdb)
	if err != nil {
		store.Close()
		return nil, err
	}

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(serviceName, cfg.Tracing.CollectorEndpoint)
		if err != nil {
			app.Close()
			return nil, err
		}
		app.tracer = tp
	}

	return app, nil
}

func newApp(cfg *config.Config, store repository.Store, rdb *redis.Client) (*App, error) {
	gin.SetMode(cfg.Server.Mode)

	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		Config: cfg,
		Store:  store,
		Redis:  rdb,
		ctx:    ctx,
		cancel: cancel,
	}

	if err := seedStore(ctx, cfg, store); err != nil {
		cancel()
		return nil, err
	}

	services, err := app.initServices(ctx, cfg)
	if err != nil {
		cancel()
		return nil, err
	}
	app.services = services
	controllers := app.initControllers(services)

	// 监控初始化
	monitoring.Init()
	monitoring.SetStoreSource(store.Counts)

	app.RegisterConfigCallback(func(c *config.Config) {
		logger.SetLevel(c.Server.Mode)
	})
	app.RegisterConfigCallback(func(c *config.Config) {
		services.dashboard.UpdateSettings(c.Dashboard)
	})

	router := gin.New()
	app.Router = router
	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, controllers, cfg)

	return app, nil
}

// Run 启动 HTTP 服务并监听配置变更，收到 SIGINT/SIGTERM 后优雅退出
func (a *App) Run() error {
	sigCtx, stop := signal.NotifyContext(a.ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	g, ctx := errgroup.WithContext(sigCtx)

	// 启动服务器
	g.Go(func() error {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		logger.Log.Info("Shutting down server...")

		// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if a.Config.ConfigFile != "" {
		g.Go(func() error {
			return configwatcher.Watch(ctx, a.Config.ConfigFile, a.reloadConfig)
		})
	}

	err := g.Wait()

	if a.Config.Storage.SnapshotOnShutdown {
		a.exportSnapshot()
	}
	if closeErr := a.Close(); closeErr != nil {
		logger.Log.Error("Failed to release resources", zap.Error(closeErr))
	}

	logger.Log.Info("Server exiting")
	return err
}

func (a *App) exportSnapshot() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	result, err := a.services.snapshot.Export(ctx)
	if err != nil {
		logger.Log.Error("Failed to export snapshot on shutdown", zap.Error(err))
		return
	}
	logger.Log.Info("Snapshot exported", zap.String("name", result.Name), zap.String("url", result.URL))
}

// Close 释放存储、Redis 与追踪资源，可重复调用
func (a *App) Close() error {
	a.closeOnce.Do(func() {
		a.closeErr = a.release()
	})
	return a.closeErr
}

func (a *App) release() error {
	a.cancel()

	var errs []error
	if a.tracer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := a.tracer.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := a.Store.Close(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
