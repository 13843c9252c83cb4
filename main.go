// @title Learning Dashboard API
// @version 1.0
// @description 学习进度仪表盘后端服务：学科、进度、测评、学习会话以及 AI 生成内容。

// @host localhost:5000
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"flag"
	"learning_dashboard_backend/internal/app"
	"learning_dashboard_backend/internal/config"
	"learning_dashboard_backend/pkg/logger"
	"log"

	"go.uber.org/zap"
)

func main() {
	// 命令行参数
	configDir := flag.String("config", "configs", "配置文件所在目录")
	flag.Parse()

	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully", zap.String("mode", cfg.Server.Mode))

	application, err := app.NewApp(cfg)
	if err != nil {
		logger.Log.Fatal("Failed to initialize application", zap.Error(err))
	}

	if err := application.Run(); err != nil {
		logger.Log.Error("Server stopped with error", zap.Error(err))
	}
}
