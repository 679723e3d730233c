// @title StackIt 问答社区 API
// @version 1.0
// @description StackIt 问答社区后端：问题、回答、标签、投票与通知。

// @host localhost:8000
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"flag"
	"log"

	"stackit_backend/internal/app"
	"stackit_backend/internal/config"
	"stackit_backend/pkg/database"
	"stackit_backend/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	// 命令行参数
	migrateOnly := flag.Bool("migrate-only", false, "只执行数据库迁移，完成后退出")
	migrate := flag.Bool("migrate", false, "启动时强制执行数据库迁移（即使是 release 模式）")
	flag.Parse()

	cfg, err := config.LoadConfig(app.ConfigDir)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 设置迁移标志
	cfg.ForceMigrate = *migrate || *migrateOnly
	cfg.MigrateOnly = *migrateOnly

	// 仅迁移：不启动路由、追踪和配置监听
	if *migrateOnly {
		runMigrations(cfg)
		return
	}

	application := app.NewApp(cfg)
	defer logger.Sync()

	application.Run()
}

func runMigrations(cfg *config.Config) {
	logger.InitLogger(cfg.Server.Mode)
	defer logger.Sync()

	db, err := database.InitDB(&cfg.Database, true)
	if err != nil {
		logger.Log.Fatal("数据库迁移失败", zap.Error(err))
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	logger.Log.Info("数据库迁移完成，退出程序")
}
