package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"aigc-studio-mock-api/api"
	"aigc-studio-mock-api/pkg/config"
	"aigc-studio-mock-api/pkg/database"
	"aigc-studio-mock-api/pkg/logger"
	"aigc-studio-mock-api/pkg/simulate"
	"aigc-studio-mock-api/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// 加载配置
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer func() { _ = zapLogger.Sync() }()
	zap.ReplaceGlobals(zapLogger)

	if cfg.UsesDefaultSecret() {
		zapLogger.Warn("JWT_SECRET is not set, presigned URLs use the development secret")
	}

	// 持久化：关闭 / 快照文件 / PostgreSQL
	persister, err := database.NewPersister(database.DatabaseConfig{
		DataPath:       cfg.DataPath,
		PersistChanges: cfg.PersistChanges,
		PostgresDSN:    cfg.PostgresDSN,
	})
	if err != nil {
		zapLogger.Fatal("failed to init persister", zap.Error(err))
	}

	opts := []database.Option{database.WithLogger(zapLogger)}
	if persister != nil {
		opts = append(opts, database.WithPersister(persister))
	}
	db, err := database.NewMockDatabase(cfg.DataPath, opts...)
	if err != nil {
		zapLogger.Fatal("failed to load mock data", zap.String("path", cfg.DataPath), zap.Error(err))
	}
	defer db.Close()

	sim, err := simulate.New(utils.RandomTokenSource{}, nil)
	if err != nil {
		zapLogger.Fatal("failed to load canned content", zap.Error(err))
	}

	router := api.NewRouter(api.Dependencies{
		Config:    cfg,
		DB:        db,
		Simulator: sim,
		Signer:    utils.NewPresignSigner(cfg.JWTSecret, cfg.StorageBaseURL, cfg.PresignTTL),
		Tokens:    utils.RandomTokenSource{},
		Logger:    zapLogger,
	})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	zapLogger.Info("starting mock api server",
		zap.String("addr", cfg.Addr()),
		zap.String("environment", cfg.Environment),
		zap.String("data_path", cfg.DataPath),
		zap.String("persistence", cfg.PersistenceMode()),
		zap.Bool("cors", cfg.AllowCORS),
	)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("HTTP server listen error", zap.Error(err))
		}
	}()

	// SIGHUP 重新加载快照（MOCK_RELOAD=true 时），SIGINT/SIGTERM 优雅退出
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	for sig := range quit {
		if sig == syscall.SIGHUP {
			if !cfg.Reload {
				zapLogger.Info("SIGHUP ignored, MOCK_RELOAD is disabled")
				continue
			}
			if err := db.Reload(); err != nil {
				zapLogger.Error("failed to reload mock data", zap.Error(err))
			} else {
				zapLogger.Info("mock data reloaded", zap.String("path", cfg.DataPath))
			}
			continue
		}
		break
	}
	zapLogger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("HTTP server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("server exiting")
}
