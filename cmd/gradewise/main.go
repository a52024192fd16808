package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gradewise-dev/gradewise/db"
	"github.com/gradewise-dev/gradewise/internal/auth"
	"github.com/gradewise-dev/gradewise/internal/config"
	"github.com/gradewise-dev/gradewise/internal/logger"
	"github.com/gradewise-dev/gradewise/internal/router"
	"github.com/gradewise-dev/gradewise/internal/scheduler"
	"github.com/gradewise-dev/gradewise/internal/services"
)

func main() {
	cfg, err := config.Load()

	if err != nil {
		logger.Log.Fatalf("Error loading configuration: %v", err)
	}

	logger.Configure(cfg.Log.Level, cfg.Log.Format)
	logger.Log.Infof("Starting with %s", cfg)

	if err = auth.InitJWT(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL); err != nil {
		logger.Log.Fatalf("Failed to initialize JWT: %v", err)
	}

	if err = db.ConnectDatabase(cfg.Database.Driver, cfg.Database.URL); err != nil {
		logger.Log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err = db.MigrateDatabase(); err != nil {
		logger.Log.Fatalf("Failed to migrate database: %v", err)
	}

	notifier := services.NewNotifier(cfg.Notify.DiscordWebhook, cfg.Notify.SlackWebhook)

	if err = scheduler.Initialize(cfg.Goals.SweepSchedule, notifier); err != nil {
		logger.Log.Fatalf("Failed to start goal scheduler: %v", err)
	}
	defer scheduler.Shutdown()

	gin.SetMode(gin.ReleaseMode)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router.NewRouter(cfg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Log.Infof("Listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.WithError(err).Error("Graceful shutdown failed")
	}
}
