package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/habitflow-dev/habitflow/config"
	"github.com/habitflow-dev/habitflow/internal/email"
	"github.com/habitflow-dev/habitflow/internal/health"
	"github.com/habitflow-dev/habitflow/internal/infrastructure/postgres"
	ctxlog "github.com/habitflow-dev/habitflow/internal/log"
	"github.com/habitflow-dev/habitflow/internal/metrics"
	httptransport "github.com/habitflow-dev/habitflow/internal/transport/http"
	"github.com/habitflow-dev/habitflow/internal/transport/http/handler"
	"github.com/habitflow-dev/habitflow/internal/usecase"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := newLogger(cfg.Env, cfg.SlogLevel())

	if cfg.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		stop()
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	habitRepo := postgres.NewHabitRepository(pool)
	checkInRepo := postgres.NewCheckInRepository(pool)
	timeEntryRepo := postgres.NewTimeEntryRepository(pool)

	sender := email.NewSender(cfg.Env, cfg.ResendAPIKey, cfg.ResendFrom, logger)

	jwtKey := []byte(cfg.JWTSecret)
	authUsecase := usecase.NewAuthUsecase(userRepo, sender, logger, jwtKey, time.Duration(cfg.JWTTTLHours)*time.Hour)
	habitUsecase := usecase.NewHabitUsecase(habitRepo, checkInRepo, timeEntryRepo)
	historyUsecase := usecase.NewHistoryUsecase(habitRepo, checkInRepo, timeEntryRepo)
	reportUsecase := usecase.NewReportUsecase(habitRepo, checkInRepo, timeEntryRepo, time.Weekday(cfg.WeekStartsOn))

	authHandler := handler.NewAuthHandler(authUsecase, logger)
	habitHandler := handler.NewHabitHandler(habitUsecase, logger)
	historyHandler := handler.NewHistoryHandler(historyUsecase, logger)
	reportHandler := handler.NewReportHandler(reportUsecase, logger)

	metrics.Register()
	checker := health.NewChecker(pool, logger, prometheus.DefaultRegisterer)

	srv := http.Server{
		Addr:    ":" + cfg.Port,
		Handler: httptransport.NewRouter(logger, authHandler, habitHandler, historyHandler, reportHandler, jwtKey),
	}

	metricsSrv := metrics.NewServer(":"+cfg.MetricsPort, checker)

	go func() {
		logger.Info("server started", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	go func() {
		logger.Info("metrics server started", "port", cfg.MetricsPort)
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", "error", err)
		}
	}()

	<-ctx.Done()
	stop()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "error", err)
	}
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown", "error", err)
	}
}

func newLogger(env string, level slog.Level) *slog.Logger {
	var inner slog.Handler
	if env == "local" {
		inner = tint.NewHandler(os.Stdout, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		})
	} else {
		inner = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: level,
		})
	}
	return slog.New(ctxlog.NewContextHandler(inner))
}
