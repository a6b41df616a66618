package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/stemsi/course-service/internal/config"
	"github.com/stemsi/course-service/internal/handler"
	"github.com/stemsi/course-service/internal/logger"
	"github.com/stemsi/course-service/internal/model"
	"github.com/stemsi/course-service/internal/repository"
	"github.com/stemsi/course-service/internal/router"
	"github.com/stemsi/course-service/internal/service"
	"github.com/stemsi/course-service/internal/validator"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("app", cfg.AppName).
		Str("env", cfg.AppEnv).
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("id_strategy", cfg.IDStrategy).
		Msg("Starting course service")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	// ─── Initialize Repository & Service ───────────────────────────────
	courseRepo := repository.NewMemoryCourseRepository(model.DefaultCourses())
	courseService := service.NewCourseService(courseRepo, cfg.IDStrategy, log)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Course: handler.NewCourseHandler(courseService, log),
		Page:   handler.NewPageHandler(),
		Static: handler.NewStaticHandler(cfg.PublicDir),
		System: handler.NewSystemHandler(),
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r, err := router.SetupRouter(handlers, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to set up router")
	}

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", srv.Addr).Msgf("Listening on port %s...", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
