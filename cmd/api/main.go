package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/octobees/lead-intake/api/internal/config"
	"github.com/octobees/lead-intake/api/internal/database"
	"github.com/octobees/lead-intake/api/internal/handler"
	"github.com/octobees/lead-intake/api/internal/logging"
	middlewarepkg "github.com/octobees/lead-intake/api/internal/middleware"
	"github.com/octobees/lead-intake/api/internal/notify"
	"github.com/octobees/lead-intake/api/internal/repository"
	"github.com/octobees/lead-intake/api/internal/router"
	"github.com/octobees/lead-intake/api/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := logging.New(logging.Options{Level: cfg.LogLevel, File: cfg.LogFile})
	defer logger.Close()

	// Leads are still accepted when the database is down, so a failed
	// connection only disables persistence.
	store := repository.NewPGXDocumentStore(nil)
	if cfg.DatabaseURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		pool, err := database.Connect(ctx, cfg.DatabaseURL, cfg.DatabaseName)
		cancel()
		if err != nil {
			logger.Error("database unavailable, leads will not be persisted", "error", err)
		} else {
			defer pool.Close()
			store = repository.NewPGXDocumentStore(pool)
		}
	} else {
		logger.Warn("DATABASE_URL not set, leads will not be persisted")
	}

	var sender notify.EmailSender
	if s := notify.NewSMTPSender(cfg.Mail); s != nil {
		sender = s
	}
	dispatcher := notify.NewDispatcher(cfg.Mail, sender, logger)

	leadsService := service.NewLeadsService(store, dispatcher, logger)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = handler.HTTPErrorHandler(logger)

	e.Use(middlewarepkg.RequestID())
	e.Use(middlewarepkg.Logging(logger))
	e.Use(echoMiddleware.Recover())
	e.Use(middlewarepkg.CORS(cfg.AllowedOrigins))

	router.Register(e, router.Handlers{
		Leads:  handler.NewLeadsHandler(leadsService, logger),
		Health: handler.NewHealthHandler(store, cfg),
	})

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("server starting", "port", cfg.Port, "notifications", dispatcher.Enabled(), "persistence", store.Available())
		serverErr <- e.Start(":" + cfg.Port)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logger.Info("shutting down", "signal", sig.String())
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
		return
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
	dispatcher.Wait()
}
