package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"lakeweather.bot/internal/app"
	"lakeweather.bot/internal/config"
	"lakeweather.bot/pkg/logger"
)

func main() {
	// Load environment variables from .env file if present
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found or error loading it")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger.NewWithLevel(logger.ParseLevel(cfg.LogLevel)).SetDefault()

	application, err := app.NewApplication(cfg)
	if err != nil {
		slog.Error("Failed to initialize application", "error", err)
		os.Exit(1)
	}

	slog.Info("Configuration loaded successfully",
		"port", cfg.Server.Port,
		"database", cfg.Database.Driver.String(),
		"cache", cfg.Cache.Type.String(),
		"telegram", cfg.Telegram.Enabled())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	setupGracefulShutdown(cancel, application)

	slog.Info("Starting Ladoga weather bot...")
	if err := application.Start(ctx); err != nil {
		slog.Error("Failed to start application", "error", err)
		_ = application.Shutdown(context.Background())
		os.Exit(1)
	}
	slog.Info("Ladoga weather bot stopped")
}

func setupGracefulShutdown(cancel context.CancelFunc, app *app.Application) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		slog.Info("Received shutdown signal...")

		// Stops the bot's polling loop before the server is drained.
		// Start returns only after Shutdown below has finished.
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := app.Shutdown(shutdownCtx); err != nil {
			slog.Error("Error during graceful shutdown", "error", err)
		}
	}()
}
