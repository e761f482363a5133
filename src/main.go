package main

import (
	"log"
	"log/slog"
	"os"

	"therapy-scheduler/logger"
	"therapy-scheduler/src/config"
	"therapy-scheduler/src/server"
)

// @title Therapy Scheduler API
// @version 1.0
// @description Assigns therapy sessions to time slots and re-packs displaced sessions

// @contact.name   Therapy Scheduler Team
// @contact.url    https://github.com/your-org/therapy-scheduler
// @contact.email  therapy-scheduler@example.com

func main() {
	cfg := loadConfig()
	setupLogging(cfg.LogLevel)

	srv, err := server.NewServer(&cfg)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	if err := srv.Run(); err != nil {
		log.Fatalf("Server stopped with error: %v", err)
	}
}

func loadConfig() config.GlobalConfig {
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	return cfg
}

func setupLogging(level string) {
	slogger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLevel(level),
	}))
	slog.SetDefault(slogger)

	logger.Init(level)
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug", "DEBUG":
		return slog.LevelDebug
	case "warn", "WARN":
		return slog.LevelWarn
	case "error", "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
