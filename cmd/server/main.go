// Package main is the entry point for the pantry planner server.
//
// main stays minimal: read configuration from the environment, build the
// logger, hand both to internal/server, and block until shutdown. All actual
// logic lives in the internal packages.
package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/mlaurent/pantry-planner/internal/auth"
	"github.com/mlaurent/pantry-planner/internal/server"
)

func main() {
	env := os.Getenv("ENV") // "development" enables verbose error responses
	devMode := env == "development"

	logLevel := slog.LevelInfo
	if devMode {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))

	port := 8080
	if portStr := os.Getenv("PORT"); portStr != "" {
		var err error
		port, err = strconv.Atoi(portStr)
		if err != nil {
			logger.Error("invalid PORT value", slog.String("value", portStr))
			os.Exit(1)
		}
	}

	// JWT_SECRET must be a long random string, e.g.:
	//   JWT_SECRET=$(openssl rand -hex 32)
	// Unlike optional settings there is no default — a guessable secret
	// would let anyone forge sessions.
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logger.Error("JWT_SECRET is not set — refusing to start")
		os.Exit(1)
	}

	// Session lifetime in days; default 30.
	tokenTTL := auth.DefaultTokenTTL
	if daysStr := os.Getenv("JWT_EXPIRE_DAYS"); daysStr != "" {
		days, err := strconv.Atoi(daysStr)
		if err != nil || days <= 0 {
			logger.Error("invalid JWT_EXPIRE_DAYS value", slog.String("value", daysStr))
			os.Exit(1)
		}
		tokenTTL = time.Duration(days) * 24 * time.Hour
	}

	dbPath := "data/pantry.db"
	if envDB := os.Getenv("DB_PATH"); envDB != "" {
		dbPath = envDB
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		logger.Error("failed to create database directory",
			slog.String("dir", filepath.Dir(dbPath)),
			slog.String("error", err.Error()),
		)
		os.Exit(1)
	}

	staticDir := os.Getenv("STATIC_DIR") // empty disables static serving

	cfg := server.Config{
		Port:      port,
		DBPath:    dbPath,
		StaticDir: staticDir,
		JWTSecret: jwtSecret,
		TokenTTL:  tokenTTL,
		DevMode:   devMode,
	}

	srv, err := server.New(cfg, logger)
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := srv.Start(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
