// Package main serves a galaxy scene session over HTTP.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/Faultbox/founder-galaxy/internal/app"
	"github.com/Faultbox/founder-galaxy/internal/config"
	"github.com/Faultbox/founder-galaxy/internal/logger"
	"github.com/Faultbox/founder-galaxy/internal/quality"
	"github.com/Faultbox/founder-galaxy/internal/server"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Founder Galaxy server ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	a, err := app.New(cfg, quality.ProbeHost())
	if err != nil {
		logger.Error("failed to create session", zap.Error(err))
		os.Exit(1)
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(a.Session, server.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		CORSDebug:      cfg.Server.CORSDebug,
		RateLimit: server.RateLimitConfig{
			Enabled:           cfg.Server.RateLimit.Enabled,
			RequestsPerSecond: cfg.Server.RateLimit.RequestsPerSecond,
			Burst:             cfg.Server.RateLimit.Burst,
		},
	})
	if err := srv.ListenAndServe(ctx, cfg.Server.Addr); err != nil {
		logger.Error("server error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("server stopped")
}
