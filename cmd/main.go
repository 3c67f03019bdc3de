package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"wishly/internal/application"
	"wishly/internal/config"
	"wishly/pkg/contextx"
	"wishly/pkg/logx"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config.Load", logx.Error(err))
		os.Exit(1)
	}

	log := logx.New(os.Stdout, cfg.Log.Format, cfg.Log.Level).With(slog.String("app", cfg.App.Name))
	slog.SetDefault(log)

	ctx = contextx.WithLogger(ctx, log)

	if err = application.Run(ctx, cfg); err != nil {
		log.Error("application failed", logx.Error(err))
		os.Exit(1) //nolint:gocritic
	}

	log.Info("application stopped")
}
