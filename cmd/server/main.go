package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/adrianliechti/cardsheet/config"
	"github.com/adrianliechti/cardsheet/pkg/otel"
	"github.com/adrianliechti/cardsheet/server"
)

func main() {
	configFlag := flag.String("config", os.Getenv("CONFIG"), "config file")
	addressFlag := flag.String("address", "", "listen address")

	flag.Parse()

	setupLogger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdown, err := otel.Setup(ctx, "cardsheet")

	if err != nil {
		slog.Error("failed to set up telemetry", "error", err)
		os.Exit(1)
	}

	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		shutdown(ctx)
	}()

	cfg, err := config.Parse(*configFlag)

	if err != nil {
		slog.Error("failed to load config", "path", *configFlag, "error", err)
		os.Exit(1)
	}

	if *addressFlag != "" {
		cfg.Address = *addressFlag
	}

	driver, err := cfg.Driver()

	if err != nil {
		slog.Error("failed to create driver", "error", err)
		os.Exit(1)
	}

	if err := driver.CheckTemplate(); err != nil {
		slog.Warn("back template missing, uploads are disabled", "path", driver.TemplatePath())
	}

	s, err := server.New(cfg, driver)

	if err != nil {
		slog.Error("failed to create server", "error", err)
		os.Exit(1)
	}

	if err := s.ListenAndServe(ctx); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func setupLogger() {
	level := slog.LevelInfo

	if otel.Debug() {
		level = slog.LevelDebug
	}

	options := &slog.HandlerOptions{
		Level: level,
	}

	var handler slog.Handler = slog.NewTextHandler(os.Stderr, options)

	if os.Getenv("LOG_FORMAT") == "json" {
		handler = slog.NewJSONHandler(os.Stdout, options)
	}

	slog.SetDefault(slog.New(handler))
}
