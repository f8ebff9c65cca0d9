// Command ariston-bridge polls Ariston NET appliances and republishes their
// state and energy figures over MQTT as retained JSON documents. It can host
// an embedded broker for standalone setups and serve a small HTTP status API.
//
// Usage:
//
//	ariston-bridge -config /etc/ariston/bridge.yaml
//
// Flags:
//
//	-config string     Path to the YAML configuration file (default "bridge.yaml")
//	-log-level string  Log level: debug, info, warn, error (default "info")
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	ariston "github.com/tj-smith47/ariston-go"
	"github.com/tj-smith47/ariston-go/internal/bridge"
)

var (
	configPath string
	logLevel   string
)

func init() {
	flag.StringVar(&configPath, "config", "bridge.yaml", "Path to the YAML configuration file")
	flag.StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error")
}

func main() {
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLevel(logLevel),
	}))
	slog.SetDefault(logger)

	cfg, err := bridge.LoadConfig(configPath)
	if err != nil {
		logger.Error("loading config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	b := bridge.New(cfg, bridge.WithLogger(ariston.NewSlogLogger(logger.Handler())))
	if err := b.Run(ctx); err != nil {
		logger.Error("bridge stopped", "error", err)
		os.Exit(1)
	}
	logger.Info("bridge stopped")
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
