// Package main is a demo host for the devhud overlay core. It feeds live
// CPU and goroutine samples plus periodic memory snapshots through the
// event bus, and prints the aggregate-state export on shutdown. A real
// interactive application would emit the same events from its frame loop
// and network layer.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/devhud/devhud/internal/bus"
	"github.com/devhud/devhud/internal/config"
	"github.com/devhud/devhud/internal/hud"
	"github.com/devhud/devhud/internal/provider"
)

var (
	// version is set at build time via -ldflags.
	version = "dev"

	configPath  = flag.String("config", "devhud.yaml", "Path to configuration file")
	showVersion = flag.Bool("version", false, "Show version and exit")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Printf("devhud %s\n", version)
		os.Exit(0)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := initLogger(cfg)
	defer logger.Sync()

	logger.Info("Starting devhud",
		zap.String("version", version),
		zap.Int("metric_capacity", cfg.History.MetricCapacity))

	h := hud.New(cfg, provider.NewSystemProvider(), logger)
	h.OnFault(func(err error) {
		logger.Fatal("Core invariant violated", zap.Error(err))
	})
	h.Metrics.OnRender(func() {
		logger.Debug("Render pass: performance graphs")
	})
	h.Memory.OnRender(func() {
		logger.Debug("Render pass: memory viewer")
	})
	h.Network.OnRender(func() {
		logger.Debug("Render pass: network monitor")
	})
	h.Overlay.OnRender(func() {
		logger.Debug("Render pass: overlay")
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		logger.Info("Received signal, shutting down",
			zap.String("signal", sig.String()))
		cancel()
	}()

	runFeed(ctx, cfg, h, logger)

	// Final aggregate-state export for diagnostics.
	data, err := h.Export()
	if err != nil {
		logger.Error("Export failed", zap.Error(err))
	} else {
		fmt.Println(string(data))
	}
	logger.Info("devhud stopped")
}

// runFeed emits synthetic producer traffic until the context is cancelled:
// CPU and goroutine metrics on every metric tick, a snapshot request on
// every snapshot tick.
func runFeed(ctx context.Context, cfg *config.Config, h *hud.HUD, logger *zap.Logger) {
	metricTicker := time.NewTicker(cfg.Feed.MetricInterval.Duration)
	snapshotTicker := time.NewTicker(cfg.Feed.SnapshotInterval.Duration)

	defer metricTicker.Stop()
	defer snapshotTicker.Stop()

	b := h.Bus()
	b.Emit(bus.EventSnapshotRequest, nil)

	for {
		select {
		case <-ctx.Done():
			return
		case <-metricTicker.C:
			if pct, err := cpu.PercentWithContext(ctx, 0, false); err == nil && len(pct) > 0 {
				b.Emit(bus.EventMetric, bus.MetricPayload{Value: pct[0], Category: "cpu"})
			} else if err != nil {
				logger.Warn("CPU sample failed", zap.Error(err))
			}
			b.Emit(bus.EventMetric, bus.MetricPayload{
				Value:    float64(runtime.NumGoroutine()),
				Category: "goroutines",
			})
		case <-snapshotTicker.C:
			b.Emit(bus.EventSnapshotRequest, nil)
		}
	}
}

// initLogger creates a zap logger based on the configuration.
// It outputs to both console (human-readable) and optionally a JSON log file.
func initLogger(cfg *config.Config) *zap.Logger {
	var level zapcore.Level
	switch cfg.Logging.Level {
	case "debug":
		level = zapcore.DebugLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	default:
		level = zapcore.InfoLevel
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "time"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	// Console output (human-readable)
	consoleCore := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.AddSync(os.Stdout),
		level,
	)

	cores := []zapcore.Core{consoleCore}

	// File output (structured JSON, if configured)
	if cfg.Logging.File != "" {
		file, err := os.OpenFile(cfg.Logging.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0640)
		if err == nil {
			fileCore := zapcore.NewCore(
				zapcore.NewJSONEncoder(encoderConfig),
				zapcore.AddSync(file),
				level,
			)
			cores = append(cores, fileCore)
		}
	}

	return zap.New(zapcore.NewTee(cores...))
}
