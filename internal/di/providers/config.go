// Package providers contains dependency injection providers for the palette
// server.
package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/centipy/palette-server/internal/config"
	"github.com/centipy/palette-server/internal/logger"
	"github.com/centipy/palette-server/internal/metrics"
)

// ProvideConfig provides the application configuration.
func ProvideConfig(i do.Injector) (*config.Config, error) {
	return config.LoadConfig()
}

// ProvideLogger provides the structured logger.
func ProvideLogger(i do.Injector) (*logger.Logger, error) {
	cfg := do.MustInvoke[*config.Config](i)

	log := logger.New(logger.Config{
		Level:       logger.ParseLevel(cfg.Logger.Level),
		AddSource:   cfg.App.Environment == "development",
		Environment: cfg.App.Environment,
	})

	log.Info("Starting palette server",
		"version", Version,
		"environment", cfg.App.Environment,
		"log_level", cfg.Logger.Level,
		"data_path", cfg.Storage.DataPath,
	)

	return log, nil
}

// MetricsHandle wraps the metrics recorder with Shutdownable.
type MetricsHandle struct {
	metrics.Recorder
}

// Shutdown implements do.Shutdownable and flushes pending metrics.
func (h *MetricsHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return h.Close(ctx)
}

// ProvideMetrics provides the OpenTelemetry recorder, or a no-op one when
// export is disabled.
func ProvideMetrics(i do.Injector) (*MetricsHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	rec, err := metrics.New(context.Background(), metrics.Config{
		Enabled:  cfg.Metrics.Enabled,
		Endpoint: cfg.Metrics.Endpoint,
		Insecure: cfg.Metrics.Insecure,
		Version:  Version,
	})
	if err != nil {
		return nil, err
	}

	if cfg.Metrics.Enabled {
		log.Info("Metrics export enabled", "endpoint", cfg.Metrics.Endpoint)
	}

	return &MetricsHandle{Recorder: rec}, nil
}
