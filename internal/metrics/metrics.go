// Package metrics records palette usage counters through OpenTelemetry.
// When export is disabled a no-op recorder is used.
package metrics

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

const serviceName = "palette-server"

// Config holds OTLP exporter configuration.
type Config struct {
	Endpoint string
	Enabled  bool
	Insecure bool
	Version  string
}

// Recorder receives usage events from the services.
type Recorder interface {
	PaletteGenerated(ctx context.Context, scheme string, size int, source string)
	FavoriteSaved(ctx context.Context, size int)
	Close(ctx context.Context) error
}

// Exporter records metrics on an OpenTelemetry meter provider.
type Exporter struct {
	provider       *sdkmetric.MeterProvider
	generatedTotal metric.Int64Counter
	favoritesTotal metric.Int64Counter
	paletteSize    metric.Int64Histogram
}

// New returns an OTLP/gRPC exporter when cfg enables it and a no-op recorder
// otherwise.
func New(ctx context.Context, cfg Config) (Recorder, error) {
	if !cfg.Enabled {
		return NewNoOpExporter(), nil
	}
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("OTEL exporter enabled but endpoint not configured")
	}

	opts := []otlpmetricgrpc.Option{
		otlpmetricgrpc.WithEndpoint(cfg.Endpoint),
	}
	if cfg.Insecure {
		opts = append(opts,
			otlpmetricgrpc.WithDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())),
			otlpmetricgrpc.WithInsecure(),
		)
	}

	exp, err := otlpmetricgrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating OTLP exporter: %w", err)
	}

	return NewExporter(ctx, sdkmetric.NewPeriodicReader(exp), cfg.Version)
}

// NewExporter builds an Exporter that reads through reader.
func NewExporter(ctx context.Context, reader sdkmetric.Reader, version string) (*Exporter, error) {
	attrs := []attribute.KeyValue{attribute.String("service.name", serviceName)}
	if version != "" {
		attrs = append(attrs, attribute.String("service.version", version))
	}
	res, err := resource.New(ctx, resource.WithAttributes(attrs...))
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(reader),
		sdkmetric.WithResource(res),
	)
	meter := provider.Meter(serviceName)

	generatedTotal, err := meter.Int64Counter(
		"palette_generated_total",
		metric.WithDescription("Palettes generated"),
		metric.WithUnit("{palette}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating generated counter: %w", err)
	}

	favoritesTotal, err := meter.Int64Counter(
		"palette_favorites_saved_total",
		metric.WithDescription("Palettes saved as favorites"),
		metric.WithUnit("{palette}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating favorites counter: %w", err)
	}

	paletteSize, err := meter.Int64Histogram(
		"palette_size",
		metric.WithDescription("Number of colors per generated or saved palette"),
		metric.WithUnit("{color}"),
		metric.WithExplicitBucketBoundaries(3, 4, 5, 6, 7, 8),
	)
	if err != nil {
		return nil, fmt.Errorf("creating size histogram: %w", err)
	}

	return &Exporter{
		provider:       provider,
		generatedTotal: generatedTotal,
		favoritesTotal: favoritesTotal,
		paletteSize:    paletteSize,
	}, nil
}

// PaletteGenerated counts one generation pass.
func (e *Exporter) PaletteGenerated(ctx context.Context, scheme string, size int, source string) {
	opt := metric.WithAttributes(
		attribute.String("scheme", scheme),
		attribute.String("source", source),
	)
	e.generatedTotal.Add(ctx, 1, opt)
	e.paletteSize.Record(ctx, int64(size), opt)
}

// FavoriteSaved counts one saved favorite.
func (e *Exporter) FavoriteSaved(ctx context.Context, size int) {
	e.favoritesTotal.Add(ctx, 1)
	e.paletteSize.Record(ctx, int64(size), metric.WithAttributes(attribute.String("source", "favorite")))
}

// Close shuts down the provider and flushes any pending metrics.
func (e *Exporter) Close(ctx context.Context) error {
	return e.provider.Shutdown(ctx)
}

// NoOpExporter is a Recorder that does nothing.
type NoOpExporter struct{}

// NewNoOpExporter creates a new no-op recorder.
func NewNoOpExporter() *NoOpExporter { return &NoOpExporter{} }

func (*NoOpExporter) PaletteGenerated(context.Context, string, int, string) {}

func (*NoOpExporter) FavoriteSaved(context.Context, int) {}

func (*NoOpExporter) Close(context.Context) error { return nil }
