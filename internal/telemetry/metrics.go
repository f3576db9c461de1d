package telemetry

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

var (
	// globalMeterProvider holds the current meter provider
	globalMeterProvider metric.MeterProvider
	// globalMetricsShutdown holds the shutdown function for metrics
	globalMetricsShutdown func(context.Context) error
	// meterMu protects access to global meter provider state
	meterMu sync.RWMutex
	// metrics holds the instruments created from globalMeterProvider
	metrics *Metrics
)

// Metrics holds all registered OpenTelemetry metrics
type Metrics struct {
	// Command metrics
	CommandCounter      metric.Int64Counter
	CommandDuration     metric.Float64Histogram
	CommandErrorCounter metric.Int64Counter

	// Backlog metrics
	GenerationCounter metric.Int64Counter
	ItemCounter       metric.Int64Counter
	EditCounter       metric.Int64Counter
}

// InitMetricsProvider initializes the OpenTelemetry metrics provider.
// Returns a shutdown function and any initialization error.
func InitMetricsProvider(ctx context.Context, cfg Config) (func(context.Context) error, error) {
	if !cfg.Enabled || cfg.Endpoint == "" {
		return setMeterProvider(noop.NewMeterProvider(), func(context.Context) error { return nil })
	}

	res, err := createResource(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource for metrics: %w", err)
	}

	exporter, err := otlpmetrichttp.New(
		ctx,
		otlpmetrichttp.WithEndpoint(cfg.Endpoint),
		otlpmetrichttp.WithInsecure(),
		otlpmetrichttp.WithCompression(otlpmetrichttp.GzipCompression),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP metrics exporter: %w", err)
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(10*time.Second))),
	)
	otel.SetMeterProvider(mp)
	return setMeterProvider(mp, mp.Shutdown)
}

func setMeterProvider(mp metric.MeterProvider, shutdown func(context.Context) error) (func(context.Context) error, error) {
	m, err := newMetrics(mp.Meter("github.com/felixgeelhaar/specflow"))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize metrics: %w", err)
	}

	meterMu.Lock()
	defer meterMu.Unlock()
	globalMeterProvider = mp
	globalMetricsShutdown = shutdown
	metrics = m
	return shutdown, nil
}

func newMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}
	var err error

	if m.CommandCounter, err = meter.Int64Counter(
		"specflow.command.invocations",
		metric.WithDescription("Total number of command invocations"),
		metric.WithUnit("{invocation}"),
	); err != nil {
		return nil, err
	}
	if m.CommandDuration, err = meter.Float64Histogram(
		"specflow.command.duration",
		metric.WithDescription("Command execution duration in seconds"),
		metric.WithUnit("s"),
	); err != nil {
		return nil, err
	}
	if m.CommandErrorCounter, err = meter.Int64Counter(
		"specflow.command.errors",
		metric.WithDescription("Total number of command errors"),
		metric.WithUnit("{error}"),
	); err != nil {
		return nil, err
	}
	if m.GenerationCounter, err = meter.Int64Counter(
		"specflow.specs.generated",
		metric.WithDescription("Total number of generated specs"),
		metric.WithUnit("{spec}"),
	); err != nil {
		return nil, err
	}
	if m.ItemCounter, err = meter.Int64Counter(
		"specflow.backlog.items",
		metric.WithDescription("Stories, tasks, and risks produced by generation"),
		metric.WithUnit("{item}"),
	); err != nil {
		return nil, err
	}
	if m.EditCounter, err = meter.Int64Counter(
		"specflow.specs.edits",
		metric.WithDescription("Total number of edits applied to saved specs"),
		metric.WithUnit("{edit}"),
	); err != nil {
		return nil, err
	}
	return m, nil
}

// GetMetrics returns the current instruments, or an empty set before
// InitMetricsProvider has run.
func GetMetrics() *Metrics {
	meterMu.RLock()
	defer meterMu.RUnlock()

	if metrics != nil {
		return metrics
	}
	return &Metrics{}
}

// RecordCommand records one command invocation with its duration and, when
// err is non-nil, an error keyed by errorType.
func RecordCommand(ctx context.Context, commandName string, duration time.Duration, errorType string) {
	m := GetMetrics()
	if m.CommandCounter == nil {
		return
	}

	status := "success"
	if errorType != "" {
		status = "error"
	}
	attrs := metric.WithAttributes(attribute.String("command", commandName), attribute.String("status", status))
	m.CommandCounter.Add(ctx, 1, attrs)
	m.CommandDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attribute.String("command", commandName)))

	if errorType != "" {
		m.CommandErrorCounter.Add(ctx, 1, metric.WithAttributes(
			attribute.String("command", commandName),
			attribute.String("error_type", errorType),
		))
	}
}

// RecordGeneration records a generated spec and its backlog sizes.
func RecordGeneration(ctx context.Context, template string, stories, tasks, risks int) {
	m := GetMetrics()
	if m.GenerationCounter == nil {
		return
	}

	m.GenerationCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("template", template)))
	for kind, n := range map[string]int{"story": stories, "task": tasks, "risk": risks} {
		m.ItemCounter.Add(ctx, int64(n), metric.WithAttributes(
			attribute.String("template", template),
			attribute.String("kind", kind),
		))
	}
}

// RecordEdit records an edit operation against a saved spec.
func RecordEdit(ctx context.Context, operation string, changed bool) {
	m := GetMetrics()
	if m.EditCounter == nil {
		return
	}

	m.EditCounter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.Bool("changed", changed),
	))
}

// ShutdownMetrics gracefully shuts down the metrics provider
func ShutdownMetrics(ctx context.Context) error {
	meterMu.RLock()
	shutdown := globalMetricsShutdown
	meterMu.RUnlock()

	if shutdown != nil {
		return shutdown(ctx)
	}
	return nil
}

// ForceFlushMetrics forces all pending metrics to be exported
func ForceFlushMetrics(ctx context.Context) error {
	meterMu.RLock()
	provider := globalMeterProvider
	meterMu.RUnlock()

	if mp, ok := provider.(*sdkmetric.MeterProvider); ok {
		return mp.ForceFlush(ctx)
	}
	return nil
}
