// Package observability wires OpenTelemetry tracing and metrics for the
// analysis service. Tracing uses a ratio sampler with a no-op exporter by
// default; metrics are exposed through a Prometheus endpoint when enabled.
package observability

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"atsblitz/internal/config"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.34.0"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Metrics holds all custom metrics for the analysis service
type Metrics struct {
	// Analysis metrics
	AnalysesTotal    metric.Int64Counter
	AnalysisDuration metric.Float64Histogram

	// AI operation metrics
	AIRequestCount metric.Int64Counter
	AIErrorCount   metric.Int64Counter
	AITokenUsage   metric.Int64Histogram

	// Title store metrics
	TitleLookups metric.Int64Counter

	// Rate limiting metrics
	RateLimitHits metric.Int64Counter
}

// Manager manages OpenTelemetry setup
type Manager struct {
	config           config.ObservabilityConfig
	tracerProvider   *trace.TracerProvider
	meterProvider    *sdkmetric.MeterProvider
	metrics          *Metrics
	shutdownFuncs    []func(context.Context) error
	prometheusServer *http.ServeMux
}

// NewManager creates a new observability manager
func NewManager(obsConfig config.ObservabilityConfig) (*Manager, error) {
	if !obsConfig.Enabled {
		return &Manager{config: obsConfig}, nil
	}

	m := &Manager{
		config:        obsConfig,
		shutdownFuncs: make([]func(context.Context) error, 0),
	}

	if err := m.initTracing(); err != nil {
		return nil, fmt.Errorf("failed to initialize tracing: %w", err)
	}

	if err := m.initMetrics(); err != nil {
		return nil, fmt.Errorf("failed to initialize metrics: %w", err)
	}

	return m, nil
}

// createResource creates the OpenTelemetry resource
func (m *Manager) createResource() (*resource.Resource, error) {
	return resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(m.config.ServiceName),
			semconv.ServiceVersion(m.config.ServiceVersion),
		),
	)
}

// initTracing sets up OpenTelemetry tracing
func (m *Manager) initTracing() error {
	if !m.config.Tracing.Enabled {
		return nil
	}

	res, err := m.createResource()
	if err != nil {
		return fmt.Errorf("failed to create resource: %w", err)
	}

	// Spans are sampled and carried on the context for log correlation.
	// No exporter ships them anywhere; plug one in here if needed.
	tp := trace.NewTracerProvider(
		trace.WithBatcher(&noOpSpanExporter{}),
		trace.WithResource(res),
		trace.WithSampler(trace.TraceIDRatioBased(m.config.Tracing.SampleRate)),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	m.tracerProvider = tp
	m.shutdownFuncs = append(m.shutdownFuncs, tp.Shutdown)

	return nil
}

// initMetrics sets up OpenTelemetry metrics
func (m *Manager) initMetrics() error {
	var readers []sdkmetric.Reader

	if m.config.Prometheus.Enabled {
		prometheusReader, prometheusMux, err := SetupPrometheusExporter(m.config.Prometheus)
		if err != nil {
			return fmt.Errorf("failed to create Prometheus exporter: %w", err)
		}
		if prometheusReader != nil {
			readers = append(readers, prometheusReader)
			m.prometheusServer = prometheusMux

			if err := StartPrometheusServer(prometheusMux, m.config.Prometheus.Port); err != nil {
				return fmt.Errorf("failed to start Prometheus server: %w", err)
			}
		}
	}

	// If no readers configured, use manual reader as fallback
	if len(readers) == 0 {
		readers = append(readers, sdkmetric.NewManualReader())
	}

	res, err := m.createResource()
	if err != nil {
		return fmt.Errorf("failed to create resource: %w", err)
	}

	meterProviderOptions := []sdkmetric.Option{
		sdkmetric.WithResource(res),
	}
	for _, reader := range readers {
		meterProviderOptions = append(meterProviderOptions, sdkmetric.WithReader(reader))
	}

	mp := sdkmetric.NewMeterProvider(meterProviderOptions...)

	otel.SetMeterProvider(mp)
	m.meterProvider = mp
	m.shutdownFuncs = append(m.shutdownFuncs, mp.Shutdown)

	return m.initCustomMetrics()
}

// initCustomMetrics creates all custom metrics for the service
func (m *Manager) initCustomMetrics() error {
	meter := m.meterProvider.Meter(m.config.ServiceName)
	m.metrics = &Metrics{}

	if err := m.createAnalysisMetrics(meter); err != nil {
		return err
	}

	if err := m.createAIMetrics(meter); err != nil {
		return err
	}

	if err := m.createStoreMetrics(meter); err != nil {
		return err
	}

	return m.createRateLimitMetrics(meter)
}

// createAnalysisMetrics creates analysis-related metrics
func (m *Manager) createAnalysisMetrics(meter metric.Meter) error {
	var err error

	m.metrics.AnalysesTotal, err = meter.Int64Counter(
		"atsblitz_analyses_total",
		metric.WithDescription("Total number of resume analyses performed"),
	)
	if err != nil {
		return fmt.Errorf("failed to create analyses total metric: %w", err)
	}

	m.metrics.AnalysisDuration, err = meter.Float64Histogram(
		"atsblitz_analysis_duration_seconds",
		metric.WithDescription("Time spent analyzing resumes"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return fmt.Errorf("failed to create analysis duration metric: %w", err)
	}

	return nil
}

// createAIMetrics creates AI-related metrics
func (m *Manager) createAIMetrics(meter metric.Meter) error {
	var err error

	m.metrics.AIRequestCount, err = meter.Int64Counter(
		"atsblitz_ai_requests_total",
		metric.WithDescription("Total number of AI requests"),
	)
	if err != nil {
		return fmt.Errorf("failed to create AI request count metric: %w", err)
	}

	m.metrics.AIErrorCount, err = meter.Int64Counter(
		"atsblitz_ai_errors_total",
		metric.WithDescription("Total number of AI request errors"),
	)
	if err != nil {
		return fmt.Errorf("failed to create AI error count metric: %w", err)
	}

	m.metrics.AITokenUsage, err = meter.Int64Histogram(
		"atsblitz_ai_token_usage_total",
		metric.WithDescription("Token usage for AI requests (input, output, total)"),
		metric.WithUnit("tokens"),
	)
	if err != nil {
		return fmt.Errorf("failed to create AI token usage metric: %w", err)
	}

	return nil
}

// createStoreMetrics creates title store metrics
func (m *Manager) createStoreMetrics(meter metric.Meter) error {
	var err error

	m.metrics.TitleLookups, err = meter.Int64Counter(
		"atsblitz_title_lookups_total",
		metric.WithDescription("Total number of job title catalogue lookups"),
	)
	if err != nil {
		return fmt.Errorf("failed to create title lookups metric: %w", err)
	}

	return nil
}

// createRateLimitMetrics creates rate limiting metrics
func (m *Manager) createRateLimitMetrics(meter metric.Meter) error {
	var err error

	m.metrics.RateLimitHits, err = meter.Int64Counter(
		"atsblitz_rate_limit_hits_total",
		metric.WithDescription("Total number of rate limit hits"),
	)
	if err != nil {
		return fmt.Errorf("failed to create rate limit hits metric: %w", err)
	}

	return nil
}

// GetMetrics returns the metrics instance
func (m *Manager) GetMetrics() *Metrics {
	if m.metrics == nil {
		return &Metrics{} // Return empty metrics if not initialized
	}
	return m.metrics
}

// Tracer returns a tracer for the service
func (m *Manager) Tracer(name string) oteltrace.Tracer {
	if !m.config.Enabled {
		return noop.NewTracerProvider().Tracer(name)
	}
	return otel.Tracer(name)
}

// HTTPMiddleware wraps a handler with a server span per request
func (m *Manager) HTTPMiddleware(next http.Handler) http.Handler {
	if !m.config.Enabled || !m.config.Tracing.Enabled {
		return next
	}

	tracer := m.Tracer(m.config.ServiceName)
	propagator := otel.GetTextMapPropagator()

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := propagator.Extract(r.Context(), propagation.HeaderCarrier(r.Header))
		ctx, span := tracer.Start(ctx, r.Method+" "+r.URL.Path,
			oteltrace.WithSpanKind(oteltrace.SpanKindServer),
			oteltrace.WithAttributes(
				attribute.String("http.method", r.Method),
				attribute.String("http.target", r.URL.Path),
			),
		)
		defer span.End()

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RecordAnalysis records a completed analysis with its outcome and duration
func (m *Metrics) RecordAnalysis(ctx context.Context, status string, duration time.Duration) {
	if m == nil || m.AnalysesTotal == nil {
		return
	}

	attrs := metric.WithAttributes(attribute.String("status", status))
	m.AnalysesTotal.Add(ctx, 1, attrs)
	m.AnalysisDuration.Record(ctx, duration.Seconds(), attrs)
}

// RecordTitleLookup records a catalogue lookup and whether it resolved
func (m *Metrics) RecordTitleLookup(ctx context.Context, found bool) {
	if m == nil || m.TitleLookups == nil {
		return
	}

	m.TitleLookups.Add(ctx, 1, metric.WithAttributes(attribute.Bool("found", found)))
}

// RecordAIRequest records an AI opinion request with token usage
func (m *Metrics) RecordAIRequest(ctx context.Context, err error, inputTokens, outputTokens int64) {
	if m == nil || m.AIRequestCount == nil {
		return
	}

	attrs := metric.WithAttributes(attribute.Bool("success", err == nil))
	m.AIRequestCount.Add(ctx, 1, attrs)
	if err != nil {
		m.AIErrorCount.Add(ctx, 1, attrs)
		return
	}

	m.AITokenUsage.Record(ctx, inputTokens, metric.WithAttributes(attribute.String("type", "input")))
	m.AITokenUsage.Record(ctx, outputTokens, metric.WithAttributes(attribute.String("type", "output")))
	m.AITokenUsage.Record(ctx, inputTokens+outputTokens, metric.WithAttributes(attribute.String("type", "total")))
}

// RecordRateLimitHit records a rejected request
func (m *Metrics) RecordRateLimitHit(ctx context.Context, keyKind string) {
	if m == nil || m.RateLimitHits == nil {
		return
	}

	m.RateLimitHits.Add(ctx, 1, metric.WithAttributes(attribute.String("limiter", keyKind)))
}

// Shutdown gracefully shuts down all observability components
func (m *Manager) Shutdown(ctx context.Context) error {
	for _, shutdown := range m.shutdownFuncs {
		if err := shutdown(ctx); err != nil {
			return err
		}
	}
	return nil
}

type noOpSpanExporter struct{}

func (n *noOpSpanExporter) ExportSpans(ctx context.Context, spans []trace.ReadOnlySpan) error {
	return nil
}

func (n *noOpSpanExporter) Shutdown(ctx context.Context) error {
	return nil
}
