package observability

import (
	"context"
	"log"
	"time"

	"internship-assistant/internal/common/config"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/otlptranslator"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/jaeger"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

type Observability struct {
	serviceName    string
	meterProvider  *metric.MeterProvider
	tracerProvider *sdktrace.TracerProvider
	meter          otelmetric.Meter
	jobCounter     otelmetric.Int64Counter
	jobDuration    otelmetric.Float64Histogram
	answerCounter  otelmetric.Int64Counter
	answerDuration otelmetric.Float64Histogram
}

// New wires the prometheus meter exporter and, when a Jaeger endpoint is configured,
// a batching trace exporter installed as the global tracer provider.
func New(cfg config.ObservabilityConfig) *Observability {
	return newWithRegisterer(cfg, promclient.DefaultRegisterer)
}

func newWithRegisterer(cfg config.ObservabilityConfig, reg promclient.Registerer) *Observability {
	o := &Observability{serviceName: cfg.ServiceName}

	// Dotted instrument names are exported as underscored series with unit and _total suffixes.
	exporter, err := prometheus.New(
		prometheus.WithRegisterer(reg),
		prometheus.WithTranslationStrategy(otlptranslator.UnderscoreEscapingWithSuffixes),
	)
	if err != nil {
		log.Printf("Failed to create Prometheus exporter: %v", err)
	} else {
		o.meterProvider = metric.NewMeterProvider(metric.WithReader(exporter))
		otel.SetMeterProvider(o.meterProvider)
		o.initInstruments()
	}

	if cfg.JaegerEndpoint != "" {
		traceExporter, err := jaeger.New(jaeger.WithCollectorEndpoint(jaeger.WithEndpoint(cfg.JaegerEndpoint)))
		if err != nil {
			log.Printf("Failed to create Jaeger exporter: %v", err)
		} else {
			o.tracerProvider = sdktrace.NewTracerProvider(
				sdktrace.WithBatcher(traceExporter),
				sdktrace.WithResource(resource.NewSchemaless(
					attribute.String("service.name", cfg.ServiceName),
				)),
			)
			otel.SetTracerProvider(o.tracerProvider)
		}
	}

	return o
}

func (o *Observability) initInstruments() {
	o.meter = o.meterProvider.Meter(o.serviceName)

	o.jobCounter, _ = o.meter.Int64Counter(
		"jobs.processed",
		otelmetric.WithDescription("Number of jobs processed"),
	)

	o.jobDuration, _ = o.meter.Float64Histogram(
		"jobs.duration",
		otelmetric.WithDescription("Job processing duration"),
		otelmetric.WithUnit("ms"),
	)

	o.answerCounter, _ = o.meter.Int64Counter(
		"assistant.answers",
		otelmetric.WithDescription("Number of questions answered"),
	)

	o.answerDuration, _ = o.meter.Float64Histogram(
		"assistant.answer.duration",
		otelmetric.WithDescription("End-to-end answer duration"),
		otelmetric.WithUnit("ms"),
	)
}

// StartSpan opens a span on the active tracer provider. Without a Jaeger endpoint
// this is whatever provider is installed globally (a no-op by default).
func (o *Observability) StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	serviceName := ""
	if o != nil {
		serviceName = o.serviceName
	}
	return otel.Tracer(serviceName).Start(ctx, name, trace.WithAttributes(attrs...))
}

func (o *Observability) RecordJobProcessed(ctx context.Context, status string) {
	if o != nil && o.jobCounter != nil {
		o.jobCounter.Add(ctx, 1, otelmetric.WithAttributes(
			attribute.String("status", status),
		))
	}
}

func (o *Observability) RecordJobDuration(ctx context.Context, duration time.Duration, status string) {
	if o != nil && o.jobDuration != nil {
		o.jobDuration.Record(ctx, float64(duration.Milliseconds()), otelmetric.WithAttributes(
			attribute.String("status", status),
		))
	}
}

// RecordAnswer counts one answered question and its latency by query type.
func (o *Observability) RecordAnswer(ctx context.Context, queryType string, duration time.Duration) {
	if o == nil {
		return
	}
	attrs := otelmetric.WithAttributes(attribute.String("query_type", queryType))
	if o.answerCounter != nil {
		o.answerCounter.Add(ctx, 1, attrs)
	}
	if o.answerDuration != nil {
		o.answerDuration.Record(ctx, float64(duration.Milliseconds()), attrs)
	}
}

func (o *Observability) Shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if o.meterProvider != nil {
		_ = o.meterProvider.Shutdown(ctx)
	}
	if o.tracerProvider != nil {
		_ = o.tracerProvider.Shutdown(ctx)
	}
}
