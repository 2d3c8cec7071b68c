package obs

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// TracingConfig controls tracer provider initialisation.
type TracingConfig struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
	// Exporter is "otlp", "stdout" or "none".
	Exporter string
	// Endpoint is the OTLP/HTTP collector URL; empty uses the OTEL_* env.
	Endpoint string
	// SamplingRatio applies to root spans and is clamped to [0, 1].
	SamplingRatio float64
	// Writer receives stdout spans; nil means os.Stdout.
	Writer io.Writer
}

// InitTracer installs the global tracer provider and W3C propagators and
// returns the provider's shutdown function. Requests that arrive with a
// sampled parent, such as the seeder's otelhttp client, stay sampled.
func InitTracer(ctx context.Context, cfg TracingConfig) (func(context.Context) error, error) {
	var processor sdktrace.SpanProcessor
	switch exporter := strings.ToLower(strings.TrimSpace(cfg.Exporter)); exporter {
	case "none", "off":
		return func(context.Context) error { return nil }, nil
	case "", "otlp":
		var opts []otlptracehttp.Option
		if endpoint := strings.TrimSpace(cfg.Endpoint); endpoint != "" {
			opts = append(opts, otlptracehttp.WithEndpointURL(endpoint))
		}
		exp, err := otlptracehttp.New(ctx, opts...)
		if err != nil {
			return nil, fmt.Errorf("otlp exporter: %w", err)
		}
		processor = sdktrace.NewBatchSpanProcessor(exp)
	case "stdout":
		w := cfg.Writer
		if w == nil {
			w = os.Stdout
		}
		exp, err := stdouttrace.New(stdouttrace.WithWriter(w))
		if err != nil {
			return nil, fmt.Errorf("stdout exporter: %w", err)
		}
		processor = sdktrace.NewSimpleSpanProcessor(exp)
	default:
		return nil, fmt.Errorf("unsupported tracing exporter: %s", exporter)
	}

	res, err := resource.New(ctx,
		resource.WithFromEnv(),
		resource.WithTelemetrySDK(),
		resource.WithAttributes(
			semconv.ServiceNameKey.String(cfg.ServiceName),
			semconv.ServiceVersionKey.String(cfg.ServiceVersion),
			semconv.DeploymentEnvironmentKey.String(cfg.Environment),
		),
	)
	if err != nil {
		_ = processor.Shutdown(ctx)
		return nil, fmt.Errorf("tracing resource: %w", err)
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(clampRatio(cfg.SamplingRatio)))),
		sdktrace.WithSpanProcessor(processor),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	return tp.Shutdown, nil
}

func clampRatio(r float64) float64 {
	switch {
	case r < 0:
		return 0
	case r > 1:
		return 1
	default:
		return r
	}
}
