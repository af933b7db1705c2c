package telemetry

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
)

const defaultEndpoint = "localhost:4318"

// Config — параметры экспорта трейсов.
type Config struct {
	Enabled        bool
	ServiceName    string
	ServiceVersion string
	Environment    string
	Endpoint       string // host:port или полный URL коллектора (http://jaeger:4318/v1/traces)
	SampleRatio    float64
}

// Shutdown — завершение провайдера (flush батча).
type Shutdown func(context.Context) error

// SetupTracing — глобальные пропагаторы W3C и, если трейсинг включён, OTLP/HTTP-экспорт.
// Пропагаторы ставятся всегда: traceparent входящих HTTP-запросов и сообщений Kafka
// попадает в логи как trace_id даже без экспорта.
func SetupTracing(ctx context.Context, cfg Config) (Shutdown, error) {
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))
	if !cfg.Enabled {
		return func(context.Context) error { return nil }, nil
	}

	exporter, err := otlptracehttp.New(ctx, exporterOptions(cfg.Endpoint)...)
	if err != nil {
		return nil, fmt.Errorf("otlp exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(ClampRatio(cfg.SampleRatio)))),
		sdktrace.WithResource(NewResource(cfg)),
	)
	otel.SetTracerProvider(tp)
	return tp.Shutdown, nil
}

// NewResource — атрибуты сервиса; service.instance.id уникален для каждого запуска.
func NewResource(cfg Config) *resource.Resource {
	attrs := []attribute.KeyValue{
		semconv.ServiceName(cfg.ServiceName),
		semconv.ServiceInstanceID(uuid.NewString()),
	}
	if cfg.ServiceVersion != "" {
		attrs = append(attrs, semconv.ServiceVersion(cfg.ServiceVersion))
	}
	if cfg.Environment != "" {
		attrs = append(attrs, semconv.DeploymentEnvironment(cfg.Environment))
	}
	return resource.NewWithAttributes(semconv.SchemaURL, attrs...)
}

func exporterOptions(endpoint string) []otlptracehttp.Option {
	endpoint = strings.TrimSpace(endpoint)
	switch {
	case endpoint == "":
		return []otlptracehttp.Option{otlptracehttp.WithEndpoint(defaultEndpoint), otlptracehttp.WithInsecure()}
	case strings.Contains(endpoint, "://"):
		// схема в URL сама определяет TLS
		return []otlptracehttp.Option{otlptracehttp.WithEndpointURL(endpoint)}
	default:
		return []otlptracehttp.Option{otlptracehttp.WithEndpoint(endpoint), otlptracehttp.WithInsecure()}
	}
}

// ClampRatio — доля семплирования в границах [0..1].
func ClampRatio(r float64) float64 {
	return min(max(r, 0), 1)
}
