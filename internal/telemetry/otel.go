package telemetry

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
)

const defaultEndpoint = "127.0.0.1:4318"

var enabled atomic.Bool

type Config struct {
	ServiceName    string
	ServiceVersion string
	Endpoint       string
	Enabled        bool
}

// Init installs the global tracer provider. When tracing is disabled the
// returned shutdown func is a no-op and handlers are left unwrapped.
func Init(cfg Config) (func(context.Context) error, error) {
	noop := func(context.Context) error { return nil }
	if !cfg.Enabled {
		enabled.Store(false)
		return noop, nil
	}

	attrs := []attribute.KeyValue{
		semconv.ServiceNameKey.String(cfg.ServiceName),
	}
	if v := strings.TrimSpace(cfg.ServiceVersion); v != "" {
		attrs = append(attrs, semconv.ServiceVersionKey.String(v))
	}

	r, err := resource.New(context.Background(), resource.WithAttributes(attrs...))
	if err != nil {
		return noop, err
	}

	exporter, err := newOTLPHTTPExporter(cfg.Endpoint)
	if err != nil {
		return noop, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithResource(r),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.AlwaysSample())),
		sdktrace.WithBatcher(
			exporter,
			sdktrace.WithBatchTimeout(5*time.Second),
			sdktrace.WithMaxExportBatchSize(512),
		),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	enabled.Store(true)

	return tp.Shutdown, nil
}

func newOTLPHTTPExporter(raw string) (*otlptrace.Exporter, error) {
	endpoint, urlPath, insecure := normalizeOTLPEndpoint(raw)
	opts := []otlptracehttp.Option{
		otlptracehttp.WithEndpoint(endpoint),
	}
	if insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	if urlPath != "" && urlPath != "/" {
		opts = append(opts, otlptracehttp.WithURLPath(urlPath))
	}

	return otlptracehttp.New(context.Background(), opts...)
}

func normalizeOTLPEndpoint(raw string) (endpoint string, urlPath string, insecure bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return defaultEndpoint, "", true
	}
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		u, err := url.Parse(raw)
		if err == nil {
			insecure = u.Scheme == "http"
			if strings.TrimSpace(u.Host) != "" {
				endpoint = u.Host
			}
			urlPath = u.EscapedPath()
		} else {
			log.Warnf("failed to parse OTLP endpoint URL %q, treating as host:port: %v", raw, err)
		}
	}
	if endpoint == "" {
		endpoint = raw
		insecure = true
	}
	return endpoint, urlPath, insecure
}

func Enabled() bool {
	return enabled.Load()
}

// WrapHandler starts a server span per request when tracing is on.
func WrapHandler(h http.Handler, operation string) http.Handler {
	if !Enabled() {
		return h
	}
	return otelhttp.NewHandler(h, operation)
}
