// Package observability wires OpenTelemetry tracing: the OTLP/gRPC exporter
// and global provider for HTTP spans, and the GORM plugin that turns store
// queries into child spans.
//
// Every span carries a resource naming the service, its version and the
// store backend it runs against, so traces from a SQLite dev box and a
// Postgres or Mongo deployment can be told apart in the collector.
package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"google.golang.org/grpc/credentials"
	"gorm.io/gorm"
	"gorm.io/plugin/opentelemetry/tracing"

	"github.com/tbourn/tweeter-backend/internal/config"
)

// storeDriverKey records which STORE_DRIVER the process was started with.
const storeDriverKey = attribute.Key("tweeter.store.driver")

// Service describes the running binary for the trace resource.
type Service struct {
	Version     string
	StoreDriver string // one of the config.Driver* values
}

// SetupOTel installs a global tracer provider exporting to cfg.Endpoint and
// returns its shutdown function. When tracing is disabled nothing global is
// touched and the returned shutdown is a no-op.
func SetupOTel(ctx context.Context, cfg config.OTELConfig, svc Service) (func(context.Context) error, error) {
	if !cfg.Enabled {
		return func(context.Context) error { return nil }, nil
	}

	// The exporter dials lazily; an unreachable collector only drops spans.
	exp, err := otlptracegrpc.New(ctx, exporterOptions(cfg)...)
	if err != nil {
		return nil, err
	}

	tp := newProvider(exp, cfg, svc)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{}, propagation.Baggage{},
	))
	return tp.Shutdown, nil
}

func exporterOptions(cfg config.OTELConfig) []otlptracegrpc.Option {
	opts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(cfg.Endpoint)}
	if cfg.Insecure {
		return append(opts, otlptracegrpc.WithInsecure())
	}
	return append(opts, otlptracegrpc.WithTLSCredentials(credentials.NewClientTLSFromCert(nil, "")))
}

// newProvider builds the batching provider around exp.
func newProvider(exp sdktrace.SpanExporter, cfg config.OTELConfig, svc Service) *sdktrace.TracerProvider {
	return sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithSampler(sampler(cfg.SampleRatio)),
		sdktrace.WithResource(serviceResource(cfg.ServiceName, svc)),
	)
}

// serviceResource merges the service attributes into the SDK default
// resource (host, process and telemetry.sdk.* keys).
func serviceResource(name string, svc Service) *resource.Resource {
	attrs := []attribute.KeyValue{
		semconv.ServiceName(name),
		semconv.ServiceVersion(svc.Version),
		storeDriverKey.String(svc.StoreDriver),
	}
	if sys := dbSystem(svc.StoreDriver); sys != "" {
		attrs = append(attrs, semconv.DBSystemKey.String(sys))
	}
	res, err := resource.Merge(resource.Default(), resource.NewSchemaless(attrs...))
	if err != nil {
		// Conflicting schema URLs; keep our attributes rather than fail startup.
		return resource.NewSchemaless(attrs...)
	}
	return res
}

// dbSystem maps a store driver to the db.system semantic-convention value.
func dbSystem(driver string) string {
	switch driver {
	case config.DriverSQLite:
		return "sqlite"
	case config.DriverPostgres:
		return "postgresql"
	case config.DriverMongo:
		return "mongodb"
	}
	return ""
}

// sampler honors the caller's sampling decision and samples new roots at
// ratio. The edges skip the ratio sampler so 0 and 1 mean never and always.
func sampler(ratio float64) sdktrace.Sampler {
	switch {
	case ratio >= 1:
		return sdktrace.ParentBased(sdktrace.AlwaysSample())
	case ratio <= 0:
		return sdktrace.ParentBased(sdktrace.NeverSample())
	}
	return sdktrace.ParentBased(sdktrace.TraceIDRatioBased(ratio))
}

// InstrumentGORM registers the OpenTelemetry plugin on db so every query runs
// in a span under the request span. Bound query values are left out of span
// attributes since they carry user data. Metrics stay with Prometheus.
func InstrumentGORM(db *gorm.DB) error {
	return db.Use(tracing.NewPlugin(
		tracing.WithoutMetrics(),
		tracing.WithoutQueryVariables(),
	))
}
