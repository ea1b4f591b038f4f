package telemetry

import (
	"context"
	"go.opentelemetry.io/contrib/instrumentation/runtime"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.20.0"
	"os"
	"time"
)

const systemName = "flutterstack"

type IgnoreExporterErrorsHandler struct{}

func (IgnoreExporterErrorsHandler) Handle(err error) {}

// New installs the global trace and meter providers, exporting both to the
// OTLP/HTTP collector at collectorURL. The returned func flushes and shuts
// them down.
func New(service, version string, collectorURL string) (func(), error) {
	ctx := context.Background()

	res, err := resource.New(
		ctx,
		resource.WithHost(),
		resource.WithContainer(),
		resource.WithAttributes(semconv.ServiceNameKey.String(service), semconv.ServiceVersion(version)))
	if err != nil {
		return nil, err
	}

	te, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpoint(collectorURL), otlptracehttp.WithInsecure())
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(te), sdktrace.WithResource(res))
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	me, err := otlpmetrichttp.New(ctx, otlpmetrichttp.WithEndpoint(collectorURL), otlpmetrichttp.WithInsecure())
	if err != nil {
		return nil, err
	}

	mp := metric.NewMeterProvider(
		metric.WithResource(res),
		metric.WithReader(metric.NewPeriodicReader(
			me,
			metric.WithProducer(runtime.NewProducer()),
			metric.WithInterval(60*time.Second))))

	// The new runtime metrics do not have sufficient data on gc count or pause time, cgo calls, heap objects, etc. So we use the old metrics.
	os.Setenv("OTEL_GO_X_DEPRECATED_RUNTIME_METRICS", "true")
	if err := runtime.Start(runtime.WithMinimumReadMemStatsInterval(60 * time.Second)); err != nil {
		return nil, err
	}
	otel.SetMeterProvider(mp)

	// swallow otel errors so they don't spam stdout
	otel.SetErrorHandler(IgnoreExporterErrorsHandler{})

	return func() {
		_ = tp.Shutdown(context.Background())
		_ = mp.Shutdown(ctx)
	}, nil
}

// Meter returns the meter used for stack operation metrics. Instruments
// created before New is called are bound to the global delegating provider.
func Meter() otelmetric.Meter {
	return otel.GetMeterProvider().Meter(systemName)
}
