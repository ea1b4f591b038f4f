package stacks

import (
	"context"
	"errors"
	"github.com/aleph-zero/flutterstack/engine"
	"github.com/aleph-zero/flutterstack/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

type metrics struct {
	operations metric.Int64Counter
	stacks     metric.Int64UpDownCounter
}

func newMetrics() *metrics {
	meter := telemetry.Meter()

	operations, err := meter.Int64Counter("stack.operations",
		metric.WithDescription("Stack operations by operation and outcome"),
		metric.WithUnit("{operation}"))
	if err != nil {
		operations = noop.Int64Counter{}
	}

	stacks, err := meter.Int64UpDownCounter("stack.count",
		metric.WithDescription("Live stacks held by the registry"),
		metric.WithUnit("{stack}"))
	if err != nil {
		stacks = noop.Int64UpDownCounter{}
	}

	return &metrics{operations: operations, stacks: stacks}
}

func (m *metrics) record(ctx context.Context, op string, err error) {
	m.operations.Add(ctx, 1, metric.WithAttributes(
		attribute.String("stack.operation", op),
		attribute.String("stack.outcome", outcome(err))))
}

func outcome(err error) string {
	if err == nil {
		return "ok"
	}

	var se Error
	if errors.As(err, &se) {
		return se.ErrorCode.String()
	}
	var ee engine.Error
	if errors.As(err, &ee) {
		return ee.ErrorCode.String()
	}
	return "error"
}
