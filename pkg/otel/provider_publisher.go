package otel

import (
	"context"

	"github.com/adrianliechti/cardsheet/pkg/publisher"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

type Publisher interface {
	Observable
	publisher.Provider
}

type observablePublisher struct {
	name string

	publisher publisher.Provider

	sizeMetric metric.Int64Histogram
}

// NewPublisher traces every upload of a report and records its size.
func NewPublisher(name string, p publisher.Provider) Publisher {
	meter := otel.Meter(instrumentationName)

	sizeMetric, _ := meter.Int64Histogram("cardsheet.publish.size",
		metric.WithDescription("Size of published reports"),
		metric.WithUnit("By"),
	)

	return &observablePublisher{
		name:      name,
		publisher: p,

		sizeMetric: sizeMetric,
	}
}

func (p *observablePublisher) otelSetup() {
}

func (p *observablePublisher) Publish(ctx context.Context, name string, data []byte) (string, error) {
	ctx, span := otel.Tracer(instrumentationName).Start(ctx, "publish "+p.name,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(String("report.name", name), Int("report.size", len(data))),
	)
	defer span.End()

	location, err := p.publisher.Publish(ctx, name, data)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		return "", err
	}

	span.SetAttributes(String("report.location", location))
	p.sizeMetric.Record(ctx, int64(len(data)), metric.WithAttributes(String("publisher", p.name)))

	return location, nil
}
