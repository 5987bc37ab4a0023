package otel

import (
	"context"
	"image"
	"time"

	"github.com/adrianliechti/cardsheet/pkg/renderer"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

type Renderer interface {
	Observable
	renderer.Renderer
}

type observableRenderer struct {
	name string

	renderer renderer.Renderer

	durationMetric metric.Float64Histogram
}

func NewRenderer(name string, r renderer.Renderer) Renderer {
	meter := otel.Meter(instrumentationName)

	durationMetric, _ := meter.Float64Histogram("cardsheet.render.duration",
		metric.WithDescription("Duration of page renderings"),
		metric.WithUnit("s"),
	)

	return &observableRenderer{
		name:     name,
		renderer: r,

		durationMetric: durationMetric,
	}
}

func (r *observableRenderer) otelSetup() {
}

func (r *observableRenderer) Render(ctx context.Context, data []byte, options *renderer.RenderOptions) (image.Image, error) {
	ctx, span := otel.Tracer(instrumentationName).Start(ctx, "render "+r.name,
		trace.WithAttributes(Int("pdf.size", len(data))),
	)
	defer span.End()

	timestamp := time.Now()

	result, err := r.renderer.Render(ctx, data, options)

	status := "ok"

	if err != nil {
		status = "error"

		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	r.durationMetric.Record(ctx, time.Since(timestamp).Seconds(),
		metric.WithAttributes(String("renderer", r.name), String("status", status)),
	)

	if result != nil {
		size := result.Bounds().Size()
		span.SetAttributes(Int("image.width", size.X), Int("image.height", size.Y))
	}

	return result, err
}
