package limiter

import (
	"context"
	"errors"
	"image"
	"log/slog"
	"time"

	"github.com/adrianliechti/cardsheet/pkg/renderer"

	"golang.org/x/time/rate"
)

type Renderer interface {
	Limiter
	renderer.Renderer
}

type limitedRenderer struct {
	limiter  *rate.Limiter
	renderer renderer.Renderer
}

// NewRenderer limits r to the rate of l; a nil limiter does not limit.
func NewRenderer(l *rate.Limiter, r renderer.Renderer) Renderer {
	return &limitedRenderer{
		limiter:  l,
		renderer: r,
	}
}

func (r *limitedRenderer) limiterSetup() {
}

func (r *limitedRenderer) Render(ctx context.Context, data []byte, options *renderer.RenderOptions) (image.Image, error) {
	if err := r.wait(ctx); err != nil {
		return nil, err
	}

	return r.renderer.Render(ctx, data, options)
}

// wait blocks until a render slot is free. The reservation is returned when
// ctx ends first.
func (r *limitedRenderer) wait(ctx context.Context) error {
	if r.limiter == nil {
		return nil
	}

	res := r.limiter.Reserve()

	if !res.OK() {
		return errors.New("render limit has no capacity")
	}

	delay := res.Delay()

	if delay == 0 {
		return nil
	}

	slog.Debug("render throttled", "delay", delay)

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil

	case <-ctx.Done():
		res.Cancel()
		return ctx.Err()
	}
}
