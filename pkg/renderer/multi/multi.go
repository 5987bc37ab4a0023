package multi

import (
	"context"
	"errors"
	"image"

	"github.com/adrianliechti/cardsheet/pkg/renderer"
)

var _ renderer.Renderer = &Renderer{}

// Renderer tries each renderer in turn and returns the first image.
type Renderer struct {
	renderers []renderer.Renderer
}

func New(renderers ...renderer.Renderer) *Renderer {
	return &Renderer{
		renderers: renderers,
	}
}

func (r *Renderer) Render(ctx context.Context, data []byte, options *renderer.RenderOptions) (image.Image, error) {
	if len(r.renderers) == 0 {
		return nil, errors.New("no renderers configured")
	}

	var errs []error

	for _, p := range r.renderers {
		img, err := p.Render(ctx, data, options)

		if err == nil {
			return img, nil
		}

		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		errs = append(errs, err)
	}

	return nil, errors.Join(errs...)
}
