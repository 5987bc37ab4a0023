package preflight

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"sync"

	"github.com/adrianliechti/cardsheet/pkg/renderer"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

var _ renderer.Renderer = &Renderer{}

var disableConfigDir sync.Once

// Renderer validates the document structure with pdfcpu before delegating
// to the wrapped renderer.
type Renderer struct {
	renderer renderer.Renderer
}

func New(r renderer.Renderer) *Renderer {
	return &Renderer{
		renderer: r,
	}
}

func (r *Renderer) Render(ctx context.Context, data []byte, options *renderer.RenderOptions) (image.Image, error) {
	if options == nil {
		options = new(renderer.RenderOptions)
	}

	count, err := PageCount(data)

	if err != nil {
		return nil, err
	}

	if options.Page < 0 || options.Page >= count {
		return nil, renderer.ErrPageNotFound
	}

	return r.renderer.Render(ctx, data, options)
}

// PageCount returns the number of pages of a document, validated in relaxed mode.
func PageCount(data []byte) (int, error) {
	if len(data) == 0 {
		return 0, renderer.ErrInvalidDocument
	}

	disableConfigDir.Do(api.DisableConfigDir)

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	count, err := api.PageCount(bytes.NewReader(data), conf)

	if err != nil {
		return 0, fmt.Errorf("%w: %w", renderer.ErrInvalidDocument, err)
	}

	if count == 0 {
		return 0, renderer.ErrPageNotFound
	}

	return count, nil
}
