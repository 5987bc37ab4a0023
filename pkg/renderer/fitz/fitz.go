package fitz

import (
	"context"
	"fmt"
	"image"

	"github.com/adrianliechti/cardsheet/pkg/renderer"

	"github.com/gen2brain/go-fitz"
)

var _ renderer.Renderer = &Renderer{}

// Renderer rasterizes pages with MuPDF.
type Renderer struct {
}

func New() (*Renderer, error) {
	return &Renderer{}, nil
}

func (r *Renderer) Render(ctx context.Context, data []byte, options *renderer.RenderOptions) (image.Image, error) {
	var opts renderer.RenderOptions

	if options != nil {
		opts = *options
	}

	if opts.Zoom <= 0 {
		opts.Zoom = 1
	}

	options = &opts

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := fitz.NewFromMemory(data)

	if err != nil {
		return nil, fmt.Errorf("%w: %w", renderer.ErrInvalidDocument, err)
	}

	defer doc.Close()

	if options.Page < 0 || options.Page >= doc.NumPage() {
		return nil, renderer.ErrPageNotFound
	}

	page, err := doc.ImageDPI(options.Page, renderer.DPI(options.Zoom))

	if err != nil {
		return nil, err
	}

	if options.Clip.Empty() {
		return renderer.Crop(page, page.Bounds().Sub(page.Bounds().Min))
	}

	return renderer.Crop(page, options.Clip.Pixels(options.Zoom))
}
