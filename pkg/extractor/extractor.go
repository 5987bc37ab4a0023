package extractor

import (
	"context"
	"errors"
	"fmt"
	"image"

	"github.com/adrianliechti/cardsheet/pkg/renderer"
)

var (
	// ErrExtraction is returned for every document the region cannot be
	// extracted from. The cause stays wrapped for logging.
	ErrExtraction = errors.New("extraction failed")
)

type File struct {
	Name string

	Content     []byte
	ContentType string
}

// Region is the fixed card area on the first page, in PDF points with the
// origin at the top-left corner of the page.
type Region struct {
	Left   float64
	Top    float64
	Right  float64
	Bottom float64

	Zoom float64
}

// DefaultRegion matches the card position of the supported ID card template.
var DefaultRegion = Region{
	Left:   106,
	Top:    95,
	Right:  410,
	Bottom: 248,

	Zoom: 4,
}

func (r Region) Validate() error {
	if r.Right <= r.Left || r.Bottom <= r.Top {
		return fmt.Errorf("invalid region (%g, %g, %g, %g)", r.Left, r.Top, r.Right, r.Bottom)
	}

	if r.Zoom <= 0 {
		return fmt.Errorf("invalid zoom %g", r.Zoom)
	}

	return nil
}

// Size returns the nominal raster size of the region.
func (r Region) Size() image.Point {
	return r.rect().Pixels(r.Zoom).Size()
}

func (r Region) rect() renderer.Rect {
	return renderer.Rect{
		Left:   r.Left,
		Top:    r.Top,
		Right:  r.Right,
		Bottom: r.Bottom,
	}
}

type Extractor struct {
	renderer renderer.Renderer
	region   Region
}

func New(r renderer.Renderer, region Region) (*Extractor, error) {
	if r == nil {
		return nil, errors.New("renderer is required")
	}

	if err := region.Validate(); err != nil {
		return nil, err
	}

	return &Extractor{
		renderer: r,
		region:   region,
	}, nil
}

func (e *Extractor) Region() Region {
	return e.region
}

// Extract renders the region of the first page of file.
func (e *Extractor) Extract(ctx context.Context, file File) (image.Image, error) {
	options := &renderer.RenderOptions{
		Page: 0,
		Clip: e.region.rect(),
		Zoom: e.region.Zoom,
	}

	img, err := e.renderer.Render(ctx, file.Content, options)

	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrExtraction, file.Name, err)
	}

	if img == nil || img.Bounds().Empty() {
		return nil, fmt.Errorf("%w: %s: empty image", ErrExtraction, file.Name)
	}

	return img, nil
}
