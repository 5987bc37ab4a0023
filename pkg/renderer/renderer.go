package renderer

import (
	"context"
	"errors"
	"image"
	"math"
)

type Renderer interface {
	Render(ctx context.Context, data []byte, options *RenderOptions) (image.Image, error)
}

var (
	ErrInvalidDocument = errors.New("invalid document")
	ErrPageNotFound    = errors.New("page not found")
	ErrEmptyClip       = errors.New("clip outside page")
)

type RenderOptions struct {
	// Page is zero-based.
	Page int

	// Clip is in PDF points with the origin at the top-left corner of the page.
	Clip Rect

	Zoom float64
}

type Rect struct {
	Left   float64
	Top    float64
	Right  float64
	Bottom float64
}

func (r Rect) Width() float64 {
	return r.Right - r.Left
}

func (r Rect) Height() float64 {
	return r.Bottom - r.Top
}

func (r Rect) Empty() bool {
	return r.Right <= r.Left || r.Bottom <= r.Top
}

// Pixels scales the rect by zoom and rounds it outwards to whole pixels.
func (r Rect) Pixels(zoom float64) image.Rectangle {
	return image.Rect(
		int(math.Floor(r.Left*zoom)),
		int(math.Floor(r.Top*zoom)),
		int(math.Ceil(r.Right*zoom)),
		int(math.Ceil(r.Bottom*zoom)),
	)
}

// DPI returns the resolution matching zoom for a 72 points per inch page.
func DPI(zoom float64) float64 {
	return 72 * zoom
}
