package layout

import (
	"errors"
	"fmt"
	"image"
	"math"

	"golang.org/x/image/draw"
)

// DefaultWidth is the column width in pixels every card is scaled to.
const DefaultWidth = 400

// Params is the cell geometry shared by all rows of a report.
type Params struct {
	Width  int
	Height int

	Scale float64
}

// Compute derives the sheet geometry from the first card of a batch.
func Compute(first image.Image, width int) (Params, error) {
	if width <= 0 {
		return Params{}, fmt.Errorf("invalid target width %d", width)
	}

	if first == nil || first.Bounds().Empty() {
		return Params{}, errors.New("empty image")
	}

	size := first.Bounds().Size()
	scale := float64(width) / float64(size.X)

	return Params{
		Width:  width,
		Height: int(math.Round(float64(size.Y) * scale)),

		Scale: scale,
	}, nil
}

// Pair is one report row: a card front and the back template resized to it.
type Pair struct {
	Front image.Image
	Back  image.Image
}

// NewPair resizes back to the native size of front. The template is not
// modified.
func NewPair(front, back image.Image) Pair {
	return Pair{
		Front: front,
		Back:  Resize(back, front.Bounds().Size()),
	}
}

// Resize returns a copy of src scaled to size with Catmull-Rom resampling.
func Resize(src image.Image, size image.Point) image.Image {
	dst := image.NewRGBA(image.Rectangle{Max: size})
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)

	return dst
}
