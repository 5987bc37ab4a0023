package renderer

import (
	"image"

	"golang.org/x/image/draw"
)

// Crop copies the part of src inside r into a new image anchored at (0,0).
func Crop(src image.Image, r image.Rectangle) (image.Image, error) {
	r = r.Add(src.Bounds().Min).Intersect(src.Bounds())

	if r.Empty() {
		return nil, ErrEmptyClip
	}

	dst := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Draw(dst, dst.Bounds(), src, r.Min, draw.Src)

	return dst, nil
}
