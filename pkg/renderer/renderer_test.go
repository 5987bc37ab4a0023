package renderer_test

import (
	"image"
	"image/color"
	"testing"

	"github.com/adrianliechti/cardsheet/pkg/renderer"

	"github.com/stretchr/testify/require"
)

func TestRectPixels(t *testing.T) {
	clip := renderer.Rect{Left: 106, Top: 95, Right: 410, Bottom: 248}

	r := clip.Pixels(4)

	require.Equal(t, image.Rect(424, 380, 1640, 992), r)
	require.Equal(t, 1216, r.Dx())
	require.Equal(t, 612, r.Dy())

	// fractional edges round outwards
	r = renderer.Rect{Left: 0.2, Top: 0.2, Right: 1.1, Bottom: 1.1}.Pixels(1)
	require.Equal(t, image.Rect(0, 0, 2, 2), r)
}

func TestRectEmpty(t *testing.T) {
	require.True(t, renderer.Rect{}.Empty())
	require.True(t, renderer.Rect{Left: 10, Right: 5, Top: 0, Bottom: 10}.Empty())
	require.False(t, renderer.Rect{Right: 1, Bottom: 1}.Empty())
}

func TestCrop(t *testing.T) {
	src := image.NewRGBA(image.Rect(10, 10, 110, 60))
	src.Set(30, 20, color.RGBA{R: 255, A: 255})

	img, err := renderer.Crop(src, image.Rect(20, 10, 40, 30))
	require.NoError(t, err)

	require.Equal(t, image.Rect(0, 0, 20, 20), img.Bounds())

	r, _, _, a := img.At(0, 0).RGBA()
	require.Equal(t, uint32(0xffff), r)
	require.Equal(t, uint32(0xffff), a)
}

func TestCropClampsToSource(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 100, 50))

	img, err := renderer.Crop(src, image.Rect(80, 40, 200, 200))
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, 20, 10), img.Bounds())

	_, err = renderer.Crop(src, image.Rect(200, 200, 300, 300))
	require.ErrorIs(t, err, renderer.ErrEmptyClip)
}
