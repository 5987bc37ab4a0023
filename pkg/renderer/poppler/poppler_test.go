package poppler

import (
	"context"
	"os/exec"
	"testing"

	"github.com/adrianliechti/cardsheet/pkg/pdftest"
	"github.com/adrianliechti/cardsheet/pkg/renderer"

	"github.com/stretchr/testify/require"
)

func TestRenderArgs(t *testing.T) {
	args := renderArgs(&renderer.RenderOptions{
		Page: 0,
		Clip: renderer.Rect{Left: 106, Top: 95, Right: 410, Bottom: 248},
		Zoom: 4,
	})

	require.Equal(t, []string{
		"-png",
		"-r", "288",
		"-q",
		"-singlefile",
		"-f", "1",
		"-l", "1",
		"-x", "424",
		"-y", "380",
		"-W", "1216",
		"-H", "612",
	}, args)
}

func TestRenderArgsWithoutClip(t *testing.T) {
	args := renderArgs(&renderer.RenderOptions{
		Page: 2,
		Zoom: 1.5,
	})

	require.Equal(t, []string{"-png", "-r", "108", "-q", "-singlefile", "-f", "3", "-l", "3"}, args)
}

func TestRender(t *testing.T) {
	if _, err := exec.LookPath("pdftoppm"); err != nil {
		t.Skip("pdftoppm not installed")
	}

	r, err := New()
	require.NoError(t, err)

	img, err := r.Render(context.Background(), pdftest.Document(pdftest.Card()), &renderer.RenderOptions{
		Clip: renderer.Rect{Left: 106, Top: 95, Right: 410, Bottom: 248},
		Zoom: 4,
	})

	require.NoError(t, err)
	require.Equal(t, 1216, img.Bounds().Dx())
	require.Equal(t, 612, img.Bounds().Dy())
}

func TestNewMissingBinary(t *testing.T) {
	_, err := New(WithBinary("cardsheet-no-such-pdftoppm"))
	require.Error(t, err)
}

func TestRenderKeepsOptions(t *testing.T) {
	r := &Renderer{binary: "pdftoppm"}

	options := &renderer.RenderOptions{Page: -1}

	_, err := r.Render(context.Background(), nil, options)

	require.ErrorIs(t, err, renderer.ErrPageNotFound)
	require.Equal(t, renderer.RenderOptions{Page: -1}, *options)
}
