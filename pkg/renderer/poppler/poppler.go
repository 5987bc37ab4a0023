package poppler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/adrianliechti/cardsheet/pkg/renderer"
)

var _ renderer.Renderer = &Renderer{}

// Renderer rasterizes pages by running poppler's pdftoppm.
type Renderer struct {
	binary  string
	timeout time.Duration
}

func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		binary: "pdftoppm",
	}

	for _, option := range options {
		option(r)
	}

	if _, err := exec.LookPath(r.binary); err != nil {
		return nil, fmt.Errorf("pdftoppm not found: %w", err)
	}

	return r, nil
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

	if options.Page < 0 {
		return nil, renderer.ErrPageNotFound
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	dir, err := os.MkdirTemp("", "cardsheet-pdftoppm-*")

	if err != nil {
		return nil, err
	}

	defer os.RemoveAll(dir)

	input := filepath.Join(dir, "input.pdf")
	prefix := filepath.Join(dir, "page")

	if err := os.WriteFile(input, data, 0600); err != nil {
		return nil, err
	}

	args := renderArgs(options)
	args = append(args, input, prefix)

	cmd := exec.CommandContext(ctx, r.binary, args...)
	cmd.Env = append(os.Environ(), "LANG=C.UTF-8", "LC_ALL=C.UTF-8")

	out, err := cmd.CombinedOutput()

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return nil, fmt.Errorf("pdftoppm timed out on page %d", options.Page+1)
	}

	if err != nil {
		return nil, fmt.Errorf("%w: pdftoppm failed on page %d: %w: %s", renderer.ErrInvalidDocument, options.Page+1, err, strings.TrimSpace(string(out)))
	}

	result, err := os.ReadFile(prefix + ".png")

	if err != nil {
		return nil, renderer.ErrPageNotFound
	}

	img, err := png.Decode(bytes.NewReader(result))

	if err != nil {
		return nil, err
	}

	return renderer.Crop(img, img.Bounds().Sub(img.Bounds().Min))
}

func renderArgs(options *renderer.RenderOptions) []string {
	page := strconv.Itoa(options.Page + 1)

	args := []string{
		"-png",
		"-r", strconv.FormatFloat(renderer.DPI(options.Zoom), 'f', -1, 64),
		"-q",
		"-singlefile",
		"-f", page,
		"-l", page,
	}

	if !options.Clip.Empty() {
		clip := options.Clip.Pixels(options.Zoom)

		args = append(args,
			"-x", strconv.Itoa(clip.Min.X),
			"-y", strconv.Itoa(clip.Min.Y),
			"-W", strconv.Itoa(clip.Dx()),
			"-H", strconv.Itoa(clip.Dy()),
		)
	}

	return args
}
