package session

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/adrianliechti/cardsheet/pkg/extractor"
	"github.com/adrianliechti/cardsheet/pkg/layout"
	"github.com/adrianliechti/cardsheet/pkg/report"

	"github.com/google/uuid"
)

// Run is one batch whose layout has been seeded from its first file.
type Run struct {
	driver *Driver
	logger *slog.Logger

	id    string
	name  string
	state State

	files []extractor.File

	back   image.Image
	seed   image.Image
	params layout.Params

	release sync.Once
}

type Result struct {
	ID   string
	Name string
	Path string

	Data        []byte
	ContentType string

	Rows    int
	Skipped []string

	Params    layout.Params
	Locations []string
}

// Begin validates the template and derives the sheet geometry from the
// first file. On success the driver is reserved for the run until Process
// or Abort is called.
func (d *Driver) Begin(ctx context.Context, files []extractor.File) (*Run, error) {
	if err := d.acquire(ctx); err != nil {
		return nil, err
	}

	r := &Run{
		driver: d,

		id:    uuid.NewString(),
		state: StateIdle,

		files: files,
	}

	r.logger = slog.With("run", r.id)

	if err := r.begin(ctx); err != nil {
		r.state = StateHalted
		r.done()

		runsHalted.Add(ctx, 1)

		return nil, err
	}

	return r, nil
}

func (r *Run) begin(ctx context.Context) error {
	d := r.driver

	if err := transition(&r.state, StateValidatingTemplate); err != nil {
		return err
	}

	back, err := d.Template()

	if err != nil {
		r.logger.Error("back template missing", "path", d.template, "error", err)
		return err
	}

	if err := transition(&r.state, StateAwaitingUpload); err != nil {
		return err
	}

	if len(r.files) == 0 {
		return ErrNoFiles
	}

	first, err := d.extractor.Extract(ctx, r.files[0])

	if err != nil {
		r.logger.Error("could not read first file", "file", r.files[0].Name, "error", err)
		return fmt.Errorf("%w: %w", ErrLayoutSeed, err)
	}

	params, err := layout.Compute(first, d.width)

	if err != nil {
		return fmt.Errorf("%w: %w", ErrLayoutSeed, err)
	}

	r.back = back
	r.seed = first
	r.params = params
	r.name = "IDs_" + d.now().Format("20060102_150405") + ".xlsx"

	r.logger.Info("target cell size", "width", params.Width, "height", params.Height, "scale", params.Scale, "files", len(r.files))

	return nil
}

func (r *Run) ID() string {
	return r.id
}

func (r *Run) Name() string {
	return r.name
}

func (r *Run) State() State {
	return r.state
}

func (r *Run) Params() layout.Params {
	return r.params
}

// Abort releases the driver without processing the run.
func (r *Run) Abort() {
	if r.state == StateAwaitingUpload {
		r.state = StateHalted
	}

	r.done()
}

func (r *Run) done() {
	r.release.Do(r.driver.release)
}

// Process writes one row per extracted file at the file's position in the
// batch, finalizes the report and hands it to the publishers. Files that
// fail extraction are skipped and leave an empty row.
func (r *Run) Process(ctx context.Context, observer Observer) (*Result, error) {
	defer r.done()

	if r.state != StateAwaitingUpload {
		return nil, fmt.Errorf("%w: cannot process run in state %s", ErrRunState, r.state)
	}

	if observer == nil {
		observer = nopObserver{}
	}

	result, err := r.process(ctx, observer)

	if err != nil {
		r.state = StateFailed
		r.logger.Error("run failed", "error", err)

		runsFailed.Add(ctx, 1)

		return nil, err
	}

	return result, nil
}

// extract returns the card of the file at index. The first file was already
// extracted while seeding the layout.
func (r *Run) extract(ctx context.Context, index int, file extractor.File) (image.Image, error) {
	if index == 0 && r.seed != nil {
		return r.seed, nil
	}

	img, err := r.driver.extractor.Extract(ctx, file)

	if err != nil && !errors.Is(err, extractor.ErrExtraction) {
		err = fmt.Errorf("%w: %w", extractor.ErrExtraction, err)
	}

	return img, err
}

func (r *Run) process(ctx context.Context, observer Observer) (*Result, error) {
	d := r.driver

	path := filepath.Join(d.output, r.name)

	rep, err := report.Open(path)

	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWrite, err)
	}

	if err := rep.SetSheetDimensions(r.params.Width, r.params.Height); err != nil {
		rep.Discard()
		return nil, fmt.Errorf("%w: %w", ErrWrite, err)
	}

	if err := transition(&r.state, StateProcessing); err != nil {
		rep.Discard()
		return nil, err
	}

	observer.Layout(r.params)

	backLabel := filepath.Base(d.template)

	var skipped []string

	for i, file := range r.files {
		if err := ctx.Err(); err != nil {
			rep.Discard()
			return nil, err
		}

		observer.Status(i, file.Name)

		front, err := r.extract(ctx, i, file)

		if err != nil {
			r.logger.Warn("skipping file", "file", file.Name, "row", i, "error", err)

			skipped = append(skipped, file.Name)
			filesSkipped.Add(ctx, 1)
		} else {
			pair := layout.NewPair(front, r.back)

			if err := rep.WriteRow(i, pair, r.params.Scale, file.Name, backLabel); err != nil {
				rep.Discard()
				return nil, fmt.Errorf("%w: row %d: %w", ErrWrite, i, err)
			}

			rowsWritten.Add(ctx, 1)
		}

		observer.Progress(i+1, len(r.files))
	}

	if err := transition(&r.state, StateFinalizing); err != nil {
		rep.Discard()
		return nil, err
	}

	if err := rep.Close(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWrite, err)
	}

	data, err := os.ReadFile(path)

	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWrite, err)
	}

	var locations []string

	for _, p := range d.publishers {
		location, err := p.Publish(ctx, r.name, data)

		if err != nil {
			r.logger.Error("failed to publish report", "name", r.name, "error", err)
			continue
		}

		locations = append(locations, location)
	}

	if err := transition(&r.state, StateComplete); err != nil {
		return nil, err
	}

	r.logger.Info("extraction complete", "path", path, "rows", rep.Rows(), "skipped", len(skipped))

	return &Result{
		ID:   r.id,
		Name: r.name,
		Path: path,

		Data:        data,
		ContentType: report.ContentType,

		Rows:    rep.Rows(),
		Skipped: skipped,

		Params:    r.params,
		Locations: locations,
	}, nil
}
