package session

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/adrianliechti/cardsheet/pkg/extractor"
	"github.com/adrianliechti/cardsheet/pkg/layout"
	"github.com/adrianliechti/cardsheet/pkg/opener"
	"github.com/adrianliechti/cardsheet/pkg/publisher"

	_ "image/jpeg"
	_ "image/png"
)

const (
	DefaultTemplate = "backside.png"
	DefaultOutput   = "Extracted_ID_Reports"
)

var reportName = regexp.MustCompile(`^IDs_[0-9]{8}_[0-9]{6}\.xlsx$`)

type Extractor interface {
	Extract(ctx context.Context, file extractor.File) (image.Image, error)
}

// Driver runs batches of documents into reports, one run at a time.
type Driver struct {
	extractor Extractor

	template string
	output   string
	width    int

	now func() time.Time

	publishers []publisher.Provider
	opener     opener.Opener

	slot chan struct{}
}

type Option func(*Driver)

func WithTemplate(path string) Option {
	return func(d *Driver) {
		d.template = path
	}
}

func WithOutput(dir string) Option {
	return func(d *Driver) {
		d.output = dir
	}
}

// WithWidth sets the column width in pixels.
func WithWidth(px int) Option {
	return func(d *Driver) {
		d.width = px
	}
}

func WithClock(now func() time.Time) Option {
	return func(d *Driver) {
		d.now = now
	}
}

func WithPublisher(p ...publisher.Provider) Option {
	return func(d *Driver) {
		d.publishers = append(d.publishers, p...)
	}
}

func WithOpener(o opener.Opener) Option {
	return func(d *Driver) {
		d.opener = o
	}
}

func New(e Extractor, options ...Option) (*Driver, error) {
	if e == nil {
		return nil, errors.New("extractor is required")
	}

	d := &Driver{
		extractor: e,

		width: layout.DefaultWidth,
		now:   time.Now,

		slot: make(chan struct{}, 1),
	}

	for _, option := range options {
		option(d)
	}

	if d.template == "" {
		d.template = DefaultTemplatePath()
	}

	if d.output == "" {
		wd, err := os.Getwd()

		if err != nil {
			return nil, err
		}

		d.output = filepath.Join(wd, DefaultOutput)
	}

	if d.width <= 0 {
		return nil, fmt.Errorf("invalid width %d", d.width)
	}

	return d, nil
}

// DefaultTemplatePath returns backside.png next to the running executable.
func DefaultTemplatePath() string {
	exe, err := os.Executable()

	if err != nil {
		return DefaultTemplate
	}

	return filepath.Join(filepath.Dir(exe), DefaultTemplate)
}

func (d *Driver) TemplatePath() string {
	return d.template
}

func (d *Driver) Output() string {
	return d.output
}

func (d *Driver) Width() int {
	return d.width
}

// CanOpenFolder reports whether OpenFolder is available.
func (d *Driver) CanOpenFolder() bool {
	return d.opener != nil
}

// CheckTemplate reports ErrTemplateMissing unless the template file exists.
func (d *Driver) CheckTemplate() error {
	info, err := os.Stat(d.template)

	if err != nil || info.IsDir() {
		return fmt.Errorf("%w: %s", ErrTemplateMissing, d.template)
	}

	return nil
}

// Template loads and decodes the back template.
func (d *Driver) Template() (image.Image, error) {
	if err := d.CheckTemplate(); err != nil {
		return nil, err
	}

	f, err := os.Open(d.template)

	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTemplateMissing, err)
	}

	defer f.Close()

	img, _, err := image.Decode(f)

	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrTemplateMissing, d.template, err)
	}

	return img, nil
}

// Execute runs both phases of a batch.
func (d *Driver) Execute(ctx context.Context, files []extractor.File, observer Observer) (*Result, error) {
	run, err := d.Begin(ctx, files)

	if err != nil {
		return nil, err
	}

	return run.Process(ctx, observer)
}

// Report returns the content of a finished report in the output directory.
func (d *Driver) Report(name string) ([]byte, error) {
	if !reportName.MatchString(name) {
		return nil, ErrNotFound
	}

	data, err := os.ReadFile(filepath.Join(d.output, name))

	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}

	return data, err
}

// OpenFolder shows the output directory in the platform file browser.
func (d *Driver) OpenFolder(ctx context.Context) error {
	if d.opener == nil {
		return ErrUnsupported
	}

	if err := os.MkdirAll(d.output, 0755); err != nil {
		return err
	}

	return d.opener.Open(ctx, d.output)
}

func (d *Driver) acquire(ctx context.Context) error {
	select {
	case d.slot <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *Driver) release() {
	<-d.slot
}
