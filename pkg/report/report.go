package report

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"math"
	"os"
	"path/filepath"

	"github.com/adrianliechti/cardsheet/pkg/layout"

	"github.com/xuri/excelize/v2"
)

const (
	SheetName = "IDs"

	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var (
	ErrClosed            = errors.New("report closed")
	ErrDimensionsSet     = errors.New("sheet dimensions already set")
	ErrDimensionsMissing = errors.New("sheet dimensions not set")
)

// Report is a workbook with one sheet holding a front and a back image per row.
// Nothing exists on disk until Close.
type Report struct {
	path string
	file *excelize.File

	width  int
	height int

	rows   int
	closed bool
}

func Open(path string) (*Report, error) {
	if path == "" {
		return nil, errors.New("report path is required")
	}

	f := excelize.NewFile()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		f.Close()
		return nil, err
	}

	return &Report{
		path: path,
		file: f,
	}, nil
}

func (r *Report) Path() string {
	return r.path
}

// Rows returns the number of rows written so far.
func (r *Report) Rows() int {
	return r.rows
}

// SetSheetDimensions sets the width of the front and back columns and the
// height used for every row. It must be called once, before any row.
func (r *Report) SetSheetDimensions(width, height int) error {
	if r.closed {
		return ErrClosed
	}

	if r.width != 0 {
		return ErrDimensionsSet
	}

	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid sheet dimensions %dx%d", width, height)
	}

	if err := r.file.SetColWidth(SheetName, "A", "B", ColumnWidth(width)); err != nil {
		return err
	}

	r.width = width
	r.height = height

	return nil
}

// WriteRow embeds the pair at the zero-based row, front in column A and back
// in column B, both scaled by scale.
func (r *Report) WriteRow(row int, pair layout.Pair, scale float64, frontLabel, backLabel string) error {
	if r.closed {
		return ErrClosed
	}

	if r.width == 0 {
		return ErrDimensionsMissing
	}

	if row < 0 {
		return fmt.Errorf("invalid row %d", row)
	}

	if err := r.file.SetRowHeight(SheetName, row+1, RowHeight(r.height)); err != nil {
		return err
	}

	if err := r.addImage(1, row+1, pair.Front, scale, frontLabel); err != nil {
		return fmt.Errorf("front image: %w", err)
	}

	if err := r.addImage(2, row+1, pair.Back, scale, backLabel); err != nil {
		return fmt.Errorf("back image: %w", err)
	}

	r.rows++

	return nil
}

func (r *Report) addImage(col, row int, img image.Image, scale float64, label string) error {
	cell, err := excelize.CoordinatesToCellName(col, row)

	if err != nil {
		return err
	}

	var buf bytes.Buffer

	if err := png.Encode(&buf, img); err != nil {
		return err
	}

	size := img.Bounds().Size()
	px := PictureSize(size, scale)

	// one cell anchors carry the extent in EMU; two cell anchors end on rows
	// measured with excelize's own pixel ratio
	return r.file.AddPictureFromBytes(SheetName, cell, &excelize.Picture{
		Extension: ".png",
		File:      buf.Bytes(),

		Format: &excelize.GraphicOptions{
			AltText: label,

			ScaleX: truncScale(px.X, size.X),
			ScaleY: truncScale(px.Y, size.Y),

			Positioning: "oneCell",
		},
	})
}

// PictureSize returns the on-sheet pixel size of an image of size scaled by
// scale, rounded to whole pixels.
func PictureSize(size image.Point, scale float64) image.Point {
	return image.Pt(
		max(1, int(math.Round(float64(size.X)*scale))),
		max(1, int(math.Round(float64(size.Y)*scale))),
	)
}

// truncScale returns the factor excelize truncates to exactly px pixels.
func truncScale(px, n int) float64 {
	if n <= 0 {
		return 1
	}

	return (float64(px) + 0.5) / float64(n)
}

// Close writes the workbook to its path.
func (r *Report) Close() error {
	if r.closed {
		return ErrClosed
	}

	r.closed = true

	defer r.file.Close()

	if err := os.MkdirAll(filepath.Dir(r.path), 0755); err != nil {
		return err
	}

	return r.file.SaveAs(r.path)
}

// Discard releases the workbook without writing it.
func (r *Report) Discard() error {
	if r.closed {
		return nil
	}

	r.closed = true

	return r.file.Close()
}

// ColumnWidth converts pixels to the character based column width stored in
// the sheet, truncated to 1/256 of a character.
func ColumnWidth(px int) float64 {
	const maxDigitWidth = 7

	if px <= 0 {
		return 0
	}

	return math.Trunc(float64(px)/maxDigitWidth*256) / 256
}

// RowHeight converts pixels to points.
func RowHeight(px int) float64 {
	return float64(px) * 0.75
}
