// Package reporttest reads picture anchors back from a saved report.
package reporttest

import (
	"archive/zip"
	"encoding/xml"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

const emuPerPixel = 9525

// Anchor is a picture placement in pixels with a zero-based cell.
type Anchor struct {
	Col int
	Row int

	OffsetX int
	OffsetY int

	Width  int
	Height int

	Label string

	// TwoCell is set for anchors that end in another cell.
	TwoCell bool
}

type drawing struct {
	OneCell []anchor `xml:"oneCellAnchor"`
	TwoCell []anchor `xml:"twoCellAnchor"`
}

type anchor struct {
	From struct {
		Col    int `xml:"col"`
		ColOff int `xml:"colOff"`
		Row    int `xml:"row"`
		RowOff int `xml:"rowOff"`
	} `xml:"from"`

	Ext struct {
		Cx int `xml:"cx,attr"`
		Cy int `xml:"cy,attr"`
	} `xml:"ext"`

	Pic struct {
		NvPicPr struct {
			CNvPr struct {
				Descr string `xml:"descr,attr"`
			} `xml:"cNvPr"`
		} `xml:"nvPicPr"`
	} `xml:"pic"`
}

// Anchors returns the picture anchors of the first sheet of the report at path.
func Anchors(t *testing.T, path string) []Anchor {
	t.Helper()

	zr, err := zip.OpenReader(path)
	require.NoError(t, err)

	defer zr.Close()

	f, err := zr.Open("xl/drawings/drawing1.xml")
	require.NoError(t, err)

	defer f.Close()

	data, err := io.ReadAll(f)
	require.NoError(t, err)

	var d drawing
	require.NoError(t, xml.Unmarshal(data, &d))

	var result []Anchor

	add := func(a anchor, twoCell bool) {
		result = append(result, Anchor{
			Col: a.From.Col,
			Row: a.From.Row,

			OffsetX: a.From.ColOff / emuPerPixel,
			OffsetY: a.From.RowOff / emuPerPixel,

			Width:  a.Ext.Cx / emuPerPixel,
			Height: a.Ext.Cy / emuPerPixel,

			Label: a.Pic.NvPicPr.CNvPr.Descr,

			TwoCell: twoCell,
		})
	}

	for _, a := range d.OneCell {
		add(a, false)
	}

	for _, a := range d.TwoCell {
		add(a, true)
	}

	return result
}
