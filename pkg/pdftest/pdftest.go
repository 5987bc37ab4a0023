// Package pdftest builds small single-purpose PDF documents for tests.
package pdftest

import (
	"bytes"
	"fmt"
)

// Page describes one page of a generated document. Boxes are filled black
// and use PDF points with the origin at the top-left corner.
type Page struct {
	Width  float64
	Height float64

	Boxes [][4]float64 // [left, top, right, bottom]
}

// Letter is an empty US Letter page.
func Letter() Page {
	return Page{
		Width:  612,
		Height: 792,
	}
}

// Card is a US Letter page with the card region at (106, 95, 410, 248) filled.
func Card() Page {
	p := Letter()
	p.Boxes = append(p.Boxes, [4]float64{106, 95, 410, 248})

	return p
}

// Document returns a complete PDF file with a valid cross-reference table.
func Document(pages ...Page) []byte {
	var objects []string

	// 1: catalog, 2: page tree, then page and content pairs
	kids := ""

	for i := range pages {
		kids += fmt.Sprintf("%d 0 R ", 3+i*2)
	}

	objects = append(objects, "<< /Type /Catalog /Pages 2 0 R >>")
	objects = append(objects, fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", kids, len(pages)))

	for i, p := range pages {
		content := contentStream(p)

		objects = append(objects, fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 %s %s] /Resources << >> /Contents %d 0 R >>", number(p.Width), number(p.Height), 4+i*2))
		objects = append(objects, fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content))
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	offsets := make([]int, len(objects))

	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()

	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")

	for _, offset := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offset)
	}

	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)

	return buf.Bytes()
}

// Empty returns a structurally valid PDF whose page tree has no pages.
func Empty() []byte {
	return Document()
}

func contentStream(p Page) string {
	var buf bytes.Buffer
	buf.WriteString("0 0 0 rg")

	for _, b := range p.Boxes {
		// flip into the bottom-left origin used by content streams
		x := b[0]
		y := p.Height - b[3]

		fmt.Fprintf(&buf, "\n%s %s %s %s re f", number(x), number(y), number(b[2]-b[0]), number(b[3]-b[1]))
	}

	return buf.String()
}

func number(v float64) string {
	return fmt.Sprintf("%g", v)
}
