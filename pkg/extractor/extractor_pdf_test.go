package extractor_test

import (
	"context"
	"testing"

	"github.com/adrianliechti/cardsheet/pkg/extractor"
	"github.com/adrianliechti/cardsheet/pkg/pdftest"
	"github.com/adrianliechti/cardsheet/pkg/renderer/fitz"
	"github.com/adrianliechti/cardsheet/pkg/renderer/preflight"

	"github.com/stretchr/testify/require"
)

func TestExtractDocument(t *testing.T) {
	r, err := fitz.New()
	require.NoError(t, err)

	e, err := extractor.New(preflight.New(r), extractor.DefaultRegion)
	require.NoError(t, err)

	ctx := context.Background()

	img, err := e.Extract(ctx, extractor.File{Name: "card.pdf", Content: pdftest.Document(pdftest.Card(), pdftest.Letter())})
	require.NoError(t, err)
	require.Equal(t, extractor.DefaultRegion.Size(), img.Bounds().Size())

	// deterministic for a fixed input
	again, err := e.Extract(ctx, extractor.File{Name: "card.pdf", Content: pdftest.Document(pdftest.Card(), pdftest.Letter())})
	require.NoError(t, err)
	require.Equal(t, img.Bounds(), again.Bounds())

	_, err = e.Extract(ctx, extractor.File{Name: "corrupt.pdf", Content: []byte("not a pdf")})
	require.ErrorIs(t, err, extractor.ErrExtraction)

	_, err = e.Extract(ctx, extractor.File{Name: "empty.pdf", Content: pdftest.Empty()})
	require.ErrorIs(t, err, extractor.ErrExtraction)
}
