package api_test

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/adrianliechti/cardsheet/pkg/extractor"
	"github.com/adrianliechti/cardsheet/pkg/report"
	"github.com/adrianliechti/cardsheet/pkg/session"
	"github.com/adrianliechti/cardsheet/server/api"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

type fakeExtractor struct {
	fail map[string]bool
}

func (e *fakeExtractor) Extract(ctx context.Context, file extractor.File) (image.Image, error) {
	if e.fail[file.Name] {
		return nil, errors.Join(extractor.ErrExtraction, errors.New("broken"))
	}

	return image.NewRGBA(image.Rect(0, 0, 1216, 612)), nil
}

type fakeOpener struct {
	dirs []string
}

func (o *fakeOpener) Open(ctx context.Context, dir string) error {
	o.dirs = append(o.dirs, dir)
	return nil
}

func writeTemplate(t *testing.T, path string) {
	t.Helper()

	f, err := os.Create(path)
	require.NoError(t, err)

	defer f.Close()

	require.NoError(t, png.Encode(f, image.NewRGBA(image.Rect(0, 0, 300, 200))))
}

func newRouter(t *testing.T, template bool, fail map[string]bool, options ...session.Option) (http.Handler, string) {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "backside.png")

	if template {
		writeTemplate(t, path)
	}

	output := filepath.Join(dir, "out")

	options = append([]session.Option{
		session.WithTemplate(path),
		session.WithOutput(output),
		session.WithClock(func() time.Time {
			return time.Date(2026, 10, 14, 9, 30, 5, 0, time.UTC)
		}),
	}, options...)

	driver, err := session.New(&fakeExtractor{fail: fail}, options...)
	require.NoError(t, err)

	h, err := api.New(driver, extractor.DefaultRegion)
	require.NoError(t, err)

	r := chi.NewRouter()
	h.Attach(r)

	return r, output
}

func uploadRequest(t *testing.T, names ...string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	for _, name := range names {
		fw, err := mw.CreateFormFile("files", name)
		require.NoError(t, err)

		fw.Write([]byte("%PDF-1.4"))
	}

	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/batches", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	return req
}

func TestStatus(t *testing.T) {
	r, _ := newRouter(t, false, nil)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var status api.Status
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))

	require.False(t, status.Template.Available)
	require.NotEmpty(t, status.Template.Error)
	require.Equal(t, 400, status.LayoutWidth)
	require.Equal(t, 106.0, status.Region.Left)
	require.Equal(t, 4.0, status.Region.Zoom)
	require.False(t, status.OpenFolder)
}

func TestBatchJSON(t *testing.T) {
	r, output := newRouter(t, true, map[string]bool{"b.pdf": true})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, uploadRequest(t, "a.pdf", "b.pdf", "c.pdf"))

	require.Equal(t, http.StatusOK, rec.Code)

	var result api.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))

	require.Equal(t, "IDs_20261014_093005.xlsx", result.Name)
	require.Equal(t, "/api/reports/IDs_20261014_093005.xlsx", result.URL)
	require.Equal(t, 2, result.Rows)
	require.Equal(t, []string{"b.pdf"}, result.Skipped)
	require.Equal(t, 400, result.Width)
	require.Equal(t, 201, result.Height)

	require.FileExists(t, filepath.Join(output, result.Name))
}

func TestBatchEvents(t *testing.T) {
	r, _ := newRouter(t, true, nil)

	req := uploadRequest(t, "a.pdf", "b.pdf")
	req.Header.Set("Accept", "text/event-stream")

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))

	var events []string
	var last string

	scanner := bufio.NewScanner(rec.Body)

	for scanner.Scan() {
		line := scanner.Text()

		if event, ok := strings.CutPrefix(line, "event: "); ok {
			events = append(events, event)
		}

		if data, ok := strings.CutPrefix(line, "data: "); ok {
			last = data
		}
	}

	require.Equal(t, []string{"layout", "status", "progress", "status", "progress", "complete"}, events)

	var result api.Result
	require.NoError(t, json.Unmarshal([]byte(last), &result))
	require.Equal(t, 2, result.Rows)
}

func TestBatchErrors(t *testing.T) {
	t.Run("template missing", func(t *testing.T) {
		r, output := newRouter(t, false, nil)

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, uploadRequest(t, "a.pdf"))

		require.Equal(t, http.StatusServiceUnavailable, rec.Code)
		require.NoDirExists(t, output)
	})

	t.Run("no files", func(t *testing.T) {
		r, _ := newRouter(t, true, nil)

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, uploadRequest(t))

		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("not multipart", func(t *testing.T) {
		r, _ := newRouter(t, true, nil)

		req := httptest.NewRequest(http.MethodPost, "/batches", strings.NewReader("{}"))
		req.Header.Set("Content-Type", "application/json")

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("first file unreadable", func(t *testing.T) {
		r, output := newRouter(t, true, map[string]bool{"a.pdf": true})

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, uploadRequest(t, "a.pdf", "b.pdf"))

		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		require.NoDirExists(t, output)
	})
}

func TestReport(t *testing.T) {
	r, _ := newRouter(t, true, nil)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, uploadRequest(t, "a.pdf"))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/reports/IDs_20261014_093005.xlsx", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, report.ContentType, rec.Header().Get("Content-Type"))
	require.Equal(t, "attachment; filename=IDs_20261014_093005.xlsx", rec.Header().Get("Content-Disposition"))
	require.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("PK")))

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/reports/IDs_20991231_000000.xlsx", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/reports/config.yaml", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFolder(t *testing.T) {
	t.Run("unsupported", func(t *testing.T) {
		r, _ := newRouter(t, true, nil)

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/folder", nil))

		require.Equal(t, http.StatusNotImplemented, rec.Code)
	})

	t.Run("opener", func(t *testing.T) {
		o := &fakeOpener{}
		r, output := newRouter(t, true, nil, session.WithOpener(o))

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/folder", nil))

		require.Equal(t, http.StatusNoContent, rec.Code)
		require.Equal(t, []string{output}, o.dirs)
	})
}
