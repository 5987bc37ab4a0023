package web

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/adrianliechti/cardsheet/pkg/session"

	"github.com/go-chi/chi/v5"
)

//go:embed index.html
var files embed.FS

var index = template.Must(template.ParseFS(files, "index.html"))

type Handler struct {
	driver *session.Driver
}

type page struct {
	Template string
	Error    string

	Output     string
	Width      int
	OpenFolder bool
}

func New(driver *session.Driver) (*Handler, error) {
	if driver == nil {
		return nil, errors.New("driver is required")
	}

	return &Handler{
		driver: driver,
	}, nil
}

func (h *Handler) Attach(r chi.Router) {
	r.Get("/", h.handleIndex)
}

func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	p := page{
		Template: h.driver.TemplatePath(),

		Output:     h.driver.Output(),
		Width:      h.driver.Width(),
		OpenFolder: h.driver.CanOpenFolder(),
	}

	if err := h.driver.CheckTemplate(); err != nil {
		p.Error = err.Error()
	}

	var buf bytes.Buffer

	if err := index.Execute(&buf, p); err != nil {
		slog.Error("failed to render page", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}
