package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/adrianliechti/cardsheet/pkg/extractor"
	"github.com/adrianliechti/cardsheet/pkg/session"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	driver *session.Driver
	region extractor.Region
}

func New(driver *session.Driver, region extractor.Region) (*Handler, error) {
	if driver == nil {
		return nil, errors.New("driver is required")
	}

	h := &Handler{
		driver: driver,
		region: region,
	}

	return h, nil
}

func (h *Handler) Attach(r chi.Router) {
	r.Get("/status", h.handleStatus)

	r.Post("/batches", h.handleBatch)
	r.Get("/reports/{name}", h.handleReport)

	r.Post("/folder", h.handleFolder)
}

func writeJson(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	enc.Encode(v)
}

func writeError(w http.ResponseWriter, code int, err error) {
	w.WriteHeader(code)

	text := http.StatusText(code)

	if err != nil {
		text = err.Error()
	}

	w.Write([]byte(text))
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, session.ErrTemplateMissing):
		return http.StatusServiceUnavailable
	case errors.Is(err, session.ErrNoFiles):
		return http.StatusBadRequest
	case errors.Is(err, session.ErrLayoutSeed):
		return http.StatusUnprocessableEntity
	case errors.Is(err, session.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, session.ErrUnsupported):
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}
