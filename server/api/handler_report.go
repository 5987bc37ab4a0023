package api

import (
	"mime"
	"net/http"
	"strconv"

	"github.com/adrianliechti/cardsheet/pkg/report"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) handleReport(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	data, err := h.driver.Report(name)

	if err != nil {
		writeError(w, errorStatus(err), err)
		return
	}

	w.Header().Set("Content-Type", report.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))

	w.Write(data)
}

func reportURL(name string) string {
	return "/api/reports/" + name
}
