package api

import (
	"net/http"
)

func (h *Handler) handleFolder(w http.ResponseWriter, r *http.Request) {
	if err := h.driver.OpenFolder(r.Context()); err != nil {
		writeError(w, errorStatus(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
