package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/adrianliechti/cardsheet/pkg/layout"
	"github.com/adrianliechti/cardsheet/pkg/session"
)

func (h *Handler) handleBatch(w http.ResponseWriter, r *http.Request) {
	files, err := readFiles(r)

	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	// a started batch runs to completion even if the client goes away
	ctx := context.WithoutCancel(r.Context())

	run, err := h.driver.Begin(ctx, files)

	if err != nil {
		writeError(w, errorStatus(err), err)
		return
	}

	if !acceptsEvents(r) {
		result, err := run.Process(ctx, nil)

		if err != nil {
			writeError(w, errorStatus(err), err)
			return
		}

		writeJson(w, toResult(result))
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	w.WriteHeader(http.StatusOK)

	observer := &eventObserver{w: w}

	result, err := run.Process(ctx, observer)

	if err != nil {
		writeEvent(w, "error", Error{
			Status:  errorStatus(err),
			Message: err.Error(),
		})

		return
	}

	writeEvent(w, "complete", toResult(result))
}

func toResult(result *session.Result) Result {
	return Result{
		ID:   result.ID,
		Name: result.Name,
		URL:  reportURL(result.Name),

		Rows:    result.Rows,
		Skipped: result.Skipped,

		Width:  result.Params.Width,
		Height: result.Params.Height,
		Scale:  result.Params.Scale,

		Locations: result.Locations,
	}
}

// eventObserver streams run progress as server-sent events. Write errors
// are dropped so a disconnected client does not stop the run.
type eventObserver struct {
	w http.ResponseWriter
}

func (o *eventObserver) Layout(params layout.Params) {
	writeEvent(o.w, "layout", Layout{
		Width:  params.Width,
		Height: params.Height,
		Scale:  params.Scale,
	})
}

func (o *eventObserver) Status(index int, name string) {
	writeEvent(o.w, "status", FileStatus{
		Index: index,
		Name:  name,
		Text:  fmt.Sprintf("Processing: %s", name),
	})
}

func (o *eventObserver) Progress(done, total int) {
	percent := 0

	if total > 0 {
		percent = done * 100 / total
	}

	writeEvent(o.w, "progress", Progress{
		Done:  done,
		Total: total,

		Percent: percent,
	})
}
