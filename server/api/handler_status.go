package api

import (
	"net/http"
)

func (h *Handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	status := Status{
		Template: TemplateStatus{
			Path:      h.driver.TemplatePath(),
			Available: true,
		},

		Output:     h.driver.Output(),
		OpenFolder: h.driver.CanOpenFolder(),

		LayoutWidth: h.driver.Width(),

		Region: Region{
			Left:   h.region.Left,
			Top:    h.region.Top,
			Right:  h.region.Right,
			Bottom: h.region.Bottom,

			Zoom: h.region.Zoom,
		},
	}

	if err := h.driver.CheckTemplate(); err != nil {
		status.Template.Available = false
		status.Template.Error = err.Error()
	}

	writeJson(w, status)
}
