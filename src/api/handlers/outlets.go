package handlers

import "net/http"

func (h *Handler) GetOutlets(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r, h.RequestTimeout)
	defer cancel()

	outlets, err := h.Controller.GetOutlets(ctx)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, outlets, http.StatusOK)
}

// GetStats returns the dashboard asset counts.
func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r, h.RequestTimeout)
	defer cancel()

	stats, err := h.Controller.GetStats(ctx)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, stats, http.StatusOK)
}
