package handlers

import (
	"net/http"

	"assetserver/src/schemas"

	"github.com/go-chi/chi/v5"
)

// ActivateAsset moves one asset of {kind} to active.
func (h *Handler) ActivateAsset(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r, h.RequestTimeout)
	defer cancel()

	id, err := pathID(r, "id")
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	if err := h.Controller.ActivateAsset(ctx, chi.URLParam(r, "kind"), id); err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, map[string]string{"message": "Asset activated"}, http.StatusOK)
}

func (h *Handler) BulkAction(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r, h.RequestTimeout)
	defer cancel()

	var req schemas.BulkActionRequest
	if err := h.decode(r, &req); err != nil {
		h.HandleErrors(w, err)
		return
	}

	res, err := h.Controller.BulkAction(ctx, &req)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, res, http.StatusOK)
}
