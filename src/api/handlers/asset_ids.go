package handlers

import "net/http"

// GetNextRetailAssetID previews the id a retail asset with ?item= would get.
func (h *Handler) GetNextRetailAssetID(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r, h.RequestTimeout)
	defer cancel()

	res, err := h.Controller.NextRetailAssetID(ctx, r.URL.Query().Get("item"))
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, res, http.StatusOK)
}

func (h *Handler) GetNextITAssetID(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r, h.RequestTimeout)
	defer cancel()

	res, err := h.Controller.NextITAssetID(ctx, r.URL.Query().Get("asset_type"))
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, res, http.StatusOK)
}
