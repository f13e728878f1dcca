package handlers

import (
	"net/http"

	"assetserver/src/repositories"
	"assetserver/src/schemas"
)

// GetITAssets lists IT assets filtered by ?search=, ?status=, ?outlet=,
// ?asset_type= and ?active=.
func (h *Handler) GetITAssets(w http.ResponseWriter, r *http.Request) {
	h.listITAssets(w, r, r.URL.Query().Get("asset_type"))
}

// GetITAssetsByType serves the per-type lists such as /api/cctv-assets.
func (h *Handler) GetITAssetsByType(assetType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.listITAssets(w, r, assetType)
	}
}

func (h *Handler) listITAssets(w http.ResponseWriter, r *http.Request, assetType string) {
	ctx, cancel := h.requestContext(r, h.RequestTimeout)
	defer cancel()

	query := r.URL.Query()
	filter := repositories.ITAssetFilter{
		Search:    query.Get("search"),
		Status:    query.Get("status"),
		AssetType: assetType,
		Active:    optionalBool(query.Get("active")),
	}
	filter.OutletID, filter.Outlet = outletFilter(query.Get("outlet"))

	assets, err := h.Controller.GetITAssets(ctx, filter)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, assets, http.StatusOK)
}

func (h *Handler) GetITAssetByID(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r, h.RequestTimeout)
	defer cancel()

	id, err := pathID(r, "id")
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	asset, err := h.Controller.GetITAssetByID(ctx, id)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, asset, http.StatusOK)
}

func (h *Handler) CreateITAsset(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r, h.RequestTimeout)
	defer cancel()

	var req schemas.ITAssetRequest
	if err := h.decode(r, &req); err != nil {
		h.HandleErrors(w, err)
		return
	}

	asset, err := h.Controller.CreateITAsset(ctx, &req)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, asset, http.StatusCreated)
}

func (h *Handler) UpdateITAsset(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r, h.RequestTimeout)
	defer cancel()

	id, err := pathID(r, "id")
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	var req schemas.ITAssetRequest
	if err := h.decode(r, &req); err != nil {
		h.HandleErrors(w, err)
		return
	}

	asset, err := h.Controller.UpdateITAsset(ctx, id, &req)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, asset, http.StatusOK)
}
