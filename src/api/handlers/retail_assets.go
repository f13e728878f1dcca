package handlers

import (
	"net/http"
	"strconv"

	"assetserver/src/repositories"
	"assetserver/src/schemas"
)

// GetRetailAssets lists retail assets filtered by ?search=, ?status=, ?outlet=
// (id or name) and ?active=.
func (h *Handler) GetRetailAssets(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r, h.RequestTimeout)
	defer cancel()

	query := r.URL.Query()
	filter := repositories.RetailAssetFilter{
		Search: query.Get("search"),
		Status: query.Get("status"),
		Active: optionalBool(query.Get("active")),
	}
	filter.OutletID, filter.Outlet = outletFilter(query.Get("outlet"))

	assets, err := h.Controller.GetRetailAssets(ctx, filter)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, assets, http.StatusOK)
}

func (h *Handler) GetRetailAssetByID(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r, h.RequestTimeout)
	defer cancel()

	id, err := pathID(r, "id")
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	asset, err := h.Controller.GetRetailAssetByID(ctx, id)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, asset, http.StatusOK)
}

func (h *Handler) CreateRetailAsset(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r, h.RequestTimeout)
	defer cancel()

	var req schemas.RetailAssetRequest
	if err := h.decode(r, &req); err != nil {
		h.HandleErrors(w, err)
		return
	}

	asset, err := h.Controller.CreateRetailAsset(ctx, &req)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, asset, http.StatusCreated)
}

// UpdateRetailAsset replaces the fields of retail asset {id} with the body.
func (h *Handler) UpdateRetailAsset(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r, h.RequestTimeout)
	defer cancel()

	id, err := pathID(r, "id")
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	var req schemas.RetailAssetRequest
	if err := h.decode(r, &req); err != nil {
		h.HandleErrors(w, err)
		return
	}

	asset, err := h.Controller.UpdateRetailAsset(ctx, id, &req)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, asset, http.StatusOK)
}

func outletFilter(value string) (int, string) {
	if value == "" {
		return 0, ""
	}
	if id, err := strconv.Atoi(value); err == nil {
		return id, ""
	}
	return 0, value
}
