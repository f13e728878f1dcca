package handlers

import (
	"net/http"

	"assetserver/src/schemas"
)

func (h *Handler) GetServiceRecords(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r, h.RequestTimeout)
	defer cancel()

	id, err := pathID(r, "id")
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	records, err := h.Controller.GetServiceRecords(ctx, id)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, records, http.StatusOK)
}

func (h *Handler) CreateServiceRecord(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r, h.RequestTimeout)
	defer cancel()

	id, err := pathID(r, "id")
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	var req schemas.ServiceRecordRequest
	if err := h.decode(r, &req); err != nil {
		h.HandleErrors(w, err)
		return
	}

	record, err := h.Controller.CreateServiceRecord(ctx, id, &req)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, record, http.StatusCreated)
}
