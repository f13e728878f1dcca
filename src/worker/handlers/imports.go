package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) LoadAllImportSchedules(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := h.Controller.LoadAllImportSchedules(ctx); err != nil {
		h.HandleErrors(w, err)
		return
	}

	scheduled := []map[string]interface{}{}
	for name, task := range h.Controller.GetSchedulers() {
		scheduled = append(scheduled, map[string]interface{}{"name": name, "next_run": task.Next()})
	}
	h.respond(w, r, scheduled, http.StatusOK)
}

// RunImportByName runs a configured import now and returns its report.
func (h *Handler) RunImportByName(w http.ResponseWriter, r *http.Request) {
	report, err := h.Controller.RunImportByName(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, report, http.StatusOK)
}
