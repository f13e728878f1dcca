package handlers

import (
	"errors"
	"net/http"

	"assetserver/src/utils"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

// ImportSheet ingests the multipart "file" upload with the {dialect} mapping
// and returns the run report.
func (h *Handler) ImportSheet(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r, h.ImportTimeout)
	defer cancel()

	r.Body = http.MaxBytesReader(w, r.Body, h.MaxUploadBytes)
	if err := r.ParseMultipartForm(h.MaxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.HandleErrors(w, utils.NewHTTPError(http.StatusRequestEntityTooLarge, "file too large"))
			return
		}
		h.HandleErrors(w, utils.BadRequest("expected a multipart form"))
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile("file")
	if err != nil {
		h.HandleErrors(w, utils.BadRequest("file is required"))
		return
	}
	defer file.Close()

	report, err := h.Controller.ImportSheet(ctx, chi.URLParam(r, "dialect"), header.Filename, file)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	utils.LoggerFromContext(ctx).WithFields(logrus.Fields{
		"run_id":  report.RunID,
		"created": report.Created,
		"updated": report.Updated,
		"skipped": report.Skipped,
	}).Info("import finished")
	h.respond(w, r, report, http.StatusOK)
}
