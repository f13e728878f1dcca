package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"assetserver/src/api/controllers"
	"assetserver/src/config"
	"assetserver/src/database"
	"assetserver/src/ingest"
	"assetserver/src/repositories"
	"assetserver/src/services"
	"assetserver/src/utils"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	Controller     controllers.IController
	Logger         *logrus.Logger
	RequestTimeout time.Duration
	ImportTimeout  time.Duration
	MaxUploadBytes int64
}

// NewHandler opens the database handles and wires repositories, services and
// the controller behind the API handlers.
func NewHandler(cfg *config.Config, logger *logrus.Logger) (*Handler, error) {
	pool, err := database.SetupDB(cfg)
	if err != nil {
		return nil, err
	}
	gormDB, err := database.SetupGormDB(cfg)
	if err != nil {
		pool.Close()
		return nil, err
	}

	outletRepo := repositories.NewOutletRepository(pool)
	itRepo := repositories.NewITAssetRepository(pool)
	retailRepo := repositories.NewRetailAssetRepository(pool)
	serviceRepo := repositories.NewServiceRecordRepository(gormDB)

	assetService := services.NewAssetService(outletRepo, itRepo, retailRepo, cfg.Assets.AllocationRetries)
	importService := services.NewImportService(
		repositories.NewIngestStore(outletRepo, itRepo, retailRepo),
		ingest.DefaultRegistry(),
		cfg.Imports.Timeout,
	)
	maintenanceService := services.NewMaintenanceService(retailRepo, serviceRepo)

	controller := controllers.NewController(assetService, importService, maintenanceService)
	return NewHandlerWithController(controller, logger, cfg), nil
}

func NewHandlerWithController(controller controllers.IController, logger *logrus.Logger, cfg *config.Config) *Handler {
	h := &Handler{
		Controller:     controller,
		Logger:         logger,
		RequestTimeout: time.Duration(utils.DefaultRequestTimeoutSeconds) * time.Second,
		ImportTimeout:  time.Duration(utils.ImportRequestTimeoutSeconds) * time.Second,
		MaxUploadBytes: 10 << 20,
	}
	if cfg != nil {
		if cfg.Service.RequestTimeout > 0 {
			h.RequestTimeout = cfg.Service.RequestTimeout
		}
		if cfg.Imports.Timeout > 0 {
			h.ImportTimeout = cfg.Imports.Timeout
		}
		if cfg.Imports.MaxUploadBytes > 0 {
			h.MaxUploadBytes = cfg.Imports.MaxUploadBytes
		}
	}
	return h
}

// requestContext bounds a request by timeout and carries a logger tagged with
// the request id.
func (h *Handler) requestContext(r *http.Request, timeout time.Duration) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(r.Context(), timeout)
	entry := h.Logger.WithFields(logrus.Fields{
		"request_id": middleware.GetReqID(r.Context()),
		"path":       r.URL.Path,
	})
	return utils.WithLogger(ctx, entry), cancel
}

func (h *Handler) respond(w http.ResponseWriter, _ *http.Request, data interface{}, status int) {
	res, err := json.Marshal(data)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = w.Write(res)
}

func (h *Handler) HandleErrors(w http.ResponseWriter, err error) {
	var httpErr *utils.HTTPError
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		utils.WriteError(w, utils.NewHTTPError(http.StatusGatewayTimeout, "Request timed out"))
	case errors.As(err, &httpErr):
		utils.WriteError(w, httpErr)
	default:
		h.Logger.WithError(err).Error("unhandled request error")
		utils.WriteError(w, utils.InternalServerError("Internal Server Error"))
	}
}

func (h *Handler) decode(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return utils.BadRequest("invalid request body")
	}
	return nil
}

func pathID(r *http.Request, name string) (int, error) {
	id, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil || id <= 0 {
		return 0, utils.BadRequest("invalid " + name)
	}
	return id, nil
}

// optionalBool parses a query flag. Absent or unparsable values mean no filter.
func optionalBool(value string) *bool {
	if value == "" {
		return nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return nil
	}
	return &b
}
