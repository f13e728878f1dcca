package controllers

import (
	"context"
	"errors"
	"io"

	"assetserver/src/ingest"
	"assetserver/src/models"
	"assetserver/src/repositories"
	"assetserver/src/schemas"
	"assetserver/src/services"
	"assetserver/src/utils"
)

type IController interface {
	NextRetailAssetID(ctx context.Context, item string) (*schemas.AssetIDResponse, error)
	NextITAssetID(ctx context.Context, assetType string) (*schemas.AssetIDResponse, error)
	GetOutlets(ctx context.Context) ([]models.Outlet, error)

	GetRetailAssets(ctx context.Context, filter repositories.RetailAssetFilter) ([]models.RetailAsset, error)
	GetRetailAssetByID(ctx context.Context, id int) (*models.RetailAsset, error)
	CreateRetailAsset(ctx context.Context, req *schemas.RetailAssetRequest) (*models.RetailAsset, error)
	UpdateRetailAsset(ctx context.Context, id int, req *schemas.RetailAssetRequest) (*models.RetailAsset, error)

	GetITAssets(ctx context.Context, filter repositories.ITAssetFilter) ([]models.ITAsset, error)
	GetITAssetByID(ctx context.Context, id int) (*models.ITAsset, error)
	CreateITAsset(ctx context.Context, req *schemas.ITAssetRequest) (*models.ITAsset, error)
	UpdateITAsset(ctx context.Context, id int, req *schemas.ITAssetRequest) (*models.ITAsset, error)

	GetStats(ctx context.Context) (*schemas.StatsResponse, error)

	ActivateAsset(ctx context.Context, kind string, id int) error
	BulkAction(ctx context.Context, req *schemas.BulkActionRequest) (*schemas.BulkActionResponse, error)

	GetServiceRecords(ctx context.Context, assetID int) ([]models.ServiceRecord, error)
	CreateServiceRecord(ctx context.Context, assetID int, req *schemas.ServiceRecordRequest) (*models.ServiceRecord, error)

	ImportSheet(ctx context.Context, dialect string, filename string, r io.Reader) (*ingest.Report, error)
}

type Controller struct {
	AssetService       services.AssetServiceI
	ImportService      services.ImportServiceI
	MaintenanceService services.MaintenanceServiceI
}

func NewController(
	assetService services.AssetServiceI,
	importService services.ImportServiceI,
	maintenanceService services.MaintenanceServiceI,
) *Controller {
	return &Controller{
		AssetService:       assetService,
		ImportService:      importService,
		MaintenanceService: maintenanceService,
	}
}

// translateError maps service errors onto HTTP errors. Anything it does not
// recognise is returned untouched and ends up as a 500, or a 504 on deadline.
func translateError(err error) error {
	var httpErr *utils.HTTPError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &httpErr), errors.Is(err, context.DeadlineExceeded):
		return err
	case errors.Is(err, services.ErrNotFound):
		return utils.NotFound("Asset not found")
	case errors.Is(err, services.ErrAllocationConflict),
		errors.Is(err, services.ErrDuplicateAssetID),
		errors.Is(err, services.ErrDuplicateSerial):
		return utils.Conflict(err.Error())
	case errors.Is(err, services.ErrInvalidAsset),
		errors.Is(err, services.ErrMissingCategory),
		errors.Is(err, services.ErrUnknownKind),
		errors.Is(err, services.ErrUnknownAction),
		errors.Is(err, ingest.ErrUnknownDialect):
		return utils.BadRequest(err.Error())
	case errors.Is(err, services.ErrUnreadableSource):
		return utils.UnprocessableEntity(err.Error())
	}
	return err
}
