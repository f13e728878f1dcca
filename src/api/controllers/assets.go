package controllers

import (
	"context"
	"errors"

	"assetserver/src/models"
	"assetserver/src/repositories"
	"assetserver/src/schemas"
	"assetserver/src/services"
	"assetserver/src/utils"
)

func (c *Controller) NextRetailAssetID(ctx context.Context, item string) (*schemas.AssetIDResponse, error) {
	id, err := c.AssetService.NextRetailAssetID(ctx, item)
	if errors.Is(err, services.ErrMissingCategory) {
		return nil, utils.BadRequest("Item name required")
	}
	if err != nil {
		return nil, translateError(err)
	}
	return &schemas.AssetIDResponse{AssetID: id}, nil
}

func (c *Controller) NextITAssetID(ctx context.Context, assetType string) (*schemas.AssetIDResponse, error) {
	id, err := c.AssetService.NextITAssetID(ctx, assetType)
	if errors.Is(err, services.ErrMissingCategory) {
		return nil, utils.BadRequest("Asset type required")
	}
	if err != nil {
		return nil, translateError(err)
	}
	return &schemas.AssetIDResponse{AssetID: id}, nil
}

func (c *Controller) GetOutlets(ctx context.Context) ([]models.Outlet, error) {
	outlets, err := c.AssetService.ListOutlets(ctx)
	if err != nil {
		return nil, translateError(err)
	}
	if outlets == nil {
		outlets = []models.Outlet{}
	}
	return outlets, nil
}

func (c *Controller) GetRetailAssets(ctx context.Context, filter repositories.RetailAssetFilter) ([]models.RetailAsset, error) {
	assets, err := c.AssetService.ListRetailAssets(ctx, filter)
	if err != nil {
		return nil, translateError(err)
	}
	if assets == nil {
		assets = []models.RetailAsset{}
	}
	return assets, nil
}

func (c *Controller) GetRetailAssetByID(ctx context.Context, id int) (*models.RetailAsset, error) {
	asset, err := c.AssetService.GetRetailAsset(ctx, id)
	if err != nil {
		return nil, translateError(err)
	}
	return asset, nil
}

func (c *Controller) CreateRetailAsset(ctx context.Context, req *schemas.RetailAssetRequest) (*models.RetailAsset, error) {
	asset, err := req.ToModel()
	if err != nil {
		return nil, utils.BadRequest(err.Error())
	}
	if err := c.AssetService.CreateRetailAsset(ctx, asset); err != nil {
		return nil, translateError(err)
	}
	return asset, nil
}

func (c *Controller) UpdateRetailAsset(ctx context.Context, id int, req *schemas.RetailAssetRequest) (*models.RetailAsset, error) {
	asset, err := req.ToModel()
	if err != nil {
		return nil, utils.BadRequest(err.Error())
	}
	asset.ID = id
	if err := c.AssetService.UpdateRetailAsset(ctx, asset); err != nil {
		return nil, translateError(err)
	}
	return asset, nil
}

func (c *Controller) GetITAssets(ctx context.Context, filter repositories.ITAssetFilter) ([]models.ITAsset, error) {
	assets, err := c.AssetService.ListITAssets(ctx, filter)
	if err != nil {
		return nil, translateError(err)
	}
	if assets == nil {
		assets = []models.ITAsset{}
	}
	return assets, nil
}

func (c *Controller) GetITAssetByID(ctx context.Context, id int) (*models.ITAsset, error) {
	asset, err := c.AssetService.GetITAsset(ctx, id)
	if err != nil {
		return nil, translateError(err)
	}
	return asset, nil
}

func (c *Controller) CreateITAsset(ctx context.Context, req *schemas.ITAssetRequest) (*models.ITAsset, error) {
	asset, err := req.ToModel()
	if err != nil {
		return nil, utils.BadRequest(err.Error())
	}
	if err := c.AssetService.CreateITAsset(ctx, asset); err != nil {
		return nil, translateError(err)
	}
	return asset, nil
}

func (c *Controller) UpdateITAsset(ctx context.Context, id int, req *schemas.ITAssetRequest) (*models.ITAsset, error) {
	asset, err := req.ToModel()
	if err != nil {
		return nil, utils.BadRequest(err.Error())
	}
	asset.ID = id
	if err := c.AssetService.UpdateITAsset(ctx, asset); err != nil {
		return nil, translateError(err)
	}
	return asset, nil
}

func (c *Controller) GetStats(ctx context.Context) (*schemas.StatsResponse, error) {
	stats, err := c.AssetService.Stats(ctx)
	if err != nil {
		return nil, translateError(err)
	}
	return &schemas.StatsResponse{
		TotalAssets:   stats.Total(),
		RetailAssets:  stats.Retail,
		ITAssets:      stats.IT,
		NetworkAssets: stats.Network,
	}, nil
}

func (c *Controller) ActivateAsset(ctx context.Context, kind string, id int) error {
	return translateError(c.AssetService.MoveToActive(ctx, models.AssetKind(kind), id))
}

func (c *Controller) BulkAction(ctx context.Context, req *schemas.BulkActionRequest) (*schemas.BulkActionResponse, error) {
	updated, err := c.AssetService.BulkAction(ctx, models.AssetKind(req.AssetType), models.BulkAction(req.Action), req.AssetIDs)
	if err != nil {
		return nil, translateError(err)
	}
	return &schemas.BulkActionResponse{Updated: updated}, nil
}
