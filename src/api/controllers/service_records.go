package controllers

import (
	"context"

	"assetserver/src/models"
	"assetserver/src/schemas"
	"assetserver/src/utils"
)

func (c *Controller) GetServiceRecords(ctx context.Context, assetID int) ([]models.ServiceRecord, error) {
	records, err := c.MaintenanceService.ListServiceRecords(ctx, assetID)
	if err != nil {
		return nil, translateError(err)
	}
	if records == nil {
		records = []models.ServiceRecord{}
	}
	return records, nil
}

func (c *Controller) CreateServiceRecord(ctx context.Context, assetID int, req *schemas.ServiceRecordRequest) (*models.ServiceRecord, error) {
	record, err := req.ToModel(assetID)
	if err != nil {
		return nil, utils.BadRequest(err.Error())
	}
	if err := c.MaintenanceService.AddServiceRecord(ctx, record); err != nil {
		return nil, translateError(err)
	}
	return record, nil
}
