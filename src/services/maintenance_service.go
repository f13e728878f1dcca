package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"assetserver/src/models"
	"assetserver/src/repositories"
	"assetserver/src/utils"
)

type MaintenanceServiceI interface {
	AddServiceRecord(ctx context.Context, record *models.ServiceRecord) error
	ListServiceRecords(ctx context.Context, assetID int) ([]models.ServiceRecord, error)
}

// MaintenanceService keeps the service history of retail assets.
type MaintenanceService struct {
	retailRepo  repositories.RetailAssetRepository
	serviceRepo repositories.ServiceRecordRepository
}

func NewMaintenanceService(retailRepo repositories.RetailAssetRepository, serviceRepo repositories.ServiceRecordRepository) *MaintenanceService {
	return &MaintenanceService{retailRepo: retailRepo, serviceRepo: serviceRepo}
}

func (s *MaintenanceService) AddServiceRecord(ctx context.Context, record *models.ServiceRecord) error {
	if _, err := s.retailRepo.GetByID(ctx, record.AssetID); err != nil {
		return err
	}
	record.Description = strings.TrimSpace(record.Description)
	if record.Description == "" {
		return fmt.Errorf("%w: description is required", ErrInvalidAsset)
	}
	if record.ServiceDate.IsZero() {
		record.ServiceDate = utils.DateOnly(time.Now())
	}
	return s.serviceRepo.Create(ctx, record)
}

func (s *MaintenanceService) ListServiceRecords(ctx context.Context, assetID int) ([]models.ServiceRecord, error) {
	if _, err := s.retailRepo.GetByID(ctx, assetID); err != nil {
		return nil, err
	}
	return s.serviceRepo.ListByAsset(ctx, assetID)
}
