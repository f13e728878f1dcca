package repositories

import (
	"context"

	"assetserver/src/models"

	"gorm.io/gorm"
)

type ServiceRecordRepository interface {
	Create(ctx context.Context, record *models.ServiceRecord) error
	ListByAsset(ctx context.Context, assetID int) ([]models.ServiceRecord, error)
}

type serviceRecordRepo struct {
	db *gorm.DB
}

func NewServiceRecordRepository(db *gorm.DB) ServiceRecordRepository {
	return &serviceRecordRepo{db: db}
}

func (r *serviceRecordRepo) Create(ctx context.Context, record *models.ServiceRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// ListByAsset returns the service history of a retail asset, newest first.
func (r *serviceRecordRepo) ListByAsset(ctx context.Context, assetID int) ([]models.ServiceRecord, error) {
	records := []models.ServiceRecord{}
	err := r.db.WithContext(ctx).
		Where("asset_id = ?", assetID).
		Order("service_date DESC").
		Order("id DESC").
		Find(&records).Error
	return records, err
}
