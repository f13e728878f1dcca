package models

import "time"

// ServiceRecord is one maintenance visit on a retail asset.
type ServiceRecord struct {
	ID          int       `gorm:"column:id;primaryKey" json:"id"`
	AssetID     int       `gorm:"column:asset_id" json:"asset_id"`
	ServiceDate time.Time `gorm:"column:service_date;type:date" json:"service_date"`
	Description string    `gorm:"column:description" json:"description"`
	Technician  string    `gorm:"column:technician" json:"technician"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (ServiceRecord) TableName() string {
	return "service_records"
}
