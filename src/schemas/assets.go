package schemas

import (
	"fmt"
	"strings"
	"time"

	"assetserver/src/models"
	"assetserver/src/utils"
)

type AssetIDResponse struct {
	AssetID string `json:"asset_id"`
}

// RetailAssetRequest is the body of a retail asset create or edit. Dates are accepted
// as YYYY-MM-DD or day-first text.
type RetailAssetRequest struct {
	models.RetailAsset
	AssetID      string `json:"asset_id"`
	Outlet       string `json:"outlet"`
	DatePurchase string `json:"date_purchase"`
}

func (r *RetailAssetRequest) ToModel() (*models.RetailAsset, error) {
	asset := r.RetailAsset
	asset.ID = 0
	asset.OutletName = strings.TrimSpace(r.Outlet)
	asset.AssetID = optional(r.AssetID)

	date, err := parseDate(r.DatePurchase)
	if err != nil {
		return nil, err
	}
	asset.DatePurchase = date
	return &asset, nil
}

type ITAssetRequest struct {
	models.ITAsset
	AssetID      string `json:"asset_id"`
	Outlet       string `json:"outlet"`
	DatePurchase string `json:"date_purchase"`
}

func (r *ITAssetRequest) ToModel() (*models.ITAsset, error) {
	asset := r.ITAsset
	asset.ID = 0
	asset.OutletName = strings.TrimSpace(r.Outlet)
	asset.AssetID = optional(r.AssetID)

	date, err := parseDate(r.DatePurchase)
	if err != nil {
		return nil, err
	}
	asset.DatePurchase = date
	return &asset, nil
}

// StatsResponse is the dashboard summary of stored assets.
type StatsResponse struct {
	TotalAssets   int `json:"total_assets"`
	RetailAssets  int `json:"retail_assets"`
	ITAssets      int `json:"it_assets"`
	NetworkAssets int `json:"network_assets"`
}

// BulkActionRequest applies Action to every id in AssetIDs. AssetType picks the
// table: retail, it or network.
type BulkActionRequest struct {
	Action    string `json:"action"`
	AssetType string `json:"asset_type"`
	AssetIDs  []int  `json:"asset_ids"`
}

type BulkActionResponse struct {
	Updated int64 `json:"updated"`
}

type ServiceRecordRequest struct {
	ServiceDate string `json:"service_date"`
	Description string `json:"description"`
	Technician  string `json:"technician"`
}

func (r *ServiceRecordRequest) ToModel(assetID int) (*models.ServiceRecord, error) {
	record := &models.ServiceRecord{
		AssetID:     assetID,
		Description: r.Description,
		Technician:  strings.TrimSpace(r.Technician),
	}
	date, err := parseDate(r.ServiceDate)
	if err != nil {
		return nil, err
	}
	if date != nil {
		record.ServiceDate = *date
	}
	return record, nil
}

func optional(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}

func parseDate(value string) (*time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	t, ok := utils.ParseDayFirst(value)
	if !ok {
		return nil, fmt.Errorf("invalid date %q", value)
	}
	return &t, nil
}
