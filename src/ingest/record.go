package ingest

import (
	"strings"

	"assetserver/src/models"
)

// ITAsset builds the IT asset a record describes at the resolved outlet.
func (r *Record) ITAsset(outletID int) *models.ITAsset {
	v := r.Value
	status := v(FieldStatus)
	return &models.ITAsset{
		AssetID:      r.assetID(),
		User:         v(FieldUser),
		Item:         v(FieldItem),
		Brand:        v(FieldBrand),
		Model:        v(FieldModel),
		SerialNumber: r.Serial,
		DatePurchase: r.DatePurchase,
		OutletID:     outletID,
		OutletName:   r.Outlet,
		AssetType:    r.AssetType,
		Allocation:   v(FieldAllocation),
		Status:       status,
		Active:       strings.EqualFold(status, models.StatusActive),
		Remark:       r.Remark,

		CPU:              v(FieldCPU),
		GPU:              v(FieldGPU),
		Memory:           v(FieldMemory),
		Disk:             v(FieldDisk),
		DiskID:           v(FieldDiskID),
		MotherboardModel: v(FieldMotherboard),
		OperatingSystem:  v(FieldOperatingSystem),
		Hostname:         v(FieldHostname),

		Network:     v(FieldNetwork),
		IPAddress:   v(FieldIPAddress),
		MACAddress:  v(FieldMACAddress),
		LocalIP:     v(FieldLocalIP),
		NICSpeed:    v(FieldNICSpeed),
		GPONSN:      v(FieldGPONSN),
		WifiType:    v(FieldWifiType),
		PowerRating: v(FieldPowerRating),

		PowerAdapter:    v(FieldPowerAdapter),
		Port:            v(FieldPort),
		Version:         v(FieldVersion),
		DeviceType:      v(FieldDeviceType),
		DeviceModel:     v(FieldDeviceModel),
		Build:           v(FieldBuild),
		VideoInput:      v(FieldVideoInput),
		TotalChannel:    v(FieldTotalChannel),
		HDDTotalSpace:   v(FieldHDDTotalSpace),
		FirmwareVersion: v(FieldFirmwareVersion),
		Location:        v(FieldLocation),
		Hybrid:          parseFlag(v(FieldHybrid)),
		WIP:             v(FieldWIP),
	}
}

// RetailAsset builds the retail asset a record describes at the resolved outlet.
func (r *Record) RetailAsset(outletID int) *models.RetailAsset {
	status := r.Value(FieldStatus)
	return &models.RetailAsset{
		AssetID:      r.assetID(),
		User:         r.Value(FieldUser),
		OutletID:     outletID,
		OutletName:   r.Outlet,
		Item:         r.Value(FieldItem),
		Brand:        r.Value(FieldBrand),
		Model:        r.Value(FieldModel),
		PowerInput:   r.Value(FieldPowerInput),
		SN:           r.Serial,
		DatePurchase: r.DatePurchase,
		Allocation:   r.Value(FieldAllocation),
		Status:       status,
		Remark:       r.Remark,
		Active:       strings.EqualFold(status, models.StatusActive),
	}
}

func parseFlag(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "yes", "y", "true", "1", "hybrid":
		return true
	}
	return false
}

func (r *Record) assetID() *string {
	if id := r.Value(FieldAssetID); id != "" {
		return &id
	}
	return nil
}
