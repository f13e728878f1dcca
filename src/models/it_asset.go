package models

import "time"

type ITAsset struct {
	ID           int        `db:"id" json:"id"`
	AssetID      *string    `db:"asset_id" json:"asset_id"`
	User         string     `db:"assigned_user" json:"user"`
	Item         string     `db:"item" json:"item"`
	Brand        string     `db:"brand" json:"brand"`
	Model        string     `db:"model" json:"model"`
	SerialNumber string     `db:"serial_number" json:"serial_number"`
	DatePurchase *time.Time `db:"date_purchase" json:"date_purchase"`
	OutletID     int        `db:"outlet_id" json:"outlet_id"`
	OutletName   string     `db:"-" json:"outlet,omitempty"`
	AssetType    string     `db:"asset_type" json:"asset_type"`
	Allocation   string     `db:"allocation" json:"allocation"`
	Status       string     `db:"status" json:"status"`
	Active       bool       `db:"active" json:"active"`
	Remark       string     `db:"remark" json:"remark"`

	// computer
	CPU              string `db:"cpu" json:"cpu"`
	GPU              string `db:"gpu" json:"gpu"`
	Memory           string `db:"memory" json:"memory"`
	Disk             string `db:"disk" json:"disk"`
	DiskID           string `db:"disk_id" json:"disk_id"`
	MotherboardModel string `db:"motherboard_model" json:"motherboard_model"`
	OperatingSystem  string `db:"operating_system" json:"operating_system"`
	Hostname         string `db:"hostname" json:"hostname"`

	// network
	Network     string `db:"network" json:"network"`
	IPAddress   string `db:"ip_address" json:"ip_address"`
	MACAddress  string `db:"mac_address" json:"mac_address"`
	LocalIP     string `db:"local_ip" json:"local_ip"`
	NICSpeed    string `db:"nic_speed" json:"nic_speed"`
	GPONSN      string `db:"gpon_sn" json:"gpon_sn"`
	WifiType    string `db:"wifi_type" json:"wifi_type"`
	PowerRating string `db:"power_rating" json:"power_rating"`

	// cctv
	PowerAdapter    string `db:"power_adapter" json:"power_adapter"`
	Port            string `db:"port" json:"port"`
	Version         string `db:"version" json:"version"`
	DeviceType      string `db:"device_type" json:"device_type"`
	DeviceModel     string `db:"device_model" json:"device_model"`
	Build           string `db:"build" json:"build"`
	VideoInput      string `db:"video_input" json:"video_input"`
	TotalChannel    string `db:"total_channel" json:"total_channel"`
	HDDTotalSpace   string `db:"hdd_total_space" json:"hdd_total_space"`
	FirmwareVersion string `db:"firmware_version" json:"firmware_version"`
	Location        string `db:"location" json:"location"`
	Hybrid          bool   `db:"hybrid" json:"hybrid"`
	WIP             string `db:"wip" json:"wip"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
