package models

import "time"

type RetailAsset struct {
	ID           int        `db:"id" json:"id"`
	AssetID      *string    `db:"asset_id" json:"asset_id"`
	User         string     `db:"assigned_user" json:"user"`
	OutletID     int        `db:"outlet_id" json:"outlet_id"`
	OutletName   string     `db:"-" json:"outlet,omitempty"`
	Item         string     `db:"item" json:"item"`
	Brand        string     `db:"brand" json:"brand"`
	Model        string     `db:"model" json:"model"`
	PowerInput   string     `db:"power_input" json:"power_input"`
	SN           string     `db:"sn" json:"sn"`
	DatePurchase *time.Time `db:"date_purchase" json:"date_purchase"`
	Allocation   string     `db:"allocation" json:"allocation"`
	Status       string     `db:"status" json:"status"`
	Remark       string     `db:"remark" json:"remark"`
	Active       bool       `db:"active" json:"active"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}
