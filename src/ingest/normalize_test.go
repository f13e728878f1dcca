package ingest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"assetserver/src/models"
)

var cctvColumns = []string{
	"Outlet", "DVR", "Serial Number", "Device Model", "Build", "WIP", "P2P QR", "Hybrid", "Warranty Months",
}

func TestNormalizeCCTV(t *testing.T) {
	row := Row{
		"Outlet":          "Store A",
		"DVR":             "2",
		"Serial Number":   "DS-001",
		"Device Model":    "DS-7208HQHI",
		"Build":           "05-03-21",
		"WIP":             "Active",
		"P2P QR":          "QR123",
		"Hybrid":          "Yes",
		"Warranty Months": "24",
	}

	record, skip := Normalize(CCTVDialect, row, cctvColumns)
	require.Nil(t, skip)

	assert.Equal(t, models.KindIT, record.Kind)
	assert.Equal(t, models.AssetTypeCCTV, record.AssetType)
	assert.Equal(t, "Store A", record.Outlet)
	assert.Equal(t, "DS-001", record.Serial)
	assert.Equal(t, "CCTV DVR - 2", record.Value(FieldItem))
	assert.Equal(t, "DS-7208HQHI", record.Value(FieldModel))
	assert.Equal(t, "Active", record.Value(FieldStatus))
	assert.Equal(t, "QR123; Warranty Months=24", record.Remark)
	require.NotNil(t, record.DatePurchase)
	assert.Equal(t, time.Date(2021, time.March, 5, 0, 0, 0, 0, time.UTC), *record.DatePurchase)

	asset := record.ITAsset(7)
	assert.Equal(t, 7, asset.OutletID)
	assert.True(t, asset.Hybrid)
	assert.True(t, asset.Active)
	assert.Equal(t, "05-03-21", asset.Build)
	assert.Nil(t, asset.AssetID)
}

func TestNormalizeCCTVDefaults(t *testing.T) {
	row := Row{"Outlet": "Store A", "Serial Number": "DS-002", "Build": "not a date"}

	record, skip := Normalize(CCTVDialect, row, cctvColumns)
	require.Nil(t, skip)

	assert.Equal(t, "CCTV DVR", record.Value(FieldItem))
	assert.Equal(t, "Unknown", record.Value(FieldModel))
	assert.Equal(t, models.StatusUnknown, record.Value(FieldStatus))
	assert.Nil(t, record.DatePurchase)
	assert.Empty(t, record.Remark)
}

func TestNormalizePrefersDatePurchase(t *testing.T) {
	columns := append([]string{"Date Purchase"}, cctvColumns...)
	row := Row{"Outlet": "Store A", "Serial Number": "DS-003", "Date Purchase": "01/02/2020", "Build": "05-03-21"}

	record, skip := Normalize(CCTVDialect, row, columns)
	require.Nil(t, skip)
	require.NotNil(t, record.DatePurchase)
	assert.Equal(t, time.Date(2020, time.February, 1, 0, 0, 0, 0, time.UTC), *record.DatePurchase)

	row["Date Purchase"] = "soon"
	record, skip = Normalize(CCTVDialect, row, columns)
	require.Nil(t, skip)
	require.NotNil(t, record.DatePurchase)
	assert.Equal(t, time.Date(2021, time.March, 5, 0, 0, 0, 0, time.UTC), *record.DatePurchase)
}

func TestNormalizeIgnoresNumericBuild(t *testing.T) {
	for _, build := range []string{"190312", "3", "12.5"} {
		row := Row{"Outlet": "Store A", "Serial Number": "DS-005", "Build": build}

		record, skip := Normalize(CCTVDialect, row, cctvColumns)
		require.Nil(t, skip)
		assert.Nil(t, record.DatePurchase, "build %q", build)
		assert.Equal(t, build, record.Value(FieldBuild))
	}
}

func TestNormalizeSkipsMissingRequired(t *testing.T) {
	record, skip := Normalize(CCTVDialect, Row{"Serial Number": "DS-004"}, cctvColumns)
	assert.Nil(t, record)
	require.NotNil(t, skip)
	assert.Equal(t, FieldOutlet, skip.Field)
	assert.Equal(t, "missing outlet", skip.Reason)
	assert.Equal(t, "DS-004", skip.Key)

	_, skip = Normalize(RetailDialect, Row{"Outlet": "Store A", "SN": "  "}, []string{"Outlet", "SN"})
	require.NotNil(t, skip)
	assert.Equal(t, "missing serial_number", skip.Reason)
}

func TestNormalizeNetworkWithoutSerial(t *testing.T) {
	columns := []string{"Outlet", "IP Address", "WiFi_Type", "Date Purchase"}
	row := Row{"Outlet": "Store B", "IP Address": "10.0.0.1", "WiFi_Type": "AX", "Date Purchase": "2022-07-14"}

	record, skip := Normalize(NetworkDialect, row, columns)
	require.Nil(t, skip)

	assert.Empty(t, record.Serial)
	assert.Equal(t, "Network Device", record.Value(FieldItem))
	assert.Equal(t, "Unknown", record.Value(FieldBrand))
	assert.Equal(t, models.StatusDraft, record.Value(FieldStatus))
	asset := record.ITAsset(1)
	assert.Equal(t, "AX", asset.WifiType)
	assert.Equal(t, "10.0.0.1", asset.IPAddress)
	require.NotNil(t, asset.DatePurchase)
	assert.Equal(t, 2022, asset.DatePurchase.Year())
}

func TestNormalizeRetailRemark(t *testing.T) {
	columns := []string{"Outlet", "Item", "SN", "Power Input", "Remark", "Warranty Months", "Colour", "Asset ID"}
	row := Row{
		"Outlet":          "Store C",
		"Item":            "Chiller #2",
		"SN":              "CH-9",
		"Power Input":     "240V",
		"Remark":          "door seal replaced",
		"Warranty Months": "24",
		"Asset ID":        "CHILLER04",
	}

	record, skip := Normalize(RetailDialect, row, columns)
	require.Nil(t, skip)

	assert.Equal(t, "door seal replaced; Warranty Months=24", record.Remark)
	asset := record.RetailAsset(3)
	assert.Equal(t, "CH-9", asset.SN)
	assert.Equal(t, "240V", asset.PowerInput)
	assert.Equal(t, "Unknown", asset.Model)
	require.NotNil(t, asset.AssetID)
	assert.Equal(t, "CHILLER04", *asset.AssetID)
	assert.False(t, asset.Active)
}

func TestNormalizeCPUMapping(t *testing.T) {
	columns := []string{"Outlet", "TYPE", "Assigned", "HOSTNAME", "SerialNumber", "Operating System"}
	row := Row{"Outlet": "HQ", "Assigned": "Aina", "HOSTNAME": "pos-01", "SerialNumber": "PC-1", "Operating System": "Windows 11"}

	record, skip := Normalize(CPUDialect, row, columns)
	require.Nil(t, skip)

	asset := record.ITAsset(1)
	assert.Equal(t, "CPU", asset.Item)
	assert.Equal(t, "Aina", asset.User)
	assert.Equal(t, "pos-01", asset.Hostname)
	assert.Equal(t, "PC-1", asset.SerialNumber)
	assert.Equal(t, "Windows 11", asset.OperatingSystem)
	assert.Equal(t, models.AssetTypeCPU, asset.AssetType)
}

func TestNormalizerForwardFill(t *testing.T) {
	n := NewNormalizer(CCTVDialect, cctvColumns)

	first, skip := n.Next(Row{"Outlet": "Store A", "Serial Number": "DS-010"})
	require.Nil(t, skip)
	assert.Equal(t, "Store A", first.Outlet)

	blank := Row{"Outlet": "", "Serial Number": "DS-011"}
	second, skip := n.Next(blank)
	require.Nil(t, skip)
	assert.Equal(t, "Store A", second.Outlet)
	assert.Equal(t, "", blank["Outlet"])

	third, skip := n.Next(Row{"Outlet": "Store B", "Serial Number": "DS-012"})
	require.Nil(t, skip)
	assert.Equal(t, "Store B", third.Outlet)
}

func TestNormalizerWithoutForwardFill(t *testing.T) {
	columns := []string{"Outlet", "SN"}
	n := NewNormalizer(RetailDialect, columns)

	_, skip := n.Next(Row{"Outlet": "Store A", "SN": "R-1"})
	require.Nil(t, skip)

	_, skip = n.Next(Row{"Outlet": "", "SN": "R-2"})
	require.NotNil(t, skip)
	assert.Equal(t, "missing outlet", skip.Reason)
}
