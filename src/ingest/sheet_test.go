package ingest

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestNewSheet(t *testing.T) {
	records := [][]string{
		{"CCTV ASSET DETAIL"},
		{" Outlet ", "Serial Number", "", "Serial Number"},
		{"Store A", "SN-1", "x"},
		{"", "", "", ""},
		{"Store B", "SN-2", "", "dup", "overflow"},
	}

	sheet, err := NewSheet(records, 1)
	require.NoError(t, err)

	assert.Equal(t, []string{"Outlet", "Serial Number", "Unnamed: 2", "Serial Number.1"}, sheet.Columns)
	require.Len(t, sheet.Rows, 2)
	assert.Equal(t, Row{"Outlet": "Store A", "Serial Number": "SN-1", "Unnamed: 2": "x", "Serial Number.1": ""}, sheet.Rows[0])
	assert.Equal(t, "dup", sheet.Rows[1]["Serial Number.1"])
	assert.Equal(t, 3, sheet.Line(0))
	assert.Equal(t, 5, sheet.Line(1))
}

func TestNewSheetKeepsNaNText(t *testing.T) {
	records := [][]string{
		{"Outlet", "Serial Number", "Remark", "Note"},
		{"Store A", "NaN", "NA", "<nil>"},
	}

	sheet, err := NewSheet(records, 0)
	require.NoError(t, err)
	require.Len(t, sheet.Rows, 1)
	assert.Equal(t, Row{"Outlet": "Store A", "Serial Number": "NaN", "Remark": "NA", "Note": "<nil>"}, sheet.Rows[0])

	record, skip := Normalize(CCTVDialect, sheet.Rows[0], sheet.Columns)
	require.Nil(t, skip)
	assert.Equal(t, "NaN", record.Serial)
	assert.Equal(t, "Remark=NA; Note=<nil>", record.Remark)
}

func TestNewSheetWithoutHeader(t *testing.T) {
	_, err := NewSheet([][]string{{"title"}}, 2)
	assert.ErrorIs(t, err, ErrNoHeader)

	_, err = NewSheet([][]string{{"", ""}}, 0)
	assert.ErrorIs(t, err, ErrNoHeader)
}

func TestNewSheetWithoutRows(t *testing.T) {
	sheet, err := NewSheet([][]string{{"Outlet", "SN"}}, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"Outlet", "SN"}, sheet.Columns)
	assert.Empty(t, sheet.Rows)
}

func TestLoadSheetCSVStripsBOM(t *testing.T) {
	data := "\ufeffOutlet,Serial Number,Device Model\nStore A,SN-1,DS-7208\n"

	sheet, err := LoadSheet(strings.NewReader(data), FormatCSV, 0)
	require.NoError(t, err)

	assert.Equal(t, "Outlet", sheet.Columns[0])
	require.Len(t, sheet.Rows, 1)
	assert.Equal(t, "Store A", sheet.Rows[0]["Outlet"])
	assert.Equal(t, "DS-7208", sheet.Rows[0]["Device Model"])
}

func TestLoadSheetXLSX(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"Retail asset detail"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A3", &[]interface{}{"Outlet", "Item", "SN", "Date Purchase"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A4", &[]interface{}{"Store A", "Chiller", "C-1", 44260}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	sheet, err := LoadSheet(bytes.NewReader(buf.Bytes()), FormatXLSX, RetailDialect.HeaderOffset)
	require.NoError(t, err)

	assert.Equal(t, []string{"Outlet", "Item", "SN", "Date Purchase"}, sheet.Columns)
	require.Len(t, sheet.Rows, 1)
	assert.Equal(t, "C-1", sheet.Rows[0]["SN"])
	assert.Equal(t, "44260", sheet.Rows[0]["Date Purchase"])
	assert.Equal(t, 4, sheet.Line(0))
}

func TestLoadSheetUnreadable(t *testing.T) {
	_, err := LoadSheet(strings.NewReader("not a workbook"), FormatXLSX, 0)
	assert.Error(t, err)

	_, err = LoadSheet(strings.NewReader(""), Format("ods"), 0)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestFormatFromFilename(t *testing.T) {
	f, err := FormatFromFilename("cctvassetdetail.XLSX")
	require.NoError(t, err)
	assert.Equal(t, FormatXLSX, f)

	f, err = FormatFromFilename("/tmp/macro.xlsm")
	require.NoError(t, err)
	assert.Equal(t, FormatXLSX, f)

	f, err = FormatFromFilename("cctv_fixed.csv")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, f)

	_, err = FormatFromFilename("notes.txt")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}
