package ingest

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/xuri/excelize/v2"

	"assetserver/src/utils"
)

var (
	ErrNoHeader          = errors.New("sheet has no header row")
	ErrUnsupportedFormat = errors.New("unsupported sheet format")
)

type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
)

// FormatFromFilename picks the reader for an uploaded or configured file.
func FormatFromFilename(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	case ".csv":
		return FormatCSV, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(name))
}

// Row maps a sheet column name to its trimmed cell text. Blank cells are "".
type Row map[string]string

// Sheet is the tabular content of one spreadsheet below its header row.
type Sheet struct {
	Columns []string
	Rows    []Row
	// lines holds the 1-based source line of each row.
	lines []int
}

// Line returns the spreadsheet line number of Rows[i].
func (s *Sheet) Line(i int) int {
	if i < 0 || i >= len(s.lines) {
		return 0
	}
	return s.lines[i]
}

// LoadSheet reads the first worksheet of an xlsx workbook, or a csv stream, and
// uses the row at headerOffset as the header.
func LoadSheet(r io.Reader, format Format, headerOffset int) (*Sheet, error) {
	var (
		records [][]string
		err     error
	)
	switch format {
	case FormatXLSX:
		records, err = readWorkbook(r)
	case FormatCSV:
		records, err = utils.ReadCSVRecords(r)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, err
	}
	return NewSheet(records, headerOffset)
}

func readWorkbook(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	// Raw values keep dates as serial numbers instead of locale formatted text.
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	return rows, nil
}

// NewSheet builds a Sheet from raw records. Rows shorter than the header are
// padded, cells past the header are dropped and blank rows are skipped.
func NewSheet(records [][]string, headerOffset int) (*Sheet, error) {
	if headerOffset < 0 || len(records) <= headerOffset || isBlank(records[headerOffset]) {
		return nil, ErrNoHeader
	}

	columns := headerNames(records[headerOffset])
	table := [][]string{columns}
	var lines []int
	for i, record := range records[headerOffset+1:] {
		if isBlank(record) {
			continue
		}
		row := make([]string, len(columns))
		for c := range row {
			if c < len(record) {
				row[c] = strings.TrimSpace(record[c])
			}
		}
		table = append(table, row)
		// header line is headerOffset+1, data starts right below it
		lines = append(lines, headerOffset+2+i)
	}

	sheet := &Sheet{Columns: columns, lines: lines}
	if len(lines) == 0 {
		return sheet, nil
	}

	// Every cell stays text. No value is treated as missing, so a literal
	// "NA" or "NaN" reaches the record as written.
	df := dataframe.LoadRecords(table,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(nil),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("failed to build sheet: %w", df.Err)
	}

	sheet.Rows = make([]Row, df.Nrow())
	for i := range sheet.Rows {
		sheet.Rows[i] = make(Row, len(columns))
	}
	for _, name := range df.Names() {
		for i, value := range df.Col(name).Records() {
			sheet.Rows[i][name] = value
		}
	}
	return sheet, nil
}

// headerNames cleans header cells. Empty headers become "Unnamed: N" and
// repeated names get a ".1", ".2" suffix so every column stays addressable.
func headerNames(header []string) []string {
	names := make([]string, len(header))
	seen := make(map[string]int, len(header))
	for i, h := range header {
		name := utils.StripBOM(h)
		if name == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}
		if n, ok := seen[name]; ok {
			seen[name] = n + 1
			name = fmt.Sprintf("%s.%d", name, n+1)
		} else {
			seen[name] = 0
		}
		names[i] = name
	}
	return names
}

func isBlank(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
