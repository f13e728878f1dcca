package utils

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

const byteOrderMark = "\ufeff"

// ReadCSVRecords reads every record of a CSV stream. Records may have a varying
// number of fields and a UTF-8 byte-order mark before the first header is dropped.
func ReadCSVRecords(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read the file: %w", err)
	}
	if len(rows) > 0 && len(rows[0]) > 0 {
		rows[0][0] = StripBOM(rows[0][0])
	}
	return rows, nil
}

// StripBOM removes every byte-order mark from a header and trims surrounding spaces.
func StripBOM(value string) string {
	return strings.TrimSpace(strings.ReplaceAll(value, byteOrderMark, ""))
}
