package utils

import (
	"strconv"
	"strings"
	"time"
)

// dayFirstLayouts are tried in order; ambiguous values resolve day-first.
var dayFirstLayouts = []string{
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"2-1-2006",
	"02.01.2006",
	"02/01/06",
	"2/1/06",
	"02-01-06",
	"2-1-06",
	"02 Jan 2006",
	"2 Jan 2006",
	"02-Jan-2006",
	"02-Jan-06",
	"Jan 2, 2006",
	ShortDashDateLayout,
	ShortSlashDateLayout,
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// Spreadsheet serial dates count days from 1899-12-30.
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// Bare numbers are only read as serial dates inside this window. Firmware
// builds, counts and other numeric cells fall outside it and stay unparsed.
var (
	minSerialDate = time.Date(1990, time.January, 1, 0, 0, 0, 0, time.UTC)
	maxSerialDate = time.Date(2100, time.December, 31, 0, 0, 0, 0, time.UTC)
)

// ParseDayFirst parses a spreadsheet date cell. It accepts textual dates written
// day-first and Excel serial numbers between 1990 and 2100. The boolean is
// false when nothing matched.
func ParseDayFirst(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}

	for _, layout := range dayFirstLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return DateOnly(t), true
		}
	}

	if serial, err := strconv.ParseFloat(value, 64); err == nil {
		if serial < 0 || serial > float64(maxSerialDate.Sub(excelEpoch)/(24*time.Hour)) {
			return time.Time{}, false
		}
		t := excelEpoch.AddDate(0, 0, int(serial))
		if t.Before(minSerialDate) {
			return time.Time{}, false
		}
		return t, true
	}

	return time.Time{}, false
}

// DateOnly truncates t to midnight UTC of its calendar day.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
