package assetid

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	// RetailFallbackPrefix is used when an item name has no letters.
	RetailFallbackPrefix = "ASSET"
	// ITFallbackPrefix is used for empty or unknown asset types.
	ITFallbackPrefix = "IT"
)

var ErrEmptyPrefix = errors.New("asset id prefix is empty")

var itPrefixes = map[string]string{
	"cpu":     "CPU",
	"cctv":    "CCTV",
	"network": "NET",
	"printer": "PRINT",
	"other":   "OTHER",
}

// Allocate returns the next identifier for prefix given every asset id already
// assigned to the same asset kind. The numeric part is at least two digits wide
// and the result is never one of existing.
func Allocate(prefix string, existing []string) (string, error) {
	if prefix == "" {
		return "", ErrEmptyPrefix
	}

	taken := make(map[string]struct{}, len(existing))
	max := 0
	for _, id := range existing {
		if !strings.HasPrefix(id, prefix) {
			continue
		}
		taken[id] = struct{}{}
		if n, ok := Suffix(id); ok && n > max {
			max = n
		}
	}

	for n := max + 1; ; n++ {
		candidate := fmt.Sprintf("%s%02d", prefix, n)
		if _, ok := taken[candidate]; !ok {
			return candidate, nil
		}
	}
}

// Suffix parses the trailing run of decimal digits of id.
func Suffix(id string) (int, bool) {
	i := len(id)
	for i > 0 && id[i-1] >= '0' && id[i-1] <= '9' {
		i--
	}
	if i == len(id) {
		return 0, false
	}
	n, err := strconv.Atoi(id[i:])
	if err != nil {
		return 0, false
	}
	return n, true
}

// RetailPrefix derives a prefix from a free-text item name: ASCII letters only,
// upper-cased.
func RetailPrefix(item string) string {
	var b strings.Builder
	for _, r := range item {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return RetailFallbackPrefix
	}
	return strings.ToUpper(b.String())
}

// ITPrefix maps an IT asset type to its fixed prefix.
func ITPrefix(assetType string) string {
	if p, ok := itPrefixes[strings.ToLower(strings.TrimSpace(assetType))]; ok {
		return p
	}
	return ITFallbackPrefix
}
