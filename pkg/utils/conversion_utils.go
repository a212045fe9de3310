package utils

import (
	"strconv"
	"strings"
)

// ParseStockCount parses a stock form field as a base-10 integer.
func ParseStockCount(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}

// ParsePrice parses a price form field as a float. An empty field defaults
// to 0.0, matching the optional price on the add-product form.
func ParsePrice(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0.0, nil
	}
	return strconv.ParseFloat(s, 64)
}

// NormalizeMedName lowercases and trims a medicine name. Names are stored
// lowercase so lookups never miss a row over casing.
func NormalizeMedName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
