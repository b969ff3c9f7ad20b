// Package finance computes folio totals from loosely-typed form input.
package finance

import (
	"strconv"
	"strings"

	"kegama-backend/internal/models"
)

// ParseAmount coerces a money string to a float. Commas are stripped,
// whitespace trimmed, and anything unparsable comes back as 0.
func ParseAmount(s string) float64 {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// ParseNights coerces the nights field. Unparsable or non-positive values
// fall back to a single night.
func ParseNights(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return 1
	}
	return n
}

// ParseInt coerces a count field with a floor of the given default.
func ParseInt(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return def
	}
	return n
}

// CleanRequests drops request lines with a blank item. The kept lines are
// what gets persisted and what gets summed.
func CleanRequests(items []models.RequestItem) []models.RequestItem {
	cleaned := make([]models.RequestItem, 0, len(items))
	for _, it := range items {
		if strings.TrimSpace(it.Item) == "" {
			continue
		}
		cleaned = append(cleaned, it)
	}
	return cleaned
}

// Total computes the folio: room rate times nights plus every kept
// additional-request line.
func Total(roomRate float64, nights int, requests []models.RequestItem) float64 {
	if nights <= 0 {
		nights = 1
	}
	total := roomRate * float64(nights)
	for _, it := range CleanRequests(requests) {
		total += ParseAmount(it.Price)
	}
	return total
}
