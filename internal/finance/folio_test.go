package finance

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"kegama-backend/internal/models"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"1500", 1500},
		{"1,500.50", 1500.50},
		{" 200 ", 200},
		{"", 0},
		{"abc", 0},
		{"12,345,678.90", 12345678.90},
		{"-50", -50},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseAmount(tt.in), "input %q", tt.in)
	}
}

func TestParseNights(t *testing.T) {
	assert.Equal(t, 3, ParseNights("3"))
	assert.Equal(t, 1, ParseNights("0"))
	assert.Equal(t, 1, ParseNights("-2"))
	assert.Equal(t, 1, ParseNights(""))
	assert.Equal(t, 1, ParseNights("two"))
}

func TestCleanRequests(t *testing.T) {
	items := []models.RequestItem{
		{Item: "Extra towel", Price: "50"},
		{Item: "   ", Price: "999"},
		{Item: "", Price: "100"},
		{Item: "Breakfast", Price: ""},
	}
	cleaned := CleanRequests(items)
	assert.Len(t, cleaned, 2)
	assert.Equal(t, "Extra towel", cleaned[0].Item)
	assert.Equal(t, "Breakfast", cleaned[1].Item)
}

func TestTotal(t *testing.T) {
	requests := []models.RequestItem{
		{Item: "Extra bed", Price: "500"},
		{Item: "", Price: "9,000"}, // blank item, dropped
		{Item: "Late checkout", Price: "bad"},
		{Item: "Breakfast", Price: "1,250.50"},
	}

	// 1500 * 2 nights + 500 + 0 + 1250.50
	assert.InDelta(t, 4750.50, Total(1500, 2, requests), 0.001)

	// non-positive nights counts as one
	assert.InDelta(t, 1500.0, Total(1500, 0, nil), 0.001)
	assert.InDelta(t, 1500.0, Total(1500, -3, nil), 0.001)
}
