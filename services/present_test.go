package services

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		minutes  int
		expected string
	}{
		{150, "2h 30m"},
		{0, "0h 0m"},
		{60, "1h 0m"},
		{-10, "-1h 50m"},
		{-60, "-1h 0m"},
		{1505, "25h 5m"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatDuration(tt.minutes))
		})
	}
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "₹12,345", FormatPrice(12345))
	assert.Equal(t, "₹999", FormatPrice(999))
	assert.Equal(t, "₹4,000", FormatPrice(4000))
}

func TestPresentEmpty(t *testing.T) {
	res := Present(nil, DisplayCap, RandomForest)

	assert.True(t, res.Empty)
	assert.Empty(t, res.Cards)
	assert.Equal(t, noResultsNotice, res.Notice)

	var buf bytes.Buffer
	require.NoError(t, RenderText(&buf, res))
	assert.Equal(t, noResultsNotice+"\n", buf.String())
}

func TestPresentFilteredBelowCap(t *testing.T) {
	// 13 generated, only 3 inside the price window
	prices := []int{2100, 2200, 5000, 2300, 6000, 2400, 2500, 7000, 2600, 2700, 2800, 2900, 3000}
	ranked := FilterAndRank(candidates(prices...), PriceRange{4000, 12000})

	res := Present(ranked, DisplayCap, XGBoost)

	assert.False(t, res.Empty)
	assert.Len(t, res.Cards, 3)
	assert.Zero(t, res.Omitted)
	assert.Empty(t, res.Notice)
	assert.Equal(t, "Showing 3 of 3 flights using XGBoost", res.Summary)
}

func TestPresentOverCap(t *testing.T) {
	prices := make([]int, 13)
	for i := range prices {
		prices[i] = 5000 + i*100
	}
	ranked := FilterAndRank(candidates(prices...), PriceRange{4000, 12000})

	res := Present(ranked, DisplayCap, NeuralNet)

	assert.Len(t, res.Cards, 10)
	assert.Equal(t, 13, res.Total)
	assert.Equal(t, 3, res.Omitted)
	assert.Contains(t, res.Notice, "3 more not shown")
	assert.Equal(t, "₹5,000", res.Cards[0].PriceText)
	assert.Equal(t, 5900, res.Cards[9].Price)

	var buf bytes.Buffer
	require.NoError(t, RenderText(&buf, res))
	out := buf.String()
	assert.Contains(t, out, "Showing 10 of 13 flights using Neural Network")
	assert.Contains(t, out, "10. ")
	assert.Contains(t, out, "3 more not shown")
}

func TestNewFlightCard(t *testing.T) {
	card := NewFlightCard(FlightCandidate{
		Airline:         "IndiGo",
		Departure:       Clock{8, 5},
		Arrival:         Clock{0, 0},
		DurationMinutes: -10,
		Stops:           1,
		Price:           10450,
	})

	assert.Equal(t, FlightCard{
		Airline:   "IndiGo",
		Price:     10450,
		PriceText: "₹10,450",
		Departure: "08:05",
		Arrival:   "00:00",
		Duration:  "-1h 50m",
		Stops:     1,
	}, card)
}

func TestStopsLabel(t *testing.T) {
	assert.Equal(t, "Non-stop", StopsLabel(0))
	assert.Equal(t, "1 stop", StopsLabel(1))
	assert.Equal(t, "3 stops", StopsLabel(3))
}
