package services

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func candidates(prices ...int) []FlightCandidate {
	out := make([]FlightCandidate, len(prices))
	for i, p := range prices {
		out[i] = FlightCandidate{Airline: Airlines[i%len(Airlines)], Stops: i, Price: p}
	}
	return out
}

func TestFilterAndRank(t *testing.T) {
	tests := []struct {
		name     string
		prices   []int
		r        PriceRange
		expected []int
	}{
		{"inclusive bounds", []int{3999, 4000, 12000, 12001}, PriceRange{4000, 12000}, []int{4000, 12000}},
		{"sorted ascending", []int{9000, 5000, 7000}, PriceRange{4000, 12000}, []int{5000, 7000, 9000}},
		{"all excluded", []int{100, 25000}, PriceRange{4000, 12000}, []int{}},
		{"empty input", nil, PriceRange{4000, 12000}, []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterAndRank(candidates(tt.prices...), tt.r)

			prices := make([]int, 0, len(got))
			for _, f := range got {
				prices = append(prices, f.Price)
				assert.True(t, tt.r.Contains(f.Price))
			}
			assert.Equal(t, tt.expected, prices)
			assert.True(t, sort.SliceIsSorted(got, func(i, j int) bool { return got[i].Price < got[j].Price }))
		})
	}
}

func TestFilterAndRankStableTies(t *testing.T) {
	in := candidates(6000, 5000, 6000, 5000)

	got := FilterAndRank(in, PriceRange{2000, 20000})

	// ties keep generation order, tracked through Stops (= input index)
	stops := []int{got[0].Stops, got[1].Stops, got[2].Stops, got[3].Stops}
	assert.Equal(t, []int{1, 3, 0, 2}, stops)
}

func TestFilterAndRankDoesNotMutateInput(t *testing.T) {
	in := candidates(9000, 5000)
	_ = FilterAndRank(in, PriceRange{2000, 20000})
	assert.Equal(t, 9000, in[0].Price)
}
