package services

import "sort"

// FilterAndRank keeps flights priced inside r (inclusive) and orders them by
// price, cheapest first. Equal prices keep generation order.
func FilterAndRank(flights []FlightCandidate, r PriceRange) []FlightCandidate {
	out := make([]FlightCandidate, 0, len(flights))
	for _, f := range flights {
		if r.Contains(f.Price) {
			out = append(out, f)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Price < out[j].Price
	})
	return out
}
