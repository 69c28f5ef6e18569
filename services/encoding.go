package services

import (
	"fmt"
	"strings"
)

var numericFeatures = map[string]func(FeatureRow) float64{
	"journey_day":     func(r FeatureRow) float64 { return float64(r.JourneyDay) },
	"journey_month":   func(r FeatureRow) float64 { return float64(r.JourneyMonth) },
	"journey_year":    func(r FeatureRow) float64 { return float64(r.JourneyYear) },
	"dep_hour":        func(r FeatureRow) float64 { return float64(r.DepHour) },
	"dep_min":         func(r FeatureRow) float64 { return float64(r.DepMin) },
	"arr_hour":        func(r FeatureRow) float64 { return float64(r.ArrHour) },
	"arr_min":         func(r FeatureRow) float64 { return float64(r.ArrMin) },
	"duration_mins":   func(r FeatureRow) float64 { return float64(r.DurationMins) },
	"total_stops_num": func(r FeatureRow) float64 { return float64(r.TotalStops) },
	"route_segments":  func(r FeatureRow) float64 { return float64(r.RouteSegments) },
}

var categoricalFeatures = map[string]func(FeatureRow) string{
	"Airline":           func(r FeatureRow) string { return r.Airline },
	"Source":            func(r FeatureRow) string { return r.Source },
	"Destination":       func(r FeatureRow) string { return r.Destination },
	"add_info_smallcat": func(r FeatureRow) string { return r.AddInfo },
}

// encoder maps a FeatureRow onto the column order an artifact was trained on.
// Categorical columns are one-hot, named "Column=Value".
type encoder struct {
	columns []func(FeatureRow) float64
}

func newEncoder(names []string) (*encoder, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("artifact lists no features")
	}

	enc := &encoder{columns: make([]func(FeatureRow) float64, len(names))}
	for i, name := range names {
		if get, ok := numericFeatures[name]; ok {
			enc.columns[i] = get
			continue
		}

		column, value, ok := strings.Cut(name, "=")
		get, known := categoricalFeatures[column]
		if !ok || !known {
			return nil, fmt.Errorf("unknown feature %q", name)
		}
		enc.columns[i] = func(r FeatureRow) float64 {
			if get(r) == value {
				return 1
			}
			return 0
		}
	}
	return enc, nil
}

func (e *encoder) width() int { return len(e.columns) }

func (e *encoder) encode(row FeatureRow) []float64 {
	x := make([]float64, len(e.columns))
	for i, col := range e.columns {
		x[i] = col(row)
	}
	return x
}
