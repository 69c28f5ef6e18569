package services

import (
	"fmt"
	"math"
)

const minutesPerDay = 24 * 60

// Rand is the jitter source. *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// FlightCandidate is one synthesized row, discarded after rendering.
type FlightCandidate struct {
	Airline         string `json:"airline"`
	Departure       Clock  `json:"departure"`
	Arrival         Clock  `json:"arrival"`
	DurationMinutes int    `json:"duration_minutes"`
	Stops           int    `json:"stops"`
	Price           int    `json:"price"`
}

// GenerateFlightRows builds one candidate per allowed airline, walking the
// reference airline list. Any predictor failure aborts the whole search.
func GenerateFlightRows(q TripQuery, f FilterSet, model Predictor, rng Rand) ([]FlightCandidate, error) {
	if len(f.AllowedStops) == 0 {
		return nil, &ConfigError{Filter: "stops", Message: "select at least one stop count"}
	}
	if len(f.AllowedAirlines) == 0 {
		return nil, &ConfigError{Filter: "airlines", Message: "select at least one airline"}
	}

	rows := make([]FlightCandidate, 0, len(f.AllowedAirlines))
	for _, airline := range Airlines {
		if !contains(f.AllowedAirlines, airline) {
			continue
		}

		stops := f.AllowedStops[rng.Intn(len(f.AllowedStops))]
		depOffset := rng.Intn(121) - 60
		durDelta := rng.Intn(91) - 30

		dep := shiftClock(q.DepTime, depOffset)
		duration := q.DurationMinutes + durDelta
		arr := shiftClock(dep, duration)

		row := FeatureRow{
			JourneyDay:    q.JourneyDate.Day,
			JourneyMonth:  q.JourneyDate.Month,
			JourneyYear:   q.JourneyDate.Year,
			DepHour:       dep.Hour,
			DepMin:        dep.Min,
			ArrHour:       arr.Hour,
			ArrMin:        arr.Min,
			DurationMins:  duration,
			TotalStops:    stops,
			RouteSegments: q.RouteSegments,
			Airline:       airline,
			Source:        q.Source,
			Destination:   q.Destination,
			AddInfo:       q.InfoCategory,
		}

		price, err := model.Predict(row)
		if err != nil {
			return nil, &PredictionError{Airline: airline, Err: err}
		}
		if math.IsNaN(price) || math.IsInf(price, 0) {
			return nil, &PredictionError{Airline: airline, Err: fmt.Errorf("non-finite price %v", price)}
		}
		// halves round to even
		rounded := math.RoundToEven(price)
		if rounded < math.MinInt64 || rounded >= math.MaxInt64 {
			return nil, &PredictionError{Airline: airline, Err: fmt.Errorf("price %v out of range", price)}
		}

		rows = append(rows, FlightCandidate{
			Airline:         airline,
			Departure:       dep,
			Arrival:         arr,
			DurationMinutes: duration,
			Stops:           stops,
			Price:           int(rounded),
		})
	}
	return rows, nil
}

// shiftClock moves c by delta minutes. Hour and minute wrap independently:
// the delta splits into a floored hour carry and a minute remainder, so -15
// is a carry of -1 and a remainder of 45. Minute overflow does not roll into
// the hour.
func shiftClock(c Clock, delta int) Clock {
	return Clock{
		Hour: floorMod(c.Hour+floorDiv(delta, 60), 24),
		Min:  floorMod(c.Min+floorMod(delta, 60), 60),
	}
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int) int {
	return a - floorDiv(a, b)*b
}
