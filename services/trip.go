package services

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Clock is a wall-clock time of day.
type Clock struct {
	Hour int `json:"hour"`
	Min  int `json:"min"`
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Min)
}

func (c Clock) minutes() int { return c.Hour*60 + c.Min }

// ParseClock parses "HH:MM" (24h).
func ParseClock(s string) (Clock, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return Clock{}, fmt.Errorf("invalid time %q, use HH:MM", s)
	}
	return Clock{Hour: t.Hour(), Min: t.Minute()}, nil
}

// JourneyDate is the calendar date of travel.
type JourneyDate struct {
	Day   int `json:"day"`
	Month int `json:"month"`
	Year  int `json:"year"`
}

func (d JourneyDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// TripQuery is one captured search. Treat it as immutable.
type TripQuery struct {
	Source          string      `json:"source"`
	Destination     string      `json:"destination"`
	JourneyDate     JourneyDate `json:"journey_date"`
	DepTime         Clock       `json:"dep_time"`
	ArrTime         Clock       `json:"arr_time"`
	DurationMinutes int         `json:"duration_minutes"`
	RouteSegments   int         `json:"route_segments"`
	InfoCategory    string      `json:"info_category"`
}

// PriceRange is an inclusive price window.
type PriceRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

func (r PriceRange) Contains(price int) bool {
	return price >= r.Min && price <= r.Max
}

// FilterSet holds the sidebar filters. TimeSlot is captured and echoed but
// does not filter anything.
type FilterSet struct {
	AllowedStops    []int      `json:"allowed_stops"`
	AllowedAirlines []string   `json:"allowed_airlines"`
	PriceRange      PriceRange `json:"price_range"`
	TimeSlot        string     `json:"time_slot"`
}

// TripInput is the raw form data before validation.
type TripInput struct {
	Source        string
	Destination   string
	JourneyDate   string // YYYY-MM-DD
	DepTime       string // HH:MM
	ArrTime       string // HH:MM
	RouteSegments int
	InfoCategory  string
}

// FilterInput is the raw filter data before validation.
type FilterInput struct {
	Stops    []int
	Airlines []string
	PriceMin int
	PriceMax int
	TimeSlot string
}

// ValidateEndpoints checks the source/destination pair.
func ValidateEndpoints(source, destination string) error {
	if source == "" || source == SourceSentinel || destination == "" || destination == DestinationSentinel {
		return &ValidationError{
			Field:   "source",
			Message: MsgMissingEndpoint + ": please select both Source and Destination before searching",
		}
	}
	if source == destination {
		return &ValidationError{
			Field:   "destination",
			Message: MsgIdenticalEndpoints + ": Source and Destination cannot be the same",
		}
	}
	return nil
}

// NewTripQuery validates the input and derives the nominal duration.
func NewTripQuery(in TripInput) (TripQuery, error) {
	if err := ValidateEndpoints(in.Source, in.Destination); err != nil {
		return TripQuery{}, err
	}
	if !contains(Sources, in.Source) {
		return TripQuery{}, &ValidationError{Field: "source", Message: fmt.Sprintf("unknown source %q", in.Source)}
	}
	if !contains(Destinations, in.Destination) {
		return TripQuery{}, &ValidationError{Field: "destination", Message: fmt.Sprintf("unknown destination %q", in.Destination)}
	}

	date, err := time.Parse("2006-01-02", strings.TrimSpace(in.JourneyDate))
	if err != nil {
		return TripQuery{}, &ValidationError{Field: "journey_date", Message: "invalid journey date, use YYYY-MM-DD"}
	}

	dep, err := ParseClock(in.DepTime)
	if err != nil {
		return TripQuery{}, &ValidationError{Field: "dep_time", Message: "departure " + err.Error()}
	}
	arr, err := ParseClock(in.ArrTime)
	if err != nil {
		return TripQuery{}, &ValidationError{Field: "arr_time", Message: "arrival " + err.Error()}
	}

	if in.RouteSegments < MinRouteSegments || in.RouteSegments > MaxRouteSegments {
		return TripQuery{}, &ValidationError{
			Field:   "route_segments",
			Message: fmt.Sprintf("route segments must be between %d and %d", MinRouteSegments, MaxRouteSegments),
		}
	}

	info := in.InfoCategory
	if info == "" {
		info = DefaultInfo
	}
	if !contains(InfoCategories, info) {
		return TripQuery{}, &ValidationError{Field: "info_category", Message: fmt.Sprintf("unknown additional info %q", info)}
	}

	return TripQuery{
		Source:          in.Source,
		Destination:     in.Destination,
		JourneyDate:     JourneyDate{Day: date.Day(), Month: int(date.Month()), Year: date.Year()},
		DepTime:         dep,
		ArrTime:         arr,
		DurationMinutes: floorMod(arr.minutes()-dep.minutes(), minutesPerDay),
		RouteSegments:   in.RouteSegments,
		InfoCategory:    info,
	}, nil
}

// NewFilterSet validates the filters. Empty stop or airline selections are
// left for the generator to reject with a ConfigError.
func NewFilterSet(in FilterInput) (FilterSet, error) {
	stops := make([]int, 0, len(in.Stops))
	seen := map[int]bool{}
	for _, s := range in.Stops {
		if !contains(StopOptions, s) {
			return FilterSet{}, &ValidationError{Field: "stops", Message: fmt.Sprintf("stop count %d is outside 0-4", s)}
		}
		if !seen[s] {
			seen[s] = true
			stops = append(stops, s)
		}
	}
	sort.Ints(stops)

	airlines := make([]string, 0, len(in.Airlines))
	for _, a := range in.Airlines {
		if !contains(Airlines, a) {
			return FilterSet{}, &ValidationError{Field: "airlines", Message: fmt.Sprintf("unknown airline %q", a)}
		}
		if !contains(airlines, a) {
			airlines = append(airlines, a)
		}
	}

	if in.PriceMin < PriceFloor || in.PriceMax > PriceCeiling {
		return FilterSet{}, &ValidationError{
			Field:   "price",
			Message: fmt.Sprintf("price range must stay within %d-%d", PriceFloor, PriceCeiling),
		}
	}
	if in.PriceMin > in.PriceMax {
		return FilterSet{}, &ValidationError{Field: "price", Message: "minimum price cannot exceed maximum price"}
	}

	slot := in.TimeSlot
	if slot == "" {
		slot = DefaultTimeSlot
	}
	if !contains(TimeSlots, slot) {
		return FilterSet{}, &ValidationError{Field: "time_slot", Message: fmt.Sprintf("unknown departure time slot %q", slot)}
	}

	return FilterSet{
		AllowedStops:    stops,
		AllowedAirlines: airlines,
		PriceRange:      PriceRange{Min: in.PriceMin, Max: in.PriceMax},
		TimeSlot:        slot,
	}, nil
}
