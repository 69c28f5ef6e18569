package services

// ─── Reference Data ──────────────────────────────────────────────────────────

// Airlines is the reference airline list. Generation walks it in this order.
var Airlines = []string{
	"Air Asia", "Air India", "GoAir", "IndiGo",
	"Jet Airways", "Multiple carriers", "SpiceJet", "Vistara",
}

const (
	SourceSentinel      = "Select Source"
	DestinationSentinel = "Select Destination"
)

var Sources = []string{SourceSentinel, "Banglore", "Chennai", "Delhi", "Kolkata", "Mumbai"}

var Destinations = []string{DestinationSentinel, "Banglore", "Cochin", "Delhi", "Hyderabad", "Kolkata"}

var InfoCategories = []string{"1 Long layover", "Change airports", "In-flight meal not included", "No info"}

var StopOptions = []int{0, 1, 2, 3, 4}

var DefaultStops = []int{0, 1, 2}

// TimeSlots are captured from the form but never used for filtering.
var TimeSlots = []string{"00–06", "06–12", "12–18", "18–24"}

const DefaultTimeSlot = "06–12"

const (
	PriceFloor       = 2000
	PriceCeiling     = 20000
	DefaultPriceMin  = 4000
	DefaultPriceMax  = 12000
	MinRouteSegments = 1
	MaxRouteSegments = 10
	DefaultDepTime   = "09:00"
	DefaultArrTime   = "11:30"
	DisplayCap       = 10
	DefaultInfo      = "No info"
)

// Catalog is the reference data served to front-ends.
type Catalog struct {
	Airlines       []string      `json:"airlines"`
	Sources        []string      `json:"sources"`
	Destinations   []string      `json:"destinations"`
	InfoCategories []string      `json:"info_categories"`
	StopOptions    []int         `json:"stop_options"`
	DefaultStops   []int         `json:"default_stops"`
	TimeSlots      []string      `json:"time_slots"`
	PriceFloor     int           `json:"price_floor"`
	PriceCeiling   int           `json:"price_ceiling"`
	DefaultPrice   [2]int        `json:"default_price"`
	Models         []ModelChoice `json:"models"`
}

func GetCatalog() Catalog {
	return Catalog{
		Airlines:       Airlines,
		Sources:        Sources,
		Destinations:   Destinations,
		InfoCategories: InfoCategories,
		StopOptions:    StopOptions,
		DefaultStops:   DefaultStops,
		TimeSlots:      TimeSlots,
		PriceFloor:     PriceFloor,
		PriceCeiling:   PriceCeiling,
		DefaultPrice:   [2]int{DefaultPriceMin, DefaultPriceMax},
		Models:         ModelChoices,
	}
}

func contains[T comparable](list []T, v T) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
