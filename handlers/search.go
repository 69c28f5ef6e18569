package handlers

import (
	"errors"
	"net/http"
	"time"

	"farecast/services"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// SearchRequest is shared by the JSON API, the HTML form and the PDF export.
type SearchRequest struct {
	Model         string   `json:"model" form:"model"`
	Source        string   `json:"source" form:"source"`
	Destination   string   `json:"destination" form:"destination"`
	JourneyDate   string   `json:"journey_date" form:"journey_date"`
	DepTime       string   `json:"dep_time" form:"dep_time"`
	ArrTime       string   `json:"arr_time" form:"arr_time"`
	RouteSegments *int     `json:"route_segments" form:"route_segments"`
	InfoCategory  string   `json:"info_category" form:"info_category"`
	Stops         []int    `json:"stops" form:"stops"`
	Airlines      []string `json:"airlines" form:"airlines"`
	PriceMin      *int     `json:"price_min" form:"price_min"`
	PriceMax      *int     `json:"price_max" form:"price_max"`
	TimeSlot      string   `json:"time_slot" form:"time_slot"`
}

// DefaultSearchRequest is the form as first shown.
func DefaultSearchRequest() SearchRequest {
	req := SearchRequest{}
	req.applyDefaults(true)
	return req
}

// applyDefaults fills blank scalar fields. Filter sets are only filled when
// absent from a JSON body: an unticked HTML multi-select posts nothing and
// must stay empty.
func (r *SearchRequest) applyDefaults(fillSets bool) {
	if r.Model == "" {
		r.Model = string(services.DefaultModel)
	}
	if r.Source == "" {
		r.Source = services.SourceSentinel
	}
	if r.Destination == "" {
		r.Destination = services.DestinationSentinel
	}
	if r.JourneyDate == "" {
		r.JourneyDate = time.Now().Format("2006-01-02")
	}
	if r.DepTime == "" {
		r.DepTime = services.DefaultDepTime
	}
	if r.ArrTime == "" {
		r.ArrTime = services.DefaultArrTime
	}
	if r.RouteSegments == nil {
		n := services.MinRouteSegments
		r.RouteSegments = &n
	}
	if r.InfoCategory == "" {
		r.InfoCategory = services.DefaultInfo
	}
	if r.PriceMin == nil {
		n := services.DefaultPriceMin
		r.PriceMin = &n
	}
	if r.PriceMax == nil {
		n := services.DefaultPriceMax
		r.PriceMax = &n
	}
	if r.TimeSlot == "" {
		r.TimeSlot = services.DefaultTimeSlot
	}
	if fillSets {
		if r.Stops == nil {
			r.Stops = append([]int(nil), services.DefaultStops...)
		}
		if r.Airlines == nil {
			r.Airlines = append([]string(nil), services.Airlines...)
		}
	}
}

func (r SearchRequest) toInput() services.SearchInput {
	return services.SearchInput{
		Model: r.Model,
		Trip: services.TripInput{
			Source:        r.Source,
			Destination:   r.Destination,
			JourneyDate:   r.JourneyDate,
			DepTime:       r.DepTime,
			ArrTime:       r.ArrTime,
			RouteSegments: *r.RouteSegments,
			InfoCategory:  r.InfoCategory,
		},
		Filters: services.FilterInput{
			Stops:    r.Stops,
			Airlines: r.Airlines,
			PriceMin: *r.PriceMin,
			PriceMax: *r.PriceMax,
			TimeSlot: r.TimeSlot,
		},
	}
}

// bindSearch binds JSON or form data depending on Content-Type.
func bindSearch(c *gin.Context) (SearchRequest, error) {
	var req SearchRequest
	if err := c.ShouldBind(&req); err != nil {
		return req, err
	}
	req.applyDefaults(c.ContentType() == gin.MIMEJSON)
	return req, nil
}

func SearchHandler(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	req.applyDefaults(true)

	result, err := services.GetSearcher().Search(c.Request.Context(), req.toInput())
	if err != nil {
		writeSearchError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// searchErrorStatus maps the error taxonomy onto HTTP.
func searchErrorStatus(err error) (int, string) {
	var (
		validationErr *services.ValidationError
		configErr     *services.ConfigError
		loadErr       *services.LoadError
		predictionErr *services.PredictionError
	)
	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest, "validation"
	case errors.As(err, &configErr):
		return http.StatusUnprocessableEntity, "config"
	case errors.As(err, &loadErr):
		return http.StatusServiceUnavailable, "load"
	case errors.As(err, &predictionErr):
		return http.StatusInternalServerError, "prediction"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

func writeSearchError(c *gin.Context, err error) {
	status, kind := searchErrorStatus(err)
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Str("kind", kind).Msg("Search failed")
	}
	_ = c.Error(err)

	body := gin.H{"error": err.Error(), "kind": kind}

	var validationErr *services.ValidationError
	var predictionErr *services.PredictionError
	if errors.As(err, &validationErr) {
		body["field"] = validationErr.Field
	}
	if errors.As(err, &predictionErr) {
		body["airline"] = predictionErr.Airline
	}
	c.JSON(status, body)
}
