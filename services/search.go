package services

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// SearchInput is one button click worth of form data.
type SearchInput struct {
	Model   string
	Trip    TripInput
	Filters FilterInput
}

// SearchResult carries everything a renderer needs.
type SearchResult struct {
	SearchID string            `json:"search_id"`
	Model    ModelChoice       `json:"model"`
	Query    TripQuery         `json:"query"`
	Filters  FilterSet         `json:"filters"`
	Flights  []FlightCandidate `json:"flights"`
	Results  Results           `json:"results"`
}

// Searcher runs validate → load → generate → filter & rank → present.
type Searcher struct {
	Models  *ModelRegistry
	NewRand func() Rand
	Limit   int
}

// NewSearcher returns a searcher over models. A fixed seed makes every
// search reproducible; otherwise each search is seeded from the clock.
func NewSearcher(models *ModelRegistry, seed int64, fixed bool) *Searcher {
	return &Searcher{
		Models:  models,
		NewRand: RandFactory(seed, fixed),
		Limit:   DisplayCap,
	}
}

// RandFactory returns a constructor for per-search random sources.
func RandFactory(seed int64, fixed bool) func() Rand {
	return func() Rand {
		if fixed {
			return rand.New(rand.NewSource(seed))
		}
		return rand.New(rand.NewSource(time.Now().UnixNano()))
	}
}

func (s *Searcher) Search(ctx context.Context, in SearchInput) (*SearchResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	kind, ok := ParseModelKind(in.Model)
	if !ok {
		return nil, &ValidationError{Field: "model", Message: fmt.Sprintf("unknown model %q", in.Model)}
	}

	model, err := s.Models.Get(kind)
	if err != nil {
		return nil, err
	}

	query, err := NewTripQuery(in.Trip)
	if err != nil {
		return nil, err
	}
	filters, err := NewFilterSet(in.Filters)
	if err != nil {
		return nil, err
	}

	id := uuid.New().String()
	logger := log.With().Str("search_id", id).Str("model", string(kind)).Logger()

	candidates, err := GenerateFlightRows(query, filters, model, s.NewRand())
	if err != nil {
		logger.Warn().Err(err).Msg("Flight generation failed")
		return nil, err
	}

	ranked := FilterAndRank(candidates, filters.PriceRange)
	logger.Debug().
		Int("generated", len(candidates)).
		Int("in_range", len(ranked)).
		Str("route", query.Source+"-"+query.Destination).
		Msg("Search complete")

	return &SearchResult{
		SearchID: id,
		Model:    ModelChoice{Kind: kind, Label: kind.Label()},
		Query:    query,
		Filters:  filters,
		Flights:  ranked,
		Results:  Present(ranked, s.Limit, kind),
	}, nil
}

var searcher *Searcher

// InitSearcher installs the process-wide searcher used by the handlers.
func InitSearcher(s *Searcher) {
	searcher = s
}

func GetSearcher() *Searcher {
	return searcher
}
