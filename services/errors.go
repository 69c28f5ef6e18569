package services

import "fmt"

// LoadError means a model artifact could not be loaded. It halts the search.
type LoadError struct {
	Model string // display name of the selection
	Path  string
	Err   error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load %s: %v", e.Model, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// ValidationError is a recoverable input problem shown next to the form.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ConfigError is an unusable filter selection, e.g. no stop counts chosen.
type ConfigError struct {
	Filter  string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Message
}

// PredictionError aborts a search when the predictor fails for one airline.
type PredictionError struct {
	Airline string
	Err     error
}

func (e *PredictionError) Error() string {
	return fmt.Sprintf("price prediction failed for %s: %v", e.Airline, e.Err)
}

func (e *PredictionError) Unwrap() error { return e.Err }

const (
	MsgMissingEndpoint    = "missing endpoint"
	MsgIdenticalEndpoints = "identical endpoints"
)
