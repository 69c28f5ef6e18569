package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
)

// ModelKind selects one of the three pre-trained pipelines.
type ModelKind string

const (
	RandomForest ModelKind = "random_forest"
	XGBoost      ModelKind = "xgboost"
	NeuralNet    ModelKind = "neural_net"
)

// ModelChoice pairs a model kind with the label shown in the form.
type ModelChoice struct {
	Kind  ModelKind `json:"kind"`
	Label string    `json:"label"`
}

var ModelChoices = []ModelChoice{
	{RandomForest, "Random Forest (default)"},
	{XGBoost, "XGBoost"},
	{NeuralNet, "Neural Network"},
}

const DefaultModel = RandomForest

// Label returns the display name, or the raw kind when unknown.
func (k ModelKind) Label() string {
	for _, c := range ModelChoices {
		if c.Kind == k {
			return c.Label
		}
	}
	return string(k)
}

// ParseModelKind accepts either the kind ("xgboost") or its label ("XGBoost").
func ParseModelKind(s string) (ModelKind, bool) {
	if s == "" {
		return DefaultModel, true
	}
	for _, c := range ModelChoices {
		if strings.EqualFold(s, string(c.Kind)) || s == c.Label {
			return c.Kind, true
		}
	}
	return "", false
}

// FeatureRow is the single-row table handed to a predictor.
type FeatureRow struct {
	JourneyDay    int    `json:"journey_day"`
	JourneyMonth  int    `json:"journey_month"`
	JourneyYear   int    `json:"journey_year"`
	DepHour       int    `json:"dep_hour"`
	DepMin        int    `json:"dep_min"`
	ArrHour       int    `json:"arr_hour"`
	ArrMin        int    `json:"arr_min"`
	DurationMins  int    `json:"duration_mins"`
	TotalStops    int    `json:"total_stops_num"`
	RouteSegments int    `json:"route_segments"`
	Airline       string `json:"Airline"`
	Source        string `json:"Source"`
	Destination   string `json:"Destination"`
	AddInfo       string `json:"add_info_smallcat"`
}

// Predictor turns one feature row into a price. Implementations are
// read-only after load and safe for concurrent use.
type Predictor interface {
	Predict(row FeatureRow) (float64, error)
}

// PredictorFunc adapts a plain function to Predictor.
type PredictorFunc func(row FeatureRow) (float64, error)

func (f PredictorFunc) Predict(row FeatureRow) (float64, error) { return f(row) }

// ─── Artifacts ───────────────────────────────────────────────────────────────

// Artifact is the serialized pipeline document shared by all model kinds.
// Only the body matching Kind is used.
type Artifact struct {
	Kind     ModelKind `json:"kind" msgpack:"kind"`
	Features []string  `json:"features" msgpack:"features"`

	// tree ensembles
	Trees     []Tree  `json:"trees,omitempty" msgpack:"trees,omitempty"`
	BaseScore float64 `json:"base_score,omitempty" msgpack:"base_score,omitempty"`

	// neural net
	Scaler *Scaler `json:"scaler,omitempty" msgpack:"scaler,omitempty"`
	Layers []Layer `json:"layers,omitempty" msgpack:"layers,omitempty"`
	Target *Scaler `json:"target,omitempty" msgpack:"target,omitempty"`
}

var constructors = map[ModelKind]func(*Artifact) (Predictor, error){
	RandomForest: newForest,
	XGBoost:      newBoostedTrees,
	NeuralNet:    newNeuralNet,
}

var (
	errUnknownModel = errors.New("unknown model selection")
	errNoArtifact   = errors.New("no artifact configured")
)

// LoadPredictor reads and validates the artifact for kind at path.
func LoadPredictor(kind ModelKind, path string) (Predictor, error) {
	build, ok := constructors[kind]
	if !ok {
		return nil, &LoadError{Model: kind.Label(), Path: path, Err: errUnknownModel}
	}

	art, err := ReadArtifact(path)
	if err != nil {
		return nil, &LoadError{Model: kind.Label(), Path: path, Err: err}
	}
	if art.Kind != "" && art.Kind != kind {
		return nil, &LoadError{
			Model: kind.Label(),
			Path:  path,
			Err:   fmt.Errorf("artifact holds a %s model", art.Kind),
		}
	}

	p, err := build(art)
	if err != nil {
		return nil, &LoadError{Model: kind.Label(), Path: path, Err: err}
	}
	return p, nil
}

// ReadArtifact decodes a pipeline file; .msgpack/.mp use MessagePack,
// anything else JSON.
func ReadArtifact(path string) (*Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	art := &Artifact{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".msgpack", ".mp":
		err = msgpack.Unmarshal(data, art)
	default:
		err = json.Unmarshal(data, art)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return art, nil
}
