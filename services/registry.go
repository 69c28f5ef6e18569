package services

import (
	"sync"

	"github.com/rs/zerolog/log"
)

// ModelRegistry loads each pipeline once and shares it read-only.
// Failed loads are not cached.
type ModelRegistry struct {
	mu     sync.Mutex
	paths  map[ModelKind]string
	loaded map[ModelKind]Predictor
}

// ModelStatus reports whether a configured artifact loads.
type ModelStatus struct {
	Kind   ModelKind `json:"kind"`
	Label  string    `json:"label"`
	Path   string    `json:"path"`
	Loaded bool      `json:"loaded"`
	Error  string    `json:"error,omitempty"`
}

var modelRegistry *ModelRegistry

// InitModels installs the process-wide registry and warms the default model.
func InitModels(paths map[ModelKind]string) {
	modelRegistry = NewModelRegistry(paths)

	if _, err := modelRegistry.Get(DefaultModel); err != nil {
		log.Warn().Err(err).Msg("Default model not available")
		return
	}
	log.Info().Str("model", DefaultModel.Label()).Msg("Loaded default model")
}

func GetModelRegistry() *ModelRegistry {
	return modelRegistry
}

// UseModelRegistry swaps the process-wide registry.
func UseModelRegistry(r *ModelRegistry) {
	modelRegistry = r
}

func NewModelRegistry(paths map[ModelKind]string) *ModelRegistry {
	cp := make(map[ModelKind]string, len(paths))
	for k, v := range paths {
		cp[k] = v
	}
	return &ModelRegistry{paths: cp, loaded: map[ModelKind]Predictor{}}
}

// Register installs an already built predictor, bypassing the artifact file.
func (r *ModelRegistry) Register(kind ModelKind, p Predictor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loaded[kind] = p
}

// Get returns the predictor for kind, loading it on first use.
func (r *ModelRegistry) Get(kind ModelKind) (Predictor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p, ok := r.loaded[kind]; ok {
		return p, nil
	}

	path := r.paths[kind]
	if path == "" {
		return nil, &LoadError{Model: kind.Label(), Err: errNoArtifact}
	}

	p, err := LoadPredictor(kind, path)
	if err != nil {
		return nil, err
	}
	r.loaded[kind] = p
	log.Debug().Str("model", kind.Label()).Str("path", path).Msg("Model loaded")
	return p, nil
}

// Cached reports which models are already loaded without touching disk.
func (r *ModelRegistry) Cached() []ModelStatus {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]ModelStatus, 0, len(ModelChoices))
	for _, c := range ModelChoices {
		_, ok := r.loaded[c.Kind]
		out = append(out, ModelStatus{Kind: c.Kind, Label: c.Label, Path: r.paths[c.Kind], Loaded: ok})
	}
	return out
}

// Status tries every model choice and reports the outcome. Models that
// failed before are read from disk again.
func (r *ModelRegistry) Status() []ModelStatus {
	out := make([]ModelStatus, 0, len(ModelChoices))
	for _, c := range ModelChoices {
		st := ModelStatus{Kind: c.Kind, Label: c.Label, Path: r.paths[c.Kind]}
		if _, err := r.Get(c.Kind); err != nil {
			st.Error = err.Error()
		} else {
			st.Loaded = true
		}
		out = append(out, st)
	}
	return out
}
