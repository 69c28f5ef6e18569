package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// Config holds everything the server and CLI read from the environment.
type Config struct {
	Port         string
	GinMode      string
	FrontendURLs []string
	Debug        bool
	LogJSON      bool

	ModelDir   string
	ModelFiles map[string]string // kind -> file name, relative to ModelDir unless absolute

	// Seed fixes the jitter source for every search when HasSeed is set.
	Seed    int64
	HasSeed bool
}

// Default model files, keyed by model kind.
var defaultModelFiles = map[string]string{
	"random_forest": "pipeline_rf.json",
	"xgboost":       "pipeline_xgb.json",
	"neural_net":    "pipeline_nn.json",
}

// manifest is the optional YAML file pointed at by MODELS_CONFIG.
type manifest struct {
	Dir    string            `yaml:"dir"`
	Models map[string]string `yaml:"models"`
}

// Load reads .env (if any) and the process environment.
func Load() (*Config, error) {
	// .env is optional; production sets variables directly
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}
	return FromEnv()
}

// FromEnv builds a Config from the current environment only.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Port:       getEnv("PORT", "8080"),
		GinMode:    os.Getenv("GIN_MODE"),
		Debug:      os.Getenv("FARECAST_DEBUG") == "YES",
		LogJSON:    os.Getenv("FARECAST_LOG_FORMAT") == "JSON",
		ModelDir:   getEnv("MODEL_DIR", "models"),
		ModelFiles: map[string]string{},
	}

	for _, u := range strings.Split(os.Getenv("FRONTEND_URL"), ",") {
		if u = strings.TrimSpace(u); u != "" {
			cfg.FrontendURLs = append(cfg.FrontendURLs, u)
		}
	}

	for kind, file := range defaultModelFiles {
		cfg.ModelFiles[kind] = file
	}
	cfg.ModelFiles["random_forest"] = getEnv("MODEL_RF_FILE", cfg.ModelFiles["random_forest"])
	cfg.ModelFiles["xgboost"] = getEnv("MODEL_XGB_FILE", cfg.ModelFiles["xgboost"])
	cfg.ModelFiles["neural_net"] = getEnv("MODEL_NN_FILE", cfg.ModelFiles["neural_net"])

	if path := os.Getenv("MODELS_CONFIG"); path != "" {
		if err := cfg.applyManifest(path); err != nil {
			return nil, err
		}
	}

	if raw := os.Getenv("FARECAST_SEED"); raw != "" {
		seed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid FARECAST_SEED %q: %w", raw, err)
		}
		cfg.Seed = seed
		cfg.HasSeed = true
	}

	return cfg, nil
}

func (c *Config) applyManifest(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read models config: %w", err)
	}

	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("parse models config %s: %w", path, err)
	}

	if m.Dir != "" {
		c.ModelDir = m.Dir
	}
	for kind, file := range m.Models {
		if _, ok := defaultModelFiles[kind]; !ok {
			return fmt.Errorf("models config %s: unknown model kind %q", path, kind)
		}
		c.ModelFiles[kind] = file
	}
	return nil
}

// ModelPath resolves the artifact path for a model kind.
func (c *Config) ModelPath(kind string) string {
	file := c.ModelFiles[kind]
	if file == "" || filepath.IsAbs(file) {
		return file
	}
	return filepath.Join(c.ModelDir, file)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
