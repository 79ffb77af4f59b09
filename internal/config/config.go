package config

import (
	"fmt"
	"os"
	"path/filepath"
)

type Config struct {
	Server     ServerConfig
	Storage    StorageConfig
	Generation GenerationConfig
	Log        LogConfig
}

type ServerConfig struct {
	Port int
}

type StorageConfig struct {
	DataDir string
}

type GenerationConfig struct {
	BaseURL        string
	APIKey         string
	Model          string
	TimeoutSeconds int
	Temperature    float64
	MaxTokens      int
	FallbackPolicy string
}

type LogConfig struct {
	Level string
}

func defaults() Config {
	return Config{
		Server: ServerConfig{
			Port: 4600,
		},
		Storage: StorageConfig{
			DataDir: defaultDataDir(),
		},
		Generation: GenerationConfig{
			BaseURL:        "https://api.openai.com/v1",
			Model:          "gpt-4o-mini",
			TimeoutSeconds: 30,
			Temperature:    0.7,
			MaxTokens:      600,
			FallbackPolicy: "strict",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

func defaultDataDir() string {
	dir := os.Getenv("XDG_DATA_HOME")
	if dir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			dir = filepath.Join(home, ".local", "share")
		} else {
			return "seeqi-data"
		}
	}
	return filepath.Join(dir, "seeqi")
}

// Load reads configuration from the JSON file backend at
// $XDG_CONFIG_HOME/seeqi/config.json, then applies SEEQI_* environment
// overrides. Secrets (generation API key, bearer token) come from the
// environment or the secrets file; they are never stored in config.json.
func Load() (Config, error) {
	return loadWith(newFileBackend())
}

func loadWith(b ConfigBackend) (Config, error) {
	cfg := defaults()

	if err := applyBackend(&cfg, b); err != nil {
		return Config{}, err
	}

	applyEnvOverrides(&cfg)

	switch cfg.Generation.FallbackPolicy {
	case "strict", "permissive":
	default:
		return Config{}, fmt.Errorf("invalid generation.fallback_policy %q: must be \"strict\" or \"permissive\"", cfg.Generation.FallbackPolicy)
	}

	return cfg, nil
}

// RequireGenerationKey enforces the strict-policy API key requirement.
// Only the server calls it: client commands load config for the port and
// data dir alone and must work without a local generation key.
func (c Config) RequireGenerationKey() error {
	if c.Generation.APIKey == "" && c.Generation.FallbackPolicy == "strict" {
		return fmt.Errorf("missing required config: generation API key. " +
			"Set it via environment variable SEEQI_GENERATION_API_KEY, " +
			"or switch generation.fallback_policy to \"permissive\" to run on rule-based readings only")
	}
	return nil
}
