package config

import (
	"fmt"
	"os"
	"strconv"
)

type keyType int

const (
	kString keyType = iota
	kInt
	kFloat
)

type keySpec struct {
	key     string
	typ     keyType
	env     string
	secret  bool
	apply   func(cfg *Config, v any)
	extract func(cfg Config) any
}

var specs = []keySpec{
	{
		key: "server.port", typ: kInt, env: "SEEQI_SERVER_PORT",
		apply:   func(cfg *Config, v any) { cfg.Server.Port = v.(int) },
		extract: func(cfg Config) any { return cfg.Server.Port },
	},
	{
		key: "storage.data_dir", typ: kString, env: "SEEQI_STORAGE_DATA_DIR",
		apply:   func(cfg *Config, v any) { cfg.Storage.DataDir = v.(string) },
		extract: func(cfg Config) any { return cfg.Storage.DataDir },
	},
	{
		key: "generation.base_url", typ: kString, env: "SEEQI_GENERATION_BASE_URL",
		apply:   func(cfg *Config, v any) { cfg.Generation.BaseURL = v.(string) },
		extract: func(cfg Config) any { return cfg.Generation.BaseURL },
	},
	{
		key: "generation.api_key", typ: kString, env: "SEEQI_GENERATION_API_KEY",
		secret:  true,
		apply:   func(cfg *Config, v any) { cfg.Generation.APIKey = v.(string) },
		extract: func(cfg Config) any { return cfg.Generation.APIKey },
	},
	{
		key: "generation.model", typ: kString, env: "SEEQI_GENERATION_MODEL",
		apply:   func(cfg *Config, v any) { cfg.Generation.Model = v.(string) },
		extract: func(cfg Config) any { return cfg.Generation.Model },
	},
	{
		key: "generation.timeout_seconds", typ: kInt, env: "SEEQI_GENERATION_TIMEOUT_SECONDS",
		apply:   func(cfg *Config, v any) { cfg.Generation.TimeoutSeconds = v.(int) },
		extract: func(cfg Config) any { return cfg.Generation.TimeoutSeconds },
	},
	{
		key: "generation.temperature", typ: kFloat, env: "SEEQI_GENERATION_TEMPERATURE",
		apply:   func(cfg *Config, v any) { cfg.Generation.Temperature = v.(float64) },
		extract: func(cfg Config) any { return cfg.Generation.Temperature },
	},
	{
		key: "generation.max_tokens", typ: kInt, env: "SEEQI_GENERATION_MAX_TOKENS",
		apply:   func(cfg *Config, v any) { cfg.Generation.MaxTokens = v.(int) },
		extract: func(cfg Config) any { return cfg.Generation.MaxTokens },
	},
	{
		key: "generation.fallback_policy", typ: kString, env: "SEEQI_GENERATION_FALLBACK_POLICY",
		apply:   func(cfg *Config, v any) { cfg.Generation.FallbackPolicy = v.(string) },
		extract: func(cfg Config) any { return cfg.Generation.FallbackPolicy },
	},
	{
		key: "log.level", typ: kString, env: "SEEQI_LOG_LEVEL",
		apply:   func(cfg *Config, v any) { cfg.Log.Level = v.(string) },
		extract: func(cfg Config) any { return cfg.Log.Level },
	},
}

func applyBackend(cfg *Config, b ConfigBackend) error {
	for _, s := range specs {
		if s.secret {
			continue
		}
		switch s.typ {
		case kString:
			v, ok, err := b.GetString(s.key)
			if err != nil {
				return fmt.Errorf("reading %s: %w", s.key, err)
			}
			if ok {
				s.apply(cfg, v)
			}
		case kInt:
			v, ok, err := b.GetInt(s.key)
			if err != nil {
				return fmt.Errorf("reading %s: %w", s.key, err)
			}
			if ok {
				s.apply(cfg, v)
			}
		case kFloat:
			v, ok, err := b.GetString(s.key)
			if err != nil {
				return fmt.Errorf("reading %s: %w", s.key, err)
			}
			if ok && v != "" {
				if f, err := strconv.ParseFloat(v, 64); err == nil {
					s.apply(cfg, f)
				} else {
					fmt.Fprintf(os.Stderr, "[WARN] could not parse float from config key %s=%q: %v. Using default value.\n", s.key, v, err)
				}
			}
		}
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	for _, s := range specs {
		if s.env == "" {
			continue
		}
		raw := os.Getenv(s.env)
		if raw == "" {
			continue
		}
		switch s.typ {
		case kString:
			s.apply(cfg, raw)
		case kInt:
			if i, err := strconv.Atoi(raw); err == nil {
				s.apply(cfg, i)
			} else {
				fmt.Fprintf(os.Stderr, "[WARN] could not parse integer from env var %s=%q: %v. Using default value.\n", s.env, raw, err)
			}
		case kFloat:
			if f, err := strconv.ParseFloat(raw, 64); err == nil {
				s.apply(cfg, f)
			} else {
				fmt.Fprintf(os.Stderr, "[WARN] could not parse float from env var %s=%q: %v. Using default value.\n", s.env, raw, err)
			}
		}
	}
}
