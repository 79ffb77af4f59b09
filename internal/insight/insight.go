// Package insight is the LLM orchestration layer. For each modality it
// builds a fixed instruction template with verbatim archetype interpolation,
// issues exactly one generation call, parses the structured reply, and on
// failure either fails the request (strict policy, production) or
// substitutes the deterministic rule fallback (permissive policy,
// development). Generated and fallback content are never merged within one
// modality.
package insight

import (
	"github.com/tonyback0101-cmyk/seeqi/internal/genproxy"
)

// Source records which origin won for one modality's insight.
type Source string

const (
	SourceGenerated Source = "generated"
	SourceFallback  Source = "fallback"
)

// Insight is the user-facing short narrative for one modality.
type Insight struct {
	Summary []string `json:"summary"` // 1-3 sentences
	Bullets []string `json:"bullets"` // 2-5 actionable suggestions
	Source  Source   `json:"source"`
}

// Wealth is the palm wealth-line reading. Level is always rule-derived;
// generation may override only Risk, Potential and Summary.
type Wealth struct {
	Level     string `json:"level"` // flourishing, stable, developing
	Risk      string `json:"risk"`
	Potential string `json:"potential"`
	Summary   string `json:"summary"`
}

// FallbackPolicy decides what a generation failure does to the request.
type FallbackPolicy string

const (
	// PolicyStrict re-raises generation failures as request failures.
	// Production runs strict: a paid feature must not silently downgrade.
	PolicyStrict FallbackPolicy = "strict"
	// PolicyPermissive substitutes the rule-based fallback and proceeds.
	PolicyPermissive FallbackPolicy = "permissive"
)

// Config carries the orchestration parameters. Policy is an explicit value
// injected at construction, never read from the environment mid-request.
type Config struct {
	Policy      FallbackPolicy
	ModelHint   string
	Temperature float32
	MaxTokens   int
}

// Orchestrator drives all generation calls of the synthesis pipeline
// through one injected Generator.
type Orchestrator struct {
	gen genproxy.Generator
	cfg Config
}

// NewOrchestrator builds an Orchestrator. Zero-value config fields get
// conservative defaults (strict policy, temperature 0.7, 600 max tokens).
func NewOrchestrator(gen genproxy.Generator, cfg Config) *Orchestrator {
	if cfg.Policy == "" {
		cfg.Policy = PolicyStrict
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = 0.7
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 600
	}
	return &Orchestrator{gen: gen, cfg: cfg}
}

// Policy exposes the configured fallback policy for observability.
func (o *Orchestrator) Policy() FallbackPolicy { return o.cfg.Policy }
