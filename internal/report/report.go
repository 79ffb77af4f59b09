// Package report assembles the modality insights, wealth reading and qi
// rhythm into the immutable Report record. No business rules live here
// beyond shape assembly and the fixed constitution scorer.
package report

import (
	"time"

	"github.com/tonyback0101-cmyk/seeqi/internal/feature"
	"github.com/tonyback0101-cmyk/seeqi/internal/insight"
	"github.com/tonyback0101-cmyk/seeqi/internal/qi"
)

// Echo preserves the raw feature inputs on the stored report for audit and
// debugging. Never shown to viewers.
type Echo struct {
	Palm   feature.PalmFeatures   `json:"palm"`
	Tongue feature.TongueFeatures `json:"tongue"`
	Dream  feature.DreamNarrative `json:"dream"`
}

// GenerationUsed records which stages were served by generation rather than
// rule fallback, for observability.
type GenerationUsed struct {
	Palm   bool `json:"palm"`
	Tongue bool `json:"tongue"`
	Dream  bool `json:"dream"`
}

// Report is the persisted analysis result. Created once, append-only;
// access tiering derives views from it without mutation.
type Report struct {
	ID           string          `json:"id"`
	CreatedAt    time.Time       `json:"created_at"`
	Locale       string          `json:"locale"`
	Timezone     string          `json:"timezone"`
	Palm         insight.Insight `json:"palm"`
	Tongue       insight.Insight `json:"tongue"`
	Dream        insight.Insight `json:"dream"`
	Wealth       insight.Wealth  `json:"wealth"`
	Qi           qi.Rhythm       `json:"qi"`
	Constitution string          `json:"constitution"`
	Actions      []string        `json:"actions"`
	Echo         Echo            `json:"echo"`
	Generation   GenerationUsed  `json:"generation"`
}

// AssembleParams carries everything Assemble needs; ID and CreatedAt come
// from the caller so assembly itself stays a pure function.
type AssembleParams struct {
	ID        string
	CreatedAt time.Time
	Locale    string
	Timezone  string
	Palm      insight.Insight
	Tongue    insight.Insight
	Dream     insight.Insight
	Wealth    insight.Wealth
	Qi        qi.Rhythm
	Echo      Echo
}

// Assemble bundles the pipeline outputs into a Report. The constitution is
// selected by the fixed scorer over the insight texts, never from free
// generator output, so the twelve buckets stay closed.
func Assemble(p AssembleParams) Report {
	r := Report{
		ID:           p.ID,
		CreatedAt:    p.CreatedAt,
		Locale:       p.Locale,
		Timezone:     p.Timezone,
		Palm:         p.Palm,
		Tongue:       p.Tongue,
		Dream:        p.Dream,
		Wealth:       p.Wealth,
		Qi:           p.Qi,
		Constitution: Classify(p.Palm, p.Tongue, p.Dream),
		Echo:         p.Echo,
		Generation: GenerationUsed{
			Palm:   p.Palm.Source == insight.SourceGenerated,
			Tongue: p.Tongue.Source == insight.SourceGenerated,
			Dream:  p.Dream.Source == insight.SourceGenerated,
		},
	}
	r.Actions = actions(r)
	return r
}

// actions collects the cross-modality suggestion list shown under
// advice.actions: the first bullet of each modality plus the first qi
// advice line, deduplicated, order fixed.
func actions(r Report) []string {
	seen := make(map[string]bool)
	var out []string
	add := func(s string) {
		if s != "" && !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	if len(r.Palm.Bullets) > 0 {
		add(r.Palm.Bullets[0])
	}
	if len(r.Tongue.Bullets) > 0 {
		add(r.Tongue.Bullets[0])
	}
	if len(r.Dream.Bullets) > 0 {
		add(r.Dream.Bullets[0])
	}
	if len(r.Qi.Advice) > 0 {
		add(r.Qi.Advice[0])
	}
	return out
}
