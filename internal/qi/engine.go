// Package qi computes the composite daily qi rhythm from the three
// modalities' system tags plus the calendar date. The index is advisory
// content: missing or unknown tags default to neutral contributions and the
// engine never fails.
package qi

import (
	"fmt"
	"time"

	"github.com/tonyback0101-cmyk/seeqi/internal/almanac"
)

type Trend string

const (
	TrendUp   Trend = "up"
	TrendDown Trend = "down"
	TrendFlat Trend = "flat"
)

type Tag string

const (
	TagRising   Tag = "rising"
	TagSteady   Tag = "steady"
	TagModerate Tag = "moderate"
	TagLow      Tag = "low"
)

// Rhythm is one day's composite reading.
type Rhythm struct {
	Index    int         `json:"index"` // 0..100
	Trend    Trend       `json:"trend"`
	Tag      Tag         `json:"tag"`
	Summary  string      `json:"summary"`
	Advice   []string    `json:"advice"`
	Calendar almanac.Day `json:"calendar"`
}

// Modality weights: palm vitality changes slowest and is treated as the
// baseline, so palm dominates tongue, which dominates dream.
const (
	palmWeight   = 3
	tongueWeight = 2
	dreamWeight  = 1
	baseIndex    = 60
)

// Per-tag deltas. Tags absent from this table contribute zero.
var tagDeltas = map[string]int{
	"vitality_strong":    5,
	"vitality_low":       -5,
	"mind_focused":       2,
	"emotion_expressive": 1,
	"skin_depleted":      -2,
	"skin_heated":        -2,
	"skin_strained":      -1,
	"texture_dry":        -1,
	"texture_rough":      -1,

	"energy_balanced": 4,
	"energy_depleted": -5,
	"energy_heated":   -3,
	"energy_stagnant": -4,
	"coating_damp":    -2,
	"coating_heat":    -2,
	"coating_dry":     -1,
	"body_deficient":  -2,
	"body_parched":    -2,

	"mood_calm":      4,
	"mood_hopeful":   3,
	"mood_neutral":   1,
	"mood_anxious":   -4,
	"mood_restless":  -3,
	"intensity_high": -1,
}

// Engine combines system tags with almanac context.
type Engine struct {
	cal almanac.Provider
}

func NewEngine(cal almanac.Provider) *Engine {
	return &Engine{cal: cal}
}

// Compute derives the rhythm for one date. Deterministic: the only time
// dependence is the explicit date parameter.
func (e *Engine) Compute(date time.Time, palmTags, tongueTags, dreamTags []string) Rhythm {
	cal := e.cal.Day(date)

	palmDelta := tagSum(palmTags)
	tongueDelta := tagSum(tongueTags)
	dreamDelta := tagSum(dreamTags)

	index := baseIndex +
		palmDelta*palmWeight +
		tongueDelta*tongueWeight +
		dreamDelta*dreamWeight +
		dayFactor(date)
	index = clamp(index, 0, 100)

	trend := resolveTrend(palmDelta, tongueDelta, dreamDelta)
	tag := classify(index)

	// Palm precedence on conflicts: strong palm vitality keeps the tag out
	// of the low bucket, low palm vitality keeps it out of the rising one.
	if hasTag(palmTags, "vitality_strong") && tag == TagLow {
		tag = TagModerate
	}
	if hasTag(palmTags, "vitality_low") && tag == TagRising {
		tag = TagSteady
	}

	r := Rhythm{
		Index:    index,
		Trend:    trend,
		Tag:      tag,
		Summary:  fmt.Sprintf("Today's qi rhythm index is %d, in the %s range.", index, tag),
		Advice:   adviceFor(tag, cal),
		Calendar: cal,
	}
	return r
}

func tagSum(tags []string) int {
	sum := 0
	for _, t := range tags {
		sum += tagDeltas[t]
	}
	return sum
}

// dayFactor folds the calendar date into the index as a small fixed offset
// in [-2, 2], keeping day-to-day movement visible but bounded.
func dayFactor(date time.Time) int {
	return date.YearDay()%5 - 2
}

// resolveTrend turns per-modality deltas into a direction. When modalities
// disagree, the first non-flat vote in palm > tongue > dream order wins.
func resolveTrend(palm, tongue, dream int) Trend {
	for _, d := range []int{palm, tongue, dream} {
		switch {
		case d > 0:
			return TrendUp
		case d < 0:
			return TrendDown
		}
	}
	return TrendFlat
}

func classify(index int) Tag {
	switch {
	case index >= 75:
		return TagRising
	case index >= 60:
		return TagSteady
	case index >= 40:
		return TagModerate
	default:
		return TagLow
	}
}

var baseAdvice = map[Tag][]string{
	TagRising: {
		"Schedule your most demanding work before midday.",
		"A good day to start something you have been postponing.",
	},
	TagSteady: {
		"Keep a regular rhythm; steady beats intense today.",
		"Leave one unplanned hour in the afternoon.",
	},
	TagModerate: {
		"Pace yourself and keep commitments light.",
		"A short walk after lunch will do more than more coffee.",
	},
	TagLow: {
		"Protect your rest today; defer what can wait.",
		"Favor warm, simple meals and an early night.",
	},
}

func adviceFor(tag Tag, cal almanac.Day) []string {
	advice := append([]string(nil), baseAdvice[tag]...)
	if cal.SolarTerm != "" {
		advice = append(advice, fmt.Sprintf("Around %s, let your routine follow the season rather than fight it.", cal.SolarTerm))
	}
	return advice
}

func hasTag(tags []string, want string) bool {
	for _, t := range tags {
		if t == want {
			return true
		}
	}
	return false
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
