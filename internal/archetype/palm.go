// Package archetype derives semantic descriptors from raw feature summaries.
// Every builder is a pure, total function: unknown or missing categorical
// values fall back to fixed neutral defaults, never an error. The systemTags
// each builder emits feed only the qi composite engine and are never shown
// to viewers verbatim.
package archetype

import (
	"sort"

	"github.com/tonyback0101-cmyk/seeqi/internal/feature"
)

// Palm is the rule-derived semantic summary of one palm feature set.
type Palm struct {
	Vitality       string   `json:"vitality"`        // strong, moderate, low
	MindPattern    string   `json:"mind_pattern"`    // focused, wandering
	EmotionPattern string   `json:"emotion_pattern"` // expressive, reserved
	SkinSign       string   `json:"skin_sign"`       // balanced, depleted, heated, strained
	WealthSign     string   `json:"wealth_sign"`     // flourishing, developing
	SystemTags     []string `json:"system_tags"`
}

var palmSkinSigns = map[string]string{
	"rosy":   "balanced",
	"pale":   "depleted",
	"red":    "heated",
	"yellow": "strained",
	"dark":   "strained",
}

// BuildPalm maps palm features to a Palm archetype. Deterministic: tags are
// emitted sorted.
func BuildPalm(f feature.PalmFeatures) Palm {
	a := Palm{
		Vitality:       "moderate",
		MindPattern:    "wandering",
		EmotionPattern: "reserved",
		SkinSign:       "balanced",
		WealthSign:     "developing",
	}

	tags := make([]string, 0, 6)

	switch {
	case f.LifeLineDeep:
		a.Vitality = "strong"
		tags = append(tags, "vitality_strong")
	case f.Color == "pale":
		a.Vitality = "low"
		tags = append(tags, "vitality_low")
	}

	if f.HeadLineClear {
		a.MindPattern = "focused"
		tags = append(tags, "mind_focused")
	}
	if f.HeartLineLong {
		a.EmotionPattern = "expressive"
		tags = append(tags, "emotion_expressive")
	}

	if sign, ok := palmSkinSigns[f.Color]; ok {
		a.SkinSign = sign
	}
	if a.SkinSign != "balanced" {
		tags = append(tags, "skin_"+a.SkinSign)
	}

	if f.WealthLinePresent {
		a.WealthSign = "flourishing"
		tags = append(tags, "wealth_line")
	}
	if f.Texture == "dry" || f.Texture == "rough" {
		tags = append(tags, "texture_"+f.Texture)
	}

	sort.Strings(tags)
	a.SystemTags = tags
	return a
}
