package archetype

import (
	"sort"

	"github.com/tonyback0101-cmyk/seeqi/internal/feature"
)

// Tongue is the rule-derived semantic summary of one tongue feature set.
type Tongue struct {
	EnergyState  string   `json:"energy_state"`  // balanced, depleted, heated, stagnant
	CoatingState string   `json:"coating_state"` // clear, damp, heat, dry
	BodySign     string   `json:"body_sign"`     // normal, deficient, parched
	SystemTags   []string `json:"system_tags"`
}

var tongueEnergyStates = map[string]string{
	"pink":    "balanced",
	"pale":    "depleted",
	"red":     "heated",
	"crimson": "heated",
	"purple":  "stagnant",
}

var tongueCoatingStates = map[string]string{
	"thin_white":  "clear",
	"thick_white": "damp",
	"greasy":      "damp",
	"yellow":      "heat",
	"none":        "dry",
}

// BuildTongue maps tongue features to a Tongue archetype. Unknown color or
// coating values resolve to the neutral states.
func BuildTongue(f feature.TongueFeatures) Tongue {
	a := Tongue{
		EnergyState:  "balanced",
		CoatingState: "clear",
		BodySign:     "normal",
	}

	if state, ok := tongueEnergyStates[f.Color]; ok {
		a.EnergyState = state
	}
	if state, ok := tongueCoatingStates[f.Coating]; ok {
		a.CoatingState = state
	}
	switch f.Texture {
	case "tooth_marked", "tender":
		a.BodySign = "deficient"
	case "cracked":
		a.BodySign = "parched"
	}

	tags := []string{"energy_" + a.EnergyState}
	if a.CoatingState != "clear" {
		tags = append(tags, "coating_"+a.CoatingState)
	}
	if a.BodySign != "normal" {
		tags = append(tags, "body_"+a.BodySign)
	}

	sort.Strings(tags)
	a.SystemTags = tags
	return a
}
