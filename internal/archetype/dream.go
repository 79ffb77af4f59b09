package archetype

import (
	"sort"
	"strings"

	"github.com/tonyback0101-cmyk/seeqi/internal/feature"
)

// Dream is the rule-derived semantic summary of one dream narrative.
type Dream struct {
	MoodPattern   string   `json:"mood_pattern"`   // calm, anxious, restless, hopeful, neutral
	ThemeCategory string   `json:"theme_category"` // water, flying, chase, falling, journey, general
	SymbolMeaning string   `json:"symbol_meaning"`
	Intensity     string   `json:"intensity"` // low, moderate, high
	SystemTags    []string `json:"system_tags"`
}

var dreamMoodHints = map[string]string{
	"calm":    "calm",
	"joyful":  "hopeful",
	"anxious": "anxious",
	"fearful": "anxious",
}

var dreamMoodKeywords = map[string][]string{
	"calm":     {"calm", "peaceful", "quiet", "gentle", "still"},
	"hopeful":  {"happy", "bright", "warm", "joy", "light"},
	"anxious":  {"afraid", "fear", "scared", "worried", "anxious", "panic"},
	"restless": {"running", "chasing", "falling", "lost", "trapped", "late"},
}

// Keyword scan order is fixed so overlapping matches resolve deterministically.
var dreamMoodOrder = []string{"anxious", "restless", "calm", "hopeful"}

var dreamThemeKeywords = map[string][]string{
	"water":   {"water", "river", "ocean", "sea", "rain", "swim", "flood"},
	"flying":  {"flying", "fly", "float", "soar", "wings"},
	"chase":   {"chase", "chasing", "chased", "pursued", "running from"},
	"falling": {"falling", "fell", "drop", "cliff"},
	"journey": {"road", "train", "travel", "journey", "walking", "path"},
}

var dreamThemeOrder = []string{"water", "flying", "chase", "falling", "journey"}

var dreamSymbolMeanings = map[string]string{
	"water":   "emotional currents seeking a settled channel",
	"flying":  "a wish for room to move and lighter obligations",
	"chase":   "pressure that has not yet been named in waking life",
	"falling": "a sense of loosened footing around a recent change",
	"journey": "a transition that is already quietly underway",
	"general": "everyday impressions settling into rest",
}

// BuildDream maps a dream narrative to a Dream archetype using hint fields
// first and fixed keyword rules second. A narrative matching nothing yields
// the neutral defaults.
func BuildDream(f feature.DreamNarrative) Dream {
	text := strings.ToLower(f.Text)

	a := Dream{
		MoodPattern:   "neutral",
		ThemeCategory: "general",
		Intensity:     "moderate",
	}

	if mood, ok := dreamMoodHints[f.EmotionHint]; ok {
		a.MoodPattern = mood
	} else {
		for _, mood := range dreamMoodOrder {
			if containsAny(text, dreamMoodKeywords[mood]) {
				a.MoodPattern = mood
				break
			}
		}
	}

	if _, ok := dreamThemeKeywords[f.CategoryHint]; ok {
		a.ThemeCategory = f.CategoryHint
	} else {
		for _, theme := range dreamThemeOrder {
			if containsAny(text, dreamThemeKeywords[theme]) {
				a.ThemeCategory = theme
				break
			}
		}
	}

	a.SymbolMeaning = dreamSymbolMeanings[a.ThemeCategory]

	switch n := len(strings.Fields(f.Text)); {
	case n < 12:
		a.Intensity = "low"
	case n > 80 || strings.Contains(f.Text, "!"):
		a.Intensity = "high"
	}

	tags := []string{"mood_" + a.MoodPattern}
	if a.ThemeCategory != "general" {
		tags = append(tags, "theme_"+a.ThemeCategory)
	}
	if a.Intensity == "high" {
		tags = append(tags, "intensity_high")
	}

	sort.Strings(tags)
	a.SystemTags = tags
	return a
}

func containsAny(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}
