package report

import (
	"strings"

	"github.com/tonyback0101-cmyk/seeqi/internal/insight"
)

// The twelve constitution buckets. Classification scores fixed keyword
// lists against the insight texts; scoring over our own synthesized text
// (not raw generator output) keeps the category set closed.
var Constitutions = []string{
	"balanced",
	"vital",
	"calm_spirit",
	"qi_deficient",
	"yang_deficient",
	"yin_deficient",
	"phlegm_damp",
	"damp_heat",
	"blood_stasis",
	"qi_stagnation",
	"restless_spirit",
	"sensitive",
}

var constitutionKeywords = map[string][]string{
	"vital":           {"strong", "vitality", "energetic"},
	"calm_spirit":     {"calm", "peaceful", "settled", "steady"},
	"qi_deficient":    {"low", "depleted", "tired", "deficient"},
	"yang_deficient":  {"cold", "pale", "warm meals", "warm water"},
	"yin_deficient":   {"dry", "parched", "cracked"},
	"phlegm_damp":     {"damp", "greasy", "heavy"},
	"damp_heat":       {"heat", "heated", "spicy"},
	"blood_stasis":    {"stagnant", "circulation"},
	"qi_stagnation":   {"pressure", "tense", "stuck", "trapped"},
	"restless_spirit": {"anxious", "restless", "worried"},
	"sensitive":       {"sensitive", "gentle attention"},
}

// Order in which ties break; "balanced" is the result when nothing scores.
var constitutionOrder = []string{
	"vital", "calm_spirit", "qi_deficient", "yang_deficient", "yin_deficient",
	"phlegm_damp", "damp_heat", "blood_stasis", "qi_stagnation",
	"restless_spirit", "sensitive",
}

// Classify selects one of the twelve buckets from the three insight texts.
// Deterministic: fixed keyword lists, fixed tie-break order.
func Classify(palm, tongue, dream insight.Insight) string {
	text := strings.ToLower(joinInsight(palm) + " " + joinInsight(tongue) + " " + joinInsight(dream))

	best := "balanced"
	bestScore := 0
	for _, c := range constitutionOrder {
		score := 0
		for _, kw := range constitutionKeywords[c] {
			score += strings.Count(text, kw)
		}
		if score > bestScore {
			best = c
			bestScore = score
		}
	}
	return best
}

func joinInsight(i insight.Insight) string {
	return strings.Join(i.Summary, " ") + " " + strings.Join(i.Bullets, " ")
}
