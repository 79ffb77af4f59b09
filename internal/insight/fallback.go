package insight

import (
	"fmt"

	"github.com/tonyback0101-cmyk/seeqi/internal/archetype"
)

// The fallback builders produce the deterministic rule-derived insight for
// each modality. They take no context and make no calls: given the same
// archetype they always return the same value, which is what the fallback
// substitution tests rely on.

func FallbackPalm(a archetype.Palm) Insight {
	summary := []string{
		fmt.Sprintf("Your palm reading points to %s vitality with a %s emotional pattern.", a.Vitality, a.EmotionPattern),
		fmt.Sprintf("The head line suggests a %s mind, and the overall skin tone reads as %s.", a.MindPattern, a.SkinSign),
	}
	bullets := []string{
		"Keep a steady sleep schedule to support your baseline energy.",
		"Take short walking breaks when long tasks start to drag.",
	}
	switch a.Vitality {
	case "low":
		bullets = append(bullets, "Favor warm meals and avoid overcommitting this week.")
	case "strong":
		bullets = append(bullets, "This is a good stretch for starting something you have postponed.")
	}
	if a.MindPattern == "wandering" {
		bullets = append(bullets, "Write tomorrow's top task down tonight to give attention an anchor.")
	}
	return Insight{Summary: summary, Bullets: bullets, Source: SourceFallback}
}

func FallbackTongue(a archetype.Tongue) Insight {
	summary := []string{
		fmt.Sprintf("Your tongue reading suggests a %s energy state with a %s coating.", a.EnergyState, a.CoatingState),
	}
	if a.BodySign != "normal" {
		summary = append(summary, fmt.Sprintf("The tongue body shows a %s tendency worth gentle attention.", a.BodySign))
	}
	bullets := []string{
		"Drink warm water through the day rather than all at once.",
		"Keep dinner light and at least two hours before sleep.",
	}
	switch a.EnergyState {
	case "depleted":
		bullets = append(bullets, "Add a short rest in the early afternoon if you can.")
	case "heated":
		bullets = append(bullets, "Ease off spicy food and late screens for a few days.")
	case "stagnant":
		bullets = append(bullets, "Gentle stretching in the morning helps circulation get moving.")
	}
	return Insight{Summary: summary, Bullets: bullets, Source: SourceFallback}
}

func FallbackDream(a archetype.Dream) Insight {
	summary := []string{
		fmt.Sprintf("Your dream carries a %s mood around the theme of %s.", a.MoodPattern, a.ThemeCategory),
		fmt.Sprintf("Traditionally this theme reflects %s.", a.SymbolMeaning),
	}
	bullets := []string{
		"Note the dream in a few lines while it is fresh.",
		"Avoid reading the dream as a prediction; treat it as a mood snapshot.",
	}
	if a.MoodPattern == "anxious" || a.MoodPattern == "restless" {
		bullets = append(bullets, "Wind down without news or work chat in the last half hour of the day.")
	}
	return Insight{Summary: summary, Bullets: bullets, Source: SourceFallback}
}

// BuildWealth derives the rule-based wealth record from the palm archetype.
// The level classification stays rule-derived even when generation enriches
// the other fields.
func BuildWealth(a archetype.Palm) Wealth {
	w := Wealth{Level: "developing"}
	if a.WealthSign == "flourishing" {
		if a.Vitality == "strong" {
			w.Level = "flourishing"
		} else {
			w.Level = "stable"
		}
	}

	switch w.Level {
	case "flourishing":
		w.Risk = "Watch for overextension: opportunity is plentiful but attention is not."
		w.Potential = "Well placed for a deliberate, planned expansion."
	case "stable":
		w.Risk = "Routine spending can drift upward unnoticed."
		w.Potential = "Steady ground; consolidate before reaching further."
	default:
		w.Risk = "Avoid high-variance commitments while the base is still forming."
		w.Potential = "Small consistent steps compound better than leaps right now."
	}
	w.Summary = fmt.Sprintf("The wealth line reads as %s, supported by %s vitality.", w.Level, a.Vitality)
	return w
}

// FallbackAdvice returns the rule-sourced qi advice unchanged. The
// elaboration call may replace it wholesale but never partially.
func FallbackAdvice(advice []string) []string {
	out := make([]string, len(advice))
	copy(out, advice)
	return out
}
