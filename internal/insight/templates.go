package insight

import (
	"fmt"
	"strings"

	"github.com/tonyback0101-cmyk/seeqi/internal/almanac"
	"github.com/tonyback0101-cmyk/seeqi/internal/archetype"
)

// The templates are fixed instruction frameworks. Archetype field values are
// interpolated verbatim; the generator fills the narrative blanks, it does
// not re-derive or invent facts. Every template carries the content-policy
// line: no diagnostic, medical or deterministic-prediction language.

const policyLine = "Never use diagnostic or medical terms, and never phrase anything " +
	"as a certain prediction. Keep the tone warm, grounded and suggestive."

const insightSystemTemplate = "You are a wellness writing assistant for a traditional " +
	"reading app. You will receive a set of derived descriptors. Write strictly from " +
	"those descriptors; do not add facts. " + policyLine + " Respond with JSON only, " +
	`matching {"summary": ["1-3 sentences"], "bullets": ["2-5 short actionable suggestions"]}.`

func palmUserPayload(a archetype.Palm, locale string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Reading type: palm\nLocale: %s\n", locale)
	fmt.Fprintf(&b, "vitality: %s\n", a.Vitality)
	fmt.Fprintf(&b, "mind_pattern: %s\n", a.MindPattern)
	fmt.Fprintf(&b, "emotion_pattern: %s\n", a.EmotionPattern)
	fmt.Fprintf(&b, "skin_sign: %s\n", a.SkinSign)
	fmt.Fprintf(&b, "wealth_sign: %s\n", a.WealthSign)
	return b.String()
}

func tongueUserPayload(a archetype.Tongue, locale string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Reading type: tongue\nLocale: %s\n", locale)
	fmt.Fprintf(&b, "energy_state: %s\n", a.EnergyState)
	fmt.Fprintf(&b, "coating_state: %s\n", a.CoatingState)
	fmt.Fprintf(&b, "body_sign: %s\n", a.BodySign)
	return b.String()
}

func dreamUserPayload(a archetype.Dream, locale string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Reading type: dream\nLocale: %s\n", locale)
	fmt.Fprintf(&b, "mood_pattern: %s\n", a.MoodPattern)
	fmt.Fprintf(&b, "theme_category: %s\n", a.ThemeCategory)
	fmt.Fprintf(&b, "symbol_meaning: %s\n", a.SymbolMeaning)
	fmt.Fprintf(&b, "intensity: %s\n", a.Intensity)
	return b.String()
}

const wealthSystemTemplate = "You are a wellness writing assistant. You will receive a " +
	"rule-computed wealth-line reading. Elaborate its risk, potential and summary text " +
	"without changing their meaning and without inventing new claims. " + policyLine +
	` Respond with JSON only, matching {"risk": "...", "potential": "...", "summary": "..."}.`

func wealthUserPayload(a archetype.Palm, w Wealth, locale string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Locale: %s\n", locale)
	fmt.Fprintf(&b, "level: %s\n", w.Level)
	fmt.Fprintf(&b, "vitality: %s\n", a.Vitality)
	fmt.Fprintf(&b, "base_risk: %s\n", w.Risk)
	fmt.Fprintf(&b, "base_potential: %s\n", w.Potential)
	fmt.Fprintf(&b, "base_summary: %s\n", w.Summary)
	return b.String()
}

const adviceSystemTemplate = "You are a wellness writing assistant. You will receive a " +
	"daily qi rhythm tag, rule-derived advice lines and calendar context. Rephrase the " +
	"advice naturally, keeping every point and adding nothing new. " + policyLine +
	` Respond with JSON only, matching {"advice": ["one line per suggestion"]}.`

func adviceUserPayload(tag string, advice []string, cal almanac.Day, locale string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Locale: %s\n", locale)
	fmt.Fprintf(&b, "qi_tag: %s\n", tag)
	fmt.Fprintf(&b, "solar_term: %s\n", cal.SolarTerm)
	fmt.Fprintf(&b, "day_stem_branch: %s\n", cal.DayStemBranch)
	for i, line := range advice {
		fmt.Fprintf(&b, "advice_%d: %s\n", i+1, line)
	}
	return b.String()
}
