package report

import (
	"reflect"
	"testing"
	"time"

	"github.com/tonyback0101-cmyk/seeqi/internal/insight"
	"github.com/tonyback0101-cmyk/seeqi/internal/qi"
)

func sampleParams() AssembleParams {
	return AssembleParams{
		ID:        "r-1",
		CreatedAt: time.Date(2026, 3, 18, 8, 0, 0, 0, time.UTC),
		Locale:    "en",
		Timezone:  "Asia/Shanghai",
		Palm: insight.Insight{
			Summary: []string{"Your palm reading points to strong vitality."},
			Bullets: []string{"Keep a steady sleep schedule.", "Take walking breaks."},
			Source:  insight.SourceGenerated,
		},
		Tongue: insight.Insight{
			Summary: []string{"A balanced energy state with a clear coating."},
			Bullets: []string{"Drink warm water through the day."},
			Source:  insight.SourceFallback,
		},
		Dream: insight.Insight{
			Summary: []string{"A calm mood around the theme of water."},
			Bullets: []string{"Note the dream in a few lines."},
			Source:  insight.SourceGenerated,
		},
		Wealth: insight.Wealth{Level: "stable", Risk: "r", Potential: "p", Summary: "s"},
		Qi: qi.Rhythm{
			Index: 82, Trend: qi.TrendUp, Tag: qi.TagRising,
			Advice: []string{"Schedule demanding work before midday."},
		},
	}
}

func TestAssembleShape(t *testing.T) {
	r := Assemble(sampleParams())

	if r.ID != "r-1" || r.Locale != "en" {
		t.Errorf("identity fields wrong: %+v", r)
	}
	if !r.Generation.Palm || r.Generation.Tongue || !r.Generation.Dream {
		t.Errorf("GenerationUsed = %+v", r.Generation)
	}
	want := []string{
		"Keep a steady sleep schedule.",
		"Drink warm water through the day.",
		"Note the dream in a few lines.",
		"Schedule demanding work before midday.",
	}
	if !reflect.DeepEqual(r.Actions, want) {
		t.Errorf("Actions = %v, want %v", r.Actions, want)
	}
}

func TestConstitutionIsClosedSet(t *testing.T) {
	r := Assemble(sampleParams())

	found := false
	for _, c := range Constitutions {
		if r.Constitution == c {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("Constitution %q not in the fixed bucket list", r.Constitution)
	}
}

func TestClassifyDefaultsToBalanced(t *testing.T) {
	empty := insight.Insight{}
	if got := Classify(empty, empty, empty); got != "balanced" {
		t.Errorf("Classify on empty insights = %q, want balanced", got)
	}
}

func TestClassifyDeterministic(t *testing.T) {
	p := sampleParams()
	c1 := Classify(p.Palm, p.Tongue, p.Dream)
	c2 := Classify(p.Palm, p.Tongue, p.Dream)
	if c1 != c2 {
		t.Errorf("Classify nondeterministic: %q vs %q", c1, c2)
	}
}

func TestActionsDeduplicated(t *testing.T) {
	p := sampleParams()
	p.Tongue.Bullets = []string{"Keep a steady sleep schedule."} // same as palm's first
	r := Assemble(p)

	counts := map[string]int{}
	for _, a := range r.Actions {
		counts[a]++
	}
	if counts["Keep a steady sleep schedule."] != 1 {
		t.Errorf("duplicate action survived: %v", r.Actions)
	}
}
