package archetype

import (
	"reflect"
	"testing"

	"github.com/tonyback0101-cmyk/seeqi/internal/feature"
)

func TestBuildPalmStrongVitality(t *testing.T) {
	a := BuildPalm(feature.PalmFeatures{
		Color: "rosy", Texture: "smooth",
		LifeLineDeep: true, HeadLineClear: true, HeartLineLong: true,
		WealthLinePresent: true, Quality: 0.9,
	})

	if a.Vitality != "strong" {
		t.Errorf("Vitality = %q, want strong", a.Vitality)
	}
	if a.WealthSign != "flourishing" {
		t.Errorf("WealthSign = %q, want flourishing", a.WealthSign)
	}
	want := []string{"emotion_expressive", "mind_focused", "vitality_strong", "wealth_line"}
	if !reflect.DeepEqual(a.SystemTags, want) {
		t.Errorf("SystemTags = %v, want %v", a.SystemTags, want)
	}
}

func TestBuildPalmPaleIsLow(t *testing.T) {
	a := BuildPalm(feature.PalmFeatures{Color: "pale", Texture: "dry", Quality: 0.8})

	if a.Vitality != "low" {
		t.Errorf("Vitality = %q, want low", a.Vitality)
	}
	if a.SkinSign != "depleted" {
		t.Errorf("SkinSign = %q, want depleted", a.SkinSign)
	}
}

// TestBuildPalmUnknownColorNeutral checks the fixed-default policy: an
// unrecognised categorical value never produces an error or empty field.
func TestBuildPalmUnknownColorNeutral(t *testing.T) {
	a := BuildPalm(feature.PalmFeatures{Color: "chartreuse", Texture: "unknown", Quality: 0.8})

	if a.Vitality != "moderate" || a.SkinSign != "balanced" || a.WealthSign != "developing" {
		t.Errorf("neutral defaults not applied: %+v", a)
	}
}

func TestBuildTongueStates(t *testing.T) {
	cases := []struct {
		color, coating, texture string
		energy, coatingState    string
	}{
		{"pink", "thin_white", "normal", "balanced", "clear"},
		{"pale", "thick_white", "tooth_marked", "depleted", "damp"},
		{"crimson", "yellow", "cracked", "heated", "heat"},
		{"purple", "none", "normal", "stagnant", "dry"},
		{"polka-dot", "mystery", "normal", "balanced", "clear"}, // neutral fallback
	}
	for _, tc := range cases {
		a := BuildTongue(feature.TongueFeatures{Color: tc.color, Coating: tc.coating, Texture: tc.texture, Quality: 0.9})
		if a.EnergyState != tc.energy {
			t.Errorf("color %q: EnergyState = %q, want %q", tc.color, a.EnergyState, tc.energy)
		}
		if a.CoatingState != tc.coatingState {
			t.Errorf("coating %q: CoatingState = %q, want %q", tc.coating, a.CoatingState, tc.coatingState)
		}
	}
}

func TestBuildDreamHintWinsOverKeywords(t *testing.T) {
	a := BuildDream(feature.DreamNarrative{
		Text:        "I was scared and running from something in the dark.",
		EmotionHint: "calm",
	})
	if a.MoodPattern != "calm" {
		t.Errorf("MoodPattern = %q, want calm (hint should win)", a.MoodPattern)
	}
}

func TestBuildDreamKeywordScan(t *testing.T) {
	a := BuildDream(feature.DreamNarrative{
		Text: "I was swimming in a quiet river and the water was warm around me all night long.",
	})
	if a.ThemeCategory != "water" {
		t.Errorf("ThemeCategory = %q, want water", a.ThemeCategory)
	}
	if a.MoodPattern != "calm" {
		t.Errorf("MoodPattern = %q, want calm", a.MoodPattern)
	}
	if a.SymbolMeaning == "" {
		t.Error("SymbolMeaning is empty")
	}
}

func TestBuildDreamNeutralDefaults(t *testing.T) {
	a := BuildDream(feature.DreamNarrative{Text: "Nothing much happened overnight at my desk."})
	if a.MoodPattern != "neutral" || a.ThemeCategory != "general" {
		t.Errorf("expected neutral defaults, got %+v", a)
	}
	if a.SymbolMeaning == "" {
		t.Error("neutral theme must still carry a symbol meaning")
	}
}

// TestDeterminism repeats each builder on a fixed input and requires
// bit-identical output.
func TestDeterminism(t *testing.T) {
	set := feature.Set{
		Palm:   feature.PalmFeatures{Color: "red", Texture: "rough", LifeLineDeep: true, WealthLinePresent: true, Quality: 0.7},
		Tongue: feature.TongueFeatures{Color: "pale", Coating: "greasy", Texture: "tender", Quality: 0.7},
		Dream:  feature.DreamNarrative{Text: "Chasing a train through the rain, late again!"},
	}

	p1, p2 := BuildPalm(set.Palm), BuildPalm(set.Palm)
	if !reflect.DeepEqual(p1, p2) {
		t.Errorf("palm builder nondeterministic: %+v vs %+v", p1, p2)
	}
	t1, t2 := BuildTongue(set.Tongue), BuildTongue(set.Tongue)
	if !reflect.DeepEqual(t1, t2) {
		t.Errorf("tongue builder nondeterministic: %+v vs %+v", t1, t2)
	}
	d1, d2 := BuildDream(set.Dream), BuildDream(set.Dream)
	if !reflect.DeepEqual(d1, d2) {
		t.Errorf("dream builder nondeterministic: %+v vs %+v", d1, d2)
	}
}
