package insight

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/tonyback0101-cmyk/seeqi/internal/almanac"
	"github.com/tonyback0101-cmyk/seeqi/internal/archetype"
	"github.com/tonyback0101-cmyk/seeqi/internal/genproxy"
)

// --- mock generator ---

type mockGenerator struct {
	generateFn func(ctx context.Context, stage string, req genproxy.Request) (string, error)
	calls      []string
}

func (m *mockGenerator) Generate(ctx context.Context, stage string, req genproxy.Request) (string, error) {
	m.calls = append(m.calls, stage)
	if m.generateFn != nil {
		return m.generateFn(ctx, stage, req)
	}
	return "", &genproxy.Error{Stage: stage, Reason: genproxy.ReasonNetwork}
}

func failingGenerator() *mockGenerator {
	return &mockGenerator{}
}

func replyingGenerator(reply string) *mockGenerator {
	return &mockGenerator{generateFn: func(context.Context, string, genproxy.Request) (string, error) {
		return reply, nil
	}}
}

func testPalm() archetype.Palm {
	return archetype.Palm{
		Vitality: "strong", MindPattern: "focused", EmotionPattern: "expressive",
		SkinSign: "balanced", WealthSign: "flourishing",
		SystemTags: []string{"vitality_strong", "wealth_line"},
	}
}

func TestGeneratedReplyWins(t *testing.T) {
	gen := replyingGenerator(`{"summary": ["A fine day."], "bullets": ["Rest well.", "Walk more."]}`)
	o := NewOrchestrator(gen, Config{Policy: PolicyStrict})

	ins, err := o.PalmInsight(context.Background(), testPalm(), "en")
	if err != nil {
		t.Fatalf("PalmInsight: %v", err)
	}
	if ins.Source != SourceGenerated {
		t.Errorf("Source = %q, want generated", ins.Source)
	}
	if len(ins.Summary) != 1 || len(ins.Bullets) != 2 {
		t.Errorf("unexpected shape: %+v", ins)
	}
}

func TestGeneratedReplyWithFences(t *testing.T) {
	gen := replyingGenerator("Sure! Here you go:\n```json\n{\"summary\": [\"Calm waters ahead.\"], \"bullets\": [\"Sleep early.\", \"Stretch.\"]}\n```")
	o := NewOrchestrator(gen, Config{Policy: PolicyStrict})

	ins, err := o.DreamInsight(context.Background(), archetype.Dream{MoodPattern: "calm", ThemeCategory: "water", SymbolMeaning: "x", Intensity: "low"}, "en")
	if err != nil {
		t.Fatalf("DreamInsight: %v", err)
	}
	if ins.Summary[0] != "Calm waters ahead." {
		t.Errorf("Summary = %v", ins.Summary)
	}
}

// TestPermissiveFallbackEqualsBuilder is the fallback substitution contract:
// under the permissive policy a failed generation must yield exactly the
// rule builder's output for the same archetype, for every modality.
func TestPermissiveFallbackEqualsBuilder(t *testing.T) {
	o := NewOrchestrator(failingGenerator(), Config{Policy: PolicyPermissive})
	ctx := context.Background()

	palm := testPalm()
	tongue := archetype.Tongue{EnergyState: "depleted", CoatingState: "damp", BodySign: "deficient"}
	dream := archetype.Dream{MoodPattern: "anxious", ThemeCategory: "chase", SymbolMeaning: "m", Intensity: "high"}

	got, err := o.PalmInsight(ctx, palm, "en")
	if err != nil {
		t.Fatalf("PalmInsight: %v", err)
	}
	if want := FallbackPalm(palm); !reflect.DeepEqual(got, want) {
		t.Errorf("palm fallback mismatch:\n got %+v\nwant %+v", got, want)
	}

	got, err = o.TongueInsight(ctx, tongue, "en")
	if err != nil {
		t.Fatalf("TongueInsight: %v", err)
	}
	if want := FallbackTongue(tongue); !reflect.DeepEqual(got, want) {
		t.Errorf("tongue fallback mismatch:\n got %+v\nwant %+v", got, want)
	}

	got, err = o.DreamInsight(ctx, dream, "en")
	if err != nil {
		t.Fatalf("DreamInsight: %v", err)
	}
	if want := FallbackDream(dream); !reflect.DeepEqual(got, want) {
		t.Errorf("dream fallback mismatch:\n got %+v\nwant %+v", got, want)
	}
}

// TestStrictFailsEveryStage covers the production policy per stage: palm,
// tongue, dream, wealth enrichment and qi elaboration must all surface a
// typed generation error instead of substituting content.
func TestStrictFailsEveryStage(t *testing.T) {
	o := NewOrchestrator(failingGenerator(), Config{Policy: PolicyStrict})
	ctx := context.Background()
	palm := testPalm()

	checks := []struct {
		stage string
		call  func() error
	}{
		{"palm", func() error { _, err := o.PalmInsight(ctx, palm, "en"); return err }},
		{"tongue", func() error { _, err := o.TongueInsight(ctx, archetype.Tongue{}, "en"); return err }},
		{"dream", func() error { _, err := o.DreamInsight(ctx, archetype.Dream{}, "en"); return err }},
		{"wealth", func() error { _, err := o.EnrichWealth(ctx, palm, BuildWealth(palm), "en"); return err }},
		{"qi_advice", func() error {
			_, err := o.ElaborateAdvice(ctx, "steady", []string{"Rest."}, almanac.Day{}, "en")
			return err
		}},
	}

	for _, c := range checks {
		err := c.call()
		var gerr *genproxy.Error
		if !errors.As(err, &gerr) {
			t.Errorf("%s: expected *genproxy.Error, got %v", c.stage, err)
			continue
		}
		if gerr.Stage != c.stage {
			t.Errorf("error stage = %q, want %q", gerr.Stage, c.stage)
		}
	}
}

func TestEmptyStructuredReplyIsFailure(t *testing.T) {
	gen := replyingGenerator(`{"summary": ["", "  "], "bullets": []}`)
	o := NewOrchestrator(gen, Config{Policy: PolicyStrict})

	_, err := o.TongueInsight(context.Background(), archetype.Tongue{EnergyState: "balanced"}, "en")
	var gerr *genproxy.Error
	if !errors.As(err, &gerr) {
		t.Fatalf("expected *genproxy.Error, got %v", err)
	}
	if gerr.Reason != genproxy.ReasonMalformed {
		t.Errorf("Reason = %q, want malformed", gerr.Reason)
	}
}

func TestMalformedReplyPermissiveFallsBack(t *testing.T) {
	gen := replyingGenerator("I am sorry, I cannot help with that.")
	o := NewOrchestrator(gen, Config{Policy: PolicyPermissive})

	tongue := archetype.Tongue{EnergyState: "heated", CoatingState: "heat", BodySign: "normal"}
	got, err := o.TongueInsight(context.Background(), tongue, "en")
	if err != nil {
		t.Fatalf("TongueInsight: %v", err)
	}
	if !reflect.DeepEqual(got, FallbackTongue(tongue)) {
		t.Errorf("expected builder fallback, got %+v", got)
	}
}

func TestWealthLevelNeverOverridden(t *testing.T) {
	gen := replyingGenerator(`{"level": "legendary", "risk": "New risk.", "potential": "New potential.", "summary": "New summary."}`)
	o := NewOrchestrator(gen, Config{Policy: PolicyStrict})

	palm := testPalm()
	base := BuildWealth(palm)
	got, err := o.EnrichWealth(context.Background(), palm, base, "en")
	if err != nil {
		t.Fatalf("EnrichWealth: %v", err)
	}
	if got.Level != base.Level {
		t.Errorf("Level = %q, want rule-derived %q", got.Level, base.Level)
	}
	if got.Risk != "New risk." || got.Potential != "New potential." || got.Summary != "New summary." {
		t.Errorf("enrichment fields not applied: %+v", got)
	}
}

func TestWealthPartialOverride(t *testing.T) {
	gen := replyingGenerator(`{"risk": "Only risk changed."}`)
	o := NewOrchestrator(gen, Config{Policy: PolicyStrict})

	palm := testPalm()
	base := BuildWealth(palm)
	got, err := o.EnrichWealth(context.Background(), palm, base, "en")
	if err != nil {
		t.Fatalf("EnrichWealth: %v", err)
	}
	if got.Risk != "Only risk changed." {
		t.Errorf("Risk = %q", got.Risk)
	}
	if got.Potential != base.Potential || got.Summary != base.Summary {
		t.Errorf("untouched fields must keep base values: %+v", got)
	}
}

func TestElaborateAdviceReplacesWholesale(t *testing.T) {
	gen := replyingGenerator(`{"advice": ["Take it easy today.", "Drink warm tea."]}`)
	o := NewOrchestrator(gen, Config{Policy: PolicyStrict})

	base := []string{"Rest.", "Hydrate."}
	got, err := o.ElaborateAdvice(context.Background(), "steady", base, almanac.Day{DayStemBranch: "甲子"}, "en")
	if err != nil {
		t.Fatalf("ElaborateAdvice: %v", err)
	}
	want := []string{"Take it easy today.", "Drink warm tea."}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("advice = %v, want %v", got, want)
	}
}

func TestElaborateAdvicePermissiveKeepsBase(t *testing.T) {
	o := NewOrchestrator(failingGenerator(), Config{Policy: PolicyPermissive})

	base := []string{"Rest.", "Hydrate."}
	got, err := o.ElaborateAdvice(context.Background(), "low", base, almanac.Day{}, "en")
	if err != nil {
		t.Fatalf("ElaborateAdvice: %v", err)
	}
	if !reflect.DeepEqual(got, base) {
		t.Errorf("advice = %v, want base %v", got, base)
	}
}

func TestOneCallPerModality(t *testing.T) {
	gen := failingGenerator()
	o := NewOrchestrator(gen, Config{Policy: PolicyPermissive})

	_, _ = o.PalmInsight(context.Background(), testPalm(), "en")
	if len(gen.calls) != 1 {
		t.Errorf("expected exactly one generation call, got %d", len(gen.calls))
	}
}
