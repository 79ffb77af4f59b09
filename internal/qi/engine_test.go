package qi

import (
	"reflect"
	"testing"
	"time"

	"github.com/tonyback0101-cmyk/seeqi/internal/almanac"
)

var testCal = almanac.Fixed{Record: almanac.Day{
	SolarTerm:     "立春",
	DayStemBranch: "甲子",
	Auspicious:    []string{"祭祀", "出行", "会友"},
	Inauspicious:  []string{"动土", "安葬", "开仓"},
	LuckyHours:    []string{"甲子时 23:00-00:59", "丙寅时 03:00-04:59", "己巳时 09:00-10:59"},
	UnluckyHours:  []string{"乙丑时 01:00-02:59"},
}}

func fixedDate() time.Time {
	return time.Date(2026, 3, 18, 8, 0, 0, 0, time.UTC)
}

// TestScenarioStrongBalancedCalm: strong palm vitality, balanced tongue
// energy and a calm dream mood must land in the rising/steady bucket.
func TestScenarioStrongBalancedCalm(t *testing.T) {
	e := NewEngine(testCal)

	r := e.Compute(fixedDate(),
		[]string{"vitality_strong"},
		[]string{"energy_balanced"},
		[]string{"mood_calm"},
	)

	if r.Tag != TagRising && r.Tag != TagSteady {
		t.Errorf("Tag = %q, want rising or steady", r.Tag)
	}
	if r.Tag == TagLow {
		t.Error("tag must never be low for this combination")
	}
	if r.Trend != TrendUp {
		t.Errorf("Trend = %q, want up", r.Trend)
	}
}

// TestIndexBounds drives the engine across tag combinations, including
// unknown and empty sets, and checks the index and enums stay in range.
func TestIndexBounds(t *testing.T) {
	e := NewEngine(testCal)

	combos := [][3][]string{
		{{"vitality_strong", "mind_focused", "emotion_expressive"}, {"energy_balanced"}, {"mood_hopeful"}},
		{{"vitality_low", "skin_depleted", "texture_dry"}, {"energy_depleted", "coating_damp", "body_deficient"}, {"mood_anxious", "intensity_high"}},
		{{}, {}, {}},
		{{"unknown_tag"}, {"another_unknown"}, {"mystery"}},
		{nil, nil, nil},
	}

	validTrends := map[Trend]bool{TrendUp: true, TrendDown: true, TrendFlat: true}
	validTags := map[Tag]bool{TagRising: true, TagSteady: true, TagModerate: true, TagLow: true}

	for i, c := range combos {
		r := e.Compute(fixedDate(), c[0], c[1], c[2])
		if r.Index < 0 || r.Index > 100 {
			t.Errorf("combo %d: index %d out of [0,100]", i, r.Index)
		}
		if !validTrends[r.Trend] {
			t.Errorf("combo %d: invalid trend %q", i, r.Trend)
		}
		if !validTags[r.Tag] {
			t.Errorf("combo %d: invalid tag %q", i, r.Tag)
		}
		if len(r.Advice) == 0 {
			t.Errorf("combo %d: advice is empty", i)
		}
	}
}

// TestPalmPrecedence: a strong palm must keep the composite out of the low
// bucket even when tongue and dream pull hard the other way.
func TestPalmPrecedence(t *testing.T) {
	e := NewEngine(testCal)

	r := e.Compute(fixedDate(),
		[]string{"vitality_strong"},
		[]string{"energy_depleted", "coating_damp", "body_deficient", "coating_heat"},
		[]string{"mood_anxious", "intensity_high"},
	)

	if r.Tag == TagLow {
		t.Errorf("Tag = low despite strong palm vitality (index %d)", r.Index)
	}
	if r.Trend != TrendUp {
		t.Errorf("Trend = %q, want up (palm vote dominates)", r.Trend)
	}
}

func TestDeterminism(t *testing.T) {
	e := NewEngine(testCal)

	palm := []string{"vitality_strong", "wealth_line"}
	tongue := []string{"energy_heated"}
	dream := []string{"mood_restless"}

	r1 := e.Compute(fixedDate(), palm, tongue, dream)
	r2 := e.Compute(fixedDate(), palm, tongue, dream)
	if !reflect.DeepEqual(r1, r2) {
		t.Errorf("engine nondeterministic:\n%+v\n%+v", r1, r2)
	}
}

func TestDateMovesIndexWithinBounds(t *testing.T) {
	e := NewEngine(testCal)

	d1 := e.Compute(time.Date(2026, 3, 18, 0, 0, 0, 0, time.UTC), nil, nil, nil)
	d2 := e.Compute(time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC), nil, nil, nil)

	if diff := d1.Index - d2.Index; diff > 4 || diff < -4 {
		t.Errorf("day factor moved index by %d, want at most 4", diff)
	}
}

func TestCalendarCarriedThrough(t *testing.T) {
	e := NewEngine(testCal)
	r := e.Compute(fixedDate(), nil, nil, nil)

	if r.Calendar.DayStemBranch != "甲子" {
		t.Errorf("DayStemBranch = %q", r.Calendar.DayStemBranch)
	}
	if len(r.Calendar.Auspicious) != 3 {
		t.Errorf("Auspicious = %v", r.Calendar.Auspicious)
	}
}
