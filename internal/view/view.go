// Package view derives the display-ready, access-tiered structure from a
// stored report. Derivation is pure and idempotent: it never mutates the
// report, is recomputed on every read, and is safe to run concurrently for
// many readers of the same report.
package view

import (
	"fmt"

	"github.com/tonyback0101-cmyk/seeqi/internal/almanac"
	"github.com/tonyback0101-cmyk/seeqi/internal/insight"
	"github.com/tonyback0101-cmyk/seeqi/internal/report"
)

// AccessLevel is the caller's tier, computed by an external collaborator.
type AccessLevel string

const (
	AccessPreview AccessLevel = "preview"
	AccessFull    AccessLevel = "full"
)

// previewSentences is how much of the full narrative the free tier shows;
// previewListCap bounds the calendar lists under preview.
const (
	previewSentences = 2
	previewListCap   = 2
)

// neutralSentence is shown when an aspect exists but its narrative is empty.
const neutralSentence = "Today's reading is gentle and without strong signals."

// AspectValue renders one field at either access tier. Under full access
// Preview is always nil so the same sentence is never shown at two
// granularities; under preview Detail is withheld.
type AspectValue struct {
	Tag     *string `json:"tag,omitempty"`
	Preview *string `json:"preview,omitempty"`
	Detail  *string `json:"detail,omitempty"`
}

// CalendarView carries the almanac lists, truncated under preview.
type CalendarView struct {
	SolarTerm     string   `json:"solar_term"`
	DayStemBranch string   `json:"day_stem_branch"`
	Auspicious    []string `json:"auspicious"`
	Inauspicious  []string `json:"inauspicious"`
	LuckyHours    []string `json:"lucky_hours"`
	UnluckyHours  []string `json:"unlucky_hours"`
}

// DisplayView is the derived, never-persisted render structure.
type DisplayView struct {
	ReportID     string       `json:"report_id"`
	Access       AccessLevel  `json:"access"`
	Palm         *AspectValue `json:"palm,omitempty"`
	Tongue       *AspectValue `json:"tongue,omitempty"`
	Dream        *AspectValue `json:"dream,omitempty"`
	Wealth       *AspectValue `json:"wealth,omitempty"`
	Qi           *AspectValue `json:"qi,omitempty"`
	Constitution string       `json:"constitution"`
	Actions      []string     `json:"actions"`
	Calendar     CalendarView `json:"calendar"`
}

// Derive computes the view of r for the given access level.
func Derive(r report.Report, level AccessLevel) DisplayView {
	if level != AccessFull {
		level = AccessPreview
	}

	v := DisplayView{
		ReportID:     r.ID,
		Access:       level,
		Constitution: r.Constitution,
		Actions:      append([]string(nil), r.Actions...),
		Calendar:     deriveCalendar(r.Qi.Calendar, level),
	}

	v.Palm = deriveAspect(insightNarrative(r.Palm), nil, r.Qi.Calendar, level)
	v.Tongue = deriveAspect(insightNarrative(r.Tongue), nil, r.Qi.Calendar, level)
	v.Dream = deriveAspect(insightNarrative(r.Dream), nil, r.Qi.Calendar, level)
	v.Wealth = deriveAspect(wealthNarrative(r.Wealth), strPtr(r.Wealth.Level), r.Qi.Calendar, level)
	v.Qi = deriveAspect(r.Qi.Summary, strPtr(string(r.Qi.Tag)), r.Qi.Calendar, level)

	return v
}

// deriveAspect builds one AspectValue from the underlying full text. A
// missing underlying field yields nil, never an error. An empty-but-present
// narrative yields the neutral fallback sentence.
func deriveAspect(fullText string, tag *string, cal almanac.Day, level AccessLevel) *AspectValue {
	if fullText == "" && tag == nil {
		return nil
	}
	if fullText == "" {
		fullText = neutralSentence
	}

	a := &AspectValue{Tag: tag}
	if level == AccessFull {
		detail := JoinSentences(append(SplitSentences(fullText), calendarElaboration(cal)...))
		a.Detail = &detail
		return a
	}
	preview := firstSentences(fullText, previewSentences)
	if preview == "" {
		preview = neutralSentence
	}
	a.Preview = &preview
	return a
}

// calendarElaboration returns the rule-templated sentences appended to full
// details, referencing the day's calendar context.
func calendarElaboration(cal almanac.Day) []string {
	var out []string
	if cal.DayStemBranch != "" {
		out = append(out, fmt.Sprintf("The day pillar is %s, a good anchor for reading today's rhythm.", cal.DayStemBranch))
	}
	if cal.SolarTerm != "" {
		out = append(out, fmt.Sprintf("With %s underway, small seasonal adjustments go a long way.", cal.SolarTerm))
	}
	return out
}

func deriveCalendar(cal almanac.Day, level AccessLevel) CalendarView {
	v := CalendarView{
		SolarTerm:     cal.SolarTerm,
		DayStemBranch: cal.DayStemBranch,
		Auspicious:    append([]string(nil), cal.Auspicious...),
		Inauspicious:  append([]string(nil), cal.Inauspicious...),
		LuckyHours:    append([]string(nil), cal.LuckyHours...),
		UnluckyHours:  append([]string(nil), cal.UnluckyHours...),
	}
	if level == AccessPreview {
		v.Auspicious = capList(v.Auspicious)
		v.Inauspicious = capList(v.Inauspicious)
		v.LuckyHours = capList(v.LuckyHours)
		v.UnluckyHours = capList(v.UnluckyHours)
	}
	return v
}

func capList(list []string) []string {
	if len(list) > previewListCap {
		return list[:previewListCap]
	}
	return list
}

func insightNarrative(i insight.Insight) string {
	return JoinSentences(i.Summary)
}

func wealthNarrative(w insight.Wealth) string {
	return JoinSentences(nonEmpty(w.Summary, w.Potential, w.Risk))
}

func nonEmpty(parts ...string) []string {
	var out []string
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
