// Package almanac resolves a civil date to traditional calendar context:
// solar term, day stem-branch, auspicious/inauspicious activity lists and
// lucky/unlucky hour windows. The pipeline consumes it as a pure lookup.
package almanac

import (
	"container/list"
	"fmt"
	"time"

	"github.com/6tail/lunar-go/calendar"
)

// Day is one date's almanac record.
type Day struct {
	SolarTerm     string   `json:"solar_term"`
	DayStemBranch string   `json:"day_stem_branch"`
	Auspicious    []string `json:"auspicious"`
	Inauspicious  []string `json:"inauspicious"`
	LuckyHours    []string `json:"lucky_hours"`
	UnluckyHours  []string `json:"unlucky_hours"`
}

// Provider looks up the almanac record for a date. Implementations must be
// deterministic for a given civil date.
type Provider interface {
	Day(date time.Time) Day
}

// LunarProvider resolves almanac data through the lunar calendar library.
type LunarProvider struct{}

func (LunarProvider) Day(date time.Time) Day {
	solar := calendar.NewSolarFromDate(date)
	lunar := solar.GetLunar()

	term := lunar.GetJieQi()
	if term == "" {
		if prev := lunar.GetPrevJieQi(); prev != nil {
			term = prev.GetName()
		}
	}

	d := Day{
		SolarTerm:     term,
		DayStemBranch: lunar.GetDayInGanZhi(),
		Auspicious:    stringList(lunar.GetDayYi()),
		Inauspicious:  stringList(lunar.GetDayJi()),
	}

	for _, lt := range lunar.GetTimes() {
		window := fmt.Sprintf("%s时 %s-%s", lt.GetGanZhi(), lt.GetMinHm(), lt.GetMaxHm())
		if lt.GetTianShenLuck() == "吉" {
			d.LuckyHours = append(d.LuckyHours, window)
		} else {
			d.UnluckyHours = append(d.UnluckyHours, window)
		}
	}
	return d
}

// Fixed returns the same record for every date. Tests use it to pin
// calendar context.
type Fixed struct {
	Record Day
}

func (f Fixed) Day(time.Time) Day { return f.Record }

func stringList(l *list.List) []string {
	if l == nil {
		return nil
	}
	out := make([]string, 0, l.Len())
	for e := l.Front(); e != nil; e = e.Next() {
		if s, ok := e.Value.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
