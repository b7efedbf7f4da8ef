// Package daterange computes the dashboard's quick date ranges.
package daterange

import (
	"fmt"
	"time"
)

const Layout = "2006-01-02"

type Range struct {
	Start time.Time
	End   time.Time
}

func (r Range) StartDate() string { return r.Start.Format(Layout) }
func (r Range) EndDate() string   { return r.End.Format(Layout) }

type Preset struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	fn    func(now time.Time) Range
}

// Presets in display order. Weeks start on Sunday.
var Presets = []Preset{
	{"today", "Today", func(now time.Time) Range { d := day(now); return Range{d, d} }},
	{"yesterday", "Yesterday", func(now time.Time) Range { d := day(now).AddDate(0, 0, -1); return Range{d, d} }},
	{"this-week", "This Week", func(now time.Time) Range {
		s := weekStart(now)
		return Range{s, s.AddDate(0, 0, 6)}
	}},
	{"last-week", "Last Week", func(now time.Time) Range {
		s := weekStart(now).AddDate(0, 0, -7)
		return Range{s, s.AddDate(0, 0, 6)}
	}},
	{"this-month", "This Month", func(now time.Time) Range {
		s := monthStart(now)
		return Range{s, s.AddDate(0, 1, -1)}
	}},
	{"last-month", "Last Month", func(now time.Time) Range {
		s := monthStart(now).AddDate(0, -1, 0)
		return Range{s, s.AddDate(0, 1, -1)}
	}},
	{"last-7-days", "Last 7 Days", lastDays(7)},
	{"last-30-days", "Last 30 Days", lastDays(30)},
	{"last-90-days", "Last 90 Days", lastDays(90)},
	{"this-year", "This Year", func(now time.Time) Range {
		y := now.Year()
		return Range{date(y, time.January, 1, now.Location()), date(y, time.December, 31, now.Location())}
	}},
	{"last-year", "Last Year", func(now time.Time) Range {
		y := now.Year() - 1
		return Range{date(y, time.January, 1, now.Location()), date(y, time.December, 31, now.Location())}
	}},
}

// Default is the preset the dashboard opens with.
const Default = "this-month"

// Resolve computes the named preset relative to now.
func Resolve(key string, now time.Time) (Range, error) {
	for _, p := range Presets {
		if p.Key == key {
			return p.fn(now), nil
		}
	}
	return Range{}, fmt.Errorf("unknown date range %q", key)
}

// Custom parses explicit bounds; either may be empty for an open end.
func Custom(start, end string) (Range, error) {
	var r Range
	var err error
	if start != "" {
		if r.Start, err = time.Parse(Layout, start); err != nil {
			return Range{}, fmt.Errorf("invalid start date %q", start)
		}
	}
	if end != "" {
		if r.End, err = time.Parse(Layout, end); err != nil {
			return Range{}, fmt.Errorf("invalid end date %q", end)
		}
	}
	if !r.Start.IsZero() && !r.End.IsZero() && r.End.Before(r.Start) {
		return Range{}, fmt.Errorf("end date %s is before start date %s", end, start)
	}
	return r, nil
}

func lastDays(n int) func(time.Time) Range {
	return func(now time.Time) Range {
		d := day(now)
		return Range{d.AddDate(0, 0, -(n - 1)), d}
	}
}

func date(y int, m time.Month, d int, loc *time.Location) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

func day(t time.Time) time.Time {
	return date(t.Year(), t.Month(), t.Day(), t.Location())
}

func weekStart(t time.Time) time.Time {
	d := day(t)
	return d.AddDate(0, 0, -int(d.Weekday()))
}

func monthStart(t time.Time) time.Time {
	return date(t.Year(), t.Month(), 1, t.Location())
}
