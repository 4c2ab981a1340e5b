// Package itinerary arranges a trip's legs, lodging and meetings into
// calendar days.
package itinerary

import (
	"sort"
	"time"

	"github.com/dangerclosesec/fieldwork/internal/model"
)

// MaxSpanDays is the longest inclusive date range a trip or a stay may cover.
const MaxSpanDays = 366

const secondsPerDay = 24 * 60 * 60

// SpanDays counts the days from start to end inclusive. It is zero or
// negative when start is after end, and ok is false when either date is
// malformed.
func SpanDays(start, end string) (days int, ok bool) {
	s, ok := parseDate(start)
	if !ok {
		return 0, false
	}
	e, ok := parseDate(end)
	if !ok {
		return 0, false
	}
	return int((e.Unix()-s.Unix())/secondsPerDay) + 1, true
}

// Day holds everything happening on one calendar date. DayNumber is set only
// for days inside the trip's own start..end range.
type Day struct {
	Date      string          `json:"date"`
	DayNumber *int            `json:"day_number"`
	Legs      []model.TripLeg `json:"legs"`
	Lodgings  []model.Lodging `json:"lodgings"`
	Meetings  []model.Meeting `json:"meetings"`
}

// Empty reports whether nothing is planned for the day.
func (d Day) Empty() bool {
	return len(d.Legs) == 0 && len(d.Lodgings) == 0 && len(d.Meetings) == 0
}

// stay is a lodging record reduced to its covered range.
type stay struct {
	lodging    model.Lodging
	start, end time.Time
}

// Build buckets the trip's items by date.
//
// When the trip has both a start and an end date, every day of that range
// gets a numbered bucket, empty or not, and meetings falling outside the range
// get extra unnumbered buckets. Otherwise the buckets are exactly the dates on
// which some leg, lodging night or meeting falls. Items with a missing or
// malformed date are left out.
func Build(trip model.Trip, legs []model.TripLeg, lodgings []model.Lodging, meetings []model.Meeting) []Day {
	stays := normalizeLodging(lodgings)

	var dates []time.Time
	numbers := make(map[time.Time]int)

	start, okStart := parseDatePtr(trip.StartDate)
	end, okEnd := parseDatePtr(trip.EndDate)
	explicit := okStart && okEnd

	if explicit {
		last := clampEnd(start, end)
		for d, n := start, 1; !d.After(last); d, n = d.AddDate(0, 0, 1), n+1 {
			dates = append(dates, d)
			numbers[d] = n
		}
		seen := make(map[time.Time]bool, len(dates))
		for _, d := range dates {
			seen[d] = true
		}
		for _, m := range meetings {
			d, ok := parseDate(m.ScheduledDate)
			if !ok || seen[d] {
				continue
			}
			seen[d] = true
			dates = append(dates, d)
		}
	} else {
		dates = collectDates(legs, stays, meetings)
	}

	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	days := make([]Day, 0, len(dates))
	for _, d := range dates {
		day := Day{
			Date:     d.Format(model.DateLayout),
			Legs:     []model.TripLeg{},
			Lodgings: []model.Lodging{},
			Meetings: []model.Meeting{},
		}
		if n, ok := numbers[d]; ok {
			day.DayNumber = &n
		}

		for _, l := range legs {
			if ld, ok := parseDatePtr(l.Date); ok && ld.Equal(d) {
				day.Legs = append(day.Legs, l)
			}
		}
		for _, s := range stays {
			if !d.Before(s.start) && !d.After(s.end) {
				day.Lodgings = append(day.Lodgings, s.lodging)
			}
		}
		for _, m := range meetings {
			if md, ok := parseDate(m.ScheduledDate); ok && md.Equal(d) {
				day.Meetings = append(day.Meetings, m)
			}
		}

		sortDay(&day)
		days = append(days, day)
	}
	return days
}

// collectDates returns the distinct dates that have at least one item.
func collectDates(legs []model.TripLeg, stays []stay, meetings []model.Meeting) []time.Time {
	seen := make(map[time.Time]bool)
	var dates []time.Time
	add := func(d time.Time) {
		if !seen[d] {
			seen[d] = true
			dates = append(dates, d)
		}
	}

	for _, l := range legs {
		if d, ok := parseDatePtr(l.Date); ok {
			add(d)
		}
	}
	for _, s := range stays {
		last := clampEnd(s.start, s.end)
		for d := s.start; !d.After(last); d = d.AddDate(0, 0, 1) {
			add(d)
		}
	}
	for _, m := range meetings {
		if d, ok := parseDate(m.ScheduledDate); ok {
			add(d)
		}
	}
	return dates
}

// clampEnd caps a range at MaxSpanDays days.
func clampEnd(start, end time.Time) time.Time {
	if last := start.AddDate(0, 0, MaxSpanDays-1); end.After(last) {
		return last
	}
	return end
}

// normalizeLodging folds legacy single-date records into one-day ranges and
// drops records without a usable start. A stay whose start is after its end
// is kept but covers no dates.
func normalizeLodging(lodgings []model.Lodging) []stay {
	stays := make([]stay, 0, len(lodgings))
	for _, l := range lodgings {
		startStr, endStr, ok := l.Span()
		if !ok {
			continue
		}
		start, ok := parseDate(startStr)
		if !ok {
			continue
		}
		end, ok := parseDate(endStr)
		if !ok {
			continue
		}
		stays = append(stays, stay{lodging: l, start: start, end: end})
	}
	return stays
}

// sortDay fixes the order within a day: legs by their position in the trip,
// lodging by check-in then name, meetings by time then creation.
func sortDay(day *Day) {
	sort.SliceStable(day.Legs, func(i, j int) bool {
		return day.Legs[i].Order < day.Legs[j].Order
	})
	sort.SliceStable(day.Lodgings, func(i, j int) bool {
		si, _, _ := day.Lodgings[i].Span()
		sj, _, _ := day.Lodgings[j].Span()
		if si != sj {
			return si < sj
		}
		return day.Lodgings[i].Name < day.Lodgings[j].Name
	})
	sort.SliceStable(day.Meetings, func(i, j int) bool {
		a, b := day.Meetings[i], day.Meetings[j]
		if a.ScheduledTime != b.ScheduledTime {
			return a.ScheduledTime < b.ScheduledTime
		}
		return a.CreatedAt.Before(b.CreatedAt)
	})
}

func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(model.DateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func parseDatePtr(s *string) (time.Time, bool) {
	if s == nil {
		return time.Time{}, false
	}
	return parseDate(*s)
}
