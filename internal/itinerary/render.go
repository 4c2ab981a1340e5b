package itinerary

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dangerclosesec/fieldwork/internal/model"
)

// Render writes a plain-text schedule of days for trip to w.
func Render(w io.Writer, trip model.Trip, days []Day) error {
	p := &printer{w: w}

	p.printf("%s\n", trip.Name)
	p.printf("%s\n", strings.Repeat("=", len(trip.Name)))
	if trip.StartDate != nil && trip.EndDate != nil {
		p.printf("%s to %s\n", *trip.StartDate, *trip.EndDate)
	}
	if trip.Description != "" {
		p.printf("%s\n", trip.Description)
	}

	if len(days) == 0 {
		p.printf("\nNothing scheduled yet.\n")
		return p.err
	}

	for _, day := range days {
		p.printf("\n%s\n", heading(day))

		if day.Empty() {
			p.printf("  Nothing planned this day.\n")
			continue
		}
		for _, l := range day.Legs {
			p.printf("  Travel   %s -> %s by %s", l.StartCity, l.EndCity, l.Transportation)
			p.note(l.Notes)
		}
		for _, l := range day.Lodgings {
			p.printf("  Stay     %s", l.Name)
			if where := joinNonEmpty(", ", l.Address, l.City); where != "" {
				p.printf(", %s", where)
			}
			p.note(l.Notes)
		}
		for _, m := range day.Meetings {
			p.printf("  %-8s %s", m.ScheduledTime, m.Title)
			if m.Duration != nil {
				p.printf(" (%d min)", *m.Duration)
			}
			if where := joinNonEmpty(", ", m.Address, m.City, m.State, m.Zip); where != "" {
				p.printf(" at %s", where)
			}
			p.printf(" [%s]", m.Status)
			p.note(m.Notes)
		}
	}
	return p.err
}

func heading(day Day) string {
	label := day.Date
	if t, err := time.Parse(model.DateLayout, day.Date); err == nil {
		label = t.Format("Monday, January 2, 2006")
	}
	if day.DayNumber != nil {
		return fmt.Sprintf("Day %d: %s", *day.DayNumber, label)
	}
	return label
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

// printer remembers the first write error so Render can check once.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *printer) note(notes string) {
	if notes != "" {
		p.printf(" - %s", notes)
	}
	p.printf("\n")
}
