package itinerary_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/dangerclosesec/fieldwork/internal/itinerary"
	"github.com/dangerclosesec/fieldwork/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func dates(days []itinerary.Day) []string {
	out := make([]string, 0, len(days))
	for _, d := range days {
		out = append(out, d.Date)
	}
	return out
}

func numbers(days []itinerary.Day) []*int {
	out := make([]*int, 0, len(days))
	for _, d := range days {
		out = append(out, d.DayNumber)
	}
	return out
}

func TestBuildExplicitRange(t *testing.T) {
	trip := model.Trip{Name: "Boston", StartDate: ptr("2024-03-01"), EndDate: ptr("2024-03-03")}
	lodging := model.Lodging{Name: "Inn", StartDate: ptr("2024-03-01"), EndDate: ptr("2024-03-02")}
	meeting := model.Meeting{Title: "Late", ScheduledDate: "2024-03-05", ScheduledTime: "09:00"}

	days := itinerary.Build(trip, nil, []model.Lodging{lodging}, []model.Meeting{meeting})

	require.Len(t, days, 4)
	assert.Equal(t, []string{"2024-03-01", "2024-03-02", "2024-03-03", "2024-03-05"}, dates(days))
	assert.Equal(t, []*int{ptr(1), ptr(2), ptr(3), nil}, numbers(days))

	assert.Len(t, days[0].Lodgings, 1)
	assert.Len(t, days[1].Lodgings, 1)
	assert.True(t, days[2].Empty(), "days inside the range are kept even when empty")
	require.Len(t, days[3].Meetings, 1)
	assert.Equal(t, "Late", days[3].Meetings[0].Title)
}

func TestBuildRangeLengths(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   string
		want  int
	}{
		{"single day", "2024-03-01", "2024-03-01", 1},
		{"leap february", "2024-02-27", "2024-03-01", 4},
		{"month boundary", "2024-01-30", "2024-02-02", 4},
		{"year boundary", "2023-12-31", "2024-01-01", 2},
		{"inverted", "2024-03-05", "2024-03-01", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trip := model.Trip{StartDate: ptr(tt.start), EndDate: ptr(tt.end)}
			days := itinerary.Build(trip, nil, nil, nil)
			require.Len(t, days, tt.want)
			for i, d := range days {
				require.NotNil(t, d.DayNumber)
				assert.Equal(t, i+1, *d.DayNumber)
			}
		})
	}
}

func TestBuildOutOfRangeMeetingsStaySorted(t *testing.T) {
	trip := model.Trip{StartDate: ptr("2024-03-10"), EndDate: ptr("2024-03-11")}
	meetings := []model.Meeting{
		{Title: "after", ScheduledDate: "2024-03-20"},
		{Title: "before", ScheduledDate: "2024-03-01"},
		{Title: "inside", ScheduledDate: "2024-03-11"},
		{Title: "after again", ScheduledDate: "2024-03-20"},
		{Title: "undated"},
	}

	days := itinerary.Build(trip, nil, nil, meetings)

	assert.Equal(t, []string{"2024-03-01", "2024-03-10", "2024-03-11", "2024-03-20"}, dates(days))
	assert.Nil(t, days[0].DayNumber)
	assert.Equal(t, 1, *days[1].DayNumber)
	assert.Len(t, days[3].Meetings, 2)
}

func TestBuildWithoutRange(t *testing.T) {
	trip := model.Trip{Name: "Open ended", StartDate: ptr("2024-03-01")}
	legs := []model.TripLeg{
		{StartCity: "NYC", EndCity: "BOS", Date: ptr("2024-03-04"), Order: 1},
		{StartCity: "BOS", EndCity: "NYC", Order: 2},
	}
	lodgings := []model.Lodging{
		{Name: "Range", StartDate: ptr("2024-03-04"), EndDate: ptr("2024-03-06")},
		{Name: "Legacy", Date: ptr("2024-03-09")},
		{Name: "Inverted", StartDate: ptr("2024-03-20"), EndDate: ptr("2024-03-18")},
	}
	meetings := []model.Meeting{{Title: "Kickoff", ScheduledDate: "2024-03-02"}}

	days := itinerary.Build(trip, legs, lodgings, meetings)

	assert.Equal(t, []string{"2024-03-02", "2024-03-04", "2024-03-05", "2024-03-06", "2024-03-09"}, dates(days))
	for _, d := range days {
		assert.Nil(t, d.DayNumber)
		assert.False(t, d.Empty(), "no empty buckets without an explicit range")
	}
	assert.Len(t, days[1].Legs, 1)
	assert.Equal(t, "Legacy", days[4].Lodgings[0].Name)
}

func TestBuildNothing(t *testing.T) {
	days := itinerary.Build(model.Trip{}, nil, nil, nil)
	assert.Empty(t, days)
}

func TestBuildIntraDayOrder(t *testing.T) {
	trip := model.Trip{StartDate: ptr("2024-03-01"), EndDate: ptr("2024-03-01")}
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	legs := []model.TripLeg{
		{StartCity: "second", Date: ptr("2024-03-01"), Order: 2},
		{StartCity: "first", Date: ptr("2024-03-01"), Order: 1},
	}
	lodgings := []model.Lodging{
		{Name: "B hotel", StartDate: ptr("2024-03-01"), EndDate: ptr("2024-03-02")},
		{Name: "A hotel", StartDate: ptr("2024-03-01"), EndDate: ptr("2024-03-01")},
		{Name: "Checked in earlier", StartDate: ptr("2024-02-28"), EndDate: ptr("2024-03-01")},
	}
	meetings := []model.Meeting{
		{Title: "afternoon", ScheduledDate: "2024-03-01", ScheduledTime: "14:00"},
		{Title: "tbd later", ScheduledDate: "2024-03-01", ScheduledTime: "TBD", Base: model.Base{CreatedAt: created.Add(time.Hour)}},
		{Title: "morning", ScheduledDate: "2024-03-01", ScheduledTime: "09:30"},
		{Title: "tbd earlier", ScheduledDate: "2024-03-01", ScheduledTime: "TBD", Base: model.Base{CreatedAt: created}},
	}

	days := itinerary.Build(trip, legs, lodgings, meetings)
	require.Len(t, days, 1)
	day := days[0]

	assert.Equal(t, "first", day.Legs[0].StartCity)
	assert.Equal(t, []string{"Checked in earlier", "A hotel", "B hotel"},
		[]string{day.Lodgings[0].Name, day.Lodgings[1].Name, day.Lodgings[2].Name})
	assert.Equal(t, []string{"morning", "afternoon", "tbd earlier", "tbd later"},
		[]string{day.Meetings[0].Title, day.Meetings[1].Title, day.Meetings[2].Title, day.Meetings[3].Title})
}

func TestBuildIgnoresMalformedDates(t *testing.T) {
	trip := model.Trip{}
	legs := []model.TripLeg{{StartCity: "x", Date: ptr("03/04/2024")}}
	lodgings := []model.Lodging{{Name: "bad", StartDate: ptr("soon"), EndDate: ptr("2024-03-05")}}
	meetings := []model.Meeting{{Title: "ok", ScheduledDate: "2024-03-05"}, {Title: "bad", ScheduledDate: "2024-3-5"}}

	days := itinerary.Build(trip, legs, lodgings, meetings)
	require.Len(t, days, 1)
	assert.Equal(t, "2024-03-05", days[0].Date)
	assert.Empty(t, days[0].Lodgings)
	assert.Len(t, days[0].Meetings, 1)
}

func TestRender(t *testing.T) {
	trip := model.Trip{Name: "Boston", StartDate: ptr("2024-03-01"), EndDate: ptr("2024-03-02")}
	legs := []model.TripLeg{{StartCity: "NYC", EndCity: "BOS", Transportation: model.TransportTrain, Date: ptr("2024-03-01"), Order: 1}}
	meetings := []model.Meeting{{
		Title:         "Meeting with Acme",
		ScheduledDate: "2024-03-01",
		ScheduledTime: "10:00",
		Duration:      ptr(45),
		Address:       "1 Main St",
		City:          "Boston",
		Status:        model.StatusConfirmed,
	}}

	var buf bytes.Buffer
	require.NoError(t, itinerary.Render(&buf, trip, itinerary.Build(trip, legs, nil, meetings)))

	out := buf.String()
	assert.Contains(t, out, "Boston\n======\n2024-03-01 to 2024-03-02\n")
	assert.Contains(t, out, "Day 1: Friday, March 1, 2024")
	assert.Contains(t, out, "Travel   NYC -> BOS by train")
	assert.Contains(t, out, "10:00    Meeting with Acme (45 min) at 1 Main St, Boston [confirmed]")
	assert.Contains(t, out, "Day 2: Saturday, March 2, 2024\n  Nothing planned this day.")
}

func TestSpanDays(t *testing.T) {
	tests := []struct {
		start, end string
		want       int
		ok         bool
	}{
		{"2024-03-01", "2024-03-01", 1, true},
		{"2024-01-01", "2024-12-31", 366, true},
		{"2024-01-01", "2025-01-01", 367, true},
		{"2024-03-05", "2024-03-01", -3, true},
		{"0001-01-01", "9999-12-31", 3652059, true},
		{"2024-03-01", "soon", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.start+"_"+tt.end, func(t *testing.T) {
			got, ok := itinerary.SpanDays(tt.start, tt.end)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuildClampsLongRanges(t *testing.T) {
	t.Run("trip at the limit", func(t *testing.T) {
		trip := model.Trip{StartDate: ptr("2024-01-01"), EndDate: ptr("2024-12-31")}
		days := itinerary.Build(trip, nil, nil, nil)
		require.Len(t, days, itinerary.MaxSpanDays)
		assert.Equal(t, "2024-12-31", days[len(days)-1].Date)
	})

	t.Run("trip past the limit", func(t *testing.T) {
		trip := model.Trip{StartDate: ptr("0001-01-01"), EndDate: ptr("9999-12-31")}
		meeting := model.Meeting{Title: "Far", ScheduledDate: "5000-06-01", ScheduledTime: "09:00"}

		days := itinerary.Build(trip, nil, nil, []model.Meeting{meeting})
		require.Len(t, days, itinerary.MaxSpanDays+1)
		assert.Equal(t, "0001-01-01", days[0].Date)
		assert.Equal(t, itinerary.MaxSpanDays, *days[itinerary.MaxSpanDays-1].DayNumber)
		assert.Equal(t, "5000-06-01", days[len(days)-1].Date)
		assert.Nil(t, days[len(days)-1].DayNumber)
	})

	t.Run("lodging without a trip range", func(t *testing.T) {
		lodging := model.Lodging{Name: "Forever Inn", StartDate: ptr("0001-01-01"), EndDate: ptr("9999-12-31")}
		days := itinerary.Build(model.Trip{}, nil, []model.Lodging{lodging}, nil)
		require.Len(t, days, itinerary.MaxSpanDays)
		for _, d := range days {
			assert.Len(t, d.Lodgings, 1)
		}
	})
}
