package feed

import (
	"strconv"
	"testing"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"eight digit token", "20251006", "2025-10-06"},
		{"another date", "20260112", "2026-01-12"},
		{"too short", "bad", "bad"},
		{"too long", "202510060", "202510060"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDate(tt.in))
		})
	}
}

const rawFeed = "BEGIN:VCALENDAR\r\n" +
	"VERSION:2.0\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:mt-wk1@example.org\r\n" +
	"SUMMARY:Teaching Week\r\n" +
	"DESCRIPTION:Michaelmas Term Wk 1 25/26\r\n" +
	"DTSTART;VALUE=DATE:20251006\r\n" +
	"DTEND;VALUE=DATE:20251012\r\n" +
	"X-UNKNOWN:ignored\r\n" +
	"END:VEVENT\r\n" +
	"BEGIN:VEVENT\r\n" +
	"SUMMARY:Teaching Week\r\n" +
	"DESCRIPTION:Michaelmas Term Wk 2 25/26\r\n" +
	"DTSTART;VALUE=DATE:20251013\r\n" +
	"DTEND;VALUE=DATE:20251019\r\n" +
	"END:VEVENT\r\n" +
	"BEGIN:VEVENT\r\n" +
	"SUMMARY:Old Year\r\n" +
	"DESCRIPTION:Michaelmas Term Wk 1 24/25\r\n" +
	"DTSTART;VALUE=DATE:20241007\r\n" +
	"DTEND;VALUE=DATE:20241013\r\n" +
	"END:VEVENT\r\n" +
	"END:VCALENDAR\r\n"

func TestParseEvents(t *testing.T) {
	events := ParseEvents(rawFeed, "25/26")
	require.Len(t, events, 2)

	assert.Equal(t, "Teaching Week", events[0].Summary)
	assert.Equal(t, "Michaelmas Term Wk 1 25/26", events[0].Description)
	assert.Equal(t, "20251006", events[0].RawStart)
	assert.Equal(t, "20251012", events[0].RawEnd)

	assert.Equal(t, "Michaelmas Term Wk 2 25/26", events[1].Description)
	assert.Equal(t, "20251013", events[1].RawStart)
}

func TestParseEventsBareDateProperty(t *testing.T) {
	raw := "BEGIN:VEVENT\n" +
		"DESCRIPTION:Lent Term Wk 3 25/26\n" +
		"DTSTART:20260126\n" +
		"DTEND:20260201\n" +
		"END:VEVENT\n"

	events := ParseEvents(raw, "25/26")
	require.Len(t, events, 1)
	assert.Equal(t, "20260126", events[0].RawStart)
	assert.Equal(t, "20260201", events[0].RawEnd)
}

func TestParseEventsIgnoresTextOutsideRecords(t *testing.T) {
	raw := "SUMMARY:stray line outside any event\n" +
		"BEGIN:VEVENT\n" +
		"DESCRIPTION:Summer Term Wk 1 25/26\n" +
		"DTSTART;VALUE=DATE:20260427\n" +
		"DTEND;VALUE=DATE:20260503\n" +
		"END:VEVENT\n"

	events := ParseEvents(raw, "25/26")
	require.Len(t, events, 1)
	assert.Empty(t, events[0].Summary)
}

func TestParseEventsEmptyFeed(t *testing.T) {
	assert.Empty(t, ParseEvents("", "25/26"))
	assert.Empty(t, ParseEvents("not a calendar at all", "25/26"))
}

func TestWeekNumber(t *testing.T) {
	tests := []struct {
		name     string
		desc     string
		want     int
		wantFind bool
	}{
		{"single digit", "Michaelmas Term Wk 1 25/26", 1, true},
		{"double digit", "Michaelmas Term Wk 10 25/26", 10, true},
		{"absent", "Michaelmas Term reading week 25/26", 0, false},
		{"lowercase not matched", "Michaelmas Term wk 4 25/26", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := WeekNumber(Event{Description: tt.desc})
			assert.Equal(t, tt.wantFind, ok)
			if tt.wantFind {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestGroupByTerm(t *testing.T) {
	events := []Event{
		{Description: "Michaelmas Term Wk 1 25/26"},
		{Description: "Lent Term Wk 1 25/26"},
		{Description: "Michaelmas Term Wk 2 25/26"},
		{Description: "Summer Term Wk 1 25/26"},
		{Description: "Graduation ceremony 25/26"},
	}

	groups := GroupByTerm(events)

	assert.Len(t, groups[TermMichaelmas], 2)
	assert.Len(t, groups[TermLent], 1)
	assert.Len(t, groups[TermSummer], 1)

	total := 0
	for _, g := range groups {
		total += len(g)
	}
	assert.Equal(t, 4, total, "unclassified events are dropped")
}

func TestReduceTerm(t *testing.T) {
	t.Run("orders by week number", func(t *testing.T) {
		// Deliberately out of input order.
		events := []Event{
			{Description: "Michaelmas Term Wk 3 25/26", RawStart: "20251020", RawEnd: "20251026"},
			{Description: "Michaelmas Term Wk 1 25/26", RawStart: "20251006", RawEnd: "20251012"},
			{Description: "Michaelmas Term Wk 2 25/26", RawStart: "20251013", RawEnd: "20251019"},
		}

		b, ok := ReduceTerm(events)
		require.True(t, ok)
		assert.Equal(t, time.Date(2025, time.October, 6, 0, 0, 0, 0, time.UTC), b.Start)
		assert.Equal(t, time.Date(2025, time.October, 26, 0, 0, 0, 0, time.UTC), b.End)
		assert.Equal(t, 1, b.StartWeek)
		assert.Equal(t, 3, b.EndWeek)
	})

	t.Run("empty input yields no block", func(t *testing.T) {
		_, ok := ReduceTerm(nil)
		assert.False(t, ok)
	})

	t.Run("events without week number are excluded", func(t *testing.T) {
		events := []Event{
			{Description: "Michaelmas Term reading week 25/26", RawStart: "20251103", RawEnd: "20251109"},
			{Description: "Michaelmas Term Wk 1 25/26", RawStart: "20251006", RawEnd: "20251012"},
		}

		b, ok := ReduceTerm(events)
		require.True(t, ok)
		assert.Equal(t, 1, b.StartWeek)
		assert.Equal(t, 1, b.EndWeek)
	})

	t.Run("events with malformed dates are excluded", func(t *testing.T) {
		events := []Event{
			{Description: "Michaelmas Term Wk 1 25/26", RawStart: "tba", RawEnd: "20251012"},
			{Description: "Michaelmas Term Wk 2 25/26", RawStart: "20251013", RawEnd: "20251019"},
		}

		b, ok := ReduceTerm(events)
		require.True(t, ok)
		assert.Equal(t, 2, b.StartWeek)
		assert.Equal(t, time.Date(2025, time.October, 13, 0, 0, 0, 0, time.UTC), b.Start)
	})

	t.Run("only unusable events yields no block", func(t *testing.T) {
		events := []Event{
			{Description: "Michaelmas Term Wk 1 25/26", RawStart: "tba", RawEnd: "tba"},
			{Description: "Michaelmas Term exam period 25/26", RawStart: "20251006", RawEnd: "20251012"},
		}

		_, ok := ReduceTerm(events)
		assert.False(t, ok)
	})
}

// buildFeed serializes week events through the ICS library so the parser is
// exercised against real VEVENT output rather than hand-written fixtures.
func buildFeed(t *testing.T, weeks []struct {
	desc       string
	start, end time.Time
}) string {
	t.Helper()

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)

	for i, w := range weeks {
		ev := cal.AddEvent("week-" + strconv.Itoa(i) + "@termweek.test")
		ev.SetSummary("Teaching Week")
		ev.SetDescription(w.desc)
		ev.SetAllDayStartAt(w.start)
		ev.SetAllDayEndAt(w.end)
	}

	return cal.Serialize()
}

func TestPipelineFromSerializedFeed(t *testing.T) {
	day := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}

	raw := buildFeed(t, []struct {
		desc       string
		start, end time.Time
	}{
		{"Michaelmas Term Wk 1 25/26", day(2025, time.October, 6), day(2025, time.October, 12)},
		{"Michaelmas Term Wk 2 25/26", day(2025, time.October, 13), day(2025, time.October, 19)},
		{"Michaelmas Term Wk 1 24/25", day(2024, time.October, 7), day(2024, time.October, 13)},
	})

	events := ParseEvents(raw, "25/26")
	require.Len(t, events, 2)

	groups := GroupByTerm(events)
	b, ok := ReduceTerm(groups[TermMichaelmas])
	require.True(t, ok)

	assert.Equal(t, day(2025, time.October, 6), b.Start)
	assert.Equal(t, day(2025, time.October, 19), b.End)
	assert.Equal(t, 1, b.StartWeek)
	assert.Equal(t, 2, b.EndWeek)
}
