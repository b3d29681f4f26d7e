package term

import (
	"strconv"
	"time"
)

// VacationLabel is returned for any date not covered by a term block, or
// whose computed week runs past the block's declared end week.
const VacationLabel = "VACATION"

// Block represents one contiguous term period with a linear week numbering.
// Start/End are an inclusive date range at day granularity; weeks increment
// by one per 7-day offset from Start. A Block is immutable once built.
type Block struct {
	Start     time.Time
	End       time.Time
	StartWeek int
	EndWeek   int
}

// startOfDay strips the time-of-day, keeping the calendar date in UTC.
// The whole package works at whole-day granularity.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// contains reports whether day (already normalized) falls inside the
// block's inclusive date range.
func (b Block) contains(day time.Time) bool {
	return !day.Before(startOfDay(b.Start)) && !day.After(startOfDay(b.End))
}

// Resolve returns the display label for date against the given block list.
// Blocks are scanned in order and the first match wins. It is a pure
// function: deterministic, total, no side effects.
func Resolve(date time.Time, blocks []Block) string {
	day := startOfDay(date)

	for _, b := range blocks {
		if !b.contains(day) {
			continue
		}

		daysDiff := int(day.Sub(startOfDay(b.Start)) / (24 * time.Hour))
		week := b.StartWeek + daysDiff/7
		if week > b.EndWeek {
			// The date span outruns the declared week count.
			return VacationLabel
		}
		return "Week " + strconv.Itoa(week)
	}

	return VacationLabel
}
