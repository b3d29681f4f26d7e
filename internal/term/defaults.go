package term

import "time"

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DefaultBlocks returns the built-in 25/26 term dates used until (and
// unless) a feed refresh produces fresh blocks.
func DefaultBlocks() []Block {
	return []Block{
		{Start: date(2025, time.October, 6), End: date(2025, time.December, 14), StartWeek: 1, EndWeek: 10},
		{Start: date(2026, time.January, 12), End: date(2026, time.March, 22), StartWeek: 1, EndWeek: 10},
		{Start: date(2026, time.April, 27), End: date(2026, time.June, 7), StartWeek: 1, EndWeek: 6},
	}
}
