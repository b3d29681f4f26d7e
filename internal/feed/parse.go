package feed

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	appLog "termweek/internal/log"
	"termweek/internal/term"
)

// Event is one parsed feed entry. It only lives for the duration of a
// single refresh; RawStart/RawEnd keep the feed's date tokens verbatim.
type Event struct {
	Summary     string
	Description string
	RawStart    string
	RawEnd      string
}

const (
	beginEvent = "BEGIN:VEVENT"
	endEvent   = "END:VEVENT"
)

// Term bucket names, in the fixed reduction order.
const (
	TermMichaelmas = "michaelmas"
	TermLent       = "lent"
	TermSummer     = "summer"
)

// TermOrder is the order in which term blocks are assembled.
var TermOrder = []string{TermMichaelmas, TermLent, TermSummer}

var termMarkers = map[string]string{
	TermMichaelmas: "Michaelmas Term",
	TermLent:       "Lent Term",
	TermSummer:     "Summer Term",
}

var weekPattern = regexp.MustCompile(`Wk (\d+)`)

// ParseEvents splits raw feed text into VEVENT records and extracts the
// fields this system cares about by case-sensitive line-prefix matching.
// Anything else in the feed is ignored. Only events whose description
// contains yearTag are kept; order follows input order.
//
// This is deliberately not a compliant iCalendar parser: the feed is
// treated as plain line-oriented text so that malformed records degrade
// into dropped events rather than a failed refresh.
func ParseEvents(raw, yearTag string) []Event {
	var events []Event
	var cur *Event

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimRight(line, "\r")

		switch {
		case line == beginEvent:
			cur = &Event{}
		case line == endEvent:
			if cur != nil && strings.Contains(cur.Description, yearTag) {
				events = append(events, *cur)
			}
			cur = nil
		case cur == nil:
			// Outside any event record.
		case strings.HasPrefix(line, "SUMMARY:"):
			cur.Summary = strings.TrimPrefix(line, "SUMMARY:")
		case strings.HasPrefix(line, "DESCRIPTION:"):
			cur.Description = strings.TrimPrefix(line, "DESCRIPTION:")
		case strings.HasPrefix(line, "DTSTART"):
			cur.RawStart = valueAfterColon(line)
		case strings.HasPrefix(line, "DTEND"):
			cur.RawEnd = valueAfterColon(line)
		}
	}

	return events
}

// valueAfterColon strips the property name and any parameters, e.g.
// "DTSTART;VALUE=DATE:20251006" -> "20251006".
func valueAfterColon(line string) string {
	if i := strings.IndexByte(line, ':'); i >= 0 {
		return line[i+1:]
	}
	return ""
}

// FormatDate converts an 8-digit YYYYMMDD token into YYYY-MM-DD. Anything
// that is not exactly 8 characters is returned unchanged; the caller
// treats a later parse failure as a dropped event, not an error.
func FormatDate(raw string) string {
	if len(raw) != 8 {
		return raw
	}
	return raw[:4] + "-" + raw[4:6] + "-" + raw[6:8]
}

// GroupByTerm classifies events into the three term buckets by substring
// match on the description. Events matching no term are dropped.
func GroupByTerm(events []Event) map[string][]Event {
	groups := make(map[string][]Event, len(termMarkers))

	for _, ev := range events {
		for _, name := range TermOrder {
			if strings.Contains(ev.Description, termMarkers[name]) {
				groups[name] = append(groups[name], ev)
				break
			}
		}
	}

	return groups
}

// WeekNumber extracts the "Wk <n>" week number from the event description.
func WeekNumber(ev Event) (int, bool) {
	m := weekPattern.FindStringSubmatch(ev.Description)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// ReduceTerm collapses one term's events into a single block: sorted by
// week number, the block runs from the lowest-week event's start date to
// the highest-week event's end date. Events without a week number or with
// unparseable dates are excluded. Returns false when nothing usable is
// left, in which case the term is simply omitted.
func ReduceTerm(events []Event) (term.Block, bool) {
	type weekEvent struct {
		week       int
		start, end time.Time
	}

	usable := make([]weekEvent, 0, len(events))
	for _, ev := range events {
		week, ok := WeekNumber(ev)
		if !ok {
			appLog.Debug("feed event has no week number, skipping", "summary", ev.Summary)
			continue
		}
		start, err := time.Parse("2006-01-02", FormatDate(ev.RawStart))
		if err != nil {
			appLog.Debug("feed event start date unparseable, skipping", "summary", ev.Summary, "raw", ev.RawStart)
			continue
		}
		end, err := time.Parse("2006-01-02", FormatDate(ev.RawEnd))
		if err != nil {
			appLog.Debug("feed event end date unparseable, skipping", "summary", ev.Summary, "raw", ev.RawEnd)
			continue
		}
		usable = append(usable, weekEvent{week: week, start: start, end: end})
	}

	if len(usable) == 0 {
		return term.Block{}, false
	}

	sort.Slice(usable, func(i, j int) bool { return usable[i].week < usable[j].week })

	first := usable[0]
	last := usable[len(usable)-1]

	return term.Block{
		Start:     first.start,
		End:       last.end,
		StartWeek: first.week,
		EndWeek:   last.week,
	}, true
}
