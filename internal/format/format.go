package format

import (
	"strings"
	"time"
)

// Engine renders a date through a template. Literal wraps arbitrary text so
// Render reproduces it verbatim instead of interpreting it as tokens.
type Engine interface {
	Render(t time.Time, template string) string
	Literal(s string) string
}

// TokenEngine is a minimal moment-style template renderer standing in for
// the host's date-formatting engine. Supported tokens, longest match first:
//
//	YYYY YY  year
//	MMMM MMM MM M  month (name, abbrev, zero-padded, plain)
//	DD D  day of month
//	dddd ddd  weekday (name, abbrev)
//
// Text inside [square brackets] is emitted verbatim.
type TokenEngine struct{}

type token struct {
	name   string
	layout string
}

// Ordered so that longer tokens shadow their prefixes.
var tokens = []token{
	{"YYYY", "2006"},
	{"dddd", "Monday"},
	{"MMMM", "January"},
	{"ddd", "Mon"},
	{"MMM", "Jan"},
	{"YY", "06"},
	{"MM", "01"},
	{"DD", "02"},
	{"M", "1"},
	{"D", "2"},
}

func (TokenEngine) Render(t time.Time, template string) string {
	var out strings.Builder

	for i := 0; i < len(template); {
		if template[i] == '[' {
			end := strings.IndexByte(template[i:], ']')
			if end < 0 {
				out.WriteString(template[i+1:])
				break
			}
			out.WriteString(template[i+1 : i+end])
			i += end + 1
			continue
		}

		matched := false
		for _, tok := range tokens {
			if strings.HasPrefix(template[i:], tok.name) {
				out.WriteString(t.Format(tok.layout))
				i += len(tok.name)
				matched = true
				break
			}
		}
		if !matched {
			out.WriteByte(template[i])
			i++
		}
	}

	return out.String()
}

func (TokenEngine) Literal(s string) string {
	return "[" + s + "]"
}
