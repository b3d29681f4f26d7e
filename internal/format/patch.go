package format

import (
	"strings"
	"time"
)

// WeekToken is the template token replaced with the resolved week label.
const WeekToken = "LUW"

// WeekPatch decorates an Engine so that templates containing the week
// token render the resolved label for the date being formatted. The patch
// state lives on this instance, not on the engine: Apply and Remove are
// idempotent, and with the patch removed Format delegates to the engine
// untouched.
type WeekPatch struct {
	engine  Engine
	label   func(time.Time) string
	applied bool
}

// NewWeekPatch creates an unapplied patch over engine. label resolves the
// week label for a date (typically Resolver.Resolve).
func NewWeekPatch(engine Engine, label func(time.Time) string) *WeekPatch {
	return &WeekPatch{engine: engine, label: label}
}

// Apply activates the substitution. Applying twice is a no-op.
func (p *WeekPatch) Apply() {
	p.applied = true
}

// Remove deactivates the substitution, restoring the engine's original
// behavior exactly. Removing twice is a no-op.
func (p *WeekPatch) Remove() {
	p.applied = false
}

// Applied reports whether the substitution is active.
func (p *WeekPatch) Applied() bool {
	return p.applied
}

// Format renders t through the template. While applied, every occurrence
// of the week token is replaced with the resolved label wrapped as a
// literal, so the label text is never re-interpreted as format tokens.
// Templates without the token render identically either way.
func (p *WeekPatch) Format(t time.Time, template string) string {
	if p.applied && strings.Contains(template, WeekToken) {
		template = strings.ReplaceAll(template, WeekToken, p.engine.Literal(p.label(t)))
	}
	return p.engine.Render(t, template)
}
