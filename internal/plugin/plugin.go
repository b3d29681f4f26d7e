package plugin

import (
	"context"
	"sync"
	"time"

	"termweek/internal/config"
	"termweek/internal/feed"
	"termweek/internal/format"
	appLog "termweek/internal/log"
	"termweek/internal/term"
)

// RefreshResult reports how initialization sourced its term blocks. Every
// variant is a valid outcome: the resolver serves lookups regardless, the
// result only tells the host how fresh the data is.
type RefreshResult int

const (
	// RefreshFresh means feed-derived blocks replaced the defaults.
	RefreshFresh RefreshResult = iota
	// RefreshFetchFailed means the fetch errored; current blocks retained.
	RefreshFetchFailed
	// RefreshNoTerms means the fetch succeeded but yielded no usable
	// blocks; current blocks retained.
	RefreshNoTerms
	// RefreshDiscarded means teardown happened while the fetch was in
	// flight; its result was thrown away.
	RefreshDiscarded
)

func (r RefreshResult) String() string {
	switch r {
	case RefreshFresh:
		return "fresh"
	case RefreshFetchFailed:
		return "fetch-failed"
	case RefreshNoTerms:
		return "no-terms"
	case RefreshDiscarded:
		return "discarded"
	default:
		return "unknown"
	}
}

// Plugin is the hosting component: it owns the week resolver, the feed
// ingestor, and the date-format patch, and exposes the lifecycle hooks the
// host drives.
type Plugin struct {
	resolver *term.Resolver
	ingestor *feed.Ingestor
	patch    *format.WeekPatch

	mu     sync.Mutex
	active bool
}

// New creates a Plugin serving the built-in default blocks. The format
// patch is constructed but not applied until Init.
func New(cfg *config.Config) *Plugin {
	p := &Plugin{
		resolver: term.NewResolver(term.DefaultBlocks()),
		ingestor: feed.NewIngestor(cfg.FeedURL, cfg.YearTag,
			time.Duration(cfg.FetchTimeoutSeconds)*time.Second),
	}
	p.patch = format.NewWeekPatch(format.TokenEngine{}, p.resolver.Resolve)
	return p
}

// Init applies the format patch and runs one feed refresh. It never fails
// from the host's perspective: every recoverable condition is logged and
// reported through the returned RefreshResult while the resolver keeps
// serving whichever blocks are current.
func (p *Plugin) Init(ctx context.Context) RefreshResult {
	p.mu.Lock()
	p.active = true
	p.mu.Unlock()

	p.patch.Apply()

	blocks, err := p.ingestor.FetchAndBuildBlocks(ctx)
	if err != nil {
		appLog.Error("term feed refresh failed, keeping current blocks", err)
		return RefreshFetchFailed
	}
	if len(blocks) == 0 {
		appLog.Info("term feed yielded no usable blocks, keeping current blocks")
		return RefreshNoTerms
	}

	// The swap is conditional on the plugin still being active: a fetch
	// that completes after Close must not write state.
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.active {
		appLog.Info("term feed result discarded after teardown")
		return RefreshDiscarded
	}

	p.resolver.Replace(blocks)
	appLog.Info("term blocks refreshed from feed", "block_count", len(blocks))
	return RefreshFresh
}

// Close reverses Init: the format patch is removed and any in-flight
// refresh result is discarded. Safe to call more than once.
func (p *Plugin) Close() {
	p.mu.Lock()
	p.active = false
	p.mu.Unlock()

	p.patch.Remove()
}

// Resolve returns the week label for date against the active blocks.
func (p *Plugin) Resolve(date time.Time) string {
	return p.resolver.Resolve(date)
}

// Format renders date through the template, substituting the week token
// while the plugin is initialized.
func (p *Plugin) Format(date time.Time, template string) string {
	return p.patch.Format(date, template)
}
