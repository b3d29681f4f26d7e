package feed

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	appLog "termweek/internal/log"
	"termweek/internal/term"
)

const defaultFetchTimeout = 10 * time.Second

// Ingestor fetches the remote term-dates feed and reduces it into term
// blocks for one target academic year.
type Ingestor struct {
	client  *http.Client
	url     string
	yearTag string
}

// NewIngestor creates an Ingestor for the given feed URL and year tag.
// A non-positive timeout falls back to the package default.
func NewIngestor(url, yearTag string, timeout time.Duration) *Ingestor {
	if timeout <= 0 {
		timeout = defaultFetchTimeout
	}
	return &Ingestor{
		client:  &http.Client{Timeout: timeout},
		url:     url,
		yearTag: yearTag,
	}
}

// FetchAndBuildBlocks runs one fetch -> parse -> group -> reduce pass and
// returns the ordered non-empty term blocks. A transport error or non-200
// status is returned as an error; a feed that yields no usable terms
// returns an empty list and nil error, which callers treat as a no-op
// refresh.
func (ing *Ingestor) FetchAndBuildBlocks(ctx context.Context) ([]term.Block, error) {
	raw, err := ing.fetch(ctx)
	if err != nil {
		return nil, err
	}
	return ing.BuildBlocks(raw), nil
}

// BuildBlocks derives term blocks from already-fetched feed text.
func (ing *Ingestor) BuildBlocks(raw string) []term.Block {
	events := ParseEvents(raw, ing.yearTag)
	groups := GroupByTerm(events)

	blocks := make([]term.Block, 0, len(TermOrder))
	for _, name := range TermOrder {
		b, ok := ReduceTerm(groups[name])
		if !ok {
			continue
		}
		appLog.Debug("term block derived",
			"term", name,
			"start", b.Start.Format("2006-01-02"),
			"end", b.End.Format("2006-01-02"),
			"start_week", b.StartWeek,
			"end_week", b.EndWeek,
		)
		blocks = append(blocks, b)
	}

	appLog.Info("feed reduced", "event_count", len(events), "block_count", len(blocks))
	return blocks
}

func (ing *Ingestor) fetch(ctx context.Context) (string, error) {
	if ing.url == "" {
		return "", errors.New("feed URL is empty")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ing.url, nil)
	if err != nil {
		return "", err
	}

	appLog.Info("feed fetch start", "url", ing.url)

	resp, err := ing.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", errors.New(resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	appLog.Info("feed fetch success", "url", ing.url, "bytes", len(body))
	return string(body), nil
}
