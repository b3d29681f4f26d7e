package term

import (
	"sync"
	"time"
)

// Resolver owns the active block list and serves label lookups against it.
// There is a single writer (the refresh path) and many readers; Replace
// swaps the list wholesale so readers never observe a partial update.
type Resolver struct {
	mu     sync.RWMutex
	blocks []Block
}

// NewResolver creates a Resolver serving the given initial blocks.
func NewResolver(blocks []Block) *Resolver {
	r := &Resolver{}
	r.Replace(blocks)
	return r
}

// Resolve returns the display label for date against the active blocks.
func (r *Resolver) Resolve(date time.Time) string {
	r.mu.RLock()
	blocks := r.blocks
	r.mu.RUnlock()
	return Resolve(date, blocks)
}

// Replace installs a new block list, replacing the previous one entirely.
func (r *Resolver) Replace(blocks []Block) {
	copied := make([]Block, len(blocks))
	copy(copied, blocks)

	r.mu.Lock()
	r.blocks = copied
	r.mu.Unlock()
}

// Blocks returns a copy of the active block list.
func (r *Resolver) Blocks() []Block {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Block, len(r.blocks))
	copy(out, r.blocks)
	return out
}
