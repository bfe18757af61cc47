// Package dedupe tracks handled message ids so redelivered messages are
// processed at most once.
package dedupe

import (
	"context"
	"sync"
)

const defaultMaxSize = 50_000

// Deduper records seen ids.
type Deduper interface {
	// SeenAndRecord atomically checks if id was seen and records it if not.
	// Returns true if id was already seen, false if it was newly recorded.
	SeenAndRecord(ctx context.Context, id string) bool

	// Unrecord forgets id so a later delivery is handled again. Used when
	// handling failed after the id was recorded.
	Unrecord(ctx context.Context, id string)

	Size() int64
}

// inMemoryDeduper keeps at most maxSize ids and evicts the oldest first.
// A non-positive maxSize keeps every id.
type inMemoryDeduper struct {
	mu      sync.Mutex
	seen    map[string]struct{}
	order   []string // FIFO of recorded ids, oldest first
	maxSize int
}

// NewInMemoryDeduper creates a new in-memory deduper with configuration options.
func NewInMemoryDeduper(opts ...Option) Deduper {
	d := &inMemoryDeduper{maxSize: defaultMaxSize}
	for _, opt := range opts {
		opt(d)
	}
	d.seen = make(map[string]struct{})
	return d
}

func (d *inMemoryDeduper) SeenAndRecord(_ context.Context, id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.seen[id]; ok {
		return true
	}
	if d.maxSize > 0 {
		for len(d.seen) >= d.maxSize && len(d.order) > 0 {
			d.evictOldest()
		}
		d.order = append(d.order, id)
	}
	d.seen[id] = struct{}{}
	return false
}

func (d *inMemoryDeduper) Unrecord(_ context.Context, id string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.seen[id]; !ok {
		return
	}
	delete(d.seen, id)
	// the stale entry in order is skipped on eviction
}

// evictOldest drops the oldest id still recorded. Must be called with d.mu held.
func (d *inMemoryDeduper) evictOldest() {
	for len(d.order) > 0 {
		id := d.order[0]
		d.order[0] = ""
		d.order = d.order[1:]
		if _, ok := d.seen[id]; ok {
			delete(d.seen, id)
			return
		}
	}
}

func (d *inMemoryDeduper) Size() int64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return int64(len(d.seen))
}
