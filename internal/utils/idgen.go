package utils

import (
	"sync"
	"time"
)

// IDGenerator hands out record ids.
type IDGenerator interface {
	NextID() int64
}

// MonotonicIDs derives ids from the Unix millisecond clock. When the clock has
// not advanced past the last id handed out, the next id is last+1, so ids are
// unique and strictly increasing.
type MonotonicIDs struct {
	mu   sync.Mutex
	now  func() time.Time
	last int64
}

// NewMonotonicIDs creates a generator reading now. A nil now uses time.Now.
func NewMonotonicIDs(now func() time.Time) *MonotonicIDs {
	if now == nil {
		now = time.Now
	}
	return &MonotonicIDs{now: now}
}

func (g *MonotonicIDs) NextID() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := g.now().UnixMilli()
	if id <= g.last {
		id = g.last + 1
	}
	g.last = id
	return id
}

// Observe records an id already in use so it is never handed out again.
func (g *MonotonicIDs) Observe(id int64) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if id > g.last {
		g.last = id
	}
}
