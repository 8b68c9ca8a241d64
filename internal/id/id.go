package id

import (
	"fmt"
	"strconv"
	"sync"
	"time"
)

// Format returns a transaction ID: the Unix millisecond timestamp in decimal.
func Format(ms int64) string {
	return strconv.FormatInt(ms, 10)
}

// Parse converts a transaction ID back to its millisecond timestamp.
func Parse(id string) (int64, error) {
	ms, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid transaction ID %q: %w", id, err)
	}
	if ms < 0 {
		return 0, fmt.Errorf("invalid transaction ID %q: negative", id)
	}
	return ms, nil
}

// Generator issues strictly increasing time-derived IDs. Two calls inside the
// same millisecond, or a clock that steps back, still get distinct IDs.
type Generator struct {
	mu   sync.Mutex
	now  func() time.Time
	last int64
}

// NewGenerator returns a generator reading now; nil means time.Now.
func NewGenerator(now func() time.Time) *Generator {
	if now == nil {
		now = time.Now
	}
	return &Generator{now: now}
}

// Seed makes the next ID greater than every ID in existing. Unparseable
// IDs are ignored.
func (g *Generator) Seed(existing ...string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, s := range existing {
		if ms, err := Parse(s); err == nil && ms > g.last {
			g.last = ms
		}
	}
}

// Next returns the next ID.
func (g *Generator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	ms := g.now().UnixMilli()
	if ms <= g.last {
		ms = g.last + 1
	}
	g.last = ms
	return Format(ms)
}
