package feed

import "time"

// IDGenerator hands out creation-time ids in milliseconds. When the clock has
// not advanced past the last id it returns last+1, so ids stay unique and
// strictly increasing even for items created in the same millisecond.
// It is not safe for concurrent use; Store serializes access.
type IDGenerator struct {
	now  func() time.Time
	last int64
}

// NewIDGenerator returns a generator reading the given clock.
func NewIDGenerator(now func() time.Time) *IDGenerator {
	if now == nil {
		now = time.Now
	}
	return &IDGenerator{now: now}
}

// Next returns a fresh id.
func (g *IDGenerator) Next() int64 {
	id := g.now().UnixMilli()
	if id <= g.last {
		id = g.last + 1
	}
	g.last = id
	return id
}

// Observe records an id issued elsewhere (e.g. a rehydrated snapshot) so
// later ids sort after it.
func (g *IDGenerator) Observe(id int64) {
	if id > g.last {
		g.last = id
	}
}
