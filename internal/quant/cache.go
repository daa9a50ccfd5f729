package quant

import (
	"sync"
	"sync/atomic"

	"github.com/deepteams/vp9quant/internal/qlookup"
)

// Cache lazily builds and publishes Tables per qindex for one DeltaQ.
//
// Entries are inserted once and never modified. Readers need no lock: a
// published pointer always refers to fully built, immutable tables.
type Cache struct {
	delta  DeltaQ
	tables [qlookup.QIndexRange]atomic.Pointer[Tables]
}

// NewCache returns an empty cache for the given plane offsets.
func NewCache(delta DeltaQ) *Cache {
	return &Cache{delta: delta}
}

// Delta returns the plane offsets the cache was built for.
func (c *Cache) Delta() DeltaQ { return c.delta }

// Get returns the tables for qindex, building them on first use. When two
// goroutines race on the same qindex both build, one wins the publish and
// both return the winner.
func (c *Cache) Get(qindex int) *Tables {
	q := qlookup.ClampQIndex(qindex)
	slot := &c.tables[q]
	if t := slot.Load(); t != nil {
		return t
	}
	t := BuildTables(q, c.delta)
	if slot.CompareAndSwap(nil, t) {
		return t
	}
	return slot.Load()
}

// Warm builds every qindex up front.
func (c *Cache) Warm() {
	for q := 0; q < qlookup.QIndexRange; q++ {
		c.Get(q)
	}
}

// Len returns the number of qindex values already built.
func (c *Cache) Len() int {
	n := 0
	for i := range c.tables {
		if c.tables[i].Load() != nil {
			n++
		}
	}
	return n
}

// shared holds one Cache per DeltaQ for the life of the process.
var shared sync.Map // DeltaQ -> *Cache

// SharedCache returns the process-wide cache for delta.
func SharedCache(delta DeltaQ) *Cache {
	if c, ok := shared.Load(delta); ok {
		return c.(*Cache)
	}
	c, _ := shared.LoadOrStore(delta, NewCache(delta))
	return c.(*Cache)
}
