// metrics.go: the optional metrics-collection hook and a basic built-in collector
//
// SPDX-License-Identifier: MIT
package sinter

import (
	"sync/atomic"
	"time"

	timecache "github.com/agilira/go-timecache"
)

// MetricsCollector receives counters and timings from interner
// operations. Implementations must be safe for concurrent use.
// Every Intern call reports to the installed collector, including on the
// lock-free fast branch; with the default NoOpMetrics those calls do
// nothing.
type MetricsCollector interface {
	// ObserveLookup is called once per Intern, reporting how long the
	// call took and whether s was already interned (hit: found by the
	// lock-free lookup of front, or by the writer's recheck once it holds
	// the write lock) or had to be newly allocated (miss).
	ObserveLookup(latency time.Duration, hit bool)

	// ObserveDrain is called once per writer insertion, reporting how
	// many reader epochs had to be waited out.
	ObserveDrain(waitedFor int)

	// ObserveGrow is called whenever a table doubles in capacity.
	ObserveGrow(newCapacity int)
}

// NoOpMetrics discards every observation. It is the default
// MetricsCollector, chosen so the core path pays nothing unless a real
// collector is wired in with WithMetrics.
type NoOpMetrics struct{}

func (NoOpMetrics) ObserveLookup(time.Duration, bool) {}
func (NoOpMetrics) ObserveDrain(int)                  {}
func (NoOpMetrics) ObserveGrow(int)                   {}

// BasicMetrics is a small built-in MetricsCollector that accumulates
// counters in memory, for programs that want visibility without pulling
// in a full monitoring stack. It stamps each ObserveLookup with
// go-timecache's cached clock, reported as a Snapshot's LastObservedAt;
// the counters themselves are plain atomics.
type BasicMetrics struct {
	hits    atomic.Uint64
	misses  atomic.Uint64
	drains  atomic.Uint64
	waited  atomic.Uint64
	grows   atomic.Uint64
	lastObs atomic.Int64
}

// NewBasicMetrics returns a ready-to-use BasicMetrics collector.
func NewBasicMetrics() *BasicMetrics {
	return &BasicMetrics{}
}

func (m *BasicMetrics) ObserveLookup(latency time.Duration, hit bool) {
	if hit {
		m.hits.Add(1)
	} else {
		m.misses.Add(1)
	}
	m.lastObs.Store(timecache.CachedTimeNano())
}

func (m *BasicMetrics) ObserveDrain(waitedFor int) {
	m.drains.Add(1)
	m.waited.Add(uint64(waitedFor))
}

func (m *BasicMetrics) ObserveGrow(int) {
	m.grows.Add(1)
}

// MetricsSnapshot is a point-in-time copy of a BasicMetrics collector's
// counters.
type MetricsSnapshot struct {
	Hits            uint64
	Misses          uint64
	Drains          uint64
	ReadersWaitedOn uint64
	Grows           uint64
	LastObservedAt  time.Time
}

// HitRatio returns the fraction of lookups that found their string
// already interned (see ObserveLookup), in [0, 1]. It returns 0 if no
// lookups have been observed.
func (s MetricsSnapshot) HitRatio() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// Snapshot returns the current counter values.
func (m *BasicMetrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		Hits:            m.hits.Load(),
		Misses:          m.misses.Load(),
		Drains:          m.drains.Load(),
		ReadersWaitedOn: m.waited.Load(),
		Grows:           m.grows.Load(),
		LastObservedAt:  time.Unix(0, m.lastObs.Load()),
	}
}
