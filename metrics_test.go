// metrics_test.go
//
// SPDX-License-Identifier: MIT
package sinter

import (
	"testing"
	"time"
)

func TestNoOpMetricsDoesNothing(t *testing.T) {
	var m NoOpMetrics
	m.ObserveLookup(time.Millisecond, true)
	m.ObserveDrain(3)
	m.ObserveGrow(64)
	// nothing to assert; this is a no-op collector, so simply not
	// panicking is the whole contract.
}

func TestBasicMetricsCountsHitsAndMisses(t *testing.T) {
	m := NewBasicMetrics()
	m.ObserveLookup(time.Microsecond, true)
	m.ObserveLookup(time.Microsecond, true)
	m.ObserveLookup(time.Microsecond, false)

	snap := m.Snapshot()
	if snap.Hits != 2 || snap.Misses != 1 {
		t.Fatalf("snapshot = %+v, want Hits=2 Misses=1", snap)
	}
	if got, want := snap.HitRatio(), 2.0/3.0; got != want {
		t.Fatalf("HitRatio() = %v, want %v", got, want)
	}
}

func TestBasicMetricsDrainAndGrow(t *testing.T) {
	m := NewBasicMetrics()
	m.ObserveDrain(4)
	m.ObserveDrain(0)
	m.ObserveGrow(128)

	snap := m.Snapshot()
	if snap.Drains != 2 {
		t.Fatalf("Drains = %d, want 2", snap.Drains)
	}
	if snap.ReadersWaitedOn != 4 {
		t.Fatalf("ReadersWaitedOn = %d, want 4", snap.ReadersWaitedOn)
	}
	if snap.Grows != 1 {
		t.Fatalf("Grows = %d, want 1", snap.Grows)
	}
}

func TestHitRatioZeroLookups(t *testing.T) {
	var snap MetricsSnapshot
	if snap.HitRatio() != 0 {
		t.Fatal("HitRatio with no lookups should be 0")
	}
}

func TestInternerWithMetrics(t *testing.T) {
	m := NewBasicMetrics()
	in := NewInterner(WithMetrics(m))

	in.Intern("first")
	in.Intern("first") // second call should be a hit

	snap := m.Snapshot()
	if snap.Misses != 1 || snap.Hits != 1 {
		t.Fatalf("snapshot = %+v, want Hits=1 Misses=1", snap)
	}
}
