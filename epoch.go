// epoch.go: per-goroutine epoch counters coordinating readers and the writer
//
// SPDX-License-Identifier: MIT
package sinter

import (
	"runtime"
	"sync/atomic"
	"weak"
)

const (
	epochInit = 2 // initial value of a freshly registered slot: even, idle
)

// epochSlot is one reader's epoch counter. Even means the holder is not
// currently inside a read critical section; odd means it may hold a
// reference into the front table. Go has no per-thread storage and no
// thread-exit hook visible to user code, so instead of one slot per OS
// thread (as the original design has), slots are pooled: a goroutine
// borrows one for the duration of a single read and returns it
// immediately after, relying on sync.Pool's per-P caching for the same
// affinity TLS would give.
type epochSlot struct {
	value atomic.Uint64
}

// newEpochPoolNew returns the sync.Pool.New func for in's slot pool. Each
// Interner owns its own pool (set up in NewInterner) so that slots are
// always registered against the same registry the owning Interner's
// writer drains against; sharing one pool across instances would let a
// writer on one Interner drain epochs that belong to readers of another.
func newEpochPoolNew(in *Interner) func() any {
	return func() any {
		s := &epochSlot{}
		s.value.Store(epochInit)
		in.epochs.register(in, s)
		return s
	}
}

func acquireEpoch(in *Interner) *epochSlot {
	return in.slotPool.Get().(*epochSlot)
}

func releaseEpoch(in *Interner, s *epochSlot) {
	in.slotPool.Put(s)
}

// epochRegistry tracks every epoch slot ever handed out, by weak
// reference only. register takes the write lock itself (it runs from
// sync.Pool's New, outside any critical section); every other method
// assumes the caller already holds the interner's write lock.
//
// A slot is "dead" once nothing strongly references it any longer: once
// sync.Pool drops it (which it may do on any GC) and no goroutine is
// mid-read holding it, it becomes collectible. Holding it with a strong
// pointer here, as an earlier revision did, pinned every slot for the
// process's whole lifetime and made a SetFinalizer on it fire only at
// process exit — reaping would never actually happen. A weak.Pointer
// lets the slot be collected normally; Value() reports nil once that's
// happened, which is this package's only "is it dead" signal.
type epochRegistry struct {
	slots []weak.Pointer[epochSlot]
}

// register prunes collected slots, then appends a weak reference to s.
// Mirrors the original's local_epoch_or_init: prune while already
// holding the lock, since that's the only time pruning is free.
func (r *epochRegistry) register(in *Interner, s *epochSlot) {
	in.mu.Lock()
	defer in.mu.Unlock()
	r.prune()
	r.slots = append(r.slots, weak.Make(s))
}

// prune drops every weak reference whose slot has already been
// collected, letting the backing slice shrink back down over time
// instead of growing for as long as the process runs.
func (r *epochRegistry) prune() {
	kept := r.slots[:0]
	for _, wp := range r.slots {
		if wp.Value() != nil {
			kept = append(kept, wp)
		}
	}
	r.slots = kept
}

// oddEpoch is a snapshot of one slot's value at the moment it was found
// odd, used to detect that it has since advanced. It holds a strong
// reference for the duration of the drain: the slot is necessarily still
// live (a goroutine is reading through it right now), so this doesn't
// reintroduce the permanent-pin problem register's weak storage avoids.
type oddEpoch struct {
	slot *epochSlot
	seen uint64
}

// snapshotOdd returns every currently-odd, still-live slot together with
// its value.
func (r *epochRegistry) snapshotOdd() []oddEpoch {
	var odd []oddEpoch
	for _, wp := range r.slots {
		s := wp.Value()
		if s == nil {
			continue
		}
		if v := s.value.Load(); v%2 == 1 {
			odd = append(odd, oddEpoch{slot: s, seen: v})
		}
	}
	return odd
}

// drain spins (then yields) until every slot in odd has advanced past the
// value it held at snapshot time. Unlike the original design, it always
// waits when odd is non-empty — the original's behavior of only entering
// the wait loop when the initial snapshot was itself empty is a defect,
// not a contract (spec Design Notes, Open Questions). spinThreshold is
// the owning Interner's drainSpinThreshold, read once by the caller
// rather than here, so this stays a pure function of its arguments.
func (r *epochRegistry) drain(odd []oddEpoch, spinThreshold int64) {
	if len(odd) == 0 {
		return
	}
	spins := 0
	for len(odd) > 0 {
		remaining := odd[:0]
		for _, o := range odd {
			if o.slot.value.Load() == o.seen {
				remaining = append(remaining, o)
			}
		}
		odd = remaining
		if len(odd) == 0 {
			return
		}
		spins++
		if spins > int(spinThreshold) {
			runtime.Gosched()
		}
	}
}
