// switch.go: the front/back dual-table switch and its writer protocol
//
// SPDX-License-Identifier: MIT
package sinter

import (
	"bytes"
	"encoding/binary"
	"sync/atomic"
)

// dualTable holds the two hash tables the interner alternates between:
// front, published to lock-free readers, and back, exclusively mutated by
// the writer. pending caches the most recently inserted handle so its
// peer-table insert can be deferred to the next writer instead of paying
// for a second reader drain per insertion.
//
// front is read by any goroutine under the epoch protocol; back and
// pending are touched only by the writer, which holds the interner's
// write lock.
type dualTable struct {
	front   atomic.Pointer[table]
	back    *table
	pending *Handle
}

// lookupLocked searches front directly, without the epoch dance lookup
// uses. It is for the writer's own recheck step only: the caller must
// already hold the interner's write lock, which rules out any concurrent
// writer racing this read, so there's nothing for an epoch slot to
// coordinate against. Going through lookup here instead would risk the
// writer blocking on its own write lock a second time, since acquiring an
// epoch slot for the very first time on a goroutine registers it under
// that same lock.
func (d *dualTable) lookupLocked(hash uint64, s []byte) (Handle, bool, int) {
	t := d.front.Load()
	h, ok := t.find(hash, s)
	return h, ok, t.len()
}

// lookup performs the lock-free reader search against front: hash match
// then byte equality. It returns the table's length alongside the result
// so the writer can use it as the "did back change under me" check in its
// recheck step.
//
// The read is bracketed by an epoch slot going odd then even, which is
// what lets a concurrent writer's drain (step 3 of insert) know it's
// safe to reuse the table this call is reading from.
func (d *dualTable) lookup(in *Interner, hash uint64, s []byte) (Handle, bool, int) {
	slot := acquireEpoch(in)
	defer releaseEpoch(in, slot)

	entering := slot.value.Add(1) // even -> odd: read in progress
	t := d.front.Load()
	h, ok := t.find(hash, s)
	n := t.len()
	slot.value.Store(entering + 1) // odd -> even: read complete

	return h, ok, n
}

// withFront runs fn against a stable view of front, held odd for fn's
// entire duration so a concurrent writer's drain waits for fn to return
// before reusing the table fn is reading. Used by iteration and
// snapshot-style reads (All, CollectSlice), which, unlike lookup, can't
// bracket the epoch around a single table.find call.
func (d *dualTable) withFront(in *Interner, fn func(*table)) {
	slot := acquireEpoch(in)
	defer releaseEpoch(in, slot)

	entering := slot.value.Add(1)
	fn(d.front.Load())
	slot.value.Store(entering + 1)
}

// insert runs the full writer insertion protocol (spec §4.C, steps 1-7)
// for (hash, s), given that a prior lock-free lookup (at frontLenAtLookup)
// didn't find it. Callers must hold the interner's write lock. It returns
// the handle for s, whether newly allocated or found by the recheck.
func (d *dualTable) insert(in *Interner, hash uint64, s []byte, frontLenAtLookup int) Handle {
	// 1. Recheck: another writer may have inserted s while we waited for
	// the lock. Check the pending slot, then back -- but only bother with
	// back if it looks like it grew since our lock-free lookup observed
	// front, which is what its length tells us.
	if d.pending != nil {
		p := *d.pending
		if p.Hash() == hash && bytes.Equal(p.Bytes(), s) {
			return p
		}
	}
	pendingCount := 0
	if d.pending != nil {
		pendingCount = 1
	}
	if d.back.len()+pendingCount > frontLenAtLookup {
		if h, ok := d.back.find(hash, s); ok {
			return h
		}
	}

	// 2. Lazy-init back.
	if d.back == nil {
		d.back = newTable(1)
	}

	// 3. Drain: wait for every reader that might still hold a reference
	// into the table about to become back (the current front) to finish.
	odd := in.epochs.snapshotOdd()
	in.epochs.drain(odd, in.drainSpinThreshold.Load())
	in.epochs.prune()
	in.metricsCollector().ObserveDrain(len(odd))

	// Capacity before steps 4 and 5, so a grow caused by either insert is
	// reported.
	prevCap := d.back.capacity()

	// 4. Flush the deferred peer-table insert from the previous writer.
	if d.pending != nil {
		d.back = d.back.insert(d.pending.Hash(), *d.pending)
		d.pending = nil
	}

	// 5. Allocate the record and build its handle. The cached hash prefix
	// is stored in host-endian order per the documented record layout
	// (spec.md §3, §6): NativeEndian is exactly that, and matches the
	// read side in Handle.Hash().
	rec := in.arena.allocate(hashPrefixSize + len(s) + 1)
	binary.NativeEndian.PutUint64(rec[:hashPrefixSize], hash)
	copy(rec[hashPrefixSize:hashPrefixSize+len(s)], s)
	rec[hashPrefixSize+len(s)] = 0
	h := Handle{ptr: recordPointer(rec[hashPrefixSize:]), len: len(s)}
	d.back = d.back.insert(hash, h)
	if newCap := d.back.capacity(); newCap != prevCap {
		in.metricsCollector().ObserveGrow(newCap)
	}

	// 6. Cache it so the next writer flushes it into what is now front.
	d.pending = &h

	// 7. Swap: publish back as the new front; the old front becomes the
	// new back (readers may still be observing it, which is exactly what
	// the next writer's drain, at step 3, waits out).
	oldFront := d.front.Swap(d.back)
	d.back = oldFront

	return h
}
