// interner.go: the process-wide interner facade and its public API
//
// SPDX-License-Identifier: MIT
package sinter

import (
	"iter"
	"sync"
	"sync/atomic"
	"time"
)

// Interner is a concurrent string interner: Intern deduplicates byte
// sequences into Handles whose underlying bytes are immutable and
// address-stable for the process's lifetime. Reads (Get, All,
// CollectSlice) do not take the write lock, except when a read finds no
// free epoch slot in the pool: registering the new slot briefly takes
// the write lock. Writers (concurrent calls to Intern that both miss the
// table) serialize against each other.
//
// The zero value is not usable; construct one with NewInterner, or use
// the package-level functions (Intern, Get, All, CollectSlice), which
// operate on a shared process-wide instance.
type Interner struct {
	mu       sync.Mutex
	arena    arena
	tables   dualTable
	epochs   epochRegistry
	slotPool sync.Pool

	// drainSpinThreshold is the number of tight spins the writer attempts
	// while waiting for readers to drain before yielding the CPU with
	// runtime.Gosched. It lives on the Interner, not as a package
	// global, for the same reason epochs/slotPool do: a shared knob
	// would let one Interner's hot-reloaded configuration (hotreload.go)
	// silently retune every other Interner's drain timing.
	drainSpinThreshold atomic.Int64

	logger  atomic.Pointer[loggerBox]
	metrics atomic.Pointer[metricsBox]
}

// loggerBox and metricsBox exist because atomic.Pointer needs a concrete
// element type; boxing the interface lets Logger/MetricsCollector be
// swapped (by WithLogger/WithMetrics, or a hot reload) without a data
// race against the lock-free read path, which loads these on every call.
type loggerBox struct{ l Logger }
type metricsBox struct{ m MetricsCollector }

func (in *Interner) log() Logger                        { return in.logger.Load().l }
func (in *Interner) metricsCollector() MetricsCollector { return in.metrics.Load().m }

func (in *Interner) setLogger(l Logger)            { in.logger.Store(&loggerBox{l}) }
func (in *Interner) setMetrics(m MetricsCollector)  { in.metrics.Store(&metricsBox{m}) }

// NewInterner constructs an independent interner. Most programs should
// use the package-level functions instead, which share a single
// process-wide instance the way the rest of this package's API implies;
// NewInterner exists for tests and for callers that want isolated
// namespaces (e.g. one interner per unit test, to avoid cross-test
// pollution of a shared table).
func NewInterner(opts ...Option) *Interner {
	in := &Interner{}
	in.slotPool.New = newEpochPoolNew(in)
	in.drainSpinThreshold.Store(100)
	in.setLogger(NoOpLogger{})
	in.setMetrics(NoOpMetrics{})
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// Option configures an Interner constructed with NewInterner.
type Option func(*Interner)

// WithLogger sets the Logger an Interner reports diagnostic events to.
// The core intern/lookup path never logs by default (NoOpLogger);
// wiring one in is purely an observability add-on.
func WithLogger(l Logger) Option {
	return func(in *Interner) {
		if l != nil {
			in.setLogger(l)
		}
	}
}

// WithMetrics sets the MetricsCollector an Interner reports counters and
// timings to.
func WithMetrics(m MetricsCollector) Option {
	return func(in *Interner) {
		if m != nil {
			in.setMetrics(m)
		}
	}
}

// globalInterner backs the package-level Intern/Get/All/CollectSlice
// functions.
var globalInterner = NewInterner()

// Intern returns the Handle for s, allocating and caching a new record
// the first time s (by content) is seen. Concurrent calls with equal
// content always return Handles that compare ==.
func (in *Interner) Intern(s string) Handle {
	return in.intern([]byte(s))
}

// Get returns the Handle for s if it has already been interned, without
// allocating. The returned bool is false if s has never been passed to
// Intern (on this Interner) before.
func (in *Interner) Get(s string) (Handle, bool) {
	return in.get([]byte(s))
}

func (in *Interner) intern(s []byte) Handle {
	start := time.Now()
	hash := hashBytes(s)

	h, ok, frontLen := in.tables.lookup(in, hash, s)
	if ok {
		in.metricsCollector().ObserveLookup(time.Since(start), true)
		return h
	}

	h, wasHit := in.internSlow(hash, s, frontLen)
	in.metricsCollector().ObserveLookup(time.Since(start), wasHit)
	return h
}

// internSlow takes the write lock and runs the full writer protocol.
// Called only after a lock-free lookup against front has missed.
func (in *Interner) internSlow(hash uint64, s []byte, frontLenAtLookup int) (h Handle, wasHit bool) {
	in.mu.Lock()
	defer in.mu.Unlock()

	// The lock-free lookup above is necessarily racy: repeat it now that
	// back (which may have since become front) is visible under the lock,
	// before paying for a full insert. This recheck runs under the write
	// lock already, so it goes through lookupLocked rather than lookup:
	// no concurrent writer can race it, and lookup's epoch bookkeeping
	// would risk re-acquiring the same lock this goroutine already holds.
	if h, ok, _ := in.tables.lookupLocked(hash, s); ok {
		return h, true
	}

	h = in.tables.insert(in, hash, s, frontLenAtLookup)
	in.log().Debug("sinter: interned string", "len", len(s), "hash", hash)
	return h, false
}

func (in *Interner) get(s []byte) (Handle, bool) {
	hash := hashBytes(s)
	h, ok, _ := in.tables.lookup(in, hash, s)
	return h, ok
}

// All returns an iterator over every Handle currently interned, in
// unspecified order. Ranging over it holds a read epoch for the
// iteration's duration, the same protection a single lookup gets;
// holding onto it indefinitely (never finishing the range) would starve
// the writer's drain step.
func (in *Interner) All() iter.Seq[Handle] {
	return func(yield func(Handle) bool) {
		in.tables.withFront(in, func(t *table) {
			t.all(yield)
		})
	}
}

// CollectSlice returns every currently interned Handle as a slice. It is
// equivalent to collecting All() with slices.Collect, provided as a
// direct method for convenience and to mirror the original design's
// collect_interned_strings.
func (in *Interner) CollectSlice() []Handle {
	var out []Handle
	in.tables.withFront(in, func(t *table) {
		out = make([]Handle, 0, t.len())
		t.all(func(h Handle) bool {
			out = append(out, h)
			return true
		})
	})
	return out
}

// Len reports the number of strings currently interned.
func (in *Interner) Len() int {
	var n int
	in.tables.withFront(in, func(t *table) { n = t.len() })
	return n
}

// Intern interns s against the process-wide interner.
func Intern(s string) Handle { return globalInterner.Intern(s) }

// Get looks up s against the process-wide interner without interning it.
func Get(s string) (Handle, bool) { return globalInterner.Get(s) }

// All iterates every Handle interned against the process-wide interner.
func All() iter.Seq[Handle] { return globalInterner.All() }

// CollectSlice returns every Handle interned against the process-wide
// interner as a slice.
func CollectSlice() []Handle { return globalInterner.CollectSlice() }
