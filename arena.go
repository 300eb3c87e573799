// arena.go: bump-allocated page arena backing every interned record
//
// SPDX-License-Identifier: MIT
package sinter

import (
	"sync/atomic"
	"unsafe"
)

// pageBaseCapacity is C0 from the sizing policy: every page's capacity is
// a multiple of this many bytes.
const pageBaseCapacity = 1024

// page is one immutable, fixed-size chunk of the arena. Bytes before the
// arena's cursor (at allocation time) are published and immutable for the
// rest of the process; bytes after are writer-private scratch until the
// cursor advances past them. next is read and written only by the writer,
// which holds the interner's write lock whenever it touches the page list.
type page struct {
	next atomic.Pointer[page]
	mem  []byte
}

// arena is a singly-linked list of pages plus a bump cursor into the tail
// page. Every method here is writer-only: callers must hold the
// interner's write lock.
type arena struct {
	head   atomic.Pointer[page]
	tail   *page
	cursor atomic.Uint32 // bytes used in the tail page
}

// pageSize rounds need up to the next multiple of pageBaseCapacity, with a
// floor of one full base page.
func pageSize(need int) int {
	n := ((need + pageBaseCapacity - 1) / pageBaseCapacity) * pageBaseCapacity
	if n == 0 {
		n = pageBaseCapacity
	}
	return n
}

// allocate returns a writable slice of length recordLen inside the tail
// page, appending a new page first if there isn't enough room. The
// returned slice's address is stable for the rest of the process: once the
// caller writes into it and the cursor advances past it, the bytes are
// immutable and never relocated.
func (a *arena) allocate(recordLen int) []byte {
	if a.tail == nil {
		p := &page{mem: make([]byte, pageSize(recordLen))}
		a.head.Store(p)
		a.tail = p
		a.cursor.Store(0)
	}

	used := int(a.cursor.Load())
	if len(a.tail.mem)-used < recordLen {
		if a.tail.next.Load() != nil {
			// the writer never re-extends a page it has already extended;
			// seeing one here means two writers raced the arena, which
			// should be impossible under the write lock.
			panic("sinter: arena page already extended")
		}
		newCap := len(a.tail.mem) * 2
		if need := pageSize(recordLen); need > newCap {
			newCap = need
		}
		p := &page{mem: make([]byte, newCap)}
		a.tail.next.Store(p)
		a.tail = p
		a.cursor.Store(0)
		used = 0
	}

	rec := a.tail.mem[used : used+recordLen : used+recordLen]
	a.cursor.Store(uint32(used + recordLen))
	return rec
}

// Pages ranges over every page's backing bytes, oldest first. It exists
// for debugging and tests and is never called on the hot path.
func (a *arena) Pages(yield func([]byte) bool) {
	for p := a.head.Load(); p != nil; p = p.next.Load() {
		if !yield(p.mem) {
			return
		}
	}
}

// recordPointer returns a pointer to the first byte of rec, which must be
// a slice previously returned by allocate.
func recordPointer(rec []byte) unsafe.Pointer {
	return unsafe.Pointer(&rec[0])
}
