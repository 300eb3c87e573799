// handle.go: the stable, pointer-identified reference to an interned string
//
// SPDX-License-Identifier: MIT
package sinter

import (
	"encoding/binary"
	"fmt"
	"unsafe"
)

// hashPrefixSize is the width of the cached hash stored immediately before
// every handle's data, see the record layout in arena.go.
const hashPrefixSize = 8

// Handle is a small, copyable reference to an interned byte sequence.
//
// Two handles are == if and only if they were produced by interning the
// same byte sequence: the interner never allocates two distinct records
// for equal content, so pointer identity is sufficient for equality. The
// bytes a Handle refers to are immutable and address-stable for the rest
// of the process.
//
// The zero Handle is not valid; IsZero reports it.
type Handle struct {
	ptr unsafe.Pointer
	len int
}

// IsZero reports whether h is the zero Handle (never returned by Intern,
// nor by Get when it reports a hit; useful as a sentinel in
// caller-defined zero values).
func (h Handle) IsZero() bool {
	return h.ptr == nil
}

// Len returns the length of the interned byte sequence.
func (h Handle) Len() int {
	return h.len
}

// Bytes returns a zero-copy view of the interned bytes. The returned slice
// must not be mutated: doing so would violate the interner's immutability
// invariant for every other holder of this Handle.
func (h Handle) Bytes() []byte {
	if h.ptr == nil {
		return nil
	}
	return unsafe.Slice((*byte)(h.ptr), h.len)
}

// String returns a zero-copy view of the interned bytes as a string.
func (h Handle) String() string {
	if h.ptr == nil {
		return ""
	}
	return unsafe.String((*byte)(h.ptr), h.len)
}

// CString returns a zero-copy, NUL-terminated view of the interned bytes,
// suitable for passing to APIs expecting a C string. The trailing byte at
// offset Len() is always 0x00; this costs nothing beyond the slice bound
// because the arena always leaves room for it.
func (h Handle) CString() []byte {
	if h.ptr == nil {
		return nil
	}
	return unsafe.Slice((*byte)(h.ptr), h.len+1)
}

// Hash returns the hash of the interned bytes, cached next to the data at
// allocation time. This is always equal to hashBytes(h.Bytes()) but costs
// only a single memory read. The prefix is stored in host-endian order
// (spec.md §3, §6), so it's read back with encoding/binary.NativeEndian,
// matching the write side in switch.go's insert.
func (h Handle) Hash() uint64 {
	p := unsafe.Add(h.ptr, -hashPrefixSize)
	b := unsafe.Slice((*byte)(p), hashPrefixSize)
	return binary.NativeEndian.Uint64(b)
}

// Equal reports whether h and o refer to the same interned string. It is
// exactly h == o; it exists for readability and for use as a value in
// generic code that wants a named method instead of an operator.
func (h Handle) Equal(o Handle) bool {
	return h == o
}

// Less reports whether h sorts before o, by lexicographic byte comparison
// of the underlying content (not by pointer value, which is unspecified
// and would make sort order nondeterministic across runs).
func (h Handle) Less(o Handle) bool {
	return h.String() < o.String()
}

// GoString implements fmt.GoStringer.
func (h Handle) GoString() string {
	return fmt.Sprintf("sinter.Handle(%q)", h.String())
}
