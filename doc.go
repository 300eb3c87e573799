// Package sinter provides a process-wide, thread-safe string interner.
//
// sinter maps arbitrary UTF-8 text onto small, stable Handles: two handles
// compare equal if and only if they were produced by interning the same
// byte sequence, and that comparison is a single pointer check. The bytes
// behind a Handle never move and are never freed for the remainder of the
// process.
//
// # Overview
//
//   - Lock-free reads: Get and the fast path of Intern take no lock once
//     they hold an epoch slot; obtaining a new slot (when the pool has
//     none free) registers it under the write lock. They're coordinated against concurrent writers with a per-goroutine
//     epoch counter (see epoch.go).
//   - Single-writer inserts: a new string is written into a bump-allocated
//     arena and published via an atomic front/back table swap, guarded by
//     one mutex so writers never race each other.
//   - No eviction: this is an arena for program-lifetime symbols, not a
//     cache. There is no Delete, no TTL, and no reclamation before process
//     exit.
//
// # Quick Start
//
//	a := sinter.Intern("hello, world")
//	b := sinter.Intern("hello, world")
//	a == b // true: pointer-identical
//
//	if h, ok := sinter.Get("hello, world"); ok {
//	    fmt.Println(h.String())
//	}
//
// SPDX-License-Identifier: MIT
package sinter
