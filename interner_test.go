// interner_test.go
//
// SPDX-License-Identifier: MIT
package sinter

import (
	"strconv"
	"testing"
)

func TestInternDeduplicates(t *testing.T) {
	in := NewInterner()
	a := in.Intern("repeat me")
	b := in.Intern("repeat me")
	if !a.Equal(b) {
		t.Fatal("interning equal content twice should return the same Handle")
	}
	if in.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", in.Len())
	}
}

func TestInternDistinctContent(t *testing.T) {
	in := NewInterner()
	in.Intern("one")
	in.Intern("two")
	in.Intern("three")
	if in.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", in.Len())
	}
}

func TestGetMissesUninternedString(t *testing.T) {
	in := NewInterner()
	if _, ok := in.Get("never interned"); ok {
		t.Fatal("Get should miss a string that was never interned")
	}
	h := in.Intern("now interned")
	got, ok := in.Get("now interned")
	if !ok || !got.Equal(h) {
		t.Fatal("Get should hit after Intern")
	}
}

func TestInternManyGrowsTable(t *testing.T) {
	in := NewInterner()
	const n = 2000
	handles := make([]Handle, n)
	for i := 0; i < n; i++ {
		handles[i] = in.Intern(string(rune('a'+(i%26))) + strconv.Itoa(i))
	}
	for i, h := range handles {
		want := string(rune('a'+(i%26))) + strconv.Itoa(i)
		if h.String() != want {
			t.Fatalf("handle %d content = %q, want %q", i, h.String(), want)
		}
	}
	if in.Len() != n {
		t.Fatalf("Len() = %d, want %d", in.Len(), n)
	}
}

func TestAllAndCollectSliceAgree(t *testing.T) {
	in := NewInterner()
	words := []string{"fee", "fi", "fo", "fum"}
	for _, w := range words {
		in.Intern(w)
	}

	viaAll := map[string]bool{}
	for h := range in.All() {
		viaAll[h.String()] = true
	}

	collected := in.CollectSlice()
	if len(collected) != len(words) {
		t.Fatalf("CollectSlice len = %d, want %d", len(collected), len(words))
	}
	for _, h := range collected {
		if !viaAll[h.String()] {
			t.Fatalf("CollectSlice produced %q not seen by All()", h.String())
		}
	}
}

func TestAllCanStopEarly(t *testing.T) {
	in := NewInterner()
	for _, w := range []string{"a", "b", "c", "d"} {
		in.Intern(w)
	}
	seen := 0
	for range in.All() {
		seen++
		if seen == 2 {
			break
		}
	}
	if seen != 2 {
		t.Fatalf("range should have stopped after 2 iterations, got %d", seen)
	}
}
