// handle_test.go
//
// SPDX-License-Identifier: MIT
package sinter

import "testing"

func TestHandleZero(t *testing.T) {
	var h Handle
	if !h.IsZero() {
		t.Fatal("zero Handle should report IsZero")
	}
	if got := NewInterner().Intern("x"); got.IsZero() {
		t.Fatal("Intern should never return the zero Handle")
	}
}

func TestHandleRoundTrip(t *testing.T) {
	in := NewInterner()
	h := in.Intern("hello, world!")
	if h.IsZero() {
		t.Fatal("interned Handle should not be zero")
	}
	if got := h.String(); got != "hello, world!" {
		t.Fatalf("String() = %q, want %q", got, "hello, world!")
	}
	if h.Len() != len("hello, world!") {
		t.Fatalf("Len() = %d, want %d", h.Len(), len("hello, world!"))
	}
}

func TestHandleCString(t *testing.T) {
	in := NewInterner()
	h := in.Intern("abc")
	cs := h.CString()
	if len(cs) != 4 || cs[3] != 0 {
		t.Fatalf("CString() = %v, want 4 bytes ending in NUL", cs)
	}
	if string(cs[:3]) != "abc" {
		t.Fatalf("CString() content = %q, want %q", cs[:3], "abc")
	}
}

func TestHandleHashMatchesContent(t *testing.T) {
	in := NewInterner()
	h := in.Intern("the quick brown fox")
	if h.Hash() != hashBytes([]byte("the quick brown fox")) {
		t.Fatal("Handle.Hash() should equal hashBytes of its own content")
	}
}

func TestHandleEqualIsIdentity(t *testing.T) {
	in := NewInterner()
	a := in.Intern("shared")
	b := in.Intern("shared")
	if !a.Equal(b) {
		t.Fatal("interning the same content twice should yield equal Handles")
	}
	c := in.Intern("different")
	if a.Equal(c) {
		t.Fatal("interning different content should yield unequal Handles")
	}
}

func TestHandleLess(t *testing.T) {
	in := NewInterner()
	a := in.Intern("aaa")
	b := in.Intern("bbb")
	if !a.Less(b) || b.Less(a) {
		t.Fatal("Less should order Handles lexicographically by content")
	}
}

func TestHandleGoString(t *testing.T) {
	in := NewInterner()
	h := in.Intern("gostring")
	want := `sinter.Handle("gostring")`
	if got := h.GoString(); got != want {
		t.Fatalf("GoString() = %q, want %q", got, want)
	}
}
