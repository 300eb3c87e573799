// arena_test.go
//
// SPDX-License-Identifier: MIT
package sinter

import "testing"

func TestArenaAllocateStable(t *testing.T) {
	var a arena
	first := a.allocate(10)
	for i := range first {
		first[i] = byte(i)
	}
	second := a.allocate(10)
	for i, b := range first {
		if b != byte(i) {
			t.Fatalf("first record corrupted by second allocate: got %v", first)
		}
	}
	if &second[0] == &first[0] {
		t.Fatal("distinct allocations must not alias")
	}
}

func TestArenaGrowsAcrossPages(t *testing.T) {
	var a arena
	recordLen := 100
	n := (pageBaseCapacity / recordLen) + 5 // force at least one new page
	records := make([][]byte, 0, n)
	for i := 0; i < n; i++ {
		records = append(records, a.allocate(recordLen))
	}
	for i, r := range records {
		if len(r) != recordLen {
			t.Fatalf("record %d has len %d, want %d", i, len(r), recordLen)
		}
	}

	pages := 0
	a.Pages(func([]byte) bool {
		pages++
		return true
	})
	if pages < 2 {
		t.Fatalf("expected allocate to have spilled into a second page, got %d pages", pages)
	}
}

func TestPageSizeRounding(t *testing.T) {
	cases := []struct {
		need int
		want int
	}{
		{0, pageBaseCapacity},
		{1, pageBaseCapacity},
		{pageBaseCapacity, pageBaseCapacity},
		{pageBaseCapacity + 1, 2 * pageBaseCapacity},
	}
	for _, c := range cases {
		if got := pageSize(c.need); got != c.want {
			t.Errorf("pageSize(%d) = %d, want %d", c.need, got, c.want)
		}
	}
}

func TestArenaAllocatePanicsOnDoubleExtend(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on arena protocol violation")
		}
	}()
	var a arena
	a.allocate(1)
	// Simulate a second writer racing the arena by manually pre-setting
	// tail.next, which allocate should never see under correct use.
	a.tail.next.Store(&page{mem: make([]byte, pageBaseCapacity)})
	a.cursor.Store(uint32(len(a.tail.mem)))
	a.allocate(pageBaseCapacity + 1)
}
