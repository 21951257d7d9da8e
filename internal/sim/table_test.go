package sim

import "testing"

func TestTable_AppendAndOrder(t *testing.T) {
	tb := &table{}
	for day := 1; day <= 50; day++ {
		tb.appendN(day, 3)
	}

	if tb.Len() != 150 {
		t.Fatalf("Len() = %d, want 150", tb.Len())
	}
	for i := 1; i < tb.Len(); i++ {
		if tb.At(i-1) > tb.At(i) {
			t.Fatalf("order violated at %d: %d > %d", i, tb.At(i-1), tb.At(i))
		}
	}
	if front, _ := tb.front(); front != 1 {
		t.Errorf("front() = %d, want 1", front)
	}
	if back, _ := tb.back(); back != 50 {
		t.Errorf("back() = %d, want 50", back)
	}
}

func TestTable_Empty(t *testing.T) {
	tb := &table{}
	if _, ok := tb.front(); ok {
		t.Error("front() on empty table reported ok")
	}
	if _, ok := tb.back(); ok {
		t.Error("back() on empty table reported ok")
	}
	if got := tb.countOlderThan(10); got != 0 {
		t.Errorf("countOlderThan(10) = %d, want 0", got)
	}
	if got := tb.newerThan(10).Len(); got != 0 {
		t.Errorf("newerThan(10).Len() = %d, want 0", got)
	}
}

func TestTable_CountOlderThan(t *testing.T) {
	tb := &table{}
	for _, day := range []int{1, 1, 2, 5, 5, 5, 9} {
		tb.push(day)
	}

	tests := []struct {
		cutoff int
		want   int
	}{
		{0, 0},
		{1, 0},  // day 1 is not strictly older than cutoff 1
		{2, 2},
		{5, 3},
		{6, 6},
		{10, 7},
	}
	for _, tt := range tests {
		if got := tb.countOlderThan(tt.cutoff); got != tt.want {
			t.Errorf("countOlderThan(%d) = %d, want %d", tt.cutoff, got, tt.want)
		}
	}
}

func TestTable_NewerThan(t *testing.T) {
	tb := &table{}
	for _, day := range []int{1, 2, 2, 3, 7} {
		tb.push(day)
	}

	kept := tb.newerThan(2)
	if kept.Len() != 2 {
		t.Fatalf("newerThan(2).Len() = %d, want 2", kept.Len())
	}
	if kept.At(0) != 3 || kept.At(1) != 7 {
		t.Errorf("newerThan(2) = [%d %d], want [3 7]", kept.At(0), kept.At(1))
	}

	// Source table is untouched.
	if tb.Len() != 5 {
		t.Errorf("source Len() = %d, want 5", tb.Len())
	}

	// A filtered table keeps accepting appends.
	kept.push(8)
	if kept.Len() != 3 || kept.At(2) != 8 {
		t.Errorf("push after filter: Len=%d last=%d, want 3 and 8", kept.Len(), kept.At(kept.Len()-1))
	}
}

func TestTable_GrowPreservesOrderAcrossWrap(t *testing.T) {
	// Force several growth cycles from a filtered (offset-free) start.
	tb := &table{}
	for day := 1; day <= 1000; day++ {
		tb.push(day)
	}
	kept := tb.newerThan(900)
	for day := 1001; day <= 1200; day++ {
		kept.push(day)
	}

	if kept.Len() != 300 {
		t.Fatalf("Len() = %d, want 300", kept.Len())
	}
	for i := 0; i < kept.Len(); i++ {
		if want := 901 + i; kept.At(i) != want {
			t.Fatalf("At(%d) = %d, want %d", i, kept.At(i), want)
		}
	}
}
