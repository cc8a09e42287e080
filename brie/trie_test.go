package brie

import (
	"reflect"
	"testing"
)

func TestInsertContains(t *testing.T) {
	tr := New(3)
	if !tr.Insert([]uint64{1, 2, 3}, nil) {
		t.Fatalf("expected first insert to be new")
	}
	if tr.Insert([]uint64{1, 2, 3}, nil) {
		t.Fatalf("expected duplicate insert to report false")
	}
	if !tr.Contains([]uint64{1, 2, 3}) {
		t.Fatalf("expected Contains to find the inserted tuple")
	}
	if tr.Contains([]uint64{1, 2, 4}) {
		t.Fatalf("expected Contains to reject a non-stored tuple")
	}
}

func TestSizeEmptyClear(t *testing.T) {
	tr := New(2)
	if !tr.Empty() {
		t.Fatalf("expected fresh trie to be empty")
	}
	tr.Insert([]uint64{1, 1}, nil)
	tr.Insert([]uint64{1, 2}, nil)
	tr.Insert([]uint64{2, 1}, nil)
	if got := tr.Size(); got != 3 {
		t.Fatalf("expected size 3, got %d", got)
	}
	tr.Clear()
	if !tr.Empty() || tr.Size() != 0 {
		t.Fatalf("expected Clear to empty the trie")
	}
}

func TestIterationOrderLexicographic(t *testing.T) {
	tr := New(3)
	tuples := [][]uint64{{2, 1, 1}, {1, 3, 5}, {1, 2, 4}, {1, 2, 3}}
	for _, tup := range tuples {
		tr.Insert(tup, nil)
	}
	want := [][]uint64{{1, 2, 3}, {1, 2, 4}, {1, 3, 5}, {2, 1, 1}}
	var got [][]uint64
	for it := tr.Begin(); !it.End(); it = tr.Next(it) {
		got = append(got, it.Tuple())
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected lexicographic order %v, got %v", want, got)
	}
}

func TestGetBoundaries(t *testing.T) {
	tr := New(3)
	for _, tup := range [][]uint64{{1, 2, 3}, {1, 2, 4}, {1, 3, 5}, {2, 1, 1}} {
		tr.Insert(tup, nil)
	}

	r1 := tr.GetBoundaries(1, []uint64{1, 0, 0})
	var got1 [][]uint64
	for it := r1.Begin; it != r1.End; it = tr.Next(it) {
		got1 = append(got1, it.Tuple())
	}
	want1 := [][]uint64{{1, 2, 3}, {1, 2, 4}, {1, 3, 5}}
	if !reflect.DeepEqual(got1, want1) {
		t.Fatalf("getBoundaries<1>: expected %v, got %v", want1, got1)
	}

	r2 := tr.GetBoundaries(2, []uint64{1, 2, 0})
	var got2 [][]uint64
	for it := r2.Begin; it != r2.End; it = tr.Next(it) {
		got2 = append(got2, it.Tuple())
	}
	want2 := [][]uint64{{1, 2, 3}, {1, 2, 4}}
	if !reflect.DeepEqual(got2, want2) {
		t.Fatalf("getBoundaries<2>: expected %v, got %v", want2, got2)
	}

	r3 := tr.GetBoundaries(3, []uint64{1, 3, 5})
	var got3 [][]uint64
	for it := r3.Begin; it != r3.End; it = tr.Next(it) {
		got3 = append(got3, it.Tuple())
	}
	want3 := [][]uint64{{1, 3, 5}}
	if !reflect.DeepEqual(got3, want3) {
		t.Fatalf("getBoundaries<3>: expected %v, got %v", want3, got3)
	}
}

func TestLowerUpperBound(t *testing.T) {
	tr := New(2)
	tr.Insert([]uint64{1, 5}, nil)
	tr.Insert([]uint64{3, 1}, nil)

	if it := tr.LowerBound([]uint64{1, 5}); it.End() || !reflect.DeepEqual(it.Tuple(), []uint64{1, 5}) {
		t.Fatalf("expected exact LowerBound hit on (1,5)")
	}
	if it := tr.LowerBound([]uint64{1, 6}); it.End() || !reflect.DeepEqual(it.Tuple(), []uint64{3, 1}) {
		t.Fatalf("expected carry to (3,1), got %v", it.Tuple())
	}
	if it := tr.UpperBound([]uint64{1, 5}); it.End() || !reflect.DeepEqual(it.Tuple(), []uint64{3, 1}) {
		t.Fatalf("expected UpperBound((1,5)) to land on (3,1)")
	}
	if it := tr.UpperBound([]uint64{3, 1}); !it.End() {
		t.Fatalf("expected UpperBound((3,1)) to be End()")
	}
}

func TestInsertAll(t *testing.T) {
	a, b := New(2), New(2)
	a.Insert([]uint64{1, 1}, nil)
	b.Insert([]uint64{2, 2}, nil)
	b.Insert([]uint64{1, 1}, nil)
	a.InsertAll(b)
	if got := a.Size(); got != 2 {
		t.Fatalf("expected union size 2, got %d", got)
	}
}

func TestHintAcceleratesSharedPrefix(t *testing.T) {
	tr := New(3)
	var h Hint
	for i := uint64(0); i < 50; i++ {
		if !tr.Insert([]uint64{1, 2, i}, &h) {
			t.Fatalf("expected insert of (1,2,%d) to be new", i)
		}
	}
	if got := tr.Size(); got != 50 {
		t.Fatalf("expected size 50, got %d", got)
	}
}

func TestPartitionCoversWholeTrie(t *testing.T) {
	tr := New(2)
	for i := uint64(0); i < 200; i++ {
		tr.Insert([]uint64{i / 10, i % 10}, nil)
	}
	ranges := tr.Partition(4)
	total := 0
	for _, r := range ranges {
		for it := r.Begin; it != r.End; it = tr.Next(it) {
			total++
		}
	}
	if total != tr.Size() {
		t.Fatalf("expected partition to cover all %d tuples, got %d", tr.Size(), total)
	}
}
