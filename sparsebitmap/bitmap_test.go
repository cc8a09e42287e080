package sparsebitmap

import "testing"

func TestSetTestClear(t *testing.T) {
	b := New()
	if !b.Set(5) {
		t.Fatalf("expected first Set to report newly inserted")
	}
	if b.Set(5) {
		t.Fatalf("expected second Set of the same value to report false")
	}
	if !b.Test(5) {
		t.Fatalf("expected Test(5) to be true")
	}
	if b.Test(6) {
		t.Fatalf("expected Test(6) to be false")
	}
	b.Clear()
	if b.Test(5) {
		t.Fatalf("expected Test(5) to be false after Clear")
	}
}

func TestSizeAcrossWords(t *testing.T) {
	b := New()
	values := []uint64{0, 1, 63, 64, 65, 200, 1 << 20}
	for _, v := range values {
		b.Set(v)
	}
	if got := b.Size(); got != len(values) {
		t.Fatalf("expected size %d, got %d", len(values), got)
	}
}

func TestIterationOrderAndResidual(t *testing.T) {
	b := New()
	values := []uint64{3, 1, 64, 2, 130, 129}
	for _, v := range values {
		b.Set(v)
	}
	var got []uint64
	for it := b.Begin(); !it.End(); it = b.Next(it) {
		got = append(got, it.Value())
	}
	if len(got) != len(values) {
		t.Fatalf("expected %d values, got %d", len(values), len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i-1] >= got[i] {
			t.Fatalf("expected strictly increasing order, got %v", got)
		}
	}
}

func TestLowerUpperBound(t *testing.T) {
	b := New()
	b.Set(10)
	b.Set(70)
	if it := b.LowerBound(10); it.End() || it.Value() != 10 {
		t.Fatalf("expected LowerBound(10) to hit 10")
	}
	if it := b.LowerBound(11); it.End() || it.Value() != 70 {
		t.Fatalf("expected LowerBound(11) to skip to 70")
	}
	if it := b.UpperBound(10); it.End() || it.Value() != 70 {
		t.Fatalf("expected UpperBound(10) to land on 70")
	}
	if it := b.UpperBound(70); !it.End() {
		t.Fatalf("expected UpperBound(70) to be End()")
	}
}

func TestFind(t *testing.T) {
	b := New()
	b.Set(42)
	if it := b.Find(42); it.End() || it.Value() != 42 {
		t.Fatalf("expected Find(42) to locate 42")
	}
	if it := b.Find(43); !it.End() {
		t.Fatalf("expected Find(43) to be End()")
	}
}

func TestAddAll(t *testing.T) {
	a, b := New(), New()
	a.Set(1)
	b.Set(2)
	b.Set(1)
	a.AddAll(b)
	if !a.Test(1) || !a.Test(2) {
		t.Fatalf("expected union of both sets")
	}
	if got := a.Size(); got != 2 {
		t.Fatalf("expected size 2, got %d", got)
	}
}
