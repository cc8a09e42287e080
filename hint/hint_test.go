package hint

import "testing"

func eq(a, b int) bool { return a == b }

func TestAccessPromotesToFront(t *testing.T) {
	c := NewCache[int](2)
	c.Access(1, eq)
	c.Access(2, eq)
	if !c.Any(func(e int) bool { return e == 2 }) {
		t.Fatalf("expected 2 to be present")
	}
	c.Access(1, eq) // promote 1 back to front, evicting nothing (still 2 entries)
	if len(c.entries) != 2 {
		t.Fatalf("expected capacity to stay at 2, got %d", len(c.entries))
	}
	if c.entries[0] != 1 {
		t.Fatalf("expected 1 at the front after re-access, got %d", c.entries[0])
	}
}

func TestAccessEvictsLeastRecentlyUsed(t *testing.T) {
	c := NewCache[int](1)
	c.Access(1, eq)
	c.Access(2, eq)
	if c.Any(func(e int) bool { return e == 1 }) {
		t.Fatalf("expected 1 to have been evicted from a capacity-1 cache")
	}
	if !c.Any(func(e int) bool { return e == 2 }) {
		t.Fatalf("expected 2 to be present")
	}
}

func TestAnyMissOnEmptyCache(t *testing.T) {
	c := NewCache[int](1)
	if c.Any(func(e int) bool { return true }) {
		t.Fatalf("expected miss on empty cache")
	}
	hits, misses := c.Stats()
	if hits != 0 || misses != 1 {
		t.Fatalf("expected 0 hits/1 miss, got %d/%d", hits, misses)
	}
}

func TestClearEmptiesCache(t *testing.T) {
	c := NewCache[int](2)
	c.Access(1, eq)
	c.Clear(0)
	if c.Any(func(e int) bool { return true }) {
		t.Fatalf("expected no entries after Clear")
	}
}

func TestZeroValueCacheDefaultsToCapacityOne(t *testing.T) {
	var c Cache[int]
	c.Access(1, eq)
	c.Access(2, eq)
	if c.Any(func(e int) bool { return e == 1 }) {
		t.Fatalf("expected zero-value Cache to behave as capacity 1")
	}
}
