package numeric

import (
	"math"
	"testing"
)

func TestBitCast32RoundTrip(t *testing.T) {
	f := float32(3.25)
	asU := BitCast32From[uint32](f)
	back := BitCast32From[float32](asU)
	if back != f {
		t.Fatalf("round trip mismatch: %v -> %v -> %v", f, asU, back)
	}
}

func TestBitCast64RoundTrip(t *testing.T) {
	f := math.Pi
	asU := BitCast64From[uint64](f)
	back := BitCast64From[float64](asU)
	if back != f {
		t.Fatalf("round trip mismatch: %v -> %v -> %v", f, asU, back)
	}
}

func TestOrderPreservingUint64MatchesNumericOrder(t *testing.T) {
	values := []int64{math.MinInt64, -100, -1, 0, 1, 100, math.MaxInt64}
	for i := 1; i < len(values); i++ {
		lo := OrderPreservingUint64(values[i-1])
		hi := OrderPreservingUint64(values[i])
		if lo >= hi {
			t.Fatalf("expected OrderPreservingUint64(%d) < OrderPreservingUint64(%d), got %d >= %d",
				values[i-1], values[i], lo, hi)
		}
	}
}

func TestOrderPreservingRoundTrip(t *testing.T) {
	for _, v := range []int64{math.MinInt64, -1, 0, 1, math.MaxInt64} {
		if got := OrderPreservingInt64(OrderPreservingUint64(v)); got != v {
			t.Fatalf("round trip mismatch for %d: got %d", v, got)
		}
	}
}
