// Package numeric holds the small, compile-time-selectable numeric
// vocabulary relation columns are built from: a bit-preserving cast between
// same-width signed/unsigned/float domains, and the single-letter column
// type tag used to dispatch per-column comparators at the relation boundary.
//
// The domain width (32-bit or 64-bit) is a plain choice rather than a build
// tag: BitCast32From/BitCast64From are parallel fixed-width casts, and callers pick
// whichever their relation schema needs column by column, so mixed-width
// relations are supported directly rather than forcing one domain width
// globally.
package numeric

import "math"

// BitCast32From reinterprets the bits of a 32-bit value as another 32-bit type,
// without any value conversion.
func BitCast32From[To, From ~int32 | ~uint32 | ~float32](v From) To {
	var u uint32
	switch x := any(v).(type) {
	case int32:
		u = uint32(x)
	case uint32:
		u = x
	case float32:
		u = math.Float32bits(x)
	default:
		panic("numeric: unsupported 32-bit type in BitCast32From")
	}
	var zero To
	switch any(zero).(type) {
	case int32:
		return any(int32(u)).(To)
	case uint32:
		return any(u).(To)
	case float32:
		return any(math.Float32frombits(u)).(To)
	default:
		panic("numeric: unsupported 32-bit type in BitCast32From")
	}
}

// BitCast64From reinterprets the bits of a 64-bit value as another 64-bit
// type, without any value conversion.
func BitCast64From[To, From ~int64 | ~uint64 | ~float64](v From) To {
	var u uint64
	switch x := any(v).(type) {
	case int64:
		u = uint64(x)
	case uint64:
		u = x
	case float64:
		u = math.Float64bits(x)
	default:
		panic("numeric: unsupported 64-bit type in BitCast64From")
	}
	var zero To
	switch any(zero).(type) {
	case int64:
		return any(int64(u)).(To)
	case uint64:
		return any(u).(To)
	case float64:
		return any(math.Float64frombits(u)).(To)
	default:
		panic("numeric: unsupported 64-bit type in BitCast64From")
	}
}

// OrderPreservingUint64 maps a signed 64-bit value to an unsigned 64-bit
// value such that lexicographic/numeric ordering of the result matches
// numeric ordering of the input: the classic sign-offset trick (add
// 1<<63 before encoding), so it can back ordered integer indices
// (sparsearray keys, B-tree keys over signed domains) directly as a
// plain uint64 rather than via a byte-slice intermediate.
func OrderPreservingUint64(v int64) uint64 {
	const offset = uint64(1) << 63
	return uint64(v) + offset
}

// OrderPreservingInt64 is the inverse of OrderPreservingUint64.
func OrderPreservingInt64(u uint64) int64 {
	const offset = uint64(1) << 63
	return int64(u - offset)
}
