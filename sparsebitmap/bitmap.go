// Package sparsebitmap implements a set of uint64 values as a sparse array
// of 64-bit masks, generalizing the familiar fixed-width bitfield/presence-
// map pattern (a flat array of words tested via shift-and-mask) to an
// unbounded, lazily-materialized index space.
package sparsebitmap

import (
	"math/bits"
	"sync/atomic"
	"unsafe"

	"github.com/TomTonic/dltree/sparsearray"
)

// Bitmap is a set of uint64 values. The zero value is an empty, ready to
// use set.
type Bitmap struct {
	words sparsearray.Array[uint64]
}

// New returns an empty Bitmap.
func New() *Bitmap { return &Bitmap{} }

func split(i uint64) (word uint64, bit uint) {
	return i >> 6, uint(i & 63)
}

func join(word uint64, bit uint) uint64 {
	return word<<6 | uint64(bit)
}

// Set inserts i, returning true iff it was newly inserted. The mask update
// is a compare-and-swap retry loop rather than a plain OR, since the word
// cell may be shared with concurrent writers touching other bits of it.
func (b *Bitmap) Set(i uint64) bool {
	word, bit := split(i)
	cell := b.words.Get(word)
	addr := (*uint64)(unsafe.Pointer(cell))
	m := uint64(1) << bit
	for {
		old := atomic.LoadUint64(addr)
		if old&m != 0 {
			return false
		}
		if atomic.CompareAndSwapUint64(addr, old, old|m) {
			return true
		}
	}
}

// Test reports whether i is a member.
func (b *Bitmap) Test(i uint64) bool {
	word, bit := split(i)
	return b.words.Lookup(word)&(uint64(1)<<bit) != 0
}

// Clear empties the set.
func (b *Bitmap) Clear() { b.words.Clear() }

// Size returns the popcount across every stored mask.
func (b *Bitmap) Size() int {
	total := 0
	for it := b.words.Begin(); it != b.words.End(); it = b.words.Next(it) {
		total += bits.OnesCount64(it.Value())
	}
	return total
}

// AddAll inserts every member of other into b.
func (b *Bitmap) AddAll(other *Bitmap) {
	for it := other.Begin(); !it.End(); it = other.Next(it) {
		b.Set(it.Value())
	}
}

// Iterator walks the stored values in ascending order. It carries the
// enclosing sparse-array iterator plus the residual (unvisited) bits of
// the current mask, matching the composite-iterator shape the rest of
// this module's trie layers build on.
type Iterator struct {
	outer    sparsearray.Iterator[uint64]
	residual uint64
	value    uint64
	atEnd    bool
}

// End reports whether the iterator has no current value.
func (it Iterator) End() bool { return it.atEnd }

// Value returns the value the iterator currently points at.
func (it Iterator) Value() uint64 { return it.value }

// publish walks outer/residual forward until a set bit is found,
// stepping the outer sparse-array iterator and rehydrating the mask
// whenever the current word is exhausted.
func (b *Bitmap) publish(outer sparsearray.Iterator[uint64], residual uint64) Iterator {
	for {
		if residual != 0 {
			bit := uint(bits.TrailingZeros64(residual))
			residual &^= uint64(1) << bit
			return Iterator{outer: outer, residual: residual, value: join(outer.Index(), bit)}
		}
		next := b.words.Next(outer)
		if next == b.words.End() {
			return Iterator{atEnd: true}
		}
		outer = next
		residual = outer.Value()
	}
}

// Begin returns an iterator to the smallest member, or an end iterator if
// empty.
func (b *Bitmap) Begin() Iterator {
	outer := b.words.Begin()
	if outer == b.words.End() {
		return Iterator{atEnd: true}
	}
	return b.publish(outer, outer.Value())
}

// Next advances past cur.
func (b *Bitmap) Next(cur Iterator) Iterator {
	if cur.atEnd {
		return cur
	}
	return b.publish(cur.outer, cur.residual)
}

// Find returns an iterator to i, or an end iterator if i is absent.
func (b *Bitmap) Find(i uint64) Iterator {
	if !b.Test(i) {
		return Iterator{atEnd: true}
	}
	return b.LowerBound(i)
}

// LowerBound returns an iterator to the smallest member not less than i.
func (b *Bitmap) LowerBound(i uint64) Iterator {
	word, bit := split(i)
	outer := b.words.LowerBound(word)
	if outer == b.words.End() {
		return Iterator{atEnd: true}
	}
	residual := outer.Value()
	if outer.Index() == word {
		residual &^= uint64(1)<<bit - 1
	}
	return b.publish(outer, residual)
}

// UpperBound returns an iterator to the smallest member strictly greater
// than i.
func (b *Bitmap) UpperBound(i uint64) Iterator {
	if i == ^uint64(0) {
		return Iterator{atEnd: true}
	}
	return b.LowerBound(i + 1)
}
