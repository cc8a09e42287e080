package brie

import (
	"github.com/TomTonic/dltree/sparsearray"
	"github.com/TomTonic/dltree/sparsebitmap"
	"github.com/TomTonic/dltree/xrange"
)

// core is one level of a composite iterator: a leaf core wraps a sparse
// bitmap iterator, an inner core wraps a sparse-array iterator over child
// tries plus a reference to the nested core for the remaining dimensions.
type core interface {
	value() uint64
	end() bool
	advance() core
}

type leafCore struct {
	it sparsebitmap.Iterator
	bm *sparsebitmap.Bitmap
}

func (c leafCore) value() uint64 { return c.it.Value() }
func (c leafCore) end() bool     { return c.it.End() }
func (c leafCore) advance() core { return leafCore{it: c.bm.Next(c.it), bm: c.bm} }

type innerCore struct {
	it     sparsearray.Iterator[*Trie]
	arr    *sparsearray.Array[*Trie]
	nested core
}

func (c innerCore) value() uint64 { return c.it.Index() }
func (c innerCore) end() bool     { return isArrayEnd(c.it) }

func (c innerCore) advance() core {
	nested := c.nested.advance()
	if !nested.end() {
		return innerCore{it: c.it, arr: c.arr, nested: nested}
	}
	next := c.arr.Next(c.it)
	if isArrayEnd(next) {
		return innerCore{it: next, arr: c.arr, nested: nil}
	}
	return innerCore{it: next, arr: c.arr, nested: beginCore(next.Value())}
}

func beginCore(t *Trie) core {
	if t.depth == 1 {
		return leafCore{it: t.bitmap.Begin(), bm: t.bitmap}
	}
	it := t.children.Begin()
	if isArrayEnd(it) {
		return innerCore{it: it, arr: t.children, nested: nil}
	}
	return innerCore{it: it, arr: t.children, nested: beginCore(it.Value())}
}

func materialize(c core, depth int) []uint64 {
	tuple := make([]uint64, 0, depth)
	for {
		tuple = append(tuple, c.value())
		ic, ok := c.(innerCore)
		if !ok {
			return tuple
		}
		c = ic.nested
	}
}

// Iterator walks stored tuples in lexicographic order. The zero value is
// the end sentinel.
type Iterator struct {
	top   core
	depth int
	ended bool
}

// End reports whether the iterator has advanced past the last tuple.
func (it Iterator) End() bool { return it.ended }

// Tuple materializes the tuple the iterator currently points at.
func (it Iterator) Tuple() []uint64 { return materialize(it.top, it.depth) }

// Begin returns an iterator to the lexicographically smallest tuple, or
// End() if empty.
func (t *Trie) Begin() Iterator {
	c := beginCore(t)
	if c.end() {
		return Iterator{ended: true}
	}
	return Iterator{top: c, depth: t.depth}
}

// End returns the past-the-end sentinel.
func (t *Trie) End() Iterator { return Iterator{ended: true} }

// Next advances cur by one tuple, carrying from the innermost dimension
// upward when a sub-trie's iteration is exhausted.
func (t *Trie) Next(cur Iterator) Iterator {
	if cur.ended {
		return cur
	}
	nc := cur.top.advance()
	if nc.end() {
		return Iterator{ended: true}
	}
	return Iterator{top: nc, depth: cur.depth}
}

func findCore(t *Trie, tuple []uint64) (core, bool) {
	if t.depth == 1 {
		if !t.bitmap.Test(tuple[0]) {
			return nil, false
		}
		return leafCore{it: t.bitmap.Find(tuple[0]), bm: t.bitmap}, true
	}
	it := t.children.Find(tuple[0])
	if isArrayEnd(it) {
		return nil, false
	}
	nested, ok := findCore(it.Value(), tuple[1:])
	if !ok {
		return nil, false
	}
	return innerCore{it: it, arr: t.children, nested: nested}, true
}

// Find returns an iterator to tuple, or End() if absent.
func (t *Trie) Find(tuple []uint64) Iterator {
	c, ok := findCore(t, tuple)
	if !ok {
		return Iterator{ended: true}
	}
	return Iterator{top: c, depth: t.depth}
}

// lowerBoundCore implements the descend-with-carry algorithm: an exact
// first-component hit recurses on the tail; an overshoot jumps to the
// leftmost element of that sub-trie; a failed tail recursion increments
// the first component by one and retries (a lexicographic carry).
func lowerBoundCore(t *Trie, tuple []uint64) (core, bool) {
	if t.depth == 1 {
		it := t.bitmap.LowerBound(tuple[0])
		if it.End() {
			return nil, false
		}
		return leafCore{it: it, bm: t.bitmap}, true
	}
	first := tuple[0]
	carried := false
	for {
		sa := t.children.LowerBound(first)
		if sa == t.children.End() {
			return nil, false
		}
		if sa.Index() == first && !carried {
			nested, ok := lowerBoundCore(sa.Value(), tuple[1:])
			if ok {
				return innerCore{it: sa, arr: t.children, nested: nested}, true
			}
			if first == ^uint64(0) {
				return nil, false
			}
			first++
			carried = true
			continue
		}
		return innerCore{it: sa, arr: t.children, nested: beginCore(sa.Value())}, true
	}
}

// LowerBound returns an iterator to the lexicographically smallest stored
// tuple not less than tuple, or End() if none exists.
func (t *Trie) LowerBound(tuple []uint64) Iterator {
	c, ok := lowerBoundCore(t, tuple)
	if !ok {
		return Iterator{ended: true}
	}
	return Iterator{top: c, depth: t.depth}
}

// UpperBound returns an iterator to the lexicographically smallest stored
// tuple strictly greater than tuple: the lexicographic successor of
// tuple, found via LowerBound.
func (t *Trie) UpperBound(tuple []uint64) Iterator {
	succ := append([]uint64(nil), tuple...)
	for i := len(succ) - 1; i >= 0; i-- {
		if succ[i] != ^uint64(0) {
			succ[i]++
			return t.LowerBound(succ)
		}
		succ[i] = 0
	}
	return Iterator{ended: true}
}

func prefixBeginCore(t *Trie, prefix []uint64) (core, bool) {
	if len(prefix) == 0 {
		c := beginCore(t)
		if c.end() {
			return nil, false
		}
		return c, true
	}
	it := t.children.Find(prefix[0])
	if isArrayEnd(it) {
		return nil, false
	}
	nested, ok := prefixBeginCore(it.Value(), prefix[1:])
	if !ok {
		return nil, false
	}
	return innerCore{it: it, arr: t.children, nested: nested}, true
}

func prefixEndCore(t *Trie, prefix []uint64) (core, bool) {
	it := t.children.Find(prefix[0])
	if isArrayEnd(it) {
		return nil, false
	}
	if len(prefix) > 1 {
		nested, ok := prefixEndCore(it.Value(), prefix[1:])
		if ok {
			return innerCore{it: it, arr: t.children, nested: nested}, true
		}
	}
	next := t.children.Next(it)
	if isArrayEnd(next) {
		return nil, false
	}
	return innerCore{it: next, arr: t.children, nested: beginCore(next.Value())}, true
}

// GetBoundaries returns the range of stored tuples whose first k
// components equal tuple[:k]. k=0 yields the whole extent; k equal to
// the trie's arity yields the single matching tuple (or an empty range).
func (t *Trie) GetBoundaries(k int, tuple []uint64) xrange.Range[Iterator] {
	if k == 0 {
		return xrange.NewRange(t.Begin(), t.End(), t.Next)
	}
	if k == t.depth {
		it := t.Find(tuple[:k])
		if it.End() {
			return xrange.NewRange(t.End(), t.End(), t.Next)
		}
		return xrange.NewRange(it, t.Next(it), t.Next)
	}

	beginC, ok := prefixBeginCore(t, tuple[:k])
	if !ok {
		return xrange.NewRange(t.End(), t.End(), t.Next)
	}
	beginIt := Iterator{top: beginC, depth: t.depth}

	endIt := Iterator{ended: true}
	if endC, ok := prefixEndCore(t, tuple[:k]); ok {
		endIt = Iterator{top: endC, depth: t.depth}
	}
	return xrange.NewRange(beginIt, endIt, t.Next)
}
