// Package brie implements an n-ary trie over fixed-arity tuples of
// unsigned 64-bit values, in the spirit of Soufflé's Brie: a flat
// array-backed layer sitting on top of a cache-conscious trie-based one,
// generalized into "arity-1 is a sparse bitmap, arity-N is a sparse
// array of arity-(N-1) sub-tries".
//
// Arity is a runtime constructor parameter rather than a compile-time
// template parameter: Go generics cannot express "recurse with N-1" at
// the type level without one hand-written type per arity, so Trie
// threads a depth field instead and dispatches leaf-vs-inner behavior on
// it, a recursive-enum-with-a-depth-parameter substitution for true
// variadic generics.
package brie

import (
	"github.com/TomTonic/dltree/sparsearray"
	"github.com/TomTonic/dltree/sparsebitmap"
)

// Trie is a set of fixed-arity uint64 tuples. The zero value is not
// usable; construct with New.
type Trie struct {
	depth    int // number of tuple components still to be consumed here
	bitmap   *sparsebitmap.Bitmap
	children *sparsearray.Array[*Trie]
}

// New returns an empty Trie storing tuples of the given arity (>= 1).
func New(arity int) *Trie {
	if arity < 1 {
		panic("brie: arity must be >= 1")
	}
	return newLevel(arity)
}

func newLevel(depth int) *Trie {
	t := &Trie{depth: depth}
	if depth == 1 {
		t.bitmap = sparsebitmap.New()
	} else {
		t.children = sparsearray.New[*Trie]()
	}
	return t
}

// Arity returns the tuple width this trie was constructed for.
func (t *Trie) Arity() int { return t.depth }

// Empty reports whether the trie stores no tuples.
func (t *Trie) Empty() bool {
	if t.depth == 1 {
		return t.bitmap.Size() == 0
	}
	for it := t.children.Begin(); !isArrayEnd(it); it = t.children.Next(it) {
		if !it.Value().Empty() {
			return false
		}
	}
	return true
}

// Size counts the stored tuples.
func (t *Trie) Size() int {
	if t.depth == 1 {
		return t.bitmap.Size()
	}
	total := 0
	for it := t.children.Begin(); !isArrayEnd(it); it = t.children.Next(it) {
		total += it.Value().Size()
	}
	return total
}

// Clear removes every stored tuple.
func (t *Trie) Clear() {
	if t.depth == 1 {
		t.bitmap.Clear()
		return
	}
	t.children.Clear()
}

func isArrayEnd(it sparsearray.Iterator[*Trie]) bool {
	return it == (sparsearray.Iterator[*Trie]{})
}

// Insert adds tuple, returning true iff it was newly inserted. h, if
// non-nil, accelerates repeated inserts sharing a first component.
func (t *Trie) Insert(tuple []uint64, h *Hint) bool {
	if len(tuple) != t.depth {
		panic("brie: tuple arity mismatch")
	}
	if t.depth == 1 {
		return t.bitmap.Set(tuple[0])
	}

	first := tuple[0]
	var child *Trie
	if h != nil && h.lastChild != nil && h.lastFirst == first {
		child = h.lastChild
	} else {
		child = t.children.Lookup(first)
		if child == nil {
			child = newLevel(t.depth - 1)
			*t.children.Get(first) = child
		}
	}

	var nested *Hint
	if h != nil {
		if h.nested == nil {
			h.nested = &Hint{}
		}
		nested = h.nested
	}
	inserted := child.Insert(tuple[1:], nested)
	if h != nil {
		h.lastFirst, h.lastChild = first, child
	}
	return inserted
}

// Contains reports whether tuple is stored.
func (t *Trie) Contains(tuple []uint64) bool {
	if len(tuple) != t.depth {
		panic("brie: tuple arity mismatch")
	}
	if t.depth == 1 {
		return t.bitmap.Test(tuple[0])
	}
	child := t.children.Lookup(tuple[0])
	if child == nil {
		return false
	}
	return child.Contains(tuple[1:])
}

// InsertAll inserts every tuple of other into t.
func (t *Trie) InsertAll(other *Trie) {
	for it := other.Begin(); !it.End(); it = other.Next(it) {
		t.Insert(it.Tuple(), nil)
	}
}
