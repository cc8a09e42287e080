// Package relation implements the relation table facade: a thin wrapper
// around this module's ordered-set and trie containers that adds the
// per-column type vocabulary and provenance-aware tuple equality a
// Datalog-style relation needs on top of raw tuple storage.
package relation

import (
	"github.com/TomTonic/dltree/brie"
	"github.com/TomTonic/dltree/btreedel"
	"github.com/TomTonic/dltree/numeric"
)

// Tuple is a fixed-arity row: primary columns followed by auxiliary
// (provenance) columns, all stored as raw 64-bit cells per numeric's
// bitcast convention.
type Tuple []uint64

// Table is a relation: a set of tuples sharing one schema (column type
// tags plus an auxiliary-column count for provenance annotations).
// A zero-arity relation holds at most the single nullary tuple, tracked
// as a bare presence flag. Arity-1 relations are backed by a
// btreedel.Tree (no trie overhead buys anything for a single column);
// arity > 1 relations are backed by a brie.Trie.
type Table struct {
	types          []numeric.ColumnType
	auxArity       int
	provenanceLive bool
	nullaryFact    bool
	unary          *btreedel.Tree[uint64]
	nary           *brie.Trie
}

// NewTable constructs an empty relation over the given primary column
// types, with auxArity additional provenance columns appended to every
// stored tuple.
func NewTable(types []numeric.ColumnType, auxArity int) *Table {
	t := &Table{types: append([]numeric.ColumnType(nil), types...), auxArity: auxArity}
	switch arity := len(types) + auxArity; {
	case arity == 0:
		// nullaryFact alone suffices.
	case arity == 1:
		t.unary = btreedel.New(btreedel.Options[uint64]{
			Less:  func(a, b uint64) bool { return a < b },
			IsSet: true,
		})
	default:
		t.nary = brie.New(arity)
	}
	return t
}

// Arity returns the number of primary columns.
func (t *Table) Arity() int { return len(t.types) }

// AuxArity returns the number of trailing provenance columns.
func (t *Table) AuxArity() int { return t.auxArity }

// ColumnType returns the type tag of primary column i.
func (t *Table) ColumnType(i int) numeric.ColumnType { return t.types[i] }

// SetProvenanceActive controls whether auxiliary columns participate in
// tuple equality (Insert/Contains dedup). Off by default: two tuples
// differing only in provenance annotations are the same fact.
func (t *Table) SetProvenanceActive(active bool) { t.provenanceLive = active }

// storageKey builds the full-arity key the underlying container indexes
// on: the primary columns verbatim, and the auxiliary columns verbatim
// only when provenance is active. Zeroing (rather than truncating) the
// auxiliary tail when provenance is inactive keeps the key's length equal
// to the container's fixed arity while still making tuples that differ
// only in provenance annotations collide to the same stored key.
func (t *Table) storageKey(tuple Tuple) Tuple {
	total := len(t.types) + t.auxArity
	key := make(Tuple, total)
	copy(key, tuple[:len(t.types)])
	if t.provenanceLive {
		copy(key[len(t.types):], tuple[len(t.types):total])
	}
	return key
}

// Size returns the number of stored tuples.
func (t *Table) Size() int {
	switch {
	case t.unary != nil:
		return t.unary.Size()
	case t.nary != nil:
		return t.nary.Size()
	case t.nullaryFact:
		return 1
	default:
		return 0
	}
}

// Insert adds tuple, returning true iff it was newly inserted. Auxiliary
// columns are zeroed out of the stored key (not the comparison, the key
// itself) when provenance is inactive, so tuples differing only in
// provenance annotations dedup to the same fact.
func (t *Table) Insert(tuple Tuple) bool {
	key := t.storageKey(tuple)
	switch {
	case t.unary != nil:
		return t.unary.Insert(key[0])
	case t.nary != nil:
		return t.nary.Insert(key, nil)
	default:
		inserted := !t.nullaryFact
		t.nullaryFact = true
		return inserted
	}
}

// Contains reports whether tuple is stored, under the same provenance-
// aware key rule Insert uses.
func (t *Table) Contains(tuple Tuple) bool {
	key := t.storageKey(tuple)
	switch {
	case t.unary != nil:
		return t.unary.Contains(key[0])
	case t.nary != nil:
		return t.nary.Contains(key)
	default:
		return t.nullaryFact
	}
}

// Iter calls yield for every stored tuple in ascending order, stopping
// early if yield returns false.
func (t *Table) Iter(yield func(Tuple) bool) {
	switch {
	case t.unary != nil:
		for it := t.unary.Begin(); it != t.unary.End(); it = t.unary.Next(it) {
			if !yield(Tuple{it.Key()}) {
				return
			}
		}
	case t.nary != nil:
		for it := t.nary.Begin(); !it.End(); it = t.nary.Next(it) {
			if !yield(Tuple(it.Tuple())) {
				return
			}
		}
	case t.nullaryFact:
		yield(Tuple{})
	}
}
