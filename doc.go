// Package dltree ties together the ordered-set, trie, and relation-table
// building blocks that back a Datalog-style relation store.
//
// The heavy lifting lives in sibling packages: lock (optimistic R/W lock),
// hint (operation-hint cache), btree/btreedel (B-trees), sparsearray/
// sparsebitmap (level-compressed integer index), brie (n-ary tuple trie),
// numeric (bitcast + column tags), xrange (range/span/iterator plumbing),
// relation (relation table facade), and relio (serialization facade). This
// package only wires them into the Set/MultiSet/Trie constructors a client
// reaches for first.
package dltree

import (
	"github.com/TomTonic/dltree/brie"
	"github.com/TomTonic/dltree/btree"
	"github.com/TomTonic/dltree/btreedel"
)

// Set returns an insert-only, concurrency-ready ordered set of K, using the
// default Less-derived strong comparator and no weak comparator/updater.
func Set[K any](less func(a, b K) bool) *btree.Tree[K] {
	return btree.New(btree.Options[K]{Less: less, IsSet: true})
}

// MultiSet returns an insert-only, concurrency-ready ordered multiset of K.
func MultiSet[K any](less func(a, b K) bool) *btree.Tree[K] {
	return btree.New(btree.Options[K]{Less: less, IsSet: false})
}

// DeletableSet returns a deletion-capable ordered set of K.
func DeletableSet[K any](less func(a, b K) bool) *btreedel.Tree[K] {
	return btreedel.New(btreedel.Options[K]{Less: less, IsSet: true})
}

// DeletableMultiSet returns a deletion-capable ordered multiset of K.
func DeletableMultiSet[K any](less func(a, b K) bool) *btreedel.Tree[K] {
	return btreedel.New(btreedel.Options[K]{Less: less, IsSet: false})
}

// NewTrie returns an empty n-ary trie (Brie) of the given fixed arity
// storing tuples of uint64 components.
func NewTrie(arity int) *brie.Trie {
	return brie.New(arity)
}
