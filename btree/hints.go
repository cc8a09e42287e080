package btree

import "github.com/TomTonic/dltree/hint"

// Hints bundles the per-operation-kind hint caches a caller can thread
// across nearby calls on the same Tree to exploit temporal locality
// (successive calls that target the same leaf or a neighboring one). The
// zero value is ready to use; a *Hints[K] is owned by its caller and must
// not be shared across goroutines without external synchronization, same
// as any other mutable iterator-like state.
type Hints[K any] struct {
	find       hintCache[K]
	insert     hintCache[K]
	lowerBound hintCache[K]
	upperBound hintCache[K]
}

// hintCache wraps a hint.Cache of recently touched nodes for one operation
// kind, together with the covers test that decides whether a cached node
// can serve a key without a fresh root-to-leaf descent.
type hintCache[K any] struct {
	cache hint.Cache[*node[K]]
}

// access records n as the most recently touched node for this operation
// kind.
func (h *hintCache[K]) access(n *node[K]) {
	h.cache.Access(n, func(a, b *node[K]) bool { return a == b })
}

// tryCovers returns a cached node whose key range covers k under less, or
// nil on a hint miss. Each candidate is read under an optimistic lease: the
// covers test and the lease validation both have to agree before the node
// is handed back, so a concurrent split that invalidates the node's range
// between the two checks is caught instead of silently returning a stale
// node.
func (h *hintCache[K]) tryCovers(k K, less func(a, b K) bool) *node[K] {
	var found *node[K]
	h.cache.Any(func(n *node[K]) bool {
		lease := n.lk.StartRead()
		ok := coversClosed(n, k, less)
		if ok && !n.lk.Validate(lease) {
			ok = false
		}
		if ok {
			found = n
		}
		return ok
	})
	return found
}

// tryCoversOpen is tryCovers for operations (insert duplicate-detection on a
// multiset) where the boundary keys of n are ambiguous: they may also be
// held by a neighboring sibling, so only the strictly-open interior of n's
// range is certain to be served without a fresh descent.
func (h *hintCache[K]) tryCoversOpen(k K, less func(a, b K) bool) *node[K] {
	var found *node[K]
	h.cache.Any(func(n *node[K]) bool {
		lease := n.lk.StartRead()
		ok := coversOpen(n, k, less)
		if ok && !n.lk.Validate(lease) {
			ok = false
		}
		if ok {
			found = n
		}
		return ok
	})
	return found
}

// coversClosed reports whether k falls within n's closed key range
// [keys[0], keys[count-1]].
func coversClosed[K any](n *node[K], k K, less func(a, b K) bool) bool {
	if n.count == 0 {
		return false
	}
	first, last := n.keys[0], n.keys[n.count-1]
	return !less(k, first) && !less(last, k)
}

// coversOpen reports whether k falls strictly inside n's key range
// (first, last), excluding the boundary keys a neighboring sibling might
// also hold.
func coversOpen[K any](n *node[K], k K, less func(a, b K) bool) bool {
	if n.count == 0 {
		return false
	}
	first, last := n.keys[0], n.keys[n.count-1]
	return less(first, k) && less(k, last)
}
