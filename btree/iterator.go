package btree

// Iterator is a forward cursor into a Tree's strong-comparator order. The
// zero value is the end sentinel. Iterators are snapshots: any mutation to
// the tree invalidates every outstanding iterator over it.
type Iterator[K any] struct {
	n   *node[K]
	idx int
}

// Key returns the key the iterator currently points at. Calling Key on the
// end iterator panics, same as dereferencing an off-the-end iterator in any
// other language's container library.
func (it Iterator[K]) Key() K { return it.n.keys[it.idx] }

// Begin returns an iterator to the smallest stored key, or End() if the
// tree is empty.
func (t *Tree[K]) Begin() Iterator[K] {
	n := t.first.Load()
	if n == nil {
		return Iterator[K]{}
	}
	return Iterator[K]{n: n, idx: 0}
}

// End returns the past-the-end sentinel iterator.
func (t *Tree[K]) End() Iterator[K] { return Iterator[K]{} }

// Next advances cur by one position in strong-comparator order. Since keys
// live in both inner nodes and leaves, advancing out of an exhausted leaf
// walks up the parent chain to the next held separator key, and advancing
// past an inner-node key descends into the leftmost leaf of the subtree to
// its right.
func (t *Tree[K]) Next(cur Iterator[K]) Iterator[K] {
	if cur.n == nil {
		return cur
	}
	if cur.n.inner {
		return leftmostDescendant(cur.n.children[cur.idx+1])
	}
	if cur.idx+1 < cur.n.count {
		return Iterator[K]{n: cur.n, idx: cur.idx + 1}
	}
	child := cur.n
	p := child.parent
	for p != nil {
		if child.position < p.count {
			return Iterator[K]{n: p, idx: child.position}
		}
		child = p
		p = p.parent
	}
	return Iterator[K]{}
}

func leftmostDescendant[K any](n *node[K]) Iterator[K] {
	for n.inner {
		n = n.children[0]
	}
	return Iterator[K]{n: n, idx: 0}
}

// LowerBound returns an iterator to the smallest stored key not less than
// k, or End() if no such key exists.
func (t *Tree[K]) LowerBound(k K) Iterator[K] { return t.LowerBoundHint(k, nil) }

// LowerBoundHint is LowerBound, recording the result's node in an optional
// hint context. The hint is not consulted: every call descends from the
// root.
func (t *Tree[K]) LowerBoundHint(k K, h *Hints[K]) Iterator[K] {
	n := t.root.Load()
	var candidate Iterator[K]
	found := false
	for n != nil {
		idx := lowerBoundBy(n.keys[:n.count], k, t.less)
		if idx < n.count {
			candidate = Iterator[K]{n: n, idx: idx}
			found = true
		}
		if n.isLeaf() {
			break
		}
		n = n.children[idx]
	}
	if !found {
		return Iterator[K]{}
	}
	if h != nil {
		h.lowerBound.access(candidate.n)
	}
	return candidate
}

// UpperBound returns an iterator to the smallest stored key greater than k,
// or End() if no such key exists.
func (t *Tree[K]) UpperBound(k K) Iterator[K] { return t.UpperBoundHint(k, nil) }

// UpperBoundHint is UpperBound, recording the result's node in an optional
// hint context. The hint is not consulted: every call descends from the
// root.
func (t *Tree[K]) UpperBoundHint(k K, h *Hints[K]) Iterator[K] {
	n := t.root.Load()
	var candidate Iterator[K]
	found := false
	for n != nil {
		idx := upperBoundBy(n.keys[:n.count], k, t.less)
		if idx < n.count {
			candidate = Iterator[K]{n: n, idx: idx}
			found = true
		}
		if n.isLeaf() {
			break
		}
		n = n.children[idx]
	}
	if !found {
		return Iterator[K]{}
	}
	if h != nil {
		h.upperBound.access(candidate.n)
	}
	return candidate
}

// Find returns an iterator to k under the strong comparator, or End() if
// absent.
func (t *Tree[K]) Find(k K) Iterator[K] { return t.FindHint(k, nil) }

// FindHint is Find, accelerated by an optional hint context.
func (t *Tree[K]) FindHint(k K, h *Hints[K]) Iterator[K] {
	n, ok := t.findNode(k, h)
	if !ok {
		return Iterator[K]{}
	}
	idx, _ := exactMatch(n, k, t.less)
	return Iterator[K]{n: n, idx: idx}
}
