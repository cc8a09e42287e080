package btree

import "github.com/TomTonic/dltree/xrange"

// Partition returns up to ~want disjoint ranges whose union is the tree's
// full iteration order, for feeding parallel consumers. It walks the
// root's first level of children; if the root has fewer than want children
// it descends recursively to subdivide further.
func (t *Tree[K]) Partition(want int) []xrange.Range[Iterator[K]] {
	begin, end := t.Begin(), t.End()
	if want <= 1 {
		return []xrange.Range[Iterator[K]]{xrange.NewRange(begin, end, t.Next)}
	}
	root := t.root.Load()
	if root == nil || root.isLeaf() {
		return []xrange.Range[Iterator[K]]{xrange.NewRange(begin, end, t.Next)}
	}

	var boundaries []Iterator[K]
	collectBoundaries(root, want, &boundaries)
	boundaries = append(boundaries, end)

	ranges := make([]xrange.Range[Iterator[K]], 0, len(boundaries))
	prev := begin
	for _, b := range boundaries {
		ranges = append(ranges, xrange.NewRange(prev, b, t.Next))
		prev = b
	}
	return ranges
}

// GetChunks is an alias of Partition.
func (t *Tree[K]) GetChunks(want int) []xrange.Range[Iterator[K]] {
	return t.Partition(want)
}

// collectBoundaries appends, in ascending order, an iterator marking the
// start of every piece past the first. When n doesn't have enough children
// to reach want pieces on its own, it recurses into each child to
// subdivide that child's span further.
func collectBoundaries[K any](n *node[K], want int, out *[]Iterator[K]) {
	numChildren := n.count + 1
	if numChildren >= want {
		for i := 1; i < numChildren; i++ {
			*out = append(*out, leftmostDescendant(n.children[i]))
		}
		return
	}
	subWant := want/numChildren + 1
	for i := 0; i < numChildren; i++ {
		if i > 0 {
			*out = append(*out, leftmostDescendant(n.children[i]))
		}
		if !n.children[i].isLeaf() {
			collectBoundaries(n.children[i], subWant, out)
		}
	}
}
