package brie

import "github.com/TomTonic/dltree/xrange"

// Partition splits the trie's iteration into up to chunks disjoint,
// concatenation-preserving ranges by walking every stored tuple: a new
// range starts after every size()/chunks-th tuple. Breaks fall on tuple
// counts, not on top-level sparse array sibling boundaries, so tuples
// sharing a first component may be split across two ranges.
func (t *Trie) Partition(chunks int) []xrange.Range[Iterator] {
	if chunks < 1 {
		chunks = 1
	}
	total := t.Size()
	if total == 0 {
		return []xrange.Range[Iterator]{xrange.NewRange(t.End(), t.End(), t.Next)}
	}

	step := total / chunks
	if step == 0 {
		step = 1
	}

	bounds := []Iterator{t.Begin()}
	count := 0
	for it := t.Begin(); !it.End(); it = t.Next(it) {
		count++
		if count%step == 0 && len(bounds) < chunks {
			bounds = append(bounds, t.Next(it))
		}
	}
	bounds = append(bounds, t.End())

	ranges := make([]xrange.Range[Iterator], 0, len(bounds)-1)
	for i := 0; i < len(bounds)-1; i++ {
		ranges = append(ranges, xrange.NewRange(bounds[i], bounds[i+1], t.Next))
	}
	return ranges
}
