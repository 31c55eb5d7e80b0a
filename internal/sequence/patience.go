package sequence

// maxPatienceDepth bounds anchor recursion so adversarial inputs cannot blow
// the stack; regions deeper than this fall back to Myers, which is still a
// valid (optimal) script for the region.
const maxPatienceDepth = 64

// anchorPair is a matched (old index, new index) position used as a fixed
// point around which sub-regions are diffed.
type anchorPair struct {
	oldIdx int
	newIdx int
}

// Patience computes an edit script between old and new by anchoring on
// matched element pairs and recursively diffing the regions between anchors.
// Regions with no usable anchors fall back to Myers.
//
// Anchors are chosen from all common (old, new) index pairs, not only
// elements unique to both sides; the longest chain increasing in both
// coordinates becomes the anchor set. This keeps anchor selection a single
// LIS computation at the cost of deviating from textbook patience diff.
func Patience[T comparable](old, new []T) Result[T] {
	ops := patienceRegion(old, new, 0)
	return Result[T]{Ops: ops, Distance: distanceOf(ops)}
}

func patienceRegion[T comparable](old, new []T, depth int) []Op[T] {
	if len(old) == 0 {
		ops := make([]Op[T], 0, len(new))
		for _, e := range new {
			ops = append(ops, Op[T]{Kind: Insert, Elem: e})
		}
		return ops
	}
	if len(new) == 0 {
		ops := make([]Op[T], 0, len(old))
		for _, e := range old {
			ops = append(ops, Op[T]{Kind: Delete, Elem: e})
		}
		return ops
	}
	if depth >= maxPatienceDepth {
		return Myers(old, new).Ops
	}

	anchors := longestAnchorChain(commonPairs(old, new))
	if len(anchors) == 0 {
		return Myers(old, new).Ops
	}

	var ops []Op[T]
	prevOld, prevNew := 0, 0
	for _, a := range anchors {
		sub := patienceRegion(old[prevOld:a.oldIdx], new[prevNew:a.newIdx], depth+1)
		ops = append(ops, sub...)
		ops = append(ops, Op[T]{Kind: Keep, Elem: old[a.oldIdx]})
		prevOld, prevNew = a.oldIdx+1, a.newIdx+1
	}
	tail := patienceRegion(old[prevOld:], new[prevNew:], depth+1)
	ops = append(ops, tail...)
	return ops
}

// commonPairs returns every (old index, new index) pair whose elements are
// equal, ordered by old index then new index.
func commonPairs[T comparable](old, new []T) []anchorPair {
	positions := make(map[T][]int, len(new))
	for j, e := range new {
		positions[e] = append(positions[e], j)
	}

	var pairs []anchorPair
	for i, e := range old {
		for _, j := range positions[e] {
			pairs = append(pairs, anchorPair{oldIdx: i, newIdx: j})
		}
	}
	return pairs
}

// longestAnchorChain computes the longest subsequence of pairs strictly
// increasing in both coordinates via O(p^2) dynamic programming with
// predecessor reconstruction.
func longestAnchorChain(pairs []anchorPair) []anchorPair {
	if len(pairs) == 0 {
		return nil
	}

	length := make([]int, len(pairs))
	prev := make([]int, len(pairs))
	best := 0
	for i := range pairs {
		length[i] = 1
		prev[i] = -1
		for j := 0; j < i; j++ {
			if pairs[j].oldIdx < pairs[i].oldIdx && pairs[j].newIdx < pairs[i].newIdx &&
				length[j]+1 > length[i] {
				length[i] = length[j] + 1
				prev[i] = j
			}
		}
		if length[i] > length[best] {
			best = i
		}
	}

	chain := make([]anchorPair, 0, length[best])
	for i := best; i >= 0; i = prev[i] {
		chain = append(chain, pairs[i])
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}
