package sequence

// Myers computes a shortest edit script between old and new using the classic
// greedy diagonal-advance algorithm. Cost is O((N+M)D) where D is the edit
// distance, so near-identical inputs diff in near-linear time.
//
// The per-iteration diagonal states are recorded in an explicit trace so the
// script can be reconstructed by backtracking; the returned Distance is the
// true minimal number of Delete/Insert ops.
func Myers[T comparable](old, new []T) Result[T] {
	n, m := len(old), len(new)
	if n == 0 && m == 0 {
		return Result[T]{}
	}

	max := n + m
	offset := max

	// v[offset+k] holds the furthest x reached on diagonal k. The extra slot
	// at offset+1 starting at zero seeds the d=0 iteration.
	v := make([]int, 2*max+1)
	trace := make([][]int, 0, max+1)

	for d := 0; d <= max; d++ {
		snapshot := make([]int, len(v))
		copy(snapshot, v)
		trace = append(trace, snapshot)

		for k := -d; k <= d; k += 2 {
			var x int
			if k == -d || (k != d && v[offset+k-1] < v[offset+k+1]) {
				// Step down from the diagonal above: an insert. Ties at the
				// lower boundary always resolve this way.
				x = v[offset+k+1]
			} else {
				// Step right from the diagonal below: a delete.
				x = v[offset+k-1] + 1
			}
			y := x - k

			// Advance through the snake of matching elements.
			for x < n && y < m && old[x] == new[y] {
				x++
				y++
			}
			v[offset+k] = x

			if x >= n && y >= m {
				ops := backtrackMyers(old, new, trace, d)
				return Result[T]{Ops: ops, Distance: d}
			}
		}
	}

	// Unreachable: d = n+m always suffices (delete everything, insert everything).
	return Result[T]{}
}

// backtrackMyers walks the recorded diagonal history from (n, m) back to
// (0, 0), emitting ops in reverse and flipping them to old-to-new order.
func backtrackMyers[T comparable](old, new []T, trace [][]int, dist int) []Op[T] {
	n, m := len(old), len(new)
	offset := n + m
	x, y := n, m

	var rev []Op[T]
	for d := dist; d >= 0; d-- {
		v := trace[d]
		k := x - y

		var prevK int
		if k == -d || (k != d && v[offset+k-1] < v[offset+k+1]) {
			prevK = k + 1
		} else {
			prevK = k - 1
		}
		prevX := v[offset+prevK]
		prevY := prevX - prevK

		// Unwind the snake first.
		for x > prevX && y > prevY {
			rev = append(rev, Op[T]{Kind: Keep, Elem: old[x-1]})
			x--
			y--
		}

		if d > 0 {
			if x == prevX {
				rev = append(rev, Op[T]{Kind: Insert, Elem: new[prevY]})
			} else {
				rev = append(rev, Op[T]{Kind: Delete, Elem: old[prevX]})
			}
			x, y = prevX, prevY
		}
	}

	for i, j := 0, len(rev)-1; i < j; i, j = i+1, j-1 {
		rev[i], rev[j] = rev[j], rev[i]
	}
	return rev
}
