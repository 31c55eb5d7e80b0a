// Package sequence implements generic shortest-edit-script computation over
// element slices. Two algorithms are provided: Myers (optimal, cheap for
// near-identical inputs) and Patience (anchor-based, more readable output for
// structured inputs). Both are pure and total; higher layers decide which to
// run via the adaptive selector.
package sequence

// OpKind discriminates edit operations within a script.
type OpKind int

const (
	// Keep carries an element present in both sequences.
	Keep OpKind = iota
	// Delete carries an element present only in the old sequence.
	Delete
	// Insert carries an element present only in the new sequence.
	Insert
)

// String returns the lowercase op name for logging and test output.
func (k OpKind) String() string {
	switch k {
	case Keep:
		return "keep"
	case Delete:
		return "delete"
	case Insert:
		return "insert"
	}
	return "unknown"
}

// Op is a single edit operation holding its own copy of the element.
type Op[T comparable] struct {
	Kind OpKind
	Elem T
}

// Result is an edit script in old-to-new application order.
//
// Invariants: replaying Keep and Delete ops in order reproduces the old
// sequence; replaying Keep and Insert ops reproduces the new sequence;
// Distance equals the number of non-Keep ops.
type Result[T comparable] struct {
	Ops      []Op[T]
	Distance int
}

// Old reconstructs the old sequence from the script's Keep and Delete ops.
func (r Result[T]) Old() []T {
	out := make([]T, 0, len(r.Ops))
	for _, op := range r.Ops {
		if op.Kind == Keep || op.Kind == Delete {
			out = append(out, op.Elem)
		}
	}
	return out
}

// New reconstructs the new sequence from the script's Keep and Insert ops.
func (r Result[T]) New() []T {
	out := make([]T, 0, len(r.Ops))
	for _, op := range r.Ops {
		if op.Kind == Keep || op.Kind == Insert {
			out = append(out, op.Elem)
		}
	}
	return out
}

func distanceOf[T comparable](ops []Op[T]) int {
	d := 0
	for _, op := range ops {
		if op.Kind != Keep {
			d++
		}
	}
	return d
}
