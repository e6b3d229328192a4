package lcs

// Op describes an edit operation.
type Op int

const (
	OpMatch  Op = iota // Elements aligned by the subsequence
	OpDelete           // Element present only in x
	OpInsert           // Element present only in y
)

// String returns the conventional one-character diff marker.
func (o Op) String() string {
	switch o {
	case OpMatch:
		return " "
	case OpDelete:
		return "-"
	case OpInsert:
		return "+"
	default:
		return "?"
	}
}

// Edit is a single step of an edit script.
//   - OpMatch: X and Y hold the aligned elements.
//   - OpDelete: X holds the element removed from x, Y is the zero value.
//   - OpInsert: Y holds the element added from y, X is the zero value.
type Edit[T any] struct {
	Op   Op
	X, Y T
}

// Edits expands the alignment of x and y into an edit script. Every element
// of x appears once as a match or delete, every element of y once as a match
// or insert, in input order. Between two matches deletions come first.
func Edits[T any](x, y []T, equal func(a, b T) bool) []Edit[T] {
	pairs := Pairs(x, y, equal)
	edits := make([]Edit[T], 0, len(x)+len(y)-len(pairs))

	var zero T
	i, j := 0, 0
	emitGap := func(toI, toJ int) {
		for ; i < toI; i++ {
			edits = append(edits, Edit[T]{Op: OpDelete, X: x[i], Y: zero})
		}
		for ; j < toJ; j++ {
			edits = append(edits, Edit[T]{Op: OpInsert, X: zero, Y: y[j]})
		}
	}

	for _, p := range pairs {
		emitGap(p.I, p.J)
		edits = append(edits, Edit[T]{Op: OpMatch, X: x[p.I], Y: y[p.J]})
		i, j = p.I+1, p.J+1
	}
	emitGap(len(x), len(y))

	return edits
}
