package lcs

// EquivalenceFunc reports whether a and b are equivalent and, if so, the
// value to record for the pair.
type EquivalenceFunc[T any] func(a, b T) (T, bool)

// Pair is one matched position: x[I] is aligned with y[J].
type Pair struct {
	I, J int
}

// Match returns the longest common subsequence of x and y using ==.
// Matched values are taken from x.
func Match[T comparable](x, y []T) []T {
	return MatchWith(x, y, func(a, b T) bool { return a == b }, nil)
}

// MatchFunc returns the longest common subsequence of x and y under eq.
// The value returned by eq for each aligned pair is what ends up in the
// result. eq must be pure: it is called for every cell of the table.
func MatchFunc[T any](x, y []T, eq EquivalenceFunc[T]) []T {
	equal := func(a, b T) bool {
		_, ok := eq(a, b)
		return ok
	}
	merge := func(a, b T) T {
		v, _ := eq(a, b)
		return v
	}
	return MatchWith(x, y, equal, merge)
}

// MatchWith returns the longest common subsequence of x and y, comparing
// elements with equal and combining each aligned pair with merge.
// A nil merge keeps the element from x.
func MatchWith[T any](x, y []T, equal func(a, b T) bool, merge func(a, b T) T) []T {
	pairs := Pairs(x, y, equal)
	if len(pairs) == 0 {
		return []T{}
	}

	out := make([]T, len(pairs))
	for k, p := range pairs {
		if merge == nil {
			out[k] = x[p.I]
			continue
		}
		out[k] = merge(x[p.I], y[p.J])
	}
	return out
}

// Pairs returns the alignment chosen by MatchWith as index pairs.
// Both I and J are strictly increasing.
func Pairs[T any](x, y []T, equal func(a, b T) bool) []Pair {
	n, m := len(x), len(y)
	if n == 0 || m == 0 {
		return []Pair{}
	}

	t := fill(x, y, equal)
	return t.backtrace()
}

// Length returns the length of the longest common subsequence of x and y.
func Length[T any](x, y []T, equal func(a, b T) bool) int {
	if len(x) == 0 || len(y) == 0 {
		return 0
	}
	t := fill(x, y, equal)
	return t.at(len(x), len(y))
}

// table is the (n+1)×(m+1) length grid plus an n×m record of which cells
// compared equal, so the backtrace never calls equal again.
type table struct {
	n, m    int
	lengths []int
	hits    []bool
}

func (t *table) at(i, j int) int {
	return t.lengths[i*(t.m+1)+j]
}

func (t *table) hit(i, j int) bool {
	return t.hits[(i-1)*t.m+(j-1)]
}

func fill[T any](x, y []T, equal func(a, b T) bool) *table {
	n, m := len(x), len(y)
	t := &table{
		n:       n,
		m:       m,
		lengths: make([]int, (n+1)*(m+1)),
		hits:    make([]bool, n*m),
	}

	stride := m + 1
	for i := 1; i <= n; i++ {
		row, prev := i*stride, (i-1)*stride
		for j := 1; j <= m; j++ {
			if equal(x[i-1], y[j-1]) {
				t.hits[(i-1)*m+(j-1)] = true
				t.lengths[row+j] = t.lengths[prev+j-1] + 1
				continue
			}
			left, up := t.lengths[row+j-1], t.lengths[prev+j]
			if left >= up {
				t.lengths[row+j] = left
			} else {
				t.lengths[row+j] = up
			}
		}
	}
	return t
}

// backtrace walks from the bottom-right corner to the origin. Ties between
// the two neighbours move along y, which keeps matches early in x.
func (t *table) backtrace() []Pair {
	pairs := make([]Pair, t.at(t.n, t.m))
	k := len(pairs)

	i, j := t.n, t.m
	for i > 0 && j > 0 {
		if t.hit(i, j) {
			k--
			pairs[k] = Pair{I: i - 1, J: j - 1}
			i--
			j--
			continue
		}
		if t.at(i-1, j) > t.at(i, j-1) {
			i--
		} else {
			j--
		}
	}
	return pairs
}
