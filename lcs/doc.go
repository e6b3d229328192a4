// Package lcs computes the longest common subsequence of two slices.
//
// Elements are compared with a caller-supplied predicate, which makes the
// matcher usable for any element type: runes, lines of text, tokens or
// parsed nodes. When two elements are considered equal a merge function
// decides which value is recorded in the result.
//
// # Algorithm
//
// The classic dynamic-programming table is filled row by row:
//
//	table[i][j] = table[i-1][j-1] + 1            if equal(x[i-1], y[j-1])
//	table[i][j] = max(table[i][j-1], table[i-1][j]) otherwise
//
// The backtrace walks from (len(x), len(y)) towards (0, 0). A matching cell
// is emitted and the walk moves diagonally. Otherwise it moves to the
// neighbour holding the strictly greater length, and to (i, j-1) when both
// are equal. That rule makes the result deterministic: among several
// subsequences of maximal length, the one matched earliest in x wins.
//
//	lcs.Match([]int{1, 2, 3}, []int{2, 1, 3}) // [2 3], never [1 3]
//
// # Usage
//
//	common := lcs.Match(a, b)
//
//	// case-insensitive, keep the right-hand spelling
//	common := lcs.MatchWith(a, b, strings.EqualFold, func(_, r string) string { return r })
//
//	// index pairs or a full edit script
//	pairs := lcs.Pairs(a, b, func(p, q string) bool { return p == q })
//	edits := lcs.Edits(a, b, func(p, q string) bool { return p == q })
//
// # Complexity
//
//   - Time:   O(len(x)·len(y))
//   - Memory: O(len(x)·len(y)), private to one call
//
// The functions never modify their inputs and hold no shared state, so they
// are safe for concurrent use.
package lcs
