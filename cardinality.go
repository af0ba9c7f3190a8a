package fpsemi

import "fmt"

// Size is the result of a Size query: either a finite element count, or the
// POSITIVE_INFINITY spec.md §4.5 allows Size() to report. It is a small
// value type rather than a signed int with a magic sentinel, so that "the
// quotient is infinite" can never be confused with "the count is -1" by a
// caller that forgets to check IsFinite.
type Size struct {
	finite bool
	value  int
}

// FiniteSize returns a Size representing exactly n elements.
func FiniteSize(n int) Size { return Size{finite: true, value: n} }

// InfiniteSize returns a Size representing an infinite quotient.
func InfiniteSize() Size { return Size{finite: false} }

// IsFinite reports whether the size is a finite count.
func (s Size) IsFinite() bool { return s.finite }

// Value returns the finite element count and true, or (0, false) if the
// size is infinite.
func (s Size) Value() (int, bool) {
	if !s.finite {
		return 0, false
	}
	return s.value, true
}

// String renders the size for diagnostics: the decimal count, or "+Inf".
func (s Size) String() string {
	if !s.finite {
		return "+Inf"
	}
	return fmt.Sprintf("%d", s.value)
}
