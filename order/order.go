package order

import "github.com/shortlex/fpsemi/word"

// Order is a total order over words satisfying two properties required by
// rewrite.System:
//
//   - Translation invariance: if Compare(u, v) < 0 then for all prefixes p
//     and suffixes s, Compare(Concat(p, Concat(u, s)), Concat(p, Concat(v, s))) < 0.
//   - No infinite descending chain: repeatedly replacing a subword by a
//     smaller one under this order must terminate. ShortLex has this
//     property because it strictly decreases length except on ties, which
//     it then breaks lexicographically — a well order on words of bounded
//     length.
//
// Compare returns a negative number if u < v, zero if u and v are equal,
// and a positive number if u > v.
type Order interface {
	Compare(u, v word.Word) int
	// Less reports whether u < v under this order.
	Less(u, v word.Word) bool
}

// ShortLex compares words first by length, then lexicographically by letter
// index on ties. It is the default reduction order for Knuth-Bendix
// completion in this module.
type ShortLex struct{}

// Compare implements Order.
func (ShortLex) Compare(u, v word.Word) int {
	if len(u) != len(v) {
		if len(u) < len(v) {
			return -1
		}
		return 1
	}
	for i := range u {
		if u[i] != v[i] {
			if u[i] < v[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// Less implements Order.
func (s ShortLex) Less(u, v word.Word) bool {
	return s.Compare(u, v) < 0
}

// Max returns whichever of u, v is greater under o, and the other as the
// second return value. Ties favor u, mirroring the fpsemi façade's
// preference for the first-declared side of a relation when both sides are
// already equal under the order.
func Max(o Order, u, v word.Word) (greater, lesser word.Word) {
	if o.Less(u, v) {
		return v, u
	}
	return u, v
}
