package fpsemi

import (
	"github.com/shortlex/fpsemi/presentation"
	"github.com/shortlex/fpsemi/word"
)

// IsObviouslyInfinite applies the cheap, conservative syntactic heuristics
// of spec.md §4.6. It never runs an engine and never blocks; a false return
// means "unknown", not "finite".
//
//   - Alphabet size 0: the only semigroup it can describe is the empty
//     (not the trivial) one, which this function does not call infinite.
//   - No relations at all (explicit or identity-synthesized) over a
//     non-empty alphabet: the free semigroup/monoid on n >= 1 generators is
//     always infinite.
//   - A relation with an empty side: the heuristic returns false.
//   - Otherwise: a letter is "bounded" if some relation has a side that is
//     a power of that letter (a non-empty word using only that letter), or
//     if it is directly identified (by a length-1-vs-length-1 relation)
//     with another letter already known to be bounded. If every letter is
//     bounded this way, the heuristic returns false (unknown, not "finite"
//     — spec.md §4.6 explicitly separates "obviously finite" from this
//     function). If some letter g is never bounded, no relation side occurs
//     inside a power of g, so the powers of g are pairwise distinct and the
//     quotient is obviously infinite.
func IsObviouslyInfinite(p *presentation.Presentation) bool {
	n := p.AlphabetSize()
	if n == 0 {
		return false
	}
	rels := p.Relations()
	if len(rels) == 0 {
		return true
	}

	bounded := make([]bool, n)
	for _, r := range rels {
		if len(r.U) == 0 || len(r.V) == 0 {
			return false
		}
		markBoundedPower(bounded, r.U, r.V)
		markBoundedPower(bounded, r.V, r.U)
	}
	// Propagate direct letter-to-letter identifications ({g} = {h}) to a
	// fixpoint: if h is bounded and g = h, g is bounded too.
	for changed := true; changed; {
		changed = false
		for _, r := range rels {
			if propagateIdentification(bounded, r.U, r.V) {
				changed = true
			}
			if propagateIdentification(bounded, r.V, r.U) {
				changed = true
			}
		}
	}

	for g := 0; g < n; g++ {
		if !bounded[g] {
			return true
		}
	}
	return false
}

// markBoundedPower marks the letter of power as bounded if power is a
// non-empty power of a single letter, whatever the other side of the
// relation is — i.e. the relation power = other can act on that letter's
// powers, so the heuristic cannot tell whether they stay distinct.
func markBoundedPower(bounded []bool, power, other word.Word) {
	letter, ok := powerLetter(power)
	if !ok {
		return
	}
	bounded[letter] = true
}

// powerLetter reports whether w consists of a single repeated letter, and
// that letter, for any non-empty w.
func powerLetter(w word.Word) (word.Letter, bool) {
	if len(w) == 0 {
		return 0, false
	}
	l := w[0]
	for _, x := range w[1:] {
		if x != l {
			return 0, false
		}
	}
	return l, true
}

// propagateIdentification marks a's letter bounded when a = {g}, b = {h}
// are both single letters, h is already bounded, and g differs from h.
// Returns true if it changed bounded.
func propagateIdentification(bounded []bool, a, b word.Word) bool {
	if len(a) != 1 || len(b) != 1 {
		return false
	}
	g, h := a[0], b[0]
	if g == h {
		return false
	}
	if bounded[h] && !bounded[g] {
		bounded[g] = true
		return true
	}
	return false
}

// IsObviouslyInfinite is the façade's method form of the package-level
// heuristic, operating on the presentation this FpSemigroup owns.
func (s *FpSemigroup) IsObviouslyInfinite() bool {
	return IsObviouslyInfinite(s.pres)
}

// IsObviouslyFinite reports whether some engine has already completed and
// reported a finite size. Unlike IsObviouslyInfinite, this never computes
// anything new — it only reports a finite size already cached by a prior
// Size call (or, for the concrete-semigroup path, that its own enumeration
// has finished).
func (s *FpSemigroup) IsObviouslyFinite() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sizeCache != nil && s.sizeCache.IsFinite() {
		return true
	}
	return s.fpIsGroundTruth && s.fpEngine != nil && s.fpEngine.Finished()
}
