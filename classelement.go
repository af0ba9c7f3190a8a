package fpsemi

import (
	"github.com/shortlex/fpsemi/fp"
	"github.com/shortlex/fpsemi/tc"
	"github.com/shortlex/fpsemi/word"
)

// classElement wraps a live class of a finished tc.Table as an fp.Element,
// per spec.md §4.5's symmetric handoff: once Todd-Coxeter alone has
// certified the quotient finite, its coset table already behaves as a
// Cayley graph over a known element set, so it can seed a Froidure-Pin
// enumeration exactly the way a concrete semigroup's own elements would
// (fp.NewFromGenerators, mirroring fp.NewFromKnuthBendix's handoff in the
// other direction).
type classElement struct {
	t *tc.Table
	c int
}

var _ fp.Element = classElement{}

// Equal reports whether both classElements are live classes of the same
// table and name the same class after union-find resolution.
func (e classElement) Equal(other fp.Element) bool {
	o, ok := other.(classElement)
	if !ok {
		return false
	}
	return e.t == o.t && e.t.Lookup(e.c) == o.t.Lookup(o.c)
}

// Multiply applies other's generator image to e's class, via tc.Table.Apply
// starting from e's class rather than the identity class — Apply exists
// specifically to support this.
func (e classElement) Multiply(other fp.Element) (fp.Element, error) {
	o, ok := other.(classElement)
	if !ok {
		return nil, ErrElementError
	}
	gen, err := e.t.ClassToWord(o.t.Lookup(o.c))
	if err != nil {
		return nil, err
	}
	next, err := e.t.Apply(e.t.Lookup(e.c), gen)
	if err != nil {
		return nil, err
	}
	return classElement{t: e.t, c: next}, nil
}

// Hash returns the resolved class id, which is already a stable, dense,
// equality-consistent integer for a finished (non-mutating) table.
func (e classElement) Hash() uint64 { return uint64(e.t.Lookup(e.c)) }

// Copy returns e unchanged: classElement is an immutable (table, class)
// pair, not a value the table's own mutation could invalidate once
// Finished.
func (e classElement) Copy() fp.Element { return e }

// classElementGenerators returns one classElement per generator of t's
// presentation, each naming the class reached from the identity class by
// that single generator — t's own image of its alphabet.
func classElementGenerators(t *tc.Table) ([]fp.Element, error) {
	n := t.NrGenerators()
	gens := make([]fp.Element, n)
	for g := 0; g < n; g++ {
		c, err := t.WordToClass(word.Word{word.Letter(g)})
		if err != nil {
			return nil, err
		}
		gens[g] = classElement{t: t, c: c}
	}
	return gens, nil
}
