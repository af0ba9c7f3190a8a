package fp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shortlex/fpsemi/rewrite"
	"github.com/shortlex/fpsemi/word"
)

// FroidurePin enumerates a finite semigroup by breadth-first multiplication
// of known elements by generators. The zero value is not usable; construct
// with NewFromGenerators or NewFromKnuthBendix.
//
// Every table here is a flat [][]int indexed [id][generator], the same
// dense-row-per-vertex shape the teacher uses for its adjacency matrix,
// appropriate because the generator count is small and fixed while the
// element count grows by appending rows.
type FroidurePin struct {
	gens []Element

	elements    []Element
	hashBuckets map[uint64][]int

	factorisation [][]int // factorisation[id] = shortlex-minimal generator indices
	length        []int
	rightTable    [][]int // rightTable[id][gen] = id of elements[id]*gens[gen]
	leftTable     [][]int // leftTable[id][gen] = id of gens[gen]*elements[id]; filled by ensureLeftTable

	queue    []int // every discovered id, in discovery (BFS) order
	frontier []int // ids at the current length, not yet expanded
	next     []int // ids discovered while expanding the current frontier
	rules    []rewrite.Rule

	maxElements int
	report      bool

	started       bool
	done          bool
	leftTableDone bool
}

// NewFromGenerators builds a FroidurePin that will enumerate the semigroup
// generated by gens under their own Multiply. Enumeration does not start
// until Enumerate or Run is called.
func NewFromGenerators(gens []Element, opts ...Option) (*FroidurePin, error) {
	if len(gens) == 0 {
		return nil, ErrNoGenerators
	}
	fpins := &FroidurePin{
		gens:        gens,
		hashBuckets: make(map[uint64][]int),
	}
	for _, opt := range opts {
		opt(fpins)
	}
	return fpins, nil
}

// Started reports whether enumeration has begun.
func (f *FroidurePin) Started() bool { return f.started }

// Finished reports whether enumeration has run to closure.
func (f *FroidurePin) Finished() bool { return f.done }

// CurrentSize returns the number of elements discovered so far, valid
// whether or not enumeration has finished.
func (f *FroidurePin) CurrentSize() int { return len(f.elements) }

// Size returns the total number of elements, running enumeration to
// completion first if it has not already finished.
func (f *FroidurePin) Size() (int, error) {
	if !f.done {
		if err := f.Enumerate(0); err != nil {
			return 0, err
		}
	}
	return len(f.elements), nil
}

// CurrentNrRules returns the number of rewrite rules derived so far.
func (f *FroidurePin) CurrentNrRules() int { return len(f.rules) }

// NrRules runs enumeration to completion (if needed) and returns the final
// rewrite rule count.
func (f *FroidurePin) NrRules() (int, error) {
	if !f.done {
		if err := f.Enumerate(0); err != nil {
			return 0, err
		}
	}
	return len(f.rules), nil
}

// NrIdempotents runs enumeration to completion and counts elements e with
// e*e == e.
func (f *FroidurePin) NrIdempotents() (int, error) {
	if !f.done {
		if err := f.Enumerate(0); err != nil {
			return 0, err
		}
	}
	count := 0
	for _, e := range f.elements {
		sq, err := e.Multiply(e)
		if err != nil {
			return 0, fmt.Errorf("fp: NrIdempotents: %w", err)
		}
		if e.Equal(sq) {
			count++
		}
	}
	return count, nil
}

// position looks up e among the currently-known elements, bucketing by
// Hash before falling back to Equal, mirroring Go's own map lookup shape.
func (f *FroidurePin) position(e Element) (int, bool) {
	for _, id := range f.hashBuckets[e.Hash()] {
		if f.elements[id].Equal(e) {
			return id, true
		}
	}
	return -1, false
}

// Position is the exported form of position; it never advances
// enumeration, so it can return false for an element that would in fact
// be discovered by a larger Enumerate(limit).
func (f *FroidurePin) Position(e Element) (int, bool) { return f.position(e) }

// addElement appends a new element with the given factorisation and
// returns its id; it does not check membership, callers must do that via
// position first.
func (f *FroidurePin) addElement(e Element, factorisation []int) int {
	id := len(f.elements)
	f.elements = append(f.elements, e.Copy())
	f.hashBuckets[e.Hash()] = append(f.hashBuckets[e.Hash()], id)
	f.factorisation = append(f.factorisation, factorisation)
	f.length = append(f.length, len(factorisation))
	f.rightTable = append(f.rightTable, make([]int, len(f.gens)))
	for gi := range f.rightTable[id] {
		f.rightTable[id][gi] = -1
	}
	return id
}

// start seeds the element table with the distinct generators, queuing them
// as the first BFS frontier.
func (f *FroidurePin) start() error {
	f.started = true
	for gi, g := range f.gens {
		if _, ok := f.position(g); ok {
			continue
		}
		id := f.addElement(g, []int{gi})
		if f.maxElements > 0 && len(f.elements) > f.maxElements {
			return fmt.Errorf("fp: start: %w", ErrResourceExhausted)
		}
		f.queue = append(f.queue, id)
		f.frontier = append(f.frontier, id)
		if f.report {
			fmt.Printf("fp: element %d: generator %d\n", id, gi)
		}
	}
	return nil
}

// expandOne multiplies elements[id] by every generator, discovering new
// elements or closing a right Cayley edge to an existing one, and records
// the rewrite rule implied when a product's canonical factorisation
// differs from the one just computed (per Froidure-Pin's rule-derivation
// step — same word, two factorisations means the longer one rewrites to
// the shorter).
func (f *FroidurePin) expandOne(id int, next *[]int) error {
	for gi, g := range f.gens {
		product, err := f.elements[id].Multiply(g)
		if err != nil {
			return fmt.Errorf("fp: expandOne: %w", err)
		}
		if existing, ok := f.position(product); ok {
			f.rightTable[id][gi] = existing
			// existing was discovered no later than this product (BFS
			// expands strictly by length), so its factorisation is the
			// canonical, no-longer-than-lhs side of the reduction.
			lhs := append(word.Clone(factorisationWord(f.factorisation[id])), word.Letter(gi))
			rhs := factorisationWord(f.factorisation[existing])
			if !word.Equal(lhs, rhs) {
				f.addRuleIfNew(lhs, rhs)
			}
			continue
		}
		newFact := append(append([]int{}, f.factorisation[id]...), gi)
		newID := f.addElement(product, newFact)
		if f.maxElements > 0 && len(f.elements) > f.maxElements {
			return fmt.Errorf("fp: expandOne: %w", ErrResourceExhausted)
		}
		f.rightTable[id][gi] = newID
		f.queue = append(f.queue, newID)
		*next = append(*next, newID)
		if f.report {
			fmt.Printf("fp: element %d: %v * gen[%d] (length %d)\n", newID, f.factorisation[id], gi, f.length[newID])
		}
	}
	return nil
}

func (f *FroidurePin) addRuleIfNew(lhs, rhs word.Word) {
	for _, r := range f.rules {
		if word.Equal(r.LHS, lhs) && word.Equal(r.RHS, rhs) {
			return
		}
	}
	f.rules = append(f.rules, rewrite.Rule{LHS: lhs, RHS: rhs})
}

func factorisationWord(fact []int) word.Word {
	w := make(word.Word, len(fact))
	for i, g := range fact {
		w[i] = word.Letter(g)
	}
	return w
}

// Step performs one unit of enumeration work: on the first call it seeds
// the generators as the initial frontier; thereafter it pops one id off the
// current frontier and multiplies it by every generator, queuing any newly
// discovered elements into the next frontier. When the current frontier
// empties, the next one (possibly empty, meaning closure) takes its place.
// It returns Finished once an empty frontier is reached, or Interrupted if
// ctx is done.
func (f *FroidurePin) Step(ctx context.Context) (Status, error) {
	if f.done {
		return Finished, nil
	}
	if err := ctx.Err(); err != nil {
		return Interrupted, fmt.Errorf("Step: %w: %w", ErrInterrupted, err)
	}
	if !f.started {
		if err := f.start(); err != nil {
			return Progressed, err
		}
		if len(f.frontier) == 0 {
			f.done = true
			return Finished, nil
		}
		return Progressed, nil
	}
	if len(f.frontier) == 0 {
		f.done = true
		return Finished, nil
	}

	id := f.frontier[0]
	f.frontier = f.frontier[1:]
	if err := f.expandOne(id, &f.next); err != nil {
		return Progressed, err
	}
	if len(f.frontier) == 0 {
		f.frontier, f.next = f.next, nil
	}
	return Progressed, nil
}

// Run steps until enumeration finishes or ctx is done.
func (f *FroidurePin) Run(ctx context.Context) error {
	for {
		status, err := f.Step(ctx)
		if err != nil {
			return err
		}
		if status != Progressed {
			return nil
		}
	}
}

// RunFor steps for at most d before returning, regardless of whether
// enumeration has finished. A deadline expiring is not itself an error;
// check Finished() afterward.
func (f *FroidurePin) RunFor(ctx context.Context, d time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, d)
	defer cancel()
	err := f.Run(ctx)
	if err != nil && (errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled)) {
		return nil
	}
	return err
}

// Enumerate runs Step in a background context until the frontier empties
// (closure reached) or, if limit > 0, until at least limit elements have
// been discovered. Calling Enumerate again after closure is a no-op.
func (f *FroidurePin) Enumerate(limit int) error {
	ctx := context.Background()
	for {
		if f.done {
			return nil
		}
		if limit > 0 && len(f.elements) >= limit {
			return nil
		}
		status, err := f.Step(ctx)
		if err != nil {
			return err
		}
		if status == Finished {
			return nil
		}
	}
}

// Factorisation returns the shortlex-minimal generator word for element id.
func (f *FroidurePin) Factorisation(id int) (word.Word, error) {
	if id < 0 || id >= len(f.elements) {
		return nil, ErrElementNotFound
	}
	return factorisationWord(f.factorisation[id]), nil
}

// WordToElement multiplies out the generators named by w and returns the
// resulting element together with its table id. The product is computed
// with the generators' own Multiply, so it need not be in the table; the
// table is not extended, and the id is -1 when enumeration has not yet
// reached the product.
func (f *FroidurePin) WordToElement(w word.Word) (Element, int, error) {
	if len(w) == 0 {
		return nil, -1, fmt.Errorf("fp: WordToElement: %w", ErrElementNotFound)
	}
	acc := f.gens[w[0]]
	for _, l := range w[1:] {
		var err error
		acc, err = acc.Multiply(f.gens[l])
		if err != nil {
			return nil, -1, fmt.Errorf("fp: WordToElement: %w", err)
		}
	}
	id, _ := f.position(acc)
	return acc, id, nil
}

// RewriteRules returns the confluent rule set derived from the element
// table so far; it is only guaranteed complete once Finished is true.
func (f *FroidurePin) RewriteRules() []rewrite.Rule {
	out := make([]rewrite.Rule, len(f.rules))
	copy(out, f.rules)
	return out
}

// ensureLeftTable computes the left Cayley table in a second pass, looking
// up gens[gen]*elements[id] among the already-closed element set — valid
// only after enumeration has finished, since an in-progress table is not
// yet closed under multiplication.
func (f *FroidurePin) ensureLeftTable() error {
	if f.leftTableDone {
		return nil
	}
	if !f.done {
		return ErrUnfinished
	}
	f.leftTable = make([][]int, len(f.elements))
	for id := range f.elements {
		f.leftTable[id] = make([]int, len(f.gens))
		for gi, g := range f.gens {
			product, err := g.Multiply(f.elements[id])
			if err != nil {
				return fmt.Errorf("fp: ensureLeftTable: %w", err)
			}
			existing, ok := f.position(product)
			if !ok {
				return fmt.Errorf("fp: ensureLeftTable: element not closed under left multiplication")
			}
			f.leftTable[id][gi] = existing
		}
	}
	f.leftTableDone = true
	return nil
}

// RightCayleyGraph returns the right Cayley table as rightTable[id][gen].
func (f *FroidurePin) RightCayleyGraph() ([][]int, error) {
	if !f.done {
		return nil, ErrUnfinished
	}
	out := make([][]int, len(f.rightTable))
	for i, row := range f.rightTable {
		out[i] = append([]int{}, row...)
	}
	return out, nil
}

// LeftCayleyGraph returns the left Cayley table as leftTable[id][gen].
func (f *FroidurePin) LeftCayleyGraph() ([][]int, error) {
	if err := f.ensureLeftTable(); err != nil {
		return nil, err
	}
	out := make([][]int, len(f.leftTable))
	for i, row := range f.leftTable {
		out[i] = append([]int{}, row...)
	}
	return out, nil
}

