package presentation

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/shortlex/fpsemi/word"
)

// Relation is one equation u = v of a presentation.
type Relation struct {
	U, V word.Word
}

// Presentation is a finite semigroup presentation: an alphabet size, an
// optional identity letter, and a set of relations. The zero value is not
// usable; construct with NewPresentation.
type Presentation struct {
	mu         sync.RWMutex
	alphabet   int
	identity   *word.Letter
	relations  []Relation
	frozen     atomic.Bool
}

// NewPresentation returns a Presentation over alphabetSize generators,
// numbered 0..alphabetSize-1, with no relations and no identity.
func NewPresentation(alphabetSize int) *Presentation {
	return &Presentation{alphabet: alphabetSize}
}

// AlphabetSize returns the number of generators.
func (p *Presentation) AlphabetSize() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.alphabet
}

// Identity returns the identity letter and true if one has been set.
func (p *Presentation) Identity() (word.Letter, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.identity == nil {
		return 0, false
	}
	return *p.identity, true
}

// SetIdentity records l as the presentation's identity generator: for every
// other generator g it behaves as an adjoined two-sided identity (lg = gl =
// g). Returns ErrFrozen if the presentation is frozen, ErrLetterOutOfRange
// if l is out of range, and ErrIdentityAlreadySet if called twice.
func (p *Presentation) SetIdentity(l word.Letter) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.frozen.Load() {
		return fmt.Errorf("SetIdentity: %w", ErrFrozen)
	}
	if int(l) >= p.alphabet {
		return fmt.Errorf("SetIdentity(%d): %w", l, ErrLetterOutOfRange)
	}
	if p.identity != nil {
		return fmt.Errorf("SetIdentity: %w", ErrIdentityAlreadySet)
	}
	id := l
	p.identity = &id
	return nil
}

// AddRule appends the relation u = v. Returns ErrFrozen if the presentation
// is frozen, or ErrLetterOutOfRange if either word references a letter
// outside the alphabet. Both words are cloned; later mutation of the
// caller's slices does not affect the stored relation.
func (p *Presentation) AddRule(u, v word.Word) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.frozen.Load() {
		return fmt.Errorf("AddRule: %w", ErrFrozen)
	}
	if p.alphabet == 0 {
		return fmt.Errorf("AddRule: %w", ErrEmptyAlphabet)
	}
	if !p.validWordLocked(u) || !p.validWordLocked(v) {
		return fmt.Errorf("AddRule(%v, %v): %w", u, v, ErrLetterOutOfRange)
	}
	p.relations = append(p.relations, Relation{U: word.Clone(u), V: word.Clone(v)})
	return nil
}

func (p *Presentation) validWordLocked(w word.Word) bool {
	for _, l := range w {
		if int(l) >= p.alphabet {
			return false
		}
	}
	return true
}

// ValidWord reports whether every letter of w is within the presentation's
// alphabet. Exported for callers (notably fpsemi) that need to validate a
// word before handing it to an engine, without needing their own copy of
// the alphabet size check.
func (p *Presentation) ValidWord(w word.Word) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.validWordLocked(w)
}

// ExplicitRelations returns a snapshot of just the relations added via
// AddRule, excluding the synthesized identity relations Relations() mixes
// in. Used by callers (fpsemi's rule iteration) that want the
// presentation's rules in the order the caller actually inserted them.
func (p *Presentation) ExplicitRelations() []Relation {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]Relation, len(p.relations))
	for i, r := range p.relations {
		out[i] = Relation{U: word.Clone(r.U), V: word.Clone(r.V)}
	}
	return out
}

// Relations returns a snapshot of the presentation's relations, including
// the identity relations el = le = l synthesized for the identity letter if
// one is set. Callers may freely mutate the returned slice.
func (p *Presentation) Relations() []Relation {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]Relation, len(p.relations), len(p.relations)+2*p.alphabet)
	copy(out, p.relations)
	if p.identity != nil {
		id := *p.identity
		for g := 0; g < p.alphabet; g++ {
			gl := word.Letter(g)
			out = append(out,
				Relation{U: word.Word{id, gl}, V: word.Word{gl}},
				Relation{U: word.Word{gl, id}, V: word.Word{gl}},
			)
		}
	}
	return out
}

// NrRelations returns the number of explicitly added relations (not
// counting synthesized identity relations).
func (p *Presentation) NrRelations() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.relations)
}

// Freeze marks the presentation immutable. It is idempotent and safe to call
// from multiple engines racing to start consuming the same presentation.
func (p *Presentation) Freeze() {
	p.frozen.Store(true)
}

// Frozen reports whether Freeze has been called.
func (p *Presentation) Frozen() bool {
	return p.frozen.Load()
}

// Clone returns a deep, unfrozen copy of p, suitable for an engine that
// needs to mutate its own working copy (e.g. a Knuth-Bendix rewriting
// system) without freezing the caller's original.
func (p *Presentation) Clone() *Presentation {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := &Presentation{alphabet: p.alphabet}
	if p.identity != nil {
		id := *p.identity
		out.identity = &id
	}
	out.relations = make([]Relation, len(p.relations))
	for i, r := range p.relations {
		out.relations[i] = Relation{U: word.Clone(r.U), V: word.Clone(r.V)}
	}
	return out
}
