package fpsemi

import (
	"errors"
	"fmt"
	"sync"

	"github.com/shortlex/fpsemi/fp"
	"github.com/shortlex/fpsemi/kb"
	"github.com/shortlex/fpsemi/presentation"
	"github.com/shortlex/fpsemi/tc"
	"github.com/shortlex/fpsemi/word"
)

// engineKind tags which child engine (if any) last produced a cached
// verdict. Modeled as a small tagged variant rather than an interface
// hierarchy, per spec.md §9 ("Dynamic dispatch over engine kinds").
type engineKind int

const (
	engineNone engineKind = iota
	engineKB
	engineTC
	engineFP
)

// FpSemigroup is the façade described in spec.md §4.5: it owns a
// presentation, lazily creates and interleaves a Knuth-Bendix and a
// Todd-Coxeter engine to answer word-problem queries, and — when
// constructed from a concrete generating set — wraps a Froidure-Pin
// enumeration as ground truth instead. The zero value is not usable;
// construct with New, NewFromCharset, or NewFromElements.
type FpSemigroup struct {
	mu sync.Mutex

	pres     *presentation.Presentation
	alphabet *word.Alphabet // set only when constructed with a charset

	maxRules  int
	maxCosets int
	slice     int
	report    bool
	preferred PreferredEngine

	started bool

	kbEngine *kb.KnuthBendix
	tcEngine *tc.Table

	fpEngine        *fp.FroidurePin
	fpIsGroundTruth bool // true iff fpEngine came from NewFromElements

	answeredBy engineKind
	sizeCache  *Size
}

// New returns an FpSemigroup over alphabetSize generators, numbered
// 0..alphabetSize-1, with no relations and no identity.
func New(alphabetSize int, opts ...Option) *FpSemigroup {
	s := &FpSemigroup{
		pres:      presentation.NewPresentation(alphabetSize),
		maxRules:  defaultMaxRules,
		maxCosets: defaultMaxCosets,
		slice:     defaultSlice,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewFromCharset returns an FpSemigroup whose alphabet is bound to
// charset's bytes (one generator per byte, in order), so rules and queries
// can be expressed with AddRuleString/EqualToString/NormalFormString
// as well as with word.Word. charset must not repeat a byte.
func NewFromCharset(charset string, opts ...Option) (*FpSemigroup, error) {
	alphabet, err := word.NewAlphabet(len(charset), word.WithCharset(charset))
	if err != nil {
		return nil, fmt.Errorf("NewFromCharset: %w", err)
	}
	s := New(len(charset), opts...)
	s.alphabet = alphabet
	return s, nil
}

// NewFromElements returns an FpSemigroup whose ground truth is the
// concrete semigroup generated by gens, per spec.md §4.5 point 1: a
// Froidure-Pin enumeration answers size/equal_to/normal_form queries
// directly, while the alphabet (one letter per generator, in gens' order)
// still lets callers pose queries as words. Rules added with AddRule are
// recorded in the presentation but not consulted: no kb/tc engine is
// created on this path, and every query is answered by the Froidure-Pin
// enumeration of gens alone.
func NewFromElements(gens []fp.Element, opts ...Option) (*FpSemigroup, error) {
	fpEngine, err := fp.NewFromGenerators(gens)
	if err != nil {
		return nil, fmt.Errorf("NewFromElements: %w", err)
	}
	s := New(len(gens), opts...)
	s.fpEngine = fpEngine
	s.fpIsGroundTruth = true
	return s, nil
}

// AlphabetSize returns the number of generators.
func (s *FpSemigroup) AlphabetSize() int { return s.pres.AlphabetSize() }

// SetIdentity records l as the presentation's identity generator. Returns
// ErrPresentationFrozen if an engine has already started, or
// ErrPresentationError if l is out of range or an identity was already set.
func (s *FpSemigroup) SetIdentity(l word.Letter) error {
	if err := s.pres.SetIdentity(l); err != nil {
		if errors.Is(err, presentation.ErrFrozen) {
			return fmt.Errorf("SetIdentity: %w", ErrPresentationFrozen)
		}
		return fmt.Errorf("SetIdentity: %w: %v", ErrPresentationError, err)
	}
	return nil
}

// AddRule adds the relation u = v to the presentation. Returns
// ErrPresentationFrozen if an engine has already started, or
// ErrPresentationError if either word references an out-of-range letter
// (or the alphabet is empty).
func (s *FpSemigroup) AddRule(u, v word.Word) error {
	if err := s.pres.AddRule(u, v); err != nil {
		if errors.Is(err, presentation.ErrFrozen) {
			return fmt.Errorf("AddRule: %w", ErrPresentationFrozen)
		}
		return fmt.Errorf("AddRule: %w: %v", ErrPresentationError, err)
	}
	return nil
}

// AddRuleString adds the relation u = v, decoding both strings through the
// alphabet bound at construction (NewFromCharset). Returns
// ErrPresentationError if no charset was bound or either string contains a
// byte outside it.
func (s *FpSemigroup) AddRuleString(u, v string) error {
	uw, vw, err := s.decodeStrings(u, v)
	if err != nil {
		return err
	}
	return s.AddRule(uw, vw)
}

func (s *FpSemigroup) decodeStrings(u, v string) (word.Word, word.Word, error) {
	if s.alphabet == nil {
		return nil, nil, fmt.Errorf("%w: no charset bound, use NewFromCharset", ErrPresentationError)
	}
	uw, err := s.alphabet.FromString(u)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrPresentationError, err)
	}
	vw, err := s.alphabet.FromString(v)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrPresentationError, err)
	}
	return uw, vw, nil
}

// Rules returns the presentation's explicitly added relations (not
// counting any synthesized identity relations), in insertion order —
// spec.md §4.5's cbegin_rules()/cend_rules().
func (s *FpSemigroup) Rules() []presentation.Relation {
	return s.pres.ExplicitRelations()
}

// Started reports whether any engine has begun running.
func (s *FpSemigroup) Started() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.started
}

// Finished reports whether some engine has produced a cached verdict
// (a finished kb/tc interleave race, or — on the concrete-semigroup path —
// a finished Froidure-Pin enumeration).
func (s *FpSemigroup) Finished() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fpIsGroundTruth {
		return s.fpEngine.Finished()
	}
	return s.answeredBy != engineNone
}

// HasKnuthBendix reports whether a Knuth-Bendix engine has been created.
func (s *FpSemigroup) HasKnuthBendix() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.kbEngine != nil
}

// HasToddCoxeter reports whether a Todd-Coxeter engine has been created.
func (s *FpSemigroup) HasToddCoxeter() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tcEngine != nil
}

// HasFroidurePin reports whether a Froidure-Pin engine has been created
// (eagerly, via NewFromElements, or lazily via a completed kb/tc handoff).
func (s *FpSemigroup) HasFroidurePin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fpEngine != nil
}

// KnuthBendix returns the façade's Knuth-Bendix engine, if one has been
// created.
func (s *FpSemigroup) KnuthBendix() (*kb.KnuthBendix, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.kbEngine, s.kbEngine != nil
}

// ToddCoxeter returns the façade's Todd-Coxeter engine, if one has been
// created.
func (s *FpSemigroup) ToddCoxeter() (*tc.Table, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tcEngine, s.tcEngine != nil
}

// FroidurePin returns the façade's Froidure-Pin engine, lazily building one
// from whichever of kb/tc has finished if neither was supplied directly
// (NewFromElements) nor built yet. Returns false if no engine has finished.
func (s *FpSemigroup) FroidurePin() (*fp.FroidurePin, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fpEngine != nil {
		return s.fpEngine, true
	}
	switch s.answeredBy {
	case engineKB:
		fpEngine, err := fp.NewFromKnuthBendix(s.kbEngine)
		if err != nil {
			return nil, false
		}
		s.fpEngine = fpEngine
		return fpEngine, true
	case engineTC:
		fpEngine, err := s.buildFPFromTCLocked()
		if err != nil {
			return nil, false
		}
		s.fpEngine = fpEngine
		return fpEngine, true
	default:
		return nil, false
	}
}
