package fpsemi

import (
	"context"
	"errors"
	"fmt"

	"github.com/shortlex/fpsemi/fp"
	"github.com/shortlex/fpsemi/kb"
	"github.com/shortlex/fpsemi/tc"
	"github.com/shortlex/fpsemi/word"
)

// ensureStarted freezes the presentation and creates kb/tc engines on the
// first heavy query, per spec.md §4.5's dispatch policy. It is a no-op on
// the concrete-semigroup path (NewFromElements), since that path's ground
// truth is already the fpEngine set at construction.
func (s *FpSemigroup) ensureStarted() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureStartedLocked()
}

func (s *FpSemigroup) ensureStartedLocked() {
	if s.started {
		return
	}
	s.started = true
	if s.fpIsGroundTruth {
		return
	}
	s.pres.Freeze()
	s.kbEngine = kb.New(s.pres, kb.WithMaxRules(s.maxRules), kb.WithReport(s.report))
	s.tcEngine = tc.NewFromPresentation(s.pres, tc.WithMaxCosets(s.maxCosets), tc.WithReport(s.report))
}

// interleave races kb and tc in fixed-size time slices (spec.md §4.5, §5)
// until one of them finishes, both exhaust their resource caps, or ctx is
// done. It caches the winner's kind (answeredBy); nothing is passed to the
// losing engine, which is simply no longer stepped. If a cached verdict
// already exists, it returns immediately.
func (s *FpSemigroup) interleave(ctx context.Context) error {
	s.mu.Lock()
	s.ensureStartedLocked()
	if s.fpIsGroundTruth || s.answeredBy != engineNone {
		s.mu.Unlock()
		return nil
	}
	kbEngine, tcEngine := s.kbEngine, s.tcEngine
	slice := s.slice
	preferred := s.preferred
	s.mu.Unlock()

	var kbDead, tcDead bool
	for {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("interleave: %w: %w", ErrInterrupted, err)
		}

		runKB := func() (bool, error) {
			if kbDead {
				return false, nil
			}
			for i := 0; i < slice; i++ {
				status, err := kbEngine.Step(ctx)
				if status == kb.Interrupted {
					return false, nil
				}
				if err != nil {
					if errors.Is(err, kb.ErrResourceExhausted) {
						kbDead = true
						return false, nil
					}
					return false, err
				}
				if status == kb.Finished {
					return true, nil
				}
			}
			return false, nil
		}
		runTC := func() (bool, error) {
			if tcDead {
				return false, nil
			}
			for i := 0; i < slice; i++ {
				status, err := tcEngine.Step(ctx)
				if status == tc.Interrupted {
					return false, nil
				}
				if err != nil {
					if errors.Is(err, tc.ErrResourceExhausted) {
						tcDead = true
						return false, nil
					}
					return false, err
				}
				if status == tc.Finished {
					return true, nil
				}
			}
			return false, nil
		}

		first, second := runKB, runTC
		firstKind, secondKind := engineKB, engineTC
		if preferred == PreferToddCoxeter {
			first, second = runTC, runKB
			firstKind, secondKind = engineTC, engineKB
		}

		won, err := first()
		if err != nil {
			return err
		}
		if won {
			s.onEngineFinished(firstKind)
			return nil
		}
		won, err = second()
		if err != nil {
			return err
		}
		if won {
			s.onEngineFinished(secondKind)
			return nil
		}

		if kbDead && tcDead {
			return fmt.Errorf("interleave: %w", ErrResourceExhausted)
		}
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("interleave: %w: %w", ErrInterrupted, err)
		}
	}
}

// onEngineFinished caches which engine answered the race. It does not
// eagerly build the loser's derived artefact (fp from kb's rules, or fp
// from tc's coset table) — that happens lazily in FroidurePin(), and in
// Size for either winner, since building it is itself a potentially
// unbounded operation that should run under the caller's ctx, not this
// race's.
func (s *FpSemigroup) onEngineFinished(kind engineKind) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.answeredBy == engineNone {
		s.answeredBy = kind
	}
}

func (s *FpSemigroup) cacheSize(sz Size) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sizeCache = &sz
}

// cachedSize returns a previously computed size, if any.
func (s *FpSemigroup) cachedSize() (Size, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sizeCache == nil {
		return Size{}, false
	}
	return *s.sizeCache, true
}

// validateWords reports ErrPresentationError if any letter in the given
// words is outside the presentation's alphabet.
func (s *FpSemigroup) validateWords(ws ...word.Word) error {
	for _, w := range ws {
		if !s.pres.ValidWord(w) {
			return fmt.Errorf("%w: letter out of range", ErrPresentationError)
		}
	}
	return nil
}

// Size returns the element count of the quotient, racing kb and tc (or
// consulting the concrete ground-truth Froidure-Pin) as needed. It may
// block until ctx is done if the quotient's finiteness cannot be resolved
// in time — spec.md §4.5 and §8 both document this as expected behaviour
// for presentations whose finiteness is undecidable by the heuristics and
// engines available here.
func (s *FpSemigroup) Size(ctx context.Context) (Size, error) {
	if sz, ok := s.cachedSize(); ok {
		return sz, nil
	}
	if s.AlphabetSize() == 0 {
		sz := FiniteSize(0)
		s.cacheSize(sz)
		return sz, nil
	}

	s.mu.Lock()
	groundTruth := s.fpIsGroundTruth
	fpEngine := s.fpEngine
	s.mu.Unlock()
	if groundTruth {
		n, err := fpEngine.Size()
		if err != nil {
			return Size{}, fmt.Errorf("Size: %w", err)
		}
		sz := FiniteSize(n)
		s.cacheSize(sz)
		return sz, nil
	}

	if s.IsObviouslyInfinite() {
		sz := InfiniteSize()
		s.cacheSize(sz)
		return sz, nil
	}

	if err := s.interleave(ctx); err != nil {
		return Size{}, err
	}

	s.mu.Lock()
	answeredBy := s.answeredBy
	s.mu.Unlock()

	switch answeredBy {
	case engineTC:
		fpFromTC, err := s.ensureFPFromTC()
		if err != nil {
			return Size{}, fmt.Errorf("Size: %w", err)
		}
		if err := fpFromTC.Run(ctx); err != nil {
			return Size{}, fmt.Errorf("Size: %w", err)
		}
		sz := FiniteSize(fpFromTC.CurrentSize())
		s.cacheSize(sz)
		return sz, nil
	case engineKB:
		fpEngine, err := s.ensureFPFromKB()
		if err != nil {
			return Size{}, fmt.Errorf("Size: %w", err)
		}
		if err := fpEngine.Run(ctx); err != nil {
			return Size{}, fmt.Errorf("Size: %w", err)
		}
		sz := FiniteSize(fpEngine.CurrentSize())
		s.cacheSize(sz)
		return sz, nil
	default:
		return Size{}, fmt.Errorf("Size: %w", ErrUnfinished)
	}
}

// EqualTo reports whether u and v name the same element of the quotient.
func (s *FpSemigroup) EqualTo(ctx context.Context, u, v word.Word) (bool, error) {
	if err := s.validateWords(u, v); err != nil {
		return false, err
	}
	if word.Equal(u, v) {
		return true, nil
	}

	s.mu.Lock()
	groundTruth := s.fpIsGroundTruth
	fpEngine := s.fpEngine
	s.mu.Unlock()
	if groundTruth {
		// WordToElement's table lookup only sees elements Enumerate has
		// already discovered; run to closure first so a not-yet-seen
		// element reads as "not found" only when it is genuinely outside
		// the (finite) semigroup, never because enumeration simply hasn't
		// reached it yet.
		if err := fpEngine.Run(ctx); err != nil {
			return false, fmt.Errorf("EqualTo: %w", err)
		}
		elU, idU, err := fpEngine.WordToElement(u)
		if err != nil {
			return false, fmt.Errorf("EqualTo: %w: %v", ErrElementError, err)
		}
		elV, idV, err := fpEngine.WordToElement(v)
		if err != nil {
			return false, fmt.Errorf("EqualTo: %w: %v", ErrElementError, err)
		}
		if idU >= 0 && idV >= 0 {
			return idU == idV, nil
		}
		return elU.Equal(elV), nil
	}

	s.ensureStarted()
	s.mu.Lock()
	kbEngine := s.kbEngine
	s.mu.Unlock()
	if kbEngine != nil && kbEngine.EqualTo(u, v) {
		// Sound even mid-completion: kb.KnuthBendix.EqualTo never returns a
		// false positive, only a possible false negative (spec.md §4.2).
		return true, nil
	}

	if err := s.interleave(ctx); err != nil {
		return false, err
	}

	s.mu.Lock()
	answeredBy := s.answeredBy
	tcEngine := s.tcEngine
	s.mu.Unlock()
	switch answeredBy {
	case engineKB:
		return kbEngine.EqualTo(u, v), nil
	case engineTC:
		cu, err := tcEngine.WordToClass(u)
		if err != nil {
			return false, fmt.Errorf("EqualTo: %w", err)
		}
		cv, err := tcEngine.WordToClass(v)
		if err != nil {
			return false, fmt.Errorf("EqualTo: %w", err)
		}
		return cu == cv, nil
	default:
		return false, fmt.Errorf("EqualTo: %w", ErrUnfinished)
	}
}

// EqualToString decodes u, v through the bound charset and calls EqualTo.
func (s *FpSemigroup) EqualToString(ctx context.Context, u, v string) (bool, error) {
	uw, vw, err := s.decodeStrings(u, v)
	if err != nil {
		return false, err
	}
	return s.EqualTo(ctx, uw, vw)
}

// NormalForm returns a canonical representative of w's class: kb's
// rewritten form if kb is confluent (preferred, per spec.md §5's
// cross-engine tie-break, since shortlex rewriting is already canonical),
// otherwise tc's shortest/lexicographically-least class representative.
func (s *FpSemigroup) NormalForm(ctx context.Context, w word.Word) (word.Word, error) {
	if err := s.validateWords(w); err != nil {
		return nil, err
	}

	s.mu.Lock()
	groundTruth := s.fpIsGroundTruth
	fpEngine := s.fpEngine
	s.mu.Unlock()
	if groundTruth {
		if err := fpEngine.Run(ctx); err != nil {
			return nil, fmt.Errorf("NormalForm: %w", err)
		}
		_, id, err := fpEngine.WordToElement(w)
		if err != nil {
			return nil, fmt.Errorf("NormalForm: %w: %v", ErrElementError, err)
		}
		nf, err := fpEngine.Factorisation(id)
		if err != nil {
			return nil, fmt.Errorf("NormalForm: %w", err)
		}
		return nf, nil
	}

	s.ensureStarted()
	s.mu.Lock()
	kbEngine := s.kbEngine
	s.mu.Unlock()
	// Confluent() is only a meaningful signal once completion has actually
	// seeded and examined the rule set — on a freshly created engine it is
	// vacuously true (zero rules trivially have no conflicting overlaps),
	// which would wrongly short-circuit to an un-rewritten word.
	if kbEngine != nil && kbEngine.Started() && kbEngine.Confluent() {
		return kbEngine.Rewrite(w), nil
	}

	if err := s.interleave(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	answeredBy := s.answeredBy
	tcEngine := s.tcEngine
	s.mu.Unlock()
	switch answeredBy {
	case engineKB:
		return kbEngine.Rewrite(w), nil
	case engineTC:
		if err := tcEngine.Standardize(); err != nil {
			return nil, fmt.Errorf("NormalForm: %w", err)
		}
		c, err := tcEngine.WordToClass(w)
		if err != nil {
			return nil, fmt.Errorf("NormalForm: %w", err)
		}
		nf, err := tcEngine.ClassToWord(c)
		if err != nil {
			return nil, fmt.Errorf("NormalForm: %w", err)
		}
		return nf, nil
	default:
		return nil, fmt.Errorf("NormalForm: %w", ErrUnfinished)
	}
}

// NormalFormString decodes w through the bound charset, computes its
// normal form, and re-encodes the result.
func (s *FpSemigroup) NormalFormString(ctx context.Context, w string) (string, error) {
	if s.alphabet == nil {
		return "", fmt.Errorf("NormalFormString: %w: no charset bound, use NewFromCharset", ErrPresentationError)
	}
	ww, err := s.alphabet.FromString(w)
	if err != nil {
		return "", fmt.Errorf("NormalFormString: %w: %v", ErrPresentationError, err)
	}
	nf, err := s.NormalForm(ctx, ww)
	if err != nil {
		return "", err
	}
	out, err := s.alphabet.ToString(nf)
	if err != nil {
		return "", fmt.Errorf("NormalFormString: %w: %v", ErrPresentationError, err)
	}
	return out, nil
}

// ensureFPFromKB lazily builds (and caches) a Froidure-Pin enumeration
// seeded from the façade's finished Knuth-Bendix engine, per spec.md
// §4.5's "KB passes a confluent system to FP" handoff.
func (s *FpSemigroup) ensureFPFromKB() (*fp.FroidurePin, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fpEngine != nil {
		return s.fpEngine, nil
	}
	fpEngine, err := fp.NewFromKnuthBendix(s.kbEngine)
	if err != nil {
		return nil, err
	}
	s.fpEngine = fpEngine
	return fpEngine, nil
}

// ensureFPFromTC lazily builds (and caches) a Froidure-Pin enumeration
// seeded from the façade's finished Todd-Coxeter coset table — the same
// handoff FroidurePin() uses for its tc-wins branch, and the reason Size
// must go through it rather than tc.Table.NrClasses: NrClasses counts every
// live class, including coset 0, the empty-word class tc always allocates
// as its starting point. classElementGenerators only reaches coset 0 if
// some product of the alphabet's generator images actually lands there, so
// enumerating through it reports the semigroup's element count, not the
// monoid's, for a presentation with no identity.
func (s *FpSemigroup) ensureFPFromTC() (*fp.FroidurePin, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fpEngine != nil {
		return s.fpEngine, nil
	}
	fpEngine, err := s.buildFPFromTCLocked()
	if err != nil {
		return nil, err
	}
	s.fpEngine = fpEngine
	return fpEngine, nil
}

// buildFPFromTCLocked builds a Froidure-Pin enumeration whose elements are
// the façade's finished Todd-Coxeter classes, per spec.md §4.5's symmetric
// handoff ("FP passes a Cayley graph to TC" implies the reverse is equally
// legitimate once TC alone has finished: TC's coset table already *is* a
// Cayley graph over a known-finite element set). Callers must hold s.mu.
func (s *FpSemigroup) buildFPFromTCLocked() (*fp.FroidurePin, error) {
	// Renumber first, so the class ids held by the classElements are not
	// invalidated by a later Standardize (NormalForm calls it).
	if err := s.tcEngine.Standardize(); err != nil {
		return nil, err
	}
	gens, err := classElementGenerators(s.tcEngine)
	if err != nil {
		return nil, err
	}
	fpEngine, err := fp.NewFromGenerators(gens, fp.WithMaxElements(s.maxCosets))
	if err != nil {
		return nil, err
	}
	// tc already certified the quotient finite (NrClasses succeeded), so
	// this enumeration is bounded regardless of ctx.
	if err := fpEngine.Run(context.Background()); err != nil {
		return nil, err
	}
	return fpEngine, nil
}
