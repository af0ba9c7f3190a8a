// SPDX-License-Identifier: MIT
package kb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shortlex/fpsemi/order"
	"github.com/shortlex/fpsemi/presentation"
	"github.com/shortlex/fpsemi/rewrite"
	"github.com/shortlex/fpsemi/word"
)

// KnuthBendix runs Knuth-Bendix completion over a presentation, growing a
// rewrite.System toward confluence one critical pair at a time. The zero
// value is not usable; construct with New.
type KnuthBendix struct {
	pres  *presentation.Presentation
	sys   *rewrite.System
	order order.Order

	strategy         Strategy
	maxRules         int
	maxOverlapLength int
	report           bool

	rules   []rewrite.Rule // insertion-ordered mirror of sys's rules, stable indices
	pending pairQueue
	started bool
	done    bool
}

// New returns a KnuthBendix that will complete p (which is cloned, leaving
// the caller's presentation unfrozen and independently mutable).
func New(p *presentation.Presentation, opts ...Option) *KnuthBendix {
	kb := &KnuthBendix{
		pres:  p.Clone(),
		order: order.ShortLex{},
	}
	for _, opt := range opts {
		opt(kb)
	}
	kb.sys = rewrite.NewSystem(kb.order)
	if kb.maxRules > 0 {
		kb.sys.SetMaxRules(kb.maxRules)
	}
	kb.pending.byLength = kb.strategy == StrategyOverlapLength
	return kb
}

// AddRule adds the relation u = v to the underlying presentation. Returns
// ErrAlreadyStarted once Step has been called once, since completion state
// (the pending-pair queue) assumes a fixed initial rule set.
func (k *KnuthBendix) AddRule(u, v word.Word) error {
	if k.started {
		return fmt.Errorf("AddRule: %w", ErrAlreadyStarted)
	}
	return k.pres.AddRule(u, v)
}

// Order returns the reduction order completion is using.
func (k *KnuthBendix) Order() order.Order { return k.order }

// AlphabetSize returns the number of generators in the presentation being
// completed.
func (k *KnuthBendix) AlphabetSize() int { return k.pres.AlphabetSize() }

// NrActiveRules returns the number of rules discovered so far.
func (k *KnuthBendix) NrActiveRules() int { return k.sys.NrActiveRules() }

// Rules returns a snapshot of the engine's current rule set.
func (k *KnuthBendix) Rules() []rewrite.Rule { return k.sys.Rules() }

// Confluent reports whether the current rule set is confluent. During an
// in-progress completion this recomputes the check each call; once Step has
// returned Finished, it is guaranteed true.
func (k *KnuthBendix) Confluent() bool {
	if k.done {
		return true
	}
	return k.sys.Confluent()
}

// Rewrite returns w's normal form with respect to the current rule set.
func (k *KnuthBendix) Rewrite(w word.Word) word.Word { return k.sys.Rewrite(w) }

// EqualTo reports whether u and v rewrite to the same normal form under the
// current rule set. If completion has not finished, a false positive is
// impossible but a false negative is (the rule set may not yet be
// confluent, so two equal words might still have distinct un-reduced
// normal forms) — callers needing a definite answer should Run to
// completion first, or defer to fpsemi's cross-engine fallback.
func (k *KnuthBendix) EqualTo(u, v word.Word) bool {
	return word.Equal(k.sys.Rewrite(u), k.sys.Rewrite(v))
}

// Finished reports whether completion has reached a confluent rule set.
func (k *KnuthBendix) Finished() bool { return k.done }

// Started reports whether Step has been called at least once.
func (k *KnuthBendix) Started() bool { return k.started }

// start seeds the rewrite system from the presentation's relations
// (including any synthesized identity relations) and enqueues every initial
// pair for overlap checking.
func (k *KnuthBendix) start() error {
	k.started = true
	k.pres.Freeze()
	for _, rel := range k.pres.Relations() {
		if err := k.addRuleAndEnqueue(rel.U, rel.V); err != nil {
			return err
		}
	}
	return nil
}

// addRuleAndEnqueue orients and adds a rule to the system (if not trivial),
// records it in the insertion-ordered mirror, and enqueues every pair it
// forms with an existing rule (including itself, for self-overlaps).
func (k *KnuthBendix) addRuleAndEnqueue(u, v word.Word) error {
	added, err := k.sys.AddRule(u, v)
	if err != nil {
		if errors.Is(err, rewrite.ErrResourceExhausted) {
			return fmt.Errorf("addRuleAndEnqueue: %w", ErrResourceExhausted)
		}
		return err
	}
	if !added {
		return nil
	}
	greater, lesser := order.Max(k.order, u, v)
	newRule := rewrite.Rule{LHS: word.Clone(greater), RHS: word.Clone(lesser)}
	newIdx := len(k.rules)
	k.rules = append(k.rules, newRule)
	for other := 0; other <= newIdx; other++ {
		k.pending.push(pendingPair{i: newIdx, j: other, priority: len(k.rules[other].LHS) + len(newRule.LHS)})
	}
	if k.report {
		fmt.Printf("kb: rule %d: %v -> %v (%d pending)\n", newIdx, newRule.LHS, newRule.RHS, k.pending.Len())
	}
	return nil
}

// Step performs one unit of completion work: on the first call it seeds the
// rule set from the presentation; thereafter it pops one pending pair,
// examines every critical-pair overlap between its two rules, and adds any
// rule that overlap's critical pair forces. It returns Finished once the
// pending queue empties, or Interrupted if ctx is done.
func (k *KnuthBendix) Step(ctx context.Context) (Status, error) {
	if k.done {
		return Finished, nil
	}
	if err := ctx.Err(); err != nil {
		return Interrupted, fmt.Errorf("Step: %w: %w", ErrInterrupted, err)
	}
	if !k.started {
		if err := k.start(); err != nil {
			return Progressed, err
		}
		if k.pending.empty() {
			k.done = true
			k.sys.Interreduce()
			return Finished, nil
		}
		return Progressed, nil
	}

	if k.pending.empty() {
		k.done = true
		k.sys.Interreduce()
		return Finished, nil
	}

	pair := k.pending.pop()
	a, b := k.rules[pair.i], k.rules[pair.j]
	cands := rewrite.Overlaps(a.LHS, b.LHS)
	if pair.i != pair.j {
		// Overlaps(a, b) lists a containing b but not b containing a.
		for _, ov := range rewrite.Overlaps(b.LHS, a.LHS) {
			if len(ov.Word) == len(b.LHS) {
				cands = append(cands, rewrite.OverlapCandidate{Word: ov.Word, OffsetA: ov.OffsetB, OffsetB: ov.OffsetA})
			}
		}
	}
	for _, ov := range cands {
		if k.maxOverlapLength > 0 && len(ov.Word) > k.maxOverlapLength {
			continue
		}
		left := rewrite.ApplyRuleAt(ov.Word, a, ov.OffsetA)
		right := rewrite.ApplyRuleAt(ov.Word, b, ov.OffsetB)
		nLeft := k.sys.Rewrite(left)
		nRight := k.sys.Rewrite(right)
		if word.Equal(nLeft, nRight) {
			continue
		}
		if err := k.addRuleAndEnqueue(nLeft, nRight); err != nil {
			return Progressed, err
		}
	}
	return Progressed, nil
}

// Run steps until completion finishes or ctx is done.
func (k *KnuthBendix) Run(ctx context.Context) error {
	for {
		status, err := k.Step(ctx)
		if err != nil {
			return err
		}
		if status != Progressed {
			return nil
		}
	}
}

// RunFor steps for at most d before returning, regardless of whether
// completion has finished. A deadline expiring is not reported as an
// error — the caller can check Finished() to see whether completion
// actually converged in time.
func (k *KnuthBendix) RunFor(ctx context.Context, d time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, d)
	defer cancel()
	err := k.Run(ctx)
	if err != nil && (errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled)) {
		return nil
	}
	return err
}
