// SPDX-License-Identifier: MIT
package rewrite

import (
	"fmt"
	"sort"
	"sync"

	"github.com/shortlex/fpsemi/order"
	"github.com/shortlex/fpsemi/word"
)

// Rule is an oriented rewrite rule LHS -> RHS. A well-formed rule always has
// LHS strictly greater than RHS under the System's order.
type Rule struct {
	LHS, RHS word.Word
}

// maxRewriteSteps bounds the number of rule applications Rewrite will
// perform before giving up and returning the word as far as it got. A
// terminating (shortlex-oriented) rule set never gets close to this bound in
// practice; it exists only to stop a not-yet-confluent, mid-completion rule
// set from looping forever inside a single Rewrite call.
const maxRewriteSteps = 1 << 20

// System is a set of oriented rewrite rules plus the order that oriented
// them. It is safe for concurrent use.
type System struct {
	mu       sync.RWMutex
	order    order.Order
	rules    []Rule
	maxRules int // 0 means unbounded
}

// NewSystem returns an empty rule set oriented by ord.
func NewSystem(ord order.Order) *System {
	return &System{order: ord}
}

// SetMaxRules caps the number of rules AddRule will accept; 0 disables the
// cap. Intended for kb.WithMaxRules to bound memory during completion of a
// presentation that may be infinite.
func (s *System) SetMaxRules(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.maxRules = n
}

// Order returns the order used to orient rules.
func (s *System) Order() order.Order {
	return s.order
}

// AddRule orients u, v by the system's order and appends the resulting rule.
// If u and v are already equal, AddRule is a no-op and returns false. It
// returns ErrResourceExhausted if doing so would exceed a configured
// maximum rule count.
func (s *System) AddRule(u, v word.Word) (bool, error) {
	greater, lesser := order.Max(s.order, u, v)
	if word.Equal(greater, lesser) {
		return false, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.maxRules > 0 && len(s.rules) >= s.maxRules {
		return false, fmt.Errorf("AddRule: %w", ErrResourceExhausted)
	}
	s.rules = append(s.rules, Rule{LHS: word.Clone(greater), RHS: word.Clone(lesser)})
	return true, nil
}

// NrActiveRules returns the number of rules currently in the system.
func (s *System) NrActiveRules() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rules)
}

// Rules returns a snapshot of the system's rules, ordered by LHS under the
// system's order (rules with equal LHS keep their insertion order). Callers
// may freely mutate the returned slice.
func (s *System) Rules() []Rule {
	s.mu.RLock()
	out := make([]Rule, len(s.rules))
	copy(out, s.rules)
	s.mu.RUnlock()
	sort.SliceStable(out, func(i, j int) bool {
		return s.order.Less(out[i].LHS, out[j].LHS)
	})
	return out
}

// Rewrite repeatedly applies the first rule (in Rules() order) whose LHS
// occurs as a subword of w, replacing that occurrence, until no rule
// applies or the step bound is reached. The result is w's normal form with
// respect to the current rule set if that set is confluent; otherwise it is
// some word reachable from w by rule application.
func (s *System) Rewrite(w word.Word) word.Word {
	cur := word.Clone(w)
	for step := 0; step < maxRewriteSteps; step++ {
		rules := s.Rules()
		replaced := false
		for _, r := range rules {
			if idx := indexOf(cur, r.LHS); idx >= 0 {
				cur = splice(cur, idx, len(r.LHS), r.RHS)
				replaced = true
				break
			}
		}
		if !replaced {
			return cur
		}
	}
	return cur
}

// Confluent reports whether every critical pair among the system's rules
// rewrites to a common word. It is the caller's (kb's) responsibility to
// invoke this only when it believes completion has stabilized; Confluent
// itself performs the check fresh each call rather than caching, since the
// rule set may have changed.
func (s *System) Confluent() bool {
	rules := s.Rules()
	for i := range rules {
		for j := range rules {
			for _, ov := range Overlaps(rules[i].LHS, rules[j].LHS) {
				left := ApplyRuleAt(ov.Word, rules[i], ov.OffsetA)
				right := ApplyRuleAt(ov.Word, rules[j], ov.OffsetB)
				if !word.Equal(s.Rewrite(left), s.Rewrite(right)) {
					return false
				}
			}
		}
	}
	return true
}

// Interreduce removes redundant rules: any rule whose LHS is rewritable by
// some other rule, and any rule whose RHS is not yet in normal form with
// respect to the rest of the system (its RHS is simplified in place).
// Interreduce is the rewrite-system analogue of core's graph Clone/Clear
// maintenance helpers — housekeeping that does not change what the system
// computes, only how compactly it computes it.
func (s *System) Interreduce() {
	s.mu.Lock()
	rules := make([]Rule, len(s.rules))
	copy(rules, s.rules)
	s.mu.Unlock()

	kept := make([]Rule, 0, len(rules))
	for i, r := range rules {
		redundant := false
		for j, other := range rules {
			if i == j {
				continue
			}
			if idx := indexOf(r.LHS, other.LHS); idx >= 0 && len(other.LHS) < len(r.LHS) {
				redundant = true
				break
			}
		}
		if redundant {
			continue
		}
		rest := NewSystem(s.order)
		for j, other := range rules {
			if j != i {
				rest.rules = append(rest.rules, other)
			}
		}
		r.RHS = rest.Rewrite(r.RHS)
		kept = append(kept, r)
	}

	s.mu.Lock()
	s.rules = kept
	s.mu.Unlock()
}

// indexOf returns the first index at which sub occurs in w, or -1.
func indexOf(w, sub word.Word) int {
	if len(sub) == 0 || len(sub) > len(w) {
		return -1
	}
	for i := 0; i+len(sub) <= len(w); i++ {
		if word.Equal(w[i:i+len(sub)], sub) {
			return i
		}
	}
	return -1
}

// splice returns a copy of w with the n letters starting at idx replaced by
// repl.
func splice(w word.Word, idx, n int, repl word.Word) word.Word {
	out := make(word.Word, 0, len(w)-n+len(repl))
	out = append(out, w[:idx]...)
	out = append(out, repl...)
	out = append(out, w[idx+n:]...)
	return out
}

// OverlapCandidate is a word formed by overlapping two LHS patterns, and the
// offset at which each pattern begins within that word. OffsetA and OffsetB
// are independent: neither is assumed to be 0, since either pattern can end
// up shifted depending on which one's suffix overlapped the other's prefix.
type OverlapCandidate struct {
	Word    word.Word
	OffsetA int
	OffsetB int
}

// Overlaps enumerates every word formed by overlapping a non-trivial suffix
// of a with a non-trivial prefix of b (including a fully containing b, or
// a == b, as a self-overlap). b fully containing a is not listed; the
// critical-pair check for rule pair (a -> ., b -> .) gets that case from
// Overlaps(b, a). Exported for kb, which drives completion by walking these
// candidates for each newly discovered pair of rules.
func Overlaps(a, b word.Word) []OverlapCandidate {
	var out []OverlapCandidate
	// a contains b as a subword: overlap at every occurrence offset.
	for off := 0; off+len(b) <= len(a); off++ {
		if word.Equal(a[off:off+len(b)], b) {
			out = append(out, OverlapCandidate{Word: word.Clone(a), OffsetA: 0, OffsetB: off})
		}
	}
	// proper overlaps: a suffix of a equals a prefix of b (or vice versa).
	maxLen := len(a)
	if len(b) < maxLen {
		maxLen = len(b)
	}
	for k := 1; k < maxLen; k++ {
		if word.Equal(a[len(a)-k:], b[:k]) {
			merged := word.Concat(a[:len(a)-k], b)
			out = append(out, OverlapCandidate{Word: merged, OffsetA: 0, OffsetB: len(a) - k})
		}
		if word.Equal(b[len(b)-k:], a[:k]) {
			merged := word.Concat(b[:len(b)-k], a)
			out = append(out, OverlapCandidate{Word: merged, OffsetA: len(b) - k, OffsetB: 0})
		}
	}
	return out
}

// ApplyRuleAt rewrites w by applying r at the given offset, assuming r.LHS
// occurs there.
func ApplyRuleAt(w word.Word, r Rule, offset int) word.Word {
	if offset+len(r.LHS) > len(w) || !word.Equal(w[offset:offset+len(r.LHS)], r.LHS) {
		return word.Clone(w)
	}
	return splice(w, offset, len(r.LHS), r.RHS)
}

// ByteSize estimates the system's memory footprint in letters (the total
// length of all rule sides). kb does not consult it; kb's resource cap is a
// rule count.
func (s *System) ByteSize() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, r := range s.rules {
		n += len(r.LHS) + len(r.RHS)
	}
	return n
}
