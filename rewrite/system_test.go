package rewrite_test

import (
	"testing"

	"github.com/shortlex/fpsemi/order"
	"github.com/shortlex/fpsemi/rewrite"
	"github.com/shortlex/fpsemi/word"

	"github.com/stretchr/testify/require"
)

func TestAddRuleOrientsByOrder(t *testing.T) {
	sys := rewrite.NewSystem(order.ShortLex{})
	added, err := sys.AddRule(word.Word{0}, word.Word{0, 0})
	require.NoError(t, err)
	require.True(t, added)

	rules := sys.Rules()
	require.Len(t, rules, 1)
	require.True(t, word.Equal(word.Word{0, 0}, rules[0].LHS))
	require.True(t, word.Equal(word.Word{0}, rules[0].RHS))
}

func TestAddRuleTrivialIsNoOp(t *testing.T) {
	sys := rewrite.NewSystem(order.ShortLex{})
	added, err := sys.AddRule(word.Word{0, 1}, word.Word{0, 1})
	require.NoError(t, err)
	require.False(t, added)
	require.Equal(t, 0, sys.NrActiveRules())
}

func TestRewriteAppliesRulesToFixpoint(t *testing.T) {
	sys := rewrite.NewSystem(order.ShortLex{})
	// a^3 = a, so any run of a's collapses to a single a.
	_, err := sys.AddRule(word.Word{0, 0, 0}, word.Word{0})
	require.NoError(t, err)

	out := sys.Rewrite(word.Word{0, 0, 0, 0, 0})
	require.True(t, word.Equal(word.Word{0}, out))
}

func TestMaxRulesCap(t *testing.T) {
	sys := rewrite.NewSystem(order.ShortLex{})
	sys.SetMaxRules(1)
	_, err := sys.AddRule(word.Word{0, 0}, word.Word{0})
	require.NoError(t, err)
	_, err = sys.AddRule(word.Word{1, 1}, word.Word{1})
	require.ErrorIs(t, err, rewrite.ErrResourceExhausted)
}

func TestConfluentOnEmptySystem(t *testing.T) {
	sys := rewrite.NewSystem(order.ShortLex{})
	require.True(t, sys.Confluent())
}

func TestOverlapsTracksBothPatternOffsets(t *testing.T) {
	// a = [0,1], b = [1,0]: a's suffix "1" overlaps b's prefix "1" (b shifts
	// right of a), and b's suffix "0" overlaps a's prefix "0" (a shifts right
	// of b). Each candidate's OffsetA/OffsetB must reflect where that
	// particular pattern landed, not assume either is always at 0.
	candidates := rewrite.Overlaps(word.Word{0, 1}, word.Word{1, 0})
	require.Len(t, candidates, 2)

	require.Equal(t, word.Word{0, 1, 0}, candidates[0].Word)
	require.Equal(t, 0, candidates[0].OffsetA)
	require.Equal(t, 1, candidates[0].OffsetB)

	require.Equal(t, word.Word{1, 0, 1}, candidates[1].Word)
	require.Equal(t, 1, candidates[1].OffsetA)
	require.Equal(t, 0, candidates[1].OffsetB)
}

func TestConfluentDetectsDivergence(t *testing.T) {
	sys := rewrite.NewSystem(order.ShortLex{})
	// 010 contains 10 at offset 1: rewriting it by the first rule gives 0,
	// by the second gives 01, and both are irreducible: not confluent.
	_, err := sys.AddRule(word.Word{0, 1, 0}, word.Word{0})
	require.NoError(t, err)
	_, err = sys.AddRule(word.Word{1, 0}, word.Word{1})
	require.NoError(t, err)
	require.False(t, sys.Confluent())
}

func TestInterreduceRemovesRedundantRules(t *testing.T) {
	sys := rewrite.NewSystem(order.ShortLex{})
	_, err := sys.AddRule(word.Word{0, 0}, word.Word{0})
	require.NoError(t, err)
	_, err = sys.AddRule(word.Word{0, 0, 0}, word.Word{0})
	require.NoError(t, err)

	sys.Interreduce()
	require.Equal(t, 1, sys.NrActiveRules())
}
