package fpsemi_test

import (
	"context"
	"testing"

	"github.com/shortlex/fpsemi"
	"github.com/shortlex/fpsemi/fp"
	"github.com/shortlex/fpsemi/word"

	"github.com/stretchr/testify/require"
)

// Seed scenario #1 (spec §8): alphabet {a, b}, rules aaa = a, a = bb.
func TestSeedScenarioOneSizeFive(t *testing.T) {
	s := fpsemi.New(2)
	require.NoError(t, s.AddRule(word.Word{0, 0, 0}, word.Word{0}))
	require.NoError(t, s.AddRule(word.Word{0}, word.Word{1, 1}))

	require.False(t, s.IsObviouslyInfinite())

	sz, err := s.Size(context.Background())
	require.NoError(t, err)
	require.True(t, sz.IsFinite())
	n, _ := sz.Value()
	require.Equal(t, 5, n)
}

// Seed scenario #4 (spec §8): alphabet {a, b}, rules aa=a, ab=a, ba=a, with
// no bound on b's powers.
func TestSeedScenarioFourObviouslyInfinite(t *testing.T) {
	s := fpsemi.New(2)
	require.NoError(t, s.AddRule(word.Word{0, 0}, word.Word{0}))
	require.NoError(t, s.AddRule(word.Word{0, 1}, word.Word{0}))
	require.NoError(t, s.AddRule(word.Word{1, 0}, word.Word{0}))

	require.True(t, s.IsObviouslyInfinite())

	sz, err := s.Size(context.Background())
	require.NoError(t, err)
	require.False(t, sz.IsFinite())

	eq, err := s.EqualTo(context.Background(), word.Word{0, 1}, word.Word{0})
	require.NoError(t, err)
	require.True(t, eq)
}

func TestEmptyPresentationAndAlphabetSizeZero(t *testing.T) {
	s := fpsemi.New(0)
	sz, err := s.Size(context.Background())
	require.NoError(t, err)
	require.True(t, sz.IsFinite())
	n, _ := sz.Value()
	require.Equal(t, 0, n)
}

func TestEmptyRelationsNonEmptyAlphabetIsInfinite(t *testing.T) {
	s := fpsemi.New(1)
	require.True(t, s.IsObviouslyInfinite())

	sz, err := s.Size(context.Background())
	require.NoError(t, err)
	require.False(t, sz.IsFinite())
}

func TestDuplicateRelationDoesNotChangeSize(t *testing.T) {
	s := fpsemi.New(2)
	require.NoError(t, s.AddRule(word.Word{0, 0, 0}, word.Word{0}))
	require.NoError(t, s.AddRule(word.Word{0}, word.Word{1, 1}))

	sz1, err := s.Size(context.Background())
	require.NoError(t, err)

	s2 := fpsemi.New(2)
	require.NoError(t, s2.AddRule(word.Word{0, 0, 0}, word.Word{0}))
	require.NoError(t, s2.AddRule(word.Word{0}, word.Word{1, 1}))
	require.NoError(t, s2.AddRule(word.Word{0, 0, 0}, word.Word{0})) // duplicate

	sz2, err := s2.Size(context.Background())
	require.NoError(t, err)
	require.Equal(t, sz1, sz2)
}

func TestAddRuleAfterStartedIsFrozen(t *testing.T) {
	s := fpsemi.New(2)
	require.NoError(t, s.AddRule(word.Word{0, 0, 0}, word.Word{0}))
	require.NoError(t, s.AddRule(word.Word{0}, word.Word{1, 1}))
	_, err := s.Size(context.Background())
	require.NoError(t, err)

	err = s.AddRule(word.Word{0}, word.Word{1})
	require.ErrorIs(t, err, fpsemi.ErrPresentationFrozen)
}

func TestAddRuleOutOfRangeLetter(t *testing.T) {
	s := fpsemi.New(2)
	err := s.AddRule(word.Word{5}, word.Word{0})
	require.ErrorIs(t, err, fpsemi.ErrPresentationError)
}

func TestNormalFormRoundTripsWithEqualTo(t *testing.T) {
	s := fpsemi.New(2)
	require.NoError(t, s.AddRule(word.Word{0, 0, 0}, word.Word{0}))
	require.NoError(t, s.AddRule(word.Word{0}, word.Word{1, 1}))

	nf0, err := s.NormalForm(context.Background(), word.Word{0, 0, 0})
	require.NoError(t, err)
	nf1, err := s.NormalForm(context.Background(), word.Word{0})
	require.NoError(t, err)
	require.True(t, word.Equal(nf0, nf1))

	eq, err := s.EqualTo(context.Background(), word.Word{0, 0, 0}, word.Word{0})
	require.NoError(t, err)
	require.True(t, eq)
}

func TestNewFromCharsetRoundTripsStrings(t *testing.T) {
	s, err := fpsemi.NewFromCharset("ab")
	require.NoError(t, err)
	require.NoError(t, s.AddRuleString("aaa", "a"))
	require.NoError(t, s.AddRuleString("a", "bb"))

	eq, err := s.EqualToString(context.Background(), "aaaaa", "a")
	require.NoError(t, err)
	require.True(t, eq)
}

func TestNewFromElementsUsesFroidurePinGroundTruth(t *testing.T) {
	gens := []fp.Element{cyclicTestElement{v: 1, n: 4}}
	s, err := fpsemi.NewFromElements(gens)
	require.NoError(t, err)

	sz, err := s.Size(context.Background())
	require.NoError(t, err)
	require.True(t, sz.IsFinite())
	n, _ := sz.Value()
	require.Equal(t, 4, n)

	eq, err := s.EqualTo(context.Background(), word.Word{0, 0, 0, 0}, word.Word{0, 0, 0, 0, 0, 0, 0, 0})
	require.NoError(t, err)
	require.True(t, eq)
}

type cyclicTestElement struct {
	v, n int
}

func (e cyclicTestElement) Equal(other fp.Element) bool {
	o, ok := other.(cyclicTestElement)
	return ok && e.v == o.v && e.n == o.n
}

func (e cyclicTestElement) Multiply(other fp.Element) (fp.Element, error) {
	o := other.(cyclicTestElement)
	return cyclicTestElement{v: (e.v + o.v) % e.n, n: e.n}, nil
}

func (e cyclicTestElement) Hash() uint64 { return uint64(e.v) }

func (e cyclicTestElement) Copy() fp.Element { return e }
