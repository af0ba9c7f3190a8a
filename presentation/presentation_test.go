package presentation_test

import (
	"testing"

	"github.com/shortlex/fpsemi/presentation"
	"github.com/shortlex/fpsemi/word"

	"github.com/stretchr/testify/require"
)

func TestAddRuleAndRelations(t *testing.T) {
	p := presentation.NewPresentation(2)
	require.NoError(t, p.AddRule(word.Word{0, 0, 0}, word.Word{0}))
	require.NoError(t, p.AddRule(word.Word{0}, word.Word{1, 1}))

	rels := p.Relations()
	require.Len(t, rels, 2)
	require.Equal(t, 2, p.NrRelations())
}

func TestAddRuleOutOfRange(t *testing.T) {
	p := presentation.NewPresentation(2)
	err := p.AddRule(word.Word{0, 2}, word.Word{1})
	require.ErrorIs(t, err, presentation.ErrLetterOutOfRange)
}

func TestSetIdentitySynthesizesRelations(t *testing.T) {
	p := presentation.NewPresentation(2)
	require.NoError(t, p.SetIdentity(0))
	id, ok := p.Identity()
	require.True(t, ok)
	require.Equal(t, word.Letter(0), id)

	rels := p.Relations()
	// 2 synthesized relations per generator (including the identity itself).
	require.Len(t, rels, 4)
}

func TestSetIdentityTwiceFails(t *testing.T) {
	p := presentation.NewPresentation(2)
	require.NoError(t, p.SetIdentity(0))
	err := p.SetIdentity(1)
	require.ErrorIs(t, err, presentation.ErrIdentityAlreadySet)
}

func TestFreezeBlocksMutation(t *testing.T) {
	p := presentation.NewPresentation(2)
	require.NoError(t, p.AddRule(word.Word{0}, word.Word{1}))
	p.Freeze()
	require.True(t, p.Frozen())

	err := p.AddRule(word.Word{0}, word.Word{0})
	require.ErrorIs(t, err, presentation.ErrFrozen)

	err = p.SetIdentity(0)
	require.ErrorIs(t, err, presentation.ErrFrozen)
}

func TestCloneIsIndependentAndUnfrozen(t *testing.T) {
	p := presentation.NewPresentation(1)
	require.NoError(t, p.AddRule(word.Word{0, 0}, word.Word{0}))
	p.Freeze()

	clone := p.Clone()
	require.False(t, clone.Frozen())
	require.NoError(t, clone.AddRule(word.Word{0}, word.Word{0}))
	require.Equal(t, 1, p.NrRelations())
	require.Equal(t, 2, clone.NrRelations())
}
