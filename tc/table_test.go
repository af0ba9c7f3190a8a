package tc_test

import (
	"context"
	"testing"

	"github.com/shortlex/fpsemi/presentation"
	"github.com/shortlex/fpsemi/tc"
	"github.com/shortlex/fpsemi/word"

	"github.com/stretchr/testify/require"
)

func TestTrivialPresentationHasOneClass(t *testing.T) {
	p := presentation.NewPresentation(0)
	table := tc.NewFromPresentation(p)
	require.NoError(t, table.Run(context.Background()))
	require.True(t, table.Finished())

	n, err := table.NrClasses()
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func TestSeedScenarioFiveElements(t *testing.T) {
	// a^3 = a, a = b^2; the seed scenario's semigroup has 5 elements
	// (b, b^2, ..., b^5), and NrClasses also counts coset 0, the
	// empty-word class, giving 6.
	p := presentation.NewPresentation(2)
	require.NoError(t, p.AddRule(word.Word{0, 0, 0}, word.Word{0}))
	require.NoError(t, p.AddRule(word.Word{0}, word.Word{1, 1}))

	table := tc.NewFromPresentation(p)
	require.NoError(t, table.Run(context.Background()))
	require.True(t, table.Finished())

	n, err := table.NrClasses()
	require.NoError(t, err)
	require.Equal(t, 6, n)
}

func TestWordToClassAndClassToWordRoundTrip(t *testing.T) {
	p := presentation.NewPresentation(2)
	require.NoError(t, p.AddRule(word.Word{0, 0, 0}, word.Word{0}))
	require.NoError(t, p.AddRule(word.Word{0}, word.Word{1, 1}))

	table := tc.NewFromPresentation(p)
	require.NoError(t, table.Run(context.Background()))

	c, err := table.WordToClass(word.Word{0})
	require.NoError(t, err)

	w, err := table.ClassToWord(c)
	require.NoError(t, err)

	c2, err := table.WordToClass(w)
	require.NoError(t, err)
	require.Equal(t, c, c2)

	empty, err := table.ClassToWord(table.Lookup(0))
	require.NoError(t, err)
	require.Empty(t, empty)
}

func TestStandardizePreservesClassCount(t *testing.T) {
	p := presentation.NewPresentation(2)
	require.NoError(t, p.AddRule(word.Word{0, 0, 0}, word.Word{0}))
	require.NoError(t, p.AddRule(word.Word{0}, word.Word{1, 1}))

	table := tc.NewFromPresentation(p)
	require.NoError(t, table.Run(context.Background()))
	before, err := table.NrClasses()
	require.NoError(t, err)

	require.NoError(t, table.Standardize())
	after, err := table.NrClasses()
	require.NoError(t, err)
	require.Equal(t, before, after)

	// Standardization never moves the identity off class 0.
	c, err := table.WordToClass(word.Word{})
	require.NoError(t, err)
	require.Equal(t, 0, c)
}

func TestMaxCosetsResourceExhausted(t *testing.T) {
	p := presentation.NewPresentation(1) // free monoid on one generator: infinite
	table := tc.NewFromPresentation(p, tc.WithMaxCosets(3))
	err := table.Run(context.Background())
	require.ErrorIs(t, err, tc.ErrResourceExhausted)
}

func TestStepInterruptedByCanceledContext(t *testing.T) {
	p := presentation.NewPresentation(1)
	table := tc.NewFromPresentation(p)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	status, err := table.Step(ctx)
	require.Equal(t, tc.Interrupted, status)
	require.ErrorIs(t, err, context.Canceled)
}

func TestNrClassesUnfinishedBeforeRun(t *testing.T) {
	p := presentation.NewPresentation(1)
	table := tc.NewFromPresentation(p)
	_, err := table.NrClasses()
	require.ErrorIs(t, err, tc.ErrUnfinished)
}

func TestNewFromCayleyTableIsImmediatelyFinished(t *testing.T) {
	table := tc.NewFromCayleyTable([][]int{
		{0, 1},
		{1, 1},
	})
	require.True(t, table.Finished())
	n, err := table.NrClasses()
	require.NoError(t, err)
	require.Equal(t, 2, n)
}
