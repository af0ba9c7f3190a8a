package kb_test

import (
	"context"
	"testing"

	"github.com/shortlex/fpsemi/kb"
	"github.com/shortlex/fpsemi/presentation"
	"github.com/shortlex/fpsemi/word"

	"github.com/stretchr/testify/require"
)

func TestStepFinishesOnEmptyPresentation(t *testing.T) {
	p := presentation.NewPresentation(0)
	engine := kb.New(p)
	status, err := engine.Step(context.Background())
	require.NoError(t, err)
	require.Equal(t, kb.Finished, status)
	require.True(t, engine.Finished())
}

func TestCompletionConvergesOnFiniteMonoid(t *testing.T) {
	p := presentation.NewPresentation(1)
	require.NoError(t, p.AddRule(word.Word{0, 0, 0}, word.Word{0}))

	engine := kb.New(p)
	require.NoError(t, engine.Run(context.Background()))
	require.True(t, engine.Finished())
	require.True(t, engine.Confluent())
	require.True(t, engine.EqualTo(word.Word{0, 0, 0}, word.Word{0}))
	require.True(t, engine.EqualTo(word.Word{0, 0, 0, 0, 0}, word.Word{0}))
	require.False(t, engine.EqualTo(word.Word{0, 0}, word.Word{0}))
}

func TestAddRuleAfterStartedFails(t *testing.T) {
	p := presentation.NewPresentation(1)
	engine := kb.New(p)
	_, err := engine.Step(context.Background())
	require.NoError(t, err)

	err = engine.AddRule(word.Word{0}, word.Word{0, 0})
	require.ErrorIs(t, err, kb.ErrAlreadyStarted)
}

func TestMaxRulesResourceExhausted(t *testing.T) {
	p := presentation.NewPresentation(2)
	require.NoError(t, p.AddRule(word.Word{0, 1}, word.Word{1, 0}))
	require.NoError(t, p.AddRule(word.Word{1, 1}, word.Word{0}))

	// Seeding alone needs 2 rules; capping at 1 forces exhaustion before
	// completion ever reaches the pending-pair loop.
	engine := kb.New(p, kb.WithMaxRules(1))
	err := engine.Run(context.Background())
	require.ErrorIs(t, err, kb.ErrResourceExhausted)
}

func TestStepInterruptedByCanceledContext(t *testing.T) {
	p := presentation.NewPresentation(1)
	require.NoError(t, p.AddRule(word.Word{0, 0}, word.Word{0}))

	engine := kb.New(p)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	status, err := engine.Step(ctx)
	require.Equal(t, kb.Interrupted, status)
	require.ErrorIs(t, err, context.Canceled)
	require.ErrorIs(t, err, kb.ErrInterrupted)
}

func TestRunForRespectsDeadlineWithoutError(t *testing.T) {
	p := presentation.NewPresentation(2)
	require.NoError(t, p.AddRule(word.Word{0, 1}, word.Word{1, 0}))

	engine := kb.New(p)
	err := engine.RunFor(context.Background(), 0)
	require.NoError(t, err)
	require.False(t, engine.Finished())
}
