package fp_test

import (
	"context"
	"testing"

	"github.com/shortlex/fpsemi/fp"
	"github.com/shortlex/fpsemi/word"

	"github.com/stretchr/testify/require"
)

// cyclicElement is a minimal fp.Element for the integers mod n under
// addition, used to exercise FroidurePin without depending on kb/tc.
type cyclicElement struct {
	v, n int
}

func (e cyclicElement) Equal(other fp.Element) bool {
	o, ok := other.(cyclicElement)
	return ok && e.v == o.v && e.n == o.n
}

func (e cyclicElement) Multiply(other fp.Element) (fp.Element, error) {
	o, ok := other.(cyclicElement)
	if !ok {
		return nil, ErrBadElement
	}
	return cyclicElement{v: (e.v + o.v) % e.n, n: e.n}, nil
}

func (e cyclicElement) Hash() uint64 { return uint64(e.v) }

func (e cyclicElement) Copy() fp.Element { return e }

var ErrBadElement = errBadElement{}

type errBadElement struct{}

func (errBadElement) Error() string { return "fp_test: incompatible element" }

func TestEnumerateCyclicGroupOfOrderFive(t *testing.T) {
	gen := cyclicElement{v: 1, n: 5}
	fpins, err := fp.NewFromGenerators([]fp.Element{gen})
	require.NoError(t, err)

	require.NoError(t, fpins.Run(context.Background()))
	require.True(t, fpins.Finished())

	n, err := fpins.Size()
	require.NoError(t, err)
	require.Equal(t, 5, n)
}

func TestStepIsIdempotentAfterFinished(t *testing.T) {
	gen := cyclicElement{v: 1, n: 3}
	fpins, err := fp.NewFromGenerators([]fp.Element{gen})
	require.NoError(t, err)
	require.NoError(t, fpins.Run(context.Background()))

	status, err := fpins.Step(context.Background())
	require.NoError(t, err)
	require.Equal(t, fp.Finished, status)
}

func TestMaxElementsResourceExhausted(t *testing.T) {
	gen := cyclicElement{v: 1, n: 1 << 20} // effectively never closes within the cap
	fpins, err := fp.NewFromGenerators([]fp.Element{gen}, fp.WithMaxElements(3))
	require.NoError(t, err)

	err = fpins.Run(context.Background())
	require.ErrorIs(t, err, fp.ErrResourceExhausted)
}

func TestStepInterruptedByCanceledContext(t *testing.T) {
	gen := cyclicElement{v: 1, n: 5}
	fpins, err := fp.NewFromGenerators([]fp.Element{gen})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	status, err := fpins.Step(ctx)
	require.Equal(t, fp.Interrupted, status)
	require.ErrorIs(t, err, context.Canceled)
}

func TestNewFromGeneratorsRejectsEmptySet(t *testing.T) {
	_, err := fp.NewFromGenerators(nil)
	require.ErrorIs(t, err, fp.ErrNoGenerators)
}

func TestWordToElementAndFactorisationRoundTrip(t *testing.T) {
	gen := cyclicElement{v: 1, n: 5}
	fpins, err := fp.NewFromGenerators([]fp.Element{gen})
	require.NoError(t, err)
	require.NoError(t, fpins.Run(context.Background()))

	el, id, err := fpins.WordToElement(word.Word{0, 0, 0})
	require.NoError(t, err)
	require.Equal(t, cyclicElement{v: 3, n: 5}, el)

	fact, err := fpins.Factorisation(id)
	require.NoError(t, err)

	el2, id2, err := fpins.WordToElement(fact)
	require.NoError(t, err)
	require.True(t, el.Equal(el2))
	require.Equal(t, id, id2)
}

func TestRightCayleyGraphRequiresFinished(t *testing.T) {
	gen := cyclicElement{v: 1, n: 5}
	fpins, err := fp.NewFromGenerators([]fp.Element{gen})
	require.NoError(t, err)

	_, err = fpins.RightCayleyGraph()
	require.ErrorIs(t, err, fp.ErrUnfinished)

	require.NoError(t, fpins.Run(context.Background()))
	table, err := fpins.RightCayleyGraph()
	require.NoError(t, err)
	require.Len(t, table, 5)
}

func TestNrIdempotentsOnCyclicGroupIsOne(t *testing.T) {
	gen := cyclicElement{v: 1, n: 5}
	fpins, err := fp.NewFromGenerators([]fp.Element{gen})
	require.NoError(t, err)

	n, err := fpins.NrIdempotents()
	require.NoError(t, err)
	require.Equal(t, 1, n) // only the identity squares to itself in a group of prime order
}
