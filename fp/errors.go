package fp

import "errors"

// Sentinel errors returned by this package. Callers MUST use errors.Is.
var (
	// ErrResourceExhausted is returned when enumeration would define more
	// elements than WithMaxElements allows.
	ErrResourceExhausted = errors.New("fp: resource exhausted")

	// ErrUnfinished is returned by RightCayleyGraph/LeftCayleyGraph when
	// enumeration has not run to completion. Size does not return it; it
	// runs the enumeration to completion itself.
	ErrUnfinished = errors.New("fp: enumeration unfinished")

	// ErrNoGenerators is returned by NewFromGenerators and
	// NewFromKnuthBendix when given an empty generating set.
	ErrNoGenerators = errors.New("fp: no generators")

	// ErrElementNotFound is returned by Factorisation for an id outside
	// the current element table.
	ErrElementNotFound = errors.New("fp: element not found")

	// ErrInterrupted wraps a context cancellation or deadline observed
	// during Step/Run/RunFor.
	ErrInterrupted = errors.New("fp: interrupted")
)
