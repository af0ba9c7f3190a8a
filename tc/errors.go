package tc

import "errors"

// Sentinel errors returned by this package. Callers MUST use errors.Is.
var (
	// ErrResourceExhausted is returned when enumeration would define more
	// cosets than WithMaxCosets allows.
	ErrResourceExhausted = errors.New("tc: resource exhausted")

	// ErrUnfinished is returned by NrClasses/ClassToWord/WordToClass when
	// enumeration has not yet reached a stable coset table.
	ErrUnfinished = errors.New("tc: enumeration unfinished")

	// ErrInterrupted wraps a context cancellation or deadline observed
	// during Step/Run/RunFor.
	ErrInterrupted = errors.New("tc: interrupted")

	// ErrClassNotFound is returned by ClassToWord for an id that is not a
	// live class.
	ErrClassNotFound = errors.New("tc: class not found")
)
