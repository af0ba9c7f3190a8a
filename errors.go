package fpsemi

import "errors"

// Sentinel errors returned by this package. Callers MUST use errors.Is.
var (
	// ErrPresentationError is returned when a presentation-building call
	// (AddRule, SetIdentity) is given an out-of-range letter, or the
	// presentation cannot express the operation (e.g. a rule on a
	// zero-generator alphabet).
	ErrPresentationError = errors.New("fpsemi: invalid presentation")

	// ErrPresentationFrozen is returned by AddRule/SetIdentity once an
	// engine has started consuming the presentation.
	ErrPresentationFrozen = errors.New("fpsemi: presentation frozen")

	// ErrResourceExhausted is returned when every engine capable of
	// answering a query has exceeded its configured resource cap
	// (WithMaxRules for kb, WithMaxCosets for tc) before converging.
	ErrResourceExhausted = errors.New("fpsemi: resource exhausted")

	// ErrInterrupted wraps a context cancellation or deadline observed
	// while racing engines toward an answer.
	ErrInterrupted = errors.New("fpsemi: interrupted")

	// ErrUnfinished is returned by a query that requires a complete
	// verdict when no engine has reached one. It does not normally surface
	// from Size/EqualTo/NormalForm, which run engines until one finishes,
	// ctx is done (ErrInterrupted), or every engine hits its resource cap
	// (ErrResourceExhausted).
	ErrUnfinished = errors.New("fpsemi: unfinished")

	// ErrElementError is returned when a host-provided element's
	// Multiply fails during a concrete-semigroup query.
	ErrElementError = errors.New("fpsemi: element error")
)
