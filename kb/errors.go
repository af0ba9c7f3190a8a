package kb

import "errors"

// Sentinel errors returned by this package. Callers MUST use errors.Is.
var (
	// ErrResourceExhausted is returned by Step/Run/RunFor when the rule set
	// would grow past WithMaxRules.
	ErrResourceExhausted = errors.New("kb: resource exhausted")

	// ErrAlreadyStarted is returned by AddRule once completion has begun —
	// mutating the presentation mid-run would invalidate in-flight overlaps.
	ErrAlreadyStarted = errors.New("kb: already started")

	// ErrInterrupted wraps a context cancellation or deadline observed
	// during Step/Run/RunFor.
	ErrInterrupted = errors.New("kb: interrupted")
)
