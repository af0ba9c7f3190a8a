package presentation

import "errors"

// Sentinel errors returned by this package. Callers MUST use errors.Is.
var (
	// ErrEmptyAlphabet is returned by NewPresentation(0) when a caller then
	// tries to add a rule (SetIdentity on it reports ErrLetterOutOfRange) —
	// a zero-generator presentation can only ever describe the empty
	// semigroup.
	ErrEmptyAlphabet = errors.New("presentation: alphabet is empty")

	// ErrLetterOutOfRange is returned when a rule or identity references a
	// letter >= the alphabet size.
	ErrLetterOutOfRange = errors.New("presentation: letter out of range")

	// ErrFrozen is returned by any mutating method once the presentation
	// has been frozen by a consuming engine.
	ErrFrozen = errors.New("presentation: frozen")

	// ErrIdentityAlreadySet is returned by SetIdentity when an identity
	// letter has already been recorded.
	ErrIdentityAlreadySet = errors.New("presentation: identity already set")
)
