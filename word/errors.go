package word

import "errors"

// Sentinel errors returned by this package. Callers MUST use errors.Is to
// check them, never string comparison — messages may gain context via
// fmt.Errorf("%w: ...") wrapping.
var (
	// ErrLetterOutOfRange is returned when a Letter value is >= an
	// Alphabet's Size, or negative in contexts that forbid it.
	ErrLetterOutOfRange = errors.New("word: letter out of range")

	// ErrUnknownSymbol is returned when a byte has no mapping to a Letter
	// under the Alphabet's charset.
	ErrUnknownSymbol = errors.New("word: unknown symbol")

	// ErrEmptyAlphabet names an Alphabet of size 0. No function of this
	// package returns it: decoding a non-empty string with a size-0
	// Alphabet reports ErrUnknownSymbol.
	ErrEmptyAlphabet = errors.New("word: empty alphabet")

	// ErrCharsetSizeMismatch is returned when a supplied charset string's
	// length does not match the requested alphabet size.
	ErrCharsetSizeMismatch = errors.New("word: charset size mismatch")

	// ErrDuplicateSymbol is returned when a charset repeats a byte.
	ErrDuplicateSymbol = errors.New("word: duplicate symbol in charset")
)
