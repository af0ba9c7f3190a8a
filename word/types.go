package word

import (
	"fmt"
	"strings"
)

// Letter is a generator index. Valid letters for a given Alphabet lie in
// [0, Alphabet.Size).
type Letter uint32

// Word is a sequence of letters. The empty word is represented by a nil or
// zero-length slice; both compare Equal.
type Word []Letter

// Equal reports whether u and v contain the same letters in the same order.
func Equal(u, v Word) bool {
	if len(u) != len(v) {
		return false
	}
	for i := range u {
		if u[i] != v[i] {
			return false
		}
	}
	return true
}

// Clone returns an independent copy of w.
func Clone(w Word) Word {
	if len(w) == 0 {
		return nil
	}
	out := make(Word, len(w))
	copy(out, w)
	return out
}

// Concat returns a new word formed by appending v after u. Neither argument
// is modified.
func Concat(u, v Word) Word {
	out := make(Word, 0, len(u)+len(v))
	out = append(out, u...)
	out = append(out, v...)
	return out
}

// Pow returns w repeated n times. Pow(w, 0) is the empty word.
func Pow(w Word, n int) Word {
	if n <= 0 || len(w) == 0 {
		return nil
	}
	out := make(Word, 0, len(w)*n)
	for i := 0; i < n; i++ {
		out = append(out, w...)
	}
	return out
}

// String renders a word as its letters' decimal indices, e.g. "[0 1 0]".
// It never fails and is intended for diagnostics, not for round-tripping —
// use Alphabet.ToString for that.
func (w Word) String() string {
	parts := make([]string, len(w))
	for i, l := range w {
		parts[i] = fmt.Sprintf("%d", l)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// Alphabet maps the Size letters of a presentation to and from printable
// byte symbols, so that words can be built from and rendered back to
// strings. An Alphabet with no charset set still supports Size and letter
// validation; ToString/FromString require a charset.
type Alphabet struct {
	size    int
	toByte  []byte       // letter -> symbol, len == size, nil if unset
	toLetter map[byte]Letter // symbol -> letter, nil if unset
}

// AlphabetOption configures an Alphabet at construction time.
type AlphabetOption func(*Alphabet) error

// NewAlphabet builds an Alphabet of the given size. size must be >= 0.
func NewAlphabet(size int, opts ...AlphabetOption) (*Alphabet, error) {
	if size < 0 {
		return nil, fmt.Errorf("%w: size %d", ErrLetterOutOfRange, size)
	}
	a := &Alphabet{size: size}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(a); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// WithCharset binds each letter i to charset[i]. len(charset) must equal the
// alphabet's size, and charset must not repeat a byte.
func WithCharset(charset string) AlphabetOption {
	return func(a *Alphabet) error {
		if len(charset) != a.size {
			return fmt.Errorf("%w: charset %q has length %d, want %d", ErrCharsetSizeMismatch, charset, len(charset), a.size)
		}
		toByte := make([]byte, a.size)
		toLetter := make(map[byte]Letter, a.size)
		for i := 0; i < a.size; i++ {
			b := charset[i]
			if _, dup := toLetter[b]; dup {
				return fmt.Errorf("%w: %q", ErrDuplicateSymbol, string(b))
			}
			toByte[i] = b
			toLetter[b] = Letter(i)
		}
		a.toByte = toByte
		a.toLetter = toLetter
		return nil
	}
}

// WithDefaultCharset binds letters 0..25 to 'a'..'z' in order, provided size
// <= 26. This mirrors the lower-case single-letter alphabets used throughout
// the literature on finitely presented semigroups ("a", "b", "ab", ...).
func WithDefaultCharset() AlphabetOption {
	return func(a *Alphabet) error {
		if a.size > 26 {
			return fmt.Errorf("%w: default charset only covers 26 symbols, size is %d", ErrCharsetSizeMismatch, a.size)
		}
		charset := "abcdefghijklmnopqrstuvwxyz"[:a.size]
		return WithCharset(charset)(a)
	}
}

// Size returns the number of letters in the alphabet.
func (a *Alphabet) Size() int {
	if a == nil {
		return 0
	}
	return a.size
}

// Valid reports whether l is a valid letter for this alphabet.
func (a *Alphabet) Valid(l Letter) bool {
	return int(l) < a.size
}

// ValidWord reports whether every letter of w is valid for this alphabet.
func (a *Alphabet) ValidWord(w Word) bool {
	for _, l := range w {
		if !a.Valid(l) {
			return false
		}
	}
	return true
}

// ToString renders w using the alphabet's charset. Returns ErrUnknownSymbol
// if no charset was configured (toByte is nil) and ErrLetterOutOfRange if a
// letter is out of range.
func (a *Alphabet) ToString(w Word) (string, error) {
	if a.toByte == nil {
		if len(w) == 0 {
			return "", nil
		}
		return "", fmt.Errorf("%w: alphabet has no charset", ErrUnknownSymbol)
	}
	buf := make([]byte, len(w))
	for i, l := range w {
		if !a.Valid(l) {
			return "", fmt.Errorf("%w: letter %d", ErrLetterOutOfRange, l)
		}
		buf[i] = a.toByte[l]
	}
	return string(buf), nil
}

// FromString parses s into a Word using the alphabet's charset. Returns
// ErrUnknownSymbol for any byte not in the charset.
func (a *Alphabet) FromString(s string) (Word, error) {
	if a.toLetter == nil {
		if s == "" {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: alphabet has no charset", ErrUnknownSymbol)
	}
	w := make(Word, len(s))
	for i := 0; i < len(s); i++ {
		l, ok := a.toLetter[s[i]]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownSymbol, string(s[i]))
		}
		w[i] = l
	}
	return w, nil
}
