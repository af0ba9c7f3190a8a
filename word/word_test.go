package word_test

import (
	"testing"

	"github.com/shortlex/fpsemi/word"

	"github.com/stretchr/testify/require"
)

func TestEqual(t *testing.T) {
	cases := []struct {
		name     string
		u, v     word.Word
		expected bool
	}{
		{"both empty", nil, word.Word{}, true},
		{"equal", word.Word{0, 1, 0}, word.Word{0, 1, 0}, true},
		{"different length", word.Word{0, 1}, word.Word{0, 1, 0}, false},
		{"different letters", word.Word{0, 1}, word.Word{0, 2}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			require.Equal(t, c.expected, word.Equal(c.u, c.v))
		})
	}
}

func TestConcatAndPow(t *testing.T) {
	u := word.Word{0, 1}
	v := word.Word{2}
	require.True(t, word.Equal(word.Word{0, 1, 2}, word.Concat(u, v)))
	require.True(t, word.Equal(word.Word{0, 1, 0, 1, 0, 1}, word.Pow(u, 3)))
	require.Nil(t, word.Pow(u, 0))

	// Concat must not mutate its operands.
	_ = word.Concat(u, v)
	require.True(t, word.Equal(word.Word{0, 1}, u))
}

func TestAlphabetSizeAndValidity(t *testing.T) {
	a, err := word.NewAlphabet(3)
	require.NoError(t, err)
	require.Equal(t, 3, a.Size())
	require.True(t, a.Valid(0))
	require.True(t, a.Valid(2))
	require.False(t, a.Valid(3))
	require.True(t, a.ValidWord(word.Word{0, 1, 2}))
	require.False(t, a.ValidWord(word.Word{0, 3}))

	_, err = word.NewAlphabet(-1)
	require.ErrorIs(t, err, word.ErrLetterOutOfRange)
}

func TestAlphabetCharsetRoundTrip(t *testing.T) {
	a, err := word.NewAlphabet(2, word.WithCharset("ab"))
	require.NoError(t, err)

	w, err := a.FromString("abba")
	require.NoError(t, err)
	require.True(t, word.Equal(word.Word{0, 1, 1, 0}, w))

	s, err := a.ToString(w)
	require.NoError(t, err)
	require.Equal(t, "abba", s)

	_, err = a.FromString("abc")
	require.ErrorIs(t, err, word.ErrUnknownSymbol)
}

func TestAlphabetCharsetSizeMismatch(t *testing.T) {
	_, err := word.NewAlphabet(2, word.WithCharset("abc"))
	require.ErrorIs(t, err, word.ErrCharsetSizeMismatch)
}

func TestAlphabetDuplicateSymbol(t *testing.T) {
	_, err := word.NewAlphabet(2, word.WithCharset("aa"))
	require.ErrorIs(t, err, word.ErrDuplicateSymbol)
}

func TestAlphabetWithoutCharset(t *testing.T) {
	a, err := word.NewAlphabet(2)
	require.NoError(t, err)

	_, err = a.ToString(word.Word{0})
	require.ErrorIs(t, err, word.ErrUnknownSymbol)

	s, err := a.ToString(nil)
	require.NoError(t, err)
	require.Equal(t, "", s)
}

func TestDefaultCharset(t *testing.T) {
	a, err := word.NewAlphabet(3, word.WithDefaultCharset())
	require.NoError(t, err)
	s, err := a.ToString(word.Word{0, 1, 2})
	require.NoError(t, err)
	require.Equal(t, "abc", s)

	_, err = word.NewAlphabet(27, word.WithDefaultCharset())
	require.ErrorIs(t, err, word.ErrCharsetSizeMismatch)
}
