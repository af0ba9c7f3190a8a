package order

import "github.com/shortlex/fpsemi/word"

// ShortlexWords returns every word of length in [minLen, maxLen] over an
// alphabet of nrGens letters, in shortlex order: shorter words first, ties
// among words of equal length broken lexicographically by letter index.
// ShortlexWords(2, 1, 2) returns [{0}, {1}, {0,0}, {0,1}, {1,0}, {1,1}] —
// spec.md §8's seed scenario 6. The empty word is never included, and the
// result is nil when minLen > maxLen.
func ShortlexWords(nrGens, minLen, maxLen int) []word.Word {
	if nrGens <= 0 || maxLen <= 0 || minLen > maxLen {
		return nil
	}
	out := make([]word.Word, 0, nrGens)
	for g := 0; g < nrGens; g++ {
		out = append(out, word.Word{word.Letter(g)})
	}
	cut := 0
	frst, last := 0, nrGens
	for length := 2; length <= maxLen; length++ {
		for j := frst; j < last; j++ {
			for g := 0; g < nrGens; g++ {
				next := append(word.Clone(out[j]), word.Letter(g))
				out = append(out, next)
			}
		}
		if length == minLen {
			cut = last
		}
		frst = last
		last = len(out)
	}
	return out[cut:]
}
