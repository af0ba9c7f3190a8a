package fp

import (
	"fmt"

	"github.com/shortlex/fpsemi/kb"
	"github.com/shortlex/fpsemi/word"
)

// rewriter is the subset of kb.KnuthBendix that wordElement needs: reduce a
// word to its current normal form, and report whether two words are equal
// under the rule set discovered so far.
type rewriter interface {
	Rewrite(w word.Word) word.Word
	EqualTo(u, v word.Word) bool
}

// wordElement adapts a word.Word, kept in normal form with respect to a
// rewriter, to the Element interface — the bridge NewFromKnuthBendix uses
// to enumerate a semigroup whose elements are words modulo a Knuth-Bendix
// rule set.
type wordElement struct {
	w word.Word
	r rewriter
}

var _ Element = wordElement{}

func (e wordElement) Equal(other Element) bool {
	o, ok := other.(wordElement)
	if !ok {
		return false
	}
	return e.r.EqualTo(e.w, o.w)
}

func (e wordElement) Multiply(other Element) (Element, error) {
	o, ok := other.(wordElement)
	if !ok {
		return nil, fmt.Errorf("fp: wordElement.Multiply: incompatible element type %T", other)
	}
	return wordElement{w: e.r.Rewrite(word.Concat(e.w, o.w)), r: e.r}, nil
}

// Hash is FNV-1a over the normal form's letters. Two wordElements that are
// Equal under the current (possibly still-growing) rule set are not
// guaranteed to hash equal until that rule set is confluent — NewFromKnuthBendix
// is documented as requiring a finished completion for exactly this reason.
func (e wordElement) Hash() uint64 {
	var h uint64 = 14695981039346656037
	for _, l := range e.w {
		h ^= uint64(l)
		h *= 1099511628211
	}
	return h
}

// Copy returns a wordElement wrapping an independent clone of the word.
func (e wordElement) Copy() Element {
	return wordElement{w: word.Clone(e.w), r: e.r}
}

// generatorWords returns one wordElement per letter of an alphabet of size
// n, used as the generating set fed to NewFromGenerators when building an
// fp.FroidurePin on top of a KnuthBendix engine.
func generatorWords(n int, r rewriter) []Element {
	gens := make([]Element, n)
	for i := 0; i < n; i++ {
		gens[i] = wordElement{w: r.Rewrite(word.Word{word.Letter(i)}), r: r}
	}
	return gens
}

// NewFromKnuthBendix builds a FroidurePin that enumerates the semigroup
// presented to kbEngine, using kbEngine's current rewrite system to decide
// element equality. kbEngine should have finished completion
// (kbEngine.Finished()) before enumeration is trusted to terminate
// correctly — an unfinished (non-confluent) rule set can make Equal
// intransitive, which Froidure-Pin's bucketed lookup assumes cannot happen.
func NewFromKnuthBendix(kbEngine *kb.KnuthBendix, opts ...Option) (*FroidurePin, error) {
	gens := generatorWords(kbEngine.AlphabetSize(), kbEngine)
	return NewFromGenerators(gens, opts...)
}
