// Package order provides total, translation-invariant reduction orders over
// word.Word, used by rewrite.System to orient a relation into a directed
// rule (the greater side rewrites to the lesser). tc does not use this
// package; it picks coset representatives by its own breadth-first search.
//
// ShortLex — compare by length first, then lexicographically by letter
// index — is the only order implemented here; it is the order used by every
// seed scenario this module is tested against, and the one the completion
// and enumeration literature assumes by default.
package order
