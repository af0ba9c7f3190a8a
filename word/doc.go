// Package word provides the shortest common data model in this module: a
// letter is a small unsigned integer, a word is a slice of letters, and an
// Alphabet maps letters to and from printable symbols so presentations and
// normal forms can round-trip through strings.
//
// Every other package builds on top of word.Word — presentation.Relation,
// rewrite.Rule, kb, tc, and fp all pass words (never raw strings) across
// their APIs. Alphabet is the only place a string ever touches a letter.
package word
