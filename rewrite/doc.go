// Package rewrite provides the rule set shared by kb and fp: a set of
// oriented rewrite rules lhs -> rhs, maintained so that lhs is always
// greater than rhs under a caller-supplied order.Order, plus a Rewrite
// method that repeatedly applies the first matching rule until no rule's
// left-hand side occurs as a subword — the word's normal form with respect
// to the current rule set.
//
// System can check its current rules for confluence (Confluent) but does
// not run completion; kb.KnuthBendix owns that loop and calls into System
// to add rules, rewrite words, and interreduce. Keeping the rule storage
// separate from the completion strategy keeps Knuth-Bendix's Step logic
// out of this package.
package rewrite
