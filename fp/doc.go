// Package fp implements Froidure-Pin enumeration: given a finite generating
// set for a semigroup that is already known (or assumed) to be finite, it
// enumerates every element by breadth-first multiplication of known
// elements by generators, recording each element's shortest factorisation,
// its left/right Cayley tables, and a confluent set of rewrite rules over
// the generator alphabet.
//
// The semigroup being enumerated is abstracted behind the Element
// interface — fp never assumes words or any particular representation, the
// same way the teacher favors small capability interfaces (Equal, Multiply,
// Hash, Copy here) over reaching into a concrete type's internals.
// kb.KnuthBendix satisfies a host for Element via its Rewrite and EqualTo
// methods, letting fp.NewFromKnuthBendix build an element table directly
// from a completed (or still-running) completion.
package fp
