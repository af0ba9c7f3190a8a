// Package presentation holds a finite semigroup presentation: an alphabet
// size, an optional identity letter, and a list of relations u = v. It is
// the input every engine (kb, tc, fp) is built from.
//
// A Presentation is built up monotonically via AddRule/SetIdentity calls and
// then frozen the first time an engine starts consuming it — mirroring the
// teacher's configure-then-use lifecycle for its own option-built types,
// except the "configuration" here is relations rather than constructor
// options. Mutating a frozen presentation returns ErrFrozen rather than
// silently racing a running engine.
package presentation
