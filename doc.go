// Package fpsemi decides whether a finitely presented semigroup or monoid
// is finite and, if so, computes its size, normal forms, and element
// structure — from an alphabet and a list of relations u = v.
//
// What is fpsemi?
//
//	A small set of composable engines that all answer the same question
//	("what does this presentation define?") by different means:
//		• word/order/presentation/rewrite — the shared data model: letters,
//		  words, reduction orders, presentations, and oriented rule sets.
//		• kb — Knuth-Bendix completion: grows a confluent rewrite system.
//		• tc — Todd-Coxeter coset enumeration: counts classes directly.
//		• fp — Froidure-Pin enumeration: builds the element table and
//		  Cayley graphs of an already-known-finite semigroup.
//		• fpsemi (this package) — a façade that owns a presentation, creates
//		  the engines lazily, interleaves kb and tc so whichever converges
//		  first answers, and hands its result to fp.
//
// Under the hood, tc standardizes its coset table and fp derives Cayley
// graphs as flat [id][generator] transition tables — no general graph
// library sits underneath either; the only graph either one ever walks is
// its own transition matrix.
//
// Quick example:
//
//	s := fpsemi.New(2, fpsemi.WithMaxRules(4096), fpsemi.WithMaxCosets(4096))
//	s.AddRule(word.Word{0, 0, 0}, word.Word{0})
//	s.AddRule(word.Word{0}, word.Word{1, 1})
//	size, err := s.Size(context.Background())
//
// See SPEC_FULL.md for the full module map, invariants, and testable
// properties this implementation satisfies.
package fpsemi
