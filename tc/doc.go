// Package tc implements Todd-Coxeter coset enumeration, generalized from
// subgroup-index counting to counting the elements of a semigroup or monoid
// presented by (alphabet, relations): cosets stand for elements, coset 0 is
// the identity, and a relation u = v holds by requiring that scanning u and
// scanning v from any live coset land on the same class.
//
// Enumeration proceeds by the HLT (Hazelgrove-Leech-Trotter) strategy:
// classes are discovered by applying generators to known classes
// breadth-first, while every relation is scanned from every class to catch
// the coincidences that collapse two provisional classes into one. A
// periodic lookahead pass re-scans every relation from every live class once
// the ratio of defined to live cosets grows too large, catching anything
// ordinary incremental scanning missed. Coincidence processing uses a
// union-find over coset ids ("kappa" in the literature) built the same way
// the teacher's Kruskal implementation builds its union-find over vertices:
// a parent slice with path compression on find, except merges always keep
// the numerically smaller root so coset 0 — the identity — is always its
// class's representative.
//
// Standardization and the coset table's own BFS renumbering pass are kept
// in-package rather than reusing a general graph library: the only graph
// tc ever walks is its own table[c][g] transition matrix.
//
// Like kb, enumeration is driven by an explicit Step state machine rather
// than a single blocking call, so fpsemi can interleave it with a
// Knuth-Bendix run.
package tc
