// Package kb implements Knuth-Bendix completion: given a presentation and a
// reduction order, it tries to grow a confluent, terminating rewrite system
// whose normal forms are exactly the presentation's equivalence classes.
//
// Completion is driven as an explicit state machine rather than a single
// blocking call, mirroring flow.FordFulkerson's context-checked iterative
// loop in the teacher repo: KnuthBendix.Step advances by one unit of work
// (draining one pending critical pair) and returns a Status the caller can
// act on — Run and RunFor are thin loops around Step, so a host program
// (notably fpsemi, which interleaves kb and tc) can pause and resume
// completion without goroutines.
//
// Completion may never terminate for an infinite or pathological
// presentation; callers bound it with WithMaxRules, a context deadline
// passed to RunFor, or by racing it against a tc.Table via fpsemi.
package kb
