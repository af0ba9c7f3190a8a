package kb

import "github.com/shortlex/fpsemi/order"

// Strategy selects the order in which pending rule-pair overlaps are
// examined during completion.
type Strategy int

const (
	// StrategyStandard processes pairs in FIFO discovery order: a pair is
	// examined as soon as both its rules exist, in the order rules were
	// discovered. This is the default and matches the order the teacher's
	// BFS-style traversals process their frontier in.
	StrategyStandard Strategy = iota

	// StrategyOverlapLength processes pairs in increasing order of the
	// length of the overlap word they produce, so cheap critical pairs are
	// resolved before expensive ones — useful when a presentation is
	// suspected infinite and completion is going to be interrupted anyway,
	// since it biases the rule set toward the small rules most likely to
	// matter for any length-bounded query.
	StrategyOverlapLength
)

// Option configures a KnuthBendix engine at construction time.
type Option func(*KnuthBendix)

// WithOrder overrides the default ShortLex reduction order.
func WithOrder(ord order.Order) Option {
	return func(kb *KnuthBendix) {
		if ord != nil {
			kb.order = ord
		}
	}
}

// WithMaxRules caps the number of active rules completion will grow to
// before Step/Run/RunFor return ErrResourceExhausted. 0 (the default) means
// unbounded.
func WithMaxRules(n int) Option {
	return func(kb *KnuthBendix) {
		kb.maxRules = n
	}
}

// WithStrategy selects the pending-pair processing order.
func WithStrategy(s Strategy) Option {
	return func(kb *KnuthBendix) {
		kb.strategy = s
	}
}

// WithMaxOverlapLength discards, rather than queues, any overlap whose
// resulting word would be longer than n. 0 (the default) means unbounded.
// Only meaningful in conjunction with StrategyOverlapLength, though it is
// honored under either strategy.
func WithMaxOverlapLength(n int) Option {
	return func(kb *KnuthBendix) {
		kb.maxOverlapLength = n
	}
}

// WithReport enables fmt.Printf diagnostics of completion progress (rules
// discovered, pairs processed) to standard output.
func WithReport(report bool) Option {
	return func(kb *KnuthBendix) {
		kb.report = report
	}
}
