package rewrite

import "errors"

// ErrResourceExhausted is returned when a System would grow past a
// caller-imposed rule-count cap.
var ErrResourceExhausted = errors.New("rewrite: resource exhausted")
