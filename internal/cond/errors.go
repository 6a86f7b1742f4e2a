package cond

import "errors"

// ErrMalformedCondition indicates a condition string that cannot be
// parsed into a query: a clause without a recognizable operator, a
// missing column or value, or comparisons not joined by a connective.
// A malformed condition always fails the whole call; it never silently
// matches nothing or everything.
var ErrMalformedCondition = errors.New("malformed condition")
