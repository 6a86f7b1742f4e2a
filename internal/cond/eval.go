package cond

import (
	"slices"

	"github.com/calvinalkan/flatdb/internal/record"
)

// Evaluate reports whether rec matches query.
//
// The wildcard query matches unconditionally. Otherwise each comparison
// is evaluated as a string comparison against the record's stored text
// (never numeric), and the results are combined with "and" binding
// tighter than "or". A comparison on a column absent from the record is
// false; per-comparison failures never surface as errors.
func Evaluate(query Query, rec record.Record) bool {
	if query.All {
		return true
	}

	if len(query.Comparisons) == 0 {
		return false
	}

	results := make([]bool, len(query.Comparisons))
	for i, comparison := range query.Comparisons {
		results[i] = matches(comparison, rec)
	}

	connectives := slices.Clone(query.Connectives)

	// Pass 1: fold every and-joined pair into its left neighbor. The
	// sequences shrink in lockstep, so re-check the same position after
	// each fold.
	i := 0
	for i < len(connectives) {
		if connectives[i] != And {
			i++

			continue
		}

		results[i] = results[i] && results[i+1]
		results = slices.Delete(results, i+1, i+2)
		connectives = slices.Delete(connectives, i, i+1)
	}

	// Pass 2: only "or" connectives remain; fold left to right.
	out := results[0]
	for _, r := range results[1:] {
		out = out || r
	}

	return out
}

// matches evaluates one comparison against a record.
//
// KNOWN ANOMALY: '<' evaluates as '<=' and '>' as '>='. Strict ordering
// is never tested. Saved condition strings in existing stores rely on
// this, so it must survive any rewrite of this switch.
func matches(c Comparison, rec record.Record) bool {
	value, ok := rec[c.Column]
	if !ok {
		// Unknown column: the comparison degrades to non-match.
		return false
	}

	switch c.Op {
	case OpEqual:
		return value == c.Value
	case OpNotEqual:
		return value != c.Value
	case OpLessEqual, OpLess:
		return value <= c.Value
	case OpGreaterEqual, OpGreater:
		return value >= c.Value
	}

	return false
}
