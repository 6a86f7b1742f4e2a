package cond

import (
	"fmt"
	"strings"
)

// Parse compiles a condition string into a Query.
//
// "*" yields the wildcard query. Otherwise the string must alternate
// comparisons and connectives: COMPARISON (and|or COMPARISON)*. Connective
// words inside double quotes are literal text, never connectives.
//
// Returns [ErrMalformedCondition] if a clause has no operator, a column or
// value is missing, or the alternation is broken (two comparisons without
// a connective, a dangling connective, an empty string).
func Parse(condition string) (Query, error) {
	if condition == Wildcard {
		return Query{All: true}, nil
	}

	tokens := scan(condition)
	if len(tokens) == 0 {
		return Query{}, fmt.Errorf("%w: empty condition", ErrMalformedCondition)
	}

	var query Query

	for i, tok := range tokens {
		// Comparisons sit at even positions, connectives at odd ones.
		if i%2 == 1 {
			conn, ok := asConnective(tok)
			if !ok {
				return Query{}, fmt.Errorf(
					"%w: expected and/or before %q", ErrMalformedCondition, tok.text,
				)
			}

			query.Connectives = append(query.Connectives, conn)

			continue
		}

		if _, ok := asConnective(tok); ok {
			return Query{}, fmt.Errorf(
				"%w: expected comparison, got %q", ErrMalformedCondition, tok.text,
			)
		}

		comparison, err := parseComparison(tok)
		if err != nil {
			return Query{}, err
		}

		query.Comparisons = append(query.Comparisons, comparison)
	}

	// Trailing connective: "a=1 and" ends on an odd position.
	if len(query.Connectives) != len(query.Comparisons)-1 {
		return Query{}, fmt.Errorf("%w: dangling connective", ErrMalformedCondition)
	}

	return query, nil
}

// asConnective classifies a bare token as a connective. Quoted tokens are
// literal values even when they spell "and" or "or".
func asConnective(tok token) (Connective, bool) {
	if tok.quoted {
		return "", false
	}

	switch Connective(tok.text) {
	case And:
		return And, true
	case Or:
		return Or, true
	}

	return "", false
}

// parseComparison splits a token into column, operator and value.
//
// Operator candidates are probed in opProbeOrder against the token text
// outside quoted spans; the first candidate found wins and the token is
// split at its first occurrence. Double quotes are stripped from the
// value and never compared.
func parseComparison(tok token) (Comparison, error) {
	for _, op := range opProbeOrder {
		idx := indexOutsideQuotes(tok.text, string(op))
		if idx < 0 {
			continue
		}

		column := tok.text[:idx]
		rawValue := tok.text[idx+len(op):]

		if column == "" {
			return Comparison{}, fmt.Errorf(
				"%w: missing column in %q", ErrMalformedCondition, tok.text,
			)
		}

		if rawValue == "" {
			return Comparison{}, fmt.Errorf(
				"%w: missing value in %q", ErrMalformedCondition, tok.text,
			)
		}

		return Comparison{
			Column: column,
			Op:     op,
			Value:  strings.ReplaceAll(rawValue, `"`, ""),
		}, nil
	}

	return Comparison{}, fmt.Errorf(
		"%w: no operator in %q", ErrMalformedCondition, tok.text,
	)
}
