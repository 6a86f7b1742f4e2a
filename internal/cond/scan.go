package cond

import "strings"

// token is one space-delimited span of a condition string. Spaces inside
// double quotes do not split tokens, so a quoted literal with embedded
// spaces (or an embedded "and"/"or") stays in one piece.
type token struct {
	text   string
	quoted bool // any part of the token was inside double quotes
}

// scan splits a condition string into tagged tokens. Quote characters are
// kept in the token text; parseComparison strips them from values later.
func scan(s string) []token {
	var (
		tokens   []token
		current  strings.Builder
		inQuote  bool
		sawQuote bool
	)

	flush := func() {
		if current.Len() == 0 {
			return
		}

		tokens = append(tokens, token{text: current.String(), quoted: sawQuote})
		current.Reset()

		sawQuote = false
	}

	for _, r := range s {
		switch {
		case r == '"':
			inQuote = !inQuote
			sawQuote = true

			current.WriteRune(r)
		case r == ' ' && !inQuote:
			flush()
		default:
			current.WriteRune(r)
		}
	}

	flush()

	return tokens
}

// indexOutsideQuotes returns the first index of sub in s that is not
// inside a double-quoted span, or -1.
func indexOutsideQuotes(s, sub string) int {
	inQuote := false

	for i := range len(s) {
		if s[i] == '"' {
			inQuote = !inQuote

			continue
		}

		if !inQuote && strings.HasPrefix(s[i:], sub) {
			return i
		}
	}

	return -1
}
