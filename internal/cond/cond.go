// Package cond implements the condition language used to select records:
// a flat sequence of "column OP value" comparisons joined by "and"/"or",
// or the wildcard "*" matching every record.
//
//	id=1
//	name="Dan Smith" and age>=30
//	a=1 or b=2 and c=3        (and binds tighter than or)
//
// Values may be double-quoted to embed spaces; quotes are stripped and
// never compared. There are no parentheses; precedence is fixed.
//
// Known anomaly: the operators '<' and '>' evaluate as '<=' and '>=',
// and all ordering is lexicographic over the stored text, never numeric.
// Existing stores and their saved condition strings depend on both
// behaviors; see Evaluate before changing either.
package cond

// Op is a comparison operator.
type Op string

// Comparison operators.
const (
	OpNotEqual     Op = "!="
	OpLessEqual    Op = "<="
	OpGreaterEqual Op = ">="
	OpEqual        Op = "="
	OpLess         Op = "<"
	OpGreater      Op = ">"
)

// opProbeOrder lists operator candidates in detection order. Two-character
// operators come before their one-character prefixes so "a<=1" splits on
// "<=" rather than "<".
var opProbeOrder = []Op{OpNotEqual, OpLessEqual, OpGreaterEqual, OpEqual, OpLess, OpGreater}

// Connective joins two adjacent comparisons.
type Connective string

// Logical connectives.
const (
	And Connective = "and"
	Or  Connective = "or"
)

// Wildcard is the condition string matching every record.
const Wildcard = "*"

// Comparison is a single "column OP value" clause.
type Comparison struct {
	Column string
	Op     Op
	Value  string
}

// Query is a parsed condition string.
//
// Connectives are positionally interleaved with Comparisons:
// Connectives[i] joins Comparisons[i] and Comparisons[i+1], so
// len(Connectives) == len(Comparisons)-1 always holds for non-wildcard
// queries produced by Parse.
type Query struct {
	// All marks the wildcard query; Comparisons and Connectives are empty.
	All bool

	Comparisons []Comparison
	Connectives []Connective
}
