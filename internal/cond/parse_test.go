package cond

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseWildcard(t *testing.T) {
	t.Parallel()

	query, err := Parse("*")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if !query.All {
		t.Error("Parse(\"*\") should produce the wildcard query")
	}

	if len(query.Comparisons) != 0 || len(query.Connectives) != 0 {
		t.Error("wildcard query must carry no comparisons or connectives")
	}
}

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		condition string
		want      Query
	}{
		{
			name:      "single equality",
			condition: "id=1",
			want: Query{
				Comparisons: []Comparison{{Column: "id", Op: OpEqual, Value: "1"}},
			},
		},
		{
			name:      "and joined",
			condition: "uid=1 and iud=2",
			want: Query{
				Comparisons: []Comparison{
					{Column: "uid", Op: OpEqual, Value: "1"},
					{Column: "iud", Op: OpEqual, Value: "2"},
				},
				Connectives: []Connective{And},
			},
		},
		{
			name:      "or joined",
			condition: "a=1 or b=2",
			want: Query{
				Comparisons: []Comparison{
					{Column: "a", Op: OpEqual, Value: "1"},
					{Column: "b", Op: OpEqual, Value: "2"},
				},
				Connectives: []Connective{Or},
			},
		},
		{
			name:      "mixed connectives keep order",
			condition: "a=1 or b=2 and c=3",
			want: Query{
				Comparisons: []Comparison{
					{Column: "a", Op: OpEqual, Value: "1"},
					{Column: "b", Op: OpEqual, Value: "2"},
					{Column: "c", Op: OpEqual, Value: "3"},
				},
				Connectives: []Connective{Or, And},
			},
		},
		{
			name:      "not equal",
			condition: "a!=1",
			want: Query{
				Comparisons: []Comparison{{Column: "a", Op: OpNotEqual, Value: "1"}},
			},
		},
		{
			name:      "less-equal wins over less",
			condition: "a<=1",
			want: Query{
				Comparisons: []Comparison{{Column: "a", Op: OpLessEqual, Value: "1"}},
			},
		},
		{
			name:      "greater-equal wins over greater",
			condition: "a>=1",
			want: Query{
				Comparisons: []Comparison{{Column: "a", Op: OpGreaterEqual, Value: "1"}},
			},
		},
		{
			name:      "less",
			condition: "a<1",
			want: Query{
				Comparisons: []Comparison{{Column: "a", Op: OpLess, Value: "1"}},
			},
		},
		{
			name:      "greater",
			condition: "a>1",
			want: Query{
				Comparisons: []Comparison{{Column: "a", Op: OpGreater, Value: "1"}},
			},
		},
		{
			name:      "quoted value with spaces",
			condition: `name="Dan Smith"`,
			want: Query{
				Comparisons: []Comparison{{Column: "name", Op: OpEqual, Value: "Dan Smith"}},
			},
		},
		{
			name:      "quoted value containing connective word",
			condition: `name="a and b"`,
			want: Query{
				Comparisons: []Comparison{{Column: "name", Op: OpEqual, Value: "a and b"}},
			},
		},
		{
			name:      "quoted literal next to real connective",
			condition: `name="x or y" and id=2`,
			want: Query{
				Comparisons: []Comparison{
					{Column: "name", Op: OpEqual, Value: "x or y"},
					{Column: "id", Op: OpEqual, Value: "2"},
				},
				Connectives: []Connective{And},
			},
		},
		{
			name:      "operator inside quotes is literal",
			condition: `name="a=b"`,
			want: Query{
				Comparisons: []Comparison{{Column: "name", Op: OpEqual, Value: "a=b"}},
			},
		},
		{
			name:      "quoted empty value",
			condition: `name=""`,
			want: Query{
				Comparisons: []Comparison{{Column: "name", Op: OpEqual, Value: ""}},
			},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got, err := Parse(testCase.condition)
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", testCase.condition, err)
			}

			if diff := cmp.Diff(testCase.want, got); diff != "" {
				t.Errorf("Parse(%q) mismatch (-want +got):\n%s", testCase.condition, diff)
			}
		})
	}
}

func TestParseConnectiveInvariant(t *testing.T) {
	t.Parallel()

	query, err := Parse("a=1 and b=2 or c=3 and d=4")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if len(query.Connectives) != len(query.Comparisons)-1 {
		t.Errorf(
			"connective count invariant broken: %d connectives for %d comparisons",
			len(query.Connectives), len(query.Comparisons),
		)
	}
}

func TestParseMalformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		condition string
	}{
		{"empty string", ""},
		{"whitespace only", "   "},
		{"no operator", "foo"},
		{"no operator in second clause", "a=1 and foo"},
		{"missing connective", "a=1 b=2"},
		{"dangling connective", "a=1 and"},
		{"leading connective", "and a=1"},
		{"bare connective", "or"},
		{"missing column", "=1"},
		{"missing value", "a="},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			_, err := Parse(testCase.condition)
			if !errors.Is(err, ErrMalformedCondition) {
				t.Fatalf("Parse(%q): want ErrMalformedCondition, got %v", testCase.condition, err)
			}
		})
	}
}
