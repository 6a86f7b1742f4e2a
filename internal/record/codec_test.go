package record

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDecode(t *testing.T) {
	t.Parallel()

	schema := Schema{"id", "name", "age"}

	tests := []struct {
		name  string
		input string
		want  []Record
	}{
		{
			name:  "full rows",
			input: "1;Dan;20\n2;Eve;30",
			want: []Record{
				{"id": "1", "name": "Dan", "age": "20"},
				{"id": "2", "name": "Eve", "age": "30"},
			},
		},
		{
			name:  "header line skipped",
			input: "#id;name;age\n1;Dan;20",
			want: []Record{
				{"id": "1", "name": "Dan", "age": "20"},
			},
		},
		{
			name:  "comment lines skipped anywhere",
			input: "1;Dan;20\n# interior comment\n2;Eve;30",
			want: []Record{
				{"id": "1", "name": "Dan", "age": "20"},
				{"id": "2", "name": "Eve", "age": "30"},
			},
		},
		{
			name:  "short row populates only supplied columns",
			input: "1;Dan",
			want: []Record{
				{"id": "1", "name": "Dan"},
			},
		},
		{
			name:  "empty fields are empty strings",
			input: "1;;20",
			want: []Record{
				{"id": "1", "name": "", "age": "20"},
			},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got, err := Decode(testCase.input, schema)
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}

			if diff := cmp.Diff(testCase.want, got); diff != "" {
				t.Errorf("Decode mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecodeShortRowOmitsTrailingColumns(t *testing.T) {
	t.Parallel()

	records, err := Decode("1;Dan", Schema{"id", "name", "age"})
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	// The missing trailing column is absent, not empty-string-defaulted.
	if _, present := records[0]["age"]; present {
		t.Errorf("age should be absent from short row, got %q", records[0]["age"])
	}
}

func TestDecodeTooManyFields(t *testing.T) {
	t.Parallel()

	_, err := Decode("1;Dan;20;extra", Schema{"id", "name", "age"})
	if !errors.Is(err, ErrTooManyFields) {
		t.Fatalf("want ErrTooManyFields, got %v", err)
	}
}

func TestEncode(t *testing.T) {
	t.Parallel()

	schema := Schema{"id", "name", "age"}
	records := []Record{
		{"id": "1", "name": "Dan", "age": "20"},
		{"id": "2", "name": "Eve"}, // age absent
	}

	got := Encode(records, schema, true)
	want := "#id;name;age\n1;Dan;20\n2;Eve;"

	if got != want {
		t.Errorf("Encode = %q, want %q", got, want)
	}
}

func TestEncodeWithoutHeader(t *testing.T) {
	t.Parallel()

	got := Encode([]Record{{"id": "1"}}, Schema{"id"}, false)
	if got != "1" {
		t.Errorf("Encode = %q, want %q", got, "1")
	}
}

func TestEncodeNoRecords(t *testing.T) {
	t.Parallel()

	got := Encode(nil, Schema{"id", "name"}, true)
	if got != "#id;name" {
		t.Errorf("Encode = %q, want header only", got)
	}
}

func TestEncodeNoTrailingNewline(t *testing.T) {
	t.Parallel()

	got := Encode([]Record{{"id": "1"}, {"id": "2"}}, Schema{"id"}, true)
	if got[len(got)-1] == '\n' {
		t.Error("encoded text must not end with a newline")
	}
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	schema := Schema{"id", "name", "age"}
	records := []Record{
		{"id": "1", "name": "Dan", "age": "20"},
		{"id": "2", "name": "Eve", "age": ""},
		{"id": "3", "name": "a b c", "age": "99"},
	}

	decoded, err := Decode(Encode(records, schema, true), schema)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if diff := cmp.Diff(records, decoded); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestParseHeader(t *testing.T) {
	t.Parallel()

	schema, ok := ParseHeader("#id;name;age")
	if !ok {
		t.Fatal("ParseHeader should accept a comment line")
	}

	if diff := cmp.Diff(Schema{"id", "name", "age"}, schema); diff != "" {
		t.Errorf("schema mismatch (-want +got):\n%s", diff)
	}

	_, ok = ParseHeader("id;name;age")
	if ok {
		t.Error("ParseHeader should reject a non-comment line")
	}
}

func TestHeaderRoundTrip(t *testing.T) {
	t.Parallel()

	schema := Schema{"id", "name"}

	parsed, ok := ParseHeader(schema.Header())
	if !ok {
		t.Fatal("Header output should parse back")
	}

	if diff := cmp.Diff(schema, parsed); diff != "" {
		t.Errorf("header round trip mismatch (-want +got):\n%s", diff)
	}
}
