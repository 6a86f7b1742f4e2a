// Package record defines the row and schema types of a store and the
// text codec that maps between them and the backing file format.
//
// The format is line-oriented: rows are separated by '\n', fields by ';',
// and lines starting with '#' are comments. A leading comment line may
// declare the schema ("#id;name;age"). Values are plain text; there is no
// escaping, so values containing ';' or '\n' corrupt the structure.
package record

import "strings"

// Record is one row of the store: column name to text value.
// Every stored value is a string; no other types exist.
type Record map[string]string

// Schema is the fixed, ordered list of column names for a store instance.
// Order determines the positional field assignment in the codec.
type Schema []string

// headerPrefix marks comment lines; a leading comment line declares the schema.
const headerPrefix = "#"

// fieldSeparator delimits fields within a row.
const fieldSeparator = ";"

// Header returns the schema as a comment line, e.g. "#id;name;age".
func (s Schema) Header() string {
	return headerPrefix + strings.Join(s, fieldSeparator)
}

// ParseHeader extracts a schema from a leading comment line.
// Returns false if line is not a comment line.
func ParseHeader(line string) (Schema, bool) {
	after, ok := strings.CutPrefix(line, headerPrefix)
	if !ok {
		return nil, false
	}

	return Schema(strings.Split(after, fieldSeparator)), true
}

// Clone returns a deep copy of the record.
func (r Record) Clone() Record {
	clone := make(Record, len(r))
	for k, v := range r {
		clone[k] = v
	}

	return clone
}
