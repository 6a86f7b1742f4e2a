package record

import (
	"fmt"
	"strings"
)

// Decode parses delimited text into ordered records.
//
// Lines starting with '#' (including a schema header) are skipped. Every
// other line is split on ';' and assigned positionally: field i goes to
// schema[i]. A line with fewer fields than columns populates only the
// supplied columns; the trailing columns are absent from that record, not
// empty strings. A line with more fields than columns fails the whole
// decode with [ErrTooManyFields].
func Decode(text string, schema Schema) ([]Record, error) {
	var records []Record

	for lineNo, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(line, headerPrefix) {
			continue
		}

		fields := strings.Split(line, fieldSeparator)
		if len(fields) > len(schema) {
			return nil, fmt.Errorf(
				"decode line %d: %w (%d fields, %d columns)",
				lineNo+1, ErrTooManyFields, len(fields), len(schema),
			)
		}

		rec := make(Record, len(fields))
		for i, field := range fields {
			rec[schema[i]] = field
		}

		records = append(records, rec)
	}

	return records, nil
}

// Encode renders records as delimited text.
//
// If includeHeader is true, the first line is the schema header
// ("#id;name;age"). Each record emits one line with the schema's columns
// in order; absent columns encode as empty strings. The result has no
// trailing newline.
//
// Values containing ';' or '\n' are written as-is; the format has no
// escaping and such values will not round-trip.
func Encode(records []Record, schema Schema, includeHeader bool) string {
	lines := make([]string, 0, len(records)+1)

	if includeHeader {
		lines = append(lines, schema.Header())
	}

	fields := make([]string, len(schema))

	for _, rec := range records {
		for i, col := range schema {
			fields[i] = rec[col]
		}

		lines = append(lines, strings.Join(fields, fieldSeparator))
	}

	return strings.Join(lines, "\n")
}
