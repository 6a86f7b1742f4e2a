// Package table holds the ordered in-memory record sequence of a store
// and exposes condition-driven selection and mutation over it.
package table

import (
	"github.com/calvinalkan/flatdb/internal/cond"
	"github.com/calvinalkan/flatdb/internal/record"
)

// idColumn is the column used by the first-match-by-id operations.
const idColumn = "id"

// Table is an ordered sequence of records. It has a single owner; no
// internal locking.
type Table struct {
	records []record.Record
}

// New creates a table over records. The table takes ownership of the slice.
func New(records []record.Record) *Table {
	return &Table{records: records}
}

// Len returns the number of records.
func (t *Table) Len() int {
	return len(t.records)
}

// Records returns the live record slice in table order.
func (t *Table) Records() []record.Record {
	return t.records
}

// Append adds a record at the end of the table.
func (t *Table) Append(rec record.Record) {
	t.records = append(t.records, rec)
}

// SelectIndices returns the positions of all records matching query, in
// table order. The wildcard query selects every position. An empty table
// yields an empty result regardless of query.
func (t *Table) SelectIndices(query cond.Query) []int {
	indices := make([]int, 0, len(t.records))

	for i, rec := range t.records {
		if cond.Evaluate(query, rec) {
			indices = append(indices, i)
		}
	}

	return indices
}

// SelectRecords returns all records matching query, in table order.
func (t *Table) SelectRecords(query cond.Query) []record.Record {
	var matched []record.Record

	for _, rec := range t.records {
		if cond.Evaluate(query, rec) {
			matched = append(matched, rec)
		}
	}

	return matched
}

// UpdateMatching sets column to value on every record matching query and
// returns how many records were updated. The value is applied uniformly;
// there is no per-row variation.
func (t *Table) UpdateMatching(query cond.Query, column, value string) int {
	updated := 0

	for _, rec := range t.records {
		if cond.Evaluate(query, rec) {
			rec[column] = value
			updated++
		}
	}

	return updated
}

// FindByID returns the first record whose "id" column equals id.
//
// This is deliberately first-match, not all-matches: callers depend on
// the scan stopping at the first hit even when ids are duplicated.
func (t *Table) FindByID(id string) (record.Record, bool) {
	for _, rec := range t.records {
		if rec[idColumn] == id {
			return rec, true
		}
	}

	return nil, false
}

// SetByID sets column to value on the first record whose "id" column
// equals id. Returns false if no record matches.
func (t *Table) SetByID(id, column, value string) bool {
	rec, ok := t.FindByID(id)
	if !ok {
		return false
	}

	rec[column] = value

	return true
}
