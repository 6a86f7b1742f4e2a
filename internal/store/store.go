// Package store provides the file-backed record store: a schema-fixed
// table persisted as ';'-delimited text, queried and mutated through the
// condition language in [github.com/calvinalkan/flatdb/internal/cond].
package store

import (
	"fmt"
	"os"
	"strings"

	"github.com/natefinch/atomic"

	"github.com/calvinalkan/flatdb/internal/cond"
	"github.com/calvinalkan/flatdb/internal/record"
	"github.com/calvinalkan/flatdb/internal/table"
)

const (
	dirPerms  = 0o750
	filePerms = 0o600
)

// Store is a single-owner, file-backed record table. All operations run
// to completion before returning; persistence is a whole-file atomic
// write guarded by a file lock against concurrent processes.
type Store struct {
	path          string
	schema        record.Schema
	table         *table.Table
	autoSave      bool
	readBeforeOps bool
}

type options struct {
	columns       []string
	autoSave      bool
	readBeforeOps bool
}

// Option configures a store on Open.
type Option func(*options)

// WithColumns fixes the schema instead of deriving it from the backing
// file's header line. Required when the backing file does not exist yet.
func WithColumns(columns []string) Option {
	return func(o *options) { o.columns = columns }
}

// WithAutoSave persists the store after every mutating operation.
func WithAutoSave() Option {
	return func(o *options) { o.autoSave = true }
}

// WithReadBeforeOps re-reads the backing file before every operation, so
// changes made by other processes become visible.
func WithReadBeforeOps() Option {
	return func(o *options) { o.readBeforeOps = true }
}

// Open loads the store at path.
//
// With [WithColumns] a missing backing file yields an empty store.
// Without it the schema is read from the file's leading "#a;b;c" header;
// a missing file or missing header fails with [ErrSchemaMissing].
// The schema is immutable for the lifetime of the store.
func Open(path string, opts ...Option) (*Store, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	s := &Store{
		path:          path,
		schema:        record.Schema(o.columns),
		autoSave:      o.autoSave,
		readBeforeOps: o.readBeforeOps,
		table:         table.New(nil),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && len(s.schema) > 0 {
			return s, nil
		}

		if os.IsNotExist(err) {
			return nil, fmt.Errorf("open %s: %w", path, ErrSchemaMissing)
		}

		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	if len(s.schema) == 0 {
		schema, ok := headerSchema(string(data))
		if !ok {
			return nil, fmt.Errorf("open %s: %w", path, ErrSchemaMissing)
		}

		s.schema = schema
	}

	loadErr := s.load(string(data))
	if loadErr != nil {
		return nil, fmt.Errorf("open %s: %w", path, loadErr)
	}

	return s, nil
}

// headerSchema extracts the schema from the first line of the backing text.
func headerSchema(data string) (record.Schema, bool) {
	firstLine, _, _ := strings.Cut(data, "\n")

	return record.ParseHeader(firstLine)
}

// Columns returns the store's schema.
func (s *Store) Columns() record.Schema {
	return s.schema
}

// Len returns the number of records currently in memory.
func (s *Store) Len() int {
	return s.table.Len()
}

// Records returns the in-memory records in table order.
func (s *Store) Records() []record.Record {
	return s.table.Records()
}

// Reload re-reads the backing file into memory, replacing the table.
// A backing file that disappeared leaves an empty table.
func (s *Store) Reload() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.table = table.New(nil)

			return nil
		}

		return fmt.Errorf("reload %s: %w", s.path, err)
	}

	loadErr := s.load(string(data))
	if loadErr != nil {
		return fmt.Errorf("reload %s: %w", s.path, loadErr)
	}

	return nil
}

func (s *Store) load(data string) error {
	records, err := record.Decode(data, s.schema)
	if err != nil {
		return err
	}

	s.table = table.New(records)

	return nil
}

// Save persists the table to the backing file: header line plus one line
// per record, written atomically under the store's file lock.
func (s *Store) Save() error {
	text := record.Encode(s.table.Records(), s.schema, true)

	err := withFileLock(s.path, func() error {
		return atomic.WriteFile(s.path, strings.NewReader(text))
	})
	if err != nil {
		return fmt.Errorf("save %s: %w", s.path, err)
	}

	return nil
}

// Select returns all records matching the condition string, in table
// order. The condition "*" selects every record.
func (s *Store) Select(condition string) ([]record.Record, error) {
	err := s.maybeReload()
	if err != nil {
		return nil, err
	}

	query, err := cond.Parse(condition)
	if err != nil {
		return nil, err
	}

	return s.table.SelectRecords(query), nil
}

// SelectIndices returns the positions of all records matching the
// condition string.
func (s *Store) SelectIndices(condition string) ([]int, error) {
	err := s.maybeReload()
	if err != nil {
		return nil, err
	}

	query, err := cond.Parse(condition)
	if err != nil {
		return nil, err
	}

	return s.table.SelectIndices(query), nil
}

// Update sets column to value on every record matching the condition
// string and returns the number of records updated.
func (s *Store) Update(condition, column, value string) (int, error) {
	err := s.maybeReload()
	if err != nil {
		return 0, err
	}

	query, err := cond.Parse(condition)
	if err != nil {
		return 0, err
	}

	updated := s.table.UpdateMatching(query, column, value)

	saveErr := s.maybeSave()
	if saveErr != nil {
		return updated, saveErr
	}

	return updated, nil
}

// FindByID returns the first record whose "id" column equals id.
// Returns [ErrNotFound] when no record matches.
func (s *Store) FindByID(id string) (record.Record, error) {
	err := s.maybeReload()
	if err != nil {
		return nil, err
	}

	rec, ok := s.table.FindByID(id)
	if !ok {
		return nil, fmt.Errorf("id %s: %w", id, ErrNotFound)
	}

	return rec, nil
}

// SetByID sets column to value on the first record whose "id" column
// equals id. Returns [ErrNotFound] when no record matches; nothing is
// saved in that case.
func (s *Store) SetByID(id, column, value string) error {
	err := s.maybeReload()
	if err != nil {
		return err
	}

	if !s.table.SetByID(id, column, value) {
		return fmt.Errorf("id %s: %w", id, ErrNotFound)
	}

	return s.maybeSave()
}

// Append adds a record at the end of the table. Keys outside the schema
// are legal in memory but will not survive a save/load round trip.
func (s *Store) Append(rec record.Record) error {
	err := s.maybeReload()
	if err != nil {
		return err
	}

	s.table.Append(rec)

	return s.maybeSave()
}

func (s *Store) maybeReload() error {
	if !s.readBeforeOps {
		return nil
	}

	return s.Reload()
}

func (s *Store) maybeSave() error {
	if !s.autoSave {
		return nil
	}

	return s.Save()
}
