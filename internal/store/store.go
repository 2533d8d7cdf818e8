// Package store owns the seven tabular datasets behind the dashboard:
// seeding, cached reads, and atomic full-file saves. Files are plain
// UTF-8 CSV with a header row; the store is their sole writer.
package store

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// CorruptFileError flags a backing file that exists but cannot be
// parsed. Reads recover by treating the dataset as empty; callers are
// expected to warn and carry on.
type CorruptFileError struct {
	File string
	Err  error
}

func (e *CorruptFileError) Error() string {
	return fmt.Sprintf("corrupt dataset file %s: %v", e.File, e.Err)
}

func (e *CorruptFileError) Unwrap() error { return e.Err }

// Store reads and writes the datasets under a single directory. Loads
// are cached per dataset; every save invalidates the cache entry so
// the next read in this process observes the write. There is no
// cross-process coordination: concurrent writers race at file level
// and the last full-file replace wins.
type Store struct {
	dir string

	mu    sync.Mutex
	cache map[string]Table
}

// New returns a store rooted at dir. The directory is created on the
// first seed or save.
func New(dir string) *Store {
	return &Store{dir: dir, cache: make(map[string]Table)}
}

// Dir returns the storage directory.
func (s *Store) Dir() string { return s.dir }

func (s *Store) path(ds Dataset) string {
	return filepath.Join(s.dir, ds.File)
}

// Load reads a dataset into memory. A missing file yields an empty
// table with the dataset's schema and no error. An unparseable file
// also yields an empty table, along with a *CorruptFileError the
// caller should downgrade to a warning; a read never fails outright.
func (s *Store) Load(ds Dataset) (Table, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked(ds)
}

func (s *Store) loadLocked(ds Dataset) (Table, error) {
	if t, ok := s.cache[ds.Name]; ok {
		return t, nil
	}
	t, err := readCSV(s.path(ds), ds.Columns)
	if err != nil {
		return Table{Columns: ds.Columns}, &CorruptFileError{File: ds.File, Err: err}
	}
	s.cache[ds.Name] = t
	return t, nil
}

// Save serializes the full table and atomically replaces the backing
// file: the rows are written to a temporary sibling first and renamed
// over the final path, so readers only ever see the old or the new
// complete file. Write failures are returned as-is; there is no safe
// fallback for a store that cannot persist.
func (s *Store) Save(ds Dataset, t Table) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked(ds, t)
}

func (s *Store) saveLocked(ds Dataset, t Table) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	path := s.path(ds)
	tmp := path + ".tmp"
	if err := writeCSV(tmp, t); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace %s: %w", ds.File, err)
	}
	delete(s.cache, ds.Name)
	return nil
}

// Invalidate drops the cached copy of a dataset so the next Load
// re-reads the file.
func (s *Store) Invalidate(ds Dataset) {
	s.mu.Lock()
	delete(s.cache, ds.Name)
	s.mu.Unlock()
}

// Mutate runs a read-modify-write cycle on one dataset under the store
// lock: fn receives the current table and returns the table to
// persist. Returning an error (ErrNotFound included) aborts without
// writing. The returned table is the persisted state.
func (s *Store) Mutate(ds Dataset, fn func(Table) (Table, error)) (Table, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, loadErr := s.loadLocked(ds)
	if loadErr != nil {
		// Corrupt file: proceed against the empty table, the next
		// save rewrites the dataset in full.
		t = Table{Columns: ds.Columns}
	}
	next, err := fn(t)
	if err != nil {
		return t, err
	}
	if err := s.saveLocked(ds, next); err != nil {
		return t, err
	}
	return next, nil
}

func readCSV(path string, fallback []string) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Table{Columns: fallback}, nil
		}
		return Table{}, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return Table{}, err
	}
	if len(records) == 0 {
		return Table{Columns: fallback}, nil
	}
	cols := records[0]
	t := Table{Columns: cols, Rows: make([]Row, 0, len(records)-1)}
	for _, rec := range records[1:] {
		row := make(Row, len(cols))
		for i, c := range cols {
			row[c] = rec[i]
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

func writeCSV(path string, t Table) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("write %s: %w", filepath.Base(path), cerr)
		}
	}()

	w := csv.NewWriter(f)
	if err := w.Write(t.Columns); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	rec := make([]string, len(t.Columns))
	for _, row := range t.Rows {
		for i, c := range t.Columns {
			rec[i] = row[c]
		}
		if err := w.Write(rec); err != nil {
			return fmt.Errorf("write %s: %w", filepath.Base(path), err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}
