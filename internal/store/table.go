package store

import (
	"errors"
	"strconv"
)

// ErrNotFound is reported when an update targets an ID that is not
// present in the collection.
var ErrNotFound = errors.New("not found")

// Row is a single record keyed by column name. Every column of the
// table must be present; "" stands for an unset optional field.
type Row map[string]string

// Table is an ordered collection of rows sharing a fixed column
// schema. Insertion order is preserved on disk but carries no meaning.
type Table struct {
	Columns []string
	Rows    []Row
}

// Append returns a new table with row added at the end. The receiver
// is left untouched; callers persist the result via Store.Save.
func (t Table) Append(row Row) Table {
	rows := make([]Row, 0, len(t.Rows)+1)
	rows = append(rows, t.Rows...)
	rows = append(rows, row)
	return Table{Columns: t.Columns, Rows: rows}
}

// UpdateByID applies mutate to a copy of every row whose idCol equals
// id and returns the resulting table. When no row matches, the input
// is returned unchanged alongside ErrNotFound.
func (t Table) UpdateByID(idCol string, id int, mutate func(Row)) (Table, error) {
	matched := false
	rows := make([]Row, len(t.Rows))
	for i, row := range t.Rows {
		if n, err := strconv.Atoi(row[idCol]); err == nil && n == id {
			clone := make(Row, len(row))
			for k, v := range row {
				clone[k] = v
			}
			mutate(clone)
			rows[i] = clone
			matched = true
			continue
		}
		rows[i] = row
	}
	if !matched {
		return t, ErrNotFound
	}
	return Table{Columns: t.Columns, Rows: rows}, nil
}

// NextID returns one more than the largest numeric value of idCol
// across all rows, or 1 for an empty table, a missing column, or a
// column with no numeric values. Non-numeric IDs are skipped, not
// rejected.
func NextID(t Table, idCol string) int {
	max := 0
	for _, row := range t.Rows {
		v, ok := row[idCol]
		if !ok {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil || n <= max {
			continue
		}
		max = n
	}
	return max + 1
}

// ReserveIDs returns n consecutive IDs starting at NextID. Computing
// the whole block up front keeps batch inserts (one round execution
// per template row) from re-deriving offsets against a moving base.
func ReserveIDs(t Table, idCol string, n int) []int {
	base := NextID(t, idCol)
	ids := make([]int, n)
	for i := range ids {
		ids[i] = base + i
	}
	return ids
}
