package store_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"fieldops/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	return store.New(t.TempDir())
}

func notifTable(ids ...string) store.Table {
	t := store.Table{Columns: store.Notifications.Columns}
	for _, id := range ids {
		row := store.Row{}
		for _, c := range store.Notifications.Columns {
			row[c] = ""
		}
		row["id"] = id
		row["status"] = "Pending"
		t.Rows = append(t.Rows, row)
	}
	return t
}

func TestNextID(t *testing.T) {
	tests := []struct {
		name string
		tbl  store.Table
		want int
	}{
		{"gapped ids", notifTable("3", "7", "2"), 8},
		{"empty table", notifTable(), 1},
		{"missing column", store.Table{Columns: []string{"tag"}, Rows: []store.Row{{"tag": "V-210"}}}, 1},
		{"non-numeric ignored", notifTable("abc", "5", ""), 6},
		{"all non-numeric", notifTable("abc", "x"), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := store.NextID(tt.tbl, "id"); got != tt.want {
				t.Errorf("NextID = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestReserveIDs(t *testing.T) {
	ids := store.ReserveIDs(notifTable("3", "7", "2"), "id", 4)
	want := []int{8, 9, 10, 11}
	if len(ids) != len(want) {
		t.Fatalf("got %d ids, want %d", len(ids), len(want))
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("ids[%d] = %d, want %d", i, ids[i], want[i])
		}
	}
}

func TestAppendDoesNotMutate(t *testing.T) {
	orig := notifTable("1", "2")
	row := store.Row{}
	for _, c := range store.Notifications.Columns {
		row[c] = ""
	}
	row["id"] = "3"

	next := orig.Append(row)

	if len(orig.Rows) != 2 {
		t.Fatalf("original length changed: %d", len(orig.Rows))
	}
	if len(next.Rows) != 3 {
		t.Fatalf("appended length = %d, want 3", len(next.Rows))
	}
	if next.Rows[2]["id"] != "3" {
		t.Errorf("new row not last: %v", next.Rows[2])
	}
	for i := range orig.Rows {
		if orig.Rows[i]["id"] != next.Rows[i]["id"] {
			t.Errorf("row %d changed", i)
		}
	}
}

func TestUpdateByID(t *testing.T) {
	orig := notifTable("1", "2")
	next, err := orig.UpdateByID("id", 2, func(r store.Row) {
		r["status"] = "Received"
	})
	if err != nil {
		t.Fatalf("UpdateByID: %v", err)
	}
	if next.Rows[1]["status"] != "Received" {
		t.Errorf("status = %q, want Received", next.Rows[1]["status"])
	}
	if orig.Rows[1]["status"] != "Pending" {
		t.Errorf("original row mutated: %q", orig.Rows[1]["status"])
	}
	if next.Rows[0]["status"] != "Pending" {
		t.Errorf("unmatched row changed: %q", next.Rows[0]["status"])
	}
}

func TestUpdateByIDNotFound(t *testing.T) {
	orig := notifTable("1", "2")
	next, err := orig.UpdateByID("id", 999, func(r store.Row) {
		r["status"] = "Received"
	})
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if len(next.Rows) != 2 || next.Rows[0]["status"] != "Pending" || next.Rows[1]["status"] != "Pending" {
		t.Error("collection changed on not-found update")
	}
}

func TestLoadMissingFile(t *testing.T) {
	s := newTestStore(t)
	tbl, err := s.Load(store.Notifications)
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if len(tbl.Rows) != 0 {
		t.Errorf("expected empty table, got %d rows", len(tbl.Rows))
	}
	if len(tbl.Columns) != len(store.Notifications.Columns) {
		t.Errorf("expected schema columns on empty table")
	}
}

func TestLoadCorruptFileRecovers(t *testing.T) {
	s := newTestStore(t)
	path := filepath.Join(s.Dir(), store.Notifications.File)
	if err := os.MkdirAll(s.Dir(), 0o755); err != nil {
		t.Fatal(err)
	}
	// Unterminated quote makes the CSV reader fail outright.
	if err := os.WriteFile(path, []byte("id,title\n\"broken,row\n1,ok,extra\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	tbl, err := s.Load(store.Notifications)
	var corrupt *store.CorruptFileError
	if !errors.As(err, &corrupt) {
		t.Fatalf("err = %v, want CorruptFileError", err)
	}
	if len(tbl.Rows) != 0 {
		t.Errorf("corrupt load should yield empty table, got %d rows", len(tbl.Rows))
	}

	// A subsequent save replaces the corrupt file with a valid one.
	if err := s.Save(store.Notifications, notifTable("1")); err != nil {
		t.Fatalf("save after corruption: %v", err)
	}
	tbl, err = s.Load(store.Notifications)
	if err != nil {
		t.Fatalf("load after save: %v", err)
	}
	if len(tbl.Rows) != 1 || tbl.Rows[0]["id"] != "1" {
		t.Errorf("unexpected reloaded table: %+v", tbl.Rows)
	}
}

func TestSaveAtomicReplace(t *testing.T) {
	s := newTestStore(t)
	if err := s.Save(store.Notifications, notifTable("1", "2")); err != nil {
		t.Fatal(err)
	}
	// A stale temp file from an interrupted writer must not shadow the
	// real dataset and must be cleaned up by the next save.
	path := filepath.Join(s.Dir(), store.Notifications.File)
	if err := os.WriteFile(path+".tmp", []byte("garbage"), 0o644); err != nil {
		t.Fatal(err)
	}
	tbl, err := s.Load(store.Notifications)
	if err != nil || len(tbl.Rows) != 2 {
		t.Fatalf("load with stale tmp: rows=%d err=%v", len(tbl.Rows), err)
	}

	if err := s.Save(store.Notifications, notifTable("1", "2", "3")); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temp file left behind after save")
	}
	tbl, err = s.Load(store.Notifications)
	if err != nil {
		t.Fatal(err)
	}
	if len(tbl.Rows) != 3 {
		t.Errorf("rows = %d, want 3", len(tbl.Rows))
	}
}

func TestCacheInvalidatedBySave(t *testing.T) {
	s := newTestStore(t)
	if err := s.Save(store.Notifications, notifTable("1")); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Load(store.Notifications); err != nil {
		t.Fatal(err)
	}
	if err := s.Save(store.Notifications, notifTable("1", "2")); err != nil {
		t.Fatal(err)
	}
	tbl, err := s.Load(store.Notifications)
	if err != nil {
		t.Fatal(err)
	}
	if len(tbl.Rows) != 2 {
		t.Errorf("read after write saw %d rows, want 2", len(tbl.Rows))
	}
}

func TestCachedReadNeedsExplicitInvalidate(t *testing.T) {
	s := newTestStore(t)
	if err := s.Save(store.Notifications, notifTable("1")); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Load(store.Notifications); err != nil {
		t.Fatal(err)
	}

	// Simulate another process replacing the file.
	other := store.New(s.Dir())
	if err := other.Save(store.Notifications, notifTable("1", "2", "3")); err != nil {
		t.Fatal(err)
	}

	tbl, _ := s.Load(store.Notifications)
	if len(tbl.Rows) != 1 {
		t.Fatalf("cached read should not observe external write, got %d rows", len(tbl.Rows))
	}
	s.Invalidate(store.Notifications)
	tbl, _ = s.Load(store.Notifications)
	if len(tbl.Rows) != 3 {
		t.Errorf("read after invalidate = %d rows, want 3", len(tbl.Rows))
	}
}

func TestMutateNotFoundDoesNotWrite(t *testing.T) {
	s := newTestStore(t)
	if err := s.Save(store.Notifications, notifTable("1")); err != nil {
		t.Fatal(err)
	}
	_, err := s.Mutate(store.Notifications, func(tbl store.Table) (store.Table, error) {
		return tbl.UpdateByID("id", 999, func(r store.Row) { r["status"] = "Received" })
	})
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	tbl, _ := store.New(s.Dir()).Load(store.Notifications)
	if len(tbl.Rows) != 1 || tbl.Rows[0]["status"] != "Pending" {
		t.Error("file changed by aborted mutation")
	}
}
