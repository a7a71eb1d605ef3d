package store

import (
	"path/filepath"
	"testing"
)

// MustTempDB returns a DB backed by a file in a test temp directory. The DB is
// closed when the test finishes.
func MustTempDB(t testing.TB) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "playground.db"))
	if err != nil {
		t.Fatalf("opening temp store: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}
