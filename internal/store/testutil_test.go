// internal/store/testutil_test.go
package store

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vmunix/newfile/internal/naming"
	"github.com/vmunix/newfile/internal/replace"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

var stamp = time.Date(2025, 8, 1, 9, 5, 0, 0, time.UTC)

func testSnapshot(name string) *Snapshot {
	return NewSnapshot(name, &naming.Request{
		DateTime:     stamp,
		Abbreviation: "CNF",
		Title:        "Meeting notes",
		Suffix:       "v1",
		Extension:    ".txt",
		OutputPath:   "/tmp/notes",
	}, naming.DefaultFlags(), []replace.Rule{replace.NewRule("{{date}}", "YYYYMMDD_HHMM")})
}
