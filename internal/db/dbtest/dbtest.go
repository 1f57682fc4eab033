// Package dbtest opens throwaway in-memory SQLite databases with the full
// schema applied.
package dbtest

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/quizhire/recruitment/internal/db"
)

var seq atomic.Int64

func Open(t *testing.T) *sql.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared&_pragma=foreign_keys(1)", name, seq.Add(1))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	dbh, err := db.Open(ctx, db.DriverSQLite, dsn)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = dbh.Close() })
	return dbh
}

// Exec runs seed statements and fails the test on error.
func Exec(t *testing.T, dbh *sql.DB, query string, args ...any) {
	t.Helper()
	if _, err := dbh.Exec(query, args...); err != nil {
		t.Fatalf("seed %q: %v", query, err)
	}
}
