// Package testutil provides shared test helpers for databases and stores.
package testutil

import (
	"context"
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/gmondol/Clav-Cal/internal/persist"
)

// TestDB creates a temporary SQLite database that is automatically cleaned up.
func TestDB(t *testing.T) *persist.DB {
	t.Helper()
	dbFile, err := os.CreateTemp("", "clavcal-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	db, err := persist.Open(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// Logger returns a logger that discards everything.
func Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Dispatcher returns a dispatcher that is closed when the test ends.
func Dispatcher(t *testing.T) *persist.Dispatcher {
	t.Helper()
	d := persist.NewDispatcher(Logger(), 0)
	t.Cleanup(func() { d.Close(context.Background()) })
	return d
}
