// Package persist mirrors scheduling state to a row-oriented datastore.
//
// The stores apply every mutation to memory first and hand the matching
// write to a Dispatcher, which runs it in the background. A failed write is
// logged and dropped.
package persist

import (
	"context"

	"github.com/gmondol/Clav-Cal/internal/models"
)

// EventPersister is the datastore surface for the events table.
type EventPersister interface {
	InsertEvent(ctx context.Context, e models.Event) error
	UpdateEvent(ctx context.Context, id string, p models.EventPatch) error
	DeleteEvent(ctx context.Context, id string) error
	SelectEvents(ctx context.Context) ([]models.Event, error)
}

// NotePersister is the datastore surface for the notes table.
// SelectNotes returns rows ordered by sort order.
type NotePersister interface {
	InsertNote(ctx context.Context, n models.Note) error
	UpdateNote(ctx context.Context, id string, p models.NotePatch) error
	DeleteNote(ctx context.Context, id string) error
	SelectNotes(ctx context.Context) ([]models.Note, error)
}

// Persister covers both tables.
type Persister interface {
	EventPersister
	NotePersister
}

// Verify *DB satisfies Persister at compile time.
var _ Persister = (*DB)(nil)
