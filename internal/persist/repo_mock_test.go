package persist

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gmondol/Clav-Cal/internal/models"
)

func TestUpdateEvent_BuildsPartialStatement(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()
	db := NewDB(conn)

	start, end := "09:30", "10:30"
	mock.ExpectExec(regexp.QuoteMeta("UPDATE events SET start_time = ?, end_time = ? WHERE id = ?")).
		WithArgs("09:30", "10:30", "e1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = db.UpdateEvent(context.Background(), "e1", models.EventPatch{StartTime: &start, EndTime: &end})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateNote_SortOrderOnly(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()
	db := NewDB(conn)

	order := 3
	mock.ExpectExec(regexp.QuoteMeta("UPDATE notes SET sort_order = ? WHERE id = ?")).
		WithArgs(3, "n1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, db.UpdateNote(context.Background(), "n1", models.NotePatch{SortOrder: &order}))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteEvent_WrapsDriverError(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()
	db := NewDB(conn)

	driverErr := errors.New("database is locked")
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM events WHERE id = ?")).
		WithArgs("e1").
		WillReturnError(driverErr)

	err = db.DeleteEvent(context.Background(), "e1")
	assert.ErrorIs(t, err, driverErr)
	assert.Contains(t, err.Error(), "persist: delete event")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFailedWriteIsLoggedAndDropped(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()
	db := NewDB(conn)

	mock.ExpectExec("INSERT INTO events").WillReturnError(errors.New("disk full"))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM events WHERE id = ?")).
		WithArgs("e2").
		WillReturnResult(sqlmock.NewResult(0, 1))

	d := NewDispatcher(discardLogger(), 0)
	defer d.Close(context.Background())

	d.Submit("insert event", func(ctx context.Context) error {
		return db.InsertEvent(ctx, models.Event{ID: "e1", Date: "2025-01-01", StartTime: "09:00", EndTime: "10:00"})
	})
	d.Submit("delete event", func(ctx context.Context) error { return db.DeleteEvent(ctx, "e2") })
	d.Flush()

	require.NoError(t, mock.ExpectationsWereMet())
}
