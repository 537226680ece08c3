package persist_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gmondol/Clav-Cal/internal/apperr"
	"github.com/gmondol/Clav-Cal/internal/models"
	"github.com/gmondol/Clav-Cal/internal/testutil"
)

func ptr[T any](v T) *T { return &v }

func TestEventRoundTrip(t *testing.T) {
	db := testutil.TestDB(t)
	ctx := context.Background()

	ev := models.Event{
		ID: "e1", Date: "2025-03-10", StartTime: "09:00", EndTime: "10:00",
		Title: "Shoot", Color: "#ff0000", Tags: []string{"collab", "outdoor"},
		Attachments: []string{}, Complexity: models.ComplexityHigh, FromNoteID: "n1",
		ContactInfo: models.ContactInfo{ContactName: "Sam", ContactEmail: "sam@example.com"},
	}
	require.NoError(t, db.InsertEvent(ctx, ev))

	require.NoError(t, db.UpdateEvent(ctx, "e1", models.EventPatch{
		StartTime: ptr("11:00"), EndTime: ptr("12:30"), Confirmed: ptr(true),
	}))

	got, err := db.SelectEvents(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "11:00", got[0].StartTime)
	assert.Equal(t, "12:30", got[0].EndTime)
	assert.True(t, got[0].Confirmed)
	assert.Equal(t, []string{"collab", "outdoor"}, got[0].Tags)
	assert.Equal(t, "Sam", got[0].ContactName)
	assert.Equal(t, "n1", got[0].FromNoteID)

	require.NoError(t, db.DeleteEvent(ctx, "e1"))
	got, err = db.SelectEvents(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestUpdateMissingRow(t *testing.T) {
	db := testutil.TestDB(t)
	err := db.UpdateEvent(context.Background(), "nope", models.EventPatch{Title: ptr("x")})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestEmptyPatchIsNoop(t *testing.T) {
	db := testutil.TestDB(t)
	assert.NoError(t, db.UpdateNote(context.Background(), "nope", models.NotePatch{}))
}

func TestNoteRoundTrip(t *testing.T) {
	db := testutil.TestDB(t)
	ctx := context.Background()
	created := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)

	first := models.Note{
		ID: "a", Title: "First", Status: models.StatusWorkshop, SortOrder: 1, CreatedAt: created,
		CollabProfiles: []models.CollabProfile{{Name: "Kit", Platform: "twitch", Followers: "12k"}},
		LinkedCollabIDs: []string{"c1"},
	}
	second := models.Note{ID: "b", Title: "Second", Status: models.StatusIdea, SortOrder: 0, CreatedAt: created}
	require.NoError(t, db.InsertNote(ctx, first))
	require.NoError(t, db.InsertNote(ctx, second))

	require.NoError(t, db.UpdateNote(ctx, "a", models.NotePatch{
		Status: ptr(models.StatusReady), Archived: ptr(true),
	}))

	got, err := db.SelectNotes(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].ID, "ordered by sort order")
	assert.Equal(t, models.StatusReady, got[1].Status)
	assert.True(t, got[1].Archived)
	assert.Equal(t, []models.CollabProfile{{Name: "Kit", Platform: "twitch", Followers: "12k"}}, got[1].CollabProfiles)
	assert.Equal(t, []string{"c1"}, got[1].LinkedCollabIDs)
	assert.True(t, got[1].CreatedAt.Equal(created))
	assert.Equal(t, []models.CollabProfile{}, got[0].CollabProfiles)
}
