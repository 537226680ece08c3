package internal

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/gmondol/Clav-Cal/internal/models"
)

func TestOpen_ReloadsPersistedState(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.SQLite.Path = filepath.Join(t.TempDir(), "clavcal.db")
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	ctx := context.Background()

	var changes []string
	rt, err := open(ctx, cfg, logger, func(entity string, kind models.ChangeKind, id string) {
		changes = append(changes, entity)
	})
	if err != nil {
		t.Fatal(err)
	}
	noteID, err := rt.cal.Notes.Add(models.Note{Title: "Q&A Stream", Status: models.StatusReady})
	if err != nil {
		t.Fatal(err)
	}
	ev, err := rt.cal.Scheduler.ScheduleNote(noteID, "2024-06-01", "")
	if err != nil {
		t.Fatal(err)
	}
	rt.close(cfg.Sync.FlushTimeout, logger)

	if len(changes) < 3 {
		t.Errorf("changes = %v", changes)
	}

	rt, err = open(ctx, cfg, logger, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer rt.close(cfg.Sync.FlushTimeout, logger)

	got, err := rt.cal.Events.Get(ev.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.StartTime != "10:00" || got.EndTime != "11:00" || got.FromNoteID != noteID {
		t.Errorf("event = %+v", got)
	}
	n, err := rt.cal.Notes.Get(noteID)
	if err != nil {
		t.Fatal(err)
	}
	if n.Status != models.StatusUsed {
		t.Errorf("status = %s", n.Status)
	}
}

func TestRun_RequiresConfig(t *testing.T) {
	if err := Run(context.Background()); err == nil {
		t.Fatal("expected error without config")
	}
}
