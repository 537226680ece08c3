// Package notestore owns scratch notes and their status lifecycle.
package notestore

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/gmondol/Clav-Cal/internal/apperr"
	"github.com/gmondol/Clav-Cal/internal/models"
	"github.com/gmondol/Clav-Cal/internal/persist"
)

// TransitionError reports a status change the lifecycle does not allow.
type TransitionError struct {
	NoteID string
	From   models.NoteStatus
	To     models.NoteStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("note %s: %s -> %s: %s", e.NoteID, e.From, e.To, apperr.ErrInvalidTransition)
}

// Is makes errors.Is(err, apperr.ErrInvalidTransition) match.
func (e *TransitionError) Is(target error) bool {
	return target == apperr.ErrInvalidTransition
}

// Option configures a Store.
type Option func(*Store)

// WithOnChange registers a listener called after every applied mutation.
func WithOnChange(fn models.ChangeFunc) Option {
	return func(s *Store) {
		s.onChange = fn
	}
}

// WithIDFunc overrides identifier generation.
func WithIDFunc(fn func() string) Option {
	return func(s *Store) {
		s.newID = fn
	}
}

// WithClock overrides the creation timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// Store holds notes in list order; index 0 is the top of the list.
type Store struct {
	mu    sync.RWMutex
	notes []models.Note

	db       persist.NotePersister
	dispatch *persist.Dispatcher
	onChange models.ChangeFunc
	newID    func() string
	now      func() time.Time
}

// New creates a store. A nil persister or dispatcher keeps the store purely
// in memory.
func New(db persist.NotePersister, dispatch *persist.Dispatcher, opts ...Option) *Store {
	s := &Store{
		db:       db,
		dispatch: dispatch,
		newID:    func() string { return uuid.New().String() },
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load replaces the in-memory notes with the datastore contents.
func (s *Store) Load(ctx context.Context) error {
	if s.db == nil {
		return nil
	}
	rows, err := s.db.SelectNotes(ctx)
	if err != nil {
		return fmt.Errorf("load notes: %w", err)
	}
	s.mu.Lock()
	s.notes = rows
	s.mu.Unlock()
	return nil
}

// Add places a new note at the top of the list and returns its id. The status
// defaults to idea; a note cannot be created as used.
func (s *Store) Add(draft models.Note) (string, error) {
	if draft.Status == "" {
		draft.Status = models.StatusIdea
	}
	if !draft.Status.Valid() {
		return "", fmt.Errorf("status %q: %w", draft.Status, apperr.ErrInvalidInput)
	}
	if draft.Status == models.StatusUsed {
		return "", &TransitionError{From: "", To: models.StatusUsed}
	}

	s.mu.Lock()
	n := s.prependLocked(draft)
	s.mu.Unlock()

	s.inserted("insert note", n)
	return n.ID, nil
}

// SeedTemplates adds the templates whose title no active note carries yet.
// The seeded notes keep their template order and go above existing notes.
// It returns the ids it created.
func (s *Store) SeedTemplates(templates []models.Note) ([]string, error) {
	for _, t := range templates {
		if t.Status == "" {
			continue
		}
		if !t.Status.Valid() || t.Status == models.StatusUsed {
			return nil, fmt.Errorf("template %q status %q: %w", t.Title, t.Status, apperr.ErrInvalidInput)
		}
	}

	s.mu.Lock()
	taken := make(map[string]bool, len(s.notes))
	for _, n := range s.notes {
		if !n.Archived {
			taken[n.Title] = true
		}
	}
	var fresh []models.Note
	for _, t := range templates {
		if taken[t.Title] {
			continue
		}
		taken[t.Title] = true
		t.Archived = false
		if t.Status == "" {
			t.Status = models.StatusIdea
		}
		fresh = append(fresh, t)
	}
	added := make([]models.Note, len(fresh))
	for i := len(fresh) - 1; i >= 0; i-- {
		added[i] = s.prependLocked(fresh[i])
	}
	s.mu.Unlock()

	ids := make([]string, 0, len(added))
	for _, n := range added {
		s.inserted("insert template note", n)
		ids = append(ids, n.ID)
	}
	return ids, nil
}

// prependLocked stores a copy of draft at the top of the list. s.mu must be
// held.
func (s *Store) prependLocked(draft models.Note) models.Note {
	n := draft.Clone()
	n.ID = s.newID()
	n.CreatedAt = s.now().UTC()
	n.SortOrder = 0
	if len(s.notes) > 0 {
		n.SortOrder = s.notes[0].SortOrder - 1
	}
	s.notes = slices.Insert(s.notes, 0, n)
	return n.Clone()
}

func (s *Store) inserted(op string, n models.Note) {
	row := n.Clone()
	s.submit(op, func(ctx context.Context) error {
		return s.db.InsertNote(ctx, row)
	})
	s.notify(models.ChangeCreated, n.ID)
}

// Update merges a user edit into the note. Status and sort order only change
// through the lifecycle and reorder operations.
func (s *Store) Update(id string, patch models.NotePatch) error {
	if patch.Status != nil || patch.SortOrder != nil {
		return fmt.Errorf("note %s: status and sort order: %w", id, apperr.ErrReadOnlyField)
	}
	return s.apply(id, "update note", func(models.Note) (models.NotePatch, error) {
		return patch, nil
	})
}

// Delete removes the note. Events scheduled from it are left alone.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return notFound(id)
	}
	s.notes = slices.Delete(s.notes, i, i+1)
	s.mu.Unlock()

	s.submit("delete note", func(ctx context.Context) error {
		return s.db.DeleteNote(ctx, id)
	})
	s.notify(models.ChangeDeleted, id)
	return nil
}

// SetArchived sets the archived flag without touching the status.
func (s *Store) SetArchived(id string, archived bool) error {
	return s.apply(id, "archive note", func(models.Note) (models.NotePatch, error) {
		return models.NotePatch{Archived: &archived}, nil
	})
}

// ToggleArchive flips the archived flag and returns the new value.
func (s *Store) ToggleArchive(id string) (bool, error) {
	var archived bool
	err := s.apply(id, "archive note", func(n models.Note) (models.NotePatch, error) {
		archived = !n.Archived
		return models.NotePatch{Archived: &archived}, nil
	})
	return archived, err
}

// Get returns a copy of one note.
func (s *Store) Get(id string) (models.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.indexLocked(id)
	if i < 0 {
		return models.Note{}, notFound(id)
	}
	return s.notes[i].Clone(), nil
}

// List returns copies of all notes in list order.
func (s *Store) List() []models.Note {
	return s.filter(func(models.Note) bool { return true })
}

// Active returns the notes that are not archived.
func (s *Store) Active() []models.Note {
	return s.filter(func(n models.Note) bool { return !n.Archived })
}

// ByStatus returns the notes currently in status, archived ones included.
func (s *Store) ByStatus(status models.NoteStatus) []models.Note {
	return s.filter(func(n models.Note) bool { return n.Status == status })
}

func (s *Store) filter(keep func(models.Note) bool) []models.Note {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.Note{}
	for _, n := range s.notes {
		if keep(n) {
			out = append(out, n.Clone())
		}
	}
	return out
}

// apply runs build against the current note under the lock and applies the
// patch it returns. An empty patch is a no-op.
func (s *Store) apply(id, op string, build func(models.Note) (models.NotePatch, error)) error {
	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return notFound(id)
	}
	patch, err := build(s.notes[i])
	if err != nil {
		s.mu.Unlock()
		return err
	}
	if patch.Empty() {
		s.mu.Unlock()
		return nil
	}
	patch.Apply(&s.notes[i])
	s.mu.Unlock()

	s.submit(op, func(ctx context.Context) error {
		return s.db.UpdateNote(ctx, id, patch)
	})
	s.notify(models.ChangeUpdated, id)
	return nil
}

func (s *Store) indexLocked(id string) int {
	return slices.IndexFunc(s.notes, func(n models.Note) bool { return n.ID == id })
}

func (s *Store) submit(op string, job persist.Job) {
	if s.db == nil || s.dispatch == nil {
		return
	}
	s.dispatch.Submit(op, job)
}

func (s *Store) notify(kind models.ChangeKind, id string) {
	if s.onChange != nil {
		s.onChange(models.EntityNote, kind, id)
	}
}

func notFound(id string) error {
	return fmt.Errorf("note %s: %w", id, apperr.ErrNotFound)
}
