// Package eventstore owns the scheduled events of a calendar.
//
// Every mutation is applied to memory under the store lock and is visible to
// the next read. The matching datastore write is handed to a
// persist.Dispatcher and is not awaited.
package eventstore

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/gmondol/Clav-Cal/internal/apperr"
	"github.com/gmondol/Clav-Cal/internal/conflict"
	"github.com/gmondol/Clav-Cal/internal/models"
	"github.com/gmondol/Clav-Cal/internal/persist"
	"github.com/gmondol/Clav-Cal/internal/timeslot"
)

// OverlapError is returned by the validated add and edit paths when the
// candidate range intersects events already on the same day.
type OverlapError struct {
	Candidate models.Event
	With      []string
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("%s %s-%s overlaps %s: %s",
		e.Candidate.Date, e.Candidate.StartTime, e.Candidate.EndTime,
		strings.Join(e.With, ", "), apperr.ErrOverlap)
}

// Is makes errors.Is(err, apperr.ErrOverlap) match.
func (e *OverlapError) Is(target error) bool {
	return target == apperr.ErrOverlap
}

// Option configures a Store.
type Option func(*Store)

// WithOnChange registers a listener called after every applied mutation.
// It runs outside the store lock.
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

// Store holds events in insertion order.
type Store struct {
	mu     sync.RWMutex
	events []models.Event

	db       persist.EventPersister
	dispatch *persist.Dispatcher
	onChange models.ChangeFunc
	newID    func() string
}

// New creates a store. A nil persister or dispatcher keeps the store purely
// in memory.
func New(db persist.EventPersister, dispatch *persist.Dispatcher, opts ...Option) *Store {
	s := &Store{
		db:       db,
		dispatch: dispatch,
		newID:    func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load replaces the in-memory events with the datastore contents.
func (s *Store) Load(ctx context.Context) error {
	if s.db == nil {
		return nil
	}
	rows, err := s.db.SelectEvents(ctx)
	if err != nil {
		return fmt.Errorf("load events: %w", err)
	}
	s.mu.Lock()
	s.events = rows
	s.mu.Unlock()
	return nil
}

// Add inserts draft under a fresh id and returns the id. No validation is
// performed.
func (s *Store) Add(draft models.Event) string {
	s.mu.Lock()
	ev := s.insertLocked(draft)
	s.mu.Unlock()

	s.afterInsert(ev)
	return ev.ID
}

// AddWithOverlapCheck inserts draft only if its range does not intersect any
// of existing on the same date. On overlap the store is left unchanged and an
// *OverlapError is returned.
func (s *Store) AddWithOverlapCheck(draft models.Event, existing []models.Event) (string, error) {
	draft.ID = ""
	if ids := conflict.Overlapping(draft, existing); len(ids) > 0 {
		return "", &OverlapError{Candidate: draft.Clone(), With: ids}
	}
	return s.Add(draft), nil
}

func (s *Store) insertLocked(draft models.Event) models.Event {
	ev := draft.Clone()
	ev.ID = s.newID()
	s.events = append(s.events, ev)
	return ev.Clone()
}

func (s *Store) afterInsert(ev models.Event) {
	s.submit("insert event", func(ctx context.Context) error {
		return s.db.InsertEvent(ctx, ev)
	})
	s.notify(models.ChangeCreated, ev.ID)
}

// Update merges the set fields of patch into the event. An empty patch is a
// no-op.
func (s *Store) Update(id string, patch models.EventPatch) error {
	return s.update(id, patch, nil)
}

// UpdateWithOverlapCheck is Update preceded by an overlap check of the
// patched range against existing. The event's own previous version is
// ignored.
func (s *Store) UpdateWithOverlapCheck(id string, patch models.EventPatch, existing []models.Event) error {
	return s.update(id, patch, func(candidate models.Event) error {
		if ids := conflict.Overlapping(candidate, existing); len(ids) > 0 {
			return &OverlapError{Candidate: candidate, With: ids}
		}
		return nil
	})
}

func (s *Store) update(id string, patch models.EventPatch, check func(models.Event) error) error {
	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return fmt.Errorf("event %s: %w", id, apperr.ErrNotFound)
	}
	if patch.Empty() {
		s.mu.Unlock()
		return nil
	}
	candidate := s.events[i].Clone()
	patch.Apply(&candidate)
	if check != nil && patch.TouchesTime() {
		if err := check(candidate); err != nil {
			s.mu.Unlock()
			return err
		}
	}
	s.events[i] = candidate
	s.mu.Unlock()

	s.submit("update event", func(ctx context.Context) error {
		return s.db.UpdateEvent(ctx, id, patch)
	})
	s.notify(models.ChangeUpdated, id)
	return nil
}

// Move changes only the event's date.
func (s *Store) Move(id, date string) error {
	return s.Update(id, models.EventPatch{Date: &date})
}

// ReorderWithinDay exchanges the time ranges of two events on the same day.
// Durations travel with the slot. Reordering an event onto itself is a no-op.
func (s *Store) ReorderWithinDay(activeID, overID string) error {
	if activeID == overID {
		return nil
	}

	s.mu.Lock()
	ai, oi := s.indexLocked(activeID), s.indexLocked(overID)
	switch {
	case ai < 0:
		s.mu.Unlock()
		return fmt.Errorf("event %s: %w", activeID, apperr.ErrNotFound)
	case oi < 0:
		s.mu.Unlock()
		return fmt.Errorf("event %s: %w", overID, apperr.ErrNotFound)
	}
	a, o := &s.events[ai], &s.events[oi]
	if a.Date != o.Date {
		s.mu.Unlock()
		return fmt.Errorf("swap %s with %s: %w", activeID, overID, apperr.ErrDifferentDay)
	}
	a.StartTime, o.StartTime = o.StartTime, a.StartTime
	a.EndTime, o.EndTime = o.EndTime, a.EndTime
	aStart, aEnd, oStart, oEnd := a.StartTime, a.EndTime, o.StartTime, o.EndTime
	activePatch := models.EventPatch{StartTime: &aStart, EndTime: &aEnd}
	overPatch := models.EventPatch{StartTime: &oStart, EndTime: &oEnd}
	s.mu.Unlock()

	s.submit("swap event", func(ctx context.Context) error {
		return s.db.UpdateEvent(ctx, activeID, activePatch)
	})
	s.submit("swap event", func(ctx context.Context) error {
		return s.db.UpdateEvent(ctx, overID, overPatch)
	})
	s.notify(models.ChangeUpdated, activeID)
	s.notify(models.ChangeUpdated, overID)
	return nil
}

// Delete removes the event and returns its last state. The store does not
// know about notes; reverting a source note is the caller's job.
func (s *Store) Delete(id string) (models.Event, error) {
	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return models.Event{}, fmt.Errorf("event %s: %w", id, apperr.ErrNotFound)
	}
	removed := s.events[i]
	s.events = slices.Delete(s.events, i, i+1)
	s.mu.Unlock()

	s.submit("delete event", func(ctx context.Context) error {
		return s.db.DeleteEvent(ctx, id)
	})
	s.notify(models.ChangeDeleted, id)
	return removed, nil
}

// Get returns a copy of one event.
func (s *Store) Get(id string) (models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.indexLocked(id)
	if i < 0 {
		return models.Event{}, fmt.Errorf("event %s: %w", id, apperr.ErrNotFound)
	}
	return s.events[i].Clone(), nil
}

// List returns copies of all events in insertion order.
func (s *Store) List() []models.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Event, len(s.events))
	for i, e := range s.events {
		out[i] = e.Clone()
	}
	return out
}

// ForDate returns the events on date ordered by start time.
func (s *Store) ForDate(date string) []models.Event {
	s.mu.RLock()
	out := []models.Event{}
	for _, e := range s.events {
		if e.Date == date {
			out = append(out, e.Clone())
		}
	}
	s.mu.RUnlock()

	slices.SortStableFunc(out, func(a, b models.Event) int {
		return cmp.Compare(timeslot.TimeToMinutes(a.StartTime), timeslot.TimeToMinutes(b.StartTime))
	})
	return out
}

// Conflicts returns the ids of events on date that overlap another event on
// that date, in lexical order.
func (s *Store) Conflicts(date string) []string {
	return conflict.SortedIDs(conflict.ConflictingEvents(s.ForDate(date)))
}

func (s *Store) indexLocked(id string) int {
	return slices.IndexFunc(s.events, func(e models.Event) bool { return e.ID == id })
}

func (s *Store) submit(op string, job persist.Job) {
	if s.db == nil || s.dispatch == nil {
		return
	}
	s.dispatch.Submit(op, job)
}

func (s *Store) notify(kind models.ChangeKind, id string) {
	if s.onChange != nil {
		s.onChange(models.EntityEvent, kind, id)
	}
}
