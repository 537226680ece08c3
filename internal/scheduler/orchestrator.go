// Package scheduler turns drag gestures and quick actions into calls on the
// event and note stores.
package scheduler

import (
	"errors"
	"fmt"
	"sync"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/gmondol/Clav-Cal/internal/apperr"
	"github.com/gmondol/Clav-Cal/internal/eventstore"
	"github.com/gmondol/Clav-Cal/internal/models"
	"github.com/gmondol/Clav-Cal/internal/notestore"
	"github.com/gmondol/Clav-Cal/internal/rules"
	"github.com/gmondol/Clav-Cal/internal/timeslot"
)

// Defaults control the event a note becomes when no explicit time is given.
type Defaults struct {
	StartTime       string
	DurationMinutes int
	// EnforceOverlap rejects confirmations and quick schedules that overlap
	// an existing event on the same day.
	EnforceOverlap bool
}

// DefaultDefaults returns a 10:00 start with a one hour duration.
func DefaultDefaults() Defaults {
	return Defaults{StartTime: "10:00", DurationMinutes: 60}
}

// Pending is a note dropped on a day, waiting for the user to confirm the
// time before the event is created.
type Pending struct {
	ID        string      `json:"id"`
	Note      models.Note `json:"note"`
	Date      string      `json:"date"`
	StartTime string      `json:"startTime"`
	EndTime   string      `json:"endTime"`
}

// ConfirmEdit carries the user's changes to a pending event. Nil fields keep
// the values derived from the note.
type ConfirmEdit struct {
	StartTime   *string   `json:"startTime,omitempty"`
	EndTime     *string   `json:"endTime,omitempty"`
	Title       *string   `json:"title,omitempty"`
	Color       *string   `json:"color,omitempty"`
	Description *string   `json:"description,omitempty"`
	Tags        *[]string `json:"tags,omitempty"`
	Confirmed   *bool     `json:"confirmed,omitempty"`
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithDefaults sets the scheduling defaults.
func WithDefaults(d Defaults) Option {
	return func(o *Orchestrator) {
		o.defaults = d
	}
}

// Orchestrator depends on both stores; the stores do not know each other.
// Compound operations are serialized so a pending drop and the note status it
// relies on are read and written together.
type Orchestrator struct {
	events   *eventstore.Store
	notes    *notestore.Store
	defaults Defaults

	mu      sync.Mutex
	pending *Pending
}

// New creates an Orchestrator over the two stores.
func New(events *eventstore.Store, notes *notestore.Store, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		events:   events,
		notes:    notes,
		defaults: DefaultDefaults(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Drop dispatches a drag gesture. Drops with no target, onto the dragged
// item itself or onto the day the event is already on change nothing.
func (o *Orchestrator) Drop(src Source, dst Target) (Outcome, error) {
	none := Outcome{Action: ActionNone}
	if src == nil || dst == nil {
		return none, nil
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	switch s := src.(type) {
	case NoteSource:
		return o.dropNote(s, dst)
	case EventSource:
		return o.dropEvent(s, dst)
	}
	return none, nil
}

func (o *Orchestrator) dropNote(src NoteSource, dst Target) (Outcome, error) {
	none := Outcome{Action: ActionNone}
	switch t := dst.(type) {
	case DayTarget:
		if t.Date == "" {
			return none, nil
		}
		return o.openPending(src.NoteID, t.Date)
	case EventTarget:
		over, err := o.events.Get(t.EventID)
		if err != nil {
			return none, err
		}
		return o.openPending(src.NoteID, over.Date)
	case NoteTarget:
		if t.NoteID == src.NoteID {
			return none, nil
		}
		if err := o.notes.Reorder(src.NoteID, t.NoteID); err != nil {
			return none, err
		}
		return Outcome{Action: ActionNotesReordered}, nil
	}
	return none, nil
}

func (o *Orchestrator) dropEvent(src EventSource, dst Target) (Outcome, error) {
	none := Outcome{Action: ActionNone, EventID: src.EventID}
	ev, err := o.events.Get(src.EventID)
	if err != nil {
		return none, err
	}

	switch t := dst.(type) {
	case DayTarget:
		if t.Date == "" || t.Date == ev.Date {
			return none, nil
		}
		if err := o.events.Move(ev.ID, t.Date); err != nil {
			return none, err
		}
		return Outcome{Action: ActionEventMoved, EventID: ev.ID}, nil
	case EventTarget:
		if t.EventID == ev.ID {
			return none, nil
		}
		over, err := o.events.Get(t.EventID)
		if err != nil {
			return none, err
		}
		if over.Date != ev.Date {
			if err := o.events.Move(ev.ID, over.Date); err != nil {
				return none, err
			}
			return Outcome{Action: ActionEventMoved, EventID: ev.ID}, nil
		}
		if err := o.events.ReorderWithinDay(ev.ID, over.ID); err != nil {
			return none, err
		}
		return Outcome{Action: ActionEventsSwapped, EventID: ev.ID}, nil
	case UnscheduleTarget:
		reverted, err := o.unscheduleLocked(ev.ID)
		if err != nil {
			return none, err
		}
		return Outcome{Action: ActionEventUnscheduled, EventID: ev.ID, NoteReverted: reverted}, nil
	}
	return none, nil
}

// openPending replaces any earlier pending drop.
func (o *Orchestrator) openPending(noteID, date string) (Outcome, error) {
	if err := validation.Validate(date, rules.Date); err != nil {
		return Outcome{Action: ActionNone}, fmt.Errorf("date: %w: %w", apperr.ErrInvalidInput, err)
	}
	note, err := o.schedulableNote(noteID)
	if err != nil {
		return Outcome{Action: ActionNone}, err
	}
	start := o.defaults.StartTime
	p := &Pending{
		ID:        uuid.New().String(),
		Note:      note,
		Date:      date,
		StartTime: start,
		EndTime:   timeslot.AddMinutes(start, o.defaults.DurationMinutes),
	}
	o.pending = p
	cp := *p
	return Outcome{Action: ActionPending, Pending: &cp}, nil
}

// Pending returns the open pending drop, if any.
func (o *Orchestrator) Pending() (Pending, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.pending == nil {
		return Pending{}, false
	}
	return *o.pending, true
}

// Cancel discards the pending drop. It reports whether one was open.
func (o *Orchestrator) Cancel() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	had := o.pending != nil
	o.pending = nil
	return had
}

// Confirm creates the event for the pending drop and marks its note used.
// When the note is no longer schedulable the pending drop is discarded. An
// overlap rejection leaves it open so the user can pick another time.
func (o *Orchestrator) Confirm(edit ConfirmEdit) (models.Event, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.pending == nil {
		return models.Event{}, apperr.ErrNoPending
	}
	p := o.pending

	note, err := o.schedulableNote(p.Note.ID)
	if err != nil {
		o.pending = nil
		return models.Event{}, err
	}

	start := p.StartTime
	if edit.StartTime != nil {
		start = *edit.StartTime
	}
	end := timeslot.AddMinutes(start, o.defaults.DurationMinutes)
	if edit.EndTime != nil {
		end = *edit.EndTime
	}
	if err := rules.Range(p.Date, start, end); err != nil {
		return models.Event{}, err
	}

	draft := eventFromNote(note, p.Date, start, end)
	if edit.Title != nil {
		draft.Title = *edit.Title
	}
	if edit.Color != nil {
		draft.Color = *edit.Color
	}
	if edit.Description != nil {
		draft.Description = *edit.Description
	}
	if edit.Tags != nil {
		draft.Tags = *edit.Tags
	}
	if edit.Confirmed != nil {
		draft.Confirmed = *edit.Confirmed
	}

	ev, err := o.commit(note.ID, draft)
	if err != nil {
		return models.Event{}, err
	}
	o.pending = nil
	return ev, nil
}

// ScheduleNote turns a ready note into an event on date without a pending
// step. An empty start uses the default start time.
func (o *Orchestrator) ScheduleNote(noteID, date, start string) (models.Event, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	note, err := o.schedulableNote(noteID)
	if err != nil {
		return models.Event{}, err
	}
	if start == "" {
		start = o.defaults.StartTime
	}
	end := timeslot.AddMinutes(start, o.defaults.DurationMinutes)
	if err := rules.Range(date, start, end); err != nil {
		return models.Event{}, err
	}
	return o.commit(note.ID, eventFromNote(note, date, start, end))
}

// Unschedule deletes the event and, when it came from a note that is still
// used, reverts that note to ready. It reports whether a note was reverted.
func (o *Orchestrator) Unschedule(eventID string) (bool, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.unscheduleLocked(eventID)
}

func (o *Orchestrator) unscheduleLocked(eventID string) (bool, error) {
	removed, err := o.events.Delete(eventID)
	if err != nil {
		return false, err
	}
	if removed.FromNoteID == "" {
		return false, nil
	}
	note, err := o.notes.Get(removed.FromNoteID)
	if errors.Is(err, apperr.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if note.Status != models.StatusUsed {
		return false, nil
	}
	if err := o.notes.Revert(note.ID); err != nil {
		return false, err
	}
	return true, nil
}

func (o *Orchestrator) commit(noteID string, draft models.Event) (models.Event, error) {
	var id string
	if o.defaults.EnforceOverlap {
		var err error
		id, err = o.events.AddWithOverlapCheck(draft, o.events.ForDate(draft.Date))
		if err != nil {
			return models.Event{}, err
		}
	} else {
		id = o.events.Add(draft)
	}
	if err := o.notes.MarkUsed(noteID); err != nil {
		// The note changed after it was checked. Roll the event back.
		if _, delErr := o.events.Delete(id); delErr != nil && !errors.Is(delErr, apperr.ErrNotFound) {
			return models.Event{}, errors.Join(fmt.Errorf("mark note %s used: %w", noteID, err), delErr)
		}
		return models.Event{}, fmt.Errorf("mark note %s used: %w", noteID, err)
	}
	return o.events.Get(id)
}

func (o *Orchestrator) schedulableNote(id string) (models.Note, error) {
	note, err := o.notes.Get(id)
	if err != nil {
		return models.Note{}, err
	}
	if note.Status != models.StatusReady {
		return models.Note{}, fmt.Errorf("note %s is %s: %w", id, note.Status, apperr.ErrNotSchedulable)
	}
	return note, nil
}

func eventFromNote(n models.Note, date, start, end string) models.Event {
	return models.Event{
		Date:        date,
		StartTime:   start,
		EndTime:     end,
		Title:       n.Title,
		Color:       n.Color,
		Tags:        n.Tags,
		Description: n.Description,
		Address:     n.Address,
		Attachments: n.Attachments,
		Complexity:  n.Complexity,
		FromNoteID:  n.ID,
		ContactInfo: n.ContactInfo,
	}
}
