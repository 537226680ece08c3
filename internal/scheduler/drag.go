package scheduler

// Source is the item being dragged. It is one of NoteSource or EventSource.
type Source interface {
	isSource()
}

// NoteSource drags an unscheduled note.
type NoteSource struct {
	NoteID string
}

// EventSource drags a scheduled event.
type EventSource struct {
	EventID string
}

func (NoteSource) isSource()  {}
func (EventSource) isSource() {}

// Target is where the item was dropped. It is one of DayTarget, EventTarget,
// NoteTarget or UnscheduleTarget. A nil Target means the gesture ended
// outside any drop zone.
type Target interface {
	isTarget()
}

// DayTarget is a calendar day cell.
type DayTarget struct {
	Date string
}

// EventTarget is an event already on the calendar.
type EventTarget struct {
	EventID string
}

// NoteTarget is a note in the scratch list.
type NoteTarget struct {
	NoteID string
}

// UnscheduleTarget is the zone that removes an event from the calendar.
type UnscheduleTarget struct{}

func (DayTarget) isTarget()        {}
func (EventTarget) isTarget()      {}
func (NoteTarget) isTarget()       {}
func (UnscheduleTarget) isTarget() {}

// Action names what a drop did.
type Action string

const (
	ActionNone             Action = "none"
	ActionPending          Action = "pending"
	ActionNotesReordered   Action = "notes_reordered"
	ActionEventMoved       Action = "event_moved"
	ActionEventsSwapped    Action = "events_swapped"
	ActionEventUnscheduled Action = "event_unscheduled"
)

// Outcome describes the effect of a drop.
type Outcome struct {
	Action Action `json:"action"`
	// EventID is the dragged event, when there is one.
	EventID string `json:"eventId,omitempty"`
	// Pending is set for ActionPending.
	Pending *Pending `json:"pending,omitempty"`
	// NoteReverted reports that unscheduling returned the source note to ready.
	NoteReverted bool `json:"noteReverted,omitempty"`
}
