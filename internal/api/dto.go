package api

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/gmondol/Clav-Cal/internal/models"
	"github.com/gmondol/Clav-Cal/internal/rules"
	"github.com/gmondol/Clav-Cal/internal/scheduler"
)

// EventRequest is the request body for creating an event.
type EventRequest struct {
	Date        string            `json:"date" example:"2024-06-01" validate:"required"`
	StartTime   string            `json:"startTime" example:"10:00" validate:"required"`
	EndTime     string            `json:"endTime" example:"11:00" validate:"required"`
	Title       string            `json:"title" example:"Q&A Stream" validate:"required"`
	Color       string            `json:"color" example:"#8b5cf6"`
	Tags        []string          `json:"tags"`
	Description string            `json:"description"`
	Address     string            `json:"address"`
	Attachments []string          `json:"attachments"`
	Complexity  models.Complexity `json:"complexity" example:"medium"`
	Confirmed   bool              `json:"confirmed"`
	models.ContactInfo
}

// Validate checks the request fields.
func (r *EventRequest) Validate() error {
	if err := validation.ValidateStruct(r,
		validation.Field(&r.Date, validation.Required, rules.Date),
		validation.Field(&r.StartTime, validation.Required, rules.Clock),
		validation.Field(&r.EndTime, validation.Required, rules.Clock),
		validation.Field(&r.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Color, is.HexColor),
		validation.Field(&r.Complexity, complexityRule),
		validation.Field(&r.ContactEmail, is.EmailFormat),
	); err != nil {
		return err
	}
	return rules.EndAfterStart(r.StartTime, r.EndTime)
}

func (r *EventRequest) toEvent() models.Event {
	return models.Event{
		Date:        r.Date,
		StartTime:   r.StartTime,
		EndTime:     r.EndTime,
		Title:       r.Title,
		Color:       r.Color,
		Tags:        r.Tags,
		Description: r.Description,
		Address:     r.Address,
		Attachments: r.Attachments,
		Complexity:  r.Complexity,
		Confirmed:   r.Confirmed,
		ContactInfo: r.ContactInfo,
	}
}

// EventPatchRequest is a partial event update.
type EventPatchRequest struct {
	models.EventPatch
}

// Validate checks the fields that are set.
func (r *EventPatchRequest) Validate() error {
	p := &r.EventPatch
	return validation.ValidateStruct(p,
		validation.Field(&p.Date, validation.NilOrNotEmpty, rules.Date),
		validation.Field(&p.StartTime, validation.NilOrNotEmpty, rules.Clock),
		validation.Field(&p.EndTime, validation.NilOrNotEmpty, rules.Clock),
		validation.Field(&p.Title, validation.NilOrNotEmpty),
		validation.Field(&p.Color, is.HexColor),
		validation.Field(&p.Complexity, complexityRule),
		validation.Field(&p.ContactEmail, is.EmailFormat),
	)
}

// NoteRequest is the request body for creating a note.
type NoteRequest struct {
	Title           string                 `json:"title" example:"Q&A Stream" validate:"required"`
	Color           string                 `json:"color" example:"#8b5cf6"`
	Tags            []string               `json:"tags"`
	Description     string                 `json:"description"`
	Status          models.NoteStatus      `json:"status" example:"idea"`
	CollabProfiles  []models.CollabProfile `json:"collabProfiles"`
	LinkedCollabIDs []string               `json:"linkedCollabIds"`
	Address         string                 `json:"address"`
	Attachments     []string               `json:"attachments"`
	Complexity      models.Complexity      `json:"complexity"`
	KeepInScratch   bool                   `json:"keepInScratch"`
	models.ContactInfo
}

// Validate checks the request fields.
func (r *NoteRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Color, is.HexColor),
		validation.Field(&r.Status, statusRule),
		validation.Field(&r.CollabProfiles, validation.Each(validation.By(profileRule))),
		validation.Field(&r.Complexity, complexityRule),
		validation.Field(&r.ContactEmail, is.EmailFormat),
	)
}

func (r *NoteRequest) toNote() models.Note {
	return models.Note{
		Title:           r.Title,
		Color:           r.Color,
		Tags:            r.Tags,
		Description:     r.Description,
		Status:          r.Status,
		CollabProfiles:  r.CollabProfiles,
		LinkedCollabIDs: r.LinkedCollabIDs,
		Address:         r.Address,
		Attachments:     r.Attachments,
		Complexity:      r.Complexity,
		KeepInScratch:   r.KeepInScratch,
		ContactInfo:     r.ContactInfo,
	}
}

// NotePatchRequest is a partial note update.
type NotePatchRequest struct {
	models.NotePatch
}

// Validate checks the fields that are set.
func (r *NotePatchRequest) Validate() error {
	p := &r.NotePatch
	return validation.ValidateStruct(p,
		validation.Field(&p.Title, validation.NilOrNotEmpty),
		validation.Field(&p.Color, is.HexColor),
		validation.Field(&p.Complexity, complexityRule),
		validation.Field(&p.ContactEmail, is.EmailFormat),
	)
}

// ProfileRequest attaches a collaborator profile to a note.
type ProfileRequest struct {
	models.CollabProfile
}

// Validate checks the profile.
func (r *ProfileRequest) Validate() error {
	return profileRule(r.CollabProfile)
}

func profileRule(value any) error {
	p, _ := value.(models.CollabProfile)
	return validation.ValidateStruct(&p,
		validation.Field(&p.Name, validation.Required),
		validation.Field(&p.URL, is.URL),
		validation.Field(&p.ProfilePicURL, is.URL),
	)
}

// MoveRequest moves an event to another day.
type MoveRequest struct {
	Date string `json:"date" example:"2024-06-02" validate:"required"`
}

// Validate checks the request fields.
func (r *MoveRequest) Validate() error {
	return validation.ValidateStruct(r, validation.Field(&r.Date, validation.Required, rules.Date))
}

// SwapRequest exchanges an event's time range with another event's.
type SwapRequest struct {
	OverID string `json:"overId" validate:"required"`
}

// Validate checks the request fields.
func (r *SwapRequest) Validate() error {
	return validation.ValidateStruct(r, validation.Field(&r.OverID, validation.Required))
}

// TransitionRequest names the target status of a note.
type TransitionRequest struct {
	To models.NoteStatus `json:"to" example:"ready" validate:"required"`
}

// Validate checks the request fields.
func (r *TransitionRequest) Validate() error {
	return validation.ValidateStruct(r, validation.Field(&r.To, validation.Required, statusRule))
}

// ArchiveRequest sets the archived flag. Omitting it toggles the flag.
type ArchiveRequest struct {
	Archived *bool `json:"archived"`
}

// LinkRequest links a collaborator note.
type LinkRequest struct {
	CollabID string `json:"collabId" validate:"required"`
}

// Validate checks the request fields.
func (r *LinkRequest) Validate() error {
	return validation.ValidateStruct(r, validation.Field(&r.CollabID, validation.Required))
}

// ScheduleRequest quick-schedules a ready note.
type ScheduleRequest struct {
	Date      string `json:"date" example:"2024-06-01" validate:"required"`
	StartTime string `json:"startTime" example:"10:00"`
}

// Validate checks the request fields.
func (r *ScheduleRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Date, validation.Required, rules.Date),
		validation.Field(&r.StartTime, rules.Clock),
	)
}

// ReorderRequest moves a note to another note's list position.
type ReorderRequest struct {
	ActiveID string `json:"activeId" validate:"required"`
	OverID   string `json:"overId" validate:"required"`
}

// Validate checks the request fields.
func (r *ReorderRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.ActiveID, validation.Required),
		validation.Field(&r.OverID, validation.Required),
	)
}

// Drag source and drop target kinds on the wire.
const (
	kindNote       = "note"
	kindEvent      = "event"
	kindDay        = "day"
	kindUnschedule = "unschedule"
)

// DragRef identifies the dragged item.
type DragRef struct {
	Type string `json:"type" example:"note" validate:"required"`
	ID   string `json:"id" validate:"required"`
}

// DropRef identifies the drop zone.
type DropRef struct {
	Type string `json:"type" example:"day" validate:"required"`
	ID   string `json:"id,omitempty"`
	Date string `json:"date,omitempty" example:"2024-06-01"`
}

// DropRequest is a finished drag gesture. A missing target means the item
// was released outside any drop zone.
type DropRequest struct {
	Source DragRef  `json:"source"`
	Target *DropRef `json:"target"`
}

// Validate checks the request fields.
func (r *DropRequest) Validate() error {
	src := &r.Source
	if err := validation.ValidateStruct(src,
		validation.Field(&src.Type, validation.Required, validation.In(kindNote, kindEvent)),
		validation.Field(&src.ID, validation.Required),
	); err != nil {
		return validation.Errors{"source": err}
	}
	if r.Target == nil {
		return nil
	}
	dst := r.Target
	if err := validation.ValidateStruct(dst,
		validation.Field(&dst.Type, validation.Required, validation.In(kindDay, kindEvent, kindNote, kindUnschedule)),
		validation.Field(&dst.ID, validation.When(dst.Type == kindEvent || dst.Type == kindNote, validation.Required)),
		validation.Field(&dst.Date, validation.When(dst.Type == kindDay, validation.Required), rules.Date),
	); err != nil {
		return validation.Errors{"target": err}
	}
	return nil
}

func (r *DropRequest) source() scheduler.Source {
	if r.Source.Type == kindEvent {
		return scheduler.EventSource{EventID: r.Source.ID}
	}
	return scheduler.NoteSource{NoteID: r.Source.ID}
}

func (r *DropRequest) target() scheduler.Target {
	if r.Target == nil {
		return nil
	}
	switch r.Target.Type {
	case kindDay:
		return scheduler.DayTarget{Date: r.Target.Date}
	case kindEvent:
		return scheduler.EventTarget{EventID: r.Target.ID}
	case kindNote:
		return scheduler.NoteTarget{NoteID: r.Target.ID}
	case kindUnschedule:
		return scheduler.UnscheduleTarget{}
	}
	return nil
}

// ConfirmRequest confirms the pending drop with optional edits.
type ConfirmRequest struct {
	scheduler.ConfirmEdit
}

// Validate checks the fields that are set.
func (r *ConfirmRequest) Validate() error {
	e := &r.ConfirmEdit
	if err := validation.ValidateStruct(e,
		validation.Field(&e.StartTime, validation.NilOrNotEmpty, rules.Clock),
		validation.Field(&e.EndTime, validation.NilOrNotEmpty, rules.Clock),
		validation.Field(&e.Title, validation.NilOrNotEmpty),
		validation.Field(&e.Color, is.HexColor),
	); err != nil {
		return err
	}
	if e.StartTime != nil && e.EndTime != nil {
		return rules.EndAfterStart(*e.StartTime, *e.EndTime)
	}
	return nil
}

// EventListResponse wraps event listings.
type EventListResponse struct {
	Events []models.Event `json:"events" validate:"required"`
}

// NoteListResponse wraps note listings.
type NoteListResponse struct {
	Notes []models.Note `json:"notes" validate:"required"`
}

// CalendarSnapshot is the full state a client renders from.
type CalendarSnapshot struct {
	Events []models.Event `json:"events" validate:"required"`
	Notes  []models.Note  `json:"notes" validate:"required"`
}

// ConflictsResponse lists the conflicting event ids of a day.
type ConflictsResponse struct {
	Date      string   `json:"date" example:"2024-06-01" validate:"required"`
	Conflicts []string `json:"conflicts" validate:"required"`
}

// Slot is one row of the day grid.
type Slot struct {
	Time  string `json:"time" example:"06:30" validate:"required"`
	Label string `json:"label" example:"6:30 AM" validate:"required"`
}

// SummaryResponse carries a rendered plan summary.
type SummaryResponse struct {
	Period string `json:"period" example:"week" validate:"required"`
	Date   string `json:"date" example:"2024-06-01" validate:"required"`
	Text   string `json:"text" validate:"required"`
}

// UnscheduleResponse reports the effect of deleting an event.
type UnscheduleResponse struct {
	ID           string `json:"id" validate:"required"`
	NoteReverted bool   `json:"noteReverted"`
}
