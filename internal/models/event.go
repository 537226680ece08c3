// Package models defines the domain types for Clav-Cal.
package models

// Complexity is a rough production-effort rating shared by notes and events.
type Complexity string

const (
	ComplexityLow    Complexity = "low"
	ComplexityMedium Complexity = "medium"
	ComplexityHigh   Complexity = "high"
)

// ContactInfo holds the optional contact block carried by events and notes.
type ContactInfo struct {
	Contact         string `json:"contact,omitempty"`
	ContactName     string `json:"contactName,omitempty"`
	ContactLastName string `json:"contactLastName,omitempty"`
	ContactRole     string `json:"contactRole,omitempty"`
	ContactPhone    string `json:"contactPhone,omitempty"`
	ContactEmail    string `json:"contactEmail,omitempty"`
	ContactNotes    string `json:"contactNotes,omitempty"`
}

// Event is a time-boxed, date-anchored item on the calendar.
//
// Date is "yyyy-mm-dd" and StartTime/EndTime are zero-padded 24h "HH:MM"
// wall-clock strings with no timezone. FromNoteID is a weak back-reference to
// the note the event was scheduled from; it may dangle after the note is
// deleted.
type Event struct {
	ID          string     `json:"id"`
	Date        string     `json:"date"`
	StartTime   string     `json:"startTime"`
	EndTime     string     `json:"endTime"`
	Title       string     `json:"title"`
	Color       string     `json:"color"`
	Tags        []string   `json:"tags"`
	Description string     `json:"description,omitempty"`
	Address     string     `json:"address,omitempty"`
	Attachments []string   `json:"attachments"`
	Complexity  Complexity `json:"complexity,omitempty"`
	Confirmed   bool       `json:"confirmed"`
	FromNoteID  string     `json:"fromNoteId,omitempty"`
	ContactInfo
}

// Clone returns a deep copy of e.
func (e Event) Clone() Event {
	e.Tags = cloneStrings(e.Tags)
	e.Attachments = cloneStrings(e.Attachments)
	return e
}

// EventPatch is a partial update. Nil fields are left untouched.
type EventPatch struct {
	Date            *string     `json:"date,omitempty"`
	StartTime       *string     `json:"startTime,omitempty"`
	EndTime         *string     `json:"endTime,omitempty"`
	Title           *string     `json:"title,omitempty"`
	Color           *string     `json:"color,omitempty"`
	Tags            *[]string   `json:"tags,omitempty"`
	Description     *string     `json:"description,omitempty"`
	Address         *string     `json:"address,omitempty"`
	Attachments     *[]string   `json:"attachments,omitempty"`
	Complexity      *Complexity `json:"complexity,omitempty"`
	Confirmed       *bool       `json:"confirmed,omitempty"`
	Contact         *string     `json:"contact,omitempty"`
	ContactName     *string     `json:"contactName,omitempty"`
	ContactLastName *string     `json:"contactLastName,omitempty"`
	ContactRole     *string     `json:"contactRole,omitempty"`
	ContactPhone    *string     `json:"contactPhone,omitempty"`
	ContactEmail    *string     `json:"contactEmail,omitempty"`
	ContactNotes    *string     `json:"contactNotes,omitempty"`
}

// Empty reports whether the patch sets no field.
func (p EventPatch) Empty() bool {
	return p == EventPatch{}
}

// TouchesTime reports whether the patch changes the date or the time range.
func (p EventPatch) TouchesTime() bool {
	return p.Date != nil || p.StartTime != nil || p.EndTime != nil
}

// Apply merges the set fields of p into e.
func (p EventPatch) Apply(e *Event) {
	setString(&e.Date, p.Date)
	setString(&e.StartTime, p.StartTime)
	setString(&e.EndTime, p.EndTime)
	setString(&e.Title, p.Title)
	setString(&e.Color, p.Color)
	setString(&e.Description, p.Description)
	setString(&e.Address, p.Address)
	if p.Tags != nil {
		e.Tags = cloneStrings(*p.Tags)
	}
	if p.Attachments != nil {
		e.Attachments = cloneStrings(*p.Attachments)
	}
	if p.Complexity != nil {
		e.Complexity = *p.Complexity
	}
	if p.Confirmed != nil {
		e.Confirmed = *p.Confirmed
	}
	setString(&e.Contact, p.Contact)
	setString(&e.ContactName, p.ContactName)
	setString(&e.ContactLastName, p.ContactLastName)
	setString(&e.ContactRole, p.ContactRole)
	setString(&e.ContactPhone, p.ContactPhone)
	setString(&e.ContactEmail, p.ContactEmail)
	setString(&e.ContactNotes, p.ContactNotes)
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func cloneStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}
