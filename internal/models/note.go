package models

import "time"

// NoteStatus is the lifecycle stage of a note.
type NoteStatus string

const (
	StatusIdea     NoteStatus = "idea"
	StatusWorkshop NoteStatus = "workshop"
	StatusReady    NoteStatus = "ready"
	StatusUsed     NoteStatus = "used"
)

// Valid reports whether s is one of the known statuses.
func (s NoteStatus) Valid() bool {
	switch s {
	case StatusIdea, StatusWorkshop, StatusReady, StatusUsed:
		return true
	}
	return false
}

// CollabProfile is an external party attached to a note for collab planning.
type CollabProfile struct {
	Name          string `json:"name"`
	Platform      string `json:"platform,omitempty"`
	URL           string `json:"url,omitempty"`
	Followers     string `json:"followers,omitempty"`
	ProfilePicURL string `json:"profilePicUrl,omitempty"`
}

// Note is an unscheduled content idea.
type Note struct {
	ID              string          `json:"id"`
	Title           string          `json:"title"`
	Color           string          `json:"color"`
	Tags            []string        `json:"tags"`
	Description     string          `json:"description,omitempty"`
	Archived        bool            `json:"archived"`
	Status          NoteStatus      `json:"status"`
	CollabProfiles  []CollabProfile `json:"collabProfiles"`
	LinkedCollabIDs []string        `json:"linkedCollabIds"`
	Address         string          `json:"address,omitempty"`
	Attachments     []string        `json:"attachments"`
	Complexity      Complexity      `json:"complexity,omitempty"`
	KeepInScratch   bool            `json:"keepInScratch"`
	SortOrder       int             `json:"sortOrder"`
	CreatedAt       time.Time       `json:"createdAt"`
	ContactInfo
}

// HasCollaborators reports whether the note carries any collaborator data.
func (n Note) HasCollaborators() bool {
	return len(n.CollabProfiles) > 0 || len(n.LinkedCollabIDs) > 0
}

// Clone returns a deep copy of n.
func (n Note) Clone() Note {
	n.Tags = cloneStrings(n.Tags)
	n.Attachments = cloneStrings(n.Attachments)
	n.LinkedCollabIDs = cloneStrings(n.LinkedCollabIDs)
	profiles := make([]CollabProfile, len(n.CollabProfiles))
	copy(profiles, n.CollabProfiles)
	n.CollabProfiles = profiles
	return n
}

// NotePatch is a partial update. Nil fields are left untouched.
//
// Status and SortOrder are written by the lifecycle and reorder operations;
// user edits that set them are rejected by the note store.
type NotePatch struct {
	Title           *string          `json:"title,omitempty"`
	Color           *string          `json:"color,omitempty"`
	Tags            *[]string        `json:"tags,omitempty"`
	Description     *string          `json:"description,omitempty"`
	Archived        *bool            `json:"archived,omitempty"`
	Status          *NoteStatus      `json:"status,omitempty"`
	CollabProfiles  *[]CollabProfile `json:"collabProfiles,omitempty"`
	LinkedCollabIDs *[]string        `json:"linkedCollabIds,omitempty"`
	Address         *string          `json:"address,omitempty"`
	Attachments     *[]string        `json:"attachments,omitempty"`
	Complexity      *Complexity      `json:"complexity,omitempty"`
	KeepInScratch   *bool            `json:"keepInScratch,omitempty"`
	SortOrder       *int             `json:"sortOrder,omitempty"`
	Contact         *string          `json:"contact,omitempty"`
	ContactName     *string          `json:"contactName,omitempty"`
	ContactLastName *string          `json:"contactLastName,omitempty"`
	ContactRole     *string          `json:"contactRole,omitempty"`
	ContactPhone    *string          `json:"contactPhone,omitempty"`
	ContactEmail    *string          `json:"contactEmail,omitempty"`
	ContactNotes    *string          `json:"contactNotes,omitempty"`
}

// Empty reports whether the patch sets no field.
func (p NotePatch) Empty() bool {
	return p == NotePatch{}
}

// Apply merges the set fields of p into n.
func (p NotePatch) Apply(n *Note) {
	setString(&n.Title, p.Title)
	setString(&n.Color, p.Color)
	setString(&n.Description, p.Description)
	setString(&n.Address, p.Address)
	if p.Tags != nil {
		n.Tags = cloneStrings(*p.Tags)
	}
	if p.Archived != nil {
		n.Archived = *p.Archived
	}
	if p.Status != nil {
		n.Status = *p.Status
	}
	if p.CollabProfiles != nil {
		n.CollabProfiles = append([]CollabProfile{}, *p.CollabProfiles...)
	}
	if p.LinkedCollabIDs != nil {
		n.LinkedCollabIDs = cloneStrings(*p.LinkedCollabIDs)
	}
	if p.Attachments != nil {
		n.Attachments = cloneStrings(*p.Attachments)
	}
	if p.Complexity != nil {
		n.Complexity = *p.Complexity
	}
	if p.KeepInScratch != nil {
		n.KeepInScratch = *p.KeepInScratch
	}
	if p.SortOrder != nil {
		n.SortOrder = *p.SortOrder
	}
	setString(&n.Contact, p.Contact)
	setString(&n.ContactName, p.ContactName)
	setString(&n.ContactLastName, p.ContactLastName)
	setString(&n.ContactRole, p.ContactRole)
	setString(&n.ContactPhone, p.ContactPhone)
	setString(&n.ContactEmail, p.ContactEmail)
	setString(&n.ContactNotes, p.ContactNotes)
}
