package models

// ChangeKind names the mutation a store reports to its listeners.
type ChangeKind string

const (
	ChangeCreated ChangeKind = "created"
	ChangeUpdated ChangeKind = "updated"
	ChangeDeleted ChangeKind = "deleted"
)

// Entity names used in change notifications.
const (
	EntityEvent = "event"
	EntityNote  = "note"
)

// ChangeFunc receives a notification after a store mutation is applied.
type ChangeFunc func(entity string, kind ChangeKind, id string)
