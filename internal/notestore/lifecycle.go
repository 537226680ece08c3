package notestore

import (
	"context"
	"fmt"
	"slices"

	"github.com/gmondol/Clav-Cal/internal/apperr"
	"github.com/gmondol/Clav-Cal/internal/models"
)

// transitions lists the legal status changes. The guard, when set, must also
// hold for the note.
var transitions = map[models.NoteStatus]map[models.NoteStatus]func(models.Note) bool{
	models.StatusIdea: {
		models.StatusWorkshop: nil,
	},
	models.StatusWorkshop: {
		models.StatusReady: nil,
	},
	models.StatusReady: {
		models.StatusWorkshop: models.Note.HasCollaborators,
		models.StatusIdea:     func(n models.Note) bool { return !n.HasCollaborators() },
		models.StatusUsed:     nil,
	},
	models.StatusUsed: {
		models.StatusReady: nil,
	},
}

// CanTransition reports whether n may move to status to.
func CanTransition(n models.Note, to models.NoteStatus) bool {
	guard, ok := transitions[n.Status][to]
	if !ok {
		return false
	}
	return guard == nil || guard(n)
}

// Transition moves the note to status to. The archived flag is untouched.
// Entering or leaving used is reserved for MarkUsed and Revert, which run
// alongside the creation and removal of the note's event.
func (s *Store) Transition(id string, to models.NoteStatus) error {
	return s.transition(id, to, "transition note", func(n models.Note) bool {
		return n.Status != models.StatusUsed && to != models.StatusUsed
	})
}

func (s *Store) transition(id string, to models.NoteStatus, op string, allowed func(models.Note) bool) error {
	return s.apply(id, op, func(n models.Note) (models.NotePatch, error) {
		if !allowed(n) || !CanTransition(n, to) {
			return models.NotePatch{}, &TransitionError{NoteID: id, From: n.Status, To: to}
		}
		return models.NotePatch{Status: &to}, nil
	})
}

// Stage moves an idea into collaboration staging.
func (s *Store) Stage(id string) error {
	return s.Transition(id, models.StatusWorkshop)
}

// Approve greenlights a workshop note.
func (s *Store) Approve(id string) error {
	return s.Transition(id, models.StatusReady)
}

// MarkUsed records that a ready note was turned into an event.
func (s *Store) MarkUsed(id string) error {
	return s.transition(id, models.StatusUsed, "mark note used", func(models.Note) bool { return true })
}

// Revert returns a used note to ready after its event is removed.
func (s *Store) Revert(id string) error {
	return s.transition(id, models.StatusReady, "revert note", func(n models.Note) bool {
		return n.Status == models.StatusUsed
	})
}

// Demote sends a ready note back to workshop when it has collaborators and
// to idea otherwise. It returns the new status.
func (s *Store) Demote(id string) (models.NoteStatus, error) {
	var to models.NoteStatus
	err := s.apply(id, "demote note", func(n models.Note) (models.NotePatch, error) {
		to = models.StatusIdea
		if n.HasCollaborators() {
			to = models.StatusWorkshop
		}
		if !CanTransition(n, to) {
			return models.NotePatch{}, &TransitionError{NoteID: id, From: n.Status, To: to}
		}
		return models.NotePatch{Status: &to}, nil
	})
	if err != nil {
		return "", err
	}
	return to, nil
}

// AttachProfile appends a collaborator profile. An idea note moves to
// workshop in the same update.
func (s *Store) AttachProfile(id string, profile models.CollabProfile) error {
	if profile.Name == "" {
		return fmt.Errorf("collaborator profile name: %w", apperr.ErrInvalidInput)
	}
	return s.apply(id, "attach profile", func(n models.Note) (models.NotePatch, error) {
		profiles := append(slices.Clone(n.CollabProfiles), profile)
		patch := models.NotePatch{CollabProfiles: &profiles}
		if n.Status == models.StatusIdea {
			workshop := models.StatusWorkshop
			patch.Status = &workshop
		}
		return patch, nil
	})
}

// LinkCollaborator records another note as a collaborator of id. Linking
// twice is a no-op.
func (s *Store) LinkCollaborator(id, collabID string) error {
	if id == collabID {
		return fmt.Errorf("note %s cannot link itself: %w", id, apperr.ErrInvalidInput)
	}
	s.mu.RLock()
	exists := s.indexLocked(collabID) >= 0
	s.mu.RUnlock()
	if !exists {
		return notFound(collabID)
	}
	return s.apply(id, "link collaborator", func(n models.Note) (models.NotePatch, error) {
		if slices.Contains(n.LinkedCollabIDs, collabID) {
			return models.NotePatch{}, nil
		}
		linked := append(slices.Clone(n.LinkedCollabIDs), collabID)
		return models.NotePatch{LinkedCollabIDs: &linked}, nil
	})
}

// UnlinkCollaborator removes collabID from the note's linked collaborators.
func (s *Store) UnlinkCollaborator(id, collabID string) error {
	return s.apply(id, "unlink collaborator", func(n models.Note) (models.NotePatch, error) {
		if !slices.Contains(n.LinkedCollabIDs, collabID) {
			return models.NotePatch{}, nil
		}
		linked := slices.DeleteFunc(slices.Clone(n.LinkedCollabIDs), func(c string) bool { return c == collabID })
		return models.NotePatch{LinkedCollabIDs: &linked}, nil
	})
}

// Reorder moves activeID to overID's list position and renumbers the list.
// Only notes whose sort order changed are written back.
func (s *Store) Reorder(activeID, overID string) error {
	if activeID == overID {
		return nil
	}

	s.mu.Lock()
	from, to := s.indexLocked(activeID), s.indexLocked(overID)
	switch {
	case from < 0:
		s.mu.Unlock()
		return notFound(activeID)
	case to < 0:
		s.mu.Unlock()
		return notFound(overID)
	}
	moved := s.notes[from]
	s.notes = slices.Delete(s.notes, from, from+1)
	s.notes = slices.Insert(s.notes, to, moved)

	type change struct {
		id    string
		order int
	}
	var changed []change
	for i := range s.notes {
		if s.notes[i].SortOrder != i {
			s.notes[i].SortOrder = i
			changed = append(changed, change{id: s.notes[i].ID, order: i})
		}
	}
	s.mu.Unlock()

	for _, c := range changed {
		s.submit("reorder note", func(ctx context.Context) error {
			return s.db.UpdateNote(ctx, c.id, models.NotePatch{SortOrder: &c.order})
		})
		s.notify(models.ChangeUpdated, c.id)
	}
	return nil
}
