package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/gmondol/Clav-Cal/internal/models"
)

// ListNotes handles GET /api/notes.
//
//	@Summary		List notes in list order
//	@Tags			notes
//	@Produce		json
//	@Param			status		query		string	false	"Filter by status"	Enums(idea, workshop, ready, used)
//	@Param			archived	query		bool	false	"Filter by archived flag"
//	@Success		200			{object}	NoteListResponse
//	@Failure		400			{object}	errResponse
//	@Security		BearerAuth
//	@Router			/notes [get]
func (h *Handler) ListNotes(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	status := models.NoteStatus(q.Get("status"))
	if err := validation.Validate(status, statusRule); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("status: "+err.Error()))
		return
	}
	var archived *bool
	if raw := q.Get("archived"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody("archived: must be true or false"))
			return
		}
		archived = &v
	}

	notes := h.cal.Notes.List()
	out := make([]models.Note, 0, len(notes))
	for _, n := range notes {
		if status != "" && n.Status != status {
			continue
		}
		if archived != nil && n.Archived != *archived {
			continue
		}
		out = append(out, n)
	}
	writeJSON(w, http.StatusOK, NoteListResponse{Notes: out})
}

// CreateNote handles POST /api/notes.
//
//	@Summary		Create a note at the top of the list
//	@Tags			notes
//	@Accept			json
//	@Produce		json
//	@Param			body	body		NoteRequest	true	"Note to create"
//	@Success		201		{object}	models.Note
//	@Failure		400		{object}	errResponse
//	@Failure		422		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/notes [post]
func (h *Handler) CreateNote(w http.ResponseWriter, r *http.Request) {
	var req NoteRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	id, err := h.cal.Notes.Add(req.toNote())
	if err != nil {
		writeError(w, "create note", err)
		return
	}
	n, err := h.cal.Notes.Get(id)
	if err != nil {
		writeError(w, "create note", err, slog.String("id", id))
		return
	}
	writeJSON(w, http.StatusCreated, n)
}

// GetNote handles GET /api/notes/{id}.
func (h *Handler) GetNote(w http.ResponseWriter, r *http.Request) {
	h.writeNote(w, chi.URLParam(r, "id"))
}

// PatchNote handles PATCH /api/notes/{id}. Status and sort order are
// rejected; use the transition and reorder routes.
func (h *Handler) PatchNote(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req NotePatchRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.cal.Notes.Update(id, req.NotePatch); err != nil {
		writeError(w, "patch note", err, slog.String("id", id))
		return
	}
	h.writeNote(w, id)
}

// DeleteNote handles DELETE /api/notes/{id}.
//
//	@Summary		Delete a note; events scheduled from it are kept
//	@Tags			notes
//	@Param			id	path	string	true	"Note id"
//	@Success		204	"Note deleted"
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/notes/{id} [delete]
func (h *Handler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.cal.Notes.Delete(id); err != nil {
		writeError(w, "delete note", err, slog.String("id", id))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// TransitionNote handles POST /api/notes/{id}/transition.
//
//	@Summary		Move a note to another status
//	@Tags			notes
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string				true	"Note id"
//	@Param			body	body		TransitionRequest	true	"Target status"
//	@Success		200		{object}	models.Note
//	@Failure		404		{object}	errResponse
//	@Failure		422		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/notes/{id}/transition [post]
func (h *Handler) TransitionNote(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req TransitionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.cal.Notes.Transition(id, req.To); err != nil {
		writeError(w, "transition note", err, slog.String("id", id), slog.String("to", string(req.To)))
		return
	}
	h.writeNote(w, id)
}

// DemoteNote handles POST /api/notes/{id}/demote.
func (h *Handler) DemoteNote(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := h.cal.Notes.Demote(id); err != nil {
		writeError(w, "demote note", err, slog.String("id", id))
		return
	}
	h.writeNote(w, id)
}

// ArchiveNote handles POST /api/notes/{id}/archive.
func (h *Handler) ArchiveNote(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req ArchiveRequest
	if r.ContentLength != 0 && !decodeJSON(w, r, &req) {
		return
	}
	var err error
	if req.Archived != nil {
		err = h.cal.Notes.SetArchived(id, *req.Archived)
	} else {
		_, err = h.cal.Notes.ToggleArchive(id)
	}
	if err != nil {
		writeError(w, "archive note", err, slog.String("id", id))
		return
	}
	h.writeNote(w, id)
}

// AttachProfile handles POST /api/notes/{id}/profiles.
func (h *Handler) AttachProfile(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req ProfileRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.cal.Notes.AttachProfile(id, req.CollabProfile); err != nil {
		writeError(w, "attach profile", err, slog.String("id", id))
		return
	}
	h.writeNote(w, id)
}

// LinkCollaborator handles POST /api/notes/{id}/links.
func (h *Handler) LinkCollaborator(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req LinkRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.cal.Notes.LinkCollaborator(id, req.CollabID); err != nil {
		writeError(w, "link collaborator", err, slog.String("id", id), slog.String("collab_id", req.CollabID))
		return
	}
	h.writeNote(w, id)
}

// UnlinkCollaborator handles DELETE /api/notes/{id}/links/{collabId}.
func (h *Handler) UnlinkCollaborator(w http.ResponseWriter, r *http.Request) {
	id, collabID := chi.URLParam(r, "id"), chi.URLParam(r, "collabId")
	if err := h.cal.Notes.UnlinkCollaborator(id, collabID); err != nil {
		writeError(w, "unlink collaborator", err, slog.String("id", id), slog.String("collab_id", collabID))
		return
	}
	h.writeNote(w, id)
}

// ScheduleNote handles POST /api/notes/{id}/schedule.
//
//	@Summary		Turn a ready note into an event without the pending step
//	@Tags			notes
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string			true	"Note id"
//	@Param			body	body		ScheduleRequest	true	"Day and optional start time"
//	@Success		201		{object}	models.Event
//	@Failure		404		{object}	errResponse
//	@Failure		409		{object}	errResponse
//	@Failure		422		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/notes/{id}/schedule [post]
func (h *Handler) ScheduleNote(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req ScheduleRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	ev, err := h.cal.Scheduler.ScheduleNote(id, req.Date, req.StartTime)
	if err != nil {
		writeError(w, "schedule note", err, slog.String("id", id), slog.String("date", req.Date))
		return
	}
	writeJSON(w, http.StatusCreated, ev)
}

// SeedTemplates handles POST /api/notes/templates. It adds the configured
// starter notes whose titles are not taken by an active note and returns the
// notes it created.
func (h *Handler) SeedTemplates(w http.ResponseWriter, _ *http.Request) {
	ids, err := h.cal.Notes.SeedTemplates(h.opts.Templates)
	if err != nil {
		writeError(w, "seed templates", err)
		return
	}
	created := make([]models.Note, 0, len(ids))
	for _, id := range ids {
		n, err := h.cal.Notes.Get(id)
		if err != nil {
			continue
		}
		created = append(created, n)
	}
	writeJSON(w, http.StatusOK, NoteListResponse{Notes: created})
}

// ReorderNotes handles POST /api/notes/reorder.
func (h *Handler) ReorderNotes(w http.ResponseWriter, r *http.Request) {
	var req ReorderRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.cal.Notes.Reorder(req.ActiveID, req.OverID); err != nil {
		writeError(w, "reorder notes", err, slog.String("active_id", req.ActiveID), slog.String("over_id", req.OverID))
		return
	}
	writeJSON(w, http.StatusOK, NoteListResponse{Notes: h.cal.Notes.List()})
}

func (h *Handler) writeNote(w http.ResponseWriter, id string) {
	n, err := h.cal.Notes.Get(id)
	if err != nil {
		writeError(w, "get note", err, slog.String("id", id))
		return
	}
	writeJSON(w, http.StatusOK, n)
}
