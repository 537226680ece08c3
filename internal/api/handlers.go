package api

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/gmondol/Clav-Cal/internal/checksum"
	"github.com/gmondol/Clav-Cal/internal/eventstore"
	"github.com/gmondol/Clav-Cal/internal/export"
	"github.com/gmondol/Clav-Cal/internal/models"
	"github.com/gmondol/Clav-Cal/internal/notestore"
	"github.com/gmondol/Clav-Cal/internal/rules"
	"github.com/gmondol/Clav-Cal/internal/scheduler"
)

// Calendar bundles the stores and the orchestrator the handlers drive.
type Calendar struct {
	Events    *eventstore.Store
	Notes     *notestore.Store
	Scheduler *scheduler.Orchestrator
}

// Grid is the default day grid served by /slots.
type Grid struct {
	StartHour   int
	EndHour     int
	SlotMinutes int
}

// Options tune handler behaviour.
type Options struct {
	Grid Grid
	// EnforceOverlap makes every event create and time edit use the
	// validated path, not only requests with ?check_overlap=true.
	EnforceOverlap bool
	CalendarName   string
	// Templates are the starter notes seeded by POST /notes/templates.
	Templates      []models.Note
	Now            func() time.Time
}

// Handler holds API route handlers.
type Handler struct {
	cal  Calendar
	opts Options
}

// NewHandler creates a new Handler.
func NewHandler(cal Calendar, opts Options) *Handler {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Grid.SlotMinutes <= 0 {
		opts.Grid = Grid{StartHour: 6, EndHour: 24, SlotMinutes: 30}
	}
	if opts.CalendarName == "" {
		opts.CalendarName = "Clav-Cal"
	}
	return &Handler{cal: cal, opts: opts}
}

func (h *Handler) checkOverlap(r *http.Request) bool {
	return h.opts.EnforceOverlap || r.URL.Query().Get("check_overlap") == "true"
}

// Snapshot handles GET /api/calendar.
//
//	@Summary		Full calendar state
//	@Tags			calendar
//	@Produce		json
//	@Param			If-None-Match	header	string	false	"ETag from a previous response"
//	@Success		200		{object}	CalendarSnapshot
//	@Success		304		"Not modified"
//	@Security		BearerAuth
//	@Router			/calendar [get]
func (h *Handler) Snapshot(w http.ResponseWriter, r *http.Request) {
	snap := CalendarSnapshot{Events: h.cal.Events.List(), Notes: h.cal.Notes.List()}
	body, err := json.Marshal(snap)
	if err != nil {
		writeError(w, "snapshot", err)
		return
	}
	etag := checksum.ETag(body)
	w.Header().Set("ETag", etag)
	if checksum.Match(r.Header.Get("If-None-Match"), etag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(append(body, '\n'))
}

// ExportICS handles GET /api/calendar.ics.
func (h *Handler) ExportICS(w http.ResponseWriter, _ *http.Request) {
	var buf bytes.Buffer
	if err := export.WriteICS(&buf, h.cal.Events.List(), h.opts.CalendarName, h.opts.Now()); err != nil {
		writeError(w, "export ics", err)
		return
	}
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="clav-cal.ics"`)
	_, _ = w.Write(buf.Bytes())
}

// ListEvents handles GET /api/events.
//
//	@Summary		List events, optionally for one day in start order
//	@Tags			events
//	@Produce		json
//	@Param			date	query		string	false	"Day (yyyy-mm-dd)"
//	@Success		200		{object}	EventListResponse
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/events [get]
func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		writeJSON(w, http.StatusOK, EventListResponse{Events: h.cal.Events.List()})
		return
	}
	if err := validation.Validate(date, rules.Date); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("date: "+err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, EventListResponse{Events: h.cal.Events.ForDate(date)})
}

// CreateEvent handles POST /api/events.
//
//	@Summary		Create an event
//	@Tags			events
//	@Accept			json
//	@Produce		json
//	@Param			check_overlap	query	bool			false	"Reject the event if it overlaps another on the same day"
//	@Param			body			body	EventRequest	true	"Event to create"
//	@Success		201		{object}	models.Event
//	@Failure		400		{object}	errResponse
//	@Failure		409		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/events [post]
func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req EventRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	draft := req.toEvent()

	var id string
	if h.checkOverlap(r) {
		var err error
		if id, err = h.cal.Events.AddWithOverlapCheck(draft, h.cal.Events.ForDate(draft.Date)); err != nil {
			writeError(w, "create event", err)
			return
		}
	} else {
		id = h.cal.Events.Add(draft)
	}

	ev, err := h.cal.Events.Get(id)
	if err != nil {
		writeError(w, "create event", err, slog.String("id", id))
		return
	}
	writeJSON(w, http.StatusCreated, ev)
}

// GetEvent handles GET /api/events/{id}.
func (h *Handler) GetEvent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ev, err := h.cal.Events.Get(id)
	if err != nil {
		writeError(w, "get event", err, slog.String("id", id))
		return
	}
	writeJSON(w, http.StatusOK, ev)
}

// PatchEvent handles PATCH /api/events/{id}.
//
//	@Summary		Partially update an event
//	@Tags			events
//	@Accept			json
//	@Produce		json
//	@Param			id				path	string				true	"Event id"
//	@Param			check_overlap	query	bool				false	"Reject a time change that overlaps another event"
//	@Param			body			body	EventPatchRequest	true	"Fields to change"
//	@Success		200		{object}	models.Event
//	@Failure		400		{object}	errResponse
//	@Failure		404		{object}	errResponse
//	@Failure		409		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/events/{id} [patch]
func (h *Handler) PatchEvent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req EventPatchRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	current, err := h.cal.Events.Get(id)
	if err != nil {
		writeError(w, "patch event", err, slog.String("id", id))
		return
	}
	merged := current.Clone()
	req.EventPatch.Apply(&merged)
	if err := rules.EndAfterStart(merged.StartTime, merged.EndTime); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}

	if h.checkOverlap(r) {
		err = h.cal.Events.UpdateWithOverlapCheck(id, req.EventPatch, h.cal.Events.ForDate(merged.Date))
	} else {
		err = h.cal.Events.Update(id, req.EventPatch)
	}
	if err != nil {
		writeError(w, "patch event", err, slog.String("id", id))
		return
	}
	h.writeEvent(w, id)
}

// MoveEvent handles POST /api/events/{id}/move.
func (h *Handler) MoveEvent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req MoveRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.cal.Events.Move(id, req.Date); err != nil {
		writeError(w, "move event", err, slog.String("id", id))
		return
	}
	h.writeEvent(w, id)
}

// SwapEvent handles POST /api/events/{id}/swap.
//
//	@Summary		Exchange time ranges with another event on the same day
//	@Tags			events
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string		true	"Event id"
//	@Param			body	body		SwapRequest	true	"Event to swap with"
//	@Success		200		{object}	EventListResponse
//	@Failure		404		{object}	errResponse
//	@Failure		422		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/events/{id}/swap [post]
func (h *Handler) SwapEvent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req SwapRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.cal.Events.ReorderWithinDay(id, req.OverID); err != nil {
		writeError(w, "swap event", err, slog.String("id", id), slog.String("over_id", req.OverID))
		return
	}
	active, err := h.cal.Events.Get(id)
	if err != nil {
		writeError(w, "swap event", err, slog.String("id", id))
		return
	}
	writeJSON(w, http.StatusOK, EventListResponse{Events: h.cal.Events.ForDate(active.Date)})
}

// DeleteEvent handles DELETE /api/events/{id}. A note the event was
// scheduled from goes back to ready.
//
//	@Summary		Unschedule an event
//	@Tags			events
//	@Produce		json
//	@Param			id	path		string	true	"Event id"
//	@Success		200	{object}	UnscheduleResponse
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/events/{id} [delete]
func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	reverted, err := h.cal.Scheduler.Unschedule(id)
	if err != nil {
		writeError(w, "delete event", err, slog.String("id", id))
		return
	}
	writeJSON(w, http.StatusOK, UnscheduleResponse{ID: id, NoteReverted: reverted})
}

// DayConflicts handles GET /api/days/{date}/conflicts.
func (h *Handler) DayConflicts(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")
	if err := validation.Validate(date, validation.Required, rules.Date); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("date: "+err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, ConflictsResponse{Date: date, Conflicts: h.cal.Events.Conflicts(date)})
}

func (h *Handler) writeEvent(w http.ResponseWriter, id string) {
	ev, err := h.cal.Events.Get(id)
	if err != nil {
		writeError(w, "get event", err, slog.String("id", id))
		return
	}
	writeJSON(w, http.StatusOK, ev)
}
