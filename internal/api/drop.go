package api

import (
	"log/slog"
	"net/http"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/gmondol/Clav-Cal/internal/rules"
	"github.com/gmondol/Clav-Cal/internal/summary"
	"github.com/gmondol/Clav-Cal/internal/timeslot"
)

// Drop handles POST /api/drop.
//
//	@Summary		Apply a finished drag gesture
//	@Description	A note dropped on a day or event opens a pending creation; a note on a note
//	@Description	reorders the list; an event on a day moves, on an event of the same day swaps
//	@Description	time ranges, on the unschedule zone is deleted.
//	@Tags			scheduling
//	@Accept			json
//	@Produce		json
//	@Param			body	body		DropRequest	true	"Drag source and drop target"
//	@Success		200		{object}	scheduler.Outcome
//	@Failure		400		{object}	errResponse
//	@Failure		404		{object}	errResponse
//	@Failure		422		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/drop [post]
func (h *Handler) Drop(w http.ResponseWriter, r *http.Request) {
	var req DropRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	out, err := h.cal.Scheduler.Drop(req.source(), req.target())
	if err != nil {
		writeError(w, "drop", err, slog.String("source_type", req.Source.Type), slog.String("source_id", req.Source.ID))
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// GetPending handles GET /api/pending.
func (h *Handler) GetPending(w http.ResponseWriter, _ *http.Request) {
	p, ok := h.cal.Scheduler.Pending()
	if !ok {
		writeJSON(w, http.StatusNotFound, errorBody("no pending event creation"))
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// CancelPending handles DELETE /api/pending.
func (h *Handler) CancelPending(w http.ResponseWriter, _ *http.Request) {
	if !h.cal.Scheduler.Cancel() {
		writeJSON(w, http.StatusNotFound, errorBody("no pending event creation"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ConfirmPending handles POST /api/pending/confirm.
//
//	@Summary		Create the event for the pending drop
//	@Tags			scheduling
//	@Accept			json
//	@Produce		json
//	@Param			body	body		ConfirmRequest	false	"Edits to the derived event"
//	@Success		201		{object}	models.Event
//	@Failure		400		{object}	errResponse
//	@Failure		404		{object}	errResponse
//	@Failure		409		{object}	errResponse
//	@Failure		422		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/pending/confirm [post]
func (h *Handler) ConfirmPending(w http.ResponseWriter, r *http.Request) {
	var req ConfirmRequest
	if r.ContentLength != 0 && !decodeJSON(w, r, &req) {
		return
	}
	ev, err := h.cal.Scheduler.Confirm(req.ConfirmEdit)
	if err != nil {
		writeError(w, "confirm pending", err)
		return
	}
	writeJSON(w, http.StatusCreated, ev)
}

// Slots handles GET /api/slots.
func (h *Handler) Slots(w http.ResponseWriter, r *http.Request) {
	g := h.opts.Grid
	q := r.URL.Query()
	for _, p := range []struct {
		name string
		dst  *int
	}{{"start", &g.StartHour}, {"end", &g.EndHour}, {"interval", &g.SlotMinutes}} {
		raw := q.Get(p.name)
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody(p.name+": must be an integer"))
			return
		}
		*p.dst = v
	}
	if err := validation.ValidateStruct(&g,
		validation.Field(&g.StartHour, validation.Min(0), validation.Max(23)),
		validation.Field(&g.EndHour, validation.Min(g.StartHour+1), validation.Max(24)),
		validation.Field(&g.SlotMinutes, validation.Required, validation.Min(1), validation.Max(720)),
	); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}

	slots := []Slot{}
	for t := range timeslot.Slots(g.StartHour, g.EndHour, g.SlotMinutes) {
		slots = append(slots, Slot{Time: t, Label: timeslot.FormatTimeDisplay(t)})
	}
	writeJSON(w, http.StatusOK, map[string]any{"slots": slots})
}

// Summary handles GET /api/summary.
//
//	@Summary		Plain-text plan for a day, week or month
//	@Tags			calendar
//	@Produce		json
//	@Param			period	query		string	false	"Span"	Enums(day, week, month)
//	@Param			date	query		string	false	"Any day in the span, defaults to today"
//	@Success		200		{object}	SummaryResponse
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/summary [get]
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	period := summary.Period(q.Get("period"))
	if period == "" {
		period = summary.PeriodDay
	}
	date := q.Get("date")
	if date == "" {
		date = h.opts.Now().Format(rules.DateLayout)
	}
	text, err := summary.For(period, h.cal.Events.List(), date)
	if err != nil {
		writeError(w, "summary", err)
		return
	}
	writeJSON(w, http.StatusOK, SummaryResponse{Period: string(period), Date: date, Text: text})
}
