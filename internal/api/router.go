package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /stream inside the auth group.
func NewRouter(cal Calendar, opts Options, authEnabled bool, token string, sseHandler http.Handler) chi.Router {
	h := NewHandler(cal, opts)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	r.Get("/calendar", h.Snapshot)
	r.Get("/calendar.ics", h.ExportICS)

	r.Route("/events", func(r chi.Router) {
		r.Get("/", h.ListEvents)
		r.Post("/", h.CreateEvent)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.GetEvent)
			r.Patch("/", h.PatchEvent)
			r.Delete("/", h.DeleteEvent)
			r.Post("/move", h.MoveEvent)
			r.Post("/swap", h.SwapEvent)
		})
	})
	r.Get("/days/{date}/conflicts", h.DayConflicts)

	r.Route("/notes", func(r chi.Router) {
		r.Get("/", h.ListNotes)
		r.Post("/", h.CreateNote)
		r.Post("/reorder", h.ReorderNotes)
		r.Post("/templates", h.SeedTemplates)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.GetNote)
			r.Patch("/", h.PatchNote)
			r.Delete("/", h.DeleteNote)
			r.Post("/transition", h.TransitionNote)
			r.Post("/demote", h.DemoteNote)
			r.Post("/archive", h.ArchiveNote)
			r.Post("/profiles", h.AttachProfile)
			r.Post("/links", h.LinkCollaborator)
			r.Delete("/links/{collabId}", h.UnlinkCollaborator)
			r.Post("/schedule", h.ScheduleNote)
		})
	})

	r.Post("/drop", h.Drop)
	r.Get("/pending", h.GetPending)
	r.Delete("/pending", h.CancelPending)
	r.Post("/pending/confirm", h.ConfirmPending)

	r.Get("/slots", h.Slots)
	r.Get("/summary", h.Summary)

	if sseHandler != nil {
		r.Get("/stream", sseHandler.ServeHTTP)
	}

	return r
}
