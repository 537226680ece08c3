// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes Clav-Cal planning tools for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/gmondol/Clav-Cal/internal/eventstore"
	"github.com/gmondol/Clav-Cal/internal/models"
	"github.com/gmondol/Clav-Cal/internal/notestore"
	"github.com/gmondol/Clav-Cal/internal/rules"
	"github.com/gmondol/Clav-Cal/internal/scheduler"
	"github.com/gmondol/Clav-Cal/internal/summary"
)

const guideURI = "clavcal://planning-guide"

// Server wraps the MCP server with Clav-Cal tools.
type Server struct {
	mcp    *server.MCPServer
	events *eventstore.Store
	notes  *notestore.Store
	sched  *scheduler.Orchestrator
}

// New creates a new MCP server with all Clav-Cal tools registered.
func New(events *eventstore.Store, notes *notestore.Store, sched *scheduler.Orchestrator) *Server {
	s := &Server{events: events, notes: notes, sched: sched}

	s.mcp = server.NewMCPServer(
		"Clav-Cal",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("list_events",
		mcp.WithDescription("List scheduled events, optionally for one day, ordered by start time."),
		mcp.WithString("date", mcp.Description("Day in YYYY-MM-DD (empty for all events)")),
	), s.listEvents)

	s.mcp.AddTool(mcp.NewTool("get_conflicts",
		mcp.WithDescription("List the ids of events on a day whose time ranges overlap another event."),
		mcp.WithString("date", mcp.Required(), mcp.Description("Day in YYYY-MM-DD")),
	), s.getConflicts)

	s.mcp.AddTool(mcp.NewTool("list_notes",
		mcp.WithDescription("List notes in scratch-list order."),
		mcp.WithString("status", mcp.Description("Optional status filter: idea, workshop, ready or used")),
		mcp.WithBoolean("include_archived", mcp.Description("Include archived notes")),
	), s.listNotes)

	s.mcp.AddTool(mcp.NewTool("create_note",
		mcp.WithDescription("Create an idea note at the top of the scratch list. "+
			"Read the planning guide via get_planning_guide or the "+guideURI+" resource first."),
		mcp.WithString("title", mcp.Required(), mcp.Description("Note title")),
		mcp.WithString("description", mcp.Description("Free-form description")),
		mcp.WithString("tags", mcp.Description("Comma-separated tags")),
	), s.createNote)

	s.mcp.AddTool(mcp.NewTool("transition_note",
		mcp.WithDescription("Move a note between idea, workshop and ready. Use schedule_note and unschedule_event to enter or leave used."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Note id")),
		mcp.WithString("to", mcp.Required(), mcp.Description("Target status")),
	), s.transitionNote)

	s.mcp.AddTool(mcp.NewTool("schedule_note",
		mcp.WithDescription("Create an event from a ready note and mark the note used."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Note id")),
		mcp.WithString("date", mcp.Required(), mcp.Description("Day in YYYY-MM-DD")),
		mcp.WithString("start_time", mcp.Description("Start in HH:MM (defaults to the configured start)")),
	), s.scheduleNote)

	s.mcp.AddTool(mcp.NewTool("unschedule_event",
		mcp.WithDescription("Delete an event. A note it was created from returns to ready."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Event id")),
	), s.unscheduleEvent)

	s.mcp.AddTool(mcp.NewTool("plan_summary",
		mcp.WithDescription("Plain-text plan for the day, week (Monday start) or month containing date."),
		mcp.WithString("date", mcp.Required(), mcp.Description("Day in YYYY-MM-DD")),
		mcp.WithString("period", mcp.Description("day, week or month (default day)")),
	), s.planSummary)

	s.mcp.AddTool(mcp.NewTool("get_planning_guide",
		mcp.WithDescription("Returns the note lifecycle and time conventions. "+
			"Call this before changing notes or events."),
	), s.getPlanningGuide)

	s.mcp.AddResource(
		mcp.NewResource(guideURI, "Planning Guide",
			mcp.WithResourceDescription("Note lifecycle and scheduling conventions."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readPlanningGuideResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func jsonResult(v any) *mcp.CallToolResult {
	out, _ := json.MarshalIndent(v, "", "  ")
	return mcp.NewToolResultText(string(out))
}

func (s *Server) listEvents(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	date := req.GetString("date", "")
	if date == "" {
		return jsonResult(s.events.List()), nil
	}
	if err := validation.Validate(date, rules.Date); err != nil {
		return mcp.NewToolResultError("date: " + err.Error()), nil
	}
	return jsonResult(s.events.ForDate(date)), nil
}

func (s *Server) getConflicts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	date, err := req.RequireString("date")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := validation.Validate(date, rules.Date); err != nil {
		return mcp.NewToolResultError("date: " + err.Error()), nil
	}
	ids := s.events.Conflicts(date)
	if len(ids) == 0 {
		return mcp.NewToolResultText("no conflicts"), nil
	}
	return mcp.NewToolResultText(strings.Join(ids, "\n")), nil
}

func (s *Server) listNotes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	status := models.NoteStatus(req.GetString("status", ""))
	if status != "" && !status.Valid() {
		return mcp.NewToolResultError(fmt.Sprintf("unknown status: %s", status)), nil
	}
	withArchived := req.GetBool("include_archived", false)

	out := []models.Note{}
	for _, n := range s.notes.List() {
		if n.Archived && !withArchived {
			continue
		}
		if status != "" && n.Status != status {
			continue
		}
		out = append(out, n)
	}
	return jsonResult(out), nil
}

func (s *Server) createNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title, err := req.RequireString("title")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if strings.TrimSpace(title) == "" {
		return mcp.NewToolResultError("title must not be empty"), nil
	}

	var tags []string
	for _, t := range strings.Split(req.GetString("tags", ""), ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}

	id, err := s.notes.Add(models.Note{
		Title:       title,
		Description: req.GetString("description", ""),
		Tags:        tags,
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("created: %s", id)), nil
}

func (s *Server) transitionNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	to, err := req.RequireString("to")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.notes.Transition(id, models.NoteStatus(to)); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("%s: %s", id, to)), nil
}

func (s *Server) scheduleNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	date, err := req.RequireString("date")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	start := req.GetString("start_time", "")
	if err := (validation.Errors{
		"date":       validation.Validate(date, rules.Date),
		"start_time": validation.Validate(start, rules.Clock),
	}).Filter(); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	ev, err := s.sched.ScheduleNote(id, date, start)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(ev), nil
}

func (s *Server) unscheduleEvent(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	reverted, err := s.sched.Unschedule(id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if reverted {
		return mcp.NewToolResultText(fmt.Sprintf("deleted: %s (note back to ready)", id)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("deleted: %s", id)), nil
}

func (s *Server) planSummary(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	date, err := req.RequireString("date")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	period := summary.Period(req.GetString("period", string(summary.PeriodDay)))
	text, err := summary.For(period, s.events.List(), date)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(text), nil
}

func (s *Server) getPlanningGuide(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(PlanningGuide), nil
}

func (s *Server) readPlanningGuideResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      guideURI,
			MIMEType: "text/markdown",
			Text:     PlanningGuide,
		},
	}, nil
}
