package persist

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gmondol/Clav-Cal/internal/apperr"
	"github.com/gmondol/Clav-Cal/internal/models"
)

const eventColumns = `id, date, start_time, end_time, title, color, tags, description, address,
	attachments, complexity, confirmed, from_note_id, contact, contact_name, contact_last_name,
	contact_role, contact_phone, contact_email, contact_notes`

const noteColumns = `id, title, color, tags, description, archived, status, collab_profiles,
	linked_collab_ids, address, attachments, complexity, keep_in_scratch, sort_order, created_at,
	contact, contact_name, contact_last_name, contact_role, contact_phone, contact_email, contact_notes`

// InsertEvent writes a new event row. An existing row with the same id is replaced.
func (db *DB) InsertEvent(ctx context.Context, e models.Event) error {
	tags, _ := json.Marshal(nonNil(e.Tags))
	attachments, _ := json.Marshal(nonNil(e.Attachments))
	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO events (`+eventColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			date = excluded.date, start_time = excluded.start_time, end_time = excluded.end_time,
			title = excluded.title, color = excluded.color, tags = excluded.tags,
			description = excluded.description, address = excluded.address,
			attachments = excluded.attachments, complexity = excluded.complexity,
			confirmed = excluded.confirmed, from_note_id = excluded.from_note_id,
			contact = excluded.contact, contact_name = excluded.contact_name,
			contact_last_name = excluded.contact_last_name, contact_role = excluded.contact_role,
			contact_phone = excluded.contact_phone, contact_email = excluded.contact_email,
			contact_notes = excluded.contact_notes
	`, e.ID, e.Date, e.StartTime, e.EndTime, e.Title, e.Color, string(tags), e.Description, e.Address,
		string(attachments), string(e.Complexity), e.Confirmed, e.FromNoteID, e.Contact, e.ContactName,
		e.ContactLastName, e.ContactRole, e.ContactPhone, e.ContactEmail, e.ContactNotes)
	if err != nil {
		return fmt.Errorf("persist: insert event: %w", err)
	}
	return nil
}

// UpdateEvent applies a partial patch as a single UPDATE keyed by id.
func (db *DB) UpdateEvent(ctx context.Context, id string, p models.EventPatch) error {
	var s setClause
	s.str("date", p.Date)
	s.str("start_time", p.StartTime)
	s.str("end_time", p.EndTime)
	s.str("title", p.Title)
	s.str("color", p.Color)
	s.strs("tags", p.Tags)
	s.str("description", p.Description)
	s.str("address", p.Address)
	s.strs("attachments", p.Attachments)
	if p.Complexity != nil {
		s.add("complexity", string(*p.Complexity))
	}
	if p.Confirmed != nil {
		s.add("confirmed", *p.Confirmed)
	}
	s.str("contact", p.Contact)
	s.str("contact_name", p.ContactName)
	s.str("contact_last_name", p.ContactLastName)
	s.str("contact_role", p.ContactRole)
	s.str("contact_phone", p.ContactPhone)
	s.str("contact_email", p.ContactEmail)
	s.str("contact_notes", p.ContactNotes)
	return db.update(ctx, "events", id, s)
}

// DeleteEvent removes an event row.
func (db *DB) DeleteEvent(ctx context.Context, id string) error {
	if _, err := db.conn.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id); err != nil {
		return fmt.Errorf("persist: delete event: %w", err)
	}
	return nil
}

// SelectEvents returns every event row ordered by date and start time.
func (db *DB) SelectEvents(ctx context.Context) ([]models.Event, error) {
	rows, err := db.conn.QueryContext(ctx, `SELECT `+eventColumns+` FROM events ORDER BY date, start_time`)
	if err != nil {
		return nil, fmt.Errorf("persist: select events: %w", err)
	}
	defer rows.Close()

	var out []models.Event
	for rows.Next() {
		var (
			e                 models.Event
			tags, attachments string
			complexity        string
		)
		if err := rows.Scan(&e.ID, &e.Date, &e.StartTime, &e.EndTime, &e.Title, &e.Color, &tags,
			&e.Description, &e.Address, &attachments, &complexity, &e.Confirmed, &e.FromNoteID,
			&e.Contact, &e.ContactName, &e.ContactLastName, &e.ContactRole, &e.ContactPhone,
			&e.ContactEmail, &e.ContactNotes); err != nil {
			return nil, fmt.Errorf("persist: scan event: %w", err)
		}
		e.Complexity = models.Complexity(complexity)
		e.Tags = decodeStrings(tags)
		e.Attachments = decodeStrings(attachments)
		out = append(out, e)
	}
	return out, rows.Err()
}

// InsertNote writes a new note row. An existing row with the same id is replaced.
func (db *DB) InsertNote(ctx context.Context, n models.Note) error {
	tags, _ := json.Marshal(nonNil(n.Tags))
	profiles, _ := json.Marshal(nonNilProfiles(n.CollabProfiles))
	linked, _ := json.Marshal(nonNil(n.LinkedCollabIDs))
	attachments, _ := json.Marshal(nonNil(n.Attachments))
	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO notes (`+noteColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title, color = excluded.color, tags = excluded.tags,
			description = excluded.description, archived = excluded.archived,
			status = excluded.status, collab_profiles = excluded.collab_profiles,
			linked_collab_ids = excluded.linked_collab_ids, address = excluded.address,
			attachments = excluded.attachments, complexity = excluded.complexity,
			keep_in_scratch = excluded.keep_in_scratch, sort_order = excluded.sort_order,
			contact = excluded.contact, contact_name = excluded.contact_name,
			contact_last_name = excluded.contact_last_name, contact_role = excluded.contact_role,
			contact_phone = excluded.contact_phone, contact_email = excluded.contact_email,
			contact_notes = excluded.contact_notes
	`, n.ID, n.Title, n.Color, string(tags), n.Description, n.Archived, string(n.Status), string(profiles),
		string(linked), n.Address, string(attachments), string(n.Complexity), n.KeepInScratch, n.SortOrder,
		n.CreatedAt, n.Contact, n.ContactName, n.ContactLastName, n.ContactRole, n.ContactPhone,
		n.ContactEmail, n.ContactNotes)
	if err != nil {
		return fmt.Errorf("persist: insert note: %w", err)
	}
	return nil
}

// UpdateNote applies a partial patch as a single UPDATE keyed by id.
func (db *DB) UpdateNote(ctx context.Context, id string, p models.NotePatch) error {
	var s setClause
	s.str("title", p.Title)
	s.str("color", p.Color)
	s.strs("tags", p.Tags)
	s.str("description", p.Description)
	if p.Archived != nil {
		s.add("archived", *p.Archived)
	}
	if p.Status != nil {
		s.add("status", string(*p.Status))
	}
	if p.CollabProfiles != nil {
		raw, _ := json.Marshal(nonNilProfiles(*p.CollabProfiles))
		s.add("collab_profiles", string(raw))
	}
	s.strs("linked_collab_ids", p.LinkedCollabIDs)
	s.str("address", p.Address)
	s.strs("attachments", p.Attachments)
	if p.Complexity != nil {
		s.add("complexity", string(*p.Complexity))
	}
	if p.KeepInScratch != nil {
		s.add("keep_in_scratch", *p.KeepInScratch)
	}
	if p.SortOrder != nil {
		s.add("sort_order", *p.SortOrder)
	}
	s.str("contact", p.Contact)
	s.str("contact_name", p.ContactName)
	s.str("contact_last_name", p.ContactLastName)
	s.str("contact_role", p.ContactRole)
	s.str("contact_phone", p.ContactPhone)
	s.str("contact_email", p.ContactEmail)
	s.str("contact_notes", p.ContactNotes)
	return db.update(ctx, "notes", id, s)
}

// DeleteNote removes a note row.
func (db *DB) DeleteNote(ctx context.Context, id string) error {
	if _, err := db.conn.ExecContext(ctx, `DELETE FROM notes WHERE id = ?`, id); err != nil {
		return fmt.Errorf("persist: delete note: %w", err)
	}
	return nil
}

// SelectNotes returns every note row in list order.
func (db *DB) SelectNotes(ctx context.Context) ([]models.Note, error) {
	rows, err := db.conn.QueryContext(ctx, `SELECT `+noteColumns+` FROM notes ORDER BY sort_order, created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("persist: select notes: %w", err)
	}
	defer rows.Close()

	var out []models.Note
	for rows.Next() {
		var (
			n                                    models.Note
			tags, profiles, linked, attachments string
			status, complexity                   string
		)
		if err := rows.Scan(&n.ID, &n.Title, &n.Color, &tags, &n.Description, &n.Archived, &status,
			&profiles, &linked, &n.Address, &attachments, &complexity, &n.KeepInScratch, &n.SortOrder,
			&n.CreatedAt, &n.Contact, &n.ContactName, &n.ContactLastName, &n.ContactRole,
			&n.ContactPhone, &n.ContactEmail, &n.ContactNotes); err != nil {
			return nil, fmt.Errorf("persist: scan note: %w", err)
		}
		n.Status = models.NoteStatus(status)
		n.Complexity = models.Complexity(complexity)
		n.Tags = decodeStrings(tags)
		n.LinkedCollabIDs = decodeStrings(linked)
		n.Attachments = decodeStrings(attachments)
		n.CollabProfiles = []models.CollabProfile{}
		_ = json.Unmarshal([]byte(profiles), &n.CollabProfiles)
		out = append(out, n)
	}
	return out, rows.Err()
}

func (db *DB) update(ctx context.Context, table, id string, s setClause) error {
	if len(s.cols) == 0 {
		return nil
	}
	query := "UPDATE " + table + " SET " + strings.Join(s.cols, ", ") + " WHERE id = ?"
	res, err := db.conn.ExecContext(ctx, query, append(s.args, id)...)
	if err != nil {
		return fmt.Errorf("persist: update %s: %w", table, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("persist: update %s %s: %w", table, id, apperr.ErrNotFound)
	}
	return nil
}

// setClause accumulates "col = ?" fragments for a partial UPDATE.
type setClause struct {
	cols []string
	args []any
}

func (s *setClause) add(col string, v any) {
	s.cols = append(s.cols, col+" = ?")
	s.args = append(s.args, v)
}

func (s *setClause) str(col string, v *string) {
	if v != nil {
		s.add(col, *v)
	}
}

func (s *setClause) strs(col string, v *[]string) {
	if v != nil {
		raw, _ := json.Marshal(nonNil(*v))
		s.add(col, string(raw))
	}
}

func decodeStrings(raw string) []string {
	out := []string{}
	if raw == "" {
		return out
	}
	_ = json.Unmarshal([]byte(raw), &out)
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func nonNilProfiles(p []models.CollabProfile) []models.CollabProfile {
	if p == nil {
		return []models.CollabProfile{}
	}
	return p
}
