package conflict

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/gmondol/Clav-Cal/internal/models"
	"github.com/gmondol/Clav-Cal/internal/timeslot"
)

func ev(id, date, start, end string) models.Event {
	return models.Event{ID: id, Date: date, StartTime: start, EndTime: end}
}

func TestHasConflict(t *testing.T) {
	tests := []struct {
		name string
		a, b models.Event
		want bool
	}{
		{"overlap", ev("a", "2024-05-01", "09:00", "10:00"), ev("b", "2024-05-01", "09:30", "10:30"), true},
		{"contained", ev("a", "2024-05-01", "09:00", "12:00"), ev("b", "2024-05-01", "10:00", "11:00"), true},
		{"touching", ev("a", "2024-05-01", "09:00", "10:00"), ev("b", "2024-05-01", "10:00", "11:00"), false},
		{"disjoint", ev("a", "2024-05-01", "09:00", "10:00"), ev("b", "2024-05-01", "14:00", "15:00"), false},
		{"different day", ev("a", "2024-05-01", "09:00", "10:00"), ev("b", "2024-05-02", "09:00", "10:00"), false},
		{"same id", ev("a", "2024-05-01", "09:00", "10:00"), ev("a", "2024-05-01", "09:00", "10:00"), false},
		{"end of day", ev("a", "2024-05-01", "23:00", "24:00"), ev("b", "2024-05-01", "23:30", "24:00"), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasConflict(tt.a, tt.b); got != tt.want {
				t.Errorf("HasConflict(a, b) = %v, want %v", got, tt.want)
			}
			if got := HasConflict(tt.b, tt.a); got != tt.want {
				t.Errorf("HasConflict(b, a) = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConflictingEvents_Scenario(t *testing.T) {
	events := []models.Event{
		ev("a", "2024-05-01", "09:00", "10:00"),
		ev("b", "2024-05-01", "09:30", "10:30"),
	}
	got := ConflictingEvents(events)
	if len(got) != 2 {
		t.Fatalf("conflicts = %v, want a and b", got)
	}

	c := ev("c", "2024-05-01", "10:30", "11:00")
	got = ConflictingEvents(append(events, c))
	if _, ok := got["c"]; ok {
		t.Errorf("c touches b's end and should not conflict: %v", got)
	}
}

func TestConflictingEvents_TouchingThird(t *testing.T) {
	a := ev("a", "2024-05-01", "09:00", "10:00")
	c := ev("c", "2024-05-01", "10:00", "11:00")
	if HasConflict(a, c) {
		t.Error("a and c touch at 10:00 and must not conflict")
	}
}

func TestConflictingEvents_MatchesBruteForce(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for round := 0; round < 50; round++ {
		var events []models.Event
		for i := 0; i < 12; i++ {
			start := r.Intn(timeslot.MinutesPerDay - 60)
			end := start + 15 + r.Intn(120)
			if end > timeslot.MinutesPerDay {
				end = timeslot.MinutesPerDay
			}
			endStr := timeslot.MinutesToTime(end)
			if end == timeslot.MinutesPerDay {
				endStr = timeslot.EndOfDay
			}
			events = append(events, ev(fmt.Sprintf("e%d", i), "2024-05-01", timeslot.MinutesToTime(start), endStr))
		}

		want := make(map[string]struct{})
		for _, a := range events {
			for _, b := range events {
				as, ae := timeslot.TimeToMinutes(a.StartTime), timeslot.TimeToMinutes(a.EndTime)
				bs, be := timeslot.TimeToMinutes(b.StartTime), timeslot.TimeToMinutes(b.EndTime)
				if a.ID != b.ID && as < be && bs < ae {
					want[a.ID] = struct{}{}
				}
			}
		}

		got := ConflictingEvents(events)
		if len(got) != len(want) {
			t.Fatalf("round %d: got %v, want %v", round, SortedIDs(got), SortedIDs(want))
		}
		for id := range want {
			if _, ok := got[id]; !ok {
				t.Fatalf("round %d: missing %s", round, id)
			}
		}
	}
}

func TestOverlapping_SkipsSelf(t *testing.T) {
	existing := []models.Event{
		ev("a", "2024-05-01", "09:00", "10:00"),
		ev("b", "2024-05-01", "11:00", "12:00"),
	}
	edited := ev("a", "2024-05-01", "09:15", "10:15")
	if ids := Overlapping(edited, existing); len(ids) != 0 {
		t.Errorf("editing a should not collide with itself: %v", ids)
	}
	moved := ev("a", "2024-05-01", "11:30", "12:30")
	ids := Overlapping(moved, existing)
	if len(ids) != 1 || ids[0] != "b" {
		t.Errorf("overlapping = %v, want [b]", ids)
	}
}
