package summary

import (
	"errors"
	"strings"
	"testing"

	"github.com/gmondol/Clav-Cal/internal/apperr"
	"github.com/gmondol/Clav-Cal/internal/models"
)

var sample = []models.Event{
	{ID: "1", Date: "2024-06-05", StartTime: "14:00", EndTime: "15:00", Title: "Collab stream", Tags: []string{"collab"}},
	{ID: "2", Date: "2024-06-05", StartTime: "09:00", EndTime: "10:00", Title: "Morning vlog", Tags: []string{"vlog", "collab"},
		Address: "Studio B", ContactInfo: models.ContactInfo{ContactName: "Kit", ContactLastName: "Ray"}},
	{ID: "3", Date: "2024-06-09", StartTime: "20:00", EndTime: "24:00", Title: "Sunday marathon"},
	{ID: "4", Date: "2024-06-10", StartTime: "10:00", EndTime: "11:00", Title: "Next week"},
	{ID: "5", Date: "2024-07-01", StartTime: "10:00", EndTime: "11:00", Title: "July"},
}

func TestDaily(t *testing.T) {
	got, err := Daily(sample, "2024-06-05")
	if err != nil {
		t.Fatal(err)
	}
	want := "Wednesday, June 5, 2024\n\n" +
		"9:00 AM - 10:00 AM: Morning vlog\n  Address: Studio B\n  Contact: Kit Ray\n  Tags: vlog, collab\n" +
		"2:00 PM - 3:00 PM: Collab stream\n  Tags: collab"
	if got != want {
		t.Errorf("Daily =\n%s\nwant\n%s", got, want)
	}

	empty, _ := Daily(sample, "2024-06-06")
	if empty != "No events scheduled this day." {
		t.Errorf("empty day = %q", empty)
	}
}

func TestWeeklyStartsMonday(t *testing.T) {
	got, err := Weekly(sample, "2024-06-09")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(got, "Weekly Plan Summary\n\nWednesday, Jun 5\n  9:00 AM") {
		t.Errorf("unexpected start:\n%s", got)
	}
	if !strings.Contains(got, "Sunday, Jun 9\n  8:00 PM - 12:00 AM: Sunday marathon") {
		t.Errorf("missing Sunday:\n%s", got)
	}
	if strings.Contains(got, "Next week") {
		t.Errorf("next Monday included:\n%s", got)
	}
	if !strings.HasSuffix(got, "Summary\n  vlog: 1\n  collab: 2") {
		t.Errorf("tag counts:\n%s", got)
	}
}

func TestMonthly(t *testing.T) {
	got, err := Monthly(sample, "2024-06-20")
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(got, "July") || !strings.Contains(got, "Next week") {
		t.Errorf("wrong month span:\n%s", got)
	}
	empty, _ := Monthly(sample, "2024-08-01")
	if empty != "No events scheduled this month." {
		t.Errorf("empty month = %q", empty)
	}
}

func TestForRejectsBadInput(t *testing.T) {
	if _, err := For("year", sample, "2024-06-01"); !errors.Is(err, apperr.ErrInvalidInput) {
		t.Errorf("period: %v", err)
	}
	if _, err := For(PeriodWeek, sample, "06/01/2024"); !errors.Is(err, apperr.ErrInvalidInput) {
		t.Errorf("date: %v", err)
	}
}

func TestMalformedEventDatesSkipped(t *testing.T) {
	events := append([]models.Event{
		{ID: "bad", Date: "2024-06-05x", StartTime: "08:00", EndTime: "09:00", Title: "Garbled", Tags: []string{"vlog"}},
	}, sample...)

	for _, period := range []Period{PeriodWeek, PeriodMonth} {
		got, err := For(period, events, "2024-06-05")
		if err != nil {
			t.Fatal(err)
		}
		if strings.Contains(got, "Garbled") || strings.Contains(got, "Monday, Jan 1") {
			t.Errorf("%s rendered malformed event:\n%s", period, got)
		}
		if !strings.Contains(got, "vlog: 1") {
			t.Errorf("%s tag counts include malformed event:\n%s", period, got)
		}
	}

	only := []models.Event{events[0]}
	if got, _ := Weekly(only, "2024-06-05"); got != "No events scheduled this week." {
		t.Errorf("week of malformed events = %q", got)
	}
}
