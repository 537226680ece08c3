// Package summary renders plain-text plans of the calendar for a day, week
// or month.
package summary

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/gmondol/Clav-Cal/internal/apperr"
	"github.com/gmondol/Clav-Cal/internal/models"
	"github.com/gmondol/Clav-Cal/internal/timeslot"
)

const dateLayout = "2006-01-02"

// Period selects the span a summary covers.
type Period string

const (
	PeriodDay   Period = "day"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
)

// For renders the summary of period around date.
func For(period Period, events []models.Event, date string) (string, error) {
	switch period {
	case PeriodDay, "":
		return Daily(events, date)
	case PeriodWeek:
		return Weekly(events, date)
	case PeriodMonth:
		return Monthly(events, date)
	}
	return "", fmt.Errorf("summary period %q: %w", period, apperr.ErrInvalidInput)
}

// Daily lists the events on date in start order.
func Daily(events []models.Event, date string) (string, error) {
	d, err := parseDate(date)
	if err != nil {
		return "", err
	}
	day := inRange(events, date, date)
	if len(day) == 0 {
		return "No events scheduled this day.", nil
	}

	var b strings.Builder
	b.WriteString(d.Format("Monday, January 2, 2006"))
	b.WriteString("\n\n")
	for i, e := range day {
		if i > 0 {
			b.WriteByte('\n')
		}
		writeEvent(&b, e, "")
		if len(e.Tags) > 0 {
			fmt.Fprintf(&b, "\n  Tags: %s", strings.Join(e.Tags, ", "))
		}
	}
	return b.String(), nil
}

// Weekly summarizes the Monday-to-Sunday week containing date.
func Weekly(events []models.Event, date string) (string, error) {
	d, err := parseDate(date)
	if err != nil {
		return "", err
	}
	offset := (int(d.Weekday()) + 6) % 7
	start := d.AddDate(0, 0, -offset)
	end := start.AddDate(0, 0, 6)
	return render("Weekly Plan Summary", "No events scheduled this week.",
		inRange(events, start.Format(dateLayout), end.Format(dateLayout))), nil
}

// Monthly summarizes the calendar month containing date.
func Monthly(events []models.Event, date string) (string, error) {
	d, err := parseDate(date)
	if err != nil {
		return "", err
	}
	start := time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)
	return render("Monthly Plan Summary", "No events scheduled this month.",
		inRange(events, start.Format(dateLayout), end.Format(dateLayout))), nil
}

func render(title, empty string, events []models.Event) string {
	if len(events) == 0 {
		return empty
	}

	var b strings.Builder
	b.WriteString(title)
	b.WriteString("\n\n")

	current := ""
	for _, e := range events {
		if e.Date != current {
			if current != "" {
				b.WriteString("\n")
			}
			current = e.Date
			if d, err := time.Parse(dateLayout, e.Date); err == nil {
				b.WriteString(d.Format("Monday, Jan 2"))
			} else {
				b.WriteString(e.Date)
			}
			b.WriteByte('\n')
		}
		writeEvent(&b, e, "  ")
		b.WriteByte('\n')
	}

	var tags []string
	counts := map[string]int{}
	for _, e := range events {
		for _, t := range e.Tags {
			if counts[t] == 0 {
				tags = append(tags, t)
			}
			counts[t]++
		}
	}
	if len(tags) > 0 {
		b.WriteString("\nSummary\n")
		for _, t := range tags {
			fmt.Fprintf(&b, "  %s: %d\n", t, counts[t])
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func writeEvent(b *strings.Builder, e models.Event, indent string) {
	fmt.Fprintf(b, "%s%s - %s: %s", indent,
		timeslot.FormatTimeDisplay(e.StartTime), timeslot.FormatTimeDisplay(e.EndTime), e.Title)
	if e.Address != "" {
		fmt.Fprintf(b, "\n%s  Address: %s", indent, e.Address)
	}
	if name := contactLine(e.ContactInfo); name != "" {
		fmt.Fprintf(b, "\n%s  Contact: %s", indent, name)
	}
}

func contactLine(c models.ContactInfo) string {
	if c.Contact != "" {
		return c.Contact
	}
	return strings.TrimSpace(c.ContactName + " " + c.ContactLastName)
}

// inRange returns the events dated within [from, to], ordered by date then
// start time. Dates compare lexically; events with malformed dates are
// skipped.
func inRange(events []models.Event, from, to string) []models.Event {
	var out []models.Event
	for _, e := range events {
		if e.Date < from || e.Date > to {
			continue
		}
		if _, err := time.Parse(dateLayout, e.Date); err != nil {
			continue
		}
		out = append(out, e)
	}
	slices.SortStableFunc(out, func(a, b models.Event) int {
		if c := cmp.Compare(a.Date, b.Date); c != 0 {
			return c
		}
		return cmp.Compare(timeslot.TimeToMinutes(a.StartTime), timeslot.TimeToMinutes(b.StartTime))
	})
	return out
}

func parseDate(date string) (time.Time, error) {
	d, err := time.Parse(dateLayout, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q: %w", date, apperr.ErrInvalidInput)
	}
	return d, nil
}
