// Package export renders the calendar in interchange formats.
package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/gmondol/Clav-Cal/internal/models"
	"github.com/gmondol/Clav-Cal/internal/timeslot"
)

const (
	productID = "-//Clav-Cal//Content Calendar//EN"
	// Floating local time: no TZID and no trailing Z.
	floatingLayout = "20060102T150405"
)

// ICS builds an iCalendar document with one VEVENT per event. Times are
// floating, matching the timezone-free model. stamp is written as DTSTAMP.
func ICS(events []models.Event, calName string, stamp time.Time) (*ical.Calendar, error) {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)
	if calName != "" {
		cal.SetXWRCalName(calName)
	}

	for _, e := range events {
		start, end, err := bounds(e)
		if err != nil {
			return nil, fmt.Errorf("export event %s: %w", e.ID, err)
		}

		ve := cal.AddEvent(e.ID + "@clav-cal")
		ve.SetDtStampTime(stamp)
		ve.SetProperty(ical.ComponentPropertyDtStart, start.Format(floatingLayout))
		ve.SetProperty(ical.ComponentPropertyDtEnd, end.Format(floatingLayout))
		ve.SetSummary(e.Title)
		if e.Description != "" {
			ve.SetDescription(e.Description)
		}
		if e.Address != "" {
			ve.SetLocation(e.Address)
		}
		if e.Confirmed {
			ve.SetStatus(ical.ObjectStatusConfirmed)
		} else {
			ve.SetStatus(ical.ObjectStatusTentative)
		}
		if len(e.Tags) > 0 {
			ve.SetProperty(ical.ComponentPropertyCategories, strings.Join(e.Tags, ","))
		}
		if e.Color != "" {
			ve.SetProperty(ical.ComponentProperty("X-CLAVCAL-COLOR"), e.Color)
		}
	}
	return cal, nil
}

// WriteICS serializes ICS(events, ...) to w.
func WriteICS(w io.Writer, events []models.Event, calName string, stamp time.Time) error {
	cal, err := ICS(events, calName, stamp)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, cal.Serialize())
	return err
}

// bounds resolves the event's wall-clock range on its date. An end of 24:00
// or an end before the start rolls to the next day.
func bounds(e models.Event) (time.Time, time.Time, error) {
	day, err := time.Parse("2006-01-02", e.Date)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("date %q: %w", e.Date, err)
	}
	startMin, err := timeslot.ParseClock(e.StartTime)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	endMin, err := timeslot.ParseClock(e.EndTime)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if endMin < startMin {
		endMin += timeslot.MinutesPerDay
	}
	start := day.Add(time.Duration(startMin) * time.Minute)
	end := day.Add(time.Duration(endMin) * time.Minute)
	return start, end, nil
}
