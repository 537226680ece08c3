// Package timeslot converts between "HH:MM" wall-clock strings and minutes
// since midnight, and generates fixed-interval slot grids.
package timeslot

import (
	"fmt"
	"iter"
	"slices"
	"strconv"
	"strings"
)

// MinutesPerDay is the length of the clock in minutes.
const MinutesPerDay = 24 * 60

// EndOfDay is the "24:00" marker used as an exclusive end-of-day bound.
const EndOfDay = "24:00"

// ParseClock parses "HH:MM" strictly. Hours may be 0–24 ("24:00" only),
// minutes 0–59.
func ParseClock(t string) (int, error) {
	hh, mm, ok := strings.Cut(t, ":")
	if !ok || len(hh) != 2 || len(mm) != 2 {
		return 0, fmt.Errorf("timeslot: malformed time %q", t)
	}
	h, err := strconv.Atoi(hh)
	if err != nil {
		return 0, fmt.Errorf("timeslot: malformed hour in %q", t)
	}
	m, err := strconv.Atoi(mm)
	if err != nil {
		return 0, fmt.Errorf("timeslot: malformed minute in %q", t)
	}
	if h < 0 || m < 0 || m > 59 || h > 24 || (h == 24 && m != 0) {
		return 0, fmt.Errorf("timeslot: time out of range %q", t)
	}
	return h*60 + m, nil
}

// TimeToMinutes returns the minutes since midnight for "HH:MM". The result
// for malformed input is unspecified; callers validate with ParseClock.
// "24:00" yields MinutesPerDay.
func TimeToMinutes(t string) int {
	hh, mm, _ := strings.Cut(t, ":")
	h, _ := strconv.Atoi(hh)
	m, _ := strconv.Atoi(mm)
	return h*60 + m
}

// MinutesToTime formats minutes as "HH:MM", wrapping modulo one day.
func MinutesToTime(m int) string {
	m = ((m % MinutesPerDay) + MinutesPerDay) % MinutesPerDay
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// Slots yields "HH:MM" values from startHour:00 up to, but excluding,
// endHour:00 in steps of intervalMinutes. The sequence can be ranged over
// any number of times. A non-positive interval yields nothing.
func Slots(startHour, endHour, intervalMinutes int) iter.Seq[string] {
	return func(yield func(string) bool) {
		if intervalMinutes <= 0 {
			return
		}
		for m := startHour * 60; m < endHour*60; m += intervalMinutes {
			if !yield(MinutesToTime(m)) {
				return
			}
		}
	}
}

// GenerateTimeSlots collects Slots into a slice.
func GenerateTimeSlots(startHour, endHour, intervalMinutes int) []string {
	out := slices.Collect(Slots(startHour, endHour, intervalMinutes))
	if out == nil {
		return []string{}
	}
	return out
}

// FormatTimeDisplay renders "HH:MM" as 12-hour "h:mm AM/PM". "24:00" is the
// end-of-day marker and renders as "12:00 AM". Unparseable input is returned
// unchanged.
func FormatTimeDisplay(t string) string {
	if t == "" {
		return ""
	}
	if t == EndOfDay {
		return "12:00 AM"
	}
	mins, err := ParseClock(t)
	if err != nil {
		return t
	}
	h, m := mins/60, mins%60
	suffix := "AM"
	if h >= 12 {
		suffix = "PM"
	}
	h %= 12
	if h == 0 {
		h = 12
	}
	return fmt.Sprintf("%d:%02d %s", h, m, suffix)
}

// AddMinutes returns t shifted by d minutes, clamped to [00:00, 24:00].
// Used to derive an end time from a start time and a duration.
func AddMinutes(t string, d int) string {
	end := TimeToMinutes(t) + d
	switch {
	case end >= MinutesPerDay:
		return EndOfDay
	case end < 0:
		return "00:00"
	}
	return MinutesToTime(end)
}
