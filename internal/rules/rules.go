// Package rules holds the ozzo-validation rules for calendar dates and
// wall-clock times shared by the HTTP, MCP and scheduling layers.
package rules

import (
	"errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/gmondol/Clav-Cal/internal/apperr"
	"github.com/gmondol/Clav-Cal/internal/timeslot"
)

// DateLayout is the wire format of calendar days.
const DateLayout = "2006-01-02"

// Date accepts empty values and yyyy-mm-dd days.
var Date = validation.Date(DateLayout).Error("must be a date in yyyy-mm-dd format")

// Clock accepts empty values and strict "HH:MM" strings up to "24:00".
var Clock = validation.By(func(value any) error {
	v, isNil := validation.Indirect(value)
	if isNil || validation.IsEmpty(v) {
		return nil
	}
	s, ok := v.(string)
	if !ok {
		return errors.New("must be a string")
	}
	if _, err := timeslot.ParseClock(s); err != nil {
		return errors.New("must be a time in HH:MM format")
	}
	return nil
})

// Range checks a resolved event slot: a valid day, a start before 24:00 and
// an end after the start. Failures wrap apperr.ErrInvalidInput.
func Range(date, start, end string) error {
	err := validation.Errors{
		"date":      validation.Validate(date, validation.Required, Date),
		"startTime": validation.Validate(start, validation.Required, Clock),
		"endTime":   validation.Validate(end, validation.Required, Clock),
	}.Filter()
	if err == nil {
		err = EndAfterStart(start, end)
	}
	if err != nil {
		return fmt.Errorf("%w: %w", apperr.ErrInvalidInput, err)
	}
	return nil
}

// EndAfterStart reports a range that ends at or before its start. Empty or
// malformed times are left to Clock.
func EndAfterStart(start, end string) error {
	if start == "" || end == "" {
		return nil
	}
	s, err1 := timeslot.ParseClock(start)
	e, err2 := timeslot.ParseClock(end)
	if err1 != nil || err2 != nil {
		return nil
	}
	if e <= s {
		return validation.Errors{"endTime": errors.New("must be after startTime")}
	}
	return nil
}
