package rules

import (
	"errors"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/gmondol/Clav-Cal/internal/apperr"
)

func TestDateAndClock(t *testing.T) {
	tests := []struct {
		name  string
		value string
		rule  validation.Rule
		ok    bool
	}{
		{"date", "2024-06-01", Date, true},
		{"empty date", "", Date, true},
		{"words", "June 1", Date, false},
		{"clock", "09:30", Clock, true},
		{"end of day", "24:00", Clock, true},
		{"am suffix", "9am", Clock, false},
		{"past midnight", "24:30", Clock, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validation.Validate(tt.value, tt.rule)
			if (err == nil) != tt.ok {
				t.Errorf("Validate(%q) = %v", tt.value, err)
			}
		})
	}
}

func TestRange(t *testing.T) {
	tests := []struct {
		name             string
		date, start, end string
		ok               bool
	}{
		{"valid", "2024-06-01", "10:00", "11:00", true},
		{"ends at midnight", "2024-06-01", "23:00", "24:00", true},
		{"inverted", "2024-06-01", "10:00", "09:00", false},
		{"zero length at midnight", "2024-06-01", "24:00", "24:00", false},
		{"bad date", "June 1", "10:00", "11:00", false},
		{"bad start", "2024-06-01", "9am", "11:00", false},
		{"missing end", "2024-06-01", "10:00", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Range(tt.date, tt.start, tt.end)
			if tt.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tt.ok && !errors.Is(err, apperr.ErrInvalidInput) {
				t.Fatalf("err = %v, want ErrInvalidInput", err)
			}
		})
	}
}
