package internal

import (
	"strings"
	"testing"
)

func TestAuthConfig_DisabledMode(t *testing.T) {
	cfg := AuthConfig{Mode: "disabled", Token: ""}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("disabled mode should pass: %v", err)
	}
	if cfg.AuthEnabled() {
		t.Error("disabled mode should not be enabled")
	}
}

func TestAuthConfig_EmptyModeDefaultsDisabled(t *testing.T) {
	cfg := AuthConfig{Mode: "", Token: ""}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("empty mode should default to disabled: %v", err)
	}
	if cfg.Mode != AuthModeDisabled {
		t.Errorf("mode = %q, want %q", cfg.Mode, AuthModeDisabled)
	}
}

func TestAuthConfig_TokenModeValid(t *testing.T) {
	cfg := AuthConfig{Mode: "token", Token: "mysecret"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("token mode with token should pass: %v", err)
	}
	if !cfg.AuthEnabled() {
		t.Error("token mode should be enabled")
	}
}

func TestAuthConfig_TokenModeEmptyToken(t *testing.T) {
	cfg := AuthConfig{Mode: "token", Token: ""}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("token mode with empty token should fail")
	}
	if !strings.Contains(err.Error(), "token is empty") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestAuthConfig_InvalidMode(t *testing.T) {
	cfg := AuthConfig{Mode: "magic", Token: "x"}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("invalid mode should fail validation")
	}
}

func TestFullConfig_AuthValidationCalled(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Auth.Mode = "token"
	cfg.Auth.Token = ""
	err := cfg.Validate()
	if err == nil {
		t.Fatal("full config validate should catch auth error")
	}
}

func TestDefaultConfig_Valid(t *testing.T) {
	if err := NewDefaultConfig().Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

func TestScheduleConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ScheduleConfig)
	}{
		{"end before start", func(c *ScheduleConfig) { c.DayStartHour, c.DayEndHour = 12, 9 }},
		{"end past midnight", func(c *ScheduleConfig) { c.DayEndHour = 25 }},
		{"zero slot", func(c *ScheduleConfig) { c.SlotMinutes = 0 }},
		{"bad default start", func(c *ScheduleConfig) { c.DefaultStartTime = "10am" }},
		{"out of range start", func(c *ScheduleConfig) { c.DefaultStartTime = "24:30" }},
		{"zero duration", func(c *ScheduleConfig) { c.DefaultDurationMinutes = 0 }},
		{"long duration", func(c *ScheduleConfig) { c.DefaultDurationMinutes = 1441 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefaultConfig().Schedule
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestScheduleConfig_Defaults(t *testing.T) {
	cfg := NewDefaultConfig().Schedule
	cfg.EnforceOverlap = true
	d := cfg.Defaults()
	if d.StartTime != "10:00" || d.DurationMinutes != 60 || !d.EnforceOverlap {
		t.Errorf("defaults = %+v", d)
	}
	g := cfg.Grid()
	if g.StartHour != 6 || g.EndHour != 24 || g.SlotMinutes != 30 {
		t.Errorf("grid = %+v", g)
	}
}

func TestSyncConfig_FlushTimeoutRequired(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Sync.FlushTimeout = 0
	err := cfg.Validate()
	if err == nil || !strings.HasPrefix(err.Error(), "sync:") {
		t.Fatalf("err = %v", err)
	}
}

func TestTemplates_ValidateAndConvert(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Templates = []TemplateConfig{
		{Title: "Just Chatting", Color: "#8b5cf6", Tags: []string{"chat"}, Complexity: "low"},
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("valid template: %v", err)
	}
	notes := cfg.TemplateNotes()
	if len(notes) != 1 || notes[0].Title != "Just Chatting" || notes[0].Status != "idea" || notes[0].Tags[0] != "chat" {
		t.Errorf("notes = %+v", notes)
	}

	cfg.Templates = append(cfg.Templates, TemplateConfig{Color: "purple"})
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "templates[1]") {
		t.Fatalf("err = %v", err)
	}
}
