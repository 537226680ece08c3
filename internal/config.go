package internal

import (
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/gmondol/Clav-Cal/internal/api"
	"github.com/gmondol/Clav-Cal/internal/models"
	"github.com/gmondol/Clav-Cal/internal/scheduler"
	"github.com/gmondol/Clav-Cal/internal/timeslot"
)

// Auth modes.
const (
	AuthModeDisabled = "disabled"
	AuthModeToken    = "token"
)

// Config represents the application configuration.
type Config struct {
	App      ApplicationConfig `yaml:"app"`
	SQLite   SQLiteConfig      `yaml:"sqlite"`
	Auth     AuthConfig        `yaml:"auth"`
	Schedule ScheduleConfig    `yaml:"schedule"`
	Sync     SyncConfig        `yaml:"sync"`
	SSE      SSEConfig         `yaml:"sse"`

	// Templates are the starter notes offered by POST /api/notes/templates.
	Templates []TemplateConfig `yaml:"templates"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.SQLite.Validate(); err != nil {
		return err
	}
	if err := c.Auth.Validate(); err != nil {
		return err
	}
	if err := c.Schedule.Validate(); err != nil {
		return fmt.Errorf("schedule: %w", err)
	}
	if err := c.Sync.Validate(); err != nil {
		return fmt.Errorf("sync: %w", err)
	}
	if err := c.SSE.Validate(); err != nil {
		return err
	}
	for i := range c.Templates {
		if err := c.Templates[i].Validate(); err != nil {
			return fmt.Errorf("templates[%d]: %w", i, err)
		}
	}
	return nil
}

// TemplateNotes converts the configured templates into note drafts.
func (c *Config) TemplateNotes() []models.Note {
	out := make([]models.Note, 0, len(c.Templates))
	for _, t := range c.Templates {
		out = append(out, models.Note{
			Title:       t.Title,
			Color:       t.Color,
			Tags:        append([]string{}, t.Tags...),
			Description: t.Description,
			Complexity:  models.Complexity(t.Complexity),
			Status:      models.StatusIdea,
		})
	}
	return out
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
	HTTP     HTTPConfig `yaml:"http"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	return c.HTTP.Validate()
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Port int `yaml:"port"`
}

// Address returns HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// SQLiteConfig holds SQLite database configuration.
type SQLiteConfig struct {
	Path string `yaml:"path"`
}

// Validate validates the SQLite configuration.
func (c *SQLiteConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// AuthConfig holds authentication configuration.
//
// Mode controls how authentication is enforced:
//   - "disabled" (default): no authentication required, suitable for local dev.
//   - "token": Bearer token authentication; Token must be non-empty.
type AuthConfig struct {
	Mode  string `yaml:"mode"`
	Token string `yaml:"token"`
}

// Validate validates the auth configuration.
func (c *AuthConfig) Validate() error {
	if c.Mode == "" {
		c.Mode = AuthModeDisabled
	}
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Mode, validation.Required, validation.In(AuthModeDisabled, AuthModeToken)),
	); err != nil {
		return err
	}
	if c.Mode == AuthModeToken && c.Token == "" {
		return fmt.Errorf("auth: mode is %q but token is empty", AuthModeToken)
	}
	return nil
}

// AuthEnabled returns true when authentication is active.
func (c *AuthConfig) AuthEnabled() bool {
	return c.Mode == AuthModeToken
}

// ScheduleConfig holds the day grid and the defaults used when a note
// becomes an event.
type ScheduleConfig struct {
	DayStartHour           int    `yaml:"day_start_hour"`
	DayEndHour             int    `yaml:"day_end_hour"`
	SlotMinutes            int    `yaml:"slot_minutes"`
	DefaultStartTime       string `yaml:"default_start_time"`
	DefaultDurationMinutes int    `yaml:"default_duration_minutes"`
	EnforceOverlap         bool   `yaml:"enforce_overlap"`
}

// Validate validates the schedule configuration.
func (c *ScheduleConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.DayStartHour, validation.Min(0), validation.Max(23)),
		validation.Field(&c.DayEndHour, validation.Required, validation.Min(c.DayStartHour+1), validation.Max(24)),
		validation.Field(&c.SlotMinutes, validation.Required, validation.Min(1), validation.Max(720)),
		validation.Field(&c.DefaultStartTime, validation.Required, validation.By(func(v any) error {
			_, err := timeslot.ParseClock(v.(string))
			return err
		})),
		validation.Field(&c.DefaultDurationMinutes, validation.Required, validation.Min(1), validation.Max(1440)),
	)
}

// Defaults returns the scheduling defaults for the orchestrator.
func (c *ScheduleConfig) Defaults() scheduler.Defaults {
	return scheduler.Defaults{
		StartTime:       c.DefaultStartTime,
		DurationMinutes: c.DefaultDurationMinutes,
		EnforceOverlap:  c.EnforceOverlap,
	}
}

// Grid returns the day grid served by the API.
func (c *ScheduleConfig) Grid() api.Grid {
	return api.Grid{StartHour: c.DayStartHour, EndHour: c.DayEndHour, SlotMinutes: c.SlotMinutes}
}

// SyncConfig holds settings for the background persistence worker.
type SyncConfig struct {
	// JobTimeout bounds a single write. Zero disables the deadline.
	JobTimeout time.Duration `yaml:"job_timeout"`
	// FlushTimeout bounds draining queued writes at shutdown.
	FlushTimeout time.Duration `yaml:"flush_timeout"`
}

// Validate validates the sync configuration.
func (c *SyncConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.JobTimeout, validation.Min(time.Duration(0))),
		validation.Field(&c.FlushTimeout, validation.Required, validation.Min(time.Millisecond)),
	)
}

// SSEConfig holds server-sent events configuration.
type SSEConfig struct {
	Throttle time.Duration `yaml:"throttle"`
}

// Validate validates the SSE configuration.
func (c *SSEConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Throttle, validation.Min(time.Duration(0))),
	)
}

// TemplateConfig describes one starter note.
type TemplateConfig struct {
	Title       string   `yaml:"title"`
	Color       string   `yaml:"color"`
	Tags        []string `yaml:"tags"`
	Description string   `yaml:"description"`
	Complexity  string   `yaml:"complexity"`
}

// Validate validates the template.
func (c *TemplateConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Title, validation.Required),
		validation.Field(&c.Color, is.HexColor),
		validation.Field(&c.Complexity, validation.In(
			string(models.ComplexityLow), string(models.ComplexityMedium), string(models.ComplexityHigh))),
	)
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
			HTTP: HTTPConfig{
				Port: 8080,
			},
		},
		SQLite: SQLiteConfig{
			Path: "./clavcal.db",
		},
		Auth: AuthConfig{
			Mode: AuthModeDisabled,
		},
		Schedule: ScheduleConfig{
			DayStartHour:           6,
			DayEndHour:             24,
			SlotMinutes:            30,
			DefaultStartTime:       "10:00",
			DefaultDurationMinutes: 60,
		},
		Sync: SyncConfig{
			JobTimeout:   5 * time.Second,
			FlushTimeout: 10 * time.Second,
		},
		SSE: SSEConfig{
			Throttle: 2 * time.Second,
		},
	}
}
