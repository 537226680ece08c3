// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/gmondol/Clav-Cal/internal/api"
	"github.com/gmondol/Clav-Cal/internal/eventstore"
	"github.com/gmondol/Clav-Cal/internal/mcpserver"
	"github.com/gmondol/Clav-Cal/internal/models"
	"github.com/gmondol/Clav-Cal/internal/notestore"
	"github.com/gmondol/Clav-Cal/internal/persist"
	"github.com/gmondol/Clav-Cal/internal/scheduler"
	"github.com/gmondol/Clav-Cal/internal/sse"
	pkgconfig "github.com/gmondol/Clav-Cal/pkg/config"
)

// backend is the opened persistence and the stores loaded from it.
type backend struct {
	db       *persist.DB
	dispatch *persist.Dispatcher
	cal      api.Calendar
}

func newApplication(opts []Option) (*application, error) {
	app := &application{}
	for _, opt := range opts {
		opt(app)
	}
	if app.config == nil {
		return nil, fmt.Errorf("config is required")
	}
	return app, nil
}

// open connects SQLite, starts the write dispatcher and loads both stores.
// onChange may be nil.
func open(ctx context.Context, cfg *Config, logger *slog.Logger, onChange models.ChangeFunc) (*backend, error) {
	db, err := persist.Open(cfg.SQLite.Path)
	if err != nil {
		return nil, fmt.Errorf("init sqlite: %w", err)
	}

	dispatch := persist.NewDispatcher(logger, cfg.Sync.JobTimeout)

	var evOpts []eventstore.Option
	var noteOpts []notestore.Option
	if onChange != nil {
		evOpts = append(evOpts, eventstore.WithOnChange(onChange))
		noteOpts = append(noteOpts, notestore.WithOnChange(onChange))
	}
	events := eventstore.New(db, dispatch, evOpts...)
	notes := notestore.New(db, dispatch, noteOpts...)

	if err := events.Load(ctx); err != nil {
		_ = dispatch.Close(ctx)
		db.Close()
		return nil, fmt.Errorf("load events: %w", err)
	}
	if err := notes.Load(ctx); err != nil {
		_ = dispatch.Close(ctx)
		db.Close()
		return nil, fmt.Errorf("load notes: %w", err)
	}

	logger.Info("Calendar loaded",
		slog.Int("events", len(events.List())),
		slog.Int("notes", len(notes.List())))

	return &backend{
		db:       db,
		dispatch: dispatch,
		cal: api.Calendar{
			Events:    events,
			Notes:     notes,
			Scheduler: scheduler.New(events, notes, scheduler.WithDefaults(cfg.Schedule.Defaults())),
		},
	}, nil
}

// close drains queued writes within the flush timeout and closes the database.
func (rt *backend) close(timeout time.Duration, logger *slog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := rt.dispatch.Close(ctx); err != nil {
		logger.Error("pending writes dropped at shutdown", slog.String("error", err.Error()))
	}
	if err := rt.db.Close(); err != nil {
		logger.Error("sqlite close failed", slog.String("error", err.Error()))
	}
}

// Run starts the HTTP server with the given options.
func Run(ctx context.Context, opts ...Option) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}
	cfg := app.config

	// Initialize structured JSON logger.
	level := new(slog.LevelVar)
	level.Set(cfg.App.LogLevel)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("sqlite_path", cfg.SQLite.Path),
		slog.String("log_level", cfg.App.LogLevel.String()),
		slog.Bool("enforce_overlap", cfg.Schedule.EnforceOverlap))

	// SSE broker.
	broker := sse.NewBroker(cfg.SSE.Throttle)
	defer broker.Close()

	rt, err := open(ctx, cfg, logger, broker.PublishChange)
	if err != nil {
		return err
	}
	defer rt.close(cfg.Sync.FlushTimeout, logger)

	apiRouter := api.NewRouter(rt.cal, api.Options{
		Grid:           cfg.Schedule.Grid(),
		EnforceOverlap: cfg.Schedule.EnforceOverlap,
		Templates:      cfg.TemplateNotes(),
	}, cfg.Auth.AuthEnabled(), cfg.Auth.Token, broker)

	// Build chi router.
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Health check endpoints (unauthenticated).
	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := rt.db.Ping(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"status":"unavailable"}`))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Mount API routes under /api.
	r.Mount("/api", apiRouter)

	httpServer := &http.Server{
		Addr:    cfg.App.HTTP.Address(),
		Handler: r,
	}

	g, gCtx := errgroup.WithContext(ctx)

	// Reload the log level when the config file changes.
	if app.configPath != "" {
		g.Go(func() error {
			err := pkgconfig.Watch(gCtx, app.configPath, logger, func() {
				next := NewDefaultConfig()
				if err := pkgconfig.Load(app.configPath, next); err != nil {
					logger.Warn("config reload ignored", slog.String("error", err.Error()))
					return
				}
				level.Set(next.App.LogLevel)
				logger.Info("config reloaded", slog.String("log_level", next.App.LogLevel.String()))
			})
			if err != nil {
				logger.Warn("config watcher unavailable", slog.String("error", err.Error()))
			}
			return nil
		})
	}

	// Start HTTP server.
	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	// Handle shutdown signals.
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}

		return errShutdown
	})

	if err := g.Wait(); err != nil && !errors.Is(err, errShutdown) {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}

// errShutdown cancels the group so the config watcher stops with the server.
var errShutdown = errors.New("shutdown")

// RunMCP serves the MCP tools on stdin/stdout against the same database.
// Logs go to stderr since stdout carries the protocol.
func RunMCP(ctx context.Context, opts ...Option) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}
	cfg := app.config

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	rt, err := open(ctx, cfg, logger, nil)
	if err != nil {
		return err
	}
	defer rt.close(cfg.Sync.FlushTimeout, logger)

	srv := mcpserver.New(rt.cal.Events, rt.cal.Notes, rt.cal.Scheduler)
	if err := srv.ServeStdio(); err != nil {
		return fmt.Errorf("mcp serve: %w", err)
	}
	return nil
}
