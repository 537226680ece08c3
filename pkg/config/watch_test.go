package config

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

// eventually polls fn every tick until it returns true or timeout elapses.
func eventually(t *testing.T, timeout, tick time.Duration, fn func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if fn() {
			return
		}
		time.Sleep(tick)
	}
	t.Error(msg)
}

func TestWatch_DebouncedReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("app:\n  log_level: INFO\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls atomic.Int32
	done := make(chan error, 1)
	go func() { done <- Watch(ctx, path, logger, func() { calls.Add(1) }) }()
	time.Sleep(100 * time.Millisecond)

	for _, lvl := range []string{"DEBUG", "WARN", "ERROR"} {
		if err := os.WriteFile(path, []byte("app:\n  log_level: "+lvl+"\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	eventually(t, 2*time.Second, 20*time.Millisecond, func() bool { return calls.Load() >= 1 }, "reload not triggered")

	time.Sleep(2 * watchDebounce)
	if n := calls.Load(); n != 1 {
		t.Errorf("calls = %d, want 1 for one burst", n)
	}

	if err := os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x: 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	time.Sleep(2 * watchDebounce)
	if n := calls.Load(); n != 1 {
		t.Errorf("calls = %d after unrelated write", n)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("watch returned %v", err)
		}
	case <-time.After(time.Second):
		t.Error("watch did not stop")
	}
}

func TestWatch_MissingDir(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	err := Watch(context.Background(), filepath.Join(t.TempDir(), "nope", "config.yaml"), logger, func() {})
	if err == nil {
		t.Fatal("expected error for missing directory")
	}
}
