package persist

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDispatcher_RunsInSubmissionOrder(t *testing.T) {
	d := NewDispatcher(discardLogger(), 0)
	defer d.Close(context.Background())

	var (
		mu  sync.Mutex
		got []int
	)
	for i := range 20 {
		d.Submit("append", func(context.Context) error {
			mu.Lock()
			got = append(got, i)
			mu.Unlock()
			return nil
		})
	}
	d.Flush()

	require.Len(t, got, 20)
	for i, v := range got {
		assert.Equal(t, i, v)
	}
}

func TestDispatcher_FailureDoesNotStopQueue(t *testing.T) {
	d := NewDispatcher(discardLogger(), 0)
	defer d.Close(context.Background())

	ran := false
	d.Submit("fail", func(context.Context) error { return errors.New("boom") })
	d.Submit("after", func(context.Context) error { ran = true; return nil })
	d.Flush()

	assert.True(t, ran)
}

func TestDispatcher_JobTimeout(t *testing.T) {
	d := NewDispatcher(discardLogger(), 10*time.Millisecond)
	defer d.Close(context.Background())

	var err error
	d.Submit("slow", func(ctx context.Context) error {
		<-ctx.Done()
		err = ctx.Err()
		return err
	})
	d.Flush()

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestDispatcher_CloseDrainsAndRejects(t *testing.T) {
	d := NewDispatcher(discardLogger(), 0)

	count := 0
	for range 5 {
		d.Submit("count", func(context.Context) error { count++; return nil })
	}
	require.NoError(t, d.Close(context.Background()))
	assert.Equal(t, 5, count)

	d.Submit("late", func(context.Context) error { count++; return nil })
	d.Flush()
	assert.Equal(t, 5, count)
	require.NoError(t, d.Close(context.Background()))
}
