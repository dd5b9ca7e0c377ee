package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// noSleep 记录等待时长但不真正等待
func noSleep(waits *[]time.Duration) func(context.Context, time.Duration) error {
	return func(_ context.Context, d time.Duration) error {
		*waits = append(*waits, d)
		return nil
	}
}

func TestDoSucceedsFirstAttempt(t *testing.T) {
	var waits []time.Duration
	calls := 0

	out, err := Do(context.Background(), Policy{Sleep: noSleep(&waits)}, func(context.Context) (string, error) {
		calls++
		return "ok", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", out)
	assert.Equal(t, 1, calls)
	assert.Empty(t, waits)
}

func TestDoRetriesTransientThenSucceeds(t *testing.T) {
	var waits []time.Duration
	calls := 0
	transient := errors.New("rate limited")

	out, err := Do(context.Background(), Policy{Sleep: noSleep(&waits)}, func(context.Context) (string, error) {
		calls++
		if calls <= 2 {
			return "", transient
		}
		return "done", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "done", out)
	assert.Equal(t, 3, calls)
	assert.Equal(t, []time.Duration{4 * time.Second, 4 * time.Second}, waits)
}

func TestDoExhaustsAttempts(t *testing.T) {
	var waits []time.Duration
	calls := 0
	transient := errors.New("upstream unavailable")

	_, err := Do(context.Background(), Policy{Sleep: noSleep(&waits)}, func(context.Context) (string, error) {
		calls++
		return "", transient
	})

	require.ErrorIs(t, err, transient)
	assert.Equal(t, 3, calls)
	assert.Len(t, waits, 2)
}

func TestDoDoesNotRetryNonRetryable(t *testing.T) {
	var waits []time.Duration
	calls := 0
	fatal := errors.New("invalid api key")

	_, err := Do(context.Background(), Policy{
		RetryIf: func(err error) bool { return !errors.Is(err, fatal) },
		Sleep:   noSleep(&waits),
	}, func(context.Context) (string, error) {
		calls++
		return "", fatal
	})

	require.ErrorIs(t, err, fatal)
	assert.Equal(t, 1, calls)
	assert.Empty(t, waits)
}

func TestDoReportsRetries(t *testing.T) {
	type report struct {
		attempt int
		wait    time.Duration
	}
	var reports []report
	var waits []time.Duration

	_, _ = Do(context.Background(), Policy{
		OnRetry: func(_ context.Context, attempt int, wait time.Duration, _ error) {
			reports = append(reports, report{attempt, wait})
		},
		Sleep: noSleep(&waits),
	}, func(context.Context) (string, error) {
		return "", errors.New("boom")
	})

	require.Len(t, reports, 2)
	assert.Equal(t, report{1, 4 * time.Second}, reports[0])
	assert.Equal(t, report{2, 4 * time.Second}, reports[1])
}

func TestWaitSchedule(t *testing.T) {
	p := Policy{}

	// clamp(2^attempt, 4s, 10s)
	assert.Equal(t, 4*time.Second, p.Wait(1))
	assert.Equal(t, 4*time.Second, p.Wait(2))
	assert.Equal(t, 8*time.Second, p.Wait(3))
	assert.Equal(t, 10*time.Second, p.Wait(4))
	assert.Equal(t, 10*time.Second, p.Wait(10))
}

func TestDoStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0

	_, err := Do(ctx, Policy{
		Sleep: func(ctx context.Context, _ time.Duration) error {
			cancel()
			return ctx.Err()
		},
	}, func(context.Context) (string, error) {
		calls++
		return "", errors.New("transient")
	})

	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}
