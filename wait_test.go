package eye

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sequenceRunner answers `eye i -j` with reports[i] on the i-th call and
// repeats the last report afterwards.
func sequenceRunner(reports ...string) (Runner, *atomic.Int32) {
	var calls atomic.Int32
	return RunnerFunc(func(_ context.Context, command string) (string, error) {
		if command != "eye i -j" {
			return "", errors.New("unexpected command " + command)
		}
		n := int(calls.Add(1)) - 1
		if n >= len(reports) {
			n = len(reports) - 1
		}
		return reports[n], nil
	}), &calls
}

func stateReport(state string) string {
	return NewReportBuilder().Process("test", "", "sample", state).String()
}

func TestWait(t *testing.T) {
	target := Params{Application: "test", Process: "sample"}

	t.Run("already in state", func(t *testing.T) {
		runner, calls := sequenceRunner(stateReport("up"))
		client := New(WithRunner(runner), WithPollInterval(time.Millisecond))

		state, err := client.Wait(context.Background(), target, "up", "starting")
		require.NoError(t, err)
		assert.Equal(t, "up", state)
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("reaches state after polling", func(t *testing.T) {
		runner, calls := sequenceRunner(
			"socket(/tmp/s) not found",
			stateReport("starting"),
			stateReport("starting"),
			stateReport("up"),
		)
		client := New(WithRunner(runner), WithPollInterval(time.Millisecond))

		state, err := client.Wait(context.Background(), target, "up")
		require.NoError(t, err)
		assert.Equal(t, "up", state)
		assert.Equal(t, int32(4), calls.Load())
	})

	t.Run("any change", func(t *testing.T) {
		runner, _ := sequenceRunner(stateReport("up"), stateReport("up"), stateReport("unmonitored"))
		client := New(WithRunner(runner), WithPollInterval(time.Millisecond))

		state, err := client.Wait(context.Background(), target)
		require.NoError(t, err)
		assert.Equal(t, "unmonitored", state)
	})

	t.Run("context deadline", func(t *testing.T) {
		runner, _ := sequenceRunner(stateReport("starting"))
		client := New(WithRunner(runner), WithPollInterval(time.Millisecond))

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		state, err := client.Wait(ctx, target, "up")
		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Equal(t, "starting", state)
	})

	t.Run("requires process", func(t *testing.T) {
		client := New(WithRunner(NewMockRunner()))
		_, err := client.Wait(context.Background(), Params{Application: "test"}, "up")
		assert.ErrorIs(t, err, ErrMissingArgument)
	})
}
