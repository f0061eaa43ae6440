package eye

import (
	"context"
	"time"

	"vawter.tech/stopper"
)

// WatchEvent represents a process state change observed by Watch
type WatchEvent struct {
	// State is the resolved process state
	State string
	// Err is set when the report could not be read; State is then "unknown"
	Err error
}

// WatchCleanupFunc stops a watch and waits for its goroutine to exit
type WatchCleanupFunc func() error

// watchStopGrace bounds how long cleanup waits for the poll loop to notice
const watchStopGrace = 100 * time.Millisecond

// Watch polls the state of the process addressed by p every PollInterval and
// emits an event for the first observation and for every change after it.
// The channel is closed once the watch stops.
func (c *Client) Watch(ctx context.Context, p Params) (<-chan WatchEvent, WatchCleanupFunc, error) {
	if p.Process == "" {
		return nil, nil, &ArgumentError{Op: OpStatus, Field: "process"}
	}

	ch := make(chan WatchEvent, 10)
	sctx := stopper.WithContext(ctx)

	cleanup := func() error {
		sctx.Stop(watchStopGrace)
		return sctx.Wait()
	}

	sctx.Go(func(sctx *stopper.Context) error {
		defer close(ch)

		ticker := time.NewTicker(c.PollInterval)
		defer ticker.Stop()

		last, seen := "", false
		for !sctx.IsStopping() {
			ev := WatchEvent{State: StateUnknown}
			report, err := c.Info(ctx)
			if err != nil {
				ev.Err = err
			} else {
				ev.State = report.Resolve(p.Application, p.Group, p.Process)
			}

			if !seen || ev.State != last {
				seen, last = true, ev.State
				select {
				case ch <- ev:
				case <-sctx.Stopping():
					return nil
				case <-ctx.Done():
					return nil
				}
			}

			select {
			case <-sctx.Stopping():
				return nil
			case <-ctx.Done():
				return nil
			case <-ticker.C:
			}
		}
		return nil
	})

	return ch, cleanup, nil
}
