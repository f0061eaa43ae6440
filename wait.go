package eye

import (
	"context"
	"slices"
	"time"
)

// Wait polls Status until the process reaches one of states or ctx is done.
// If states is empty, it waits for the state to differ from the first one
// observed. On cancellation it returns the last observed state and ctx.Err().
//
// Example:
//
//	// eye may report "starting" for a while after Start
//	state, err := client.Wait(ctx, eye.Params{Application: "web", Process: "puma"}, "up")
func (c *Client) Wait(ctx context.Context, p Params, states ...string) (string, error) {
	state, err := c.Status(ctx, p)
	if err != nil {
		return "", err
	}

	initial := state
	done := func(s string) bool {
		if len(states) == 0 {
			return s != initial
		}
		return slices.Contains(states, s)
	}

	if len(states) > 0 && done(state) {
		return state, nil
	}

	ticker := time.NewTicker(c.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return state, ctx.Err()
		case <-ticker.C:
			state, err = c.Status(ctx, p)
			if err != nil {
				return "", err
			}
			if done(state) {
				return state, nil
			}
		}
	}
}
