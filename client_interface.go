package eye

import (
	"context"
)

// SupervisorClient is the gateway to an eye daemon. Client implements it;
// callers that only need to issue commands should depend on this interface.
type SupervisorClient interface {
	// Mutating operations fail loudly
	Load(ctx context.Context, config string) error
	Start(ctx context.Context, p Params) error
	Stop(ctx context.Context, p Params) error
	Destroy(ctx context.Context) error

	// Read-only operations degrade to "unknown" or an empty list
	Status(ctx context.Context, p Params) (string, error)
	ListApps(ctx context.Context) []string
	Info(ctx context.Context) (*Report, error)

	// Wait blocks until the process reaches one of states.
	// If states is empty, waits for any state change.
	Wait(ctx context.Context, p Params, states ...string) (string, error)

	// Watch polls the process state and emits an event on each change
	Watch(ctx context.Context, p Params) (<-chan WatchEvent, WatchCleanupFunc, error)
}

var _ SupervisorClient = (*Client)(nil)
