package eye

import (
	"context"
	"time"
)

// Manager applies operations to several eye targets. Operations run one after
// another: eye serialises commands anyway, and issuing them concurrently
// would make their interleaving the daemon's choice.
type Manager struct {
	// Client issues the commands
	Client SupervisorClient
	// Timeout is the per-operation timeout; zero means none
	Timeout time.Duration
	// StopOnError aborts a bulk operation at the first failure
	StopOnError bool
}

// ManagerOption configures a Manager
type ManagerOption func(*Manager)

// WithTimeout sets the per-operation timeout
func WithTimeout(d time.Duration) ManagerOption {
	return func(m *Manager) {
		m.Timeout = d
	}
}

// WithStopOnError makes bulk operations stop at the first failure
func WithStopOnError(stop bool) ManagerOption {
	return func(m *Manager) {
		m.StopOnError = stop
	}
}

// NewManager creates a Manager around client
func NewManager(client SupervisorClient, opts ...ManagerOption) *Manager {
	m := &Manager{Client: client}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

func (m *Manager) execute(ctx context.Context, targets []Params, op func(context.Context, Params) error) error {
	merr := &MultiError{}

	for _, p := range targets {
		if err := ctx.Err(); err != nil {
			merr.Add(err)
			break
		}

		opCtx := ctx
		var cancel context.CancelFunc
		if m.Timeout > 0 {
			opCtx, cancel = context.WithTimeout(ctx, m.Timeout)
		}

		err := op(opCtx, p)
		if cancel != nil {
			cancel()
		}

		if err != nil {
			merr.Add(err)
			if m.StopOnError {
				break
			}
		}
	}

	return merr.Err()
}

// Start starts each target, loading its Config first when set
func (m *Manager) Start(ctx context.Context, targets ...Params) error {
	return m.execute(ctx, targets, m.Client.Start)
}

// Stop stops each target process
func (m *Manager) Stop(ctx context.Context, targets ...Params) error {
	return m.execute(ctx, targets, m.Client.Stop)
}

// Statuses resolves every target against a single eye report and returns the
// states keyed by ProcessKey. Targets without a process are reported as
// errors; an unreadable report yields "unknown" for every target.
func (m *Manager) Statuses(ctx context.Context, targets ...Params) (map[string]string, error) {
	results := make(map[string]string, len(targets))
	if len(targets) == 0 {
		return results, nil
	}

	merr := &MultiError{}
	valid := make([]Params, 0, len(targets))
	for _, p := range targets {
		if p.Process == "" {
			merr.Add(&ArgumentError{Op: OpStatus, Field: "process"})
			continue
		}
		valid = append(valid, p)
	}

	opCtx := ctx
	if m.Timeout > 0 {
		var cancel context.CancelFunc
		opCtx, cancel = context.WithTimeout(ctx, m.Timeout)
		defer cancel()
	}

	report, err := m.Client.Info(opCtx)
	for _, p := range valid {
		if err != nil {
			results[p.Key()] = StateUnknown
			continue
		}
		results[p.Key()] = report.Resolve(p.Application, p.Group, p.Process)
	}

	return results, merr.Err()
}
