package eye

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// Params addresses an eye application, group or process. Empty fields are
// treated as absent; each operation documents which ones it requires.
type Params struct {
	// Application is the eye application name
	Application string
	// Group is the process group; empty means the default group
	Group string
	// Process is the process name
	Process string
	// Config is an eye config file loaded before Start
	Config string
}

// Key returns the ProcessKey for p
func (p Params) Key() string {
	return ProcessKey(p.Application, p.Group, p.Process)
}

// Client drives the eye CLI. Every call is an independent round-trip through
// its Runner; the Client keeps no state between calls and is safe to share.
type Client struct {
	// EyePath is the eye executable placed at the start of each command line
	EyePath string

	// Runner executes command lines
	Runner Runner

	// Logger receives debug output for every command
	Logger *log.Logger

	// PollInterval is the delay between status polls in Wait and Watch
	PollInterval time.Duration

	// ConfigDebounce coalesces bursts of config file events in WatchConfig
	ConfigDebounce time.Duration
}

// Option configures a Client
type Option func(*Client)

// WithEyePath sets the eye executable
func WithEyePath(path string) Option {
	return func(c *Client) {
		c.EyePath = path
	}
}

// WithRunner sets the Runner used to execute commands
func WithRunner(r Runner) Option {
	return func(c *Client) {
		c.Runner = r
	}
}

// WithShell makes the Client run commands through an ExecRunner using shell
func WithShell(shell string) Option {
	return func(c *Client) {
		c.Runner = &ExecRunner{Shell: shell}
	}
}

// WithLogger sets the logger
func WithLogger(l *log.Logger) Option {
	return func(c *Client) {
		c.Logger = l
	}
}

// WithPollInterval sets the status poll interval for Wait and Watch
func WithPollInterval(d time.Duration) Option {
	return func(c *Client) {
		c.PollInterval = d
	}
}

// WithConfigDebounce sets the debounce duration for WatchConfig
func WithConfigDebounce(d time.Duration) Option {
	return func(c *Client) {
		c.ConfigDebounce = d
	}
}

// New creates a Client with default settings and applies opts.
func New(opts ...Option) *Client {
	c := &Client{
		EyePath:        DefaultEyePath,
		Runner:         NewExecRunner(),
		Logger:         log.New(io.Discard),
		PollInterval:   DefaultPollInterval,
		ConfigDebounce: DefaultConfigDebounce,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.PollInterval <= 0 {
		c.PollInterval = DefaultPollInterval
	}
	if c.Runner == nil {
		c.Runner = NewExecRunner()
	}
	if c.Logger == nil {
		c.Logger = log.New(io.Discard)
	}

	return c
}

// command builds the command line for op with an optional operand
func (c *Client) command(op Operation, operand string) string {
	parts := []string{c.EyePath, op.Args()}
	if operand != "" {
		parts = append(parts, operand)
	}
	return strings.Join(parts, " ")
}

// exec runs command once. A Runner failure is reported as an OpError whose
// chain contains both kind and the cause.
func (c *Client) exec(ctx context.Context, op Operation, command string, kind error) (string, error) {
	c.Logger.Debug("running eye command", "op", op, "command", command)

	output, err := c.Runner.Run(ctx, command)
	if err != nil {
		return "", &OpError{Op: op, Command: command, Err: errors.Join(kind, err)}
	}

	c.Logger.Debug("eye command finished", "op", op, "output", strings.TrimSpace(output))
	return output, nil
}

// Load loads an eye config file. Output without "Config loaded" fails with
// ErrConfigLoadFailed.
func (c *Client) Load(ctx context.Context, config string) error {
	if config == "" {
		return &ArgumentError{Op: OpLoad, Field: "config"}
	}

	cmd := c.command(OpLoad, config)
	output, err := c.exec(ctx, OpLoad, cmd, ErrConfigLoadFailed)
	if err != nil {
		return err
	}
	if !LoadSucceeded(output) {
		return &OpError{Op: OpLoad, Command: cmd, Output: output, Err: ErrConfigLoadFailed}
	}
	return nil
}

// Start loads p.Config when set, then starts p.Application.
// Application is required.
func (c *Client) Start(ctx context.Context, p Params) error {
	if p.Application == "" {
		return &ArgumentError{Op: OpStart, Field: "application"}
	}

	if p.Config != "" {
		if err := c.Load(ctx, p.Config); err != nil {
			return err
		}
	}

	cmd := c.command(OpStart, p.Application)
	output, err := c.exec(ctx, OpStart, cmd, ErrCommandFailed)
	if err != nil {
		return err
	}
	if !StartSucceeded(output, p.Application) {
		return &OpError{Op: OpStart, Command: cmd, Output: output, Err: ErrCommandFailed}
	}
	return nil
}

// Stop stops the process addressed by p. Application and Process are required.
func (c *Client) Stop(ctx context.Context, p Params) error {
	if p.Application == "" {
		return &ArgumentError{Op: OpStop, Field: "application"}
	}
	if p.Process == "" {
		return &ArgumentError{Op: OpStop, Field: "process"}
	}

	key := p.Key()
	cmd := c.command(OpStop, key)
	output, err := c.exec(ctx, OpStop, cmd, ErrCommandFailed)
	if err != nil {
		return err
	}
	if !StopSucceeded(output, key) {
		return &OpError{Op: OpStop, Command: cmd, Output: output, Err: ErrCommandFailed}
	}
	return nil
}

// Info runs `eye i -j` and decodes the report. Unlike Status and ListApps it
// reports failures instead of degrading.
func (c *Client) Info(ctx context.Context) (*Report, error) {
	return c.info(ctx, OpStatus)
}

func (c *Client) info(ctx context.Context, op Operation) (*Report, error) {
	cmd := c.command(op, "")
	output, err := c.exec(ctx, op, cmd, ErrCommandFailed)
	if err != nil {
		return nil, err
	}

	report, err := ParseReport(output)
	if err != nil {
		return nil, &OpError{Op: op, Command: cmd, Output: output, Err: err}
	}
	return report, nil
}

// Status returns the state of the process addressed by p, or StateUnknown
// when eye is unreachable, prints something unparsable, or does not know the
// process. Process is required; that is the only error Status returns.
func (c *Client) Status(ctx context.Context, p Params) (string, error) {
	if p.Process == "" {
		return "", &ArgumentError{Op: OpStatus, Field: "process"}
	}

	report, err := c.Info(ctx)
	if err != nil {
		c.Logger.Debug("status degraded to unknown", "key", p.Key(), "err", err)
		return StateUnknown, nil
	}
	return report.Resolve(p.Application, p.Group, p.Process), nil
}

// ListApps returns the names of the applications eye reports, in order.
// It returns an empty list when the report is unavailable.
func (c *Client) ListApps(ctx context.Context) []string {
	report, err := c.info(ctx, OpList)
	if err != nil {
		c.Logger.Debug("application list degraded to empty", "err", err)
		return []string{}
	}
	return report.ApplicationNames()
}

// Destroy shuts down the eye daemon. It succeeds when eye was not running.
func (c *Client) Destroy(ctx context.Context) error {
	cmd := c.command(OpDestroy, "")
	output, err := c.exec(ctx, OpDestroy, cmd, ErrCommandFailed)
	if err != nil {
		return err
	}
	if !DestroySucceeded(output) {
		return &OpError{Op: OpDestroy, Command: cmd, Output: output, Err: ErrCommandFailed}
	}
	return nil
}
