package eye

import (
	"context"
	"sync"
)

// MockRunner is a Runner that returns canned output instead of running eye.
// It records every command it receives, which lets tests assert on the exact
// command lines the Client builds.
type MockRunner struct {
	// Outputs maps an exact command line to the output it produces
	Outputs map[string]string
	// Errors maps an exact command line to an error returned instead of output
	Errors map[string]error
	// Fallback is returned for commands missing from Outputs
	Fallback string

	mu       sync.Mutex
	commands []string
}

var _ Runner = (*MockRunner)(nil)

// NewMockRunner creates a MockRunner with no canned output
func NewMockRunner() *MockRunner {
	return &MockRunner{
		Outputs: make(map[string]string),
		Errors:  make(map[string]error),
	}
}

// On registers output for command and returns the runner for chaining
func (m *MockRunner) On(command, output string) *MockRunner {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Outputs == nil {
		m.Outputs = make(map[string]string)
	}
	m.Outputs[command] = output
	return m
}

// Fail registers an error for command and returns the runner for chaining
func (m *MockRunner) Fail(command string, err error) *MockRunner {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Errors == nil {
		m.Errors = make(map[string]error)
	}
	m.Errors[command] = err
	return m
}

// Run records command and returns its canned output
func (m *MockRunner) Run(_ context.Context, command string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.commands = append(m.commands, command)
	if err, ok := m.Errors[command]; ok {
		return "", err
	}
	if out, ok := m.Outputs[command]; ok {
		return out, nil
	}
	return m.Fallback, nil
}

// Commands returns a copy of the commands received so far
func (m *MockRunner) Commands() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]string, len(m.commands))
	copy(out, m.commands)
	return out
}

// Reset forgets recorded commands
func (m *MockRunner) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.commands = nil
}
