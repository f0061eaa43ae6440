//go:build linux || darwin

package eye

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/renameio/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nextLoad(t *testing.T, events <-chan LoadEvent) LoadEvent {
	t.Helper()
	select {
	case ev, ok := <-events:
		require.True(t, ok, "events closed unexpectedly")
		return ev
	case <-time.After(3 * time.Second):
		t.Fatal("timeout waiting for reload")
		return LoadEvent{}
	}
}

func TestWatchConfig(t *testing.T) {
	dir := t.TempDir()
	config := filepath.Join(dir, "apps.eye")
	require.NoError(t, os.WriteFile(config, []byte("Eye.application 'test' {}\n"), 0o644))

	loadCmd := "eye load " + config
	runner := NewMockRunner().On(loadCmd, "Config loaded!")
	client := New(WithRunner(runner), WithConfigDebounce(5*time.Millisecond))

	events, cleanup, err := client.WatchConfig(context.Background(), config)
	require.NoError(t, err)
	defer func() { assert.NoError(t, cleanup()) }()

	// Unrelated files in the same directory are ignored
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.eye"), []byte("x"), 0o644))

	// Atomic replacement, as editors and deploy tools do it
	require.NoError(t, renameio.WriteFile(config, []byte("Eye.application 'test' { }\n"), 0o644))

	ev := nextLoad(t, events)
	assert.Equal(t, config, ev.Config)
	assert.NoError(t, ev.Err)

	runner.On(loadCmd, "config error: unexpected end-of-input")
	require.NoError(t, os.WriteFile(config, []byte("Eye.application 'test' {\n"), 0o644))

	ev = nextLoad(t, events)
	assert.ErrorIs(t, ev.Err, ErrConfigLoadFailed)

	for _, cmd := range runner.Commands() {
		assert.Equal(t, loadCmd, cmd)
	}
}

func TestWatchConfigValidation(t *testing.T) {
	client := New(WithRunner(NewMockRunner()))

	_, _, err := client.WatchConfig(context.Background(), "")
	assert.ErrorIs(t, err, ErrMissingArgument)

	_, _, err = client.WatchConfig(context.Background(), filepath.Join(t.TempDir(), "missing", "apps.eye"))
	assert.Error(t, err, "watching a config in a missing directory must fail")
}
