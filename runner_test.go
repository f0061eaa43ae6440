//go:build linux || darwin

package eye

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/renameio/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeFakeEye installs an executable script that answers like eye would.
// The script echoes a canned reply per subcommand and exits non-zero for
// failures, as eye does.
func writeFakeEye(t *testing.T, dir, infoJSON string) string {
	t.Helper()

	script := fmt.Sprintf(`#!/bin/sh
case "$1" in
  load)  if [ "$2" = "bad.eye" ]; then echo "config error"; exit 1; fi
         echo "Config loaded!" ;;
  start) echo "command :start sent to [$2]" ;;
  stop)  echo "command :stop sent to [$2]" ;;
  i)     cat <<'JSON'
%s
JSON
         ;;
  q)     echo "socket(%s/sock) not found, did you start eye?" >&2
         echo "socket(%s/sock) not found, did you start eye?"
         exit 1 ;;
  *)     echo "unknown command $1"; exit 2 ;;
esac
`, infoJSON, dir, dir)

	path := filepath.Join(dir, "eye")
	require.NoError(t, renameio.WriteFile(path, []byte(script), 0o755))
	return path
}

func TestExecRunner(t *testing.T) {
	if _, err := os.Stat(DefaultShell); err != nil {
		t.Skip("no /bin/sh on this system")
	}

	ctx := context.Background()
	r := NewExecRunner()

	t.Run("captures stdout only", func(t *testing.T) {
		out, err := r.Run(ctx, "echo hello; echo oops >&2")
		require.NoError(t, err)
		assert.Equal(t, "hello\n", out)
	})

	t.Run("non-zero exit is not an error", func(t *testing.T) {
		out, err := r.Run(ctx, "echo partial; exit 3")
		require.NoError(t, err)
		assert.Equal(t, "partial\n", out)
	})

	t.Run("missing shell is an error", func(t *testing.T) {
		bad := &ExecRunner{Shell: filepath.Join(t.TempDir(), "nosh")}
		_, err := bad.Run(ctx, "echo hi")
		assert.Error(t, err)
	})

	t.Run("cancelled context", func(t *testing.T) {
		cctx, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
		defer cancel()
		_, err := r.Run(cctx, "sleep 5")
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}

func TestClientWithFakeEye(t *testing.T) {
	if _, err := os.Stat(DefaultShell); err != nil {
		t.Skip("no /bin/sh on this system")
	}

	dir := t.TempDir()
	client := New(WithEyePath(writeFakeEye(t, dir, SampleReport)))
	ctx := context.Background()

	require.NoError(t, client.Start(ctx, Params{Config: "apps.eye", Application: "test"}))
	require.NoError(t, client.Stop(ctx, Params{Application: "test2", Group: "samples", Process: "sample"}))
	require.NoError(t, client.Destroy(ctx))

	err := client.Load(ctx, "bad.eye")
	assert.ErrorIs(t, err, ErrConfigLoadFailed)

	state, err := client.Status(ctx, Params{Application: "test2", Group: "samples", Process: "sample"})
	require.NoError(t, err)
	assert.Equal(t, "starting", state)

	assert.Equal(t, []string{"test", "test2"}, client.ListApps(ctx))
}
