package eye

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"vawter.tech/stopper"
)

// LoadEvent reports the outcome of reloading a watched config
type LoadEvent struct {
	// Config is the absolute path that was loaded
	Config string
	// Err is nil when eye confirmed the load
	Err error
}

// WatchConfig reloads config into eye whenever the file is written or
// replaced. Bursts of events are coalesced by ConfigDebounce. The file is
// never read or modified; eye itself parses it on `eye load`.
func (c *Client) WatchConfig(ctx context.Context, config string) (<-chan LoadEvent, WatchCleanupFunc, error) {
	if config == "" {
		return nil, nil, &ArgumentError{Op: OpLoad, Field: "config"}
	}

	path, err := filepath.Abs(config)
	if err != nil {
		return nil, nil, fmt.Errorf("resolving config path: %w", err)
	}

	// Editors replace files by renaming over them, so watch the directory
	dir := filepath.Dir(path)
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, &OpError{Op: OpLoad, Command: c.command(OpLoad, path), Err: err}
	}
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return nil, nil, &OpError{Op: OpLoad, Command: c.command(OpLoad, path), Err: err}
	}

	debounce := c.ConfigDebounce
	if debounce <= 0 {
		debounce = DefaultConfigDebounce
	}

	ch := make(chan LoadEvent, 10)
	sctx := stopper.WithContext(ctx)

	cleanup := func() error {
		sctx.Stop(watchStopGrace)
		return sctx.Wait()
	}

	sctx.Go(func(sctx *stopper.Context) error {
		defer close(ch)
		defer func() { _ = watcher.Close() }()

		var timer *time.Timer
		var fire <-chan time.Time
		defer func() {
			if timer != nil {
				timer.Stop()
			}
		}()

		send := func(ev LoadEvent) bool {
			select {
			case ch <- ev:
				return true
			case <-sctx.Stopping():
				return false
			case <-ctx.Done():
				return false
			}
		}

		for {
			select {
			case <-sctx.Stopping():
				return nil

			case <-ctx.Done():
				return nil

			case event, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				if filepath.Clean(event.Name) != path {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				if timer == nil {
					timer = time.NewTimer(debounce)
				} else {
					timer.Reset(debounce)
				}
				fire = timer.C

			case <-fire:
				fire = nil
				c.Logger.Info("config changed, reloading", "config", path)
				if !send(LoadEvent{Config: path, Err: c.Load(ctx, path)}) {
					return nil
				}

			case err, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				if err != nil && !send(LoadEvent{Config: path, Err: err}) {
					return nil
				}
			}
		}
	})

	return ch, cleanup, nil
}
