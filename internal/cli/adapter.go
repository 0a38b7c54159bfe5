package cli

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/blockone/pkg/config"
	"github.com/matzehuels/blockone/pkg/editor"
	"github.com/matzehuels/blockone/pkg/observability"
)

// adapterFunc runs an interactive adapter until it exits. Reloaded configs
// arrive on reloads, which is nil when watching is off.
type adapterFunc func(ctx context.Context, reloads <-chan config.Reload) error

// runAdapter runs an interactive adapter next to an optional config watcher.
//
// The adapter runs on the calling goroutine, which ebiten requires. Closing
// the adapter stops the watcher and then closes reloads, so receivers still
// waiting on it return. A watcher failure cancels the adapter and is reported
// in place of the resulting cancellation.
func runAdapter(ctx context.Context, name string, e *editor.Editor, watchPath string, run adapterFunc) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	var reloads chan config.Reload
	if watchPath != "" {
		reloads = make(chan config.Reload, 1)
		g.Go(func() error { return config.Watch(gctx, watchPath, reloads) })
	}

	hooks := observability.Adapter()
	hooks.OnAdapterStart(gctx, name)
	start := time.Now()
	runErr := run(gctx, reloads)
	hooks.OnAdapterStop(gctx, name, e.Frames(), time.Since(start), runErr)

	cancel()
	err := g.Wait()
	if reloads != nil {
		close(reloads)
	}
	if err != nil {
		return fmt.Errorf("watch config: %w", err)
	}
	return runErr
}
