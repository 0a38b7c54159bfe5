package config

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/matzehuels/blockone/pkg/errors"
)

// reloadDelay coalesces the burst of events an editor produces on save.
const reloadDelay = 100 * time.Millisecond

// Reload is a config reload result. Exactly one of Config and Err is set.
type Reload struct {
	Path   string
	Config *Config
	Err    error
}

// Watch reloads path whenever it changes and sends the result on out until
// ctx is cancelled. The parent directory is watched so that editors which
// replace the file on save are handled. Sends never block: a reload that
// finds out full is dropped, the next change produces a fresh one.
func Watch(ctx context.Context, path string, out chan<- Reload) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create file watcher")
	}
	defer w.Close()

	path = filepath.Clean(path)
	if err := w.Add(filepath.Dir(path)); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "watch %s", filepath.Dir(path))
	}

	timer := time.NewTimer(reloadDelay)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != path || ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			timer.Reset(reloadDelay)

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			send(out, Reload{Path: path, Err: errors.Wrap(errors.ErrCodeInternal, err, "watch %s", path)})

		case <-timer.C:
			cfg, err := Load(path)
			send(out, Reload{Path: path, Config: cfg, Err: err})
		}
	}
}

func send(out chan<- Reload, r Reload) {
	select {
	case out <- r:
	default:
	}
}
