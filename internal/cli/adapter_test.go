package cli

import (
	"context"
	"testing"
	"time"

	"github.com/matzehuels/blockone/pkg/config"
	"github.com/matzehuels/blockone/pkg/editor"
	"github.com/matzehuels/blockone/pkg/errors"
	"github.com/matzehuels/blockone/pkg/scene"
)

func TestRunAdapterClosesReloads(t *testing.T) {
	path := writeFile(t, "config.toml", "")
	received := make(chan bool, 1)

	err := runAdapter(context.Background(), "test", editor.New(scene.New()), path,
		func(ctx context.Context, reloads <-chan config.Reload) error {
			if reloads == nil {
				t.Error("reloads is nil while watching")
				received <- false
				return nil
			}
			go func() {
				_, ok := <-reloads
				received <- ok
			}()
			return nil
		})
	if err != nil {
		t.Fatal(err)
	}

	select {
	case ok := <-received:
		if ok {
			t.Error("got a reload, want the channel closed")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("reload receiver still blocked after the adapter returned")
	}
}

func TestRunAdapterWithoutWatch(t *testing.T) {
	err := runAdapter(context.Background(), "test", editor.New(scene.New()), "",
		func(ctx context.Context, reloads <-chan config.Reload) error {
			if reloads != nil {
				t.Error("reloads should be nil without a watch path")
			}
			return errors.New(errors.ErrCodeInternal, "closed")
		})
	if !errors.Is(err, errors.ErrCodeInternal) {
		t.Fatalf("err = %v, want the adapter error", err)
	}
}
