package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/blockone/pkg/config"
	"github.com/matzehuels/blockone/pkg/editor"
	"github.com/matzehuels/blockone/pkg/errors"
)

// WindowFunc runs the desktop adapter until the window closes. The window
// command fails with UNSUPPORTED when CLI.Window is nil.
type WindowFunc func(ctx context.Context, e *editor.Editor, cfg *config.Config, reloads <-chan config.Reload, status bool) error

// windowOptions holds flags for the window command.
type windowOptions struct {
	noWatch  bool
	noStatus bool
}

// windowCommand creates the window command for the desktop editor.
func (c *CLI) windowCommand() *cobra.Command {
	var opts windowOptions

	cmd := &cobra.Command{
		Use:   "window",
		Short: "Open the editor in a desktop window",
		Long: `Open the editor in a desktop window.

Press n or a to add a block at the cursor, click to focus it, l to start
links from the focused blocks and click another block to finish them.
Delete removes focused blocks, Escape drops unfinished links and ? shows
every binding.

The config file is watched while the window is open: theme and key
changes apply as soon as the file is saved.`,
		Example: `  blockone window
  blockone window --config ./dark.toml --no-status`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runWindow(cmd.Context(), opts)
		},
	}

	cmd.Flags().BoolVar(&opts.noWatch, "no-watch", false, "do not reload the config file when it changes")
	cmd.Flags().BoolVar(&opts.noStatus, "no-status", false, "hide the status line")

	return cmd
}

func (c *CLI) runWindow(ctx context.Context, opts windowOptions) error {
	if c.Window == nil {
		return errors.New(errors.ErrCodeUnsupported, "this build has no desktop window, use 'blockone tui'")
	}
	cfg, path, err := c.loadConfig()
	if err != nil {
		return err
	}
	e, err := newEditor(cfg)
	if err != nil {
		return err
	}
	if opts.noWatch {
		path = ""
	}

	err = runAdapter(ctx, "window", e, path, func(ctx context.Context, reloads <-chan config.Reload) error {
		return c.Window(ctx, e, cfg, reloads, !opts.noStatus)
	})
	if err != nil {
		return fmt.Errorf("window: %w", err)
	}
	return nil
}
