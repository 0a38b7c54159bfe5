package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/matzehuels/blockone/internal/term"
	"github.com/matzehuels/blockone/pkg/config"
	"github.com/matzehuels/blockone/pkg/editor"
	"github.com/matzehuels/blockone/pkg/errors"
)

// tuiOptions holds flags for the tui command.
type tuiOptions struct {
	logFile string
	noWatch bool
}

// tuiCommand creates the tui command for the terminal editor.
func (c *CLI) tuiCommand() *cobra.Command {
	var opts tuiOptions

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Run the editor in the terminal",
		Long: `Run the editor in the terminal.

The canvas is drawn as a grid of character cells, each covering
terminal.cell_width by terminal.cell_height canvas units. The mouse and
keys behave as in the desktop window. Press ctrl+c to quit.

The terminal owns the screen while the editor runs, so log output goes to
--log-file (or nowhere).`,
		Example: `  blockone tui
  blockone tui -v --log-file /tmp/blockone.log`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runTUI(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.logFile, "log-file", "", "append log output to this file while the editor runs")
	cmd.Flags().BoolVar(&opts.noWatch, "no-watch", false, "do not reload the config file when it changes")

	return cmd
}

func (c *CLI) runTUI(ctx context.Context, opts tuiOptions) error {
	if !isTerminal(os.Stdin) || !isTerminal(os.Stdout) {
		return errors.New(errors.ErrCodeNotATerminal, "tui needs an interactive terminal, use 'blockone play' for scripted sessions")
	}

	cfg, path, err := c.loadConfig()
	if err != nil {
		return err
	}
	e, err := newEditor(cfg, editor.WithLineHeight(cfg.Terminal.CellHeight))
	if err != nil {
		return err
	}
	if opts.noWatch {
		path = ""
	}

	logger, closeLog, err := fileLogger(opts.logFile, c.Logger.GetLevel())
	if err != nil {
		return err
	}
	defer closeLog()
	c.registerHooks(logger)
	defer c.registerHooks(c.Logger)

	err = runAdapter(withLogger(ctx, logger), "tui", e, path, func(ctx context.Context, reloads <-chan config.Reload) error {
		return term.Run(ctx, e, term.Options{Config: cfg, Reloads: reloads})
	})
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// fileLogger opens path for appending and returns a logger writing to it.
// An empty path discards everything.
func fileLogger(path string, level log.Level) (*log.Logger, func() error, error) {
	if path == "" {
		return newLogger(io.Discard, level), func() error { return nil }, nil
	}
	if err := errors.ValidateOutputPath(path); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "open log file %s", path)
	}
	return newLogger(f, level), f.Close, nil
}
