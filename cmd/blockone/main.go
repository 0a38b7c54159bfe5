package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/matzehuels/blockone/internal/cli"
	"github.com/matzehuels/blockone/internal/window"
	"github.com/matzehuels/blockone/pkg/config"
	"github.com/matzehuels/blockone/pkg/editor"
	bferrors "github.com/matzehuels/blockone/pkg/errors"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130) // Standard shell convention for SIGINT
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(bferrors.ExitCode(err))
	}
}

func run(ctx context.Context) error {
	var verbose, quiet bool

	c := cli.New(os.Stderr, cli.LogInfo)
	c.Window = runWindow
	root := c.RootCommand()

	flags := root.PersistentFlags()
	flags.BoolVarP(&verbose, "verbose", "v", false, "log scene events and other debug output")
	flags.BoolVarP(&quiet, "quiet", "q", false, "only log warnings and errors")
	root.MarkFlagsMutuallyExclusive("verbose", "quiet")

	// The level must be set before the root hook hands the logger out.
	setup := root.PersistentPreRunE
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		switch {
		case verbose:
			c.SetLogLevel(cli.LogDebug)
		case quiet:
			c.SetLogLevel(cli.LogWarn)
		}
		return setup(cmd, args)
	}

	return root.ExecuteContext(ctx)
}

// runWindow adapts the ebiten front end to cli.WindowFunc.
func runWindow(ctx context.Context, e *editor.Editor, cfg *config.Config, reloads <-chan config.Reload, status bool) error {
	return window.Run(ctx, e, window.Options{Config: cfg, Reloads: reloads, Status: status})
}
