// Package cli implements the blockone command-line interface.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/blockone/pkg/buildinfo"
	"github.com/matzehuels/blockone/pkg/config"
	"github.com/matzehuels/blockone/pkg/editor"
	"github.com/matzehuels/blockone/pkg/observability"
	"github.com/matzehuels/blockone/pkg/scene"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "blockone"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
	LogWarn  = log.WarnLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Window runs the desktop adapter; nil disables the window command.
	Window WindowFunc

	// configPath is the --config flag; empty means the XDG default.
	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Blockone is a tiny block-and-link diagram editor",
		Long:         `Blockone places rectangular blocks on a canvas and joins them with curved links. It runs in a desktop window, in a terminal, or headless from an event script.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			c.registerHooks(c.Logger)
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", fmt.Sprintf("config file (default %s)", config.DefaultPath()))

	// Register all subcommands
	root.AddCommand(c.windowCommand())
	root.AddCommand(c.tuiCommand())
	root.AddCommand(c.playCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.keysCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// registerHooks routes scene, adapter and export events to l.
func (c *CLI) registerHooks(l *log.Logger) {
	h := newLogHooks(l)
	observability.SetSceneHooks(h)
	observability.SetAdapterHooks(h)
	observability.SetExportHooks(h)
}

// =============================================================================
// Config & Editor
// =============================================================================

// loadConfig loads the --config file or the default one and warns about keys
// it did not understand. The returned path is the file that was read, or ""
// when the built-in defaults are in use.
func (c *CLI) loadConfig() (*config.Config, string, error) {
	path := c.configPath
	cfg, err := config.LoadOrDefault(path)
	if err != nil {
		return nil, "", fmt.Errorf("load config: %w", err)
	}
	if path == "" && fileExists(config.DefaultPath()) {
		path = config.DefaultPath()
	}
	for _, key := range cfg.Unknown {
		c.Logger.Warn("unknown config key", "key", key, "file", path)
	}
	if path != "" {
		c.Logger.Debug("loaded config", "file", path)
	}
	return cfg, path, nil
}

// newEditor builds a scene configured from cfg and wraps it in an editor.
func newEditor(cfg *config.Config, opts ...editor.Option) (*editor.Editor, error) {
	sceneOpts, err := cfg.Options()
	if err != nil {
		return nil, fmt.Errorf("configure scene: %w", err)
	}
	return editor.New(scene.New(sceneOpts...), opts...), nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
