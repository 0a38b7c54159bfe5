package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/blockone/pkg/config"
)

// configCommand creates the config command, which prints the effective
// configuration as TOML.
func (c *CLI) configCommand() *cobra.Command {
	var defaults, pathOnly bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Print the effective configuration as TOML.

The output is a complete config file: redirect it to the default path to
start customizing.`,
		Example: `  blockone config --defaults > "$(blockone config --path)"
  blockone config --config ./dark.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			if pathOnly {
				_, err := fmt.Fprintln(w, config.DefaultPath())
				return err
			}
			return c.runConfig(w, defaults)
		},
	}

	cmd.Flags().BoolVar(&defaults, "defaults", false, "print the built-in defaults, ignoring any config file")
	cmd.Flags().BoolVar(&pathOnly, "path", false, "print the default config file path")

	return cmd
}

func (c *CLI) runConfig(w io.Writer, defaults bool) error {
	cfg := config.Default()
	if !defaults {
		var err error
		if cfg, _, err = c.loadConfig(); err != nil {
			return err
		}
	}
	if err := cfg.Encode(w); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return nil
}
