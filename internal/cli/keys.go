package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// keysCommand creates the keys command, which lists the active bindings.
func (c *CLI) keysCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "keys",
		Short: "List key bindings",
		Long: `List the key bindings from the effective configuration.

Plain entries match typed text; entries in angle brackets name keys such as
<delete> or <escape>.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := c.loadConfig()
			if err != nil {
				return err
			}
			km, err := cfg.Keymap()
			if err != nil {
				return fmt.Errorf("keymap: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), bindingsTable(km.Bindings()))
			return nil
		},
	}
}
