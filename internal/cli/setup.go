package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lazypower/flow/internal/hooks"
)

var setupPath string

var setupCmd = &cobra.Command{
	Use:   "setup [shell]",
	Short: "Print the shell integration script",
	Long: fmt.Sprintf(`Print the functions fs (search), fsp (search --project) and fp (clone) and
a prompt hook that records every visited directory. Supported shells: %s.

Usage: eval "$(flow setup zsh)"`, strings.Join(hooks.Shells(), ", ")),
	Args:      cobra.ExactArgs(1),
	ValidArgs: hooks.Shells(),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireRoot(); err != nil {
			return err
		}
		return hooks.WriteScript(cmd.OutOrStdout(), args[0], hooks.ScriptOptions{
			Binary: setupPath,
			Root:   cfg.Root,
		})
	},
}

func init() {
	setupCmd.Flags().StringVar(&setupPath, "path", "command flow", "Command used to invoke flow from the script")
}
