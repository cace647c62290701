package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lazypower/flow/internal/project"
)

var cloneCmd = &cobra.Command{
	Use:   "clone [project]",
	Short: "Clone a project under the root and print its directory",
	Long: `Clone checks a project out as root/host/owner/repo, unless it is already
there, and prints the directory. Projects are owner/repo or gh:owner/repo for
GitHub, or git:<url> for anything else.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireRoot(); err != nil {
			return err
		}
		p, err := project.Parse(args[0])
		if err != nil {
			return err
		}
		cloner := project.Cloner{Stderr: cmd.ErrOrStderr()}
		dir, err := cloner.Clone(cmd.Context(), cfg.Root, p)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), dir)
		return nil
	},
}
