package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lazypower/flow/internal/config"
	"github.com/lazypower/flow/internal/logging"
	"github.com/lazypower/flow/internal/store"
)

var (
	rootFlag   string
	configFlag string
	verbosity  int
	quiet      bool

	// cfg is resolved by loadConfig before any command runs.
	cfg config.Config
)

var rootCmd = &cobra.Command{
	Use:   "flow",
	Short: "Jump to frequently used directories",
	Long: `Flow ranks the directories under your project root and the ones you visited
before against a short query, and prints the best match. Hook it into your
shell with: eval "$(flow setup zsh)"`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&rootFlag, "root", "r", "", "Root directory that contains all projects (default $FLOW_ROOT or $HOME/src)")
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Config file (default $FLOW_CONFIG or $XDG_CONFIG_HOME/flow/config.toml)")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Log more (-v info, -vv debug)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Disable logging")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(setupCmd)
	rootCmd.AddCommand(cloneCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(serveCmd)
}

func loadConfig(cmd *cobra.Command, args []string) error {
	path := configFlag
	if path == "" {
		var err error
		path, err = config.DefaultPath()
		if err != nil {
			return err
		}
	}

	c, err := config.Load(path)
	if err != nil {
		return err
	}
	if rootFlag != "" {
		c.Root = rootFlag
	}
	if c.Ledger.Path == "" {
		c.Ledger.Path, err = store.DefaultPath()
		if err != nil {
			return fmt.Errorf("resolve ledger path: %w", err)
		}
	}

	logging.Setup(cmd.ErrOrStderr(), logging.LevelFromFlags(verbosity, quiet, c.Log.Level))
	cfg = c
	return nil
}

// requireRoot fails commands that list or clone into the root when none is
// known.
func requireRoot() error {
	if cfg.Root == "" {
		return fmt.Errorf("no root directory: set --root, FLOW_ROOT or root in the config file")
	}
	return nil
}
