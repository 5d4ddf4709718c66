// Package commands implements the tabctl command line: offline split calculators
// plus a few helpers for operating a tabsplit server.
package commands

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/mmynk/tabsplit/internal/config"
	"github.com/mmynk/tabsplit/pkg/logging"
)

var cfg *config.Config

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "tabctl",
		Short:        "Split bills and inspect tabsplit ledgers",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()
			cfg = config.Load()
			logging.Setup(cfg.LogLevel)
			return nil
		},
	}

	root.AddCommand(
		parseCmd(),
		allocateCmd(),
		evenCmd(),
		customCmd(),
		claimCmd(),
		balancesCmd(),
		tokenCmd(),
		watchCmd(),
	)
	return root
}
