package app

import (
	"github.com/spf13/cobra"

	"github.com/GoShelter-Admin/GoShelter-Admin/internal/config"
	"github.com/GoShelter-Admin/GoShelter-Admin/internal/daemon"
	"github.com/GoShelter-Admin/GoShelter-Admin/internal/logger"
)

func init() { //nolint: gochecknoinits
	sweepCmd.Flags().StringVar(&configPath, "config", "etc/", "Path to the configuration directory")

	rootCmd.AddCommand(sweepCmd)
}

// sweepCmd runs a single admission sweep pass and exits, for running the
// sweep from an external scheduler instead of the built-in one.
var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Run one admission-confirmation sweep pass and exit",
	PreRun: func(_ *cobra.Command, _ []string) {
		if cfg, err = config.ReadConfig(configPath); err != nil {
			panic(err)
		}

		if err = logger.Init(cfg.Log); err != nil {
			panic(err)
		}
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		return daemon.New(&cfg).Sweep(cmd.Context())
	},
}
