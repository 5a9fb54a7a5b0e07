// Package cli holds the library_backend command tree.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"library_backend/internals/configs"
	"library_backend/internals/logging"
)

var (
	cfg *configs.Config

	flagConfig string
)

var rootCmd = &cobra.Command{
	Use:   "library_backend",
	Short: "Library lending service: catalog, loans, fines and reviews",
	Long: `library_backend serves the library REST API and ships the
maintenance commands around it.

Configuration comes from built-in defaults, an optional config.yaml
and the environment (DB_HOST, JWT_SECRET, FINE_PER_DAY, ...).`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default: config.yaml or $CONFIG_PATH)")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if flagConfig != "" {
			if err := os.Setenv(configs.ConfigPathEnvVar, flagConfig); err != nil {
				return err
			}
		}
		configs.LoadEnv()

		var err error
		cfg, err = configs.Load()
		if err != nil {
			return err
		}
		logging.Init(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
		return nil
	}

	rootCmd.AddCommand(serveCmd, migrateCmd, seedCmd, tokenCmd)
}
