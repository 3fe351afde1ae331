package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"commons-backend/internal/config"
	"commons-backend/internal/logger"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:           "commons",
	Short:         "Community check-in backend",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load()
		if err != nil {
			return err
		}
		cfg = loaded
		logger.Init(cfg.LogLevel, cfg.LogFormat)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
