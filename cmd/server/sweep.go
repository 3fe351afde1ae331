package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"commons-backend/internal/database"
	"commons-backend/internal/repository"
	"commons-backend/internal/services"
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Mark lapsed check-ins as expired once and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		pool, err := database.NewPostgresPool(cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("postgres connection failed: %w", err)
		}
		defer pool.Close()

		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		sweeper := services.NewExpirySweeper(repository.NewCheckInRepo(pool), cfg.SweepInterval)
		n, err := sweeper.SweepOnce(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Marked %d check-in(s) expired\n", n)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sweepCmd)
}
