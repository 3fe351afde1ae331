package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"commons-backend/internal/middleware"
)

var (
	tokenUserID   string
	tokenTenantID string
	tokenTTL      time.Duration
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint an access token for local development",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cfg.IsDevelopment() {
			return errors.New("token minting is only available when ENV=development")
		}

		userID, err := uuid.Parse(tokenUserID)
		if err != nil {
			return fmt.Errorf("invalid --user: %w", err)
		}
		tenantID, err := uuid.Parse(tokenTenantID)
		if err != nil {
			return fmt.Errorf("invalid --tenant: %w", err)
		}

		token, err := middleware.NewJWTAuth(cfg.JWTSecret).GenerateAccessToken(userID, tenantID, tokenTTL)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenUserID, "user", "", "user id (uuid)")
	tokenCmd.Flags().StringVar(&tokenTenantID, "tenant", "", "tenant id (uuid)")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 24*time.Hour, "token lifetime")
	tokenCmd.MarkFlagRequired("user")
	tokenCmd.MarkFlagRequired("tenant")
	rootCmd.AddCommand(tokenCmd)
}
