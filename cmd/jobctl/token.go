package main

import (
	"fmt"
	"time"

	"jobmarket/internal/pkg/jwt"

	"github.com/spf13/cobra"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a bearer token for the write API",
	RunE:  runToken,
}

var (
	tokenSubject string
	tokenRole    string
	tokenTTL     time.Duration
)

func init() {
	tokenCmd.Flags().StringVar(&tokenSubject, "subject", "", "Token subject, e.g. an operator or service name (required)")
	tokenCmd.Flags().StringVar(&tokenRole, "role", jwt.RoleAdmin, "Role claim: admin or ingest")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 0, "Lifetime; defaults to JWT_ACCESS_EXPIRES_IN")

	_ = tokenCmd.MarkFlagRequired("subject")

	rootCmd.AddCommand(tokenCmd)
}

func runToken(cmd *cobra.Command, args []string) error {
	ttl := tokenTTL
	if ttl <= 0 {
		ttl = cfg.JWT.AccessExpiresIn
	}
	svc := jwt.NewHMACService(cfg.JWT.AccessSecret, ttl, "jobmarket")

	token, err := svc.GenerateAccessToken(tokenSubject, tokenRole)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
