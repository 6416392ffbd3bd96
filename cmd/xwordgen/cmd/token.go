package cmd

import (
	"fmt"
	"os"

	"github.com/crossplay/xwordgen/internal/auth"
	"github.com/spf13/cobra"
)

var (
	tokenSubject   string
	tokenJWTSecret string
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint a bearer token for the serve subcommand's API",
	Long: `Token issues a bearer token directly, without going through
POST /auth/token, for operators who can read --jwt_secret (or
JWT_SECRET) off the same host the service runs on. Prefer the HTTP
endpoint for anything that isn't a one-off operational task.`,
	RunE: runToken,
}

func init() {
	rootCmd.AddCommand(tokenCmd)

	tokenCmd.Flags().StringVar(&tokenSubject, "subject", "", "subject to embed in the token (required)")
	tokenCmd.Flags().StringVar(&tokenJWTSecret, "jwt_secret", os.Getenv("JWT_SECRET"), "HMAC secret matching the running service")
	tokenCmd.MarkFlagRequired("subject")
}

func runToken(cmd *cobra.Command, args []string) error {
	if tokenJWTSecret == "" {
		return fmt.Errorf("token: --jwt_secret (or JWT_SECRET) is required")
	}

	svc := auth.NewService(tokenJWTSecret)
	tok, err := svc.GenerateToken(tokenSubject)
	if err != nil {
		return fmt.Errorf("token: %w", err)
	}

	fmt.Println(tok)
	return nil
}
