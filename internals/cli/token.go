package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	database "library_backend/internals/databases"
	"library_backend/internals/features/users/auth/repository"
	authService "library_backend/internals/features/users/auth/service"
)

var (
	flagTokenUser string
	flagTokenTTL  time.Duration
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Sign an access token for an existing user",
	Example: `  library_backend token --user librarian
  library_backend token --user reader1@example.com --ttl 1h`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagTokenUser == "" {
			return errors.New("--user is required")
		}

		db, err := database.ConnectDB(cfg.Database)
		if err != nil {
			return err
		}
		defer database.Close(db)

		u, err := repository.FindUserByEmailOrUsername(db.WithContext(cmd.Context()), flagTokenUser)
		if err != nil {
			return fmt.Errorf("user %q: %w", flagTokenUser, err)
		}

		ttl := cfg.Auth.TokenTTL
		if flagTokenTTL > 0 {
			ttl = flagTokenTTL
		}
		tok, exp, err := authService.NewTokenService(cfg.Auth.JWTSecret, ttl).Sign(*u)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, tok)
		fmt.Fprintf(out, "# role=%s expires=%s\n", u.Role, exp.Format(time.RFC3339))
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVar(&flagTokenUser, "user", "", "User name or email")
	tokenCmd.Flags().DurationVar(&flagTokenTTL, "ttl", 0, "Token lifetime (default: auth.token_ttl)")
}
