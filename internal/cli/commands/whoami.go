package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/spf13/cobra"

	"github.com/renoribeiro/whatsapp-automation-v0-sub001/internal/cli/ui"
)

// whoamiCmd is the whoami command
var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "show the authenticated user",
	Long: `Show the profile behind the stored session.

The profile is fetched fresh from the API server, so this also serves as
a quick check that the stored token is still accepted.`,
	Example: `  # Show who is logged in
  $ wactl whoami`,
	Args: cobra.NoArgs,
	RunE: runWhoami,
}

func init() {
	whoamiCmd.SilenceUsage = true
}

func runWhoami(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	apiClient, sess, err := authedClient(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.API.Timeout)
	defer cancel()

	profile, err := apiClient.Me(ctx)
	if err != nil {
		return reportAPIError("fetch profile", err)
	}

	fmt.Println()
	ui.PrintBold(profile.FullName())
	fmt.Printf("  Email:   %s\n", profile.Email)
	fmt.Printf("  Role:    %s\n", profile.Role)
	fmt.Printf("  User ID: %s\n", profile.ID)
	if exp := tokenExpiry(sess.Token); !exp.IsZero() {
		fmt.Printf("  Token:   expires %s\n", exp.Local().Format(time.RFC1123))
	}

	return nil
}

// tokenExpiry extracts the exp claim without verifying the signature.
// Display only; the server remains the authority on token validity.
func tokenExpiry(token string) time.Time {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return time.Time{}
	}
	exp, ok := claims["exp"].(float64)
	if !ok {
		return time.Time{}
	}
	return time.Unix(int64(exp), 0)
}
