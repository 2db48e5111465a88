package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/renoribeiro/whatsapp-automation-v0-sub001/internal/cli/ui"
	"github.com/renoribeiro/whatsapp-automation-v0-sub001/internal/session"
)

// logoutCmd is the logout command
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "discard the stored session",
	Long: `Remove the locally stored session token.

The server-side token is not revoked; it simply stops being used. Run
'wactl login' to authenticate again.`,
	Example: `  # Discard the stored session
  $ wactl logout`,
	Args: cobra.NoArgs,
	RunE: runLogout,
}

func init() {
	logoutCmd.SilenceUsage = true
}

func runLogout(cmd *cobra.Command, args []string) error {
	store := session.NewStore()

	sess, err := store.Load()
	if err != nil {
		ui.PrintError("failed to load session: %v", err)
		return fmt.Errorf("session load failed")
	}
	if sess == nil {
		ui.PrintInfo("No stored session, nothing to do.")
		return nil
	}

	if err := store.Clear(); err != nil {
		ui.PrintError("failed to clear session: %v", err)
		return fmt.Errorf("logout failed")
	}

	ui.PrintSuccess("Logged out %s", sess.User.Email)
	return nil
}
