package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/renoribeiro/whatsapp-automation-v0-sub001/internal/cli/ui"
)

var assignUserID string

// assignCmd is the assign command
var assignCmd = &cobra.Command{
	Use:   "assign <conversation-id>",
	Short: "assign a conversation to a user",
	Long: `Assign a conversation to a dashboard user.

The assigned user becomes responsible for the conversation and sees it
in their queue. Without --user the conversation is assigned to the
authenticated user.`,
	Example: `  # Take a conversation yourself
  $ wactl assign 8a2f...

  # Hand a conversation to another seller
  $ wactl assign 8a2f... --user 91bc...`,
	Args: cobra.ExactArgs(1),
	RunE: runAssign,
}

func init() {
	assignCmd.Flags().StringVarP(&assignUserID, "user", "u", "", "User to assign the conversation to (defaults to yourself)")
	assignCmd.SilenceUsage = true
}

func runAssign(cmd *cobra.Command, args []string) error {
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

	conversationID := args[0]
	userID := assignUserID
	if userID == "" {
		userID = sess.User.ID
	}

	conversation, err := apiClient.AssignConversation(ctx, conversationID, userID)
	if err != nil {
		return reportAPIError("assign conversation", err)
	}

	ui.PrintSuccess("Assigned conversation with %s to user %s", conversation.ContactName, userID)
	return nil
}
