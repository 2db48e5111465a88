package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/renoribeiro/whatsapp-automation-v0-sub001/internal/cli/tui"
	"github.com/renoribeiro/whatsapp-automation-v0-sub001/internal/cli/ui"
	"github.com/renoribeiro/whatsapp-automation-v0-sub001/internal/engine"
	"github.com/renoribeiro/whatsapp-automation-v0-sub001/internal/transport"
	"github.com/renoribeiro/whatsapp-automation-v0-sub001/pkg/logger"
)

// chatCmd is the chat command
var chatCmd = &cobra.Command{
	Use:   "chat <conversation-id>",
	Short: "open a realtime chat session",
	Long: `Open a realtime chat session for one conversation.

Connects to the platform's WebSocket gateway and keeps the message log
live: outbound messages show delivery ticks as they progress, inbound
messages appear as the contact sends them, and a typing indicator shows
when the contact is writing. If the connection drops, the client retries
a few times at a fixed interval before giving up.`,
	Example: `  # Open a chat for a conversation
  $ wactl chat 8a2f...

  # Keyboard controls:
  • Enter sends the typed message
  • Esc or Ctrl+C closes the session`,
	Args: cobra.ExactArgs(1),
	RunE: runChat,
}

func init() {
	chatCmd.SilenceUsage = true
}

func runChat(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := logger.Setup(cfg.Log); err != nil {
		ui.PrintError("failed to set up logging: %v", err)
		return fmt.Errorf("logger setup failed")
	}

	apiClient, sess, err := authedClient(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.API.Timeout)
	defer cancel()

	conversation, err := apiClient.GetConversation(ctx, args[0])
	if err != nil {
		return reportAPIError("fetch conversation", err)
	}

	eng := engine.New(conversation.ID, engine.Options{
		TypingTimeout: cfg.Realtime.TypingTimeout,
		Receipts:      engine.NewSimulatedReceipts(cfg.Realtime.DeliveredAfter, cfg.Realtime.ReadAfter),
	})
	tr := eng.AttachTransport(cfg.WebSocketURL(), transport.Options{
		ReconnectAttempts: cfg.Realtime.ReconnectAttempts,
		ReconnectInterval: cfg.Realtime.ReconnectInterval,
	})
	defer eng.Close()

	ui.PrintChatBanner(conversation.ContactName)

	program := tui.NewChatProgram(eng, tr, tui.ChatInfo{
		ContactName:  conversation.ContactName,
		ContactPhone: conversation.ContactPhone,
		AgentName:    sess.User.FullName(),
	})
	if err := program.Run(); err != nil {
		return fmt.Errorf("failed to run chat TUI: %w", err)
	}

	return nil
}
