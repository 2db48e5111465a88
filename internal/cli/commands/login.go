package commands

import (
	"context"
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/renoribeiro/whatsapp-automation-v0-sub001/internal/api"
	"github.com/renoribeiro/whatsapp-automation-v0-sub001/internal/cli/ui"
	"github.com/renoribeiro/whatsapp-automation-v0-sub001/internal/session"
)

var (
	loginServer string
	loginEmail  string
)

// loginCmd is the login command
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "authenticate with the API server",
	Long: `Authenticate with the platform API server and save the session locally.

Your authentication token will be stored in ~/.wactl/session.json and used
automatically for all subsequent commands. The token remains valid until
it expires or you login again.

If --server is not provided, the configured API base URL is used.`,
	Example: `  # Login to the configured server
  $ wactl login

  # Login to a specific server
  $ wactl login -s https://api.example.com

  # Login with email (will prompt for password)
  $ wactl login -e ana@example.com`,
	Args: cobra.NoArgs,
	RunE: runLogin,
}

func init() {
	loginCmd.Flags().StringVarP(&loginServer, "server", "s", "", "API server URL (defaults to configured base URL)")
	loginCmd.Flags().StringVarP(&loginEmail, "email", "e", "", "Email for authentication")

	// Silence usage to avoid showing help on every error
	loginCmd.SilenceUsage = true
}

func runLogin(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.API.Timeout)
	defer cancel()

	server := loginServer
	if server == "" {
		server = cfg.API.BaseURL
	}

	// 1. Prompt for email if not provided
	if loginEmail == "" {
		prompt := &survey.Input{
			Message: "Email:",
		}
		if err := survey.AskOne(prompt, &loginEmail, survey.WithValidator(survey.Required)); err != nil {
			ui.PrintError("failed to read email: %v", err)
			return fmt.Errorf("input failed")
		}
	}

	// 2. Prompt for password (hidden input)
	var password string
	prompt := &survey.Password{
		Message: "Password:",
	}
	if err := survey.AskOne(prompt, &password, survey.WithValidator(survey.Required)); err != nil {
		ui.PrintError("failed to read password: %v", err)
		return fmt.Errorf("input failed")
	}

	// 3. Create API client
	apiClient, err := api.NewClient(server, "")
	if err != nil {
		ui.PrintError("failed to create client: %v", err)
		return fmt.Errorf("client creation failed")
	}

	ui.PrintInfo("Connecting to %s...", server)

	// 4. Call login API
	sess, err := apiClient.Login(ctx, loginEmail, password)
	if err != nil {
		ui.PrintErrorBox("Login Failed", err.Error())
		return fmt.Errorf("authentication failed")
	}

	// 5. Save session to local file
	store := session.NewStore()
	if err := store.Save(sess); err != nil {
		ui.PrintError("failed to save session: %v", err)
		return fmt.Errorf("session save failed")
	}

	// 6. Display success message
	successContent := fmt.Sprintf(`Name:     %s
Email:    %s
Role:     %s
User ID:  %s`,
		sess.User.FullName(),
		sess.User.Email,
		sess.User.Role,
		sess.User.ID,
	)

	ui.PrintSuccessBox("✓ Login Successful", successContent)

	// 7. Display usage hints
	fmt.Println()
	ui.PrintInfo("You can now use the following commands:")
	ui.PrintBold("  wactl list conversations   # List chat conversations")
	ui.PrintBold("  wactl chat <id>            # Open a realtime chat")

	return nil
}
