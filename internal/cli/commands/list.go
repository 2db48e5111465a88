package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/renoribeiro/whatsapp-automation-v0-sub001/internal/api"
	"github.com/renoribeiro/whatsapp-automation-v0-sub001/internal/cli/ui"
	"github.com/renoribeiro/whatsapp-automation-v0-sub001/internal/domain"
)

var (
	listStatus   string
	listAssignee string
)

// listCmd groups the read-only resource listings.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "list platform resources",
	Long: `List platform resources in aligned tables.

Each subcommand fetches one resource collection from the API server and
renders it for the terminal.`,
	Example: `  # List active conversations
  $ wactl list conversations --status active

  # List conversations assigned to a seller
  $ wactl list conversations --assignee <user-id>

  # List companies, users, agencies or WhatsApp connections
  $ wactl list companies
  $ wactl list users
  $ wactl list agencies
  $ wactl list connections`,
}

var listConversationsCmd = &cobra.Command{
	Use:   "conversations",
	Short: "list chat conversations",
	Args:  cobra.NoArgs,
	RunE:  runListConversations,
}

var listUsersCmd = &cobra.Command{
	Use:   "users",
	Short: "list dashboard users",
	Args:  cobra.NoArgs,
	RunE:  runListUsers,
}

var listCompaniesCmd = &cobra.Command{
	Use:   "companies",
	Short: "list companies",
	Args:  cobra.NoArgs,
	RunE:  runListCompanies,
}

var listAgenciesCmd = &cobra.Command{
	Use:   "agencies",
	Short: "list agencies",
	Args:  cobra.NoArgs,
	RunE:  runListAgencies,
}

var listConnectionsCmd = &cobra.Command{
	Use:   "connections",
	Short: "list WhatsApp connections",
	Args:  cobra.NoArgs,
	RunE:  runListConnections,
}

func init() {
	listConversationsCmd.Flags().StringVar(&listStatus, "status", "", "Filter by status (active, pending, archived)")
	listConversationsCmd.Flags().StringVar(&listAssignee, "assignee", "", "Filter by assigned user id")

	for _, c := range []*cobra.Command{
		listConversationsCmd, listUsersCmd, listCompaniesCmd, listAgenciesCmd, listConnectionsCmd,
	} {
		c.SilenceUsage = true
		listCmd.AddCommand(c)
	}
	listCmd.SilenceUsage = true
}

// listContext prepares the config, client and request context shared by
// every listing.
func listContext() (context.Context, context.CancelFunc, *api.Client, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, nil, err
	}
	apiClient, _, err := authedClient(cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), cfg.API.Timeout)
	return ctx, cancel, apiClient, nil
}

func runListConversations(cmd *cobra.Command, args []string) error {
	ctx, cancel, apiClient, err := listContext()
	if err != nil {
		return err
	}
	defer cancel()

	filter := api.ConversationFilter{
		Status:         domain.ConversationStatus(listStatus),
		AssignedUserID: listAssignee,
	}
	conversations, err := apiClient.ListConversations(ctx, filter)
	if err != nil {
		return reportAPIError("list conversations", err)
	}

	rows := make([][]string, 0, len(conversations))
	for _, c := range conversations {
		last := "-"
		if c.LastMessageAt != nil {
			last = c.LastMessageAt.Local().Format("Jan 2 15:04")
		}
		rows = append(rows, []string{c.ID, c.ContactName, c.ContactPhone, string(c.Status), last})
	}

	fmt.Println()
	fmt.Println(ui.RenderTable([]string{"ID", "CONTACT", "PHONE", "STATUS", "LAST MESSAGE"}, rows))
	return nil
}

func runListUsers(cmd *cobra.Command, args []string) error {
	ctx, cancel, apiClient, err := listContext()
	if err != nil {
		return err
	}
	defer cancel()

	users, err := apiClient.ListUsers(ctx)
	if err != nil {
		return reportAPIError("list users", err)
	}

	rows := make([][]string, 0, len(users))
	for _, u := range users {
		rows = append(rows, []string{u.ID, u.FullName(), u.Email, string(u.Role)})
	}

	fmt.Println()
	fmt.Println(ui.RenderTable([]string{"ID", "NAME", "EMAIL", "ROLE"}, rows))
	return nil
}

func runListCompanies(cmd *cobra.Command, args []string) error {
	ctx, cancel, apiClient, err := listContext()
	if err != nil {
		return err
	}
	defer cancel()

	companies, err := apiClient.ListCompanies(ctx)
	if err != nil {
		return reportAPIError("list companies", err)
	}

	rows := make([][]string, 0, len(companies))
	for _, c := range companies {
		rows = append(rows, []string{c.ID, c.Name, c.Phone, activeLabel(c.Active)})
	}

	fmt.Println()
	fmt.Println(ui.RenderTable([]string{"ID", "NAME", "PHONE", "ACTIVE"}, rows))
	return nil
}

func runListAgencies(cmd *cobra.Command, args []string) error {
	ctx, cancel, apiClient, err := listContext()
	if err != nil {
		return err
	}
	defer cancel()

	agencies, err := apiClient.ListAgencies(ctx)
	if err != nil {
		return reportAPIError("list agencies", err)
	}

	rows := make([][]string, 0, len(agencies))
	for _, a := range agencies {
		rows = append(rows, []string{a.ID, a.Name, a.Email, activeLabel(a.Active)})
	}

	fmt.Println()
	fmt.Println(ui.RenderTable([]string{"ID", "NAME", "EMAIL", "ACTIVE"}, rows))
	return nil
}

func runListConnections(cmd *cobra.Command, args []string) error {
	ctx, cancel, apiClient, err := listContext()
	if err != nil {
		return err
	}
	defer cancel()

	connections, err := apiClient.ListWhatsAppConnections(ctx)
	if err != nil {
		return reportAPIError("list connections", err)
	}

	rows := make([][]string, 0, len(connections))
	for _, c := range connections {
		lastSeen := "-"
		if c.LastSeenAt != nil {
			lastSeen = c.LastSeenAt.Local().Format(time.RFC822)
		}
		rows = append(rows, []string{c.ID, c.PhoneNumber, c.Status, lastSeen})
	}

	fmt.Println()
	fmt.Println(ui.RenderTable([]string{"ID", "PHONE", "STATUS", "LAST SEEN"}, rows))
	return nil
}

func activeLabel(active bool) string {
	if active {
		return "yes"
	}
	return "no"
}
