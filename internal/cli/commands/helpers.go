package commands

import (
	"fmt"

	"github.com/renoribeiro/whatsapp-automation-v0-sub001/internal/api"
	"github.com/renoribeiro/whatsapp-automation-v0-sub001/internal/cli/ui"
	"github.com/renoribeiro/whatsapp-automation-v0-sub001/internal/config"
	"github.com/renoribeiro/whatsapp-automation-v0-sub001/internal/domain"
	"github.com/renoribeiro/whatsapp-automation-v0-sub001/internal/session"
)

// loadConfig loads and validates the client configuration.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		ui.PrintError("failed to load config: %v", err)
		return nil, fmt.Errorf("config load failed")
	}
	return cfg, nil
}

// authedClient loads the stored session and returns an API client that
// sends it as a bearer token. Commands that talk to the backend go
// through here so the "please login first" path stays uniform.
func authedClient(cfg *config.Config) (*api.Client, *domain.Session, error) {
	store := session.NewStore()
	sess, err := store.Load()
	if err != nil {
		ui.PrintError("failed to load session: %v", err)
		return nil, nil, fmt.Errorf("session load failed")
	}
	if sess == nil {
		ui.PrintError("not authenticated, please login first")
		fmt.Println("\nRun 'wactl login' to authenticate.")
		return nil, nil, domain.ErrNoSession
	}

	client, err := api.NewClient(cfg.API.BaseURL, sess.Token)
	if err != nil {
		ui.PrintError("failed to create client: %v", err)
		return nil, nil, fmt.Errorf("client creation failed")
	}
	return client, sess, nil
}

// reportAPIError prints an API failure the way a user should see it
// and returns a terse error for cobra.
func reportAPIError(action string, err error) error {
	switch {
	case domain.IsUnauthorized(err):
		ui.PrintError("session expired or insufficient permissions")
		fmt.Println("\nRun 'wactl login' to re-authenticate.")
	case domain.IsNetwork(err):
		ui.PrintError("could not reach the API server: %v", err)
	default:
		ui.PrintError("failed to %s: %v", action, err)
	}
	return fmt.Errorf("%s failed", action)
}
