package cli

import (
	"fmt"
	"time"

	"github.com/rshade/catalogctl/internal/api"
	"github.com/rshade/catalogctl/internal/config"
)

// newClient builds an API client from the active configuration.
func newClient(cfg *config.Config) (*api.Client, error) {
	catalog, err := cfg.API.Catalog.BaseURL()
	if err != nil {
		return nil, fmt.Errorf("catalog service: %w", err)
	}
	approval, err := cfg.API.Approval.BaseURL()
	if err != nil {
		return nil, fmt.Errorf("approval service: %w", err)
	}
	inventory, err := cfg.API.Inventory.BaseURL()
	if err != nil {
		return nil, fmt.Errorf("inventory service: %w", err)
	}

	return api.NewClient(api.Options{
		CatalogBaseURL:   catalog,
		ApprovalBaseURL:  approval,
		InventoryBaseURL: inventory,
		Token:            cfg.API.Token,
		Timeout:          time.Duration(cfg.API.TimeoutSeconds) * time.Second,
	})
}

// clientFromConfig builds a client from the global configuration.
func clientFromConfig() (*api.Client, error) {
	return newClient(config.GetGlobalConfig())
}
