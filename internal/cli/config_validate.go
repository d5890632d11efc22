package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/catalogctl/internal/config"
)

// NewConfigValidateCmd creates the config validate command for validating configuration.
func NewConfigValidateCmd() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		Long: `Validates the effective configuration: the global file, any project
overlay and environment overrides.

This includes:
- Service URLs and semantic API versions
- Timeout, pagination and console ranges
- Output and logging settings`,
		Example: `  # Validate current configuration
  catalogctl config validate

  # Validate and show detailed information
  catalogctl config validate --verbose`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigValidate(cmd, config.GetGlobalConfig(), verbose)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show detailed validation information")

	return cmd
}

// runConfigValidate executes the configuration validation logic.
func runConfigValidate(cmd *cobra.Command, cfg *config.Config, verbose bool) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	cmd.Printf("Configuration is valid\n")

	if verbose {
		printVerboseDetails(cmd, cfg)
	}

	return nil
}

// printVerboseDetails prints detailed configuration information.
func printVerboseDetails(cmd *cobra.Command, cfg *config.Config) {
	cmd.Println()
	cmd.Println("Configuration details:")
	for _, svc := range []struct {
		name string
		cfg  config.ServiceConfig
	}{
		{"Catalog", cfg.API.Catalog},
		{"Approval", cfg.API.Approval},
		{"Inventory", cfg.API.Inventory},
	} {
		base, _ := svc.cfg.BaseURL()
		cmd.Printf("  %s API: %s\n", svc.name, base)
	}
	cmd.Printf("  Token configured: %t\n", cfg.API.Token != "")
	cmd.Printf("  Request timeout: %ds\n", cfg.API.TimeoutSeconds)
	cmd.Printf("  Default page size: %d\n", cfg.Pagination.DefaultLimit)
	cmd.Printf("  Output format: %s\n", cfg.Output.DefaultFormat)
	cmd.Printf("  Logging level: %s\n", cfg.Logging.Level)
	if cfg.Logging.File != "" {
		cmd.Printf("  Log file: %s\n", cfg.Logging.File)
	}
	if dir := config.GetResolvedProjectDir(); dir != "" {
		cmd.Printf("  Project config: %s\n", dir)
	}
}
