package cli

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rshade/catalogctl/internal/config"
	"github.com/rshade/catalogctl/internal/logging"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// NewRootCmd creates the root command for catalogctl. It wires up project
// config resolution, logging and tracing, and the resource, console and
// config subcommands.
func NewRootCmd(ver string) *cobra.Command {
	var (
		logResult  *logging.LogPathResult
		projectDir string
	)

	cmd := &cobra.Command{
		Use:           "catalogctl",
		Short:         "Service catalog administration console",
		Long:          "catalogctl: manage portfolios, products and approval processes of a service catalog",
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			resolveProjectConfig(cmd, projectDir)
			result := setupLogging(cmd)
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return cleanupLogging(logResult)
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().StringVar(&projectDir, "project-dir", "",
		"directory holding a project-local .catalogctl/config.yaml")
	cmd.AddCommand(
		newPortfoliosCmd(), newProductsCmd(), newPlatformItemsCmd(),
		newWorkflowsCmd(), newTemplatesCmd(), newConsoleCmd(), newConfigCmd(),
	)

	return cmd
}

// resolveProjectConfig overlays a project-local config on the global one
// when a project directory is found.
func resolveProjectConfig(cmd *cobra.Command, flagValue string) {
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}
	dir := config.ResolveProjectDir(cmd.Context(), flagValue, cwd)
	config.SetResolvedProjectDir(dir)
	if dir != "" {
		config.SetGlobalConfig(config.NewWithProjectDir(cmd.Context(), dir))
	}
}

const rootCmdExample = `  # List portfolios whose name contains "dev"
  catalogctl portfolios list --filter dev

  # Show the second page of approval processes as JSON
  catalogctl workflows list --page 2 --page-size 20 --output json

  # Create an approval process with two approver groups
  catalogctl workflows add --name "Finance" --group "Finance=0b4c..." --group "Audit=9f1e..."

  # Open the interactive console on the approval processes screen
  catalogctl console --screen workflows

  # Initialize configuration
  catalogctl config init

  # Point catalogctl at a catalog service
  catalogctl config set api.catalog.url https://catalog.example.com/api/catalog`

// newConfigCmd creates the config command group with configuration subcommands.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(
		NewConfigInitCmd(), NewConfigSetCmd(), NewConfigGetCmd(),
		NewConfigListCmd(), NewConfigValidateCmd(),
	)
	return cmd
}
