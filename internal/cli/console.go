package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rshade/catalogctl/internal/api"
	"github.com/rshade/catalogctl/internal/config"
	"github.com/rshade/catalogctl/internal/tui"
)

// errNotInteractive is returned when the console is started without a terminal.
var errNotInteractive = errors.New("the console needs an interactive terminal; use the list commands instead")

// newConsoleCmd creates the interactive console command.
func newConsoleCmd() *cobra.Command {
	var (
		screen   string
		platform string
	)
	cmd := &cobra.Command{
		Use:   "console",
		Short: "Open the interactive console",
		Long: `Opens a full-screen console with one tab per resource. Lists are
filterable (/), paginated (< h l >), sortable (s, o) and editable (a, e, x).
Press enter on a row to see every field and tab to switch screens.`,
		Example: `  # Start on the approval processes screen
  catalogctl console --screen workflows

  # Include the offerings of source 12 as an extra screen
  catalogctl console --platform 12`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !isTerminal(os.Stdout) || !isTerminal(os.Stdin) {
				return errNotInteractive
			}
			c, err := clientFromConfig()
			if err != nil {
				return err
			}
			app, err := newConsoleApp(cmd.Context(), c, config.GetGlobalConfig(), screen, platform)
			if err != nil {
				return err
			}
			if _, err = tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run(); err != nil {
				return fmt.Errorf("failed to run interactive console: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&screen, "screen", "", "initial screen: portfolios, products or workflows")
	cmd.Flags().StringVar(&platform, "platform", "", "add a platform items screen for this source ID")
	return cmd
}

// newConsoleApp builds the console screens from configuration.
func newConsoleApp(
	ctx context.Context,
	c *api.Client,
	cfg *config.Config,
	screen, platform string,
) (tui.AppModel, error) {
	opts := consoleOptions(cfg)

	resources := []tui.Resource{
		tui.PortfolioResource(c),
		tui.ProductResource(c),
		tui.WorkflowResource(c),
	}
	if platform != "" {
		resources = append(resources, tui.PlatformItemResource(c, platform))
	}

	screens := make([]*tui.ListModel, len(resources))
	for i, r := range resources {
		screens[i] = tui.NewListModel(ctx, r, opts)
	}
	return tui.NewAppModel(ctx, screens, consoleScreenName(screen))
}

// consoleOptions maps the console config section onto list options.
func consoleOptions(cfg *config.Config) tui.Options {
	return tui.Options{
		Limit:               cfg.Pagination.DefaultLimit,
		Debounce:            time.Duration(cfg.Console.DebounceMillis) * time.Millisecond,
		NotificationTimeout: time.Duration(cfg.Console.NotificationSeconds) * time.Second,
	}
}

// consoleScreenName accepts the CLI command names as screen names.
func consoleScreenName(screen string) string {
	switch screen {
	case "products":
		return "portfolio_items"
	case "platform-items":
		return "service_offerings"
	default:
		return screen
	}
}
