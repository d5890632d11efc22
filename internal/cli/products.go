package cli

import (
	"github.com/spf13/cobra"
)

// newProductsCmd creates the products command group (portfolio items).
func newProductsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "products",
		Aliases: []string{"portfolio-items"},
		Short:   "Browse products",
	}

	var (
		params    *listParams
		portfolio string
	)
	list := &cobra.Command{
		Use:   "list",
		Short: "List products, optionally of one portfolio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := clientFromConfig()
			if err != nil {
				return err
			}
			return runList(cmd, "portfolio_items", c.Fetcher(c.PortfolioItemsCollection(portfolio)), params)
		},
	}
	params = addListFlags(list)
	list.Flags().StringVar(&portfolio, "portfolio", "", "only list products of this portfolio ID")

	cmd.AddCommand(list)
	return cmd
}

// newPlatformItemsCmd creates the platform-items command group (service
// offerings of a source platform).
func newPlatformItemsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "platform-items",
		Short: "Browse service offerings of a source platform",
	}

	var (
		params   *listParams
		platform string
	)
	list := &cobra.Command{
		Use:   "list",
		Short: "List live service offerings of a platform",
		Example: `  # Offerings of source 12 whose name contains "vm"
  catalogctl platform-items list --platform 12 --filter vm`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := clientFromConfig()
			if err != nil {
				return err
			}
			return runList(cmd, "service_offerings", c.Fetcher(c.PlatformItemsCollection(platform)), params)
		},
	}
	params = addListFlags(list)
	list.Flags().StringVar(&platform, "platform", "", "source platform ID (required)")
	_ = list.MarkFlagRequired("platform")

	cmd.AddCommand(list)
	return cmd
}

// newTemplatesCmd creates the templates command group.
func newTemplatesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "templates",
		Short: "Browse approval templates",
	}

	var params *listParams
	list := &cobra.Command{
		Use:   "list",
		Short: "List approval templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := clientFromConfig()
			if err != nil {
				return err
			}
			return runList(cmd, "templates", c.Fetcher(c.TemplatesCollection()), params)
		},
	}
	params = addListFlags(list)

	cmd.AddCommand(list)
	return cmd
}
