package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rshade/catalogctl/internal/config"
	"github.com/rshade/catalogctl/internal/forms"
)

// newPortfoliosCmd creates the portfolios command group.
func newPortfoliosCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "portfolios",
		Aliases: []string{"portfolio"},
		Short:   "Manage portfolios",
	}
	cmd.AddCommand(
		newPortfoliosListCmd(), newPortfoliosShowCmd(), newPortfoliosAddCmd(),
		newPortfoliosEditCmd(), newPortfoliosRemoveCmd(),
	)
	return cmd
}

func newPortfoliosListCmd() *cobra.Command {
	var params *listParams
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List portfolios",
		Example: `  # Portfolios whose name contains "dev", newest first
  catalogctl portfolios list --filter dev --sort created_at:desc`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := clientFromConfig()
			if err != nil {
				return err
			}
			return runList(cmd, "portfolios", c.Fetcher(c.PortfoliosCollection()), params)
		},
	}
	params = addListFlags(cmd)
	return cmd
}

func newPortfoliosShowCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "show ID",
		Short: "Show every field of a portfolio",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := clientFromConfig()
			if err != nil {
				return err
			}
			item, err := c.GetPortfolio(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("fetching portfolio %s: %w", args[0], err)
			}
			return renderItem(cmd.OutOrStdout(), item, output, time.Now())
		},
	}
	cmd.Flags().StringVar(&output, "output", config.GetDefaultOutputFormat(), "Output format: table, json, or ndjson")
	return cmd
}

func newPortfoliosAddCmd() *cobra.Command {
	var name, description string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a portfolio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in, err := forms.DecodePortfolio(forms.Values{
				forms.FieldName:        name,
				forms.FieldDescription: description,
			})
			if err != nil {
				return err
			}
			c, err := clientFromConfig()
			if err != nil {
				return err
			}
			p, err := c.CreatePortfolio(cmd.Context(), in)
			if err != nil {
				return fmt.Errorf("creating portfolio: %w", err)
			}
			cmd.Printf("Portfolio %q created (id %s)\n", p.Name, p.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "portfolio name (required)")
	cmd.Flags().StringVar(&description, "description", "", "portfolio description")
	return cmd
}

func newPortfoliosEditCmd() *cobra.Command {
	var name, description string
	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Change the name or description of a portfolio",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := clientFromConfig()
			if err != nil {
				return err
			}
			current, err := c.GetPortfolio(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("fetching portfolio %s: %w", args[0], err)
			}

			values := forms.Values{
				forms.FieldName:        current.Display(forms.FieldName),
				forms.FieldDescription: current.Display(forms.FieldDescription),
			}
			if cmd.Flags().Changed("name") {
				values[forms.FieldName] = name
			}
			if cmd.Flags().Changed("description") {
				values[forms.FieldDescription] = description
			}
			in, err := forms.DecodePortfolio(values)
			if err != nil {
				return err
			}

			p, err := c.UpdatePortfolio(cmd.Context(), args[0], in)
			if err != nil {
				return fmt.Errorf("updating portfolio %s: %w", args[0], err)
			}
			cmd.Printf("Portfolio %q updated\n", p.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "new portfolio name")
	cmd.Flags().StringVar(&description, "description", "", "new portfolio description")
	return cmd
}

func newPortfoliosRemoveCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "remove ID",
		Short: "Remove a portfolio",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, err := confirmRemoval(cmd, yes, "portfolio "+args[0])
			if err != nil || !ok {
				return err
			}
			c, err := clientFromConfig()
			if err != nil {
				return err
			}
			if err = c.RemovePortfolio(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("removing portfolio %s: %w", args[0], err)
			}
			cmd.Printf("Portfolio %s removed\n", args[0])
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "remove without asking for confirmation")
	return cmd
}
