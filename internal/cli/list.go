package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/catalogctl/internal/api"
	"github.com/rshade/catalogctl/internal/config"
	"github.com/rshade/catalogctl/internal/listview"
	"github.com/rshade/catalogctl/internal/logging"
	"github.com/rshade/catalogctl/internal/pagination"
	"github.com/rshade/catalogctl/internal/store"
)

// listParams holds the flags shared by every list command.
type listParams struct {
	filter string
	output string
	page   *pagination.Params
}

// addListFlags registers filter, pagination, sort and output flags.
func addListFlags(cmd *cobra.Command) *listParams {
	params := &listParams{page: pagination.NewParams(config.GetDefaultLimit())}

	// Use configuration default if no output format specified
	defaultFormat := config.GetDefaultOutputFormat()
	cmd.Flags().StringVar(&params.output, "output", defaultFormat, "Output format: table, json, or ndjson")
	cmd.Flags().StringVar(&params.filter, "filter", "", "Only list records whose name contains this text")
	cmd.Flags().IntVar(&params.page.Limit, "limit", params.page.Limit,
		"Number of records per request in offset-based pagination")
	cmd.Flags().IntVar(&params.page.Offset, "offset", 0,
		"Number of records to skip, rounded down to a page boundary")
	cmd.Flags().IntVar(&params.page.Page, "page", 0,
		"Page number for page-based pagination (1-indexed, 0 = disabled)")
	cmd.Flags().IntVar(&params.page.PageSize, "page-size", 0,
		"Number of records per page (requires --page)")
	cmd.Flags().StringVar(&params.page.Sort, "sort", "",
		"Sort the returned page by a column (e.g., 'name', 'created_at:desc')")
	return params
}

// validate checks flag values before any request is made.
func (p *listParams) validate() error {
	if err := p.page.Validate(); err != nil {
		return err
	}
	switch p.output {
	case listview.FormatTable, listview.FormatJSON, listview.FormatNDJSON:
		return nil
	default:
		return fmt.Errorf("unsupported output format %q: use table, json, or ndjson", p.output)
	}
}

// runList fetches one page of resource through the store and renders it.
func runList(cmd *cobra.Command, resource string, fetcher api.Fetcher, params *listParams) error {
	if err := params.validate(); err != nil {
		return err
	}
	sorter, err := pagination.NewItemSorter(params.page.Sort)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	log := logging.FromContext(ctx)
	window := params.page.Window()
	log.Debug().Ctx(ctx).
		Str("resource", resource).
		Str("filter", params.filter).
		Int("limit", window.Limit).
		Int("offset", window.Offset).
		Msg("listing")

	st := store.New()
	result, err := st.Fetch(ctx, fetcher, params.filter, window)
	if err != nil {
		log.Error().Ctx(ctx).Err(err).Str("resource", resource).Msg("list request failed")
		return fmt.Errorf("listing %s: %w", resource, err)
	}

	items := result.Items
	if sorter.Field != "" && len(items) > 0 {
		if !sorter.IsValidField(items, sorter.Field) {
			return fmt.Errorf("cannot sort by %q: not a column of %s", sorter.Field, resource)
		}
		items = sorter.Sort(items)
	}

	view := listview.View{Resource: resource, Items: items, Meta: result.Meta}
	return listview.Render(cmd.OutOrStdout(), view, params.output)
}
