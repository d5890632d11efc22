package tui

import (
	"context"

	"github.com/rshade/catalogctl/internal/api"
	"github.com/rshade/catalogctl/internal/forms"
	"github.com/rshade/catalogctl/internal/tui/detail"
)

// Editor adds and edits records of a resource through a modal form.
type Editor struct {
	// Schema returns the add (edit=false) or edit form.
	Schema func(edit bool) forms.Schema
	// Validate checks submitted values without side effects.
	Validate func(values forms.Values) error
	// Save creates (id == "") or updates a record.
	Save func(ctx context.Context, id string, values forms.Values) error
}

// Resource describes one console screen.
type Resource struct {
	// Name identifies the collection, e.g. "portfolios".
	Name string
	// Title is the tab label.
	Title   string
	Fetcher api.Fetcher
	// Load fetches a full record for the detail view. Optional.
	Load detail.Loader
	// Editor enables add and edit. Optional.
	Editor *Editor
	// Remove deletes a record. Optional.
	Remove func(ctx context.Context, id string) error
}

// PortfolioResource is the portfolio screen.
func PortfolioResource(c *api.Client) Resource {
	return Resource{
		Name:    "portfolios",
		Title:   "Portfolios",
		Fetcher: c.Fetcher(c.PortfoliosCollection()),
		Load:    c.GetPortfolio,
		Editor: &Editor{
			Schema: forms.PortfolioSchema,
			Validate: func(values forms.Values) error {
				_, err := forms.DecodePortfolio(values)
				return err
			},
			Save: func(ctx context.Context, id string, values forms.Values) error {
				in, err := forms.DecodePortfolio(values)
				if err != nil {
					return err
				}
				if id == "" {
					_, err = c.CreatePortfolio(ctx, in)
				} else {
					_, err = c.UpdatePortfolio(ctx, id, in)
				}
				return err
			},
		},
		Remove: c.RemovePortfolio,
	}
}

// ProductResource is the portfolio items screen.
func ProductResource(c *api.Client) Resource {
	return Resource{
		Name:    "portfolio_items",
		Title:   "Products",
		Fetcher: c.Fetcher(c.PortfolioItemsCollection("")),
	}
}

// PlatformItemResource is the service offerings screen of one source.
func PlatformItemResource(c *api.Client, platformID string) Resource {
	return Resource{
		Name:    "service_offerings",
		Title:   "Platform items",
		Fetcher: c.Fetcher(c.PlatformItemsCollection(platformID)),
	}
}

// WorkflowResource is the approval process screen.
func WorkflowResource(c *api.Client) Resource {
	return Resource{
		Name:    "workflows",
		Title:   "Approval processes",
		Fetcher: c.Fetcher(c.WorkflowsCollection()),
		Load: func(ctx context.Context, id string) (api.Item, error) {
			var item api.Item
			wf, err := c.FetchWorkflow(ctx, id)
			if err != nil {
				return item, err
			}
			return wf.Item(), nil
		},
		Editor: &Editor{
			Schema: forms.WorkflowSchema,
			Validate: func(values forms.Values) error {
				_, err := forms.DecodeWorkflow(values)
				return err
			},
			Save: func(ctx context.Context, id string, values forms.Values) error {
				in, err := forms.DecodeWorkflow(values)
				if err != nil {
					return err
				}
				if id == "" {
					_, err = c.AddWorkflow(ctx, in)
				} else {
					_, err = c.UpdateWorkflow(ctx, id, in)
				}
				return err
			},
		},
		Remove: c.DestroyWorkflow,
	}
}
