package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// Portfolio is a named collection of products.
type Portfolio struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Owner       string `json:"owner,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
	UpdatedAt   string `json:"updated_at,omitempty"`
}

// PortfolioInput is the writable part of a portfolio.
type PortfolioInput struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// PortfoliosCollection is the portfolio list endpoint.
func (c *Client) PortfoliosCollection() Collection {
	return Collection{Name: "portfolios", URL: c.catalogBase + "/portfolios", Style: CatalogStyle}
}

// PortfolioItemsCollection lists products. When portfolioID is set only that
// portfolio's items are listed.
func (c *Client) PortfolioItemsCollection(portfolioID string) Collection {
	if portfolioID == "" {
		return Collection{Name: "portfolio_items", URL: c.catalogBase + "/portfolio_items", Style: CatalogStyle}
	}
	return Collection{
		Name:  "portfolio_items",
		URL:   fmt.Sprintf("%s/portfolios/%s/portfolio_items", c.catalogBase, url.PathEscape(portfolioID)),
		Style: CatalogStyle,
	}
}

// GetPortfolio loads one portfolio.
func (c *Client) GetPortfolio(ctx context.Context, id string) (Item, error) {
	if id == "" {
		return Item{}, ErrMissingID
	}
	var item Item
	err := c.getJSON(ctx, c.portfolioURL(id), &item)
	return item, err
}

// CreatePortfolio creates a portfolio and returns the stored resource.
func (c *Client) CreatePortfolio(ctx context.Context, in PortfolioInput) (Portfolio, error) {
	var out Portfolio
	err := c.sendJSON(ctx, http.MethodPost, c.catalogBase+"/portfolios", in, &out)
	return out, err
}

// UpdatePortfolio patches a portfolio.
func (c *Client) UpdatePortfolio(ctx context.Context, id string, in PortfolioInput) (Portfolio, error) {
	if id == "" {
		return Portfolio{}, ErrMissingID
	}
	var out Portfolio
	err := c.sendJSON(ctx, http.MethodPatch, c.portfolioURL(id), in, &out)
	return out, err
}

// RemovePortfolio deletes a portfolio.
func (c *Client) RemovePortfolio(ctx context.Context, id string) error {
	if id == "" {
		return ErrMissingID
	}
	return c.sendJSON(ctx, http.MethodDelete, c.portfolioURL(id), nil, nil)
}

func (c *Client) portfolioURL(id string) string {
	return fmt.Sprintf("%s/portfolios/%s", c.catalogBase, url.PathEscape(id))
}
