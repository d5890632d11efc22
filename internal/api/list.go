package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
)

// Query parameter names used by the collection endpoints.
const (
	ParamNameContains = "filter[name][contains_i]"
	ParamArchivedNil  = "filter[archived_at][nil]"
	ParamLimit        = "limit"
	ParamOffset       = "offset"
	ParamName         = "name"
	ParamPage         = "page"
	ParamPageSize     = "page_size"

	// MinApprovalPageSize is the smallest page the approval service is asked for.
	MinApprovalPageSize = 10
)

// Meta is the pagination metadata returned alongside a collection.
type Meta struct {
	Count  int `json:"count"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// ListResult is one page of a collection.
type ListResult struct {
	Items []Item `json:"data"`
	Meta  Meta   `json:"meta"`
}

// Page is a limit/offset window.
type Page struct {
	Limit  int
	Offset int
}

// Fetcher loads one page of a collection filtered by name.
type Fetcher interface {
	Fetch(ctx context.Context, filter string, page Page) (ListResult, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, filter string, page Page) (ListResult, error)

// Fetch calls f.
func (f FetcherFunc) Fetch(ctx context.Context, filter string, page Page) (ListResult, error) {
	return f(ctx, filter, page)
}

// QueryStyle selects how filter and pagination are encoded.
type QueryStyle int

const (
	// CatalogStyle encodes filter[name][contains_i], limit and offset.
	CatalogStyle QueryStyle = iota
	// ApprovalStyle encodes name, page_size and a 1-based page.
	ApprovalStyle
)

// Collection describes a list endpoint.
type Collection struct {
	// Name identifies the collection in logs and errors.
	Name string
	// URL is the absolute collection URL.
	URL string
	// Style selects the query encoding.
	Style QueryStyle
	// Fixed holds parameters sent with every request.
	Fixed url.Values
}

// Query builds the query string for a filter and page.
func (c Collection) Query(filter string, page Page) url.Values {
	q := url.Values{}
	for k, vs := range c.Fixed {
		for _, v := range vs {
			q.Add(k, v)
		}
	}

	switch c.Style {
	case ApprovalStyle:
		size := max(page.Limit, MinApprovalPageSize)
		q.Set(ParamName, filter)
		q.Set(ParamPageSize, strconv.Itoa(size))
		q.Set(ParamPage, strconv.Itoa(page.Offset/size+1))
	default:
		q.Set(ParamNameContains, filter)
		q.Set(ParamLimit, strconv.Itoa(page.Limit))
		q.Set(ParamOffset, strconv.Itoa(page.Offset))
	}
	return q
}

// decodeList normalises a collection response. A bare JSON array (or an
// envelope without meta) is accepted and given metadata derived from the
// request page.
func decodeList(body []byte, page Page) (ListResult, error) {
	trimmed := bytes.TrimSpace(body)
	var result ListResult

	if len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &result.Items); err != nil {
			return ListResult{}, fmt.Errorf("decoding collection: %w", err)
		}
		result.Meta = syntheticMeta(len(result.Items), page)
		return result, nil
	}

	var envelope struct {
		Data []Item `json:"data"`
		Meta *Meta  `json:"meta"`
	}
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return ListResult{}, fmt.Errorf("decoding collection: %w", err)
	}

	result.Items = envelope.Data
	if result.Items == nil {
		result.Items = []Item{}
	}
	if envelope.Meta != nil {
		result.Meta = *envelope.Meta
	} else {
		result.Meta = syntheticMeta(len(result.Items), page)
	}
	if result.Meta.Limit <= 0 {
		result.Meta.Limit = page.Limit
	}
	return result, nil
}

// syntheticMeta estimates metadata for a response without a total. A full
// page counts one extra item so the next page stays reachable; a short page
// ends the collection.
func syntheticMeta(n int, page Page) Meta {
	count := page.Offset + n
	if page.Limit > 0 && n >= page.Limit {
		count++
	}
	return Meta{Count: count, Limit: page.Limit, Offset: page.Offset}
}
