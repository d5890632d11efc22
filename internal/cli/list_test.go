package cli_test

import (
	"encoding/json"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const portfoliosBody = `{
  "data": [
    {"id": "1", "name": "Dev", "description": "Development"},
    {"id": "2", "name": "Prod", "description": "Production"}
  ],
  "meta": {"count": 2, "limit": 50, "offset": 0}
}`

func TestPortfoliosList_Table(t *testing.T) {
	fa := newFakeAPI(t, map[string]string{
		"GET /api/catalog/v1.0/portfolios": portfoliosBody,
	})

	out, err := runCLI(t, "portfolios", "list", "--filter", "de")
	require.NoError(t, err)

	lines := strings.Split(out, "\n")
	require.GreaterOrEqual(t, len(lines), 4)
	assert.Equal(t, []string{"ID", "NAME", "DESCRIPTION"}, strings.Fields(lines[0]))
	assert.Contains(t, out, "Development")
	assert.Contains(t, out, "Page 1 of 1 (2 items)")

	reqs := fa.recorded()
	require.Len(t, reqs, 1)
	q, err := url.ParseQuery(reqs[0].Query)
	require.NoError(t, err)
	assert.Equal(t, "de", q.Get("filter[name][contains_i]"))
	assert.Equal(t, "50", q.Get("limit"))
	assert.Equal(t, "0", q.Get("offset"))
}

func TestPortfoliosList_Empty(t *testing.T) {
	newFakeAPI(t, map[string]string{
		"GET /api/catalog/v1.0/portfolios": `{"data": [], "meta": {"count": 0, "limit": 50, "offset": 0}}`,
	})

	out, err := runCLI(t, "portfolios", "list")
	require.NoError(t, err)
	assert.Equal(t, "No portfolios\n", out)
}

func TestPortfoliosList_SortDescending(t *testing.T) {
	newFakeAPI(t, map[string]string{
		"GET /api/catalog/v1.0/portfolios": portfoliosBody,
	})

	out, err := runCLI(t, "portfolios", "list", "--sort", "name:desc")
	require.NoError(t, err)
	assert.Less(t, strings.Index(out, "Prod"), strings.Index(out, "Dev"))
}

func TestPortfoliosList_UnknownSortField(t *testing.T) {
	newFakeAPI(t, map[string]string{
		"GET /api/catalog/v1.0/portfolios": portfoliosBody,
	})

	_, err := runCLI(t, "portfolios", "list", "--sort", "owner")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `cannot sort by "owner"`)
}

func TestPortfoliosList_OffsetAlignedToPage(t *testing.T) {
	fa := newFakeAPI(t, map[string]string{
		"GET /api/catalog/v1.0/portfolios": `{"data": [], "meta": {"count": 0, "limit": 10, "offset": 20}}`,
	})

	_, err := runCLI(t, "portfolios", "list", "--limit", "10", "--offset", "25")
	require.NoError(t, err)

	q, err := url.ParseQuery(fa.recorded()[0].Query)
	require.NoError(t, err)
	assert.Equal(t, "20", q.Get("offset"))
}

func TestList_FlagErrorsStopBeforeRequest(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"page and offset", []string{"--page", "2", "--page-size", "10", "--offset", "5"}, "mutually exclusive"},
		{"page without size", []string{"--page", "2"}, "page-size must be specified"},
		{"limit too large", []string{"--limit", "5000"}, "limit must be between"},
		{"bad output", []string{"--output", "xml"}, "unsupported output format"},
		{"bad sort order", []string{"--sort", "name:up"}, "sort order"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fa := newFakeAPI(t, map[string]string{})
			_, err := runCLI(t, append([]string{"portfolios", "list"}, tt.args...)...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
			requireNoRequests(t, fa)
		})
	}
}

func TestWorkflowsList_PageBasedJSON(t *testing.T) {
	fa := newFakeAPI(t, map[string]string{
		"GET /api/approval/v1.2/workflows/": `{
		  "data": [{"id": "w1", "name": "Finance", "sequence": 1}],
		  "meta": {"count": 21, "limit": 20, "offset": 20}
		}`,
	})

	out, err := runCLI(t, "workflows", "list", "--page", "2", "--page-size", "20", "--output", "json", "--filter", "Fin")
	require.NoError(t, err)

	var doc struct {
		Data       []map[string]interface{} `json:"data"`
		Pagination struct {
			CurrentPage int `json:"current_page"`
			TotalPages  int `json:"total_pages"`
		} `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	require.Len(t, doc.Data, 1)
	assert.Equal(t, "Finance", doc.Data[0]["name"])
	assert.Equal(t, 2, doc.Pagination.CurrentPage)
	assert.Equal(t, 2, doc.Pagination.TotalPages)

	q, err := url.ParseQuery(fa.recorded()[0].Query)
	require.NoError(t, err)
	assert.Equal(t, "Fin", q.Get("name"))
	assert.Equal(t, "20", q.Get("page_size"))
	assert.Equal(t, "2", q.Get("page"))
}

func TestWorkflowsList_SmallLimitUsesMinimumPageSize(t *testing.T) {
	fa := newFakeAPI(t, map[string]string{
		"GET /api/approval/v1.2/workflows/": `{"data": [], "meta": {"count": 0, "limit": 10, "offset": 0}}`,
	})

	_, err := runCLI(t, "workflows", "list", "--limit", "5")
	require.NoError(t, err)

	q, err := url.ParseQuery(fa.recorded()[0].Query)
	require.NoError(t, err)
	assert.Equal(t, "10", q.Get("page_size"))
	assert.Equal(t, "1", q.Get("page"))
}

func TestProductsList_ByPortfolio(t *testing.T) {
	fa := newFakeAPI(t, map[string]string{
		"GET /api/catalog/v1.0/portfolios/p1/portfolio_items": `{"data": [], "meta": {"count": 0, "limit": 50, "offset": 0}}`,
	})

	out, err := runCLI(t, "products", "list", "--portfolio", "p1")
	require.NoError(t, err)
	assert.Equal(t, "No products\n", out)
	assert.Len(t, fa.recorded(), 1)
}

func TestPlatformItemsList(t *testing.T) {
	fa := newFakeAPI(t, map[string]string{
		"GET /api/topological-inventory/v1.0/sources/12/service_offerings": `[{"id": "o1", "name": "VM"}]`,
	})

	out, err := runCLI(t, "platform-items", "list", "--platform", "12", "--output", "ndjson")
	require.NoError(t, err)
	assert.JSONEq(t, `{"id": "o1", "name": "VM"}`, strings.TrimSpace(out))

	q, err := url.ParseQuery(fa.recorded()[0].Query)
	require.NoError(t, err)
	assert.True(t, q.Has("filter[archived_at][nil]"))
}

func TestPlatformItemsList_RequiresPlatform(t *testing.T) {
	fa := newFakeAPI(t, map[string]string{})

	_, err := runCLI(t, "platform-items", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "platform")
	requireNoRequests(t, fa)
}

func TestTemplatesList(t *testing.T) {
	newFakeAPI(t, map[string]string{
		"GET /api/approval/v1.2/templates/": `{"data": [{"id": "t1", "title": "Default"}], "meta": {"count": 1, "limit": 50, "offset": 0}}`,
	})

	out, err := runCLI(t, "templates", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "TITLE")
	assert.Contains(t, out, "Default")
}

func TestList_HTTPErrorIsReturned(t *testing.T) {
	newFakeAPI(t, map[string]string{})

	_, err := runCLI(t, "portfolios", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "listing portfolios")
	assert.Contains(t, err.Error(), "404")
}
