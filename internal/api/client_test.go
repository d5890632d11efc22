package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordedRequest is what the fake service saw.
type recordedRequest struct {
	Method string
	Path   string
	Query  string
	Body   string
	Header http.Header
}

// fakeService serves canned responses keyed by "METHOD PATH" and records requests.
type fakeService struct {
	mu       sync.Mutex
	requests []recordedRequest
	routes   map[string]fakeResponse
}

type fakeResponse struct {
	status int
	body   string
}

func newFakeService(t *testing.T, routes map[string]fakeResponse) (*fakeService, *Client) {
	t.Helper()
	fs := &fakeService{routes: routes}
	srv := httptest.NewServer(http.HandlerFunc(fs.serve))
	t.Cleanup(srv.Close)

	client, err := NewClient(Options{
		CatalogBaseURL:   srv.URL + "/api/catalog/v1.0",
		ApprovalBaseURL:  srv.URL + "/api/approval/v1.2",
		InventoryBaseURL: srv.URL + "/api/topological-inventory/v1.0",
		Token:            "secret",
	})
	require.NoError(t, err)
	return fs, client
}

func (fs *fakeService) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	fs.mu.Lock()
	fs.requests = append(fs.requests, recordedRequest{
		Method: r.Method,
		Path:   r.URL.Path,
		Query:  r.URL.RawQuery,
		Body:   string(body),
		Header: r.Header.Clone(),
	})
	resp, ok := fs.routes[r.Method+" "+r.URL.Path]
	fs.mu.Unlock()

	if !ok {
		http.Error(w, `{"message":"no route"}`, http.StatusNotFound)
		return
	}
	status := resp.status
	if status == 0 {
		status = http.StatusOK
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, resp.body)
}

func (fs *fakeService) recorded() []recordedRequest {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	out := make([]recordedRequest, len(fs.requests))
	copy(out, fs.requests)
	return out
}

func TestNewClient_RequiresBaseURLs(t *testing.T) {
	_, err := NewClient(Options{CatalogBaseURL: "http://x"})
	assert.Error(t, err)
}

func TestClient_FetchHeaders(t *testing.T) {
	fs, client := newFakeService(t, map[string]fakeResponse{
		"GET /api/catalog/v1.0/portfolios": {body: `{"data":[{"id":"1","name":"a"}],"meta":{"count":1,"limit":50,"offset":0}}`},
	})

	res, err := client.Fetch(context.Background(), client.PortfoliosCollection(), "a", Page{Limit: 50})
	require.NoError(t, err)
	assert.Len(t, res.Items, 1)

	reqs := fs.recorded()
	require.Len(t, reqs, 1)
	assert.Equal(t, "Bearer secret", reqs[0].Header.Get("Authorization"))
	assert.NotEmpty(t, reqs[0].Header.Get(HeaderRequestID))
	assert.Equal(t, "application/json", reqs[0].Header.Get("Accept"))
}

func TestClient_FetchHTTPError(t *testing.T) {
	_, client := newFakeService(t, map[string]fakeResponse{
		"GET /api/catalog/v1.0/portfolios": {
			status: http.StatusForbidden,
			body:   `{"errors":[{"status":"403","detail":"not allowed"}]}`,
		},
	})

	_, err := client.Fetch(context.Background(), client.PortfoliosCollection(), "", Page{Limit: 50})
	require.Error(t, err)

	var httpErr *HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusForbidden, httpErr.StatusCode)
	assert.Equal(t, "not allowed", httpErr.Message)
	assert.Contains(t, err.Error(), "403 Forbidden")
	assert.False(t, IsNotFound(err))
}

func TestClient_FetcherAdapter(t *testing.T) {
	fs, client := newFakeService(t, map[string]fakeResponse{
		"GET /api/approval/v1.2/workflows/": {body: `{"data":[],"meta":{"count":0,"limit":10,"offset":0}}`},
	})

	f := client.Fetcher(client.WorkflowsCollection())
	_, err := f.Fetch(context.Background(), "x", Page{Limit: 10, Offset: 30})
	require.NoError(t, err)

	reqs := fs.recorded()
	require.Len(t, reqs, 1)
	assert.Contains(t, reqs[0].Query, "page=4")
	assert.Contains(t, reqs[0].Query, "page_size=10")
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "boom", errorMessage([]byte(`{"message":"boom"}`)))
	assert.Equal(t, "a; b", errorMessage([]byte(`{"errors":[{"detail":"a"},{"detail":"b"}]}`)))
	assert.Equal(t, "plain text", errorMessage([]byte("plain text\n")))
}
