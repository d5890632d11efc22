package cli_test

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/term"

	"github.com/rshade/catalogctl/internal/cli"
	"github.com/rshade/catalogctl/internal/config"
)

// apiRequest is what the fake services saw.
type apiRequest struct {
	Method string
	Path   string
	Query  string
	Body   string
}

// fakeAPI serves the catalog, approval and inventory services from one
// httptest server. Routes are keyed by "METHOD PATH".
type fakeAPI struct {
	mu       sync.Mutex
	requests []apiRequest
	routes   map[string]string
}

// newFakeAPI starts the fake services and points the configuration at them
// through the environment.
func newFakeAPI(t *testing.T, routes map[string]string) *fakeAPI {
	t.Helper()
	setupCLITest(t)

	fa := &fakeAPI{routes: routes}
	srv := httptest.NewServer(http.HandlerFunc(fa.serve))
	t.Cleanup(srv.Close)

	t.Setenv(config.EnvCatalogURL, srv.URL+"/api/catalog")
	t.Setenv(config.EnvApprovalURL, srv.URL+"/api/approval")
	t.Setenv(config.EnvInventoryURL, srv.URL+"/api/topological-inventory")
	return fa
}

func (fa *fakeAPI) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	fa.mu.Lock()
	fa.requests = append(fa.requests, apiRequest{
		Method: r.Method, Path: r.URL.Path, Query: r.URL.RawQuery, Body: string(body),
	})
	resp, ok := fa.routes[r.Method+" "+r.URL.Path]
	fa.mu.Unlock()

	if !ok {
		http.Error(w, `{"message":"no route"}`, http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = io.WriteString(w, resp)
}

func (fa *fakeAPI) recorded() []apiRequest {
	fa.mu.Lock()
	defer fa.mu.Unlock()
	out := make([]apiRequest, len(fa.requests))
	copy(out, fa.requests)
	return out
}

// setupCLITest isolates the configuration and quiets logging.
func setupCLITest(t *testing.T) {
	t.Helper()
	t.Setenv(config.EnvHome, t.TempDir())
	t.Setenv(config.EnvProjectDir, "")
	t.Setenv(config.EnvLogLevel, "error")
	t.Setenv(config.EnvToken, "")
	t.Cleanup(func() {
		config.ResetGlobalConfigForTest()
		config.SetResolvedProjectDir("")
	})
}

// runCLI executes the root command with args and returns its output.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	config.ResetGlobalConfigForTest()

	var buf bytes.Buffer
	cmd := cli.NewRootCmd("test")
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetIn(bytes.NewReader(nil))
	cmd.SetArgs(args)

	err := cmd.Execute()
	return buf.String(), err
}

func requireNoRequests(t *testing.T, fa *fakeAPI) {
	t.Helper()
	require.Empty(t, fa.recorded(), "no request should reach the API")
}

// isTTY reports whether the test binary writes to a terminal.
func isTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd())) && term.IsTerminal(int(os.Stdin.Fd()))
}
