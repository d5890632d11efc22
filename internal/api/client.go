package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rshade/catalogctl/internal/logging"
)

// DefaultTimeout bounds each HTTP request when Options.Timeout is zero.
const DefaultTimeout = 30 * time.Second

// HeaderRequestID carries a unique ID per HTTP request.
const HeaderRequestID = "X-Request-Id"

// Options configures a Client. Base URLs already include the API version
// segment, e.g. "https://host/api/catalog/v1.0".
type Options struct {
	CatalogBaseURL   string
	ApprovalBaseURL  string
	InventoryBaseURL string
	Token            string
	Timeout          time.Duration
	HTTPClient       *http.Client
	UserAgent        string
}

// Client talks to the catalog, approval and inventory services.
type Client struct {
	HTTPClient *http.Client

	catalogBase   string
	approvalBase  string
	inventoryBase string
	token         string
	userAgent     string
}

// NewClient validates opts and returns a Client.
func NewClient(opts Options) (*Client, error) {
	if opts.CatalogBaseURL == "" || opts.ApprovalBaseURL == "" || opts.InventoryBaseURL == "" {
		return nil, errors.New("catalog, approval and inventory base URLs are required")
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = "catalogctl"
	}

	return &Client{
		HTTPClient:    httpClient,
		catalogBase:   strings.TrimRight(opts.CatalogBaseURL, "/"),
		approvalBase:  strings.TrimRight(opts.ApprovalBaseURL, "/"),
		inventoryBase: strings.TrimRight(opts.InventoryBaseURL, "/"),
		token:         opts.Token,
		userAgent:     userAgent,
	}, nil
}

// Fetch loads one page of col.
func (c *Client) Fetch(ctx context.Context, col Collection, filter string, page Page) (ListResult, error) {
	reqURL := col.URL + "?" + col.Query(filter, page).Encode()

	body, err := c.do(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return ListResult{}, err
	}

	result, err := decodeList(body, page)
	if err != nil {
		return ListResult{}, fmt.Errorf("%s: %w", col.Name, err)
	}
	return result, nil
}

// Fetcher binds col to the client.
func (c *Client) Fetcher(col Collection) Fetcher {
	return FetcherFunc(func(ctx context.Context, filter string, page Page) (ListResult, error) {
		return c.Fetch(ctx, col, filter, page)
	})
}

// getJSON issues a GET and decodes the response into out.
func (c *Client) getJSON(ctx context.Context, reqURL string, out interface{}) error {
	return c.sendJSON(ctx, http.MethodGet, reqURL, nil, out)
}

// sendJSON marshals in (when non-nil), issues the request and decodes the
// response into out (when non-nil and the body is not empty).
func (c *Client) sendJSON(ctx context.Context, method, reqURL string, in, out interface{}) error {
	var payload []byte
	if in != nil {
		var err error
		payload, err = json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
	}

	body, err := c.do(ctx, method, reqURL, payload)
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err = json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decoding response from %s %s: %w", method, reqURL, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, reqURL string, payload []byte) ([]byte, error) {
	log := logging.FromContext(ctx)

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, reqURL, reader)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(HeaderRequestID, requestID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		log.Debug().Ctx(ctx).
			Str("method", method).
			Str("url", reqURL).
			Str("request_id", requestID).
			Err(err).
			Msg("request failed")
		return nil, fmt.Errorf("%s %s: %w", method, reqURL, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response from %s %s: %w", method, reqURL, err)
	}

	log.Debug().Ctx(ctx).
		Str("method", method).
		Str("url", reqURL).
		Str("request_id", requestID).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("request completed")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &HTTPError{
			Method:     method,
			URL:        reqURL,
			StatusCode: resp.StatusCode,
			Message:    errorMessage(body),
		}
	}
	return body, nil
}
