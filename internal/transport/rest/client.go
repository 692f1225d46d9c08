package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/vecdesk/internal/connection"
	"github.com/kailas-cloud/vecdesk/internal/domain"
)

// API paths relative to the store url.
const (
	PathGraphQL = "/v1/graphql"
	PathSchema  = "/v1/schema"
	PathObjects = "/v1/objects"
	PathReady   = "/v1/.well-known/ready"
)

// maxErrorBody caps how much of a failed response is read.
const maxErrorBody = 64 << 10

// Endpoint exposes the current connection.
type Endpoint interface {
	Snapshot() connection.Connection
}

// Client performs single best-effort round trips against the store.
// No retries; timeouts are those of the supplied http.Client.
type Client struct {
	http     *http.Client
	endpoint Endpoint
	logger   *zap.Logger
}

// New creates a transport. A nil httpClient uses http.DefaultClient.
func New(endpoint Endpoint, httpClient *http.Client, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{http: httpClient, endpoint: endpoint, logger: logger}
}

// SchemaPath returns the path of one class.
func SchemaPath(class string) string { return PathSchema + "/" + url.PathEscape(class) }

// ObjectPath returns the path of one object.
func ObjectPath(id string) string { return PathObjects + "/" + url.PathEscape(id) }

// Get decodes a GET response into dest.
func (c *Client) Get(ctx context.Context, op, path string, dest any) error {
	return c.do(ctx, op, http.MethodGet, path, nil, dest)
}

// Lookup is Get where 404 means "absent": it returns false and no error.
func (c *Client) Lookup(ctx context.Context, op, path string, dest any) (bool, error) {
	err := c.do(ctx, op, http.MethodGet, path, nil, dest)
	var te *domain.TransportError
	if errors.As(err, &te) && te.NotFound() {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Post sends body as JSON and decodes the response into dest (may be nil).
func (c *Client) Post(ctx context.Context, op, path string, body, dest any) error {
	return c.do(ctx, op, http.MethodPost, path, body, dest)
}

// Patch sends body as JSON; the response body is discarded.
func (c *Client) Patch(ctx context.Context, op, path string, body any) error {
	return c.do(ctx, op, http.MethodPatch, path, body, nil)
}

// Delete issues a DELETE; the response body is discarded.
func (c *Client) Delete(ctx context.Context, op, path string) error {
	return c.do(ctx, op, http.MethodDelete, path, nil, nil)
}

type graphQLRequest struct {
	Query string `json:"query"`
}

// GraphQL posts a query document and decodes the raw response into dest.
func (c *Client) GraphQL(ctx context.Context, op, document string, dest any) error {
	return c.do(ctx, op, http.MethodPost, PathGraphQL, graphQLRequest{Query: document}, dest)
}

func (c *Client) do(ctx context.Context, op, method, path string, body, dest any) error {
	conn := c.endpoint.Snapshot()
	if !conn.Configured() {
		return &domain.ConfigurationError{Reason: "store url is empty"}
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", op, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, conn.URL+path, reader)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if conn.Credential != "" {
		req.Header.Set("Authorization", "Bearer "+conn.Credential)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("store request failed",
			zap.String("op", op),
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return fmt.Errorf("%s: %s %s: %w: %w", op, method, path, domain.ErrTransport, err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.Debug("store request",
		zap.String("op", op),
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return classify(op, method, path, resp.StatusCode, raw)
	}

	if dest == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		if errors.Is(err, io.EOF) {
			return domain.NewProtocol(op, "empty response body")
		}
		return domain.NewProtocol(op, "decode response: %v", err)
	}
	return nil
}
