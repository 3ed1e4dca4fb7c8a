package cms

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

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/saanjh/storefront/internal/domain/content"
	"github.com/saanjh/storefront/internal/infrastructure/telemetry"
)

// Client implements content.DataService over the backend's REST API:
//
//	GET   {base}/collections/{name}/items
//	GET   {base}/collections/{name}/items/{id}
//	PATCH {base}/collections/{name}/items/{id}
type Client struct {
	config     Config
	httpClient *http.Client
	metrics    *telemetry.StorefrontMetrics
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithMetrics records call counts and latency
func WithMetrics(m *telemetry.StorefrontMetrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// NewClient creates a content backend client
func NewClient(cfg Config, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c := &Client{
		config:     cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

var _ content.DataService = (*Client)(nil)

// GetAll returns every record of a collection
func (c *Client) GetAll(ctx context.Context, collection content.Collection) (result *content.ItemsResult, err error) {
	ctx, finish := c.instrument(ctx, "get_all", collection)
	defer func() { finish(err) }()

	if !collection.IsValid() {
		return nil, fmt.Errorf("cms: unknown collection %q", collection)
	}

	body, status, err := c.do(ctx, http.MethodGet, c.itemsPath(collection), nil)
	if err != nil {
		return nil, err
	}
	if status >= 400 {
		return nil, fmt.Errorf("%w: HTTP %d listing %s", ErrBackendRequestFailed, status, collection)
	}

	var out content.ItemsResult
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if out.Items == nil {
		out.Items = []json.RawMessage{}
	}
	return &out, nil
}

// GetByID returns one record or content.ErrNotFound
func (c *Client) GetByID(ctx context.Context, collection content.Collection, id string) (raw json.RawMessage, err error) {
	ctx, finish := c.instrument(ctx, "get_by_id", collection)
	defer func() { finish(err) }()

	if !collection.IsValid() {
		return nil, fmt.Errorf("cms: unknown collection %q", collection)
	}
	if id == "" {
		return nil, content.ErrNotFound
	}

	body, status, err := c.do(ctx, http.MethodGet, c.itemPath(collection, id), nil)
	if err != nil {
		return nil, err
	}
	switch {
	case status == http.StatusNotFound:
		return nil, content.ErrNotFound
	case status >= 400:
		return nil, fmt.Errorf("%w: HTTP %d reading %s/%s", ErrBackendRequestFailed, status, collection, id)
	}

	if !json.Valid(body) {
		return nil, ErrInvalidResponse
	}
	trimmed := bytes.TrimSpace(body)
	if bytes.Equal(trimmed, []byte("null")) {
		return nil, content.ErrNotFound
	}
	return json.RawMessage(trimmed), nil
}

// Update applies a partial record. The patch must carry "_id".
func (c *Client) Update(ctx context.Context, collection content.Collection, patch map[string]any) (raw json.RawMessage, err error) {
	ctx, finish := c.instrument(ctx, "update", collection)
	defer func() { finish(err) }()

	if !collection.IsValid() {
		return nil, fmt.Errorf("cms: unknown collection %q", collection)
	}
	id, ok := content.PatchID(patch)
	if !ok {
		return nil, errors.New("cms: update patch must carry _id")
	}

	body, status, err := c.do(ctx, http.MethodPatch, c.itemPath(collection, id), patch)
	if err != nil {
		return nil, err
	}
	switch {
	case status == http.StatusNotFound:
		return nil, content.ErrNotFound
	case status >= 400:
		return nil, fmt.Errorf("%w: HTTP %d updating %s/%s", ErrBackendRequestFailed, status, collection, id)
	}
	return json.RawMessage(bytes.TrimSpace(body)), nil
}

func (c *Client) itemsPath(collection content.Collection) string {
	return c.config.BaseURL + "/collections/" + url.PathEscape(collection.String()) + "/items"
}

func (c *Client) itemPath(collection content.Collection, id string) string {
	return c.itemsPath(collection) + "/" + url.PathEscape(id)
}

// do sends the request and returns the body with the status code.
// Transport failures and bodies over MaxResponseBytes are returned as errors.
func (c *Client) do(ctx context.Context, method, target string, payload any) ([]byte, int, error) {
	var reader io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, 0, fmt.Errorf("cms: failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, 0, fmt.Errorf("cms: failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.config.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	limit := c.config.MaxResponseBytes
	body, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("%w: failed to read response: %v", ErrBackendUnavailable, err)
	}
	if int64(len(body)) > limit {
		return nil, resp.StatusCode, fmt.Errorf("%w: more than %d bytes from %s", ErrResponseTooLarge, limit, req.URL.Path)
	}
	return body, resp.StatusCode, nil
}

// instrument starts a client span and returns the function that closes it
// and records the call
func (c *Client) instrument(ctx context.Context, op string, collection content.Collection) (context.Context, func(error)) {
	start := time.Now()
	ctx, span := telemetry.StartSpan(ctx, "content."+op, trace.SpanKindClient,
		telemetry.AttrCollection.String(collection.String()),
	)
	return ctx, func(err error) {
		outcome := telemetry.OutcomeOK
		switch {
		case errors.Is(err, content.ErrNotFound):
			outcome = telemetry.OutcomeNotFound
		case err != nil:
			outcome = telemetry.OutcomeError
		}
		c.metrics.RecordContentCall(ctx, op, collection.String(), outcome, time.Since(start))
		if outcome == telemetry.OutcomeNotFound {
			telemetry.EndSpan(span, nil)
			return
		}
		telemetry.EndSpan(span, err)
	}
}
