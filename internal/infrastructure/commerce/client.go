package commerce

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/saanjh/storefront/internal/infrastructure/telemetry"
)

// maxResponseSize is the maximum allowed response size from the commerce API (10MB)
const maxResponseSize = 10 * 1024 * 1024

// Config holds the commerce API settings
type Config struct {
	BaseURL           string
	APIKey            string
	DefaultCollection string
	WidgetScriptURL   string
	Timeout           time.Duration
}

// Validate checks the configuration and fills defaults
func (c *Config) Validate() error {
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if c.BaseURL == "" {
		return errors.New("commerce: base URL not configured")
	}
	if u, err := url.Parse(c.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		return errors.New("commerce: base URL must be absolute")
	}
	if c.DefaultCollection == "" {
		c.DefaultCollection = "all-products"
	}
	if c.Timeout <= 0 {
		c.Timeout = 10 * time.Second
	}
	return nil
}

// Client is the HTTP adapter for the commerce vertical
type Client struct {
	config     Config
	httpClient *http.Client
}

// NewClient creates a commerce API client
func NewClient(cfg Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Client{
		config:     cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

var _ Vertical = (*Client)(nil)

// ProductBySlug loads one product
func (c *Client) ProductBySlug(ctx context.Context, slug string) (*Product, error) {
	var p Product
	if err := c.get(ctx, "/products/"+url.PathEscape(slug), &p, ErrProductNotFound); err != nil {
		return nil, err
	}
	return &p, nil
}

// Collection loads a category listing
func (c *Client) Collection(ctx context.Context, slug string) (*Collection, error) {
	var col Collection
	if err := c.get(ctx, "/collections/"+url.PathEscape(slug), &col, ErrCollectionNotFound); err != nil {
		return nil, err
	}
	if col.Products == nil {
		col.Products = []Product{}
	}
	return &col, nil
}

// DefaultCollectionSlug is where /store redirects
func (c *Client) DefaultCollectionSlug() string {
	return c.config.DefaultCollection
}

// CartWidget describes the full cart component
func (c *Client) CartWidget() Widget {
	return Widget{Name: "cart", ScriptURL: c.config.WidgetScriptURL, Attrs: map[string]string{"data-commerce-widget": "cart"}}
}

// MiniCartWidget describes the header cart badge
func (c *Client) MiniCartWidget() Widget {
	return Widget{Name: "mini-cart", ScriptURL: c.config.WidgetScriptURL, Attrs: map[string]string{"data-commerce-widget": "mini-cart"}}
}

func (c *Client) get(ctx context.Context, path string, out any, notFound error) (err error) {
	ctx, span := telemetry.StartSpan(ctx, "commerce.get", trace.SpanKindClient)
	defer func() { telemetry.EndSpan(span, err) }()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL+path, nil)
	if err != nil {
		return fmt.Errorf("commerce: failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.config.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("%w: failed to read response: %v", ErrUnavailable, err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return notFound
	case resp.StatusCode >= 400:
		return fmt.Errorf("%w: HTTP %d", ErrUnavailable, resp.StatusCode)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: invalid response: %v", ErrUnavailable, err)
	}
	return nil
}
