// Package cms is the HTTP adapter for the hosted content backend.
package cms

import (
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/saanjh/storefront/internal/domain/shared"
)

// defaultMaxResponseBytes caps a single backend response (10MB)
const defaultMaxResponseBytes = 10 * 1024 * 1024

// Errors returned by the client. Both wrap shared domain errors so handlers
// can map them without importing this package.
var (
	ErrBackendRequestFailed = shared.ErrBackendRejected
	ErrBackendUnavailable   = shared.ErrBackendUnavailable
	ErrInvalidResponse      = shared.NewDomainError("BACKEND_INVALID_RESPONSE", "Content backend returned an invalid response")
	ErrResponseTooLarge     = shared.NewDomainError("BACKEND_RESPONSE_TOO_LARGE", "Content backend response exceeds the size limit")
	ErrNotConfigured        = errors.New("cms: base URL not configured")
)

// Config holds the content backend connection settings
type Config struct {
	BaseURL          string
	APIKey           string
	Timeout          time.Duration
	MaxResponseBytes int64
}

// Validate checks the configuration and fills defaults
func (c *Config) Validate() error {
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if c.BaseURL == "" {
		return ErrNotConfigured
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return errors.New("cms: base URL must be absolute")
	}
	if c.Timeout <= 0 {
		c.Timeout = 10 * time.Second
	}
	if c.MaxResponseBytes <= 0 {
		c.MaxResponseBytes = defaultMaxResponseBytes
	}
	return nil
}
