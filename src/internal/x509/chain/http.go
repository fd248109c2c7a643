// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509chain

import (
	"fmt"
	"net/http"
	"sync"
	"time"
)

// DefaultHTTPTimeout bounds a single issuer download.
const DefaultHTTPTimeout = 10 * time.Second

// HTTPConfig holds HTTP client configuration for issuer downloads.
type HTTPConfig struct {
	Timeout   time.Duration // HTTP request timeout
	Version   string        // Application version for User-Agent
	UserAgent string        // Custom User-Agent string, if empty will be constructed from Version

	mu     sync.Mutex
	client *http.Client
}

// NewHTTPConfig creates a new HTTP configuration with [DefaultHTTPTimeout]
// and the provided application version.
func NewHTTPConfig(version string) *HTTPConfig {
	return &HTTPConfig{
		Timeout: DefaultHTTPTimeout,
		Version: version,
	}
}

// GetUserAgent returns the User-Agent string, constructing it if not set.
func (c *HTTPConfig) GetUserAgent() string {
	if c.UserAgent != "" {
		return c.UserAgent
	}
	return fmt.Sprintf("X.509-Cert-Hierarchy/%s (+https://github.com/H0llyW00dzZ/x509-cert-hierarchy)", c.Version)
}

// Client returns an HTTP client configured with the current timeout.
//
// The client is created once and reused; a changed Timeout is applied on
// the next call.
//
// Thread Safety: Safe for concurrent use.
func (c *HTTPConfig) Client() *http.Client {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.client == nil {
		c.client = &http.Client{Timeout: c.Timeout}
		return c.client
	}

	if c.client.Timeout != c.Timeout {
		c.client.Timeout = c.Timeout
	}

	return c.client
}

// SetClient replaces the underlying client, e.g. with one trusting a test server.
func (c *HTTPConfig) SetClient(client *http.Client) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.client = client
}
