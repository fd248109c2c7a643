// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509chain

import (
	"crypto/x509"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
	"time"
)

// IssuerCacheConfig holds configuration for the issuer cache.
type IssuerCacheConfig struct {
	MaxSize int           // Maximum number of URLs to cache (0 = unlimited, but not recommended)
	TTL     time.Duration // How long a download stays fresh (default: 1 hour)
}

// DefaultIssuerCacheConfig is used by [NewIssuerCache] for zero values.
var DefaultIssuerCacheConfig = IssuerCacheConfig{
	MaxSize: 100,
	TTL:     time.Hour,
}

// IssuerCacheMetrics tracks cache performance and usage.
type IssuerCacheMetrics struct {
	Size      int64 // Current number of cached URLs
	Hits      int64 // Number of cache hits
	Misses    int64 // Number of cache misses, stale entries included
	Evictions int64 // Number of LRU evictions
	Expired   int64 // Number of stale entries dropped on access
}

type issuerCacheEntry struct {
	certs     []*x509.Certificate
	fetchedAt time.Time
}

// IssuerCache is an LRU cache of issuer downloads keyed by AIA URL.
//
// Thread Safety: Safe for concurrent use.
type IssuerCache struct {
	mu      sync.Mutex
	config  IssuerCacheConfig
	entries map[string]*issuerCacheEntry
	order   []string // least recently used first

	hits      atomic.Int64
	misses    atomic.Int64
	evictions atomic.Int64
	expired   atomic.Int64
}

// NewIssuerCache creates a cache; zero config fields fall back to
// [DefaultIssuerCacheConfig].
func NewIssuerCache(config IssuerCacheConfig) *IssuerCache {
	if config.MaxSize < 0 {
		config.MaxSize = 0
	} else if config.MaxSize == 0 {
		config.MaxSize = DefaultIssuerCacheConfig.MaxSize
	}
	if config.TTL <= 0 {
		config.TTL = DefaultIssuerCacheConfig.TTL
	}

	return &IssuerCache{
		config:  config,
		entries: make(map[string]*issuerCacheEntry),
	}
}

// Config returns a copy of the cache configuration.
func (c *IssuerCache) Config() IssuerCacheConfig { return c.config }

// Get returns the certificates downloaded from url if they are still fresh.
func (c *IssuerCache) Get(url string) ([]*x509.Certificate, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[url]
	if !ok {
		c.misses.Add(1)
		return nil, false
	}

	if time.Since(entry.fetchedAt) > c.config.TTL {
		c.remove(url)
		c.expired.Add(1)
		c.misses.Add(1)
		return nil, false
	}

	c.hits.Add(1)
	c.touch(url)
	return slices.Clone(entry.certs), true
}

// Set stores the certificates downloaded from url, evicting the least
// recently used entries when the cache is full.
func (c *IssuerCache) Set(url string, certs []*x509.Certificate) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[url]; !ok {
		for c.config.MaxSize > 0 && len(c.entries) >= c.config.MaxSize && len(c.order) > 0 {
			c.remove(c.order[0])
			c.evictions.Add(1)
		}
	}

	c.entries[url] = &issuerCacheEntry{
		certs:     slices.Clone(certs),
		fetchedAt: time.Now(),
	}
	c.touch(url)
}

// Keys returns the cached URLs from least to most recently used.
func (c *IssuerCache) Keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.order)
}

// Clear drops every entry and resets the metrics.
func (c *IssuerCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*issuerCacheEntry)
	c.order = nil
	c.hits.Store(0)
	c.misses.Store(0)
	c.evictions.Store(0)
	c.expired.Store(0)
}

// Metrics returns a snapshot of the cache metrics.
func (c *IssuerCache) Metrics() IssuerCacheMetrics {
	c.mu.Lock()
	size := int64(len(c.entries))
	c.mu.Unlock()

	return IssuerCacheMetrics{
		Size:      size,
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
		Expired:   c.expired.Load(),
	}
}

// Stats returns a formatted string with cache statistics.
func (c *IssuerCache) Stats() string {
	m := c.Metrics()

	hitRate := float64(0)
	if total := m.Hits + m.Misses; total > 0 {
		hitRate = float64(m.Hits) / float64(total) * 100
	}

	return fmt.Sprintf("Issuer Cache Statistics:\n"+
		"  Size: %d/%d entries\n"+
		"  Hit Rate: %.1f%% (%d hits, %d misses)\n"+
		"  Evictions: %d\n"+
		"  Expired: %d\n"+
		"  TTL: %v",
		m.Size, c.config.MaxSize,
		hitRate, m.Hits, m.Misses,
		m.Evictions,
		m.Expired,
		c.config.TTL)
}

// touch moves url to the most recently used position. Callers hold c.mu.
func (c *IssuerCache) touch(url string) {
	if i := slices.Index(c.order, url); i >= 0 {
		c.order = slices.Delete(c.order, i, i+1)
	}
	c.order = append(c.order, url)
}

// remove drops url. Callers hold c.mu.
func (c *IssuerCache) remove(url string) {
	delete(c.entries, url)
	if i := slices.Index(c.order, url); i >= 0 {
		c.order = slices.Delete(c.order, i, i+1)
	}
}
