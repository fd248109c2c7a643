// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509chain_test

import (
	"bytes"
	"context"
	"crypto/x509"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	x509chain "github.com/H0llyW00dzZ/x509-cert-hierarchy/src/internal/x509/chain"
	"github.com/H0llyW00dzZ/x509-cert-hierarchy/src/logger"
)

// aiaServer serves certificates by path and counts requests.
type aiaServer struct {
	*httptest.Server

	mu        sync.Mutex
	files     map[string][]byte
	requests  atomic.Int64
	userAgent atomic.Value
}

func newAIAServer(t *testing.T) *aiaServer {
	t.Helper()

	s := &aiaServer{files: make(map[string][]byte)}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.requests.Add(1)
		s.userAgent.Store(r.UserAgent())

		s.mu.Lock()
		data, ok := s.files[r.URL.Path]
		s.mu.Unlock()
		if !ok {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write(data)
	}))
	t.Cleanup(s.Close)
	return s
}

func (s *aiaServer) serve(path string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[path] = data
}

func subjects(certs []*x509.Certificate) []string {
	out := make([]string, len(certs))
	for i, c := range certs {
		out[i] = c.Subject.CommonName
	}
	return out
}

func TestResolveMissingIssuers(t *testing.T) {
	srv := newAIAServer(t)

	root := issue(t, "AIA Root", 1, nil)
	inter := issue(t, "AIA Intermediate", 2, root, srv.URL+"/root.pem")
	leaf := issue(t, "leaf.aia.example", 3, inter, srv.URL+"/missing.crt", srv.URL+"/inter.der")
	stranger := issue(t, "Unrelated CA", 4, nil)
	misdirected := issue(t, "misdirected.example", 5, inter, srv.URL+"/stranger.der")
	oversized := issue(t, "oversized.example", 6, inter, srv.URL+"/huge.der")

	srv.serve("/inter.der", inter.cert.Raw)
	srv.serve("/root.pem", pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: root.cert.Raw}))
	srv.serve("/stranger.der", stranger.cert.Raw)
	srv.serve("/huge.der", bytes.Repeat([]byte{0x30}, 1<<20+1))

	newResolver := func(log logger.Logger) *x509chain.Resolver {
		return x509chain.NewResolver(x509chain.NewHTTPConfig("1.3.3.7-testing"), x509chain.NewIssuerCache(x509chain.IssuerCacheConfig{}), log)
	}

	tests := []struct {
		name     string
		testFunc func(t *testing.T)
	}{
		{
			name: "Completes the chain up to the root",
			testFunc: func(t *testing.T) {
				var logs bytes.Buffer
				r := newResolver(logger.NewMCPLogger(&logs, false))

				got, err := r.ResolveMissingIssuers(context.Background(), []*x509.Certificate{leaf.cert})
				require.NoError(t, err)
				assert.Equal(t, []string{"leaf.aia.example", "AIA Intermediate", "AIA Root"}, subjects(got))

				assert.Contains(t, logs.String(), "Failed to fetch issuer")
				assert.Contains(t, logs.String(), "/missing.crt")
				assert.Contains(t, srv.userAgent.Load(), "X.509-Cert-Hierarchy/1.3.3.7-testing")
			},
		},
		{
			name: "Second resolution is served from the cache",
			testFunc: func(t *testing.T) {
				r := newResolver(nil)

				_, err := r.ResolveMissingIssuers(context.Background(), []*x509.Certificate{leaf.cert})
				require.NoError(t, err)
				before := srv.requests.Load()

				got, err := r.ResolveMissingIssuers(context.Background(), []*x509.Certificate{leaf.cert})
				require.NoError(t, err)
				assert.Len(t, got, 3)

				// Only the failing URL is requested again.
				assert.Equal(t, before+1, srv.requests.Load())
				assert.Equal(t, int64(2), r.Cache.Metrics().Hits)
			},
		},
		{
			name: "Present issuers are not downloaded",
			testFunc: func(t *testing.T) {
				r := newResolver(nil)
				before := srv.requests.Load()

				input := []*x509.Certificate{leaf.cert, inter.cert, root.cert}
				got, err := r.ResolveMissingIssuers(context.Background(), input)
				require.NoError(t, err)
				assert.Equal(t, input, got)
				assert.Equal(t, before, srv.requests.Load())
			},
		},
		{
			name: "Depth limit",
			testFunc: func(t *testing.T) {
				r := newResolver(nil)
				r.MaxDepth = 1

				got, err := r.ResolveMissingIssuers(context.Background(), []*x509.Certificate{leaf.cert})
				require.NoError(t, err)
				assert.Equal(t, []string{"leaf.aia.example", "AIA Intermediate"}, subjects(got))
			},
		},
		{
			name: "Certificates that do not match the issuer are ignored",
			testFunc: func(t *testing.T) {
				var logs bytes.Buffer
				r := newResolver(logger.NewMCPLogger(&logs, false))

				got, err := r.ResolveMissingIssuers(context.Background(), []*x509.Certificate{misdirected.cert})
				require.NoError(t, err)
				assert.Equal(t, []string{"misdirected.example"}, subjects(got))
				assert.Contains(t, logs.String(), "does not match issuer")
			},
		},
		{
			name: "Oversized responses are rejected",
			testFunc: func(t *testing.T) {
				var logs bytes.Buffer
				r := newResolver(logger.NewMCPLogger(&logs, false))

				got, err := r.ResolveMissingIssuers(context.Background(), []*x509.Certificate{oversized.cert})
				require.NoError(t, err)
				assert.Equal(t, []string{"oversized.example"}, subjects(got))
				assert.Contains(t, logs.String(), "issuer response too large")
				assert.Contains(t, logs.String(), "/huge.der")
			},
		},
		{
			name: "Cancelled context",
			testFunc: func(t *testing.T) {
				r := newResolver(nil)
				ctx, cancel := context.WithCancel(context.Background())
				cancel()

				got, err := r.ResolveMissingIssuers(ctx, []*x509.Certificate{leaf.cert})
				assert.ErrorIs(t, err, context.Canceled)
				assert.Equal(t, []string{"leaf.aia.example"}, subjects(got))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, tt.testFunc)
	}
}
