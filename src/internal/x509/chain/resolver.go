// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509chain

import (
	"bytes"
	"context"
	"crypto/x509"
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/H0llyW00dzZ/x509-cert-hierarchy/src/internal/helper/gc"
	x509certs "github.com/H0llyW00dzZ/x509-cert-hierarchy/src/internal/x509/certs"
	x509hierarchy "github.com/H0llyW00dzZ/x509-cert-hierarchy/src/internal/x509/hierarchy"
	"github.com/H0llyW00dzZ/x509-cert-hierarchy/src/logger"
)

const (
	// DefaultMaxDepth bounds the number of download rounds.
	DefaultMaxDepth = 10

	// maxIssuerResponseSize caps a single AIA download.
	maxIssuerResponseSize = 1 << 20

	// maxConcurrentDownloads bounds parallel downloads within one round.
	maxConcurrentDownloads = 4
)

// ErrUnexpectedStatus indicates that an AIA server answered with a non-200 status.
var ErrUnexpectedStatus = errors.New("x509chain: unexpected HTTP status")

// ErrResponseTooLarge indicates that an AIA response exceeded the download limit.
var ErrResponseTooLarge = errors.New("x509chain: issuer response too large")

// Resolver completes a certificate set by downloading missing issuers from
// the Authority Information Access (AIA) "CA Issuers" URLs of its certificates.
type Resolver struct {
	HTTPConfig *HTTPConfig
	Cache      *IssuerCache
	Logger     logger.Logger
	// MaxDepth is the maximum number of download rounds; each round can add
	// one level of issuers.
	MaxDepth int

	codec *x509certs.Certificate
}

// NewResolver creates a resolver. A nil cache disables caching and a nil
// logger discards failures.
func NewResolver(httpConfig *HTTPConfig, cache *IssuerCache, log logger.Logger) *Resolver {
	if log == nil {
		log = logger.NewMCPLogger(nil, true)
	}
	return &Resolver{
		HTTPConfig: httpConfig,
		Cache:      cache,
		Logger:     log,
		MaxDepth:   DefaultMaxDepth,
		codec:      x509certs.New(),
	}
}

// ResolveMissingIssuers returns certs followed by the issuers it could download.
//
// A certificate is missing its issuer when it is not self-signed and no
// certificate of the set has its issuer name as subject. For each such
// certificate the AIA URLs are tried in order; downloaded certificates are
// added when their subject matches the wanted issuer and they are not already
// present. Rounds repeat until nothing is added or MaxDepth is reached.
//
// Download and decode failures are logged and skipped. The only error
// returned is the context error on cancellation.
//
// Parameters:
//   - ctx: Context for cancellation and timeouts
//   - certs: Initial certificate set
//
// Returns:
//   - []*x509.Certificate: certs plus downloaded issuers
//   - error: ctx.Err() if the context ends
//
// Thread Safety: Safe for concurrent use.
func (r *Resolver) ResolveMissingIssuers(ctx context.Context, certs []*x509.Certificate) ([]*x509.Certificate, error) {
	result := append([]*x509.Certificate(nil), certs...)

	for round := 0; round < r.MaxDepth; round++ {
		wanted := missingIssuers(result)
		if len(wanted) == 0 {
			break
		}

		found := make([][]*x509.Certificate, len(wanted))
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(maxConcurrentDownloads)
		for i, w := range wanted {
			g.Go(func() error {
				found[i] = r.fetchIssuer(gctx, w)
				return gctx.Err()
			})
		}
		if err := g.Wait(); err != nil {
			return result, err
		}
		if err := ctx.Err(); err != nil {
			return result, err
		}

		added := 0
		for _, issuers := range found {
			for _, issuer := range issuers {
				if containsCertificate(result, issuer) {
					continue
				}
				result = append(result, issuer)
				added++
			}
		}

		if added == 0 {
			break
		}
		r.Logger.Printf("Resolved %d missing issuer(s) in round %d", added, round+1)
	}

	return result, nil
}

// wantedIssuer is an issuer name together with the URLs that may serve it.
type wantedIssuer struct {
	name string
	urls []string
}

// missingIssuers lists, once per issuer name, the issuers absent from certs.
func missingIssuers(certs []*x509.Certificate) []wantedIssuer {
	wrapped := x509hierarchy.FromX509(certs)

	subjects := make(map[string]struct{}, len(wrapped))
	for _, c := range wrapped {
		subjects[c.SubjectName()] = struct{}{}
	}

	var wanted []wantedIssuer
	seen := make(map[string]int)
	for _, c := range wrapped {
		if x509hierarchy.IsSelfSigned(c) || len(c.Cert.IssuingCertificateURL) == 0 {
			continue
		}
		issuer := c.IssuerName()
		if _, ok := subjects[issuer]; ok {
			continue
		}
		if i, ok := seen[issuer]; ok {
			wanted[i].urls = appendUnique(wanted[i].urls, c.Cert.IssuingCertificateURL...)
			continue
		}
		seen[issuer] = len(wanted)
		wanted = append(wanted, wantedIssuer{name: issuer, urls: appendUnique(nil, c.Cert.IssuingCertificateURL...)})
	}

	return wanted
}

// fetchIssuer tries the URLs of w in order and returns the downloaded
// certificates whose subject is w.name.
func (r *Resolver) fetchIssuer(ctx context.Context, w wantedIssuer) []*x509.Certificate {
	for _, url := range w.urls {
		certs, err := r.download(ctx, url)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			r.Logger.Errorf("Failed to fetch issuer %q from %s: %v", w.name, url, err)
			continue
		}

		var matching []*x509.Certificate
		for _, cert := range certs {
			if x509hierarchy.NewX509(cert).SubjectName() == w.name {
				matching = append(matching, cert)
			}
		}
		if len(matching) > 0 {
			return matching
		}
		r.Logger.Errorf("Certificate served at %s does not match issuer %q", url, w.name)
	}

	return nil
}

// download fetches and decodes the certificates served at url, going through the cache.
func (r *Resolver) download(ctx context.Context, url string) ([]*x509.Certificate, error) {
	if r.Cache != nil {
		if certs, ok := r.Cache.Get(url); ok {
			return certs, nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", r.HTTPConfig.GetUserAgent())

	resp, err := r.HTTPConfig.Client().Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s", ErrUnexpectedStatus, resp.Status)
	}

	buf := gc.Default.Get()
	defer func() {
		buf.Reset()
		gc.Default.Put(buf)
	}()

	n, err := buf.ReadFrom(io.LimitReader(resp.Body, maxIssuerResponseSize+1))
	if err != nil {
		return nil, err
	}
	if n > maxIssuerResponseSize {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrResponseTooLarge, maxIssuerResponseSize)
	}

	// Parsed certificates alias their input and the buffer goes back to the pool.
	certs, err := r.codec.DecodeMultiple(bytes.Clone(buf.Bytes()))
	if err != nil {
		return nil, err
	}

	if r.Cache != nil {
		r.Cache.Set(url, certs)
	}

	return certs, nil
}

func containsCertificate(certs []*x509.Certificate, cert *x509.Certificate) bool {
	return slices.ContainsFunc(certs, cert.Equal)
}

func appendUnique(dst []string, values ...string) []string {
	for _, v := range values {
		if !slices.Contains(dst, v) {
			dst = append(dst, v)
		}
	}
	return dst
}
