// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"bytes"
	"context"
	"crypto/x509"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/H0llyW00dzZ/x509-cert-hierarchy/src/internal/helper/gc"
	x509certs "github.com/H0llyW00dzZ/x509-cert-hierarchy/src/internal/x509/certs"
)

// defaultTLSPort is used when --remote has no port.
const defaultTLSPort = 443

// maxConcurrentReads bounds the number of input files read at once.
const maxConcurrentReads = 8

// loadFiles reads and decodes every file concurrently. Certificates are
// returned file by file in the order the files were given.
func loadFiles(ctx context.Context, files []string) ([]*x509.Certificate, error) {
	results := make([][]*x509.Certificate, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentReads)
	for i, path := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			certs, err := loadFile(path)
			if err != nil {
				return err
			}
			results[i] = certs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var certs []*x509.Certificate
	for _, r := range results {
		certs = append(certs, r...)
	}
	return certs, nil
}

func loadFile(path string) ([]*x509.Certificate, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error reading input file: %w", err)
	}
	defer f.Close()

	buf := gc.Default.Get()
	defer func() {
		buf.Reset()
		gc.Default.Put(buf)
	}()

	if _, err := buf.ReadFrom(f); err != nil {
		return nil, fmt.Errorf("error reading input file %s: %w", path, err)
	}

	certs, err := x509certs.New().DecodeMultiple(bytes.Clone(buf.Bytes()))
	if err != nil {
		return nil, fmt.Errorf("error decoding %s: %w", path, err)
	}
	return certs, nil
}

// parseRemote splits HOST[:PORT], also accepting an https:// URL and
// bracketed IPv6 literals.
func parseRemote(remote string) (string, int, error) {
	remote = strings.TrimPrefix(strings.TrimSpace(remote), "https://")
	remote = strings.TrimSuffix(remote, "/")
	if remote == "" {
		return "", 0, fmt.Errorf("%w: empty", ErrInvalidRemote)
	}

	host, portStr, err := net.SplitHostPort(remote)
	if err != nil {
		// No port: a bare host name or IPv6 literal.
		host = strings.TrimSuffix(strings.TrimPrefix(remote, "["), "]")
		if strings.ContainsAny(host, "/[]") {
			return "", 0, fmt.Errorf("%w: %q", ErrInvalidRemote, remote)
		}
		return host, defaultTLSPort, nil
	}

	port, err := strconv.Atoi(portStr)
	if err != nil || port < 1 || port > 65535 || host == "" {
		return "", 0, fmt.Errorf("%w: %q", ErrInvalidRemote, remote)
	}
	return host, port, nil
}
