// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509chain

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"
)

// ErrNoPeerCertificates indicates that the TLS server presented no certificate.
var ErrNoPeerCertificates = errors.New("x509chain: no certificates received from server")

// FetchRemoteChain performs a TLS handshake with hostname:port and returns the
// certificates the server presented, in the order it sent them.
//
// The handshake is not verified: the certificates are collected for
// inspection only, so expired or self-signed endpoints still work.
//
// Parameters:
//   - ctx: Context for cancellation; its deadline also bounds the dial
//   - hostname: Server name, also sent as SNI
//   - port: TCP port
//   - timeout: Dial and handshake timeout
//
// Returns:
//   - []*x509.Certificate: Presented certificates, never empty on success
//   - error: Connection failure or [ErrNoPeerCertificates]
func FetchRemoteChain(ctx context.Context, hostname string, port int, timeout time.Duration) ([]*x509.Certificate, error) {
	address := net.JoinHostPort(hostname, strconv.Itoa(port))

	dialer := &tls.Dialer{
		NetDialer: &net.Dialer{Timeout: timeout},
		Config: &tls.Config{
			ServerName: hostname,
			// Certificates are inspected, not trusted.
			InsecureSkipVerify: true,
		},
	}

	conn, err := dialer.DialContext(ctx, "tcp", address)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", address, err)
	}
	defer conn.Close()

	peerCerts := conn.(*tls.Conn).ConnectionState().PeerCertificates
	if len(peerCerts) == 0 {
		return nil, ErrNoPeerCertificates
	}

	return peerCerts, nil
}
