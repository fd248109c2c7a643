// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509hierarchy

import (
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/asn1"
	"math/big"

	"golang.org/x/text/unicode/norm"
)

// X509 adapts a parsed [x509.Certificate] to [Certificate].
//
// The subject and issuer names are rendered once, at construction, from the
// raw DER names so that attribute order and multi-valued RDNs are preserved.
type X509 struct {
	Cert *x509.Certificate

	subject string
	issuer  string
}

// NewX509 wraps cert. cert must not be nil.
func NewX509(cert *x509.Certificate) *X509 {
	return &X509{
		Cert:    cert,
		subject: canonicalName(cert.RawSubject, cert.Subject),
		issuer:  canonicalName(cert.RawIssuer, cert.Issuer),
	}
}

// FromX509 wraps every non-nil certificate of certs.
func FromX509(certs []*x509.Certificate) []*X509 {
	wrapped := make([]*X509, 0, len(certs))
	for _, cert := range certs {
		if cert != nil {
			wrapped = append(wrapped, NewX509(cert))
		}
	}
	return wrapped
}

// Unwrap returns the underlying certificates of certs.
func Unwrap(certs []*X509) []*x509.Certificate {
	raw := make([]*x509.Certificate, len(certs))
	for i, c := range certs {
		raw[i] = c.Cert
	}
	return raw
}

// SubjectName returns the canonical subject distinguished name.
func (c *X509) SubjectName() string { return c.subject }

// IssuerName returns the canonical issuer distinguished name.
func (c *X509) IssuerName() string { return c.issuer }

// SerialNumber returns the certificate serial number.
func (c *X509) SerialNumber() *big.Int { return c.Cert.SerialNumber }

// canonicalName renders a distinguished name as an RFC 2253 string in Unicode NFC.
//
// Names that cannot be parsed from their DER form fall back to the decoded
// [pkix.Name]; they are still compared, just as opaque strings.
func canonicalName(raw []byte, decoded pkix.Name) string {
	var rdns pkix.RDNSequence
	if rest, err := asn1.Unmarshal(raw, &rdns); err == nil && len(rest) == 0 {
		return norm.NFC.String(rdns.String())
	}
	return norm.NFC.String(decoded.String())
}
