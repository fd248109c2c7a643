// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509certs

import (
	"bytes"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"errors"

	"github.com/cloudflare/cfssl/crypto/pkcs7"
)

var (
	// ErrInvalidPEMBlock indicates that the provided data does not contain a valid PEM block.
	ErrInvalidPEMBlock = errors.New("x509certs: invalid PEM block")

	// ErrInvalidBlockType indicates that the PEM block type is not the expected certificate type.
	ErrInvalidBlockType = errors.New("x509certs: invalid block type")

	// ErrParseCertificate indicates a failure to parse the certificate from the provided data.
	ErrParseCertificate = errors.New("x509certs: failed to parse certificate")

	// ErrParsePKCS7 indicates a failure to parse PKCS7 formatted data.
	ErrParsePKCS7 = errors.New("x509certs: failed to parse PKCS7 data")

	// ErrNoCertificatesInPKCS indicates that no certificates were found in the PKCS7 data.
	ErrNoCertificatesInPKCS = errors.New("x509certs: no certificates found in PKCS7 data")

	// ErrNoCertificates indicates that the input did not contain any certificate.
	ErrNoCertificates = errors.New("x509certs: no certificates found")
)

// pkcs7BlockType is the PEM label used for PKCS#7 certificate bundles (.p7b).
const pkcs7BlockType = "PKCS7"

// Certificate provides methods to decode and encode [X.509] certificates.
// It maintains internal configuration such as the certificate block type.
//
// [X.509]: https://grokipedia.com/page/X.509
type Certificate struct {
	certBlockType string
}

// New creates a new Certificate with default settings.
func New() *Certificate {
	return &Certificate{
		certBlockType: "CERTIFICATE",
	}
}

// IsPEM checks if the data is in PEM format.
func (c *Certificate) IsPEM(data []byte) bool {
	block, _ := pem.Decode(data)
	return block != nil
}

// decodePEMBlock decodes a PEM block and checks its type.
func (c *Certificate) decodePEMBlock(data []byte) (*pem.Block, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, ErrInvalidPEMBlock
	}
	if block.Type != c.certBlockType {
		return nil, ErrInvalidBlockType
	}
	return block, nil
}

// DecodeMultiple decodes every certificate found in data.
//
// The input can be:
//   - a PEM bundle; CERTIFICATE and PKCS7 blocks are read, other blocks such as
//     private keys are skipped
//   - one or more concatenated DER certificates
//   - a DER PKCS#7 bundle
//   - any of the forms above wrapped in base64
//
// The certificates are returned in input order, duplicates included; collapsing
// them is the job of the hierarchy builder.
//
// Parameters:
//   - data: Raw input bytes
//
// Returns:
//   - []*x509.Certificate: Decoded certificates, never empty on success
//   - error: [ErrNoCertificates] or a parse error
func (c *Certificate) DecodeMultiple(data []byte) ([]*x509.Certificate, error) {
	if c.IsPEM(data) {
		return c.decodePEMBundle(data)
	}

	if certs, err := c.decodeBinary(data); err == nil {
		return certs, nil
	}

	if decoded, ok := decodeBase64(data); ok {
		if c.IsPEM(decoded) {
			return c.decodePEMBundle(decoded)
		}
		return c.decodeBinary(decoded)
	}

	return nil, ErrParseCertificate
}

func (c *Certificate) decodePEMBundle(data []byte) ([]*x509.Certificate, error) {
	var certs []*x509.Certificate

	for len(data) > 0 {
		block, rest := pem.Decode(data)
		if block == nil {
			break
		}
		data = rest

		switch block.Type {
		case c.certBlockType:
			cert, err := x509.ParseCertificate(block.Bytes)
			if err != nil {
				return nil, ErrParseCertificate
			}
			certs = append(certs, cert)
		case pkcs7BlockType:
			bundle, err := decodePKCS7(block.Bytes)
			if err != nil {
				return nil, err
			}
			certs = append(certs, bundle...)
		}
	}

	if len(certs) == 0 {
		return nil, ErrNoCertificates
	}

	return certs, nil
}

// decodeBinary decodes DER certificates, falling back to a DER PKCS#7 bundle.
// Data that is neither reports [ErrParseCertificate].
func (c *Certificate) decodeBinary(data []byte) ([]*x509.Certificate, error) {
	if certs, err := x509.ParseCertificates(data); err == nil && len(certs) > 0 {
		return certs, nil
	}
	certs, err := decodePKCS7(data)
	if errors.Is(err, ErrParsePKCS7) {
		return nil, ErrParseCertificate
	}
	return certs, err
}

// decodePKCS7 extracts the certificates of a PKCS#7 SignedData structure
// using Cloudflare's library.
func decodePKCS7(data []byte) ([]*x509.Certificate, error) {
	p, err := pkcs7.ParsePKCS7(data)
	if err != nil {
		return nil, ErrParsePKCS7
	}
	if len(p.Content.SignedData.Certificates) == 0 {
		return nil, ErrNoCertificatesInPKCS
	}
	return p.Content.SignedData.Certificates, nil
}

// decodeBase64 decodes data when it is entirely standard base64, surrounding
// whitespace and line breaks ignored.
func decodeBase64(data []byte) ([]byte, bool) {
	compact := bytes.Join(bytes.Fields(data), nil)
	if len(compact) == 0 {
		return nil, false
	}
	decoded, err := base64.StdEncoding.DecodeString(string(compact))
	if err != nil {
		return nil, false
	}
	return decoded, true
}

// Decode decodes a single certificate from data.
//
// For bundles the first certificate is returned; use [Certificate.DecodeMultiple]
// to read all of them.
func (c *Certificate) Decode(data []byte) (*x509.Certificate, error) {
	if c.IsPEM(data) {
		block, err := c.decodePEMBlock(data)
		if err != nil {
			return nil, err
		}

		data = block.Bytes
	}

	cert, err := x509.ParseCertificate(data)
	if err == nil {
		return cert, nil
	}

	certs, err := c.decodeBinary(data)
	if err != nil {
		return nil, err
	}

	return certs[0], nil
}

// EncodePEM encodes a certificate to PEM format.
func (c *Certificate) EncodePEM(cert *x509.Certificate) []byte {
	block := pem.Block{
		Type:  c.certBlockType,
		Bytes: cert.Raw,
	}
	return pem.EncodeToMemory(&block)
}

// EncodeDER encodes a certificate to DER format.
func (c *Certificate) EncodeDER(cert *x509.Certificate) []byte { return cert.Raw }

// EncodeMultiplePEM encodes multiple certificates to PEM format.
func (c *Certificate) EncodeMultiplePEM(certs []*x509.Certificate) []byte {
	var data []byte

	for _, cert := range certs {
		data = append(data, c.EncodePEM(cert)...)
	}

	return data
}

// EncodeMultipleDER encodes multiple certificates to DER format.
func (c *Certificate) EncodeMultipleDER(certs []*x509.Certificate) []byte {
	var data []byte

	for _, cert := range certs {
		data = append(data, c.EncodeDER(cert)...)
	}

	return data
}
