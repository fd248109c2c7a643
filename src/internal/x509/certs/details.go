// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509certs

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rsa"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"crypto/x509"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"golang.org/x/crypto/sha3"
)

// ErrUnsupportedDigest indicates that the requested fingerprint algorithm is not known.
var ErrUnsupportedDigest = errors.New("x509certs: unsupported fingerprint digest")

// Digest names a fingerprint algorithm.
type Digest string

const (
	DigestSHA1     Digest = "SHA-1"
	DigestSHA256   Digest = "SHA-256"
	DigestSHA512   Digest = "SHA-512"
	DigestSHA3_256 Digest = "SHA3-256"
)

// Digests lists the supported fingerprint algorithms in display order.
var Digests = []Digest{DigestSHA1, DigestSHA256, DigestSHA512, DigestSHA3_256}

// ParseDigest maps a user supplied name such as "sha256" or "SHA3-256" to a Digest.
func ParseDigest(name string) (Digest, error) {
	normalized := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(name), "-", ""))
	for _, d := range Digests {
		if strings.ReplaceAll(string(d), "-", "") == normalized {
			return d, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedDigest, name)
}

// Fingerprint hashes the DER encoding of cert and renders it as colon
// separated upper-case hex, e.g. "AB:CD:...".
func Fingerprint(cert *x509.Certificate, digest Digest) (string, error) {
	var sum []byte
	switch digest {
	case DigestSHA1:
		s := sha1.Sum(cert.Raw)
		sum = s[:]
	case DigestSHA256:
		s := sha256.Sum256(cert.Raw)
		sum = s[:]
	case DigestSHA512:
		s := sha512.Sum512(cert.Raw)
		sum = s[:]
	case DigestSHA3_256:
		s := sha3.Sum256(cert.Raw)
		sum = s[:]
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedDigest, digest)
	}
	return colonHex(sum), nil
}

func colonHex(b []byte) string {
	encoded := strings.ToUpper(hex.EncodeToString(b))
	var sb strings.Builder
	sb.Grow(len(encoded) + len(b))
	for i := 0; i < len(encoded); i += 2 {
		if i > 0 {
			sb.WriteByte(':')
		}
		sb.WriteString(encoded[i : i+2])
	}
	return sb.String()
}

// Validity is the state of a certificate validity period at a given instant.
type Validity string

const (
	ValidityValid       Validity = "valid"
	ValidityNotYetValid Validity = "not yet valid"
	ValidityExpired     Validity = "expired"
)

// ValidityAt reports whether cert is valid, not yet valid or expired at now.
func ValidityAt(cert *x509.Certificate, now time.Time) Validity {
	switch {
	case now.Before(cert.NotBefore):
		return ValidityNotYetValid
	case now.After(cert.NotAfter):
		return ValidityExpired
	default:
		return ValidityValid
	}
}

// PublicKeyInfo returns the public key algorithm of cert, its size in bits and,
// for ECDSA, the curve name. Unknown key types report the algorithm only.
func PublicKeyInfo(cert *x509.Certificate) (algorithm string, bits int, detail string) {
	switch key := cert.PublicKey.(type) {
	case *rsa.PublicKey:
		return "RSA", key.Size() * 8, ""
	case *ecdsa.PublicKey:
		params := key.Curve.Params()
		return "ECDSA", params.BitSize, params.Name
	case ed25519.PublicKey:
		return "Ed25519", 256, ""
	default:
		return cert.PublicKeyAlgorithm.String(), 0, ""
	}
}

// Details is the flattened view of a certificate shown next to the hierarchy.
type Details struct {
	Version            int               `json:"version"`
	Subject            string            `json:"subject"`
	Issuer             string            `json:"issuer"`
	SerialHex          string            `json:"serialHex"`
	SerialDecimal      string            `json:"serialDecimal"`
	NotBefore          time.Time         `json:"notBefore"`
	NotAfter           time.Time         `json:"notAfter"`
	Validity           Validity          `json:"validity"`
	PublicKey          string            `json:"publicKey"`
	SignatureAlgorithm string            `json:"signatureAlgorithm"`
	SelfSigned         bool              `json:"selfSigned"`
	IsCA               bool              `json:"isCA"`
	HasExtensions      bool              `json:"hasExtensions"`
	Fingerprints       map[Digest]string `json:"fingerprints"`
}

// Describe collects the details of cert, evaluating its validity at now.
func Describe(cert *x509.Certificate, now time.Time) Details {
	d := Details{
		Version:            cert.Version,
		Subject:            cert.Subject.String(),
		Issuer:             cert.Issuer.String(),
		SerialHex:          SerialHex(cert),
		SerialDecimal:      SerialDecimal(cert),
		NotBefore:          cert.NotBefore,
		NotAfter:           cert.NotAfter,
		Validity:           ValidityAt(cert, now),
		PublicKey:          formatPublicKey(cert),
		SignatureAlgorithm: cert.SignatureAlgorithm.String(),
		SelfSigned:         string(cert.RawSubject) == string(cert.RawIssuer),
		IsCA:               cert.IsCA,
		HasExtensions:      len(cert.Extensions) > 0,
		Fingerprints:       make(map[Digest]string, len(Digests)),
	}

	for _, digest := range Digests {
		// Every entry of Digests is supported by Fingerprint.
		fp, _ := Fingerprint(cert, digest)
		d.Fingerprints[digest] = fp
	}

	return d
}

// SerialHex renders the serial number as 0x-prefixed upper-case hex.
func SerialHex(cert *x509.Certificate) string {
	if cert.SerialNumber == nil {
		return "0x0"
	}
	if cert.SerialNumber.Sign() < 0 {
		return "-0x" + strings.ToUpper(new(big.Int).Neg(cert.SerialNumber).Text(16))
	}
	return "0x" + strings.ToUpper(cert.SerialNumber.Text(16))
}

// SerialDecimal renders the serial number in base 10.
func SerialDecimal(cert *x509.Certificate) string {
	if cert.SerialNumber == nil {
		return "0"
	}
	return cert.SerialNumber.String()
}

// formatPublicKey renders e.g. "ECDSA 256-bit (P-256)".
func formatPublicKey(cert *x509.Certificate) string {
	algorithm, bits, detail := PublicKeyInfo(cert)
	size := "?"
	if bits > 0 {
		size = fmt.Sprintf("%d", bits)
	}
	s := fmt.Sprintf("%s %s-bit", algorithm, size)
	if detail != "" {
		s += " (" + detail + ")"
	}
	return s
}
