// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509hierarchy

import (
	"math/big"
	"strings"
)

// Certificate is the capability the hierarchy builder needs from a certificate.
//
// Any representation can implement it: a parsed [crypto/x509.Certificate]
// (see [X509]), a test fixture or a mock. Distinguished names are compared as
// opaque strings, so implementations should return a canonical rendering.
type Certificate interface {
	// SubjectName returns the canonical subject distinguished name.
	SubjectName() string
	// IssuerName returns the canonical issuer distinguished name.
	IssuerName() string
	// SerialNumber returns the serial number. A nil value is treated as zero.
	SerialNumber() *big.Int
}

var zeroSerial = new(big.Int)

// Compare orders two certificates by subject, then issuer, then serial number.
//
// It returns a negative number when a sorts before b, a positive number when a
// sorts after b and zero when both carry the same (subject, issuer, serial)
// triple. Names are compared byte-wise and case-sensitively; serial numbers are
// compared with arbitrary precision.
//
// Compare is total and never fails. Two certificates with different encodings
// that share the same triple compare equal and are collapsed by [Build].
func Compare(a, b Certificate) int {
	if c := strings.Compare(a.SubjectName(), b.SubjectName()); c != 0 {
		return c
	}
	if c := strings.Compare(a.IssuerName(), b.IssuerName()); c != 0 {
		return c
	}
	return serialOf(a).Cmp(serialOf(b))
}

// Equal reports whether a and b are the same certificate for ordering and
// de-duplication purposes.
func Equal(a, b Certificate) bool { return Compare(a, b) == 0 }

// IsSelfSigned reports whether the issuer name of c equals its subject name.
//
// This is a name check only; the signature is not verified.
func IsSelfSigned(c Certificate) bool { return c.IssuerName() == c.SubjectName() }

func serialOf(c Certificate) *big.Int {
	if s := c.SerialNumber(); s != nil {
		return s
	}
	return zeroSerial
}
