// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509hierarchy_test

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	x509hierarchy "github.com/H0llyW00dzZ/x509-cert-hierarchy/src/internal/x509/hierarchy"
)

// fakeCert is a name-only certificate used to exercise the builder.
type fakeCert struct {
	subject string
	issuer  string
	serial  *big.Int
}

func (c *fakeCert) SubjectName() string    { return c.subject }
func (c *fakeCert) IssuerName() string     { return c.issuer }
func (c *fakeCert) SerialNumber() *big.Int { return c.serial }

func fake(subject, issuer string, serial int64) *fakeCert {
	return &fakeCert{subject: subject, issuer: issuer, serial: big.NewInt(serial)}
}

// shape renders a forest as "subject/serial" lines indented by depth.
func shape(f *x509hierarchy.Forest[*fakeCert]) []string {
	var lines []string
	f.Walk(func(n *x509hierarchy.Node[*fakeCert], depth int) bool {
		c := n.Certificate()
		line := ""
		for range depth {
			line += "  "
		}
		lines = append(lines, line+c.subject+"/"+c.serial.String())
		return true
	})
	return lines
}

var (
	testNotBefore = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	testNotAfter  = time.Date(2036, 1, 1, 0, 0, 0, 0, time.UTC)
	testNow       = time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
)

// issued is a generated certificate together with its private key.
type issued struct {
	cert *x509.Certificate
	key  *ecdsa.PrivateKey
}

// issue creates a certificate for cn signed by parent, or self-signed when
// parent is nil.
func issue(t *testing.T, cn string, serial int64, parent *issued, isCA bool) *issued {
	t.Helper()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	tmpl := &x509.Certificate{
		SerialNumber:          big.NewInt(serial),
		Subject:               pkix.Name{CommonName: cn, Organization: []string{"Hierarchy Test"}},
		NotBefore:             testNotBefore,
		NotAfter:              testNotAfter,
		IsCA:                  isCA,
		BasicConstraintsValid: true,
	}
	if isCA {
		tmpl.KeyUsage = x509.KeyUsageCertSign | x509.KeyUsageDigitalSignature
	}

	signerCert, signerKey := tmpl, key
	if parent != nil {
		signerCert, signerKey = parent.cert, parent.key
	}

	der, err := x509.CreateCertificate(rand.Reader, tmpl, signerCert, &key.PublicKey, signerKey)
	require.NoError(t, err)

	cert, err := x509.ParseCertificate(der)
	require.NoError(t, err)

	return &issued{cert: cert, key: key}
}

// chain returns a root, an intermediate issued by it and a leaf issued by
// the intermediate.
func chain(t *testing.T) (root, inter, leaf *issued) {
	t.Helper()
	root = issue(t, "Test Root CA", 1, nil, true)
	inter = issue(t, "Test Intermediate CA", 2, root, true)
	leaf = issue(t, "leaf.example.com", 3, inter, false)
	return root, inter, leaf
}
