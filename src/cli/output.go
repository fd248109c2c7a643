// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"fmt"
	"strings"
	"time"

	x509certs "github.com/H0llyW00dzZ/x509-cert-hierarchy/src/internal/x509/certs"
	x509hierarchy "github.com/H0llyW00dzZ/x509-cert-hierarchy/src/internal/x509/hierarchy"
)

// render encodes forest in format. Certificate bundles list the forest in
// pre-order, so every issuer precedes the certificates it issued.
//
// The first leaf details are appended to the tree and table formats only.
func render(forest *x509hierarchy.Forest[*x509hierarchy.X509], format string, firstLeaf bool, now time.Time) ([]byte, error) {
	codec := x509certs.New()

	var out string
	switch format {
	case x509hierarchy.FormatTree:
		out = x509hierarchy.RenderASCIITree(forest, now)
	case x509hierarchy.FormatTable:
		out = x509hierarchy.RenderTable(forest, now)
	case x509hierarchy.FormatJSON:
		data, err := x509hierarchy.ToJSON(forest, now)
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case x509hierarchy.FormatPEM:
		return codec.EncodeMultiplePEM(x509hierarchy.Unwrap(forest.Certificates())), nil
	case x509hierarchy.FormatDER:
		return codec.EncodeMultipleDER(x509hierarchy.Unwrap(forest.Certificates())), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	if firstLeaf {
		if leaf, ok := forest.FirstLeaf(); ok {
			out += "\n" + formatDetails(x509certs.Describe(leaf.Certificate().Cert, now))
		}
	}

	return []byte(out), nil
}

// formatDetails renders certificate details as aligned "Label: value" lines.
func formatDetails(d x509certs.Details) string {
	var sb strings.Builder

	line := func(label, value string) { fmt.Fprintf(&sb, "%-21s %s\n", label+":", value) }

	line("Version", fmt.Sprintf("V%d", d.Version))
	line("Subject", d.Subject)
	line("Issuer", d.Issuer)
	line("Serial Number (hex)", d.SerialHex)
	line("Serial Number (dec)", d.SerialDecimal)
	line("Valid From", d.NotBefore.UTC().Format(time.RFC3339))
	line("Valid Until", d.NotAfter.UTC().Format(time.RFC3339))
	line("Validity", string(d.Validity))
	line("Public Key", d.PublicKey)
	line("Signature Algorithm", d.SignatureAlgorithm)
	line("Self-Signed", fmt.Sprint(d.SelfSigned))
	line("CA", fmt.Sprint(d.IsCA))
	for _, digest := range x509certs.Digests {
		line(string(digest), d.Fingerprints[digest])
	}

	return sb.String()
}
