// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"
	"crypto/x509"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	x509certs "github.com/H0llyW00dzZ/x509-cert-hierarchy/src/internal/x509/certs"
	x509chain "github.com/H0llyW00dzZ/x509-cert-hierarchy/src/internal/x509/chain"
	x509hierarchy "github.com/H0llyW00dzZ/x509-cert-hierarchy/src/internal/x509/hierarchy"
	"github.com/mark3labs/mcp-go/mcp"
)

// errNoInput is reported when an argument names no certificate at all.
var errNoInput = errors.New("no certificate input given")

// handleBuildCertHierarchy arranges the given certificates into their trust
// hierarchy.
//
// Parameters:
//   - ctx: Context for cancellation of issuer downloads
//   - request: MCP tool call request with certificates, format and resolve_missing
//   - deps: Server dependencies providing defaults and the issuer resolver
//
// Returns:
//   - The rendered hierarchy preceded by a one line summary
//   - Tool errors are returned as error results, never as Go errors
func handleBuildCertHierarchy(ctx context.Context, request mcp.CallToolRequest, deps *ServerDependencies) (*mcp.CallToolResult, error) {
	input, err := request.RequireString("certificates")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("certificates parameter required: %v", err)), nil
	}

	format := request.GetString("format", deps.Config.Defaults.Format)
	if !x509hierarchy.ValidFormat(format) {
		return mcp.NewToolResultError(fmt.Sprintf("unknown format %q, want one of %s", format, strings.Join(x509hierarchy.Formats, ", "))), nil
	}

	certs, err := loadCertificates(splitInputs(input))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load certificates: %v", err)), nil
	}

	return buildResult(ctx, request, deps, certs, format, fmt.Sprintf("%d certificate(s) loaded", len(certs)))
}

// handleFetchRemoteHierarchy arranges the certificates presented by a TLS
// server into their trust hierarchy. The handshake is not verified.
func handleFetchRemoteHierarchy(ctx context.Context, request mcp.CallToolRequest, deps *ServerDependencies) (*mcp.CallToolResult, error) {
	hostname, err := request.RequireString("hostname")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("hostname parameter required: %v", err)), nil
	}
	hostname = strings.TrimSpace(hostname)
	if hostname == "" {
		return mcp.NewToolResultError("hostname parameter required: empty hostname"), nil
	}

	port := request.GetInt("port", deps.Config.Defaults.Port)
	if port <= 0 || port > 65535 {
		return mcp.NewToolResultError(fmt.Sprintf("invalid port %d", port)), nil
	}

	format := request.GetString("format", deps.Config.Defaults.Format)
	if !x509hierarchy.ValidFormat(format) {
		return mcp.NewToolResultError(fmt.Sprintf("unknown format %q, want one of %s", format, strings.Join(x509hierarchy.Formats, ", "))), nil
	}

	certs, err := x509chain.FetchRemoteChain(ctx, hostname, port, deps.Config.Timeout())
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to fetch remote certificates: %v", err)), nil
	}

	return buildResult(ctx, request, deps, certs, format, fmt.Sprintf("%d certificate(s) fetched from %s:%d", len(certs), hostname, port))
}

// buildResult optionally completes certs with downloaded issuers, builds the
// forest and renders it in format.
func buildResult(ctx context.Context, request mcp.CallToolRequest, deps *ServerDependencies, certs []*x509.Certificate, format, summary string) (*mcp.CallToolResult, error) {
	if request.GetBool("resolve_missing", deps.Config.Defaults.ResolveMissing) {
		before := len(certs)
		resolved, err := deps.Resolver.ResolveMissingIssuers(ctx, certs)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to resolve missing issuers: %v", err)), nil
		}
		certs = resolved
		summary += fmt.Sprintf(", %d issuer(s) downloaded", len(certs)-before)
	}

	forest := x509hierarchy.Build(x509hierarchy.FromX509(certs))

	output, err := formatHierarchy(forest, format, time.Now())
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to render hierarchy: %v", err)), nil
	}

	deps.Logger.Printf("Built hierarchy of %d certificate(s) with %d top-level node(s)", forest.Len(), len(forest.Roots()))

	return mcp.NewToolResultText(fmt.Sprintf("Certificate hierarchy built: %s, %d in the hierarchy, %d top-level.\n\n%s",
		summary, forest.Len(), len(forest.Roots()), output)), nil
}

// handleDescribeCertificate describes the first certificate of the input with
// the fingerprint of the requested digest.
func handleDescribeCertificate(ctx context.Context, request mcp.CallToolRequest, deps *ServerDependencies) (*mcp.CallToolResult, error) {
	input, err := request.RequireString("certificate")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("certificate parameter required: %v", err)), nil
	}

	digest, err := x509certs.ParseDigest(request.GetString("digest", deps.Config.Defaults.Digest))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	certs, err := loadCertificates([]string{strings.TrimSpace(input)})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load certificate: %v", err)), nil
	}

	return mcp.NewToolResultText(formatDetails(x509certs.Describe(certs[0], time.Now()), digest)), nil
}

// splitInputs splits a comma-separated argument. PEM text is kept whole.
func splitInputs(input string) []string {
	if strings.Contains(input, "-----BEGIN") {
		return []string{strings.TrimSpace(input)}
	}

	var inputs []string
	for part := range strings.SplitSeq(input, ",") {
		if part = strings.TrimSpace(part); part != "" {
			inputs = append(inputs, part)
		}
	}
	return inputs
}

// loadCertificates decodes every input, in order. An input is read as a file
// when such a file exists; otherwise it is decoded as certificate data.
func loadCertificates(inputs []string) ([]*x509.Certificate, error) {
	if len(inputs) == 0 {
		return nil, errNoInput
	}

	codec := x509certs.New()

	var certs []*x509.Certificate
	for i, input := range inputs {
		data := []byte(input)
		if fileData, err := os.ReadFile(input); err == nil {
			data = fileData
		}

		decoded, err := codec.DecodeMultiple(data)
		if err != nil {
			return nil, fmt.Errorf("input %d: not a readable file or valid certificate data: %w", i+1, err)
		}
		certs = append(certs, decoded...)
	}

	return certs, nil
}

// formatHierarchy renders forest. DER output is base64 encoded to stay text.
func formatHierarchy(forest *x509hierarchy.Forest[*x509hierarchy.X509], format string, now time.Time) (string, error) {
	codec := x509certs.New()

	switch format {
	case x509hierarchy.FormatTable:
		return x509hierarchy.RenderTable(forest, now), nil
	case x509hierarchy.FormatJSON:
		data, err := x509hierarchy.ToJSON(forest, now)
		if err != nil {
			return "", err
		}
		return string(data), nil
	case x509hierarchy.FormatPEM:
		return string(codec.EncodeMultiplePEM(x509hierarchy.Unwrap(forest.Certificates()))), nil
	case x509hierarchy.FormatDER:
		return base64.StdEncoding.EncodeToString(codec.EncodeMultipleDER(x509hierarchy.Unwrap(forest.Certificates()))), nil
	default:
		return x509hierarchy.RenderASCIITree(forest, now), nil
	}
}

// formatDetails renders certificate details as aligned "Label: value" lines.
func formatDetails(d x509certs.Details, digest x509certs.Digest) string {
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
	line("Fingerprint "+string(digest), d.Fingerprints[digest])

	return sb.String()
}
