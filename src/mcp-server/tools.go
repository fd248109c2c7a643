// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"fmt"
	"strings"

	x509hierarchy "github.com/H0llyW00dzZ/x509-cert-hierarchy/src/internal/x509/hierarchy"
	"github.com/mark3labs/mcp-go/mcp"
)

// Tool names.
const (
	toolBuildHierarchy       = "build_cert_hierarchy"
	toolDescribeCertificate  = "describe_certificate"
	toolFetchRemoteHierarchy = "fetch_remote_hierarchy"
)

// createTools creates and returns all MCP tool definitions with their handlers.
//
// Returns:
//   - A slice of ToolDefinition for tools without dependencies
//   - A slice of ToolDefinitionWithDeps for tools that use the configuration
//     defaults, the issuer resolver or the logger
//
// The function defines the following tools:
//   - build_cert_hierarchy: Builds the hierarchy of certificates given as files or data
//   - describe_certificate: Describes a single certificate with a fingerprint
//   - fetch_remote_hierarchy: Builds the hierarchy presented by a TLS server
//
// Arguments without a value fall back to the configuration defaults.
func createTools() ([]ToolDefinition, []ToolDefinitionWithDeps) {
	formatHelp := fmt.Sprintf("Output format: %s (default from config, normally tree)", strings.Join(x509hierarchy.Formats, ", "))

	toolsWithDeps := []ToolDefinitionWithDeps{
		{
			Tool: mcp.NewTool(toolBuildHierarchy,
				mcp.WithDescription("Arrange X.509 certificates into the trust hierarchy they form, with every certificate placed below its issuer"),
				mcp.WithString("certificates",
					mcp.Required(),
					mcp.Description("Comma-separated list of certificate file paths or base64-encoded certificate data (PEM, DER or PKCS#7), or PEM text"),
				),
				mcp.WithString("format",
					mcp.Description(formatHelp),
				),
				mcp.WithBoolean("resolve_missing",
					mcp.Description("Download missing issuers from the AIA URLs of the certificates (default from config)"),
				),
			),
			Handler: handleBuildCertHierarchy,
		},
		{
			Tool: mcp.NewTool(toolDescribeCertificate,
				mcp.WithDescription("Describe a single X.509 certificate: names, serial number, validity, key, signature algorithm and fingerprint"),
				mcp.WithString("certificate",
					mcp.Required(),
					mcp.Description("Certificate file path or base64-encoded certificate data, or PEM text; the first certificate is described"),
				),
				mcp.WithString("digest",
					mcp.Description("Fingerprint digest: SHA-1, SHA-256, SHA-512 or SHA3-256 (default from config, normally SHA-256)"),
				),
			),
			Handler: handleDescribeCertificate,
		},
		{
			Tool: mcp.NewTool(toolFetchRemoteHierarchy,
				mcp.WithDescription("Fetch the certificates presented by a TLS server and arrange them into their trust hierarchy"),
				mcp.WithString("hostname",
					mcp.Required(),
					mcp.Description("Remote hostname to connect to"),
				),
				mcp.WithNumber("port",
					mcp.Description("Port number (default from config, normally 443)"),
				),
				mcp.WithString("format",
					mcp.Description(formatHelp),
				),
				mcp.WithBoolean("resolve_missing",
					mcp.Description("Download missing issuers from the AIA URLs of the certificates (default from config)"),
				),
			),
			Handler: handleFetchRemoteHierarchy,
		},
	}

	return nil, toolsWithDeps
}
