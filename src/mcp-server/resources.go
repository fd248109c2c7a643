// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	x509certs "github.com/H0llyW00dzZ/x509-cert-hierarchy/src/internal/x509/certs"
	x509hierarchy "github.com/H0llyW00dzZ/x509-cert-hierarchy/src/internal/x509/hierarchy"
	"github.com/H0llyW00dzZ/x509-cert-hierarchy/src/mcp-server/templates"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Resource URIs.
const (
	resourceConfigTemplate = "config://template"
	resourceHierarchyDocs  = "docs://hierarchy"
	resourceVersion        = "info://version"
)

// createResources returns the static resources of the server:
//   - config://template: Commented YAML configuration template
//   - docs://hierarchy: How the hierarchy is built and what the roles mean
//   - info://version: Server name, version, tools and supported formats
func createResources() []server.ServerResource {
	return []server.ServerResource{
		{
			Resource: mcp.NewResource(resourceConfigTemplate, "Configuration Template",
				mcp.WithResourceDescription("YAML configuration template for the MCP server"),
				mcp.WithMIMEType("application/yaml"),
			),
			Handler: handleConfigResource,
		},
		{
			Resource: mcp.NewResource(resourceHierarchyDocs, "Certificate Hierarchy",
				mcp.WithResourceDescription("How certificates are arranged into a hierarchy and what the roles mean"),
				mcp.WithMIMEType("text/markdown"),
			),
			Handler: handleHierarchyDocsResource,
		},
		{
			Resource: mcp.NewResource(resourceVersion, "Version Information",
				mcp.WithResourceDescription("Server version, tools and supported formats"),
				mcp.WithMIMEType("application/json"),
			),
			Handler: handleVersionResource,
		},
	}
}

// handleConfigResource serves the embedded YAML configuration template.
func handleConfigResource(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	content, err := templates.MagicEmbed.ReadFile(templates.ConfigExample)
	if err != nil {
		return nil, fmt.Errorf("failed to read config template: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      resourceConfigTemplate,
			MIMEType: "application/yaml",
			Text:     string(content),
		},
	}, nil
}

// handleHierarchyDocsResource serves the embedded hierarchy documentation.
func handleHierarchyDocsResource(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	content, err := templates.MagicEmbed.ReadFile(templates.HierarchyDoc)
	if err != nil {
		return nil, fmt.Errorf("failed to read hierarchy documentation: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      resourceHierarchyDocs,
			MIMEType: "text/markdown",
			Text:     string(content),
		},
	}, nil
}

// toolInfo describes a tool in the version resource and the instructions.
type toolInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// toolInfos lists the default tools in registration order.
func toolInfos() []toolInfo {
	tools, toolsWithDeps := createTools()

	infos := make([]toolInfo, 0, len(tools)+len(toolsWithDeps))
	for _, t := range tools {
		infos = append(infos, toolInfo{Name: t.Tool.Name, Description: t.Tool.Description})
	}
	for _, t := range toolsWithDeps {
		infos = append(infos, toolInfo{Name: t.Tool.Name, Description: t.Tool.Description})
	}
	return infos
}

// handleVersionResource serves server metadata: version, tools, resources
// and the supported output formats and digests.
func handleVersionResource(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	versionInfo := map[string]any{
		"name":             serverName,
		"version":          GetVersion(),
		"type":             "MCP Server",
		"tools":            toolInfos(),
		"resources":        []string{resourceConfigTemplate, resourceHierarchyDocs, resourceVersion},
		"supportedFormats": x509hierarchy.Formats,
		"supportedDigests": x509certs.Digests,
	}

	jsonData, err := json.MarshalIndent(versionInfo, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal version info: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      resourceVersion,
			MIMEType: "application/json",
			Text:     string(jsonData),
		},
	}, nil
}
