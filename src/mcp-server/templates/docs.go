// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package templates provides embedded filesystem access for the MCP server
// templates: the hierarchy documentation served as a resource, the server
// instructions template, the YAML configuration template and the JSON schema
// configuration files are validated against.
//
// Example usage:
//
//	import "github.com/H0llyW00dzZ/x509-cert-hierarchy/src/mcp-server/templates"
//
//	schema, err := templates.MagicEmbed.ReadFile(templates.ConfigSchema)
//	if err != nil {
//		return fmt.Errorf("failed to read config schema: %w", err)
//	}
//
//	entries, err := templates.MagicEmbed.ReadDir(".")
//	if err != nil {
//		return fmt.Errorf("failed to list templates: %w", err)
//	}
package templates
