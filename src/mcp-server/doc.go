// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package mcpserver provides the [MCP] server exposing the [X509] certificate
// hierarchy to automation clients over stdio.
//
// Tools:
//   - build_cert_hierarchy: arranges certificates given as files or data into their trust hierarchy
//   - describe_certificate: describes one certificate with a fingerprint
//   - fetch_remote_hierarchy: arranges the certificates presented by a TLS server
//
// Resources: config://template, docs://hierarchy and info://version.
//
// The server is assembled with [ServerBuilder] and configured from a JSON or
// YAML file validated against an embedded schema.
//
// [X509]: https://grokipedia.com/page/X.509
// [MCP]: https://modelcontextprotocol.io/docs/getting-started/intro
package mcpserver
