// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// x509-cert-hierarchy-mcp serves the X.509 certificate hierarchy tools over
// the Model Context Protocol on stdio.
//
// # Usage
//
//	x509-cert-hierarchy-mcp [--config FILE]
//	x509-cert-hierarchy-mcp --instructions
//	x509-cert-hierarchy-mcp --config-template > config.yaml
//
// The configuration file may also be named by MCP_X509_HIERARCHY_CONFIG_FILE.
// SIGINT and SIGTERM stop the server.
package main
