// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package logger provides abstraction and implementation for logging operations.
// It defines the Logger interface and provides two implementations: CLILogger for
// human-readable command-line output on stderr and MCPLogger for JSON lines in
// MCP server environments, where stdout carries the protocol. MCPLogger encodes
// each line through the pooled buffers of the gc package.
package logger
