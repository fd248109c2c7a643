// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package cli provides the command-line interface of the X.509 certificate hierarchy tool.
// It implements a Cobra-based command that loads certificates from files (concurrently)
// and TLS endpoints, optionally completes them with issuers downloaded via AIA, builds
// the issuer hierarchy and writes it as an ASCII tree, markdown table, JSON document or
// PEM/DER bundle. Progress and non-fatal failures go to the logger package, so stdout
// only carries the requested output.
package cli
