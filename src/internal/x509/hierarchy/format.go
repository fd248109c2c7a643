// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509hierarchy

import "slices"

// Output formats shared by the command line and the MCP tools.
const (
	FormatTree  = "tree"
	FormatTable = "table"
	FormatJSON  = "json"
	FormatPEM   = "pem"
	FormatDER   = "der"
)

// Formats lists the output formats in display order.
var Formats = []string{FormatTree, FormatTable, FormatJSON, FormatPEM, FormatDER}

// ValidFormat reports whether format is one of [Formats].
func ValidFormat(format string) bool { return slices.Contains(Formats, format) }
