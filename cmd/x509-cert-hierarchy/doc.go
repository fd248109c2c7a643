// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// x509-cert-hierarchy is a command-line tool that reconstructs the issuer
// hierarchy of an unordered set of X.509 certificates.
//
// # Installation
//
// Install with Go 1.25.5 or later:
//
//	go install github.com/H0llyW00dzZ/x509-cert-hierarchy/cmd/x509-cert-hierarchy@latest
//
// # Usage
//
//	x509-cert-hierarchy -f FILE [-f FILE...] [--remote HOST[:PORT]] [FLAGS]
//
// # Flags
//
//	-f, --file             Input certificate file (PEM, DER, PKCS#7 or base64); repeatable
//	-r, --remote           Fetch the certificates presented by HOST[:PORT]
//	    --resolve-missing  Download missing issuers via AIA before building
//	    --format           tree (default), table, json, pem or der
//	-o, --output           Destination file (default: stdout)
//	    --first-leaf       Print the details of the first leaf after the hierarchy
//	    --timeout          Timeout for network operations (default 10s)
//
// # Examples
//
// Show a bundle as a tree:
//
//	x509-cert-hierarchy -f bundle.pem
//
// Combine several files and print a markdown table:
//
//	x509-cert-hierarchy -f leaf.crt -f intermediates.p7b --format table
//
// Inspect what a server presents, completing it through AIA:
//
//	x509-cert-hierarchy --remote example.com --resolve-missing --first-leaf
//
// Rewrite a bundle with every issuer before the certificates it issued:
//
//	x509-cert-hierarchy -f bundle.pem --format pem -o sorted.pem
//
// The hierarchy is built from names only; signatures and trust are not verified.
package main
