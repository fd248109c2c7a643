// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package x509hierarchy reconstructs an issuer→subject forest from an unordered,
// possibly incomplete or duplicate-containing set of [X.509] certificates.
//
// The package is split in three layers:
//   - [Compare] and [Equal] define a deterministic identity order over anything
//     implementing [Certificate] (subject DN, issuer DN, serial number).
//   - [Build] de-duplicates the input with that order and assembles a [Forest]
//     of roots, orphans and their descendants.
//   - [X509] adapts [crypto/x509.Certificate] values to [Certificate], and the
//     render functions turn a forest of them into a tree, table or JSON.
//
// The hierarchy is structural only: signatures, validity periods and trust
// anchors are not verified.
//
// [X.509]: https://grokipedia.com/page/X.509
package x509hierarchy
