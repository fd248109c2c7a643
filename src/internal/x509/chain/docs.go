// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package x509chain gathers [X.509] certificates from the network.
// It provides capabilities to:
//   - Fetch the certificates a TLS endpoint presents during the handshake.
//   - Complete a certificate set by downloading missing issuers via [AIA] URLs,
//     with an LRU cache of downloads and bounded concurrency.
//
// Nothing here verifies signatures or trust; the certificates only feed the
// hierarchy builder.
//
// [X.509]: https://grokipedia.com/page/X.509
// [AIA]: https://grokipedia.com/page/Authority_information_access
package x509chain
