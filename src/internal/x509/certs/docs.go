// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package x509certs provides encoding, decoding and inspection helpers for [X.509] certificates.
// It reads certificate bags in [PEM], DER, [PKCS7] and base64 form, writes PEM and DER
// bundles, and describes single certificates (serial, validity, key, fingerprints)
// for display next to the certificate hierarchy.
//
// [X.509]: https://grokipedia.com/page/X.509
// [PKCS7]: https://grokipedia.com/page/PKCS_7
// [PEM]: https://grokipedia.com/page/PEM#privacy-enhanced-mail
package x509certs
