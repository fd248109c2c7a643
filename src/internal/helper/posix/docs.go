// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package posix provides [POSIX]-compliant helper functions for cross-platform compatibility.
//
// Key functions:
//   - GetExecutableName: Returns the executable name without extension for CLI usage
//   - ExecutableName: The same, for an explicit argument vector
//
// Both accept Windows-style paths on [Unix-like] systems and vice versa:
//
//   - Linux/macOS: "/usr/bin/x509-cert-hierarchy" → "x509-cert-hierarchy"
//   - Windows: "C:\bin\x509-cert-hierarchy.exe" → "x509-cert-hierarchy"
//   - Fallback: Empty args → [DefaultExecutableName]
//
// [POSIX]: https://grokipedia.com/page/POSIX
// [Unix-like]: https://grokipedia.com/page/Unix-like
package posix
