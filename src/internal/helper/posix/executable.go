// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package posix

import (
	"os"
	"strings"
)

// DefaultExecutableName is used when the program name cannot be determined.
const DefaultExecutableName = "x509-cert-hierarchy"

// GetExecutableName returns the name of the running executable without
// directory or ".exe" extension, for CLI usage strings.
func GetExecutableName() string { return ExecutableName(os.Args) }

// ExecutableName returns the clean program name of args[0], or
// [DefaultExecutableName] when args is empty.
//
// Both '/' and '\' are treated as separators whatever the current OS, so a
// Windows path reported on a Unix system is still reduced to its last element.
func ExecutableName(args []string) string {
	if len(args) == 0 {
		return DefaultExecutableName
	}

	parts := strings.FieldsFunc(args[0], func(r rune) bool { return r == '/' || r == '\\' })
	if len(parts) == 0 {
		return DefaultExecutableName
	}

	name := strings.TrimSuffix(parts[len(parts)-1], ".exe")
	if name == "" || name == "." || name == ".." {
		return DefaultExecutableName
	}

	return name
}
