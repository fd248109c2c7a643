// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package templates

import (
	"embed"
	"io/fs"
)

// File names of the embedded templates.
const (
	// HierarchyDoc documents how the hierarchy is built and what the roles mean.
	HierarchyDoc = "hierarchy.md"
	// Instructions is the text/template rendered into the server instructions.
	Instructions = "instructions.md"
	// ConfigExample is the commented YAML configuration template.
	ConfigExample = "config.example.yaml"
	// ConfigSchema is the JSON schema configuration files are validated against.
	ConfigSchema = "config.schema.json"
)

//go:embed *.md *.yaml *.json
var embeddedFS embed.FS

// EmbedFS defines the interface for accessing embedded template files.
// It abstracts the [embed.FS] type so tests and callers depend on the
// behaviour rather than the concrete filesystem.
type EmbedFS interface {
	// ReadFile reads the named file and returns the contents.
	ReadFile(name string) ([]byte, error)

	// ReadDir reads the named directory and returns a list of directory entries.
	ReadDir(name string) ([]fs.DirEntry, error)

	// Open opens the named file for reading.
	Open(name string) (fs.File, error)
}

// embedFS wraps [embed.FS] to implement EmbedFS interface.
type embedFS struct{ fs embed.FS }

// ReadFile reads the named file and returns the contents.
func (e *embedFS) ReadFile(name string) ([]byte, error) { return e.fs.ReadFile(name) }

// ReadDir reads the named directory and returns a list of directory entries.
func (e *embedFS) ReadDir(name string) ([]fs.DirEntry, error) { return e.fs.ReadDir(name) }

// Open opens the named file for reading.
func (e *embedFS) Open(name string) (fs.File, error) { return e.fs.Open(name) }

// MagicEmbed is the embedded filesystem holding the server templates.
//
// Example usage:
//
//	doc, err := templates.MagicEmbed.ReadFile(templates.HierarchyDoc)
//	if err != nil {
//		return fmt.Errorf("failed to read hierarchy documentation: %w", err)
//	}
var MagicEmbed EmbedFS = &embedFS{fs: embeddedFS}
