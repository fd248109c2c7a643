// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/H0llyW00dzZ/x509-cert-hierarchy/src/internal/helper/gc"
	x509hierarchy "github.com/H0llyW00dzZ/x509-cert-hierarchy/src/internal/x509/hierarchy"
	"github.com/H0llyW00dzZ/x509-cert-hierarchy/src/mcp-server/templates"
)

// instructionData holds the data used to populate the MCP server instructions template.
type instructionData struct {
	Tools   []toolInfo
	Formats []string
}

// loadInstructions renders the embedded instructions template with the
// default tools and returns the text sent to clients during initialization.
func loadInstructions() (string, error) {
	templateBytes, err := templates.MagicEmbed.ReadFile(templates.Instructions)
	if err != nil {
		return "", fmt.Errorf("failed to load MCP server instructions template: %w", err)
	}

	tmpl, err := template.New("instructions").
		Funcs(template.FuncMap{"join": strings.Join}).
		Parse(string(templateBytes))
	if err != nil {
		return "", fmt.Errorf("failed to parse instructions template: %w", err)
	}

	buf := gc.Default.Get()
	defer func() {
		buf.Reset()
		gc.Default.Put(buf)
	}()

	data := instructionData{Tools: toolInfos(), Formats: x509hierarchy.Formats}
	if err := tmpl.Execute(buf, data); err != nil {
		return "", fmt.Errorf("failed to execute instructions template: %w", err)
	}

	return buf.String(), nil
}
