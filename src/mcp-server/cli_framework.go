// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"fmt"

	"github.com/H0llyW00dzZ/x509-cert-hierarchy/src/internal/helper/posix"
	"github.com/H0llyW00dzZ/x509-cert-hierarchy/src/mcp-server/templates"
	"github.com/spf13/cobra"
)

// NewCommand returns the root command of the MCP server binary.
//
// Without flags the command serves MCP on stdio. --instructions prints the
// text sent to clients, --config-template prints the YAML configuration
// template and --config selects the configuration file.
//
// Example:
//
//	if err := mcpserver.NewCommand(version).ExecuteContext(ctx); err != nil {
//	    os.Exit(1)
//	}
func NewCommand(version string) *cobra.Command {
	exeName := posix.GetExecutableName()

	var (
		configPath       string
		showInstructions bool
		showTemplate     bool
	)

	cmd := &cobra.Command{
		Use:   exeName,
		Short: "X.509 certificate hierarchy MCP server",
		Long: `Serves the X.509 certificate hierarchy tools over the Model Context Protocol on stdio.

The configuration file (JSON or YAML) is taken from --config or the ` + ConfigFileEnv + `
environment variable; without either the defaults apply.`,
		Example: fmt.Sprintf(`  %[1]s
  %[1]s --config config.yaml
  %[1]s --config-template > config.yaml`, exeName),
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch {
			case showInstructions:
				instructions, err := loadInstructions()
				if err != nil {
					return err
				}
				_, err = fmt.Fprint(cmd.OutOrStdout(), instructions)
				return err
			case showTemplate:
				content, err := templates.MagicEmbed.ReadFile(templates.ConfigExample)
				if err != nil {
					return fmt.Errorf("failed to read config template: %w", err)
				}
				_, err = cmd.OutOrStdout().Write(content)
				return err
			default:
				return Run(version, configPath)
			}
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to MCP server configuration file (.json, .yaml, .yml)")
	cmd.Flags().BoolVar(&showInstructions, "instructions", false, "print the instructions sent to MCP clients")
	cmd.Flags().BoolVar(&showTemplate, "config-template", false, "print the YAML configuration template")
	cmd.MarkFlagsMutuallyExclusive("instructions", "config-template")

	return cmd
}
