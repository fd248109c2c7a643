// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"

	x509chain "github.com/H0llyW00dzZ/x509-cert-hierarchy/src/internal/x509/chain"
	"github.com/H0llyW00dzZ/x509-cert-hierarchy/src/logger"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// serverName is announced to clients during initialization.
const serverName = "X.509 Certificate Hierarchy"

// ToolHandler defines the signature for tool handlers that matches [MCP] server expectations.
//
// [MCP]: https://modelcontextprotocol.io/docs/getting-started/intro
type ToolHandler = func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error)

// ToolHandlerWithDeps defines tool handlers that need the server
// configuration, the issuer resolver or the logger.
type ToolHandlerWithDeps func(ctx context.Context, request mcp.CallToolRequest, deps *ServerDependencies) (*mcp.CallToolResult, error)

// ToolDefinition holds a tool definition and its handler.
type ToolDefinition struct {
	Tool    mcp.Tool
	Handler ToolHandler
}

// ToolDefinitionWithDeps holds a tool definition whose handler receives the
// server dependencies.
type ToolDefinitionWithDeps struct {
	Tool    mcp.Tool
	Handler ToolHandlerWithDeps
}

// ServerDependencies holds all dependencies needed to create the MCP server.
//
// Fields:
//   - Config: Server configuration with the tool defaults
//   - Version: Server version string for identification and User-Agent headers
//   - Logger: Destination of the JSON log lines
//   - Resolver: Issuer resolver shared by all tool calls, so its cache is too
//   - Tools: Tool definitions without dependencies
//   - ToolsWithDeps: Tool definitions that receive the dependencies
//   - Resources: Static and dynamic resources provided by the server
//   - Instructions: Text sent to clients during initialization
//
// This struct is filled by ServerBuilder and should not be instantiated directly.
type ServerDependencies struct {
	Config        *Config
	Version       string
	Logger        logger.Logger
	Resolver      *x509chain.Resolver
	Tools         []ToolDefinition
	ToolsWithDeps []ToolDefinitionWithDeps
	Resources     []server.ServerResource
	Instructions  string
}

// ServerBuilder helps construct the [MCP] server with proper dependencies using a fluent interface.
//
// Example:
//
//	s, err := NewServerBuilder().
//	    WithConfig(config).
//	    WithVersion("0.1.0").
//	    WithDefaultTools().
//	    WithResources(createResources()...).
//	    Build()
//
// [MCP]: https://modelcontextprotocol.io/docs/getting-started/intro
type ServerBuilder struct{ deps ServerDependencies }

// NewServerBuilder creates a new server builder with default empty dependencies.
func NewServerBuilder() *ServerBuilder { return &ServerBuilder{} }

// WithConfig sets the server configuration. A nil config means [DefaultConfig].
func (b *ServerBuilder) WithConfig(config *Config) *ServerBuilder {
	b.deps.Config = config
	return b
}

// WithVersion sets the server version string.
func (b *ServerBuilder) WithVersion(version string) *ServerBuilder {
	b.deps.Version = version
	return b
}

// WithLogger sets the logger. Without one the server stays silent.
func (b *ServerBuilder) WithLogger(log logger.Logger) *ServerBuilder {
	b.deps.Logger = log
	return b
}

// WithResolver sets the issuer resolver. Without one, Build creates a
// resolver from the configured timeout and cache settings.
func (b *ServerBuilder) WithResolver(r *x509chain.Resolver) *ServerBuilder {
	b.deps.Resolver = r
	return b
}

// WithTools adds tool definitions that don't need the server dependencies.
func (b *ServerBuilder) WithTools(tools ...ToolDefinition) *ServerBuilder {
	b.deps.Tools = append(b.deps.Tools, tools...)
	return b
}

// WithToolsWithDeps adds tool definitions that receive the server dependencies.
func (b *ServerBuilder) WithToolsWithDeps(tools ...ToolDefinitionWithDeps) *ServerBuilder {
	b.deps.ToolsWithDeps = append(b.deps.ToolsWithDeps, tools...)
	return b
}

// WithResources adds static and dynamic resources to the MCP server.
// Clients access resources using URIs like "info://version".
func (b *ServerBuilder) WithResources(resources ...server.ServerResource) *ServerBuilder {
	b.deps.Resources = append(b.deps.Resources, resources...)
	return b
}

// WithInstructions sets the instructions sent to clients during initialization.
func (b *ServerBuilder) WithInstructions(instructions string) *ServerBuilder {
	b.deps.Instructions = instructions
	return b
}

// WithDefaultTools adds the certificate hierarchy tools returned by createTools.
func (b *ServerBuilder) WithDefaultTools() *ServerBuilder {
	tools, toolsWithDeps := createTools()
	b.deps.Tools = append(b.deps.Tools, tools...)
	b.deps.ToolsWithDeps = append(b.deps.ToolsWithDeps, toolsWithDeps...)
	return b
}

// Dependencies fills in the missing dependencies and returns them.
// Build calls it; tests use it to call handlers directly.
func (b *ServerBuilder) Dependencies() *ServerDependencies {
	if b.deps.Config == nil {
		b.deps.Config = DefaultConfig()
	}
	if b.deps.Logger == nil {
		b.deps.Logger = logger.NewMCPLogger(nil, true)
	}
	if b.deps.Resolver == nil {
		httpConfig := x509chain.NewHTTPConfig(b.deps.Version)
		httpConfig.Timeout = b.deps.Config.Timeout()
		cache := x509chain.NewIssuerCache(b.deps.Config.IssuerCacheConfig())
		b.deps.Resolver = x509chain.NewResolver(httpConfig, cache, b.deps.Logger)
	}
	return &b.deps
}

// Build creates the [MCP] server with all configured dependencies.
//
// [MCP]: https://modelcontextprotocol.io/docs/getting-started/intro
func (b *ServerBuilder) Build() (*server.MCPServer, error) {
	deps := b.Dependencies()

	opts := []server.ServerOption{
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, true),
		server.WithRecovery(),
	}
	if deps.Instructions != "" {
		opts = append(opts, server.WithInstructions(deps.Instructions))
	}

	s := server.NewMCPServer(serverName, deps.Version, opts...)

	for _, tool := range deps.Tools {
		s.AddTool(tool.Tool, tool.Handler)
	}

	for _, tool := range deps.ToolsWithDeps {
		s.AddTool(tool.Tool, bindDeps(tool.Handler, deps))
	}

	for _, resource := range deps.Resources {
		s.AddResource(resource.Resource, resource.Handler)
	}

	return s, nil
}

// bindDeps adapts a handler that needs dependencies to a [ToolHandler].
func bindDeps(handler ToolHandlerWithDeps, deps *ServerDependencies) ToolHandler {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handler(ctx, request, deps)
	}
}
