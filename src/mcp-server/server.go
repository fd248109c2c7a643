// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/H0llyW00dzZ/x509-cert-hierarchy/src/logger"
	"github.com/H0llyW00dzZ/x509-cert-hierarchy/src/version"
	"github.com/mark3labs/mcp-go/server"
)

var appVersion = version.Version // default version

// GetVersion returns the current version of the MCP server, as set by [Run].
func GetVersion() string {
	return appVersion
}

// Run starts the MCP server on stdio and serves until stdin closes or the
// process receives SIGINT or SIGTERM.
//
// Parameters:
//   - version: Version string announced to clients
//   - configPath: Config file path; when empty MCP_X509_HIERARCHY_CONFIG_FILE is used,
//     and without either the defaults apply
//
// Returns:
//   - error: Config, build or transport error, or an error wrapping
//     [context.Canceled] after a shutdown signal
func Run(version, configPath string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return serve(ctx, version, configPath, os.Stdin, os.Stdout)
}

// serve builds the server and runs the stdio transport on in and out until
// ctx ends or the transport stops.
func serve(ctx context.Context, version, configPath string, in io.Reader, out io.Writer) error {
	appVersion = version

	config, err := loadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, closeLog, err := openLogger(config)
	if err != nil {
		return err
	}
	defer closeLog()

	instructions, err := loadInstructions()
	if err != nil {
		return fmt.Errorf("failed to load instructions: %w", err)
	}

	s, err := NewServerBuilder().
		WithConfig(config).
		WithVersion(version).
		WithLogger(log).
		WithDefaultTools().
		WithResources(createResources()...).
		WithInstructions(instructions).
		Build()
	if err != nil {
		return fmt.Errorf("failed to build server: %w", err)
	}

	log.Printf("MCP server %s started", version)

	stdioServer := server.NewStdioServer(s)

	errChan := make(chan error, 1)
	go func() {
		errChan <- stdioServer.Listen(ctx, in, out)
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		log.Printf("MCP server shutting down")
		return fmt.Errorf("server shutdown: %w", ctx.Err())
	}
}

// openLogger returns the JSON logger configured by config.Log.File.
// Stdout carries the protocol, so without a file the logger is silent.
func openLogger(config *Config) (logger.Logger, func(), error) {
	if config.Log.File == "" {
		return logger.NewMCPLogger(nil, true), func() {}, nil
	}

	f, err := os.OpenFile(config.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return logger.NewMCPLogger(f, false), func() { f.Close() }, nil
}
