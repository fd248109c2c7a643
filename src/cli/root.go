// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/H0llyW00dzZ/x509-cert-hierarchy/src/internal/helper/posix"
	x509chain "github.com/H0llyW00dzZ/x509-cert-hierarchy/src/internal/x509/chain"
	x509hierarchy "github.com/H0llyW00dzZ/x509-cert-hierarchy/src/internal/x509/hierarchy"
	"github.com/H0llyW00dzZ/x509-cert-hierarchy/src/logger"
)

var (
	// ErrInputRequired is returned when neither --file nor --remote is given.
	ErrInputRequired = errors.New("cli: at least one --file or --remote input is required")

	// ErrUnknownFormat is returned for an unsupported --format value.
	ErrUnknownFormat = errors.New("cli: unknown output format")

	// ErrInvalidRemote is returned when --remote is not HOST or HOST:PORT.
	ErrInvalidRemote = errors.New("cli: invalid remote address")
)

var (
	// OperationPerformed reports whether the last execution got past flag
	// validation and started loading certificates.
	OperationPerformed bool
	// OperationPerformedSuccessfully reports whether the last execution wrote its output.
	OperationPerformedSuccessfully bool
)

// options holds the parsed flags of one invocation.
type options struct {
	files          []string
	remote         string
	resolveMissing bool
	format         string
	output         string
	firstLeaf      bool
	timeout        time.Duration
}

// Execute runs the root command with the process arguments.
//
// Errors are returned rather than printed so that the caller decides how to
// report them and which exit code to use.
//
// Parameters:
//   - ctx: Context for cancellation of network operations
//   - version: Application version shown by --version and sent as User-Agent
//   - log: Destination of progress and non-fatal failure messages
//
// Returns:
//   - error: [ErrInputRequired], [ErrUnknownFormat], [ErrInvalidRemote] or an I/O error
func Execute(ctx context.Context, version string, log logger.Logger) error {
	return NewCommand(version, log).ExecuteContext(ctx)
}

// NewCommand builds the root command. Arguments default to os.Args and can be
// replaced with SetArgs.
func NewCommand(version string, log logger.Logger) *cobra.Command {
	opts := &options{}
	name := posix.GetExecutableName()

	cmd := &cobra.Command{
		Use:   name + " -f FILE [-f FILE...] [--remote HOST[:PORT]]",
		Short: "Reconstruct the issuer hierarchy of a set of X.509 certificates",
		Long: `Reads certificates from PEM, DER, PKCS#7 or base64 files and/or a TLS endpoint,
removes duplicates and arranges them into a forest of self-signed roots and
orphans, each with the certificates they issued below them.

Signatures, validity periods and trust are not verified.`,
		Example: fmt.Sprintf(`  %[1]s -f bundle.pem
  %[1]s -f leaf.crt -f chain.p7b --format table
  %[1]s --remote example.com --resolve-missing --first-leaf
  %[1]s -f bundle.pem --format pem -o sorted.pem`, name),
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, opts, version, log)
		},
	}

	flags := cmd.Flags()
	flags.StringArrayVarP(&opts.files, "file", "f", nil, "input certificate file (PEM, DER, PKCS#7 or base64); repeatable")
	flags.StringVarP(&opts.remote, "remote", "r", "", "fetch the certificates presented by HOST[:PORT] (default port 443)")
	flags.BoolVar(&opts.resolveMissing, "resolve-missing", false, "download missing issuers via AIA before building")
	flags.StringVar(&opts.format, "format", x509hierarchy.FormatTree, "output format: tree, table, json, pem or der")
	flags.StringVarP(&opts.output, "output", "o", "", "output to OUTPUT_FILE (default: stdout)")
	flags.BoolVar(&opts.firstLeaf, "first-leaf", false, "print the details of the first leaf after the hierarchy")
	flags.DurationVar(&opts.timeout, "timeout", x509chain.DefaultHTTPTimeout, "timeout for network operations")

	return cmd
}

// run loads the inputs, builds the hierarchy and writes it.
func run(cmd *cobra.Command, opts *options, version string, log logger.Logger) error {
	OperationPerformed = false
	OperationPerformedSuccessfully = false

	if len(opts.files) == 0 && opts.remote == "" {
		return ErrInputRequired
	}
	if !x509hierarchy.ValidFormat(opts.format) {
		return fmt.Errorf("%w: %q", ErrUnknownFormat, opts.format)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	OperationPerformed = true

	certs, err := loadFiles(ctx, opts.files)
	if err != nil {
		return err
	}

	if opts.remote != "" {
		host, port, err := parseRemote(opts.remote)
		if err != nil {
			return err
		}
		remoteCerts, err := x509chain.FetchRemoteChain(ctx, host, port, opts.timeout)
		if err != nil {
			return err
		}
		log.Printf("Fetched %d certificate(s) from %s:%d", len(remoteCerts), host, port)
		certs = append(certs, remoteCerts...)
	}

	if opts.resolveMissing {
		httpConfig := x509chain.NewHTTPConfig(version)
		httpConfig.Timeout = opts.timeout
		resolver := x509chain.NewResolver(httpConfig, x509chain.NewIssuerCache(x509chain.IssuerCacheConfig{}), log)
		if certs, err = resolver.ResolveMissingIssuers(ctx, certs); err != nil {
			return err
		}
	}

	forest := x509hierarchy.Build(x509hierarchy.FromX509(certs))
	log.Printf("Built hierarchy of %d certificate(s) with %d top-level node(s)", forest.Len(), len(forest.Roots()))

	data, err := render(forest, opts.format, opts.firstLeaf, time.Now())
	if err != nil {
		return err
	}

	if opts.output != "" {
		if err := os.WriteFile(opts.output, data, 0o644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		log.Printf("Output written to %s", opts.output)
	} else if _, err := cmd.OutOrStdout().Write(data); err != nil {
		return err
	}

	OperationPerformedSuccessfully = true
	return nil
}
