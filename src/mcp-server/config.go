// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	x509certs "github.com/H0llyW00dzZ/x509-cert-hierarchy/src/internal/x509/certs"
	x509chain "github.com/H0llyW00dzZ/x509-cert-hierarchy/src/internal/x509/chain"
	x509hierarchy "github.com/H0llyW00dzZ/x509-cert-hierarchy/src/internal/x509/hierarchy"
	"github.com/H0llyW00dzZ/x509-cert-hierarchy/src/mcp-server/templates"
	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

// ConfigFileEnv names the environment variable holding the config file path
// used when no path is given explicitly.
const ConfigFileEnv = "MCP_X509_HIERARCHY_CONFIG_FILE"

// ErrInvalidConfig is returned when a config file does not match the schema.
var ErrInvalidConfig = errors.New("mcpserver: invalid config")

// Default configuration values.
const (
	defaultFormat         = x509hierarchy.FormatTree
	defaultPort           = 443
	defaultTimeoutSeconds = 10
	defaultDigest         = x509certs.DigestSHA256
)

// configFormat represents supported configuration file formats.
type configFormat int

const (
	// configFormatJSON represents JSON configuration format (.json)
	configFormatJSON configFormat = iota
	// configFormatYAML represents YAML configuration format (.yaml, .yml)
	configFormatYAML
)

// Config represents the MCP server configuration structure.
//
// The configuration can be loaded from a JSON or YAML file, with defaults
// applied for any missing or invalid values.
// Supported file extensions: .json, .yaml, .yml
type Config struct {
	// Defaults: Values used when a tool call omits an argument
	Defaults struct {
		// Format: Output format (tree, table, json, pem, der)
		Format string `json:"format" yaml:"format"`
		// Port: Port for fetch_remote_hierarchy
		Port int `json:"port" yaml:"port"`
		// Timeout: TLS handshake and issuer download timeout in seconds
		Timeout int `json:"timeoutSeconds" yaml:"timeoutSeconds"`
		// ResolveMissing: Download missing issuers from AIA URLs
		ResolveMissing bool `json:"resolveMissing" yaml:"resolveMissing"`
		// Digest: Fingerprint algorithm for describe_certificate
		Digest string `json:"digest" yaml:"digest"`
	} `json:"defaults" yaml:"defaults"`

	// Cache: Issuer download cache shared by all tool calls
	Cache struct {
		MaxSize int `json:"maxSize" yaml:"maxSize"`
		TTL     int `json:"ttlSeconds" yaml:"ttlSeconds"`
	} `json:"cache" yaml:"cache"`

	// Log: Destination of the JSON log lines
	Log struct {
		// File: Log file path; empty keeps the server silent
		File string `json:"file" yaml:"file"`
	} `json:"log" yaml:"log"`
}

// DefaultConfig returns a configuration holding the default values.
func DefaultConfig() *Config {
	config := &Config{}
	config.applyDefaults()
	return config
}

// applyDefaults replaces missing and invalid values with defaults.
func (c *Config) applyDefaults() {
	if !x509hierarchy.ValidFormat(c.Defaults.Format) {
		c.Defaults.Format = defaultFormat
	}
	if c.Defaults.Port <= 0 || c.Defaults.Port > 65535 {
		c.Defaults.Port = defaultPort
	}
	if c.Defaults.Timeout <= 0 {
		c.Defaults.Timeout = defaultTimeoutSeconds
	}
	if digest, err := x509certs.ParseDigest(c.Defaults.Digest); err != nil {
		c.Defaults.Digest = string(defaultDigest)
	} else {
		c.Defaults.Digest = string(digest)
	}
	if c.Cache.MaxSize <= 0 {
		c.Cache.MaxSize = x509chain.DefaultIssuerCacheConfig.MaxSize
	}
	if c.Cache.TTL <= 0 {
		c.Cache.TTL = int(x509chain.DefaultIssuerCacheConfig.TTL / time.Second)
	}
}

// Timeout returns the default timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Defaults.Timeout) * time.Second
}

// IssuerCacheConfig returns the issuer cache settings.
func (c *Config) IssuerCacheConfig() x509chain.IssuerCacheConfig {
	return x509chain.IssuerCacheConfig{
		MaxSize: c.Cache.MaxSize,
		TTL:     time.Duration(c.Cache.TTL) * time.Second,
	}
}

// detectConfigFormat determines the configuration file format based on file
// extension, case-insensitively. Anything but .yaml and .yml is JSON.
func detectConfigFormat(configPath string) configFormat {
	ext := strings.ToLower(filepath.Ext(configPath))
	switch ext {
	case ".yaml", ".yml":
		return configFormatYAML
	default:
		return configFormatJSON
	}
}

// unmarshalConfig unmarshals configuration data based on the specified format.
func unmarshalConfig(data []byte, config *Config, format configFormat) error {
	switch format {
	case configFormatYAML:
		if err := yaml.Unmarshal(data, config); err != nil {
			return fmt.Errorf("failed to parse YAML config file: %w", err)
		}
	default:
		if err := json.Unmarshal(data, config); err != nil {
			return fmt.Errorf("failed to parse JSON config file: %w", err)
		}
	}
	return nil
}

// validateConfig checks data against the embedded JSON schema.
//
// YAML documents are decoded to plain values first so both formats are
// validated by the same schema. An empty document is valid.
func validateConfig(data []byte, format configFormat) error {
	schema, err := templates.MagicEmbed.ReadFile(templates.ConfigSchema)
	if err != nil {
		return fmt.Errorf("failed to read config schema: %w", err)
	}

	var document gojsonschema.JSONLoader
	switch format {
	case configFormatYAML:
		var doc any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("failed to parse YAML config file: %w", err)
		}
		if doc == nil {
			doc = map[string]any{}
		}
		document = gojsonschema.NewGoLoader(doc)
	default:
		document = gojsonschema.NewBytesLoader(data)
	}

	result, err := gojsonschema.Validate(gojsonschema.NewBytesLoader(schema), document)
	if err != nil {
		return fmt.Errorf("failed to validate config file: %w", err)
	}
	if !result.Valid() {
		problems := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			problems = append(problems, e.String())
		}
		slices.Sort(problems)
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}

	return nil
}

// loadConfig loads MCP server configuration from a JSON or YAML file or applies defaults.
//
// Parameters:
//   - configPath: Path to the configuration file (optional, can be empty)
//     Supported formats: .json, .yaml, .yml
//
// Returns:
//   - A pointer to the loaded Config struct with defaults applied
//   - An error if the configuration file cannot be read, parsed or validated
//
// Configuration Priority:
//  1. Default values are set
//  2. The MCP_X509_HIERARCHY_CONFIG_FILE environment variable is checked if configPath is empty
//  3. Config file values override defaults (if file exists and is valid)
//  4. Invalid values fall back to defaults
func loadConfig(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = os.Getenv(ConfigFileEnv)
	}
	if configPath == "" {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	format := detectConfigFormat(configPath)

	config := &Config{}
	if err := unmarshalConfig(data, config, format); err != nil {
		return nil, err
	}
	if err := validateConfig(data, format); err != nil {
		return nil, err
	}

	config.applyDefaults()
	return config, nil
}
