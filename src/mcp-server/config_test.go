// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/H0llyW00dzZ/x509-cert-hierarchy/src/mcp-server/templates"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectConfigFormat(t *testing.T) {
	tests := []struct {
		path string
		want configFormat
	}{
		{"config.json", configFormatJSON},
		{"config.yaml", configFormatYAML},
		{"config.yml", configFormatYAML},
		{"CONFIG.YML", configFormatYAML},
		{"config", configFormatJSON},
		{"config.toml", configFormatJSON},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, detectConfigFormat(tt.path))
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, "tree", config.Defaults.Format)
	assert.Equal(t, 443, config.Defaults.Port)
	assert.Equal(t, 10*time.Second, config.Timeout())
	assert.False(t, config.Defaults.ResolveMissing)
	assert.Equal(t, "SHA-256", config.Defaults.Digest)
	assert.Equal(t, 100, config.IssuerCacheConfig().MaxSize)
	assert.Equal(t, time.Hour, config.IssuerCacheConfig().TTL)
	assert.Empty(t, config.Log.File)
}

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name       string
		file       string
		content    string
		wantErrIs  error
		wantErrMsg string
		check      func(t *testing.T, c *Config)
	}{
		{
			name: "JSON",
			file: "config.json",
			content: `{
  "defaults": {"format": "json", "port": 8443, "timeoutSeconds": 3, "resolveMissing": true, "digest": "sha512"},
  "cache": {"maxSize": 7, "ttlSeconds": 60},
  "log": {"file": "/tmp/x509.log"}
}`,
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, "json", c.Defaults.Format)
				assert.Equal(t, 8443, c.Defaults.Port)
				assert.Equal(t, 3*time.Second, c.Timeout())
				assert.True(t, c.Defaults.ResolveMissing)
				assert.Equal(t, "SHA-512", c.Defaults.Digest)
				assert.Equal(t, 7, c.Cache.MaxSize)
				assert.Equal(t, time.Minute, c.IssuerCacheConfig().TTL)
				assert.Equal(t, "/tmp/x509.log", c.Log.File)
			},
		},
		{
			name: "YAML",
			file: "config.yaml",
			content: `defaults:
  format: table
  resolveMissing: true
cache:
  maxSize: 5
`,
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, "table", c.Defaults.Format)
				assert.True(t, c.Defaults.ResolveMissing)
				assert.Equal(t, 443, c.Defaults.Port)
				assert.Equal(t, 5, c.Cache.MaxSize)
			},
		},
		{
			name:    "empty YAML",
			file:    "empty.yml",
			content: "",
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, DefaultConfig(), c)
			},
		},
		{
			name:    "invalid values fall back to defaults",
			file:    "config.json",
			content: `{"defaults": {"format": "xml", "port": 70000, "timeoutSeconds": -1, "digest": "md5"}, "cache": {"maxSize": 0, "ttlSeconds": -5}}`,
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, DefaultConfig(), c)
			},
		},
		{
			name:       "unknown key",
			file:       "config.json",
			content:    `{"defaults": {"warnDays": 30}}`,
			wantErrIs:  ErrInvalidConfig,
			wantErrMsg: "warnDays",
		},
		{
			name:       "wrong type in YAML",
			file:       "config.yaml",
			content:    "defaults:\n  port: https\n",
			wantErrMsg: "failed to parse YAML config file",
		},
		{
			name:       "unknown key in YAML",
			file:       "config.yaml",
			content:    "cache:\n  evictions: 3\n",
			wantErrIs:  ErrInvalidConfig,
			wantErrMsg: "evictions",
		},
		{
			name:      "null section caught by schema",
			file:      "config.json",
			content:   `{"defaults": null}`,
			wantErrIs: ErrInvalidConfig,
		},
		{
			name:       "malformed JSON",
			file:       "config.json",
			content:    `{"defaults":`,
			wantErrMsg: "failed to parse JSON config file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTemp(t, tt.file, []byte(tt.content))

			config, err := loadConfig(path)
			if tt.wantErrIs != nil || tt.wantErrMsg != "" {
				require.Error(t, err)
				if tt.wantErrIs != nil {
					assert.ErrorIs(t, err, tt.wantErrIs)
				}
				assert.Contains(t, err.Error(), tt.wantErrMsg)
				return
			}

			require.NoError(t, err)
			tt.check(t, config)
		})
	}
}

func TestLoadConfigTemplate(t *testing.T) {
	example, err := templates.MagicEmbed.ReadFile(templates.ConfigExample)
	require.NoError(t, err)

	config, err := loadConfig(writeTemp(t, "config.yaml", example))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), config)
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	path := writeTemp(t, "config.json", []byte(`{"defaults": {"port": 8443}}`))
	t.Setenv(ConfigFileEnv, path)

	config, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, 8443, config.Defaults.Port)

	t.Setenv(ConfigFileEnv, "")
	config, err = loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), config)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}
