// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_AllFields(t *testing.T) {
	// Arrange
	envVars := map[string]string{
		"CONFIG": "/path/to/config.json",

		"BUILD_IGNORE_TYPE_ERRORS": "true",
		"BUILD_IGNORE_LINT_ERRORS": "true",

		"IMAGES_DOMAINS":           "cdn.example.com,static.example.org",
		"IMAGES_MINIMUM_CACHE_TTL": "5m",

		"SERVER_ADDRESS":         "localhost:8080",
		"SERVER_REQUEST_TIMEOUT": "30s",

		// Storage has nested prefixes: STORAGE_ + DB_ / FILES_
		"STORAGE_DB_CACHE_INDEX_PATH": "/var/cache/imagegate/index.db",
		"STORAGE_FILES_CACHE_DIR":     "/var/cache/imagegate/blobs",

		"WORKERS_SWEEP_INTERVAL": "10m",
	}
	setEnvVars(t, envVars)

	// Act
	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	// Assert
	require.NoError(t, err)

	assert.Equal(t, "/path/to/config.json", cfg.JSONFilePath)

	assert.True(t, cfg.Build.IgnoreTypeErrors)
	assert.True(t, cfg.Build.IgnoreLintErrors)

	assert.Equal(t, []string{"cdn.example.com", "static.example.org"}, cfg.Images.Domains)
	assert.Equal(t, 5*time.Minute, cfg.Images.MinimumCacheTTL)

	assert.Equal(t, "localhost:8080", cfg.Server.HTTPAddress)
	assert.Equal(t, 30*time.Second, cfg.Server.RequestTimeout)

	assert.Equal(t, "/var/cache/imagegate/index.db", cfg.Storage.DB.Path)
	assert.Equal(t, "/var/cache/imagegate/blobs", cfg.Storage.Files.CacheDir)

	assert.Equal(t, 10*time.Minute, cfg.Workers.SweepInterval)
}

func TestParseEnv_PartialFields(t *testing.T) {
	// Arrange
	envVars := map[string]string{
		"SERVER_ADDRESS":           "localhost:8080",
		"BUILD_IGNORE_LINT_ERRORS": "true",
	}
	setEnvVars(t, envVars)

	// Act
	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	// Assert
	require.NoError(t, err)

	// Build partially filled
	assert.False(t, cfg.Build.IgnoreTypeErrors)
	assert.True(t, cfg.Build.IgnoreLintErrors)

	// Server partially filled
	assert.Equal(t, "localhost:8080", cfg.Server.HTTPAddress)
	assert.Zero(t, cfg.Server.RequestTimeout)

	// Others untouched
	assert.Empty(t, cfg.Images.Domains)
	assert.Zero(t, cfg.Images.MinimumCacheTTL)
	assert.Empty(t, cfg.Storage.DB.Path)
	assert.Empty(t, cfg.Storage.Files.CacheDir)
	assert.Empty(t, cfg.JSONFilePath)
}

func TestParseEnv_EmptyEnv(t *testing.T) {
	// Arrange
	clearEnvVars(t)

	// Act
	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	// Assert
	require.NoError(t, err)

	// In this version all nested fields are non-pointer values,
	// so "empty" state is represented by zero values.
	assert.Equal(t, "", cfg.JSONFilePath)

	assert.Equal(t, Build{}, cfg.Build)
	assert.Equal(t, Server{}, cfg.Server)
	assert.Equal(t, Storage{}, cfg.Storage)
	assert.Equal(t, Workers{}, cfg.Workers)
}

func TestParseEnv_RemotePatternsNotEnvMapped(t *testing.T) {
	// Remote patterns are structured values and only arrive via JSON;
	// env parsing must leave the slice untouched.
	clearEnvVars(t)

	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	require.NoError(t, err)
	assert.Nil(t, cfg.Images.RemotePatterns)
	assert.Nil(t, cfg.Experimental)
}

func TestParseEnv_InvalidDuration(t *testing.T) {
	// Arrange
	envVars := map[string]string{
		"IMAGES_MINIMUM_CACHE_TTL": "invalid_duration",
	}
	setEnvVars(t, envVars)

	// Act
	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	// Assert
	require.Error(t, err)
	// Error wording may vary depending on parseEnv internals; assert loosely.
	assert.Contains(t, err.Error(), "env")
}

func TestParseEnv_InvalidBool(t *testing.T) {
	// Arrange
	envVars := map[string]string{
		"BUILD_IGNORE_TYPE_ERRORS": "yes-please",
	}
	setEnvVars(t, envVars)

	// Act
	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	// Assert
	require.Error(t, err)
}

func TestParseEnv_DurationFormats(t *testing.T) {
	tests := []struct {
		name     string
		envValue string
		expected time.Duration
	}{
		{"hours", "2h", 2 * time.Hour},
		{"minutes", "45m", 45 * time.Minute},
		{"seconds", "30s", 30 * time.Second},
		{"combined", "1h30m", 90 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			envVars := map[string]string{
				"SERVER_REQUEST_TIMEOUT": tt.envValue,
			}
			setEnvVars(t, envVars)

			// Act
			cfg := &StructuredConfig{}
			err := parseEnv(cfg)

			// Assert
			require.NoError(t, err)
			assert.Equal(t, tt.expected, cfg.Server.RequestTimeout)
		})
	}
}

// Helpers

func setEnvVars(t *testing.T, vars map[string]string) {
	t.Helper()
	clearEnvVars(t)
	for k, v := range vars {
		require.NoError(t, os.Setenv(k, v))
		t.Cleanup(func() { _ = os.Unsetenv(k) })
	}
}

func clearEnvVars(t *testing.T) {
	t.Helper()
	keys := []string{
		"CONFIG",

		"BUILD_IGNORE_TYPE_ERRORS",
		"BUILD_IGNORE_LINT_ERRORS",

		"IMAGES_DOMAINS",
		"IMAGES_MINIMUM_CACHE_TTL",

		"SERVER_ADDRESS",
		"SERVER_REQUEST_TIMEOUT",

		"STORAGE_DB_CACHE_INDEX_PATH",
		"STORAGE_FILES_CACHE_DIR",

		"WORKERS_SWEEP_INTERVAL",
	}
	for _, k := range keys {
		_ = os.Unsetenv(k)
	}
}
