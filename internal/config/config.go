// SPDX-License-Identifier: Apache-2.0

package config

import (
	"encoding/json"
	"time"

	"github.com/avelichko/imagegate/models"
)

// StructuredConfig is the top-level configuration container for the
// imagegate application. It aggregates all sub-configurations and is
// populated by merging values from environment variables, command-line
// flags, and an optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// Build holds the build-strictness flag set. The flags demote failures
	// of the startup type check and lint gates to warnings.
	Build Build `envPrefix:"BUILD_"`

	// Images holds the remote image source allowlist: ordered remote
	// patterns, the legacy literal domain list, and cache TTL policy.
	Images Images `envPrefix:"IMAGES_"`

	// Experimental holds opt-in toggles for functionality that is not yet
	// stabilized. The mapping is open-ended and currently defines no
	// stabilized settings; it is populated from the JSON file only.
	Experimental Experimental

	// Server holds network address and timeout settings for the HTTP
	// server.
	Server Server `envPrefix:"SERVER_"`

	// Storage holds configuration for the local image cache backends:
	// the SQLite cache index and the blob directory.
	Storage Storage `envPrefix:"STORAGE_"`

	// Workers holds configuration for background worker processes.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// Build holds the build-strictness flag set. Both flags default to false:
// a failing check aborts startup unless explicitly suppressed.
type Build struct {
	// IgnoreTypeErrors demotes type check failures (malformed ports,
	// invalid globs, unknown protocols) to logged warnings.
	// Env: BUILD_IGNORE_TYPE_ERRORS
	IgnoreTypeErrors bool `env:"IGNORE_TYPE_ERRORS"`

	// IgnoreLintErrors demotes lint failures (catch-all hostnames,
	// insecure schemes, duplicate patterns) to logged warnings.
	// Env: BUILD_IGNORE_LINT_ERRORS
	IgnoreLintErrors bool `env:"IGNORE_LINT_ERRORS"`
}

// Images holds the remote image source allowlist and cache policy.
type Images struct {
	// RemotePatterns is the ordered list of allowlist rules. The first
	// matching rule wins. Populated from the JSON file (patterns are
	// structured and do not map onto flat env variables).
	RemotePatterns []models.RemotePattern

	// Domains is the legacy allowlist of literal hostnames. A host listed
	// here is permitted on any scheme, port, and path.
	// Env: IMAGES_DOMAINS (comma-separated)
	Domains []string `env:"DOMAINS"`

	// MinimumCacheTTL is the floor for cache entry lifetimes. Upstream
	// Cache-Control headers can only extend it, never shorten it.
	// Env: IMAGES_MINIMUM_CACHE_TTL
	MinimumCacheTTL time.Duration `env:"MINIMUM_CACHE_TTL"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens,
	// in "host:port" format (e.g. "0.0.0.0:8080").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single outbound
	// upstream fetch before it is cancelled (e.g. "30s", "1m").
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Storage groups the configuration for the local image cache backends.
type Storage struct {
	// DB holds the SQLite cache index settings.
	DB DB `envPrefix:"DB_"`

	// Files holds the blob directory settings.
	Files Files `envPrefix:"FILES_"`
}

// DB holds connection settings for the SQLite cache index.
type DB struct {
	// Path is the filesystem path of the SQLite database file.
	// Empty selects an in-memory index (cache does not survive restarts).
	// Env: STORAGE_DB_CACHE_INDEX_PATH
	Path string `env:"CACHE_INDEX_PATH"`
}

// Files holds file-system settings for the image blob store.
type Files struct {
	// CacheDir is the directory where fetched image payloads are stored,
	// one file per cache key.
	// Env: STORAGE_FILES_CACHE_DIR
	CacheDir string `env:"CACHE_DIR"`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// SweepInterval defines how often the cache sweeper evicts expired
	// entries. Zero disables the sweeper.
	// Env: WORKERS_SWEEP_INTERVAL
	SweepInterval time.Duration `env:"SWEEP_INTERVAL"`
}

// Experimental is the open-ended mapping of feature toggles that are not yet
// stabilized. Keys are feature names, values are raw JSON: a plain boolean
// for simple toggles, or an object with an "enabled" field plus
// feature-specific settings for structured stanzas.
type Experimental map[string]json.RawMessage

// experimentalStanza is the minimal shape of a structured toggle value.
type experimentalStanza struct {
	Enabled bool `json:"enabled"`
}

// Enabled reports whether the named feature is switched on. A plain boolean
// value is read directly; an object value is read through its "enabled"
// field. Missing or undecodable values report false.
func (e Experimental) Enabled(name string) bool {
	raw, ok := e[name]
	if !ok {
		return false
	}

	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return b
	}

	var stanza experimentalStanza
	if err := json.Unmarshal(raw, &stanza); err == nil {
		return stanza.Enabled
	}

	return false
}

// Decode unmarshals the named feature's raw value into v. The boolean
// return reports whether the feature was present at all; err is non-nil
// only when the value exists but cannot be decoded into v.
func (e Experimental) Decode(name string, v any) (bool, error) {
	raw, ok := e[name]
	if !ok {
		return false, nil
	}

	if err := json.Unmarshal(raw, v); err != nil {
		return true, err
	}

	return true, nil
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (a field set by an earlier source is never overridden by a later one):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2; supplies the fields
//     no other source set)
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails shape validation. The suppressible
// type check and lint gates run separately via [StructuredConfig.CheckStrictness].
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}
