// SPDX-License-Identifier: Apache-2.0

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/avelichko/imagegate/internal/logger"
)

// CheckStrictness runs the suppressible startup gates over the merged
// configuration: the type check first, then lint.
//
// A gate with findings aborts startup by returning an error that wraps
// every finding, unless the corresponding Build flag is set — in which case
// each finding is logged as a warning and startup proceeds. The two flags
// are independent: suppressing lint does not suppress type errors.
//
// Unknown keys in the JSON file are not a gate finding: they abort loading
// inside the parser itself, before any config exists to check, so
// Build.IgnoreTypeErrors cannot demote them.
func (cfg *StructuredConfig) CheckStrictness(log *logger.Logger) error {
	if findings := cfg.typecheck(); len(findings) > 0 {
		if !cfg.Build.IgnoreTypeErrors {
			return fmt.Errorf("%w: %w", ErrTypeCheckFailed, errors.Join(findings...))
		}
		for _, finding := range findings {
			log.Warn().Err(finding).Msg("config type error suppressed")
		}
	}

	if findings := cfg.lint(); len(findings) > 0 {
		if !cfg.Build.IgnoreLintErrors {
			return fmt.Errorf("%w: %w", ErrLintFailed, errors.Join(findings...))
		}
		for _, finding := range findings {
			log.Warn().Err(finding).Msg("config lint finding suppressed")
		}
	}

	return nil
}

// typecheck collects value-level findings: settings that are shaped like the
// right thing but hold values the rest of the system cannot act on.
func (cfg *StructuredConfig) typecheck() []error {
	var findings []error

	for i, pattern := range cfg.Images.RemotePatterns {
		if pattern.Protocol != "" && pattern.Protocol != "http" && pattern.Protocol != "https" {
			findings = append(findings, fmt.Errorf("remote pattern %d: %w", i, ErrInvalidPatternProtocol))
		}

		if pattern.Port != "" {
			port, err := strconv.Atoi(pattern.Port)
			if err != nil || port < 1 || port > 65535 {
				findings = append(findings, fmt.Errorf("remote pattern %d: %w", i, ErrInvalidPatternPort))
			}
		}

		if pattern.Hostname != "" && !doublestar.ValidatePattern(hostnameGlob(pattern.Hostname)) {
			findings = append(findings, fmt.Errorf("remote pattern %d: %w", i, ErrInvalidPatternHostname))
		}

		if pattern.Pathname != "" && !doublestar.ValidatePattern(pattern.Pathname) {
			findings = append(findings, fmt.Errorf("remote pattern %d: %w", i, ErrInvalidPatternPath))
		}
	}

	for name, raw := range cfg.Experimental {
		if !json.Valid(raw) {
			findings = append(findings, fmt.Errorf("experimental %q: %w", name, ErrInvalidExperimentalValue))
		}
	}

	if cfg.Images.MinimumCacheTTL < 0 {
		findings = append(findings, fmt.Errorf("images.minimum_cache_ttl: %w", ErrNegativeDuration))
	}
	if cfg.Server.RequestTimeout < 0 {
		findings = append(findings, fmt.Errorf("server.request_timeout: %w", ErrNegativeDuration))
	}
	if cfg.Workers.SweepInterval < 0 {
		findings = append(findings, fmt.Errorf("workers.sweep_interval: %w", ErrNegativeDuration))
	}

	return findings
}

// lint collects advisory findings: settings that work but almost certainly
// do not express what the operator intended.
func (cfg *StructuredConfig) lint() []error {
	var findings []error

	seen := make(map[string]int, len(cfg.Images.RemotePatterns))
	for i, pattern := range cfg.Images.RemotePatterns {
		hostname := strings.ToLower(pattern.Hostname)

		if hostname == "**" || hostname == "*" {
			findings = append(findings, fmt.Errorf("remote pattern %d: %w", i, ErrCatchAllHostname))
		}

		if pattern.Protocol == "http" {
			findings = append(findings, fmt.Errorf("remote pattern %d: %w", i, ErrInsecureProtocol))
		}

		canonical := pattern.String()
		if first, ok := seen[canonical]; ok {
			findings = append(findings, fmt.Errorf("remote pattern %d repeats pattern %d: %w", i, first, ErrDuplicatePattern))
		} else {
			seen[canonical] = i
		}
	}

	for i, domain := range cfg.Images.Domains {
		if strings.ContainsAny(domain, "*?[") {
			findings = append(findings, fmt.Errorf("image domain %d: %w", i, ErrWildcardDomain))
		}
	}

	// a blob cache with no TTL floor expires entries the moment the
	// upstream omits max-age
	if cfg.Storage.Files.CacheDir != "" && cfg.Images.MinimumCacheTTL <= 0 {
		findings = append(findings, fmt.Errorf("images.minimum_cache_ttl: %w", ErrNonPositiveCacheTTL))
	}

	return findings
}

// hostnameGlob maps a dotted hostname pattern onto doublestar's
// slash-separated segment model, so that "*" spans exactly one DNS label
// and "**" spans any number of labels.
func hostnameGlob(hostname string) string {
	return strings.ReplaceAll(strings.ToLower(hostname), ".", "/")
}
