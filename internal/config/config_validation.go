// SPDX-License-Identifier: Apache-2.0

package config

import "fmt"

// validate checks that the final merged [StructuredConfig] satisfies basic
// shape validity before it is used at startup. These rules are structural
// and are never suppressible by the Build flags: an allowlist entry that
// names no host is meaningless under any strictness setting.
//
// Returns nil if the configuration is valid, or a descriptive error
// naming the first offending entry otherwise.
func (cfg *StructuredConfig) validate() error {
	for i, pattern := range cfg.Images.RemotePatterns {
		if pattern.Hostname == "" {
			return fmt.Errorf("remote pattern %d: %w", i, ErrPatternHostnameRequired)
		}
	}

	for i, domain := range cfg.Images.Domains {
		if domain == "" {
			return fmt.Errorf("image domain %d: %w", i, ErrEmptyDomain)
		}
	}

	return nil
}
