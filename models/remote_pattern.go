// SPDX-License-Identifier: Apache-2.0

package models

import "strings"

// RemotePattern describes a single rule of the remote image source allowlist.
// A URL is permitted by the rule when every set field matches:
//
//   - Protocol: URL scheme, "http" or "https". Empty matches any scheme.
//   - Hostname: required. Supports wildcards over DNS labels: "*" matches
//     exactly one label ("*.example.com" permits "img.example.com" but not
//     "a.b.example.com"), "**" matches any number of labels. Comparison is
//     case-insensitive.
//   - Port: explicit URL port. Empty matches any port.
//   - Pathname: glob over the URL path ("*" one segment, "**" any number).
//     Empty is treated as "**", permitting every path.
type RemotePattern struct {
	// Protocol restricts the URL scheme ("http" or "https").
	Protocol string `json:"protocol,omitempty"`

	// Hostname is the literal or wildcard host the rule applies to.
	// A pattern without a hostname is rejected during config validation.
	Hostname string `json:"hostname"`

	// Port restricts the explicit port of the URL.
	Port string `json:"port,omitempty"`

	// Pathname restricts the URL path with a glob expression.
	Pathname string `json:"pathname,omitempty"`
}

// String returns a compact canonical form of the pattern, used in logs and
// for duplicate detection during config lint.
func (p RemotePattern) String() string {
	var b strings.Builder
	if p.Protocol != "" {
		b.WriteString(p.Protocol)
		b.WriteString("://")
	}
	b.WriteString(strings.ToLower(p.Hostname))
	if p.Port != "" {
		b.WriteString(":")
		b.WriteString(p.Port)
	}
	if p.Pathname != "" {
		b.WriteString(p.Pathname)
	}
	return b.String()
}
