// SPDX-License-Identifier: Apache-2.0

package allowlist

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/avelichko/imagegate/internal/config"
	"github.com/avelichko/imagegate/models"
)

// Verdict is the result of matching a URL against the allowlist.
type Verdict struct {
	// Allowed reports whether the URL may be fetched.
	Allowed bool

	// MatchedPattern is the index of the remote pattern that permitted the
	// URL, or -1 when the decision was not made by a pattern.
	MatchedPattern int

	// MatchedDomain is the legacy domain that permitted the URL, empty
	// when the decision was not made by the legacy list.
	MatchedDomain string
}

// compiledPattern pairs a configured pattern with its precomputed glob
// forms so Match does not re-derive them per request.
type compiledPattern struct {
	source   models.RemotePattern
	hostGlob string
	pathGlob string
}

// Matcher answers allowlist queries for a fixed Images configuration.
// It is immutable after construction and safe for concurrent use.
type Matcher struct {
	patterns []compiledPattern
	domains  map[string]struct{}
}

// NewMatcher compiles the remote patterns and legacy domains of cfg.
//
// Globs are verified to compile here even though the config type check
// normally rejects malformed ones first — the type check can be suppressed,
// and the matcher must not be constructed over patterns it cannot evaluate.
func NewMatcher(cfg config.Images) (*Matcher, error) {
	m := &Matcher{
		patterns: make([]compiledPattern, 0, len(cfg.RemotePatterns)),
		domains:  make(map[string]struct{}, len(cfg.Domains)),
	}

	for i, pattern := range cfg.RemotePatterns {
		compiled := compiledPattern{
			source:   pattern,
			hostGlob: hostnameGlob(pattern.Hostname),
			pathGlob: pattern.Pathname,
		}
		if compiled.pathGlob == "" {
			compiled.pathGlob = "**"
		}

		if !doublestar.ValidatePattern(compiled.hostGlob) || !doublestar.ValidatePattern(compiled.pathGlob) {
			return nil, fmt.Errorf("remote pattern %d (%s): %w", i, pattern, ErrMalformedPattern)
		}

		m.patterns = append(m.patterns, compiled)
	}

	for _, domain := range cfg.Domains {
		m.domains[strings.ToLower(domain)] = struct{}{}
	}

	return m, nil
}

// Match reports whether rawURL may be fetched through the gateway and which
// rule permitted it. Returns ErrInvalidImageURL when rawURL is not an
// absolute http/https URL with a hostname.
func (m *Matcher) Match(rawURL string) (Verdict, error) {
	denied := Verdict{Allowed: false, MatchedPattern: -1}

	u, err := url.Parse(rawURL)
	if err != nil {
		return denied, fmt.Errorf("error parsing image URL: %w", ErrInvalidImageURL)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Hostname() == "" {
		return denied, ErrInvalidImageURL
	}

	host := strings.ToLower(u.Hostname())

	if _, ok := m.domains[host]; ok {
		return Verdict{Allowed: true, MatchedPattern: -1, MatchedDomain: host}, nil
	}

	for i, pattern := range m.patterns {
		if m.matchPattern(pattern, u, host) {
			return Verdict{Allowed: true, MatchedPattern: i}, nil
		}
	}

	return denied, nil
}

// matchPattern checks a single compiled pattern against the parsed URL.
// Every set field of the pattern must match; unset fields are unconstrained
// (except hostname, which is always present).
func (m *Matcher) matchPattern(pattern compiledPattern, u *url.URL, host string) bool {
	if pattern.source.Protocol != "" && pattern.source.Protocol != u.Scheme {
		return false
	}

	if pattern.source.Port != "" && pattern.source.Port != u.Port() {
		return false
	}

	if ok, err := doublestar.Match(pattern.hostGlob, hostnameGlob(host)); err != nil || !ok {
		return false
	}

	path := u.Path
	if path == "" {
		path = "/"
	}
	if ok, err := doublestar.Match(pattern.pathGlob, path); err != nil || !ok {
		return false
	}

	return true
}

// hostnameGlob maps a dotted hostname onto doublestar's slash-separated
// segment model, so that "*" spans exactly one DNS label and "**" spans any
// number of labels.
func hostnameGlob(hostname string) string {
	return strings.ReplaceAll(strings.ToLower(hostname), ".", "/")
}
