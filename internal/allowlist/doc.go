// Package allowlist implements the remote image source allowlist: it
// compiles the configured remote patterns and legacy domains into a Matcher
// and answers whether a given image URL may be fetched by the gateway.
//
// Matching semantics:
//   - only absolute http/https URLs with a hostname can ever match;
//   - legacy domains are literal, case-insensitive hostnames permitted on
//     any scheme, port, and path;
//   - remote patterns are checked in configuration order, first match wins;
//   - an empty allowlist denies everything.
package allowlist
