// Package config provides configuration loading, merging, checking, and
// validation facilities for the application.
//
// Configuration is assembled from multiple sources in the following priority
// order (earlier sources take precedence; later sources fill only the
// fields still unset):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//
// After merging, the record passes three gates:
//   - validate: basic shape validity (every remote pattern names a host).
//     Never suppressible.
//   - typecheck: value-level checks (port ranges, glob syntax, protocol
//     names). Suppressible via Build.IgnoreTypeErrors.
//   - lint: advisory checks (catch-all hostnames, insecure schemes,
//     duplicates). Suppressible via Build.IgnoreLintErrors.
//
// The main entry point is [GetStructuredConfig]; callers then run
// [StructuredConfig.CheckStrictness] once a logger is available.
package config
