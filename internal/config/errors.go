package config

import "errors"

// Shape validation errors returned by [StructuredConfig.validate].
// These are never suppressible: a config that fails them is rejected
// regardless of the Build flags.
var (
	// ErrPatternHostnameRequired indicates a remote pattern without a
	// hostname. Every allowlist entry must name the host it permits.
	ErrPatternHostnameRequired = errors.New("remote pattern hostname is required")
	// ErrEmptyDomain indicates an empty entry in the legacy domain list.
	ErrEmptyDomain = errors.New("legacy image domain cannot be empty")
)

// Type check errors collected by the typecheck gate. Fatal unless
// Build.IgnoreTypeErrors is set.
var (
	// ErrInvalidPatternProtocol indicates a protocol other than http/https.
	ErrInvalidPatternProtocol = errors.New("remote pattern protocol must be http or https")
	// ErrInvalidPatternPort indicates a port that is not an integer in [1, 65535].
	ErrInvalidPatternPort = errors.New("remote pattern port must be an integer between 1 and 65535")
	// ErrInvalidPatternHostname indicates a hostname glob that does not compile.
	ErrInvalidPatternHostname = errors.New("remote pattern hostname glob is malformed")
	// ErrInvalidPatternPath indicates a pathname glob that does not compile.
	ErrInvalidPatternPath = errors.New("remote pattern pathname glob is malformed")
	// ErrInvalidExperimentalValue indicates an experimental toggle whose raw
	// value is not valid JSON.
	ErrInvalidExperimentalValue = errors.New("experimental value is not valid JSON")
	// ErrNegativeDuration indicates a negative timeout, TTL, or interval.
	ErrNegativeDuration = errors.New("duration settings cannot be negative")
)

// Lint errors collected by the lint gate. Fatal unless
// Build.IgnoreLintErrors is set.
var (
	// ErrCatchAllHostname indicates a pattern whose hostname matches every host.
	ErrCatchAllHostname = errors.New("remote pattern hostname matches every host")
	// ErrInsecureProtocol indicates a pattern that permits plain-http sources.
	ErrInsecureProtocol = errors.New("remote pattern allows insecure http sources")
	// ErrDuplicatePattern indicates two identical allowlist entries.
	ErrDuplicatePattern = errors.New("duplicate remote pattern")
	// ErrWildcardDomain indicates a legacy domain entry containing glob
	// characters; the legacy list is literal-only.
	ErrWildcardDomain = errors.New("legacy image domains must be literal hostnames")
	// ErrNonPositiveCacheTTL indicates a configured blob cache whose TTL
	// floor is zero or negative, so entries without an upstream max-age
	// expire immediately.
	ErrNonPositiveCacheTTL = errors.New("minimum cache TTL must be positive when the image cache is enabled")
)

// Gate-level errors wrapping the individual findings above.
var (
	// ErrTypeCheckFailed wraps all type check findings when the gate is fatal.
	ErrTypeCheckFailed = errors.New("configuration type check failed")
	// ErrLintFailed wraps all lint findings when the gate is fatal.
	ErrLintFailed = errors.New("configuration lint failed")
)
