package allowlist

import "errors"

var (
	// ErrInvalidImageURL is returned by Match when the candidate URL is not
	// an absolute http/https URL with a hostname. Such URLs cannot be
	// fetched at all, which is different from being denied by the rules.
	ErrInvalidImageURL = errors.New("image URL must be an absolute http or https URL")

	// ErrMalformedPattern is returned by NewMatcher when a configured
	// pattern's hostname or pathname glob does not compile. The config
	// type check catches this earlier unless it was suppressed.
	ErrMalformedPattern = errors.New("remote pattern glob does not compile")
)
