package models

// AllowlistCheckResponse is the JSON verdict returned by the dry-run
// allowlist endpoint. It tells the caller whether a URL would be fetched
// and which rule made the decision.
type AllowlistCheckResponse struct {
	// URL is the echoed image URL the check ran against.
	URL string `json:"url"`

	// Allowed reports whether the gateway would fetch the URL.
	Allowed bool `json:"allowed"`

	// MatchedPattern is the index of the remote pattern that permitted the
	// URL, or nil when no pattern matched.
	MatchedPattern *int `json:"matched_pattern,omitempty"`

	// MatchedDomain is the legacy literal domain that permitted the URL,
	// empty when the decision came from a pattern (or was a denial).
	MatchedDomain string `json:"matched_domain,omitempty"`
}

// ErrorResponse is the JSON body returned for failed API requests.
type ErrorResponse struct {
	Error string `json:"error"`
}
