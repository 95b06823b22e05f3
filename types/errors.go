package types

import "errors"

// Error taxonomy. Upstream failures (ErrUpstreamUnavailable,
// ErrMalformedResponse, ErrRateLimited) are always absorbed into a
// deterministic fallback result before reaching the UI layer. Lifecycle
// errors (ErrNotFound, ErrAlreadyDecided) are surfaced verbatim.
var (
	ErrValidation          = errors.New("invalid input")
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	ErrMalformedResponse   = errors.New("malformed upstream response")
	ErrRateLimited         = errors.New("upstream rate limited")
	ErrNotFound            = errors.New("recommendation not found")
	ErrAlreadyDecided      = errors.New("recommendation already decided")
)
