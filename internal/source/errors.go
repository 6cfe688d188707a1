// Package source fetches raw documents from the stats and weather providers.
// It knows nothing about baseball semantics: callers receive raw payloads and
// a small error taxonomy, and the extract package owns all field knowledge.
//
// No retries happen here. Transient failures surface as ErrUnavailable and
// retry policy belongs to the caller.
package source

import "errors"

var (
	// ErrUnavailable marks a transient provider failure: network error,
	// timeout, or a 5xx/429 response. Retryable by caller policy.
	ErrUnavailable = errors.New("source unavailable")

	// ErrFormatUnrecognized marks an HTTP success whose payload shape is not
	// the documented contract. Not retryable until the contract is updated.
	ErrFormatUnrecognized = errors.New("source format unrecognized")

	// ErrNotFound marks a document the provider does not have, e.g. a box
	// score for an unknown game id.
	ErrNotFound = errors.New("document not found")

	// ErrWeatherUnavailable marks a weather history miss for a date/hour.
	// Non-fatal: enrichment proceeds without weather.
	ErrWeatherUnavailable = errors.New("weather unavailable")
)
