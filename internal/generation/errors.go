package generation

import "errors"

// Common errors returned by the generation package and its implementations.
var (
	// ErrMissingCredential is returned when no upstream API key is configured.
	ErrMissingCredential = errors.New("upstream API key is not configured")

	// ErrUpstreamUnreachable is returned for transport-level failures reaching
	// the completion service.
	ErrUpstreamUnreachable = errors.New("completion service unreachable")

	// ErrUpstreamRejected is returned when the completion service answers with
	// a non-success HTTP status.
	ErrUpstreamRejected = errors.New("completion service rejected the request")

	// ErrMalformedEnvelope is returned when a success response lacks the
	// expected choices[0].message.content path.
	ErrMalformedEnvelope = errors.New("completion response missing generated content")

	// ErrParseFailed is returned when the generated text is not valid JSON
	// even after cleanup.
	ErrParseFailed = errors.New("generated text could not be parsed as JSON")

	// ErrShapeMismatch is returned when the generated text is valid JSON but
	// not an array. Kept distinct from ErrParseFailed: it means the model
	// ignored instructions rather than merely mis-formatted them.
	ErrShapeMismatch = errors.New("generated JSON is not an array")

	// ErrInvalidConfig is returned when the generator configuration is invalid.
	ErrInvalidConfig = errors.New("invalid generator configuration")
)
