package gui

import "errors"

// Construction errors. Every constructor in this package validates its
// arguments synchronously and returns one of these sentinels (usually
// wrapped with context); a node that failed construction cannot be
// repaired, the caller must rebuild it.
var (
	// ErrLengthExceeded is returned when a text or identifier is longer
	// than the hard maximum of the field receiving it.
	ErrLengthExceeded = errors.New("text exceeds maximum length")

	// ErrKindMismatch is returned when a field restricted to one text kind
	// receives the other, or when a kind-specific flag is set on the wrong
	// kind (emoji on mrkdwn, verbatim on plain_text).
	ErrKindMismatch = errors.New("text kind not allowed for this field")

	// ErrMutualExclusion is returned when two mutually exclusive sibling
	// fields are both supplied, or neither is.
	ErrMutualExclusion = errors.New("mutually exclusive fields")

	// ErrCardinality is returned when a list field holds fewer or more
	// entries than its allowed range.
	ErrCardinality = errors.New("element count out of range")

	// ErrReferenceIntegrity is returned when an initial selection
	// references a value that is not among the declared options.
	ErrReferenceIntegrity = errors.New("initial selection not among declared options")

	// ErrMissingRequiredField is returned when a node requires at least
	// one of several optional fields and none was supplied.
	ErrMissingRequiredField = errors.New("required field missing")
)
