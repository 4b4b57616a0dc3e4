package domain

import "errors"

var (
	// ErrNotFound means the requested id has no row. Single fetches turn it
	// into an empty result; relation and graph lookups on a missing root
	// return it as a failure.
	ErrNotFound = errors.New("not found")

	ErrInvalidInput = errors.New("invalid input")

	// The following are caller bugs, not data conditions.
	ErrUnknownKind     = errors.New("unknown entity kind")
	ErrUnknownRelation = errors.New("unknown relation")
	ErrInvalidFilter   = errors.New("invalid filter")
	ErrNotReplaceable  = errors.New("relation cannot be replaced")
)

// IsConfiguration reports whether err stems from a wrong kind, relation or
// filter rather than from the stored data.
func IsConfiguration(err error) bool {
	return errors.Is(err, ErrUnknownKind) || errors.Is(err, ErrUnknownRelation) || errors.Is(err, ErrInvalidFilter) ||
		errors.Is(err, ErrNotReplaceable)
}
