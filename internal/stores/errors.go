package stores

import (
	"errors"
	"fmt"
)

// Taxonomy returned by every store operation. Handlers map these to
// status codes; raw storage errors never cross the store boundary
// unwrapped.
var (
	// ErrNotFound means an id referenced a row that does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrNoGamerProfile means the authenticated user has no Gamer
	// profile. Kept distinct from ErrNotFound so callers can tell "no
	// such resource" apart from "you are not a registered gamer".
	ErrNoGamerProfile = errors.New("no gamer profile for user")
)

// ValidationError reports a missing or malformed field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ConflictError reports a write rejected to protect existing rows, such
// as deleting a game type that games still reference.
type ConflictError struct {
	Resource string
	Reason   string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflict on %s: %s", e.Resource, e.Reason)
}
