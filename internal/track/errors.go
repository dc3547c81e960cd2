package track

import (
	"errors"
	"fmt"
)

// Sentinel errors for the terminal outcomes of engine operations. Every call
// resolves to a successful result or exactly one of these; storage failures
// surface as wrapped errors that match none of them.
var (
	ErrItemNotFound    = errors.New("item not found")
	ErrUnknownEmployee = errors.New("unknown employee")
)

// ForbiddenError is returned when an employee's role does not permit the
// requested status. Allowed carries the role's full permitted set so the
// caller can self-correct.
type ForbiddenError struct {
	Role    string
	Status  string
	Allowed []string
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("role %q not allowed to set status %q", e.Role, e.Status)
}
