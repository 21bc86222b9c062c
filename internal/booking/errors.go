package booking

import (
	"errors"
	"fmt"
)

// Domain errors for booking requests.
var (
	// ErrNotFound indicates the requested booking request does not exist.
	ErrNotFound = errors.New("booking: request not found")
	// ErrDuplicateID indicates an insert with an id already present in the ledger.
	ErrDuplicateID = errors.New("booking: duplicate request id")
	// ErrInvalidRecord indicates an insert that fails structural validation.
	ErrInvalidRecord = errors.New("booking: invalid request")
	// ErrInvalidTransition indicates a lifecycle move outside the transition table.
	ErrInvalidTransition = errors.New("booking: invalid status transition")

	// ErrStoreMissing indicates no persisted ledger content exists yet.
	ErrStoreMissing = errors.New("booking: store content missing")
	// ErrCorruptStore indicates persisted ledger content failed validation.
	ErrCorruptStore = errors.New("booking: corrupt store content")
)

// TransitionError reports a rejected lifecycle transition with the record
// id, its current state and the attempted target.
type TransitionError struct {
	ID   string
	From Status
	To   Status
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("booking: request %s cannot move from %s to %s", e.ID, e.From, e.To)
}

// Unwrap lets errors.Is match TransitionError against ErrInvalidTransition.
func (e *TransitionError) Unwrap() error {
	return ErrInvalidTransition
}
