package relations

import "errors"

var (
	// ErrNotFound means no relationship matches the given id or pair.
	ErrNotFound = errors.New("relationship not found")

	// ErrAlreadyRequested means an active (pending or accepted) relationship
	// already exists between the two parties.
	ErrAlreadyRequested = errors.New("active relationship already exists")

	// ErrConflict means the requested transition is not legal from the
	// relationship's current state, or a concurrent caller won the race.
	ErrConflict = errors.New("relationship state does not allow this transition")

	// ErrUnauthorized means the actor is neither the subject nor the
	// approval authority for the attempted transition.
	ErrUnauthorized = errors.New("actor not authorized for this transition")

	// ErrValidation means required identifiers are missing or malformed.
	ErrValidation = errors.New("subject and target identifiers are required")

	// ErrSelfRequest means the subject and target are the same party.
	ErrSelfRequest = errors.New("cannot send a request to yourself")

	// ErrGroupFull means a group-join approval would exceed the group's
	// member capacity.
	ErrGroupFull = errors.New("group is at capacity")
)
