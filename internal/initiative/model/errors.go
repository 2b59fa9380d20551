package model

import "errors"

var (
	// ErrInitiativeNotFound indicates that the requested initiative does not exist.
	ErrInitiativeNotFound = errors.New("initiative not found")
	// ErrMissingFields indicates that one of the required creation fields is absent.
	ErrMissingFields = errors.New("missing required fields")
	// ErrInvalidDate indicates that the event date is not a valid RFC 3339 timestamp.
	ErrInvalidDate = errors.New("invalid date format")
	// ErrPastDate indicates that the event date is earlier than the current time.
	ErrPastDate = errors.New("event date cannot be in the past")
	// ErrInvalidDuration indicates a non-positive duration.
	ErrInvalidDuration = errors.New("duration_hours must be positive")
	// ErrInvalidMaxParticipants indicates a non-positive participant limit.
	ErrInvalidMaxParticipants = errors.New("max_participants must be positive")
	// ErrInvalidStatus indicates a status value outside the closed set.
	ErrInvalidStatus = errors.New("invalid status value")
	// ErrNotUpcoming indicates a join attempt on a non-upcoming initiative.
	ErrNotUpcoming = errors.New("can only join upcoming initiatives")
	// ErrAlreadyJoined indicates a duplicate join attempt.
	ErrAlreadyJoined = errors.New("already joined this initiative")
	// ErrInitiativeFull indicates that the participant limit has been reached.
	ErrInitiativeFull = errors.New("initiative has reached maximum participants")
	// ErrNotCreator indicates an update attempt by someone other than the creator.
	ErrNotCreator = errors.New("unauthorized to update this initiative")
)

// IsValidationError reports whether err is a client input validation error.
func IsValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrMissingFields),
		errors.Is(err, ErrInvalidDate),
		errors.Is(err, ErrPastDate),
		errors.Is(err, ErrInvalidDuration),
		errors.Is(err, ErrInvalidMaxParticipants),
		errors.Is(err, ErrInvalidStatus):
		return true
	}
	return false
}
