package model

import "errors"

// Sentinel error kinds for graph construction.
var (
	ErrInvalidEntity          = errors.New("invalid entity")
	ErrConflictingAthlete     = errors.New("conflicting athlete attributes")
	ErrDuplicateParticipation = errors.New("duplicate participation")
)
