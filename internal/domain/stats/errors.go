package stats

import (
	"errors"
	"fmt"
)

// Sentinel error kinds returned by the calculator. These allow errors.Is
// from callers.
var (
	ErrNotFound        = errors.New("not found")
	ErrAthleteNotFound = fmt.Errorf("athlete %w", ErrNotFound)
	ErrCountryNotFound = fmt.Errorf("country %w", ErrNotFound)

	// ErrEmptyPopulation is returned when a ratio is asked of an empty
	// athlete collection.
	ErrEmptyPopulation = errors.New("empty athlete population")
	// ErrNoAthletes is returned by queries that need at least one athlete.
	ErrNoAthletes = errors.New("no athletes loaded")
)
