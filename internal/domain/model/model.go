// Package model contains the entity graph of the dataset: athletes,
// countries, event occurrences and the participations linking them.
//
// Entities are created once through Builder and are read-only afterwards.
package model

import (
	"fmt"
	"strings"
)

// Gender of an athlete.
type Gender string

// Supported genders.
const (
	Male   Gender = "male"
	Female Gender = "female"
)

// ParseGender accepts m, male, f and female (case-insensitive).
func ParseGender(s string) (Gender, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "m", "male", "masculino":
		return Male, nil
	case "f", "female", "femenino":
		return Female, nil
	default:
		return "", fmt.Errorf("%w: unknown gender %q", ErrInvalidEntity, s)
	}
}

// Medal is the outcome of a participation. MedalNone means no medal.
type Medal string

// Medal kinds.
const (
	MedalNone Medal = ""
	Gold      Medal = "gold"
	Silver    Medal = "silver"
	Bronze    Medal = "bronze"
)

// ParseMedal accepts gold, silver and bronze; an empty value, "na", "none"
// and "-" mean no medal.
func ParseMedal(s string) (Medal, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "na", "n/a", "none", "-":
		return MedalNone, nil
	case "gold", "oro":
		return Gold, nil
	case "silver", "plata":
		return Silver, nil
	case "bronze", "bronce":
		return Bronze, nil
	default:
		return MedalNone, fmt.Errorf("%w: unknown medal %q", ErrInvalidEntity, s)
	}
}

// Won reports whether the medal is an actual medal.
func (m Medal) Won() bool { return m != MedalNone }

// MedalRecord describes one medal won by an athlete.
type MedalRecord struct {
	Event string `json:"event"`
	Year  int    `json:"year"`
	Medal Medal  `json:"medal"`
}

// ParticipationRecord describes one participation of an athlete.
type ParticipationRecord struct {
	Event   string `json:"event"`
	Year    int    `json:"year"`
	Athlete string `json:"athlete"`
}

// Tally counts medals by kind.
type Tally struct {
	Gold   int `json:"gold"`
	Silver int `json:"silver"`
	Bronze int `json:"bronze"`
}

// Add counts m into the tally. MedalNone is ignored.
func (t *Tally) Add(m Medal) {
	switch m {
	case Gold:
		t.Gold++
	case Silver:
		t.Silver++
	case Bronze:
		t.Bronze++
	}
}

// Total returns the number of medals of any kind.
func (t Tally) Total() int { return t.Gold + t.Silver + t.Bronze }

// Compare orders tallies by gold, then silver, then bronze.
// It returns -1, 0 or +1.
func (t Tally) Compare(o Tally) int {
	switch {
	case t.Gold != o.Gold:
		return sign(t.Gold - o.Gold)
	case t.Silver != o.Silver:
		return sign(t.Silver - o.Silver)
	default:
		return sign(t.Bronze - o.Bronze)
	}
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	}
	return 0
}
