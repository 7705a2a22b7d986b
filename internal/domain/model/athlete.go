package model

// Athlete is a competitor identified by name. Country holds the name of the
// country the athlete represents; it is resolved through the graph's
// country index rather than a pointer back to Country.
type Athlete struct {
	Name           string
	Gender         Gender
	Country        string
	Participations []*Participation
}

// MedalCount returns the number of medals of any kind.
func (a *Athlete) MedalCount() int {
	n := 0
	for _, p := range a.Participations {
		if p.Medal.Won() {
			n++
		}
	}
	return n
}

// IsMedalist reports whether the athlete won at least one medal.
func (a *Athlete) IsMedalist() bool {
	for _, p := range a.Participations {
		if p.Medal.Won() {
			return true
		}
	}
	return false
}

// SportCount returns the number of distinct sports the athlete took part
// in. The same sport in different years counts once.
func (a *Athlete) SportCount() int {
	seen := make(map[string]struct{}, len(a.Participations))
	for _, p := range a.Participations {
		seen[p.Event.Sport] = struct{}{}
	}
	return len(seen)
}

// Medals returns every medal of the athlete in participation order.
func (a *Athlete) Medals() []MedalRecord {
	return a.MedalsInRange(minYear, maxYear)
}

// MedalsInRange returns the medals won in events whose year falls within
// [start, end], in participation order. The result is never nil.
func (a *Athlete) MedalsInRange(start, end int) []MedalRecord {
	out := make([]MedalRecord, 0)
	for _, p := range a.Participations {
		if !p.Medal.Won() || p.Event.Year < start || p.Event.Year > end {
			continue
		}
		out = append(out, p.MedalRecord())
	}
	return out
}

const (
	minYear = 0
	maxYear = int(^uint(0) >> 1)
)
