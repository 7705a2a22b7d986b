// Package stats answers aggregate questions over a loaded dataset graph.
//
// A Calculator only traverses the graph; it never creates or modifies
// entities, so it is safe for concurrent readers.
package stats

import (
	"fmt"
	"sort"

	"github.com/okian/olympstats/internal/domain/model"
)

// Calculator holds the athlete, country and event collections of a graph.
type Calculator struct {
	athletes  []*model.Athlete
	countries []*model.Country
	events    []*model.Event

	athleteIdx map[string]*model.Athlete
	countryIdx map[string]*model.Country
}

// New builds a calculator over the given collections. Athletes and
// countries are kept sorted by name so that traversal order, and with it
// every result, is deterministic. No validation is performed.
func New(athletes map[string]*model.Athlete, countries map[string]*model.Country, events []*model.Event) *Calculator {
	c := &Calculator{
		athletes:   make([]*model.Athlete, 0, len(athletes)),
		countries:  make([]*model.Country, 0, len(countries)),
		events:     events,
		athleteIdx: athletes,
		countryIdx: countries,
	}
	for _, a := range athletes {
		c.athletes = append(c.athletes, a)
	}
	for _, p := range countries {
		c.countries = append(c.countries, p)
	}
	sort.Slice(c.athletes, func(i, j int) bool { return c.athletes[i].Name < c.athletes[j].Name })
	sort.Slice(c.countries, func(i, j int) bool { return c.countries[i].Name < c.countries[j].Name })
	return c
}

// NewFromGraph builds a calculator over a built graph.
func NewFromGraph(g model.Graph) *Calculator {
	return New(g.Athletes, g.Countries, g.Events)
}

// AthletesPerYear maps each sport held in year to the athletes who took
// part in it.
func (c *Calculator) AthletesPerYear(year int) map[string][]*model.Athlete {
	out := make(map[string][]*model.Athlete)
	for _, e := range c.events {
		if e.Year == year {
			out[e.Sport] = e.Athletes()
		}
	}
	return out
}

// MedalsInRange lists the medals won by the named athlete in events held
// between start and end, both inclusive. An athlete without qualifying
// medals yields an empty slice; an unknown name yields ErrAthleteNotFound.
func (c *Calculator) MedalsInRange(start, end int, athlete string) ([]model.MedalRecord, error) {
	a, err := c.athlete(athlete)
	if err != nil {
		return nil, err
	}
	return a.MedalsInRange(start, end), nil
}

// AthletesByCountry lists every participation of every athlete of the
// named country.
func (c *Calculator) AthletesByCountry(country string) ([]model.ParticipationRecord, error) {
	p, err := c.country(country)
	if err != nil {
		return nil, err
	}
	return p.ParticipationRecords(), nil
}

// CountryWithMostMedalists returns every country tied for the largest
// number of distinct medalists, with that number.
//
// The running maximum starts at -1, so when no country has a medalist all
// of them are returned with 0.
func (c *Calculator) CountryWithMostMedalists() map[string]int {
	out := make(map[string]int)
	best := -1
	for _, p := range c.countries {
		n := p.MedalistCount()
		if n < best {
			continue
		}
		if n > best {
			clear(out)
			best = n
		}
		out[p.Name] = n
	}
	return out
}

// MedalistsByEvent returns the distinct athletes who won a medal in any
// occurrence of sport, sorted by name.
func (c *Calculator) MedalistsByEvent(sport string) []*model.Athlete {
	seen := make(map[*model.Athlete]struct{})
	out := make([]*model.Athlete, 0)
	for _, e := range c.events {
		if e.Sport != sport {
			continue
		}
		for _, a := range e.Medalists() {
			if _, ok := seen[a]; ok {
				continue
			}
			seen[a] = struct{}{}
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// AthletesWithMoreMedals maps every athlete with strictly more than threshold
// medals to their medal count.
func (c *Calculator) AthletesWithMoreMedals(threshold int) map[string]int {
	out := make(map[string]int)
	for _, a := range c.athletes {
		if n := a.MedalCount(); n > threshold {
			out[a.Name] = n
		}
	}
	return out
}

// StarAthletes returns every athlete tied for the most medals overall.
//
// Unlike CountryWithMostMedalists the running maximum starts at 0. Both
// compare with >=, so the different start is not observable: when nobody
// has a medal every athlete is returned with 0.
func (c *Calculator) StarAthletes() map[string]int {
	out := make(map[string]int)
	best := 0
	for _, a := range c.athletes {
		n := a.MedalCount()
		if n < best {
			continue
		}
		if n > best {
			clear(out)
			best = n
		}
		out[a.Name] = n
	}
	return out
}

// BestCountryForEvent ranks countries by their tally in every occurrence
// of sport: gold first, then silver, then bronze. All countries tied for
// first place are returned.
func (c *Calculator) BestCountryForEvent(sport string) map[string]model.Tally {
	out := make(map[string]model.Tally)
	var best model.Tally
	for i, p := range c.countries {
		t := p.MedalTally(sport)
		cmp := t.Compare(best)
		if i > 0 && cmp < 0 {
			continue
		}
		if i == 0 || cmp > 0 {
			clear(out)
			best = t
		}
		out[p.Name] = t
	}
	return out
}

// AllTerrainAthlete returns the athlete who took part in the most distinct
// sports. Ties go to the lexicographically smallest name.
func (c *Calculator) AllTerrainAthlete() (*model.Athlete, error) {
	var champion *model.Athlete
	best := -1
	for _, a := range c.athletes {
		n := a.SportCount()
		if n > best || (n == best && a.Name < champion.Name) {
			champion, best = a, n
		}
	}
	if champion == nil {
		return nil, ErrNoAthletes
	}
	return champion, nil
}

// MedalistsByCountryAndGender maps each medalist of the named country and
// gender to their medals.
func (c *Calculator) MedalistsByCountryAndGender(country string, g model.Gender) (map[string][]model.MedalRecord, error) {
	p, err := c.country(country)
	if err != nil {
		return nil, err
	}
	return p.MedalistsByGender(g), nil
}

// MedalistPercentage returns the fraction, between 0 and 1, of athletes
// who won at least one medal. An empty collection yields
// ErrEmptyPopulation.
func (c *Calculator) MedalistPercentage() (float64, error) {
	if len(c.athletes) == 0 {
		return 0, ErrEmptyPopulation
	}
	medalists := 0
	for _, a := range c.athletes {
		if a.IsMedalist() {
			medalists++
		}
	}
	return float64(medalists) / float64(len(c.athletes)), nil
}

// SportNames returns the distinct sport names across all years, sorted.
func (c *Calculator) SportNames() []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, e := range c.events {
		if _, ok := seen[e.Sport]; ok {
			continue
		}
		seen[e.Sport] = struct{}{}
		out = append(out, e.Sport)
	}
	sort.Strings(out)
	return out
}

// CountryOfAthlete returns the name of the country the athlete represents.
func (c *Calculator) CountryOfAthlete(athlete string) (string, error) {
	a, err := c.athlete(athlete)
	if err != nil {
		return "", err
	}
	return a.Country, nil
}

// Summary describes the size of the loaded dataset.
type Summary struct {
	Athletes       int `json:"athletes"`
	Countries      int `json:"countries"`
	Events         int `json:"events"`
	Sports         int `json:"sports"`
	Participations int `json:"participations"`
	Medalists      int `json:"medalists"`
}

// Summary counts the entities of the dataset.
func (c *Calculator) Summary() Summary {
	s := Summary{
		Athletes:  len(c.athletes),
		Countries: len(c.countries),
		Events:    len(c.events),
		Sports:    len(c.SportNames()),
	}
	for _, e := range c.events {
		s.Participations += len(e.Participations)
	}
	for _, a := range c.athletes {
		if a.IsMedalist() {
			s.Medalists++
		}
	}
	return s
}

func (c *Calculator) athlete(name string) (*model.Athlete, error) {
	a, ok := c.athleteIdx[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrAthleteNotFound, name)
	}
	return a, nil
}

func (c *Calculator) country(name string) (*model.Country, error) {
	p, ok := c.countryIdx[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrCountryNotFound, name)
	}
	return p, nil
}
