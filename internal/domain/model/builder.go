package model

import (
	"fmt"
	"strings"
)

// Graph is the fully linked dataset handed to the statistics engine.
type Graph struct {
	Athletes  map[string]*Athlete
	Countries map[string]*Country
	Events    []*Event
}

// Builder assembles a Graph one participation at a time. It is not safe
// for concurrent use.
type Builder struct {
	athletes  map[string]*Athlete
	countries map[string]*Country
	events    map[EventKey]*Event
	order     []*Event
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{
		athletes:  make(map[string]*Athlete),
		countries: make(map[string]*Country),
		events:    make(map[EventKey]*Event),
	}
}

// Row is one participation fact as read from a dataset.
type Row struct {
	Athlete string
	Gender  Gender
	Country string
	Sport   string
	Year    int
	Medal   Medal
}

// Add records a participation, creating the athlete, country and event
// occurrence on first sight.
func (b *Builder) Add(r Row) (*Participation, error) {
	r.Athlete = strings.TrimSpace(r.Athlete)
	r.Country = strings.TrimSpace(r.Country)
	r.Sport = strings.TrimSpace(r.Sport)
	switch {
	case r.Athlete == "":
		return nil, fmt.Errorf("%w: empty athlete name", ErrInvalidEntity)
	case r.Country == "":
		return nil, fmt.Errorf("%w: empty country for %q", ErrInvalidEntity, r.Athlete)
	case r.Sport == "":
		return nil, fmt.Errorf("%w: empty sport for %q", ErrInvalidEntity, r.Athlete)
	case r.Year <= 0:
		return nil, fmt.Errorf("%w: year %d for %q", ErrInvalidEntity, r.Year, r.Athlete)
	case r.Gender != Male && r.Gender != Female:
		return nil, fmt.Errorf("%w: gender %q for %q", ErrInvalidEntity, r.Gender, r.Athlete)
	}

	athlete, err := b.athlete(r)
	if err != nil {
		return nil, err
	}

	key := EventKey{Sport: r.Sport, Year: r.Year}
	for _, p := range athlete.Participations {
		if p.Event.Key() == key {
			return nil, fmt.Errorf("%w: %q in %s %d", ErrDuplicateParticipation, r.Athlete, r.Sport, r.Year)
		}
	}

	event, ok := b.events[key]
	if !ok {
		event = &Event{Sport: r.Sport, Year: r.Year}
		b.events[key] = event
		b.order = append(b.order, event)
	}

	p := &Participation{Athlete: athlete, Event: event, Medal: r.Medal}
	athlete.Participations = append(athlete.Participations, p)
	event.Participations = append(event.Participations, p)
	return p, nil
}

func (b *Builder) athlete(r Row) (*Athlete, error) {
	if a, ok := b.athletes[r.Athlete]; ok {
		if a.Country != r.Country {
			return nil, fmt.Errorf("%w: %q represents %q, not %q", ErrConflictingAthlete, a.Name, a.Country, r.Country)
		}
		if a.Gender != r.Gender {
			return nil, fmt.Errorf("%w: %q is %s, not %s", ErrConflictingAthlete, a.Name, a.Gender, r.Gender)
		}
		return a, nil
	}

	country, ok := b.countries[r.Country]
	if !ok {
		country = &Country{Name: r.Country}
		b.countries[r.Country] = country
	}
	a := &Athlete{Name: r.Athlete, Gender: r.Gender, Country: r.Country}
	b.athletes[r.Athlete] = a
	country.Athletes = append(country.Athletes, a)
	return a, nil
}

// AddAthlete registers an athlete without participations.
func (b *Builder) AddAthlete(name string, g Gender, country string) (*Athlete, error) {
	name, country = strings.TrimSpace(name), strings.TrimSpace(country)
	if name == "" || country == "" {
		return nil, fmt.Errorf("%w: athlete %q of %q", ErrInvalidEntity, name, country)
	}
	if g != Male && g != Female {
		return nil, fmt.Errorf("%w: gender %q for %q", ErrInvalidEntity, g, name)
	}
	return b.athlete(Row{Athlete: name, Gender: g, Country: country})
}

// Build returns the assembled graph. Events keep first-seen order. The
// builder must not be used afterwards.
func (b *Builder) Build() Graph {
	return Graph{
		Athletes:  b.athletes,
		Countries: b.countries,
		Events:    b.order,
	}
}
