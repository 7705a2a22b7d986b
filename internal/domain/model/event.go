package model

// EventKey is the identity of an event occurrence.
type EventKey struct {
	Sport string
	Year  int
}

// Event is one occurrence of a sport in a given year.
type Event struct {
	Sport          string
	Year           int
	Participations []*Participation
}

// Key returns the (sport, year) identity of the event.
func (e *Event) Key() EventKey { return EventKey{Sport: e.Sport, Year: e.Year} }

// Athletes returns the distinct athletes who took part, in participation
// order.
func (e *Event) Athletes() []*Athlete {
	return e.collect(func(*Participation) bool { return true })
}

// Medalists returns the distinct athletes who won a medal, in participation
// order.
func (e *Event) Medalists() []*Athlete {
	return e.collect(func(p *Participation) bool { return p.Medal.Won() })
}

func (e *Event) collect(keep func(*Participation) bool) []*Athlete {
	seen := make(map[*Athlete]struct{}, len(e.Participations))
	out := make([]*Athlete, 0, len(e.Participations))
	for _, p := range e.Participations {
		if !keep(p) {
			continue
		}
		if _, ok := seen[p.Athlete]; ok {
			continue
		}
		seen[p.Athlete] = struct{}{}
		out = append(out, p.Athlete)
	}
	return out
}

// Participation links an athlete to an event occurrence with an optional
// medal. It is never modified after creation.
type Participation struct {
	Athlete *Athlete
	Event   *Event
	Medal   Medal
}

// MedalRecord describes the participation as a medal record.
func (p *Participation) MedalRecord() MedalRecord {
	return MedalRecord{Event: p.Event.Sport, Year: p.Event.Year, Medal: p.Medal}
}
