package model

// Country is a nation identified by name. Athletes is a non-owning list of
// the athletes representing it, in the order they were first seen.
type Country struct {
	Name     string
	Athletes []*Athlete
}

// MedalistCount returns the number of distinct athletes with at least one
// medal.
func (c *Country) MedalistCount() int {
	n := 0
	for _, a := range c.Athletes {
		if a.IsMedalist() {
			n++
		}
	}
	return n
}

// MedalTally counts the medals won by the country's athletes in every
// occurrence of sport. A country without athletes in the sport gets a zero
// tally.
func (c *Country) MedalTally(sport string) Tally {
	var t Tally
	for _, a := range c.Athletes {
		for _, p := range a.Participations {
			if p.Event.Sport == sport {
				t.Add(p.Medal)
			}
		}
	}
	return t
}

// MedalistsByGender maps the name of each medalist of the given gender to
// their medals.
func (c *Country) MedalistsByGender(g Gender) map[string][]MedalRecord {
	out := make(map[string][]MedalRecord)
	for _, a := range c.Athletes {
		if a.Gender != g {
			continue
		}
		if medals := a.Medals(); len(medals) > 0 {
			out[a.Name] = medals
		}
	}
	return out
}

// ParticipationRecords lists every participation of every athlete of the
// country.
func (c *Country) ParticipationRecords() []ParticipationRecord {
	out := make([]ParticipationRecord, 0)
	for _, a := range c.Athletes {
		for _, p := range a.Participations {
			out = append(out, ParticipationRecord{
				Event:   p.Event.Sport,
				Year:    p.Event.Year,
				Athlete: a.Name,
			})
		}
	}
	return out
}
