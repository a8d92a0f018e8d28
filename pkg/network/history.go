package network

import (
	"cmp"
	"slices"
	"time"
)

// InteractionsWith returns someone's history, most recent first.
func InteractionsWith(n *Network, personID PersonID) []Interaction {
	return n.Relationships[personID].History
}

// LastInteraction returns the interaction with the latest date. Among
// interactions on the same day the most recently logged one wins.
func LastInteraction(n *Network, personID PersonID) (Interaction, bool) {
	history := n.Relationships[personID].History
	if len(history) == 0 {
		return Interaction{}, false
	}
	last := history[0]
	for _, in := range history[1:] {
		if in.Date.After(last.Date) {
			last = in
		}
	}
	return last, true
}

// DaysSinceInteraction counts days from the last interaction to asOf.
func DaysSinceInteraction(n *Network, personID PersonID, asOf time.Time) (int, bool) {
	last, ok := LastInteraction(n, personID)
	if !ok {
		return 0, false
	}
	return DaysBetween(last.Date, asOf), true
}

// PersonInteraction pairs an interaction with whom it was with.
type PersonInteraction struct {
	Person      Person      `json:"person"`
	Interaction Interaction `json:"interaction"`
}

// InteractionsInRange lists interactions dated within [from, to], newest
// first.
func InteractionsInRange(n *Network, from, to time.Time) []PersonInteraction {
	from, to = DateOf(from), DateOf(to)
	var out []PersonInteraction
	for personID, r := range n.Relationships {
		p, ok := n.People[personID]
		if !ok {
			continue
		}
		for _, in := range r.History {
			if in.Date.Before(from) || in.Date.After(to) {
				continue
			}
			out = append(out, PersonInteraction{Person: p, Interaction: in})
		}
	}
	slices.SortFunc(out, func(a, b PersonInteraction) int {
		return cmp.Or(
			b.Interaction.Date.Compare(a.Interaction.Date),
			byName(a.Person.Name, b.Person.Name),
			a.Interaction.ID.Compare(b.Interaction.ID),
		)
	})
	return out
}

// StaleContact is a person not seen recently. Contacted is false when
// there is no history at all, in which case DaysSince is meaningless.
type StaleContact struct {
	Person    Person `json:"person"`
	DaysSince int    `json:"days_since"`
	Contacted bool   `json:"contacted"`
}

// NotContactedIn lists active people with a relationship whose last
// interaction is at least days before asOf. People never contacted come
// first, then the longest silences.
func NotContactedIn(n *Network, days int, asOf time.Time) []StaleContact {
	var out []StaleContact
	for personID := range n.Relationships {
		p, ok := n.People[personID]
		if !ok || p.Archived || p.IsSelf {
			continue
		}
		since, contacted := DaysSinceInteraction(n, personID, asOf)
		if contacted && since < days {
			continue
		}
		out = append(out, StaleContact{Person: p, DaysSince: since, Contacted: contacted})
	}
	slices.SortFunc(out, func(a, b StaleContact) int {
		if a.Contacted != b.Contacted {
			if !a.Contacted {
				return -1
			}
			return 1
		}
		return cmp.Or(cmp.Compare(b.DaysSince, a.DaysSince), byName(a.Person.Name, b.Person.Name))
	})
	return out
}
