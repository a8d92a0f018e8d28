// Package network holds the relationship network data model together with
// the operations that produce new snapshots and the queries that read them.
//
// A *Network is treated as an immutable value. Every operation takes the
// current snapshot and returns a new one, leaving its input untouched, so a
// caller that gets an error still holds a valid snapshot.
package network

import (
	"maps"
	"slices"
	"time"

	"github.com/unowned-ai/kith/pkg/validate"
)

// NewNetwork creates a network for its owner together with the self Person,
// the default labels and the self relationship carrying the "me" label.
func NewNetwork(ownerName, email string) (*Network, error) {
	name, err := validate.NonBlank(ownerName, "name")
	if err != nil {
		return nil, err
	}

	owner := User{ID: NewID[User](), Name: name, Email: validate.TrimOptional(email)}
	self := Person{ID: NewID[Person](), Name: name, IsSelf: true}

	n := &Network{
		Owner:         owner,
		SelfID:        self.ID,
		People:        map[PersonID]Person{self.ID: self},
		Relationships: map[PersonID]Relationship{},
		Circles:       map[CircleID]Circle{},
		Labels:        make(map[LabelID]RelationshipLabel, len(DefaultLabels)),
		ContactTypes:  map[ContactTypeID]CustomContactType{},
	}

	var meID LabelID
	for _, labelName := range DefaultLabels {
		label := RelationshipLabel{ID: NewID[RelationshipLabel](), Name: labelName}
		n.Labels[label.ID] = label
		if labelName == MeLabel {
			meID = label.ID
		}
	}
	n.Relationships[self.ID] = Relationship{PersonID: self.ID, LabelIDs: []LabelID{meID}}

	return n, nil
}

// UpdateOwner renames the owner. The self Person follows the owner's name.
func UpdateOwner(n *Network, name, email string) (*Network, error) {
	validName, err := validate.NonBlank(name, "name")
	if err != nil {
		return nil, err
	}

	next := n.clone()
	next.Owner.Name = validName
	next.Owner.Email = validate.TrimOptional(email)

	if self, ok := n.People[n.SelfID]; ok {
		self.Name = validName
		next.People = maps.Clone(n.People)
		next.People[self.ID] = self
	}
	return next, nil
}

// clone copies the top-level struct only. Callers replace whichever maps
// they change with maps.Clone before writing to them.
func (n *Network) clone() *Network {
	next := *n
	return &next
}

func (n *Network) withPerson(p Person) *Network {
	next := n.clone()
	next.People = maps.Clone(n.People)
	next.People[p.ID] = p
	return next
}

func (n *Network) withRelationship(r Relationship) *Network {
	next := n.clone()
	next.Relationships = maps.Clone(n.Relationships)
	next.Relationships[r.PersonID] = r
	return next
}

func (n *Network) withCircle(c Circle) *Network {
	next := n.clone()
	next.Circles = maps.Clone(n.Circles)
	next.Circles[c.ID] = c
	return next
}

func (n *Network) withLabel(l RelationshipLabel) *Network {
	next := n.clone()
	next.Labels = maps.Clone(n.Labels)
	next.Labels[l.ID] = l
	return next
}

func (n *Network) withContactType(t CustomContactType) *Network {
	next := n.clone()
	next.ContactTypes = maps.Clone(n.ContactTypes)
	next.ContactTypes[t.ID] = t
	return next
}

func (n *Network) person(id PersonID) (Person, error) {
	p, ok := n.People[id]
	if !ok {
		return Person{}, notFound("person", id)
	}
	return p, nil
}

// otherPerson looks up a person that relationship and interaction
// operations may target.
func (n *Network) otherPerson(id PersonID, selfErr error) (Person, error) {
	p, err := n.person(id)
	if err != nil {
		return Person{}, err
	}
	if p.IsSelf || id == n.SelfID {
		return Person{}, selfErr
	}
	return p, nil
}

// existingPeople dedupes ids and drops the ones that name no person.
func (n *Network) existingPeople(ids []PersonID) []PersonID {
	return dedupe(ids, func(id PersonID) bool {
		_, ok := n.People[id]
		return ok
	})
}

func (n *Network) existingLabels(ids []LabelID) []LabelID {
	return dedupe(ids, func(id LabelID) bool {
		_, ok := n.Labels[id]
		return ok
	})
}

// dedupe keeps the first occurrence of every value accepted by keep, in
// order. An empty result is nil.
func dedupe[T comparable](values []T, keep func(T) bool) []T {
	var out []T
	seen := make(map[T]struct{}, len(values))
	for _, v := range values {
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		if keep != nil && !keep(v) {
			continue
		}
		out = append(out, v)
	}
	return out
}

// without returns values minus every element of drop, as a new slice.
func without[T comparable](values, drop []T) []T {
	var out []T
	for _, v := range values {
		if !slices.Contains(drop, v) {
			out = append(out, v)
		}
	}
	return out
}

// DateOf truncates t to its calendar date at midnight UTC.
func DateOf(t time.Time) time.Time {
	if t.IsZero() {
		return time.Time{}
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today is DateOf(time.Now()).
func Today() time.Time {
	return DateOf(time.Now())
}

// DaysBetween counts whole calendar days from from to to. It is negative
// when to precedes from.
func DaysBetween(from, to time.Time) int {
	return int(DateOf(to).Sub(DateOf(from)).Hours() / 24)
}
