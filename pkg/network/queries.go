package network

import (
	"slices"
	"strings"
)

// Self returns the Person representing the owner.
func Self(n *Network) Person {
	return n.People[n.SelfID]
}

func GetPerson(n *Network, id PersonID) (Person, bool) {
	p, ok := n.People[id]
	return p, ok
}

// ActivePeople lists non-archived people, self included, by name.
func ActivePeople(n *Network) []Person {
	return sortedPeople(n, func(p Person) bool { return !p.Archived })
}

func ArchivedPeople(n *Network) []Person {
	return sortedPeople(n, func(p Person) bool { return p.Archived })
}

func GetRelationship(n *Network, personID PersonID) (Relationship, bool) {
	r, ok := n.Relationships[personID]
	return r, ok
}

func ActiveLabels(n *Network) []RelationshipLabel {
	return sortedLabels(n, func(l RelationshipLabel) bool { return !l.Archived })
}

func ArchivedLabels(n *Network) []RelationshipLabel {
	return sortedLabels(n, func(l RelationshipLabel) bool { return l.Archived })
}

// LabelsFor returns the labels on someone's relationship in the order they
// were applied. Archived labels are included.
func LabelsFor(n *Network, personID PersonID) []RelationshipLabel {
	r, ok := n.Relationships[personID]
	if !ok {
		return nil
	}
	var out []RelationshipLabel
	for _, id := range r.LabelIDs {
		if l, ok := n.Labels[id]; ok {
			out = append(out, l)
		}
	}
	return out
}

// PeopleWithLabel lists active people whose relationship carries the label.
func PeopleWithLabel(n *Network, labelID LabelID) []Person {
	return sortedPeople(n, func(p Person) bool {
		if p.Archived {
			return false
		}
		r, ok := n.Relationships[p.ID]
		return ok && slices.Contains(r.LabelIDs, labelID)
	})
}

// PeopleWithLabelName is PeopleWithLabel for the label with the given name,
// ignoring case.
func PeopleWithLabelName(n *Network, name string) []Person {
	l, ok := n.labelNamed(strings.TrimSpace(name))
	if !ok {
		return nil
	}
	return PeopleWithLabel(n, l.ID)
}

func ActiveCircles(n *Network) []Circle {
	return sortedCircles(n, func(c Circle) bool { return !c.Archived })
}

func ArchivedCircles(n *Network) []Circle {
	return sortedCircles(n, func(c Circle) bool { return c.Archived })
}

// CircleMembers resolves a circle's members by name. Member ids that name
// nobody are skipped. Archived members are included.
func CircleMembers(n *Network, id CircleID) []Person {
	c, ok := n.Circles[id]
	if !ok {
		return nil
	}
	return sortedPeople(n, func(p Person) bool { return slices.Contains(c.MemberIDs, p.ID) })
}

// CirclesFor lists the active circles a person belongs to.
func CirclesFor(n *Network, personID PersonID) []Circle {
	return sortedCircles(n, func(c Circle) bool {
		return !c.Archived && slices.Contains(c.MemberIDs, personID)
	})
}

// ContactsOfKind filters a person's contact entries, keeping their order.
func ContactsOfKind(n *Network, personID PersonID, kind ContactKind) []ContactEntry {
	var out []ContactEntry
	for _, c := range n.People[personID].Contacts {
		if c.Kind == kind {
			out = append(out, c)
		}
	}
	return out
}

func CustomContactsFor(n *Network, personID PersonID, typeID ContactTypeID) []ContactEntry {
	var out []ContactEntry
	for _, c := range n.People[personID].Contacts {
		if c.Kind == KindCustom && c.CustomType == typeID {
			out = append(out, c)
		}
	}
	return out
}

// PeopleWithContactType lists active people holding at least one entry of
// the custom type.
func PeopleWithContactType(n *Network, typeID ContactTypeID) []Person {
	return sortedPeople(n, func(p Person) bool {
		return !p.Archived && slices.ContainsFunc(p.Contacts, func(c ContactEntry) bool {
			return c.Kind == KindCustom && c.CustomType == typeID
		})
	})
}

func ContactTypes(n *Network) []CustomContactType {
	out := make([]CustomContactType, 0, len(n.ContactTypes))
	for _, ct := range n.ContactTypes {
		out = append(out, ct)
	}
	slices.SortFunc(out, func(a, b CustomContactType) int {
		if c := byName(a.Name, b.Name); c != 0 {
			return c
		}
		return a.ID.Compare(b.ID)
	})
	return out
}

// ContactTypeName names an entry's kind, resolving custom types. A custom
// type that no longer exists renders as "Custom".
func ContactTypeName(n *Network, entry ContactEntry) string {
	switch entry.Kind {
	case KindPhone:
		return "Phone"
	case KindEmail:
		return "Email"
	case KindAddress:
		return "Address"
	case KindCustom:
		if ct, ok := n.ContactTypes[entry.CustomType]; ok {
			return ct.Name
		}
		return "Custom"
	}
	return entry.Kind.String()
}

// FindContactType looks up a custom contact type by name, ignoring case.
func FindContactType(n *Network, name string) (CustomContactType, bool) {
	name = strings.TrimSpace(name)
	for _, ct := range n.ContactTypes {
		if strings.EqualFold(ct.Name, name) {
			return ct, true
		}
	}
	return CustomContactType{}, false
}
