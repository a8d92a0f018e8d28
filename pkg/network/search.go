package network

import (
	"cmp"
	"slices"
	"strings"
)

// Scope restricts a listing or search by archived state.
type Scope int

const (
	ScopeActive Scope = iota
	ScopeArchived
	ScopeAll
)

func (s Scope) includes(archived bool) bool {
	switch s {
	case ScopeActive:
		return !archived
	case ScopeArchived:
		return archived
	default:
		return true
	}
}

func containsFold(s, lowerQuery string) bool {
	return s != "" && strings.Contains(strings.ToLower(s), lowerQuery)
}

// SearchPeople matches query case-insensitively as a substring of a
// person's name or nickname. An empty query matches nothing.
func SearchPeople(n *Network, query string, scope Scope) []Person {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	return sortedPeople(n, func(p Person) bool {
		return scope.includes(p.Archived) && (containsFold(p.Name, q) || containsFold(p.Nickname, q))
	})
}

// ResolvePerson narrows a search to one person. When several people match,
// the one whose full name equals the query (ignoring case) wins.
func ResolvePerson(n *Network, query string, scope Scope) (Person, error) {
	return resolve("person", query, SearchPeople(n, query, scope), func(p Person) string { return p.Name })
}

func SearchLabels(n *Network, query string, scope Scope) []RelationshipLabel {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	return sortedLabels(n, func(l RelationshipLabel) bool {
		return scope.includes(l.Archived) && containsFold(l.Name, q)
	})
}

func ResolveLabel(n *Network, query string, scope Scope) (RelationshipLabel, error) {
	return resolve("label", query, SearchLabels(n, query, scope), func(l RelationshipLabel) string { return l.Name })
}

func SearchCircles(n *Network, query string, scope Scope) []Circle {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	return sortedCircles(n, func(c Circle) bool {
		return scope.includes(c.Archived) && containsFold(c.Name, q)
	})
}

func ResolveCircle(n *Network, query string, scope Scope) (Circle, error) {
	return resolve("circle", query, SearchCircles(n, query, scope), func(c Circle) string { return c.Name })
}

func resolve[T any](entity, query string, matches []T, name func(T) string) (T, error) {
	var zero T
	q := strings.TrimSpace(query)
	switch len(matches) {
	case 0:
		return zero, &NotFoundError{Entity: entity, ID: q}
	case 1:
		return matches[0], nil
	}

	var exact []T
	for _, m := range matches {
		if strings.EqualFold(name(m), q) {
			exact = append(exact, m)
		}
	}
	if len(exact) == 1 {
		return exact[0], nil
	}

	candidates := make([]string, len(matches))
	for i, m := range matches {
		candidates[i] = name(m)
	}
	return zero, &AmbiguousError{Entity: entity, Query: q, Candidates: candidates}
}

func byName(a, b string) int {
	return cmp.Or(
		strings.Compare(strings.ToLower(a), strings.ToLower(b)),
		strings.Compare(a, b),
	)
}

func sortedPeople(n *Network, keep func(Person) bool) []Person {
	var out []Person
	for _, p := range n.People {
		if keep(p) {
			out = append(out, p)
		}
	}
	slices.SortFunc(out, func(a, b Person) int {
		return cmp.Or(byName(a.Name, b.Name), a.ID.Compare(b.ID))
	})
	return out
}

func sortedLabels(n *Network, keep func(RelationshipLabel) bool) []RelationshipLabel {
	var out []RelationshipLabel
	for _, l := range n.Labels {
		if keep(l) {
			out = append(out, l)
		}
	}
	slices.SortFunc(out, func(a, b RelationshipLabel) int {
		return cmp.Or(byName(a.Name, b.Name), a.ID.Compare(b.ID))
	})
	return out
}

func sortedCircles(n *Network, keep func(Circle) bool) []Circle {
	var out []Circle
	for _, c := range n.Circles {
		if keep(c) {
			out = append(out, c)
		}
	}
	slices.SortFunc(out, func(a, b Circle) int {
		return cmp.Or(byName(a.Name, b.Name), a.ID.Compare(b.ID))
	})
	return out
}
