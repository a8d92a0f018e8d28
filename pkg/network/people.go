package network

import (
	"time"

	"github.com/unowned-ai/kith/pkg/validate"
)

// NewPerson carries the fields for AddPerson. Only Name is required.
type NewPerson struct {
	Name     string
	Nickname string
	HowWeMet string
	Birthday time.Time
	Notes    string
	Location string
}

// PersonUpdate describes a partial update. Name may be kept or set but
// never cleared.
type PersonUpdate struct {
	Name     Field[string]
	Nickname Field[string]
	HowWeMet Field[string]
	Birthday Field[time.Time]
	Notes    Field[string]
	Location Field[string]
}

// AddPerson adds someone to the network. It does not create a
// relationship with them.
func AddPerson(n *Network, np NewPerson) (*Network, Person, error) {
	name, err := validate.NonBlank(np.Name, "name")
	if err != nil {
		return nil, Person{}, err
	}

	p := Person{
		ID:       NewID[Person](),
		Name:     name,
		Nickname: validate.TrimOptional(np.Nickname),
		HowWeMet: validate.TrimOptional(np.HowWeMet),
		Birthday: DateOf(np.Birthday),
		Notes:    validate.TrimOptional(np.Notes),
		Location: validate.TrimOptional(np.Location),
	}
	return n.withPerson(p), p, nil
}

func UpdatePerson(n *Network, id PersonID, u PersonUpdate) (*Network, Person, error) {
	p, err := n.person(id)
	if err != nil {
		return nil, Person{}, err
	}

	switch u.Name.Op {
	case Set:
		name, err := validate.NonBlank(u.Name.Value, "name")
		if err != nil {
			return nil, Person{}, err
		}
		p.Name = name
	case Clear:
		return nil, Person{}, &validate.Error{Field: "name", Err: validate.ErrBlank}
	}

	p.Nickname = validate.TrimOptional(u.Nickname.apply(p.Nickname))
	p.HowWeMet = validate.TrimOptional(u.HowWeMet.apply(p.HowWeMet))
	p.Birthday = DateOf(u.Birthday.apply(p.Birthday))
	p.Notes = validate.TrimOptional(u.Notes.apply(p.Notes))
	p.Location = validate.TrimOptional(u.Location.apply(p.Location))

	next := n.withPerson(p)
	if p.IsSelf {
		next.Owner.Name = p.Name
	}
	return next, p, nil
}

// ArchivePerson hides someone from default listings. Their relationship,
// labels and circle memberships are untouched.
func ArchivePerson(n *Network, id PersonID) (*Network, error) {
	p, err := n.person(id)
	if err != nil {
		return nil, err
	}
	if p.IsSelf {
		return nil, ErrCannotArchiveSelf
	}
	p.Archived = true
	return n.withPerson(p), nil
}

func UnarchivePerson(n *Network, id PersonID) (*Network, error) {
	p, err := n.person(id)
	if err != nil {
		return nil, err
	}
	p.Archived = false
	return n.withPerson(p), nil
}
