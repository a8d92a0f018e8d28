package network

import (
	"maps"

	"github.com/unowned-ai/kith/pkg/validate"
)

// CircleUpdate is a partial update. Name cannot be cleared.
type CircleUpdate struct {
	Name        Field[string]
	Description Field[string]
}

// CreateCircle groups people under a name. Member ids that name nobody are
// dropped.
func CreateCircle(n *Network, name, description string, members []PersonID) (*Network, Circle, error) {
	valid, err := validate.NonBlank(name, "name")
	if err != nil {
		return nil, Circle{}, err
	}
	c := Circle{
		ID:          NewID[Circle](),
		Name:        valid,
		Description: validate.TrimOptional(description),
		MemberIDs:   n.existingPeople(members),
	}
	return n.withCircle(c), c, nil
}

func UpdateCircle(n *Network, id CircleID, u CircleUpdate) (*Network, Circle, error) {
	c, err := n.circle(id)
	if err != nil {
		return nil, Circle{}, err
	}
	switch u.Name.Op {
	case Set:
		valid, err := validate.NonBlank(u.Name.Value, "name")
		if err != nil {
			return nil, Circle{}, err
		}
		c.Name = valid
	case Clear:
		return nil, Circle{}, &validate.Error{Field: "name", Err: validate.ErrBlank}
	}
	c.Description = validate.TrimOptional(u.Description.apply(c.Description))
	return n.withCircle(c), c, nil
}

func AddCircleMembers(n *Network, id CircleID, people []PersonID) (*Network, Circle, error) {
	c, err := n.circle(id)
	if err != nil {
		return nil, Circle{}, err
	}
	c.MemberIDs = n.existingPeople(append(append([]PersonID(nil), c.MemberIDs...), people...))
	return n.withCircle(c), c, nil
}

func RemoveCircleMembers(n *Network, id CircleID, people []PersonID) (*Network, Circle, error) {
	c, err := n.circle(id)
	if err != nil {
		return nil, Circle{}, err
	}
	c.MemberIDs = without(c.MemberIDs, people)
	return n.withCircle(c), c, nil
}

// SetCircleMembers replaces the membership wholesale.
func SetCircleMembers(n *Network, id CircleID, people []PersonID) (*Network, Circle, error) {
	c, err := n.circle(id)
	if err != nil {
		return nil, Circle{}, err
	}
	c.MemberIDs = n.existingPeople(people)
	return n.withCircle(c), c, nil
}

func ArchiveCircle(n *Network, id CircleID) (*Network, error) {
	return setCircleArchived(n, id, true)
}

func UnarchiveCircle(n *Network, id CircleID) (*Network, error) {
	return setCircleArchived(n, id, false)
}

func setCircleArchived(n *Network, id CircleID, archived bool) (*Network, error) {
	c, err := n.circle(id)
	if err != nil {
		return nil, err
	}
	c.Archived = archived
	return n.withCircle(c), nil
}

// DeleteCircle removes the circle. Its members are not affected.
func DeleteCircle(n *Network, id CircleID) (*Network, error) {
	if _, err := n.circle(id); err != nil {
		return nil, err
	}
	next := n.clone()
	next.Circles = maps.Clone(n.Circles)
	delete(next.Circles, id)
	return next, nil
}

func (n *Network) circle(id CircleID) (Circle, error) {
	c, ok := n.Circles[id]
	if !ok {
		return Circle{}, notFound("circle", id)
	}
	return c, nil
}
