package network

import (
	"slices"

	"github.com/unowned-ai/kith/pkg/validate"
)

// SetRelationship creates the relationship with a person if there is none
// and replaces its labels and reminder wholesale. History is kept.
// Label ids that name no label are dropped. A nil reminderDays clears the
// reminder.
func SetRelationship(n *Network, personID PersonID, labelIDs []LabelID, reminderDays *int) (*Network, Relationship, error) {
	if _, err := n.otherPerson(personID, ErrSelfRelationship); err != nil {
		return nil, Relationship{}, err
	}
	days, err := validate.OptionalPositive(reminderDays, "reminderDays")
	if err != nil {
		return nil, Relationship{}, err
	}

	r := n.relationshipOrNew(personID)
	r.LabelIDs = n.existingLabels(labelIDs)
	r.ReminderDays = reminderValue(days)
	return n.withRelationship(r), r, nil
}

// SetLabels replaces the label set, creating an empty relationship first
// if needed.
func SetLabels(n *Network, personID PersonID, labelIDs []LabelID) (*Network, Relationship, error) {
	if _, err := n.otherPerson(personID, ErrSelfRelationship); err != nil {
		return nil, Relationship{}, err
	}
	r := n.relationshipOrNew(personID)
	r.LabelIDs = n.existingLabels(labelIDs)
	return n.withRelationship(r), r, nil
}

// AddLabels requires an existing relationship. Use SetRelationship or
// SetLabels to create one.
func AddLabels(n *Network, personID PersonID, labelIDs []LabelID) (*Network, Relationship, error) {
	r, err := n.existingRelationship(personID)
	if err != nil {
		return nil, Relationship{}, err
	}
	r.LabelIDs = n.existingLabels(append(slices.Clone(r.LabelIDs), labelIDs...))
	return n.withRelationship(r), r, nil
}

// RemoveLabels requires an existing relationship.
func RemoveLabels(n *Network, personID PersonID, labelIDs []LabelID) (*Network, Relationship, error) {
	r, err := n.existingRelationship(personID)
	if err != nil {
		return nil, Relationship{}, err
	}
	r.LabelIDs = without(r.LabelIDs, labelIDs)
	return n.withRelationship(r), r, nil
}

// SetReminder changes the cadence of an existing relationship. It fails
// with a not-found error when there is no relationship yet; callers that
// may be creating one use SetRelationship instead.
func SetReminder(n *Network, personID PersonID, days *int) (*Network, Relationship, error) {
	valid, err := validate.OptionalPositive(days, "days")
	if err != nil {
		return nil, Relationship{}, err
	}
	r, err := n.existingRelationship(personID)
	if err != nil {
		return nil, Relationship{}, err
	}
	r.ReminderDays = reminderValue(valid)
	return n.withRelationship(r), r, nil
}

func (n *Network) relationshipOrNew(personID PersonID) Relationship {
	if r, ok := n.Relationships[personID]; ok {
		return r
	}
	return Relationship{PersonID: personID}
}

func (n *Network) existingRelationship(personID PersonID) (Relationship, error) {
	if personID == n.SelfID {
		return Relationship{}, ErrSelfRelationship
	}
	r, ok := n.Relationships[personID]
	if !ok {
		return Relationship{}, notFound("relationship", personID)
	}
	return r, nil
}

func reminderValue(days *int) int {
	if days == nil {
		return 0
	}
	return *days
}
