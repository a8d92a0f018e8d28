package network

import (
	"strings"

	"github.com/unowned-ai/kith/pkg/validate"
)

// CreateLabel adds a relationship label. Names are unique regardless of
// case.
func CreateLabel(n *Network, name string) (*Network, RelationshipLabel, error) {
	valid, err := validate.NonBlank(name, "name")
	if err != nil {
		return nil, RelationshipLabel{}, err
	}
	if _, taken := n.labelNamed(valid); taken {
		return nil, RelationshipLabel{}, &AlreadyExistsError{Entity: "label", Name: valid}
	}
	label := RelationshipLabel{ID: NewID[RelationshipLabel](), Name: valid}
	return n.withLabel(label), label, nil
}

// UpdateLabel renames a label. Renaming a label to its own name in a
// different case is allowed.
func UpdateLabel(n *Network, id LabelID, name string) (*Network, RelationshipLabel, error) {
	label, ok := n.Labels[id]
	if !ok {
		return nil, RelationshipLabel{}, notFound("label", id)
	}
	valid, err := validate.NonBlank(name, "name")
	if err != nil {
		return nil, RelationshipLabel{}, err
	}
	if existing, taken := n.labelNamed(valid); taken && existing.ID != id {
		return nil, RelationshipLabel{}, &AlreadyExistsError{Entity: "label", Name: valid}
	}
	label.Name = valid
	return n.withLabel(label), label, nil
}

func ArchiveLabel(n *Network, id LabelID) (*Network, error) {
	return setLabelArchived(n, id, true)
}

func UnarchiveLabel(n *Network, id LabelID) (*Network, error) {
	return setLabelArchived(n, id, false)
}

func setLabelArchived(n *Network, id LabelID, archived bool) (*Network, error) {
	label, ok := n.Labels[id]
	if !ok {
		return nil, notFound("label", id)
	}
	label.Archived = archived
	return n.withLabel(label), nil
}

func (n *Network) labelNamed(name string) (RelationshipLabel, bool) {
	for _, l := range n.Labels {
		if strings.EqualFold(l.Name, name) {
			return l, true
		}
	}
	return RelationshipLabel{}, false
}
