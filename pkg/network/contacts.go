package network

import (
	"slices"
	"strings"

	"github.com/unowned-ai/kith/pkg/validate"
)

func AddPhone(n *Network, personID PersonID, number, label string) (*Network, ContactEntry, error) {
	value, err := validate.NonBlank(number, "phone number")
	if err != nil {
		return nil, ContactEntry{}, err
	}
	return addContact(n, personID, ContactEntry{Kind: KindPhone, Value: value, Label: label})
}

func AddEmail(n *Network, personID PersonID, email, label string) (*Network, ContactEntry, error) {
	value, err := validate.NonBlank(email, "email")
	if err != nil {
		return nil, ContactEntry{}, err
	}
	return addContact(n, personID, ContactEntry{Kind: KindEmail, Value: value, Label: label})
}

// AddAddress requires every part of the address.
func AddAddress(n *Network, personID PersonID, addr Address, label string) (*Network, ContactEntry, error) {
	var clean Address
	parts := []struct {
		dst   *string
		value string
		field string
	}{
		{&clean.Street, addr.Street, "street"},
		{&clean.City, addr.City, "city"},
		{&clean.State, addr.State, "state"},
		{&clean.Zip, addr.Zip, "zip"},
		{&clean.Country, addr.Country, "country"},
	}
	for _, part := range parts {
		v, err := validate.NonBlank(part.value, part.field)
		if err != nil {
			return nil, ContactEntry{}, err
		}
		*part.dst = v
	}
	return addContact(n, personID, ContactEntry{Kind: KindAddress, Address: &clean, Label: label})
}

// AddCustomContact adds a value of a network-defined contact type, which
// must exist.
func AddCustomContact(n *Network, personID PersonID, typeID ContactTypeID, value, label string) (*Network, ContactEntry, error) {
	v, err := validate.NonBlank(value, "value")
	if err != nil {
		return nil, ContactEntry{}, err
	}
	if _, ok := n.ContactTypes[typeID]; !ok {
		return nil, ContactEntry{}, notFound("contact type", typeID)
	}
	return addContact(n, personID, ContactEntry{Kind: KindCustom, CustomType: typeID, Value: v, Label: label})
}

func addContact(n *Network, personID PersonID, entry ContactEntry) (*Network, ContactEntry, error) {
	p, err := n.person(personID)
	if err != nil {
		return nil, ContactEntry{}, err
	}
	entry.ID = NewID[ContactEntry]()
	entry.Label = validate.TrimOptional(entry.Label)

	p.Contacts = append(slices.Clip(p.Contacts), entry)
	return n.withPerson(p), entry, nil
}

// RemoveContact drops the entry with the given id. Removing an id the
// person does not have is not an error.
func RemoveContact(n *Network, personID PersonID, entryID ContactEntryID) (*Network, error) {
	p, err := n.person(personID)
	if err != nil {
		return nil, err
	}
	p.Contacts = slices.DeleteFunc(slices.Clone(p.Contacts), func(c ContactEntry) bool {
		return c.ID == entryID
	})
	if len(p.Contacts) == 0 {
		p.Contacts = nil
	}
	return n.withPerson(p), nil
}

// UpdateContactLabel replaces the label of one entry. A blank label clears
// it.
func UpdateContactLabel(n *Network, personID PersonID, entryID ContactEntryID, label string) (*Network, error) {
	p, err := n.person(personID)
	if err != nil {
		return nil, err
	}
	i := slices.IndexFunc(p.Contacts, func(c ContactEntry) bool { return c.ID == entryID })
	if i < 0 {
		return nil, notFound("contact entry", entryID)
	}
	p.Contacts = slices.Clone(p.Contacts)
	p.Contacts[i].Label = validate.TrimOptional(label)
	return n.withPerson(p), nil
}

// CreateContactType defines a custom contact kind. Names are unique
// regardless of case.
func CreateContactType(n *Network, name string) (*Network, CustomContactType, error) {
	valid, err := validate.NonBlank(name, "name")
	if err != nil {
		return nil, CustomContactType{}, err
	}
	if n.contactTypeNamed(valid, ContactTypeID{}) {
		return nil, CustomContactType{}, &AlreadyExistsError{Entity: "contact type", Name: valid}
	}
	ct := CustomContactType{ID: NewID[CustomContactType](), Name: valid}
	return n.withContactType(ct), ct, nil
}

func RenameContactType(n *Network, id ContactTypeID, name string) (*Network, error) {
	ct, ok := n.ContactTypes[id]
	if !ok {
		return nil, notFound("contact type", id)
	}
	valid, err := validate.NonBlank(name, "name")
	if err != nil {
		return nil, err
	}
	if n.contactTypeNamed(valid, id) {
		return nil, &AlreadyExistsError{Entity: "contact type", Name: valid}
	}
	ct.Name = valid
	return n.withContactType(ct), nil
}

// contactTypeNamed reports whether a type other than except has name.
func (n *Network) contactTypeNamed(name string, except ContactTypeID) bool {
	for id, ct := range n.ContactTypes {
		if id != except && strings.EqualFold(ct.Name, name) {
			return true
		}
	}
	return false
}
