package network

import (
	"fmt"
	"time"

	"github.com/unowned-ai/kith/pkg/validate"
)

// InPersonLog describes an in-person meeting. The counterpart's location
// is always the same as Location.
type InPersonLog struct {
	Location string
	Topics   []string
	Note     string
	Date     time.Time
}

// RemoteLog describes a contact over any medium other than InPerson.
type RemoteLog struct {
	Medium        Medium
	MyLocation    string
	TheirLocation string
	Topics        []string
	Note          string
	Date          time.Time
}

// LogInPerson records a meeting, creating the relationship on demand. A
// zero Date means today.
func LogInPerson(n *Network, personID PersonID, l InPersonLog) (*Network, Interaction, error) {
	if _, err := n.otherPerson(personID, ErrSelfInteraction); err != nil {
		return nil, Interaction{}, err
	}
	location, err := validate.NonBlank(l.Location, "location")
	if err != nil {
		return nil, Interaction{}, err
	}
	topics, err := validate.Topics(l.Topics, "topics")
	if err != nil {
		return nil, Interaction{}, err
	}

	return logInteraction(n, personID, Interaction{
		Medium:        InPerson,
		MyLocation:    location,
		TheirLocation: location,
		Topics:        topics,
		Note:          validate.TrimOptional(l.Note),
		Date:          l.Date,
	})
}

// LogRemote records a remote contact. Passing InPerson as the medium fails
// with ErrUseInPerson.
func LogRemote(n *Network, personID PersonID, l RemoteLog) (*Network, Interaction, error) {
	if l.Medium == InPerson {
		return nil, Interaction{}, ErrUseInPerson
	}
	if !l.Medium.Valid() {
		return nil, Interaction{}, fmt.Errorf("%w: %d", ErrUnknownMedium, int(l.Medium))
	}
	if _, err := n.otherPerson(personID, ErrSelfInteraction); err != nil {
		return nil, Interaction{}, err
	}
	location, err := validate.NonBlank(l.MyLocation, "myLocation")
	if err != nil {
		return nil, Interaction{}, err
	}
	topics, err := validate.Topics(l.Topics, "topics")
	if err != nil {
		return nil, Interaction{}, err
	}

	return logInteraction(n, personID, Interaction{
		Medium:        l.Medium,
		MyLocation:    location,
		TheirLocation: validate.TrimOptional(l.TheirLocation),
		Topics:        topics,
		Note:          validate.TrimOptional(l.Note),
		Date:          l.Date,
	})
}

func logInteraction(n *Network, personID PersonID, in Interaction) (*Network, Interaction, error) {
	in.ID = NewID[Interaction]()
	if in.Date.IsZero() {
		in.Date = Today()
	} else {
		in.Date = DateOf(in.Date)
	}

	r := n.relationshipOrNew(personID)
	history := make([]Interaction, 0, len(r.History)+1)
	history = append(history, in)
	r.History = append(history, r.History...)

	return n.withRelationship(r), in, nil
}
