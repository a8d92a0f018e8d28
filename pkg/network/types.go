package network

import (
	"fmt"
	"strings"
	"time"
)

// User owns the network. There is exactly one per network.
type User struct {
	ID    UserID `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// Person is a node in the network. Optional text fields use "" for absent
// and Birthday uses the zero time.
type Person struct {
	ID       PersonID       `json:"id"`
	Name     string         `json:"name"`
	Nickname string         `json:"nickname,omitempty"`
	HowWeMet string         `json:"how_we_met,omitempty"`
	Birthday time.Time      `json:"birthday,omitempty"`
	Notes    string         `json:"notes,omitempty"`
	Location string         `json:"location,omitempty"`
	Contacts []ContactEntry `json:"contacts,omitempty"`
	IsSelf   bool           `json:"is_self"`
	Archived bool           `json:"archived"`
}

// ContactKind discriminates ContactEntry.
type ContactKind int

const (
	KindPhone ContactKind = iota + 1
	KindEmail
	KindAddress
	KindCustom
)

var contactKindNames = map[ContactKind]string{
	KindPhone:   "Phone",
	KindEmail:   "Email",
	KindAddress: "PhysicalAddress",
	KindCustom:  "Custom",
}

func (k ContactKind) String() string {
	if name, ok := contactKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ContactKind(%d)", int(k))
}

// ParseContactKind accepts the names produced by String.
func ParseContactKind(s string) (ContactKind, error) {
	for k, name := range contactKindNames {
		if strings.EqualFold(name, s) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown contact kind %q", s)
}

func (k ContactKind) MarshalText() ([]byte, error) {
	if _, ok := contactKindNames[k]; !ok {
		return nil, fmt.Errorf("unknown contact kind %d", int(k))
	}
	return []byte(k.String()), nil
}

func (k *ContactKind) UnmarshalText(b []byte) error {
	parsed, err := ParseContactKind(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Address is the structured value of a KindAddress entry.
type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`
	Country string `json:"country"`
}

func (a Address) String() string {
	return fmt.Sprintf("%s, %s, %s %s, %s", a.Street, a.City, a.State, a.Zip, a.Country)
}

// ContactEntry is one way to reach a Person. Address is set only for
// KindAddress, CustomType only for KindCustom; Value holds the text for
// every other kind.
type ContactEntry struct {
	ID         ContactEntryID `json:"id"`
	Kind       ContactKind    `json:"kind"`
	CustomType ContactTypeID  `json:"custom_type,omitempty"`
	Value      string         `json:"value,omitempty"`
	Address    *Address       `json:"address,omitempty"`
	Label      string         `json:"label,omitempty"`
}

// Display renders the entry value regardless of kind.
func (c ContactEntry) Display() string {
	switch c.Kind {
	case KindAddress:
		if c.Address == nil {
			return ""
		}
		return c.Address.String()
	case KindPhone, KindEmail, KindCustom:
		return c.Value
	default:
		return c.Value
	}
}

// CustomContactType is a network-defined contact kind such as "Discord".
type CustomContactType struct {
	ID   ID[CustomContactType] `json:"id"`
	Name string                `json:"name"`
}

// RelationshipLabel tags what someone is to the owner.
type RelationshipLabel struct {
	ID       LabelID `json:"id"`
	Name     string  `json:"name"`
	Archived bool    `json:"archived"`
}

// MeLabel is the reserved label carried by the self Person.
const MeLabel = "me"

// DefaultLabels are seeded into every new network.
var DefaultLabels = []string{
	MeLabel,
	"friend",
	"family",
	"coworker",
	"acquaintance",
	"mentor",
	"mentee",
	"neighbor",
	"former coworker",
	"romantic partner",
	"former romantic partner",
}

// Relationship is the owner's connection to one Person. ReminderDays of 0
// means no reminder. History is ordered most recent first.
type Relationship struct {
	PersonID     PersonID      `json:"person_id"`
	LabelIDs     []LabelID     `json:"label_ids,omitempty"`
	ReminderDays int           `json:"reminder_days,omitempty"`
	History      []Interaction `json:"history,omitempty"`
}

func (r Relationship) HasReminder() bool {
	return r.ReminderDays > 0
}

// Medium is how an interaction took place.
type Medium int

const (
	InPerson Medium = iota + 1
	Text
	PhoneCall
	VideoCall
	SocialMedia
)

// Media lists every medium in display order.
var Media = []Medium{InPerson, Text, PhoneCall, VideoCall, SocialMedia}

func (m Medium) String() string {
	switch m {
	case InPerson:
		return "InPerson"
	case Text:
		return "Text"
	case PhoneCall:
		return "PhoneCall"
	case VideoCall:
		return "VideoCall"
	case SocialMedia:
		return "SocialMedia"
	}
	return fmt.Sprintf("Medium(%d)", int(m))
}

// DisplayName is the human-readable form, e.g. "Phone Call".
func (m Medium) DisplayName() string {
	switch m {
	case InPerson:
		return "In Person"
	case Text:
		return "Text"
	case PhoneCall:
		return "Phone Call"
	case VideoCall:
		return "Video Call"
	case SocialMedia:
		return "Social Media"
	}
	return m.String()
}

func (m Medium) Valid() bool {
	return m >= InPerson && m <= SocialMedia
}

// ParseMedium accepts the String form, the display name, or a loose
// spelling such as "in-person" or "phone_call".
func ParseMedium(s string) (Medium, error) {
	norm := strings.NewReplacer(" ", "", "-", "", "_", "").Replace(strings.ToLower(strings.TrimSpace(s)))
	for _, m := range Media {
		if strings.ToLower(m.String()) == norm {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown medium %q", s)
}

func (m Medium) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("unknown medium %d", int(m))
	}
	return []byte(m.String()), nil
}

func (m *Medium) UnmarshalText(b []byte) error {
	parsed, err := ParseMedium(string(b))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Interaction is one recorded contact event. It is never modified after
// creation.
type Interaction struct {
	ID            InteractionID `json:"id"`
	Date          time.Time     `json:"date"`
	Medium        Medium        `json:"medium"`
	MyLocation    string        `json:"my_location"`
	TheirLocation string        `json:"their_location,omitempty"`
	Topics        []string      `json:"topics"`
	Note          string        `json:"note,omitempty"`
}

// Circle is a named grouping of people, independent of labels.
type Circle struct {
	ID          CircleID   `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	MemberIDs   []PersonID `json:"member_ids,omitempty"`
	Archived    bool       `json:"archived"`
}

// Network is the whole snapshot. Operations never modify a Network; they
// return a new one.
type Network struct {
	Owner         User                                `json:"owner"`
	SelfID        PersonID                            `json:"self_id"`
	People        map[PersonID]Person                 `json:"people"`
	Relationships map[PersonID]Relationship           `json:"relationships"`
	Circles       map[CircleID]Circle                 `json:"circles"`
	Labels        map[LabelID]RelationshipLabel       `json:"labels"`
	ContactTypes  map[ContactTypeID]CustomContactType `json:"contact_types"`
}
