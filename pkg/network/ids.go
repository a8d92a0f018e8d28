package network

import (
	"bytes"
	"fmt"

	"github.com/google/uuid"
)

// ID identifies an entity of kind T. IDs of different kinds share a
// representation but are distinct types, so a PersonID cannot be compared
// with or passed as a CircleID.
type ID[T any] struct {
	value uuid.UUID
}

type (
	UserID         = ID[User]
	PersonID       = ID[Person]
	ContactEntryID = ID[ContactEntry]
	ContactTypeID  = ID[CustomContactType]
	LabelID        = ID[RelationshipLabel]
	InteractionID  = ID[Interaction]
	CircleID       = ID[Circle]
)

// NewID returns a fresh random identifier.
func NewID[T any]() ID[T] {
	return ID[T]{value: uuid.New()}
}

// IDFromUUID wraps an existing UUID.
func IDFromUUID[T any](u uuid.UUID) ID[T] {
	return ID[T]{value: u}
}

// ParseID parses the canonical string form of an identifier.
func ParseID[T any](s string) (ID[T], error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return ID[T]{}, fmt.Errorf("invalid id %q: %w", s, err)
	}
	return ID[T]{value: u}, nil
}

func (id ID[T]) UUID() uuid.UUID {
	return id.value
}

func (id ID[T]) String() string {
	return id.value.String()
}

func (id ID[T]) IsZero() bool {
	return id.value == uuid.Nil
}

// Compare orders identifiers of the same kind by their bytes.
func (id ID[T]) Compare(other ID[T]) int {
	return bytes.Compare(id.value[:], other.value[:])
}

func (id ID[T]) MarshalText() ([]byte, error) {
	return id.value.MarshalText()
}

func (id *ID[T]) UnmarshalText(b []byte) error {
	return id.value.UnmarshalText(b)
}
