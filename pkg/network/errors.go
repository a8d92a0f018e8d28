package network

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrAlreadyExists     = errors.New("already exists")
	ErrCannotArchiveSelf = errors.New("cannot archive self")
	ErrSelfRelationship  = errors.New("cannot create a relationship with self")
	ErrSelfInteraction   = errors.New("cannot log an interaction with self")
	ErrUseInPerson       = errors.New("use the in-person path for in-person interactions")
	ErrUnknownMedium     = errors.New("unknown medium")
)

// NotFoundError reports a missing entity. It matches ErrNotFound.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

func notFound(entity string, id fmt.Stringer) error {
	return &NotFoundError{Entity: entity, ID: id.String()}
}

// IsMissingRelationship reports whether err came from changing a
// relationship that was never created. SetRelationship is the create path.
func IsMissingRelationship(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf) && nf.Entity == "relationship"
}

// AlreadyExistsError reports a name collision. It matches ErrAlreadyExists.
type AlreadyExistsError struct {
	Entity string
	Name   string
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("%s %q already exists", e.Entity, e.Name)
}

func (e *AlreadyExistsError) Is(target error) bool {
	return target == ErrAlreadyExists
}

// AmbiguousError is returned by the Resolve queries when a search matched
// several entities and no exact name match settled it.
type AmbiguousError struct {
	Entity     string
	Query      string
	Candidates []string
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("%q matches %d %ss: %s", e.Query, len(e.Candidates), e.Entity, strings.Join(e.Candidates, ", "))
}
