package migrate

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
)

// legacyNetwork is the JSON snapshot written by the previous app. Keyed
// collections were serialized as objects; sets as either arrays or objects
// whose keys are the members.
type legacyNetwork struct {
	OwnerID            string                         `json:"ownerId"`
	SelfID             string                         `json:"selfId"`
	People             collection[legacyPerson]       `json:"people"`
	RelationshipLabels collection[legacyLabel]        `json:"relationshipLabels"`
	CustomContactTypes collection[legacyContactType]  `json:"customContactTypes"`
	Relationships      collection[legacyRelationship] `json:"relationships"`
	Circles            collection[legacyCircle]       `json:"circles"`
}

type legacyPerson struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Nickname        string          `json:"nickname"`
	HowWeMet        string          `json:"howWeMet"`
	Birthday        string          `json:"birthday"`
	Notes           string          `json:"notes"`
	Location        string          `json:"location"`
	DefaultLocation string          `json:"defaultLocation"`
	IsSelf          bool            `json:"isSelf"`
	Archived        bool            `json:"archived"`
	ContactInfo     []legacyContact `json:"contactInfo"`
}

type legacyContact struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	ContactType struct {
		Type   string `json:"type"`
		TypeID string `json:"typeId"`
	} `json:"contactType"`
	Value struct {
		Type    string `json:"type"`
		Value   string `json:"value"`
		Street  string `json:"street"`
		City    string `json:"city"`
		State   string `json:"state"`
		Zip     string `json:"zip"`
		Country string `json:"country"`
	} `json:"value"`
}

type legacyLabel struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Archived bool   `json:"archived"`
}

type legacyContactType struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type legacyRelationship struct {
	PersonID           string              `json:"personId"`
	Labels             set                 `json:"labels"`
	ReminderDays       *int                `json:"reminderDays"`
	InteractionHistory []legacyInteraction `json:"interactionHistory"`
}

type legacyInteraction struct {
	ID            string `json:"id"`
	Date          string `json:"date"`
	Medium        string `json:"medium"`
	MyLocation    string `json:"myLocation"`
	TheirLocation string `json:"theirLocation"`
	Topics        set    `json:"topics"`
	Note          string `json:"note"`
}

type legacyCircle struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	MemberIDs   set    `json:"memberIds"`
	Archived    bool   `json:"archived"`
}

// collection accepts a JSON array or an object of values. Object entries
// are taken in key order so imports are deterministic.
type collection[T any] []T

func (c *collection[T]) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*c = nil
		return nil
	case len(b) > 0 && b[0] == '[':
		var items []T
		if err := json.Unmarshal(b, &items); err != nil {
			return err
		}
		*c = items
		return nil
	}

	var byKey map[string]T
	if err := json.Unmarshal(b, &byKey); err != nil {
		return fmt.Errorf("expected array or object: %w", err)
	}
	keys := make([]string, 0, len(byKey))
	for k := range byKey {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	items := make([]T, 0, len(keys))
	for _, k := range keys {
		items = append(items, byKey[k])
	}
	*c = items
	return nil
}

// set accepts an array of strings or an object whose keys are the members.
type set []string

func (s *set) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*s = nil
		return nil
	case len(b) > 0 && b[0] == '[':
		var items []string
		if err := json.Unmarshal(b, &items); err != nil {
			return err
		}
		*s = items
		return nil
	}

	var byKey map[string]json.RawMessage
	if err := json.Unmarshal(b, &byKey); err != nil {
		return fmt.Errorf("expected array or object: %w", err)
	}
	keys := make([]string, 0, len(byKey))
	for k := range byKey {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	*s = keys
	return nil
}
