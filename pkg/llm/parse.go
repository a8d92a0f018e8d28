package llm

import (
	"cmp"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNoPeople = errors.New("model did not extract any person names")
	ErrNoTopics = errors.New("model did not extract any topics")
)

// Parsed is the interaction the model read out of free text. It is also the
// shape the owner edits before saving, and its JSON form is what gets stored
// as a correction.
type Parsed struct {
	PersonNames   []string `json:"personNames"`
	Medium        string   `json:"medium"`
	Location      string   `json:"location"`
	TheirLocation string   `json:"theirLocation,omitempty"`
	Topics        []string `json:"topics"`
	Note          string   `json:"note,omitempty"`
	Date          string   `json:"date,omitempty"`
}

// reply tolerates the loose JSON small local models produce: nulls, a
// single personName instead of personNames, and non-string array items.
type reply struct {
	PersonNames   json.RawMessage `json:"personNames"`
	PersonName    json.RawMessage `json:"personName"`
	Medium        json.RawMessage `json:"medium"`
	Location      json.RawMessage `json:"location"`
	TheirLocation json.RawMessage `json:"theirLocation"`
	Topics        json.RawMessage `json:"topics"`
	Note          json.RawMessage `json:"note"`
	Date          json.RawMessage `json:"date"`
}

// ParseResponse decodes a model reply. The medium defaults to InPerson.
// A reply without names or without topics is rejected.
func ParseResponse(content string) (Parsed, error) {
	var r reply
	if err := json.Unmarshal([]byte(stripFence(content)), &r); err != nil {
		return Parsed{}, fmt.Errorf("failed to parse model response: %w", err)
	}

	p := Parsed{
		PersonNames:   stringList(r.PersonNames),
		Medium:        cmp.Or(stringValue(r.Medium), "InPerson"),
		Location:      stringValue(r.Location),
		TheirLocation: stringValue(r.TheirLocation),
		Topics:        stringList(r.Topics),
		Note:          stringValue(r.Note),
		Date:          stringValue(r.Date),
	}
	if len(p.PersonNames) == 0 {
		if name := stringValue(r.PersonName); name != "" {
			p.PersonNames = []string{name}
		}
	}

	if len(p.PersonNames) == 0 {
		return Parsed{}, ErrNoPeople
	}
	if len(p.Topics) == 0 {
		return Parsed{}, ErrNoTopics
	}
	return p, nil
}

// JSON renders p compactly, the form kept in the corrections table.
func (p Parsed) JSON() string {
	b, err := json.Marshal(p)
	if err != nil {
		return "{}"
	}
	return string(b)
}

func stringValue(raw json.RawMessage) string {
	var s string
	if len(raw) == 0 || json.Unmarshal(raw, &s) != nil {
		return ""
	}
	return strings.TrimSpace(s)
}

func stringList(raw json.RawMessage) []string {
	var items []json.RawMessage
	if len(raw) == 0 || json.Unmarshal(raw, &items) != nil {
		return nil
	}
	var out []string
	for _, item := range items {
		if s := stringValue(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// stripFence removes a ```json fence some models wrap their answer in.
func stripFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
