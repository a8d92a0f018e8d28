package network

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIDIsUnique(t *testing.T) {
	seen := make(map[PersonID]struct{})
	for range 1000 {
		id := NewID[Person]()
		require.False(t, id.IsZero())
		_, dup := seen[id]
		require.False(t, dup)
		seen[id] = struct{}{}
	}
}

func TestParseID(t *testing.T) {
	id := NewID[Circle]()

	parsed, err := ParseID[Circle](id.String())
	require.NoError(t, err)
	assert.Equal(t, id, parsed)
	assert.Equal(t, 0, id.Compare(parsed))

	_, err = ParseID[Circle]("not-an-id")
	assert.Error(t, err)
}

func TestIDJSON(t *testing.T) {
	type wrapper struct {
		ID    LabelID            `json:"id"`
		ByKey map[LabelID]string `json:"by_key"`
	}
	id := NewID[RelationshipLabel]()
	in := wrapper{ID: id, ByKey: map[LabelID]string{id: "friend"}}

	b, err := json.Marshal(in)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"id":"`+id.String()+`"`)

	var out wrapper
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, in, out)
}

func TestMediumText(t *testing.T) {
	for _, m := range Media {
		b, err := m.MarshalText()
		require.NoError(t, err)
		var back Medium
		require.NoError(t, back.UnmarshalText(b))
		assert.Equal(t, m, back)
	}

	m, err := ParseMedium("phone call")
	require.NoError(t, err)
	assert.Equal(t, PhoneCall, m)

	m, err = ParseMedium("in-person")
	require.NoError(t, err)
	assert.Equal(t, InPerson, m)

	_, err = ParseMedium("carrier pigeon")
	assert.Error(t, err)

	_, err = Medium(0).MarshalText()
	assert.Error(t, err)
}
