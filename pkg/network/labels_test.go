package network

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateLabel(t *testing.T) {
	n := newTestNetwork(t)

	n, climbing, err := CreateLabel(n, "climbing partner")
	require.NoError(t, err)
	assert.False(t, climbing.Archived)

	_, _, err = CreateLabel(n, "Friend")
	assert.ErrorIs(t, err, ErrAlreadyExists)

	var ae *AlreadyExistsError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, "label", ae.Entity)
	assert.Equal(t, "Friend", ae.Name)

	_, _, err = CreateLabel(n, "CLIMBING PARTNER")
	assert.ErrorIs(t, err, ErrAlreadyExists)
}

func TestUpdateLabel(t *testing.T) {
	n := newTestNetwork(t)
	friend := labelID(t, n, "friend")

	n, l, err := UpdateLabel(n, friend, "Friend")
	require.NoError(t, err)
	assert.Equal(t, "Friend", l.Name)

	_, _, err = UpdateLabel(n, friend, "family")
	assert.ErrorIs(t, err, ErrAlreadyExists)

	_, _, err = UpdateLabel(n, NewID[RelationshipLabel](), "x")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestArchiveLabel(t *testing.T) {
	n := newTestNetwork(t)
	n, bob := addPerson(t, n, "Bob")
	mentor := labelID(t, n, "mentor")
	n, _, err := SetLabels(n, bob.ID, []LabelID{mentor})
	require.NoError(t, err)

	n, err = ArchiveLabel(n, mentor)
	require.NoError(t, err)

	assert.Len(t, ActiveLabels(n), len(DefaultLabels)-1)
	require.Len(t, ArchivedLabels(n), 1)
	assert.Equal(t, "mentor", ArchivedLabels(n)[0].Name)
	assert.Equal(t, []RelationshipLabel{n.Labels[mentor]}, LabelsFor(n, bob.ID))

	n, err = UnarchiveLabel(n, mentor)
	require.NoError(t, err)
	assert.Empty(t, ArchivedLabels(n))

	_, err = ArchiveLabel(n, NewID[RelationshipLabel]())
	assert.ErrorIs(t, err, ErrNotFound)
}
