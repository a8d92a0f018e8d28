package network

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unowned-ai/kith/pkg/validate"
)

func TestAddPerson(t *testing.T) {
	n := newTestNetwork(t)
	bday := time.Date(1990, time.May, 4, 15, 0, 0, 0, time.UTC)

	next, p, err := AddPerson(n, NewPerson{
		Name:     "  Bob Stone ",
		Nickname: "Bobby",
		HowWeMet: "   ",
		Birthday: bday,
		Location: "Berlin",
	})
	require.NoError(t, err)

	assert.Equal(t, "Bob Stone", p.Name)
	assert.Equal(t, "Bobby", p.Nickname)
	assert.Empty(t, p.HowWeMet)
	assert.Equal(t, DateOf(bday), p.Birthday)
	assert.Equal(t, "Berlin", p.Location)
	assert.False(t, p.IsSelf)
	assert.False(t, p.Archived)
	assert.Equal(t, p, next.People[p.ID])

	_, ok := GetRelationship(next, p.ID)
	assert.False(t, ok, "adding a person must not create a relationship")

	_, _, err = AddPerson(n, NewPerson{Name: ""})
	assert.ErrorIs(t, err, validate.ErrBlank)
}

func TestUpdatePersonTriState(t *testing.T) {
	n := newTestNetwork(t)
	n, p, err := AddPerson(n, NewPerson{Name: "Bob", Nickname: "B", Notes: "likes tea", Location: "Oslo"})
	require.NoError(t, err)

	n, updated, err := UpdatePerson(n, p.ID, PersonUpdate{
		Nickname: ClearField[string](),
		Notes:    SetField("likes coffee"),
		Birthday: SetField(time.Date(1988, time.January, 2, 0, 0, 0, 0, time.UTC)),
	})
	require.NoError(t, err)

	assert.Equal(t, "Bob", updated.Name)
	assert.Empty(t, updated.Nickname)
	assert.Equal(t, "likes coffee", updated.Notes)
	assert.Equal(t, "Oslo", updated.Location)
	assert.Equal(t, 1988, updated.Birthday.Year())
	assert.Equal(t, updated, n.People[p.ID])

	_, _, err = UpdatePerson(n, p.ID, PersonUpdate{Name: SetField("  ")})
	assert.ErrorIs(t, err, validate.ErrBlank)

	_, _, err = UpdatePerson(n, p.ID, PersonUpdate{Name: ClearField[string]()})
	assert.ErrorIs(t, err, validate.ErrBlank)

	_, _, err = UpdatePerson(n, NewID[Person](), PersonUpdate{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateSelfRenamesOwner(t *testing.T) {
	n := newTestNetwork(t)

	next, _, err := UpdatePerson(n, n.SelfID, PersonUpdate{Name: SetField("Ada L.")})
	require.NoError(t, err)
	assert.Equal(t, "Ada L.", next.Owner.Name)
	assert.Equal(t, "Ada", n.Owner.Name)
}

func TestArchiveUnarchiveIsIdentity(t *testing.T) {
	n := newTestNetwork(t)
	n, p, err := AddPerson(n, NewPerson{Name: "Bob", Nickname: "B", Notes: "n"})
	require.NoError(t, err)
	n, _, err = AddPhone(n, p.ID, "555", "home")
	require.NoError(t, err)
	n, _, err = SetRelationship(n, p.ID, []LabelID{labelID(t, n, "friend")}, intPtr(30))
	require.NoError(t, err)
	n, _, err = CreateCircle(n, "Team", "", []PersonID{p.ID})
	require.NoError(t, err)

	before := n.People[p.ID]

	archived, err := ArchivePerson(n, p.ID)
	require.NoError(t, err)
	assert.True(t, archived.People[p.ID].Archived)
	assert.Equal(t, n.Relationships[p.ID], archived.Relationships[p.ID])
	assert.Len(t, CircleMembers(archived, ActiveCircles(archived)[0].ID), 1)

	restored, err := UnarchivePerson(archived, p.ID)
	require.NoError(t, err)
	assert.Equal(t, before, restored.People[p.ID])
	assert.Equal(t, n.Relationships, restored.Relationships)
	assert.Equal(t, n.Circles, restored.Circles)
}

func TestArchiveMissingPerson(t *testing.T) {
	n := newTestNetwork(t)
	_, err := ArchivePerson(n, NewID[Person]())
	assert.ErrorIs(t, err, ErrNotFound)

	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "person", nf.Entity)

	_, err = UnarchivePerson(n, NewID[Person]())
	assert.ErrorIs(t, err, ErrNotFound)
}
