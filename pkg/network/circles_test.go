package network

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unowned-ai/kith/pkg/validate"
)

func names(people []Person) []string {
	var out []string
	for _, p := range people {
		out = append(out, p.Name)
	}
	return out
}

func TestCircleArchiveKeepsMembers(t *testing.T) {
	n := newTestNetwork(t)
	n, bob := addPerson(t, n, "Bob")
	n, cid := addPerson(t, n, "Cid")

	n, farm, err := CreateCircle(n, "Farm", "", []PersonID{bob.ID, cid.ID})
	require.NoError(t, err)

	n, err = ArchiveCircle(n, farm.ID)
	require.NoError(t, err)

	assert.NotContains(t, ActiveCircles(n), n.Circles[farm.ID])
	assert.Contains(t, ArchivedCircles(n), n.Circles[farm.ID])
	assert.Equal(t, []string{"Bob", "Cid"}, names(CircleMembers(n, farm.ID)))
	assert.Empty(t, CirclesFor(n, bob.ID))

	n, err = UnarchiveCircle(n, farm.ID)
	require.NoError(t, err)
	assert.Equal(t, []Circle{n.Circles[farm.ID]}, CirclesFor(n, bob.ID))
}

func TestCircleMembershipFiltersStaleIDs(t *testing.T) {
	n := newTestNetwork(t)
	n, bob := addPerson(t, n, "Bob")
	n, cid := addPerson(t, n, "Cid")
	ghost := NewID[Person]()

	n, c, err := CreateCircle(n, " Climbing ", "  ", []PersonID{ghost, bob.ID, bob.ID})
	require.NoError(t, err)
	assert.Equal(t, "Climbing", c.Name)
	assert.Empty(t, c.Description)
	assert.Equal(t, []PersonID{bob.ID}, c.MemberIDs)

	n, c, err = AddCircleMembers(n, c.ID, []PersonID{cid.ID, ghost, bob.ID})
	require.NoError(t, err)
	assert.Equal(t, []PersonID{bob.ID, cid.ID}, c.MemberIDs)

	n, c, err = RemoveCircleMembers(n, c.ID, []PersonID{bob.ID, ghost})
	require.NoError(t, err)
	assert.Equal(t, []PersonID{cid.ID}, c.MemberIDs)

	n, c, err = SetCircleMembers(n, c.ID, []PersonID{ghost})
	require.NoError(t, err)
	assert.Empty(t, c.MemberIDs)
	assert.Empty(t, CircleMembers(n, c.ID))
}

func TestCircleMembersSkipsUnknownIDs(t *testing.T) {
	n := newTestNetwork(t)
	n, bob := addPerson(t, n, "Bob")
	n, c, err := CreateCircle(n, "Old friends", "", []PersonID{bob.ID})
	require.NoError(t, err)

	c.MemberIDs = append(c.MemberIDs, NewID[Person]())
	n = n.withCircle(c)

	assert.Equal(t, []string{"Bob"}, names(CircleMembers(n, c.ID)))
	assert.Nil(t, CircleMembers(n, NewID[Circle]()))
}

func TestUpdateAndDeleteCircle(t *testing.T) {
	n := newTestNetwork(t)
	n, c, err := CreateCircle(n, "Run club", "Sunday mornings", nil)
	require.NoError(t, err)

	n, c, err = UpdateCircle(n, c.ID, CircleUpdate{Name: SetField("Running club")})
	require.NoError(t, err)
	assert.Equal(t, "Running club", c.Name)
	assert.Equal(t, "Sunday mornings", c.Description)

	n, c, err = UpdateCircle(n, c.ID, CircleUpdate{Description: ClearField[string]()})
	require.NoError(t, err)
	assert.Empty(t, c.Description)

	_, _, err = UpdateCircle(n, c.ID, CircleUpdate{Name: SetField("")})
	assert.ErrorIs(t, err, validate.ErrBlank)

	_, _, err = CreateCircle(n, "", "", nil)
	assert.ErrorIs(t, err, validate.ErrBlank)

	deleted, err := DeleteCircle(n, c.ID)
	require.NoError(t, err)
	assert.Empty(t, deleted.Circles)
	assert.Len(t, n.Circles, 1)

	_, err = DeleteCircle(deleted, c.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = ArchiveCircle(deleted, c.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
