package network

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeStats(t *testing.T) {
	n, bob, cid := reminderFixture(t)
	n, dee := addPerson(t, n, "Dee")
	n, eve := addPerson(t, n, "Eve")

	var err error
	n, _, err = LogRemote(n, bob.ID, RemoteLog{Medium: PhoneCall, MyLocation: "Home", Topics: []string{"news"}, Date: daysAgo(12)})
	require.NoError(t, err)
	n, _, err = LogInPerson(n, dee.ID, InPersonLog{Location: "Cafe", Topics: []string{"x"}, Date: daysAgo(45)})
	require.NoError(t, err)
	n, err = ArchivePerson(n, eve.ID)
	require.NoError(t, err)
	n, farm, err := CreateCircle(n, "Farm", "", []PersonID{bob.ID, cid.ID})
	require.NoError(t, err)
	n, _, err = CreateCircle(n, "Work", "", nil)
	require.NoError(t, err)
	n, err = ArchiveCircle(n, farm.ID)
	require.NoError(t, err)
	n, _, err = CreateContactType(n, "Discord")
	require.NoError(t, err)

	s := ComputeStats(n, asOf)
	assert.Equal(t, 5, s.TotalPeople)
	assert.Equal(t, 3, s.ActivePeople)
	assert.Equal(t, 1, s.ArchivedPeople)
	assert.Equal(t, 3, s.TotalRelationships)
	assert.Equal(t, 3, s.TotalInteractions)
	assert.Equal(t, 2, s.TotalCircles)
	assert.Equal(t, 1, s.ActiveCircles)
	assert.Equal(t, 1, s.ArchivedCircles)
	assert.Equal(t, 2, s.RemindersOverdue)
	assert.Equal(t, 1, s.CustomContactTypes)
	assert.Equal(t, 1, s.NeverContacted)
	assert.Equal(t, 1, s.NoReminderSet)
	require.NotNil(t, s.LongestGap)
	assert.Equal(t, "Dee", s.LongestGap.Name)
	assert.Equal(t, 45, s.LongestGap.Days)
}

func TestComputeStatsEmptyNetwork(t *testing.T) {
	n := newTestNetwork(t)

	s := ComputeStats(n, asOf)
	assert.Equal(t, Stats{TotalPeople: 1}, s)
}
