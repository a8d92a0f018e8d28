package network

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unowned-ai/kith/pkg/validate"
)

func TestLogInPersonSetsTheirLocation(t *testing.T) {
	n := newTestNetwork(t)
	n, bob := addPerson(t, n, "Bob")

	locations := []string{"Cafe", "  The Park  ", "Office"}
	for _, loc := range locations {
		next, in, err := LogInPerson(n, bob.ID, InPersonLog{Location: loc, Topics: []string{"x"}, Date: daysAgo(1)})
		require.NoError(t, err)
		assert.Equal(t, InPerson, in.Medium)
		assert.Equal(t, in.MyLocation, in.TheirLocation)
		assert.Equal(t, next.Relationships[bob.ID].History[0], in)
	}
}

func TestLogInPersonNormalizesTopics(t *testing.T) {
	n := newTestNetwork(t)
	n, bob := addPerson(t, n, "Bob")

	_, in, err := LogInPerson(n, bob.ID, InPersonLog{
		Location: "Cafe",
		Topics:   []string{" coffee ", "work", "coffee", ""},
		Note:     "  ",
		Date:     daysAgo(3),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"coffee", "work"}, in.Topics)
	assert.Empty(t, in.Note)
	assert.Equal(t, daysAgo(3), in.Date)
}

func TestLogInteractionValidation(t *testing.T) {
	n := newTestNetwork(t)
	n, bob := addPerson(t, n, "Bob")

	_, _, err := LogInPerson(n, bob.ID, InPersonLog{Location: " ", Topics: []string{"x"}})
	assert.ErrorIs(t, err, validate.ErrBlank)

	_, _, err = LogInPerson(n, bob.ID, InPersonLog{Location: "Cafe"})
	assert.ErrorIs(t, err, validate.ErrEmpty)

	_, _, err = LogInPerson(n, n.SelfID, InPersonLog{Location: "Cafe", Topics: []string{"x"}})
	assert.ErrorIs(t, err, ErrSelfInteraction)

	_, _, err = LogRemote(n, n.SelfID, RemoteLog{Medium: Text, MyLocation: "Home", Topics: []string{"x"}})
	assert.ErrorIs(t, err, ErrSelfInteraction)

	_, _, err = LogInPerson(n, NewID[Person](), InPersonLog{Location: "Cafe", Topics: []string{"x"}})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLogRemoteRejectsInPerson(t *testing.T) {
	n := newTestNetwork(t)
	n, bob := addPerson(t, n, "Bob")

	next, _, err := LogRemote(n, bob.ID, RemoteLog{Medium: InPerson, MyLocation: "Home", Topics: []string{"x"}})
	assert.ErrorIs(t, err, ErrUseInPerson)
	assert.Nil(t, next)

	_, _, err = LogRemote(n, bob.ID, RemoteLog{Medium: Medium(42), MyLocation: "Home", Topics: []string{"x"}})
	assert.ErrorIs(t, err, ErrUnknownMedium)
}

func TestLogRemote(t *testing.T) {
	n := newTestNetwork(t)
	n, bob := addPerson(t, n, "Bob")

	n, first, err := LogRemote(n, bob.ID, RemoteLog{Medium: VideoCall, MyLocation: "Home", Topics: []string{"books"}, Date: daysAgo(9)})
	require.NoError(t, err)
	assert.Empty(t, first.TheirLocation)

	n, second, err := LogRemote(n, bob.ID, RemoteLog{Medium: PhoneCall, MyLocation: "Home", TheirLocation: "Lisbon", Topics: []string{"travel"}, Date: daysAgo(2)})
	require.NoError(t, err)
	assert.Equal(t, "Lisbon", second.TheirLocation)

	history := InteractionsWith(n, bob.ID)
	require.Len(t, history, 2)
	assert.Equal(t, second.ID, history[0].ID)
	assert.Equal(t, first.ID, history[1].ID)

	rel := n.Relationships[bob.ID]
	assert.Empty(t, rel.LabelIDs)
	assert.False(t, rel.HasReminder())
}

func TestLastInteractionUsesLatestDate(t *testing.T) {
	n := newTestNetwork(t)
	n, bob := addPerson(t, n, "Bob")

	n, recent, err := LogInPerson(n, bob.ID, InPersonLog{Location: "Cafe", Topics: []string{"x"}, Date: daysAgo(2)})
	require.NoError(t, err)
	n, _, err = LogInPerson(n, bob.ID, InPersonLog{Location: "Cafe", Topics: []string{"backfill"}, Date: daysAgo(40)})
	require.NoError(t, err)

	last, ok := LastInteraction(n, bob.ID)
	require.True(t, ok)
	assert.Equal(t, recent.ID, last.ID)

	days, ok := DaysSinceInteraction(n, bob.ID, asOf)
	require.True(t, ok)
	assert.Equal(t, 2, days)

	_, ok = LastInteraction(n, n.SelfID)
	assert.False(t, ok)
}

func TestInteractionsInRange(t *testing.T) {
	n := newTestNetwork(t)
	n, bob := addPerson(t, n, "Bob")
	n, cid := addPerson(t, n, "Cid")

	log := func(p Person, d int) {
		var err error
		n, _, err = LogInPerson(n, p.ID, InPersonLog{Location: "Cafe", Topics: []string{"x"}, Date: daysAgo(d)})
		require.NoError(t, err)
	}
	log(bob, 1)
	log(cid, 5)
	log(bob, 20)
	log(cid, 3)

	got := InteractionsInRange(n, daysAgo(10), daysAgo(1))
	require.Len(t, got, 3)
	assert.Equal(t, "Bob", got[0].Person.Name)
	assert.Equal(t, daysAgo(1), got[0].Interaction.Date)
	assert.Equal(t, daysAgo(3), got[1].Interaction.Date)
	assert.Equal(t, daysAgo(5), got[2].Interaction.Date)
}

func TestNotContactedIn(t *testing.T) {
	n := newTestNetwork(t)
	n, bob := addPerson(t, n, "Bob")
	n, cid := addPerson(t, n, "Cid")
	n, dee := addPerson(t, n, "Dee")
	n, eve := addPerson(t, n, "Eve")

	var err error
	n, _, err = LogInPerson(n, bob.ID, InPersonLog{Location: "Cafe", Topics: []string{"x"}, Date: daysAgo(40)})
	require.NoError(t, err)
	n, _, err = LogInPerson(n, dee.ID, InPersonLog{Location: "Cafe", Topics: []string{"x"}, Date: daysAgo(5)})
	require.NoError(t, err)
	n, _, err = SetLabels(n, cid.ID, nil)
	require.NoError(t, err)
	n, _, err = LogInPerson(n, eve.ID, InPersonLog{Location: "Cafe", Topics: []string{"x"}, Date: daysAgo(90)})
	require.NoError(t, err)
	n, err = ArchivePerson(n, eve.ID)
	require.NoError(t, err)

	got := NotContactedIn(n, 30, asOf)
	require.Len(t, got, 2)
	assert.Equal(t, "Cid", got[0].Person.Name)
	assert.False(t, got[0].Contacted)
	assert.Equal(t, "Bob", got[1].Person.Name)
	assert.Equal(t, 40, got[1].DaysSince)
}
