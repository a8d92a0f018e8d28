package migrate

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/unowned-ai/kith/pkg/network"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func personNamed(t *testing.T, n *network.Network, name string) network.Person {
	t.Helper()
	p, err := network.ResolvePerson(n, name, network.ScopeAll)
	require.NoError(t, err)
	return p
}

func TestImportFile(t *testing.T) {
	n, stats, err := ImportFile("testdata/legacy.json", zaptest.NewLogger(t))
	require.NoError(t, err)

	assert.Equal(t, 3, stats.People)
	assert.Equal(t, 2, stats.Relationships)
	assert.Equal(t, 2, stats.Interactions)
	assert.Equal(t, 2, stats.Circles)
	assert.Equal(t, 3, stats.Labels)
	assert.Equal(t, 1, stats.CustomContactTypes)
	assert.Len(t, stats.Skipped, 2)

	t.Run("owner", func(t *testing.T) {
		self := network.Self(n)
		assert.Equal(t, "Ada", n.Owner.Name)
		assert.Equal(t, "Ada", self.Name)
		require.Len(t, self.Contacts, 1)
		assert.Equal(t, "ada@example.com", self.Contacts[0].Value)
		assert.Equal(t, "personal", self.Contacts[0].Label)
		assert.Equal(t, []string{network.MeLabel}, labelNames(network.LabelsFor(n, n.SelfID)))
	})

	t.Run("people", func(t *testing.T) {
		bob := personNamed(t, n, "Bob")
		assert.Equal(t, "Bobby", bob.Nickname)
		assert.Equal(t, "climbing gym", bob.HowWeMet)
		assert.Equal(t, date(1990, time.April, 1), bob.Birthday)
		require.Len(t, bob.Contacts, 3)
		assert.Equal(t, network.KindPhone, bob.Contacts[0].Kind)
		assert.Equal(t, "1 Main St, Springfield, IL 62701, USA", bob.Contacts[1].Display())
		assert.Equal(t, "Discord", network.ContactTypeName(n, bob.Contacts[2]))
		assert.Equal(t, "bob#1234", bob.Contacts[2].Value)

		cid := personNamed(t, n, "Cid")
		assert.True(t, cid.Archived)
		assert.Equal(t, "Denver", cid.Location)
		assert.Equal(t, []string{"Cid"}, personNames(network.ArchivedPeople(n)))
	})

	t.Run("relationships", func(t *testing.T) {
		bob := personNamed(t, n, "Bob")
		rel, ok := network.GetRelationship(n, bob.ID)
		require.True(t, ok)
		assert.Equal(t, 7, rel.ReminderDays)
		assert.Equal(t, []string{"friend", "climbing"}, labelNames(network.LabelsFor(n, bob.ID)))

		require.Len(t, rel.History, 2)
		assert.Equal(t, date(2024, time.June, 10), rel.History[0].Date)
		assert.Equal(t, network.PhoneCall, rel.History[0].Medium)
		assert.Equal(t, "Boston", rel.History[0].TheirLocation)
		assert.Equal(t, network.InPerson, rel.History[1].Medium)
		assert.Equal(t, []string{"books", "coffee"}, rel.History[1].Topics)
		assert.Equal(t, "good chat", rel.History[1].Note)

		cid := personNamed(t, n, "Cid")
		rel, ok = network.GetRelationship(n, cid.ID)
		require.True(t, ok)
		assert.False(t, rel.HasReminder())
	})

	t.Run("labels", func(t *testing.T) {
		assert.Len(t, n.Labels, len(network.DefaultLabels)+1)
		assert.Equal(t, []string{"climbing"}, labelNames(network.ArchivedLabels(n)))
	})

	t.Run("circles", func(t *testing.T) {
		climbers, err := network.ResolveCircle(n, "Climbers", network.ScopeActive)
		require.NoError(t, err)
		assert.Equal(t, "Tuesday nights", climbers.Description)
		assert.Equal(t, []string{"Bob", "Cid"}, personNames(network.CircleMembers(n, climbers.ID)))

		old, err := network.ResolveCircle(n, "Old team", network.ScopeArchived)
		require.NoError(t, err)
		assert.Len(t, old.MemberIDs, 1)
	})
}

func TestImportArrays(t *testing.T) {
	const doc = `{
		"ownerId": "00000000-0000-0000-0000-0000000000aa",
		"selfId": "s",
		"people": [
			{"id": "s", "name": "Ada", "isSelf": true},
			{"id": "b", "name": "Bob"}
		],
		"relationships": [
			{"personId": "b", "labels": null, "reminderDays": 0, "interactionHistory": [
				{"id": "i", "date": "2024-01-02", "medium": "Text", "myLocation": "home", "topics": ["hi"]}
			]}
		]
	}`
	n, stats, err := Import(strings.NewReader(doc), nil)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.People)
	assert.Equal(t, 1, stats.Interactions)
	assert.Empty(t, stats.Skipped)

	bob := personNamed(t, n, "Bob")
	rel, ok := network.GetRelationship(n, bob.ID)
	require.True(t, ok)
	assert.False(t, rel.HasReminder())
	require.Len(t, rel.History, 1)
	assert.Equal(t, network.Text, rel.History[0].Medium)
}

func TestImportErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{"missing owner", `{"selfId": "s", "people": {}}`, ErrMissingOwner},
		{"missing self", `{"ownerId": "o", "selfId": "s", "people": {"b": {"id": "b", "name": "Bob"}}}`, ErrMissingSelf},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Import(strings.NewReader(tt.doc), nil)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	_, _, err := Import(strings.NewReader(`{"ownerId": 1}`), nil)
	assert.Error(t, err)

	_, _, err = ImportFile("testdata/missing.json", nil)
	assert.Error(t, err)
}

func TestImportSkipsBadRecords(t *testing.T) {
	const doc = `{
		"ownerId": "o",
		"selfId": "s",
		"people": [
			{"id": "s", "name": "Ada", "isSelf": true, "birthday": "April"},
			{"id": "b", "name": "Bob", "birthday": "03/04/1990"},
			{"id": "x", "name": "   "},
			{"id": "c", "name": "Cid"}
		],
		"relationships": [
			{"personId": "x", "interactionHistory": [
				{"id": "i1", "date": "2024-01-02", "medium": "InPerson", "myLocation": "home"}
			]},
			{"personId": "c", "interactionHistory": [
				{"id": "i2", "date": "2024-01-03", "medium": "Telepathy", "myLocation": "park", "topics": ["hi"]}
			]}
		],
		"circles": [
			{"id": "k", "name": "Friends", "memberIds": ["b", "x", "c"]}
		]
	}`
	n, stats, err := Import(strings.NewReader(doc), zaptest.NewLogger(t))
	require.NoError(t, err)

	assert.Equal(t, 3, stats.People)
	assert.Equal(t, 1, stats.Relationships)
	assert.Equal(t, 1, stats.Interactions)
	assert.Equal(t, 1, stats.Circles)
	// Two birthdays, the blank person and the relationship pointing at it.
	assert.Len(t, stats.Skipped, 4)

	assert.True(t, network.Self(n).Birthday.IsZero())
	bob := personNamed(t, n, "Bob")
	assert.True(t, bob.Birthday.IsZero())
	cid := personNamed(t, n, "Cid")
	assert.Len(t, n.People, 3)

	rel, ok := network.GetRelationship(n, cid.ID)
	require.True(t, ok)
	require.Len(t, rel.History, 1)
	assert.Equal(t, network.InPerson, rel.History[0].Medium)
	assert.Equal(t, "park", rel.History[0].MyLocation)

	friends, err := network.ResolveCircle(n, "Friends", network.ScopeActive)
	require.NoError(t, err)
	assert.Equal(t, []string{"Bob", "Cid"}, personNames(network.CircleMembers(n, friends.ID)))
}

func labelNames(labels []network.RelationshipLabel) []string {
	out := make([]string, len(labels))
	for i, l := range labels {
		out[i] = l.Name
	}
	return out
}

func personNames(people []network.Person) []string {
	out := make([]string, len(people))
	for i, p := range people {
		out[i] = p.Name
	}
	return out
}
