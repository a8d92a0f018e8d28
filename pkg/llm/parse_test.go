package llm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unowned-ai/kith/pkg/store"
)

func TestParseResponse(t *testing.T) {
	p, err := ParseResponse(`{
		"personNames": ["Bob", "", "Cid"],
		"medium": "PhoneCall",
		"location": "Charlton, MA",
		"theirLocation": "Boston",
		"topics": ["hiking", 3, "work"],
		"note": null,
		"date": "2024-06-14"
	}`)
	require.NoError(t, err)
	assert.Equal(t, Parsed{
		PersonNames:   []string{"Bob", "Cid"},
		Medium:        "PhoneCall",
		Location:      "Charlton, MA",
		TheirLocation: "Boston",
		Topics:        []string{"hiking", "work"},
		Date:          "2024-06-14",
	}, p)
}

func TestParseResponseDefaults(t *testing.T) {
	p, err := ParseResponse("```json\n{\"personName\": \"Bob\", \"topics\": [\"coffee\"]}\n```")
	require.NoError(t, err)
	assert.Equal(t, []string{"Bob"}, p.PersonNames)
	assert.Equal(t, "InPerson", p.Medium)
	assert.Empty(t, p.Location)
	assert.Empty(t, p.Date)
}

func TestParseResponseRejects(t *testing.T) {
	_, err := ParseResponse(`{"personNames": [], "topics": ["x"]}`)
	assert.ErrorIs(t, err, ErrNoPeople)

	_, err = ParseResponse(`{"personNames": ["Bob"], "topics": null}`)
	assert.ErrorIs(t, err, ErrNoTopics)

	_, err = ParseResponse(`not json`)
	assert.Error(t, err)
}

func TestParsedJSONRoundTrip(t *testing.T) {
	p := Parsed{PersonNames: []string{"Bob"}, Medium: "Text", Location: "home", Topics: []string{"plans"}}
	back, err := ParseResponse(p.JSON())
	require.NoError(t, err)
	assert.Equal(t, p, back)
}

func TestSystemPrompt(t *testing.T) {
	today := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)

	plain := SystemPrompt(today, []string{"Bob", "Cid"}, nil)
	assert.Contains(t, plain, "Today's date is 2024-06-15.")
	assert.Contains(t, plain, "Known contacts: [Bob, Cid]")
	assert.NotContains(t, plain, "Past corrections")

	withFixes := SystemPrompt(today, nil, []store.Correction{
		{OriginalText: "gas hang with bob", AIOutput: `{"topics":["cooking"]}`, UserOutput: `{"topics":["hanging out"]}`},
	})
	assert.Contains(t, withFixes, "Example 1:\nInput: gas hang with bob\n")
	assert.Contains(t, withFixes, `User corrected to: {"topics":["hanging out"]}`)
}
