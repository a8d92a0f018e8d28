package main

import (
	"bufio"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unowned-ai/kith/pkg/llm"
	"github.com/unowned-ai/kith/pkg/network"
)

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, splitList(" a, b,,c ,"))
	assert.Nil(t, splitList(""))
}

func TestParseDate(t *testing.T) {
	d, err := parseDate("2024-06-15")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), d)

	d, err = parseDate("")
	require.NoError(t, err)
	assert.True(t, d.IsZero())

	_, err = parseDate("15/06/2024")
	assert.ErrorContains(t, err, "expected YYYY-MM-DD")
}

func TestUpdateFields(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.Flags().String("nickname", "", "")
	cmd.Flags().String("notes", "", "")
	cmd.Flags().String("location", "", "")
	cmd.Flags().String("birthday", "", "")
	require.NoError(t, cmd.Flags().Parse([]string{"--nickname", "Bobby", "--notes", "", "--birthday", "1990-04-01"}))

	nick := stringField(cmd, "nickname")
	assert.Equal(t, network.Set, nick.Op)
	assert.Equal(t, "Bobby", nick.Value)
	assert.Equal(t, network.Clear, stringField(cmd, "notes").Op)
	assert.Equal(t, network.Keep, stringField(cmd, "location").Op)

	birthday, err := dateField(cmd, "birthday")
	require.NoError(t, err)
	assert.Equal(t, network.Set, birthday.Op)
	assert.Equal(t, 1990, birthday.Value.Year())
}

func TestRelationshipError(t *testing.T) {
	n, err := network.NewNetwork("Ada", "")
	require.NoError(t, err)
	n, bob, err := network.AddPerson(n, network.NewPerson{Name: "Bob Stone"})
	require.NoError(t, err)

	days := 7
	_, _, err = network.SetReminder(n, bob.ID, &days)
	require.Error(t, err)

	wrapped := relationshipError("set reminder", "Bob Stone", err)
	assert.ErrorIs(t, wrapped, network.ErrNotFound)
	assert.Contains(t, wrapped.Error(), `kith relationship set "Bob Stone"`)

	other := relationshipError("set reminder", "Bob Stone", network.ErrSelfRelationship)
	assert.Equal(t, "failed to set reminder: "+network.ErrSelfRelationship.Error(), other.Error())
}

func TestSinceText(t *testing.T) {
	assert.Equal(t, "today", sinceText(0))
	assert.Equal(t, "yesterday", sinceText(1))
	assert.Equal(t, "3 days ago", sinceText(3))
	assert.Equal(t, "2 week(s) ago", sinceText(14))
}

func TestReview(t *testing.T) {
	parsed := llm.Parsed{PersonNames: []string{"Bob"}, Medium: "InPerson", Location: "Berlin", Topics: []string{"climbing"}}

	t.Run("accept", func(t *testing.T) {
		got, err := review(bufio.NewReader(strings.NewReader("a\n")), parsed)
		require.NoError(t, err)
		assert.Equal(t, parsed, got)
	})

	t.Run("edit", func(t *testing.T) {
		input := "e\n{\"personNames\":[\"Bob\"],\"medium\":\"PhoneCall\",\"location\":\"Berlin\",\"topics\":[\"climbing\"]}\n"
		got, err := review(bufio.NewReader(strings.NewReader(input)), parsed)
		require.NoError(t, err)
		assert.Equal(t, "PhoneCall", got.Medium)
		assert.NotEqual(t, parsed.JSON(), got.JSON())
	})

	t.Run("bad edit then accept", func(t *testing.T) {
		got, err := review(bufio.NewReader(strings.NewReader("e\nnot json\na\n")), parsed)
		require.NoError(t, err)
		assert.Equal(t, parsed, got)
	})

	t.Run("cancel", func(t *testing.T) {
		_, err := review(bufio.NewReader(strings.NewReader("c\n")), parsed)
		assert.EqualError(t, err, "cancelled")
	})
}
