package tui

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/unowned-ai/kith/pkg/db"
	"github.com/unowned-ai/kith/pkg/network"
	"github.com/unowned-ai/kith/pkg/session"
)

func setupSession(t *testing.T) *session.Session {
	t.Helper()
	testDB, err := db.OpenDBConnection(":memory:", true, "NORMAL")
	require.NoError(t, err)
	t.Cleanup(func() { testDB.Close() })
	require.NoError(t, db.UpgradeDB(testDB, ":memory:", db.TargetSchemaVersion, zaptest.NewLogger(t)))

	sess, err := session.Init(context.Background(), testDB, "Ada", "", zaptest.NewLogger(t))
	require.NoError(t, err)
	return sess
}

func addTestPerson(t *testing.T, sess *session.Session, name string) network.Person {
	t.Helper()
	p, err := session.Do(context.Background(), sess, "add person", func(n *network.Network) (*network.Network, network.Person, error) {
		return network.AddPerson(n, network.NewPerson{Name: name})
	})
	require.NoError(t, err)
	return p
}

// loaded returns a model that has processed its initial network.
func loaded(t *testing.T, sess *session.Session) model {
	t.Helper()
	m := initModel(sess, "kith.db", nil)
	m.now = func() time.Time { return time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC) }
	next, _ := m.Update(loadNetwork(sess)())
	return next.(model)
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m model, keys ...string) (model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(key(k))
		m = next.(model)
	}
	return m, cmd
}

func TestBrowsePeopleAndHistory(t *testing.T) {
	sess := setupSession(t)
	bob := addTestPerson(t, sess, "Bob")
	addTestPerson(t, sess, "Cid")
	_, err := session.Do(context.Background(), sess, "log", func(n *network.Network) (*network.Network, network.Interaction, error) {
		return network.LogInPerson(n, bob.ID, network.InPersonLog{
			Location: "Berlin",
			Topics:   []string{"climbing"},
			Date:     time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		})
	})
	require.NoError(t, err)

	m := loaded(t, sess)
	require.Len(t, m.people, 3)
	assert.Equal(t, "Ada", m.people[0].Name)

	m, _ = press(t, m, "j")
	assert.Equal(t, "Bob", m.people[m.personCursor].Name)
	require.Len(t, m.history, 1)

	m, _ = press(t, m, "l")
	assert.Equal(t, focusHistory, m.columnFocus)
	m.width, m.height = 160, 40
	assert.Contains(t, m.View(), "Berlin")

	m, _ = press(t, m, "h", "j")
	assert.Equal(t, "Cid", m.people[m.personCursor].Name)
	assert.Empty(t, m.history)

	// No history to move into.
	m, _ = press(t, m, "l")
	assert.Equal(t, focusPeople, m.columnFocus)

	// Cursor stays on the last person.
	m, _ = press(t, m, "j")
	assert.Equal(t, 2, m.personCursor)
}

func TestCreatePerson(t *testing.T) {
	sess := setupSession(t)
	m := loaded(t, sess)

	m, _ = press(t, m, "n")
	require.True(t, m.creating)

	m, _ = press(t, m, "enter")
	assert.Equal(t, "Name cannot be empty", m.createError)

	m, _ = press(t, m, "D", "a", "n", "enter", "D")
	assert.Equal(t, 1, m.createStep)

	_, cmd := m.Update(key("enter"))
	require.NotNil(t, cmd)
	msg := cmd()
	require.IsType(t, personChangedMsg{}, msg)

	next, _ := m.Update(msg)
	m = next.(model)
	assert.False(t, m.creating)
	p, ok := m.selected()
	require.True(t, ok)
	assert.Equal(t, "Dan", p.Name)
	assert.Equal(t, "D", p.Nickname)
}

func TestCreatePersonFormError(t *testing.T) {
	sess := setupSession(t)
	m := loaded(t, sess)

	m, _ = press(t, m, "n", "B", "o", "b", "enter")
	next, _ := m.Update(formErrorMsg{err: errors.New("name must not be blank")})
	m = next.(model)
	assert.True(t, m.creating)
	assert.Equal(t, "name must not be blank", m.createError)

	m, _ = press(t, m, "esc")
	assert.False(t, m.creating)
	assert.Empty(t, m.createError)
	assert.Empty(t, m.nameInput.Value())
}

func TestArchiveAndRestore(t *testing.T) {
	sess := setupSession(t)
	bob := addTestPerson(t, sess, "Bob")
	m := loaded(t, sess)

	// Self cannot be archived.
	m, _ = press(t, m, "a")
	assert.False(t, m.archiving)

	m, _ = press(t, m, "j", "a")
	require.True(t, m.archiving)
	assert.Equal(t, 1, m.archiveConfirmIdx)

	// "No" leaves everything alone.
	m, _ = press(t, m, "enter")
	assert.False(t, m.archiving)
	assert.Len(t, m.people, 2)

	m, _ = press(t, m, "a", "k")
	_, cmd := m.Update(key("enter"))
	next, _ := m.Update(cmd())
	m = next.(model)
	assert.Len(t, m.people, 1)
	got, _ := network.GetPerson(sess.Network(), bob.ID)
	assert.True(t, got.Archived)

	m, _ = press(t, m, "x")
	require.Len(t, m.people, 1)
	assert.Equal(t, "Bob", m.people[0].Name)

	m, _ = press(t, m, "a", "k")
	_, cmd = m.Update(key("enter"))
	next, _ = m.Update(cmd())
	m = next.(model)
	assert.Empty(t, m.people)
	got, _ = network.GetPerson(sess.Network(), bob.ID)
	assert.False(t, got.Archived)
}

func TestReloadKeepsSelection(t *testing.T) {
	sess := setupSession(t)
	addTestPerson(t, sess, "Cid")
	m := loaded(t, sess)
	m, _ = press(t, m, "j")
	require.Equal(t, "Cid", m.people[m.personCursor].Name)

	// Someone sorts before Cid after the reload.
	addTestPerson(t, sess, "Bob")
	_, cmd := m.Update(dbChangedMsg{})
	next, _ := m.Update(cmd())
	m = next.(model)
	require.Len(t, m.people, 3)
	assert.Equal(t, "Cid", m.people[m.personCursor].Name)
}

func TestQuitAndErrorViews(t *testing.T) {
	sess := setupSession(t)
	m := loaded(t, sess)

	next, _ := m.Update(assert.AnError)
	assert.Contains(t, next.View(), assert.AnError.Error())

	m, cmd := press(t, m, "q")
	assert.NotNil(t, cmd)
	assert.Equal(t, "Closing kith... Network saved.\n", m.View())
}

func TestWatcherRelevance(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "kith.db")
	w, err := newDBWatcher(dbPath, zaptest.NewLogger(t))
	require.NoError(t, err)
	defer w.Close()

	assert.True(t, w.relevant(fsnotify.Event{Name: dbPath, Op: fsnotify.Write}))
	assert.True(t, w.relevant(fsnotify.Event{Name: dbPath + "-wal", Op: fsnotify.Create}))
	assert.False(t, w.relevant(fsnotify.Event{Name: dbPath, Op: fsnotify.Remove}))
	assert.False(t, w.relevant(fsnotify.Event{Name: filepath.Join(dir, "other.db"), Op: fsnotify.Write}))

	done := make(chan tea.Msg, 1)
	go func() { done <- w.wait()() }()
	require.NoError(t, os.WriteFile(dbPath, []byte("x"), 0o600))

	select {
	case msg := <-done:
		assert.Equal(t, dbChangedMsg{}, msg)
	case <-time.After(5 * time.Second):
		t.Fatal("no change event received")
	}
}
