package session

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/unowned-ai/kith/pkg/db"
	"github.com/unowned-ai/kith/pkg/network"
	"github.com/unowned-ai/kith/pkg/store"
	"github.com/unowned-ai/kith/pkg/validate"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	testDB, err := db.OpenDBConnection(":memory:", true, "NORMAL")
	require.NoError(t, err)
	t.Cleanup(func() { testDB.Close() })
	require.NoError(t, db.UpgradeDB(testDB, ":memory:", db.TargetSchemaVersion, zaptest.NewLogger(t)))
	return testDB
}

func TestInitAndOpen(t *testing.T) {
	testDB := setupTestDB(t)
	ctx := context.Background()

	_, err := Open(ctx, testDB, nil)
	assert.ErrorIs(t, err, store.ErrNoNetwork)

	s, err := Init(ctx, testDB, "Ada", "ada@example.com", zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.Equal(t, "Ada", s.Network().Owner.Name)

	_, err = Init(ctx, testDB, "Someone else", "", nil)
	assert.ErrorIs(t, err, ErrAlreadyInitialized)

	reopened, err := Open(ctx, testDB, zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.Equal(t, s.Network(), reopened.Network())
}

func TestApplyPersists(t *testing.T) {
	testDB := setupTestDB(t)
	ctx := context.Background()
	s, err := Init(ctx, testDB, "Ada", "", zaptest.NewLogger(t))
	require.NoError(t, err)

	bob, err := Do(ctx, s, "add person", func(n *network.Network) (*network.Network, network.Person, error) {
		return network.AddPerson(n, network.NewPerson{Name: "Bob"})
	})
	require.NoError(t, err)
	assert.Equal(t, "Bob", bob.Name)

	loaded, err := store.Load(ctx, testDB)
	require.NoError(t, err)
	assert.Equal(t, s.Network(), loaded)
	assert.Contains(t, loaded.People, bob.ID)
}

func TestApplyKeepsSnapshotOnError(t *testing.T) {
	testDB := setupTestDB(t)
	ctx := context.Background()
	s, err := Init(ctx, testDB, "Ada", "", nil)
	require.NoError(t, err)
	before := s.Network()

	_, err = Do(ctx, s, "add person", func(n *network.Network) (*network.Network, network.Person, error) {
		return network.AddPerson(n, network.NewPerson{Name: "  "})
	})
	assert.ErrorIs(t, err, validate.ErrBlank)
	assert.Same(t, before, s.Network())

	err = s.Apply(ctx, "archive self", func(n *network.Network) (*network.Network, error) {
		return network.ArchivePerson(n, n.SelfID)
	})
	assert.ErrorIs(t, err, network.ErrCannotArchiveSelf)
	assert.Same(t, before, s.Network())
}

func TestApplySaveFailureKeepsSnapshot(t *testing.T) {
	testDB := setupTestDB(t)
	ctx := context.Background()
	s, err := Init(ctx, testDB, "Ada", "", nil)
	require.NoError(t, err)
	before := s.Network()

	cancelled, cancel := context.WithCancel(ctx)
	cancel()

	_, err = Do(cancelled, s, "add person", func(n *network.Network) (*network.Network, network.Person, error) {
		return network.AddPerson(n, network.NewPerson{Name: "Bob"})
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Same(t, before, s.Network())
}

func TestConcurrentApply(t *testing.T) {
	testDB := setupTestDB(t)
	ctx := context.Background()
	s, err := Init(ctx, testDB, "Ada", "", nil)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := Do(ctx, s, "add person", func(n *network.Network) (*network.Network, network.Person, error) {
				return network.AddPerson(n, network.NewPerson{Name: "Guest"})
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Len(t, s.Network().People, 9)

	require.NoError(t, s.Reload(ctx))
	assert.Len(t, s.Network().People, 9)
}

func TestApplyKeepsWritesFromOtherSessions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kith.db")
	ctx := context.Background()

	open := func() *sql.DB {
		conn, err := db.OpenDBConnection(path, true, "NORMAL")
		require.NoError(t, err)
		t.Cleanup(func() { conn.Close() })
		require.NoError(t, db.UpgradeDB(conn, path, db.TargetSchemaVersion, zaptest.NewLogger(t)))
		return conn
	}
	cliDB, serverDB := open(), open()

	_, err := Init(ctx, cliDB, "Ada", "", zaptest.NewLogger(t))
	require.NoError(t, err)

	cli, err := Open(ctx, cliDB, zaptest.NewLogger(t))
	require.NoError(t, err)
	server, err := Open(ctx, serverDB, zaptest.NewLogger(t))
	require.NoError(t, err)

	_, err = Do(ctx, cli, "add person", func(n *network.Network) (*network.Network, network.Person, error) {
		return network.AddPerson(n, network.NewPerson{Name: "Bob"})
	})
	require.NoError(t, err)
	_, err = Do(ctx, server, "add person", func(n *network.Network) (*network.Network, network.Person, error) {
		return network.AddPerson(n, network.NewPerson{Name: "Cid"})
	})
	require.NoError(t, err)

	loaded, err := store.Load(ctx, cliDB)
	require.NoError(t, err)
	names := make([]string, 0, len(loaded.People))
	for _, p := range loaded.People {
		names = append(names, p.Name)
	}
	assert.ElementsMatch(t, []string{"Ada", "Bob", "Cid"}, names)
	assert.Equal(t, loaded, server.Network())
}
