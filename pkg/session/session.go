// Package session holds the current network snapshot for a running
// command. Every change goes through Apply or Do: the operation runs
// against the freshly stored network inside a write transaction, and the
// saved result then replaces the held snapshot.
package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/unowned-ai/kith/pkg/network"
	"github.com/unowned-ai/kith/pkg/store"
)

var (
	ErrAlreadyInitialized = errors.New("a network already exists in this database")
)

// Op is a snapshot transition.
type Op func(*network.Network) (*network.Network, error)

type Session struct {
	mu     sync.Mutex
	db     *sql.DB
	net    *network.Network
	logger *zap.Logger
}

// Init creates and saves a new network. It refuses to overwrite an
// existing one.
func Init(ctx context.Context, db *sql.DB, ownerName, email string, logger *zap.Logger) (*Session, error) {
	if _, err := store.Load(ctx, db); err == nil {
		return nil, ErrAlreadyInitialized
	} else if !errors.Is(err, store.ErrNoNetwork) {
		return nil, err
	}

	n, err := network.NewNetwork(ownerName, email)
	if err != nil {
		return nil, err
	}
	if err := store.Save(ctx, db, n); err != nil {
		return nil, err
	}

	s := newSession(db, n, logger)
	s.logger.Info("network created", zap.String("owner", n.Owner.Name), zap.Stringer("self_id", n.SelfID))
	return s, nil
}

// Open loads the stored network. It returns store.ErrNoNetwork when Init
// has not been run.
func Open(ctx context.Context, db *sql.DB, logger *zap.Logger) (*Session, error) {
	n, err := store.Load(ctx, db)
	if err != nil {
		return nil, err
	}
	s := newSession(db, n, logger)
	s.logger.Debug("network loaded",
		zap.Int("people", len(n.People)),
		zap.Int("relationships", len(n.Relationships)),
		zap.Int("circles", len(n.Circles)),
	)
	return s, nil
}

func newSession(db *sql.DB, n *network.Network, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{db: db, net: n, logger: logger.Named("session")}
}

// Network returns the current snapshot. Callers must not modify it.
func (s *Session) Network() *network.Network {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.net
}

func (s *Session) DB() *sql.DB {
	return s.db
}

func (s *Session) Logger() *zap.Logger {
	return s.logger
}

// Apply reloads the stored network, runs op on it and persists the
// result in one transaction, so writes made by another process since the
// session loaded are kept. On any error the held snapshot is unchanged.
func (s *Session) Apply(ctx context.Context, name string, op Op) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var rejected bool
	next, err := store.Update(ctx, s.db, func(current *network.Network) (*network.Network, error) {
		next, err := op(current)
		rejected = err != nil
		return next, err
	})
	if err != nil {
		if rejected {
			s.logger.Debug("operation rejected", zap.String("op", name), zap.Error(err))
			return err
		}
		s.logger.Error("failed to persist snapshot", zap.String("op", name), zap.Error(err))
		return fmt.Errorf("failed to persist %s: %w", name, err)
	}
	s.net = next
	s.logger.Debug("operation applied", zap.String("op", name))
	return nil
}

// Do is Apply for operations that also return the entity they created or
// changed.
func Do[T any](ctx context.Context, s *Session, name string, op func(*network.Network) (*network.Network, T, error)) (T, error) {
	var result T
	err := s.Apply(ctx, name, func(n *network.Network) (*network.Network, error) {
		next, v, err := op(n)
		if err != nil {
			return nil, err
		}
		result = v
		return next, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return result, nil
}

// Reload replaces the held snapshot with what is stored, picking up
// changes made by another process.
func (s *Session) Reload(ctx context.Context) error {
	n, err := store.Load(ctx, s.db)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.net = n
	s.mu.Unlock()
	return nil
}
