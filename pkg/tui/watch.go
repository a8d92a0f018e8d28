package tui

import (
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// dbChangedMsg signals that the database file was written, possibly by
// the MCP server or another command running alongside the UI.
type dbChangedMsg struct{}

// dbWatcher follows the database file and its WAL. The directory is watched
// because SQLite replaces and creates the side files.
type dbWatcher struct {
	w      *fsnotify.Watcher
	names  map[string]bool
	logger *zap.Logger
}

func newDBWatcher(dbPath string, logger *zap.Logger) (*dbWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(dbPath)); err != nil {
		w.Close()
		return nil, err
	}
	base := filepath.Base(dbPath)
	return &dbWatcher{
		w:      w,
		names:  map[string]bool{base: true, base + "-wal": true},
		logger: logger,
	}, nil
}

// relevant reports whether ev touches the database.
func (d *dbWatcher) relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
		return false
	}
	return d.names[filepath.Base(ev.Name)]
}

// wait blocks until the next relevant change. It returns nil once the
// watcher is closed, which ends the subscription.
func (d *dbWatcher) wait() tea.Cmd {
	return func() tea.Msg {
		for {
			select {
			case ev, ok := <-d.w.Events:
				if !ok {
					return nil
				}
				if d.relevant(ev) {
					return dbChangedMsg{}
				}
			case err, ok := <-d.w.Errors:
				if !ok {
					return nil
				}
				d.logger.Warn("database watcher error", zap.Error(err))
			}
		}
	}
}

func (d *dbWatcher) Close() error {
	return d.w.Close()
}
