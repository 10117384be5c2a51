// Package state persists the play queue across restarts.
package state

import (
	"context"
	"database/sql"
	"io"
	"path/filepath"
	"sync"
	"time"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/log"

	dbutil "github.com/llehouerou/mcotp/internal/db"
	"github.com/llehouerou/mcotp/internal/queue"
)

const (
	appName      = "mcotp"
	dbFileName   = "state.db"
	saveDebounce = 500 * time.Millisecond
)

type Manager struct {
	db     *sql.DB
	logger *log.Logger
	now    func() time.Time

	saveMu    sync.Mutex
	saveTimer *time.Timer
	pending   *queue.Snapshot
	seq       uint64 // bumped by every save request and Clear

	writeMu sync.Mutex
	written uint64 // seq of the last write or clear that reached the database
	closed  bool
}

// DefaultPath returns the state database location under the XDG data directory.
func DefaultPath() (string, error) {
	return xdg.DataFile(filepath.Join(appName, dbFileName))
}

// Open opens or creates the state database at path.
func Open(path string, logger *log.Logger) (*Manager, error) {
	db, err := dbutil.Open(path, false)
	if err != nil {
		return nil, err
	}
	if err := initSchema(context.Background(), db); err != nil {
		db.Close()
		return nil, err
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Manager{db: db, logger: logger, now: time.Now}, nil
}

// Close flushes a pending debounced save, waits for a running one and
// closes the database.
func (m *Manager) Close() error {
	seq, pending := m.takePending()
	if pending != nil {
		if err := m.write(seq, *pending); err != nil {
			m.logger.Error("flushing queue state", "err", err)
		}
	}

	m.writeMu.Lock()
	defer m.writeMu.Unlock()
	m.closed = true
	return m.db.Close()
}

func (m *Manager) GetSnapshot() (*Saved, error) {
	return getSnapshot(context.Background(), m.db)
}

// SaveSnapshot writes s immediately. A pending debounced save is dropped,
// since it holds an older state.
func (m *Manager) SaveSnapshot(s queue.Snapshot) error {
	m.saveMu.Lock()
	m.stopTimer()
	m.pending = nil
	m.seq++
	seq := m.seq
	m.saveMu.Unlock()

	return m.write(seq, s)
}

// Clear removes the stored snapshot and any pending save.
func (m *Manager) Clear() error {
	m.saveMu.Lock()
	m.stopTimer()
	m.pending = nil
	m.seq++
	seq := m.seq
	m.saveMu.Unlock()

	m.writeMu.Lock()
	defer m.writeMu.Unlock()
	m.written = seq
	return clearSnapshot(context.Background(), m.db)
}

// ScheduleSave saves s after a short quiet period. Later calls replace
// earlier pending snapshots.
func (m *Manager) ScheduleSave(s queue.Snapshot) {
	m.saveMu.Lock()
	defer m.saveMu.Unlock()

	m.pending = &s
	m.seq++

	m.stopTimer()
	m.saveTimer = time.AfterFunc(saveDebounce, func() {
		seq, pending := m.takePending()
		if pending != nil {
			if err := m.write(seq, *pending); err != nil {
				m.logger.Error("saving queue state", "err", err)
			}
		}
	})
}

// stopTimer must be called with saveMu held.
func (m *Manager) stopTimer() {
	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}
}

func (m *Manager) takePending() (uint64, *queue.Snapshot) {
	m.saveMu.Lock()
	defer m.saveMu.Unlock()
	m.stopTimer()
	pending := m.pending
	m.pending = nil
	return m.seq, pending
}

// write stores s unless a newer save or clear already reached the database.
func (m *Manager) write(seq uint64, s queue.Snapshot) error {
	m.writeMu.Lock()
	defer m.writeMu.Unlock()

	if m.closed || seq <= m.written {
		m.logger.Debug("skipping stale queue state save", "seq", seq)
		return nil
	}
	if err := saveSnapshot(context.Background(), m.db, s, m.now()); err != nil {
		return err
	}
	m.written = seq
	return nil
}
