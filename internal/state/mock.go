package state

import (
	"time"

	"github.com/llehouerou/mcotp/internal/queue"
)

// Mock is a test double for Manager. Scheduled saves are stored immediately.
type Mock struct {
	saved  *Saved
	saves  int
	closed bool
}

// NewMock creates a new mock state manager for testing.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) SaveSnapshot(s queue.Snapshot) error {
	m.saved = &Saved{Snapshot: s, SavedAt: time.Now()}
	m.saves++
	return nil
}

func (m *Mock) ScheduleSave(s queue.Snapshot) { _ = m.SaveSnapshot(s) }

func (m *Mock) GetSnapshot() (*Saved, error) {
	return m.saved, nil
}

func (m *Mock) Clear() error {
	m.saved = nil
	return nil
}

func (m *Mock) Close() error {
	m.closed = true
	return nil
}

// Test helpers

func (m *Mock) SetSnapshot(s *queue.Snapshot) {
	if s == nil {
		m.saved = nil
		return
	}
	m.saved = &Saved{Snapshot: *s}
}

func (m *Mock) Saves() int { return m.saves }

func (m *Mock) IsClosed() bool { return m.closed }

// Verify Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
