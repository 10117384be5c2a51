package state

import "github.com/llehouerou/mcotp/internal/queue"

// Interface defines the state manager contract for dependency injection and testing.
type Interface interface {
	SaveSnapshot(s queue.Snapshot) error
	ScheduleSave(s queue.Snapshot)
	GetSnapshot() (*Saved, error)
	Clear() error
	Close() error
}

// Verify Manager implements Interface at compile time.
var _ Interface = (*Manager)(nil)
