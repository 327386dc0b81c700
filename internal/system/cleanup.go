package system

import (
	coresys "github.com/quadcore/engine/internal/core/system"
)

// DestroyQueue is anything holding deferred entity destruction.
type DestroyQueue interface {
	FlushDestroyQueue()
}

// CleanupSystem flushes the deferred entity destruction queue at frame end.
// Phase 4 (Cleanup).
type CleanupSystem struct {
	queue DestroyQueue
}

func NewCleanupSystem(queue DestroyQueue) *CleanupSystem {
	return &CleanupSystem{queue: queue}
}

func (s *CleanupSystem) Phase() coresys.Phase { return coresys.PhaseCleanup }

func (s *CleanupSystem) Update(_ float64) {
	s.queue.FlushDestroyQueue()
}
