package hashing

import (
	"sync"

	"github.com/bitmato-studio/bitmato-chess/internal/chess"
)

// SharedDetector is a DuplicateDetector that replay workers can feed from
// several goroutines.
type SharedDetector struct {
	mu sync.Mutex
	d  *DuplicateDetector
}

// NewSharedDetector creates a SharedDetector. See NewDuplicateDetector.
func NewSharedDetector(exactPlies bool, maxPositions int) *SharedDetector {
	return &SharedDetector{d: NewDuplicateDetector(exactPlies, maxPositions)}
}

// CheckAndAdd is DuplicateDetector.CheckAndAdd under the lock.
func (s *SharedDetector) CheckAndAdd(name string, plies int, board *chess.Board) (first string, dup bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.d.CheckAndAdd(name, plies, board)
}

// Counts returns the unique and duplicate totals as one snapshot.
func (s *SharedDetector) Counts() (unique, dups int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.d.UniqueCount(), s.d.DuplicateCount()
}

// IsFull reports whether no more positions will be stored.
func (s *SharedDetector) IsFull() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.d.IsFull()
}
