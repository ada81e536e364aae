// Package hashing detects record files that reach the same final position.
package hashing

import (
	"github.com/bitmato-studio/bitmato-chess/internal/chess"
)

// DuplicateDetector tracks seen final positions.
type DuplicateDetector struct {
	// hashTable maps a Zobrist hash to the records that reached it
	hashTable map[uint64][]Signature
	// exactMatch also requires the same number of plies
	exactMatch     bool
	duplicateCount int
	maxCapacity    int
	count          int
}

// Signature identifies one record's outcome.
type Signature struct {
	Name     string
	Hash     uint64
	Plies    int
	WeakHash uint32
}

// NewDuplicateDetector creates a detector. maxCapacity of 0 means
// unlimited; once full, new positions are no longer stored.
func NewDuplicateDetector(exactMatch bool, maxCapacity int) *DuplicateDetector {
	return &DuplicateDetector{
		hashTable:   make(map[uint64][]Signature),
		exactMatch:  exactMatch,
		maxCapacity: maxCapacity,
	}
}

// CheckAndAdd reports whether board was already seen and, if so, the name
// of the first record that reached it. New positions are remembered.
func (d *DuplicateDetector) CheckAndAdd(name string, plies int, board *chess.Board) (string, bool) {
	if board == nil {
		return "", false
	}

	sig := Signature{
		Name:     name,
		Hash:     Zobrist(board),
		Plies:    plies,
		WeakHash: WeakHash(board),
	}

	for _, existing := range d.hashTable[sig.Hash] {
		if d.signaturesMatch(sig, existing) {
			d.duplicateCount++
			return existing.Name, true
		}
	}

	if d.IsFull() {
		return "", false
	}
	d.hashTable[sig.Hash] = append(d.hashTable[sig.Hash], sig)
	d.count++
	return "", false
}

func (d *DuplicateDetector) signaturesMatch(a, b Signature) bool {
	if a.Hash != b.Hash || a.WeakHash != b.WeakHash {
		return false
	}
	if d.exactMatch && a.Plies != b.Plies {
		return false
	}
	return true
}

// DuplicateCount returns the number of duplicates detected.
func (d *DuplicateDetector) DuplicateCount() int {
	return d.duplicateCount
}

// UniqueCount returns the number of stored positions.
func (d *DuplicateDetector) UniqueCount() int {
	return d.count
}

// IsFull reports whether the capacity limit is reached.
func (d *DuplicateDetector) IsFull() bool {
	return d.maxCapacity > 0 && d.count >= d.maxCapacity
}

// Reset clears the table.
func (d *DuplicateDetector) Reset() {
	d.hashTable = make(map[uint64][]Signature)
	d.duplicateCount = 0
	d.count = 0
}
