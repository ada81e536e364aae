package session

import (
	"fmt"
	"sync"
	"time"
)

// QueuedPlayer is a player waiting for an opponent.
type QueuedPlayer struct {
	PlayerID string
	JoinedAt time.Time
}

// Queue is a FIFO matchmaking queue.
type Queue struct {
	players []QueuedPlayer
	mu      sync.Mutex
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Add appends a player. A player can be queued only once.
func (q *Queue) Add(playerID string) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	for _, p := range q.players {
		if p.PlayerID == playerID {
			return fmt.Errorf("player %s already in queue", playerID)
		}
	}
	q.players = append(q.players, QueuedPlayer{PlayerID: playerID, JoinedAt: time.Now()})
	return nil
}

// NextPair removes and returns the two longest-waiting players.
// ok is false when fewer than two are waiting.
func (q *Queue) NextPair() (first, second string, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.players) < 2 {
		return "", "", false
	}
	first, second = q.players[0].PlayerID, q.players[1].PlayerID
	q.players = q.players[2:]
	return first, second, true
}

// Remove takes a player out of the queue and reports whether it was there.
func (q *Queue) Remove(playerID string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	for i, p := range q.players {
		if p.PlayerID == playerID {
			q.players = append(q.players[:i], q.players[i+1:]...)
			return true
		}
	}
	return false
}

// Contains reports whether a player is waiting.
func (q *Queue) Contains(playerID string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	for _, p := range q.players {
		if p.PlayerID == playerID {
			return true
		}
	}
	return false
}

// Size returns the number of waiting players.
func (q *Queue) Size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.players)
}
