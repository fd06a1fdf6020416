// Package matchmaking pairs waiting players into PvP battles and tracks which
// connections play which battle.
package matchmaking

import (
	"sync"
	"time"
)

// Entry is one waiting player.
type Entry struct {
	ConnID     string
	PlayerName string
	Roster     []string
	JoinedAt   time.Time
}

// Queue is a FIFO of waiting players. Join appends and pairs atomically, so
// two concurrent joins can never both stay waiting.
type Queue struct {
	mu      sync.Mutex
	entries []Entry
	now     func() time.Time
}

func NewQueue() *Queue {
	return &Queue{now: time.Now}
}

// Join enqueues e, replacing an earlier entry of the same connection. When
// two players are waiting the two oldest are removed and returned.
func (q *Queue) Join(e Entry) (pair [2]Entry, matched bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.remove(e.ConnID)
	e.JoinedAt = q.now()
	q.entries = append(q.entries, e)
	if len(q.entries) < 2 {
		return pair, false
	}
	pair = [2]Entry{q.entries[0], q.entries[1]}
	q.entries = append(q.entries[:0:0], q.entries[2:]...)
	return pair, true
}

// Cancel removes connID from the queue and reports whether it was waiting.
func (q *Queue) Cancel(connID string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.remove(connID)
}

func (q *Queue) remove(connID string) bool {
	for i := range q.entries {
		if q.entries[i].ConnID == connID {
			q.entries = append(q.entries[:i], q.entries[i+1:]...)
			return true
		}
	}
	return false
}

// Len reports how many players are waiting.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.entries)
}

// Waiting returns the connection ids in queue order.
func (q *Queue) Waiting() []string {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]string, len(q.entries))
	for i, e := range q.entries {
		out[i] = e.ConnID
	}
	return out
}
