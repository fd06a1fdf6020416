package matchmaking

import "sync"

// Registry maps live PvP battles to their two connections.
type Registry struct {
	mu      sync.RWMutex
	battles map[string][2]string
	byConn  map[string]string
}

func NewRegistry() *Registry {
	return &Registry{
		battles: make(map[string][2]string),
		byConn:  make(map[string]string),
	}
}

// Register binds battleID to its player and opponent connections.
func (r *Registry) Register(battleID, playerConn, opponentConn string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.battles[battleID] = [2]string{playerConn, opponentConn}
	r.byConn[playerConn] = battleID
	r.byConn[opponentConn] = battleID
}

// BattleOf returns the battle a connection plays.
func (r *Registry) BattleOf(connID string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byConn[connID]
	return id, ok
}

// Connections returns the player and opponent connections of a battle.
func (r *Registry) Connections(battleID string) ([2]string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.battles[battleID]
	return c, ok
}

// Opponent returns the other connection of connID's battle.
func (r *Registry) Opponent(connID string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byConn[connID]
	if !ok {
		return "", false
	}
	c := r.battles[id]
	if c[0] == connID {
		return c[1], true
	}
	return c[0], true
}

// Remove drops a battle and both reverse entries.
func (r *Registry) Remove(battleID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.battles[battleID]
	if !ok {
		return
	}
	delete(r.battles, battleID)
	for _, conn := range c {
		if r.byConn[conn] == battleID {
			delete(r.byConn, conn)
		}
	}
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.battles)
}
