package engine

import (
	"fmt"
	"math/rand"

	"github.com/shotam27/NoGambleMonsterBattle/internal/game"
)

// SelectAIAction picks a uniformly random legal action for role. It panics
// when no legal action exists, which fainting rules make unreachable.
func (e *Engine) SelectAIAction(b *game.Battle, role game.SideRole, r *rand.Rand) *game.Action {
	s := b.Side(role)
	if s.NeedsSwitch() {
		idx := s.AvailableSwitchIndices()
		if len(idx) == 0 {
			panic(fmt.Sprintf("engine: %s owes a switch in battle %s but has no reserve", role, b.ID))
		}
		return game.SwitchAction(idx[r.Intn(len(idx))])
	}
	m := s.Active()
	if m == nil || !m.Alive() {
		panic(fmt.Sprintf("engine: %s has no active creature in battle %s", role, b.ID))
	}
	def, err := e.cat.Creature(m.CreatureID)
	if err != nil || len(def.MoveIDs) == 0 {
		panic(fmt.Sprintf("engine: %s in battle %s has no usable moves", m.CreatureID, b.ID))
	}
	return game.MoveAction(def.MoveIDs[r.Intn(len(def.MoveIDs))])
}
