package engine

import (
	"strconv"

	"github.com/shotam27/NoGambleMonsterBattle/internal/game"
)

// checkFainting marks members that reached 0 HP, decides the battle outcome
// and arranges replacements for fainted active members.
func (rc *turnContext) checkFainting() {
	if rc.err != nil || rc.b.IsFinished() {
		return
	}
	for _, role := range sideOrder {
		s := rc.b.Side(role)
		m := s.Active()
		if m == nil || m.CurrentHP > 0 {
			continue
		}
		if m.Faint() {
			s.PendingSwitch = false
			rc.add(rc.label(role, m) + " fainted")
		}
	}

	pOut := rc.b.Player().AllFainted()
	oOut := rc.b.Opponent().AllFainted()
	switch {
	case pOut && oOut:
		rc.finish(game.WinnerDraw)
		return
	case pOut && !rc.tryRegenerate(game.RolePlayer):
		rc.finish(game.WinnerOpponent)
		return
	case oOut && !rc.tryRegenerate(game.RoleOpponent):
		rc.finish(game.WinnerPlayer)
		return
	}
	if rc.err != nil {
		return
	}

	for _, role := range sideOrder {
		s := rc.b.Side(role)
		m := s.Active()
		if m == nil || !m.Fainted || s.PendingSwitch || !s.HasReserve() {
			continue
		}
		if s.IsAI() {
			rc.switchIn(role, s.AvailableSwitchIndices()[0])
			continue
		}
		s.PendingSwitch = true
		rc.add(sideLabel(s) + " must choose the next creature")
		rc.fire(evRequireSwitch)
	}
}

func (rc *turnContext) finish(w game.Winner) {
	rc.b.Winner = w
	switch w {
	case game.WinnerDraw:
		rc.add("Both parties are down. The battle ends in a draw")
	default:
		role := game.RolePlayer
		if w == game.WinnerOpponent {
			role = game.RoleOpponent
		}
		rc.add(sideLabel(rc.b.Side(role)) + " wins the battle")
	}
	rc.fire(evFinish)
}

// tryRegenerate replaces a defeated AI party in rematch mode.
func (rc *turnContext) tryRegenerate(role game.SideRole) bool {
	s := rc.b.Side(role)
	if !rc.b.Rematch || !s.IsAI() {
		return false
	}
	ids := rc.e.cat.RandomRoster(rc.rng, len(s.Party))
	if len(ids) != len(s.Party) {
		return false
	}
	for i := range s.Party {
		def, err := rc.e.cat.Creature(ids[i])
		if err != nil {
			rc.fail(err)
			return true
		}
		s.Party[i].Reset(def)
	}
	s.ActiveIndex = 0
	s.PendingSwitch = false
	s.PendingAction = nil
	rc.b.WinCount++
	rc.regenerated = true
	rc.add(sideLabel(rc.b.Side(role.Other())) + " has won " + strconv.Itoa(rc.b.WinCount) + " in a row. A new challenger appears")
	rc.onEntry(role)
	return true
}
