package engine

import "github.com/shotam27/NoGambleMonsterBattle/internal/game"

// ValidateAction checks whether role may submit a in b's current state.
func (e *Engine) ValidateAction(b *game.Battle, role game.SideRole, a *game.Action) error {
	s := b.Side(role)
	if s == nil {
		return game.Invalidf("unknown side %q", role)
	}
	if a == nil {
		return game.Invalidf("missing action")
	}
	switch b.Status {
	case game.StatusFinished:
		return game.Illegalf("battle %s is finished", b.ID)
	case game.StatusActive:
		return game.Illegalf("battle %s is resolving a turn", b.ID)
	case game.StatusWaitingForSwitch:
		if !s.NeedsSwitch() {
			return game.Illegalf("%s is waiting for the other side to switch", role)
		}
	}

	switch a.Type {
	case game.ActionMove:
		if s.NeedsSwitch() {
			return game.Illegalf("%s must switch before choosing a move", role)
		}
		m := s.Active()
		if m == nil || !m.Alive() {
			return game.Illegalf("%s has no active creature", role)
		}
		def, err := e.cat.Creature(m.CreatureID)
		if err != nil {
			return err
		}
		if !def.HasMove(a.MoveID) {
			return game.Invalidf("move %q is not known by %s", a.MoveID, def.Name)
		}
		if _, err := e.cat.Move(a.MoveID); err != nil {
			return game.Invalidf("unknown move %q", a.MoveID)
		}
	case game.ActionSwitch:
		if err := checkSwitchTarget(s, a.TargetIndex); err != nil {
			return err
		}
	default:
		return game.Invalidf("unknown action type %q", a.Type)
	}
	return nil
}

// Ready reports whether the barrier may fire: both actions present in a
// normal turn, or every side owing a switch has submitted one.
func Ready(b *game.Battle) bool {
	switch b.Status {
	case game.StatusWaitingForActions:
		for _, role := range sideOrder {
			s := b.Side(role)
			if s == nil || s.PendingAction == nil {
				return false
			}
		}
		return true
	case game.StatusWaitingForSwitch:
		owed := 0
		for _, role := range sideOrder {
			s := b.Side(role)
			if s == nil || !s.NeedsSwitch() {
				continue
			}
			owed++
			if s.PendingAction == nil || s.PendingAction.Type != game.ActionSwitch {
				return false
			}
		}
		return owed > 0
	}
	return false
}
