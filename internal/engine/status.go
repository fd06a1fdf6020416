package engine

import (
	"strconv"

	"github.com/shotam27/NoGambleMonsterBattle/internal/game"
)

// statusPhase ticks poison, sleep and drain on each active member. Every
// side ticks even when an earlier tick forced a switch; only a finished
// battle stops the loop.
func statusPhase(rc *turnContext) phaseResult {
	for _, role := range sideOrder {
		if rc.err != nil || rc.b.IsFinished() {
			break
		}
		rc.tickSide(role)
	}
	if rc.halted() {
		return stop
	}
	return next
}

func (rc *turnContext) tickSide(role game.SideRole) {
	m := rc.b.Side(role).Active()
	if m == nil || !m.Alive() {
		return
	}
	name := rc.label(role, m)

	switch m.Condition() {
	case game.ConditionPoison:
		lost := m.TakeDamage(tickAmount(m.MaxHP))
		rc.add(name + " is hurt by poison and loses " + strconv.Itoa(lost) + " HP")
		rc.checkFainting()
		if rc.err != nil || rc.b.IsFinished() || !m.Alive() {
			return
		}
	case game.ConditionSleep:
		if m.SleepTurnsRemaining > 0 {
			m.SleepTurnsRemaining--
		}
		if m.SleepTurnsRemaining == 0 {
			m.StatusCondition = game.ConditionNone
			rc.add(name + " wakes up")
		}
	}

	if !m.HasDrainEffect {
		return
	}
	removed := m.TakeDamage(tickAmount(m.MaxHP))
	msg := name + " has " + strconv.Itoa(removed) + " HP drained"
	oppRole := role.Other()
	if opp := rc.b.Side(oppRole).Active(); opp != nil && opp.Alive() {
		healed := opp.Heal(removed)
		msg += ", " + rc.label(oppRole, opp) + " recovers " + strconv.Itoa(healed) + " HP"
	}
	rc.add(msg)
	rc.checkFainting()
}
