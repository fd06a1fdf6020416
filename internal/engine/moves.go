package engine

import (
	"sort"
	"strconv"

	"github.com/shotam27/NoGambleMonsterBattle/internal/game"
)

type queuedMove struct {
	role   game.SideRole
	member *game.PartyMember
	move   *game.MoveDefinition
	speed  int
}

// buildMoveQueue resolves each side's move action and orders the result by
// priority, then effective speed. Equal entries keep player-first order.
func (rc *turnContext) buildMoveQueue() []queuedMove {
	var q []queuedMove
	for _, role := range sideOrder {
		s := rc.b.Side(role)
		if s.PendingAction == nil || s.PendingAction.Type != game.ActionMove {
			continue
		}
		m := s.Active()
		if m == nil {
			continue
		}
		def := rc.creature(m)
		if !def.HasMove(s.PendingAction.MoveID) {
			rc.add(rc.label(role, m) + " does not know " + s.PendingAction.MoveID)
			continue
		}
		mv, err := rc.e.cat.Move(s.PendingAction.MoveID)
		if err != nil {
			rc.fail(err)
			return nil
		}
		q = append(q, queuedMove{role: role, member: m, move: mv, speed: EffectiveSpeed(m, def)})
	}
	sortMoveQueue(q)
	return q
}

func sortMoveQueue(q []queuedMove) {
	sort.SliceStable(q, func(i, j int) bool {
		if q[i].move.Priority != q[j].move.Priority {
			return q[i].move.Priority > q[j].move.Priority
		}
		return q[i].speed > q[j].speed
	})
}

func movePhase(rc *turnContext) phaseResult {
	for _, qm := range rc.buildMoveQueue() {
		if rc.halted() {
			break
		}
		rc.executeMove(qm)
		rc.checkFainting()
	}
	if rc.halted() {
		return stop
	}
	return next
}

// executeMove dispatches on the move's effect kind.
func (rc *turnContext) executeMove(qm queuedMove) {
	atk := qm.member
	name := rc.label(qm.role, atk)
	if !atk.Alive() {
		rc.add(name + " cannot move")
		return
	}
	if atk.Asleep() {
		rc.add(name + " is fast asleep")
		return
	}
	rc.add(name + " uses " + qm.move.Name)

	switch qm.move.Effect.Kind {
	case game.EffectProtect:
		if atk.UsedBlockLastTurn {
			rc.add("But it failed")
			return
		}
		atk.IsBlocking = true
		atk.UsedBlockLastTurn = true
		rc.protected[atk] = true
		rc.add(name + " protects itself")
	case game.EffectHeal:
		healed := atk.Heal(atk.MaxHP * qm.move.Effect.HealPercent / 100)
		rc.add(name + " restores " + strconv.Itoa(healed) + " HP")
	case game.EffectSubstitute:
		cost := atk.MaxHP / 4
		if atk.HasSubstitute || atk.CurrentHP <= cost {
			rc.add("But it failed")
			return
		}
		atk.TakeDamage(cost)
		atk.HasSubstitute = true
		atk.SubstituteHP = cost
		rc.add(name + " creates a substitute")
	case game.EffectDrain:
		defRole := qm.role.Other()
		def := rc.b.Side(defRole).Active()
		if def == nil || !def.Alive() || def.HasDrainEffect {
			rc.add("But it failed")
			return
		}
		def.HasDrainEffect = true
		rc.add(rc.label(defRole, def) + " is seeded")
	case game.EffectNone, game.EffectStatChange, game.EffectInflictStatus, game.EffectSwitchAfter:
		rc.applyOffensive(qm)
	default:
		rc.add("But nothing happened")
	}
}

// targetsOpponent reports whether the move can be stopped by a block.
func targetsOpponent(mv *game.MoveDefinition) bool {
	switch {
	case mv.Damaging():
		return true
	case mv.Effect.Kind == game.EffectInflictStatus:
		return true
	case mv.Effect.Kind == game.EffectStatChange && mv.Effect.StatChange != nil:
		return mv.Effect.StatChange.Target == game.TargetOpponent
	}
	return false
}

// applyOffensive runs damage and secondary effects of a move.
func (rc *turnContext) applyOffensive(qm queuedMove) {
	atk, mv := qm.member, qm.move
	defRole := qm.role.Other()
	tgt := rc.b.Side(defRole).Active()
	if tgt == nil || !tgt.Alive() {
		if targetsOpponent(mv) {
			rc.add("But there was no target")
			return
		}
	}
	if targetsOpponent(mv) && tgt.IsBlocking {
		tgt.IsBlocking = false
		rc.add(rc.label(defRole, tgt) + " blocked the attack")
		return
	}

	hadSub := tgt != nil && tgt.HasSubstitute
	if mv.Damaging() {
		if !rc.applyDamage(qm, defRole, tgt, hadSub) {
			return
		}
	}

	eff := mv.Effect
	switch eff.Kind {
	case game.EffectInflictStatus:
		rc.inflict(defRole, tgt, eff.Status, hadSub)
	case game.EffectStatChange:
		if eff.StatChange == nil {
			return
		}
		if eff.StatChange.Target == game.TargetSelf {
			rc.applyStages(qm.role, atk, eff.StatChange.Stat, eff.StatChange.Stages)
			return
		}
		if hadSub {
			rc.add(rc.label(defRole, tgt) + "'s substitute blocks the effect")
			return
		}
		if tgt.Alive() {
			rc.applyStages(defRole, tgt, eff.StatChange.Stat, eff.StatChange.Stages)
		}
	case game.EffectSwitchAfter:
		s := rc.b.Side(qm.role)
		if atk.Alive() && s.HasReserve() {
			s.PendingSwitch = true
			rc.add(rc.label(qm.role, atk) + " is ready to switch out")
		}
	}
}

// applyDamage resolves the damaging part of a move. It returns false when the
// move had no effect at all.
func (rc *turnContext) applyDamage(qm queuedMove, defRole game.SideRole, tgt *game.PartyMember, hadSub bool) bool {
	atk, mv := qm.member, qm.move
	atkDef := rc.creature(atk)
	tgtDef := rc.creature(tgt)
	tgtName := rc.label(defRole, tgt)

	typeMult := TypeMultiplier(mv.Type, tgtDef.Types) * rc.resistance(tgtDef, mv.Type)
	if typeMult == 0 {
		rc.add("It has no effect on " + tgtName)
		return false
	}
	a, d := offenseStats(mv.Category, atk, atkDef, tgt, tgtDef)
	dmg := Damage(a, d, mv.Power, typeMult, StabBonus(mv.Type, atkDef.Types))

	if hadSub {
		if mv.Power < SubstituteThreshold {
			rc.add(tgtName + "'s substitute absorbs the hit")
		} else {
			tgt.HasSubstitute = false
			tgt.SubstituteHP = 0
			rc.add(tgtName + "'s substitute breaks")
		}
		return true
	}
	taken := tgt.TakeDamage(dmg)
	rc.add(tgtName + " takes " + strconv.Itoa(taken) + " damage" + effectiveness(typeMult))
	return true
}

func effectiveness(mult float64) string {
	switch {
	case mult > 1:
		return " (super effective)"
	case mult < 1:
		return " (not very effective)"
	}
	return ""
}

// inflict applies a status condition when the target can receive one.
func (rc *turnContext) inflict(role game.SideRole, tgt *game.PartyMember, cond game.StatusCondition, hadSub bool) {
	name := rc.label(role, tgt)
	switch {
	case !tgt.Alive():
		return
	case hadSub:
		rc.add(name + "'s substitute blocks the effect")
		return
	case tgt.Condition() != game.ConditionNone:
		rc.add(name + " is already affected")
		return
	}
	tgt.StatusCondition = cond
	switch cond {
	case game.ConditionSleep:
		tgt.SleepTurnsRemaining = SleepTurns
		rc.add(name + " falls asleep")
	case game.ConditionPoison:
		rc.add(name + " is poisoned")
	case game.ConditionParalysis:
		rc.add(name + " is paralysed")
	}
}
