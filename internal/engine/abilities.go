package engine

import (
	"strconv"

	"github.com/shotam27/NoGambleMonsterBattle/internal/game"
)

// ability returns the member's ability definition, or nil when it has none.
func (rc *turnContext) ability(def *game.CreatureDefinition) *game.AbilityDefinition {
	a, err := rc.e.cat.Ability(def.AbilityID)
	if err != nil {
		rc.fail(err)
		return nil
	}
	return a
}

// onEntry fires the entry ability of the active member of role.
func (rc *turnContext) onEntry(role game.SideRole) {
	side := rc.b.Side(role)
	m := side.Active()
	if m == nil || !m.Alive() {
		return
	}
	def := rc.creature(m)
	a := rc.ability(def)
	if a == nil {
		return
	}
	switch a.Kind {
	case game.AbilityStatChange:
		if a.StatChange == nil {
			return
		}
		target, tRole := m, role
		if a.StatChange.Target == game.TargetOpponent {
			tRole = role.Other()
			target = rc.b.Side(tRole).Active()
			if target == nil || !target.Alive() || target.HasSubstitute {
				return
			}
		}
		rc.add(rc.label(role, m) + "'s " + a.Name + " activates")
		rc.applyStages(tRole, target, a.StatChange.Stat, a.StatChange.Stages)
	case game.AbilityHeal:
		healed := m.Heal(m.MaxHP * a.HealPercent / 100)
		if healed > 0 {
			rc.add(rc.label(role, m) + "'s " + a.Name + " restores " + strconv.Itoa(healed) + " HP")
		}
	case game.AbilityTypeResistance:
		// passive; consulted by the damage step
	}
}

// resistance returns the ability multiplier for an incoming move type.
func (rc *turnContext) resistance(def *game.CreatureDefinition, moveType game.Type) float64 {
	a := rc.ability(def)
	if a == nil || a.Kind != game.AbilityTypeResistance || a.Resistance == nil {
		return 1.0
	}
	if a.Resistance.Type != moveType {
		return 1.0
	}
	return a.Resistance.Multiplier
}

// applyStages changes one stat stage and logs the clamped result.
func (rc *turnContext) applyStages(role game.SideRole, m *game.PartyMember, stat game.Stat, delta int) {
	applied := m.Stages.Apply(stat, delta)
	name := rc.label(role, m)
	statName := statLabel(stat)
	switch {
	case applied > 0:
		rc.add(name + "'s " + statName + " rose by " + strconv.Itoa(applied))
	case applied < 0:
		rc.add(name + "'s " + statName + " fell by " + strconv.Itoa(-applied))
	case delta > 0:
		rc.add(name + "'s " + statName + " won't go any higher")
	default:
		rc.add(name + "'s " + statName + " won't go any lower")
	}
}

func statLabel(s game.Stat) string {
	switch s {
	case game.StatAttack:
		return "attack"
	case game.StatDefense:
		return "defense"
	case game.StatMagicAttack:
		return "magic attack"
	case game.StatMagicDefense:
		return "magic defense"
	case game.StatSpeed:
		return "speed"
	}
	return string(s)
}
