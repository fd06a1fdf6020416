package engine

import (
	"sort"
	"strconv"

	"github.com/shotam27/NoGambleMonsterBattle/internal/game"
)

type pendingSwitch struct {
	role   game.SideRole
	target int
	speed  int
}

// switchPhase performs every submitted switch, fastest incoming member first.
func switchPhase(rc *turnContext) phaseResult {
	var queue []pendingSwitch
	for _, role := range sideOrder {
		s := rc.b.Side(role)
		if s.PendingAction == nil || s.PendingAction.Type != game.ActionSwitch {
			continue
		}
		ps := pendingSwitch{role: role, target: s.PendingAction.TargetIndex}
		if ps.target >= 0 && ps.target < len(s.Party) {
			in := &s.Party[ps.target]
			ps.speed = EffectiveSpeed(in, rc.creature(in))
		}
		queue = append(queue, ps)
	}
	sort.SliceStable(queue, func(i, j int) bool { return queue[i].speed > queue[j].speed })

	for _, ps := range queue {
		s := rc.b.Side(ps.role)
		if err := checkSwitchTarget(s, ps.target); err != nil {
			rc.add(sideLabel(s) + " cannot switch: " + err.Error())
			continue
		}
		rc.switchIn(ps.role, ps.target)
		if rc.err != nil {
			return stop
		}
	}
	if rc.switchOnly {
		return stop
	}
	return next
}

// checkSwitchTarget validates a switch target against the side's party.
func checkSwitchTarget(s *game.Side, target int) error {
	switch {
	case target < 0 || target >= len(s.Party):
		return game.Invalidf("switch target %d out of range", target)
	case s.Party[target].Fainted:
		return game.Invalidf("switch target %d has fainted", target)
	case target == s.ActiveIndex:
		return game.Invalidf("switch target %d is already active", target)
	}
	return nil
}

// switchIn makes target the active member of role.
func (rc *turnContext) switchIn(role game.SideRole, target int) {
	s := rc.b.Side(role)
	if out := s.Active(); out != nil {
		out.ClearTransient()
		if !out.Fainted {
			rc.add(rc.label(role, out) + " returns")
		}
	}
	s.ActiveIndex = target
	in := s.Active()
	in.ResetStages()
	s.PendingSwitch = false
	rc.add(sideLabel(s) + " sends out " + rc.creature(in).Name + " (slot " + strconv.Itoa(target+1) + ")")
	rc.onEntry(role)
}
