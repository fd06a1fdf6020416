package engine

import (
	"math/rand"
	"strconv"

	"github.com/shotam27/NoGambleMonsterBattle/internal/game"
)

type phaseResult bool

const (
	next phaseResult = true
	stop phaseResult = false
)

type phase struct {
	name string
	run  func(*turnContext) phaseResult
}

// pipeline is the fixed phase order of a turn. Turn close always runs after
// it, whichever phase stopped.
var pipeline = []phase{
	{name: "switch", run: switchPhase},
	{name: "move", run: movePhase},
	{name: "status", run: statusPhase},
}

// TurnResult is the outcome of one resolution.
type TurnResult struct {
	Log []string
	// SwitchOnly is set when the resolution only performed forced switches.
	SwitchOnly bool
}

// ResolveTurn runs the pipeline once over b, which must be Ready. The battle
// is mutated in place; callers that need rollback pass a clone.
func (e *Engine) ResolveTurn(b *game.Battle, rng *rand.Rand) (*TurnResult, error) {
	if !Ready(b) {
		return nil, game.Illegalf("battle %s is not ready to resolve (status %s)", b.ID, b.Status)
	}
	rc := e.newTurnContext(b, rng)
	rc.sm = newStateMachine(b)
	rc.switchOnly = b.Status == game.StatusWaitingForSwitch
	rc.fire(evBegin)
	if rc.err != nil {
		return nil, rc.err
	}
	if !rc.switchOnly {
		rc.add("Turn " + strconv.Itoa(b.TurnNumber))
	}

	for _, p := range pipeline {
		if p.run(rc) == stop {
			break
		}
	}
	rc.closeTurn()
	if rc.err != nil {
		return nil, rc.err
	}
	return &TurnResult{Log: rc.log, SwitchOnly: rc.switchOnly}, nil
}

// closeTurn clears per-turn state and picks the next status.
func (rc *turnContext) closeTurn() {
	for _, role := range sideOrder {
		s := rc.b.Side(role)
		s.PendingAction = nil
		for i := range s.Party {
			m := &s.Party[i]
			m.IsBlocking = false
			if !rc.switchOnly && !rc.protected[m] {
				m.UsedBlockLastTurn = false
			}
		}
	}
	rc.b.LastLog = rc.log
	if rc.err != nil || rc.b.IsFinished() {
		return
	}
	for _, role := range sideOrder {
		if rc.b.Side(role).NeedsSwitch() {
			rc.fire(evRequireSwitch)
			return
		}
	}
	if !rc.switchOnly {
		rc.b.TurnNumber++
	}
	rc.fire(evClose)
}
