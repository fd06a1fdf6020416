package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/shotam27/NoGambleMonsterBattle/internal/game"

	"github.com/looplab/fsm"
)

// Battle status events.
const (
	evBegin         = "begin"
	evRequireSwitch = "require_switch"
	evClose         = "close"
	evFinish        = "finish"
)

var (
	stWaitingActions = string(game.StatusWaitingForActions)
	stActive         = string(game.StatusActive)
	stWaitingSwitch  = string(game.StatusWaitingForSwitch)
	stFinished       = string(game.StatusFinished)
)

// battleEvents lists every legal status transition. Finished has no
// outgoing edge.
var battleEvents = fsm.Events{
	{Name: evBegin, Src: []string{stWaitingActions, stWaitingSwitch}, Dst: stActive},
	{Name: evRequireSwitch, Src: []string{stActive, stWaitingSwitch}, Dst: stWaitingSwitch},
	{Name: evClose, Src: []string{stActive}, Dst: stWaitingActions},
	{Name: evFinish, Src: []string{stActive, stWaitingSwitch}, Dst: stFinished},
}

// stateMachine mirrors the FSM state into Battle.Status after each event.
type stateMachine struct {
	f *fsm.FSM
	b *game.Battle
}

func newStateMachine(b *game.Battle) *stateMachine {
	return &stateMachine{f: fsm.NewFSM(string(b.Status), battleEvents, fsm.Callbacks{}), b: b}
}

// fire applies event. Re-entering the current state is not an error.
func (sm *stateMachine) fire(event string) error {
	err := sm.f.Event(context.Background(), event)
	var same fsm.NoTransitionError
	if err != nil && !errors.As(err, &same) {
		return fmt.Errorf("battle %s: illegal transition %q from %s: %w", sm.b.ID, event, sm.f.Current(), err)
	}
	sm.b.Status = game.Status(sm.f.Current())
	return nil
}

// CanTransition reports whether event is legal from the battle's status.
func CanTransition(b *game.Battle, event string) bool {
	return newStateMachine(b).f.Can(event)
}
