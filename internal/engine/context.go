package engine

import (
	"math/rand"

	"github.com/shotam27/NoGambleMonsterBattle/internal/game"
)

// --- Turn context and helpers -----------------------------------------
type turnContext struct {
	e   *Engine
	b   *game.Battle
	rng *rand.Rand
	sm  *stateMachine
	log []string
	// switchOnly marks a resolution started from waiting_for_switch.
	switchOnly bool
	// regenerated is set when rematch mode replaced a defeated party; the
	// remaining queued moves of this invocation are dropped.
	regenerated bool
	// protected records members that used a block move this turn.
	protected map[*game.PartyMember]bool
	err       error
}

func (e *Engine) newTurnContext(b *game.Battle, rng *rand.Rand) *turnContext {
	return &turnContext{
		e:         e,
		b:         b,
		rng:       rng,
		log:       make([]string, 0, 16),
		protected: make(map[*game.PartyMember]bool, 2),
	}
}

func (rc *turnContext) add(msg string) { rc.log = append(rc.log, msg) }

// fail records the first internal error; the pipeline stops on it.
func (rc *turnContext) fail(err error) {
	if rc.err == nil {
		rc.err = err
	}
}

// halted reports whether the remaining phases must be skipped.
func (rc *turnContext) halted() bool {
	return rc.err != nil || rc.regenerated ||
		rc.b.Status == game.StatusFinished || rc.b.Status == game.StatusWaitingForSwitch
}

func (rc *turnContext) fire(event string) {
	if rc.sm == nil {
		return
	}
	if err := rc.sm.fire(event); err != nil {
		rc.fail(err)
	}
}
