package service

import (
	"context"
	"errors"
	"math/rand"

	"github.com/shotam27/NoGambleMonsterBattle/internal/constants"
	"github.com/shotam27/NoGambleMonsterBattle/internal/engine"
	"github.com/shotam27/NoGambleMonsterBattle/internal/game"
	"github.com/shotam27/NoGambleMonsterBattle/internal/logging"
)

var (
	ErrServiceClosed = errors.New("battle service is closed")
	errActorStopped  = errors.New("battle actor stopped")
)

type commandKind int

const (
	cmdSubmit commandKind = iota
	cmdCancel
	cmdStatus
	cmdStop
)

type command struct {
	kind   commandKind
	role   game.SideRole
	action *game.Action
	// ctx bounds the store calls the command makes.
	ctx   context.Context
	reply chan reply
}

type reply struct {
	outcome *Outcome
	battle  *game.Battle
	err     error
}

// battleActor serialises every command for one battle. Only its goroutine
// touches battle.
type battleActor struct {
	id     string
	svc    *Service
	battle *game.Battle
	rng    *rand.Rand
	cmds   chan command
	done   chan struct{}
}

func newBattleActor(svc *Service, b *game.Battle, rng *rand.Rand) *battleActor {
	return &battleActor{
		id:     b.ID,
		svc:    svc,
		battle: b,
		rng:    rng,
		cmds:   make(chan command),
		done:   make(chan struct{}),
	}
}

// send delivers cmd and waits for its reply.
func (a *battleActor) send(ctx context.Context, cmd command) (reply, error) {
	cmd.ctx = ctx
	cmd.reply = make(chan reply, 1)
	select {
	case a.cmds <- cmd:
	case <-a.done:
		return reply{}, errActorStopped
	case <-ctx.Done():
		return reply{}, ctx.Err()
	}
	select {
	case r := <-cmd.reply:
		return r, nil
	case <-ctx.Done():
		return reply{}, ctx.Err()
	}
}

func (a *battleActor) run() {
	defer func() {
		a.svc.forget(a)
		close(a.done)
		logging.Debug("battle actor stopped", logging.Fields{constants.LogFieldBattleID: a.id})
	}()
	for cmd := range a.cmds {
		switch cmd.kind {
		case cmdStop:
			cmd.reply <- reply{}
			return
		case cmdStatus:
			cmd.reply <- reply{battle: a.battle.Clone()}
		case cmdCancel:
			cmd.reply <- reply{battle: a.battle.Clone(), err: a.cancel(cmd.ctx, cmd.role)}
		case cmdSubmit:
			out, err := a.submit(cmd.ctx, cmd.role, cmd.action)
			cmd.reply <- reply{outcome: out, err: err}
			if err == nil && a.battle.IsFinished() {
				return
			}
		}
	}
}

// submit records an action and resolves every turn the barrier releases.
// Nothing is kept or delivered unless the single save succeeds.
func (a *battleActor) submit(ctx context.Context, role game.SideRole, action *game.Action) (*Outcome, error) {
	eng := a.svc.engine
	if err := eng.ValidateAction(a.battle, role, action); err != nil {
		return nil, err
	}
	next := a.battle.Clone()
	pending := *action
	next.Side(role).PendingAction = &pending
	a.fillAI(next)

	var log []string
	resolved := false
	for engine.Ready(next) {
		res, err := eng.ResolveTurn(next, a.rng)
		if err != nil {
			return nil, err
		}
		resolved = true
		log = append(log, res.Log...)
		a.fillAI(next)
	}
	if resolved {
		next.LastLog = log
	}

	if err := a.svc.repo.UpdateBattle(ctx, next); err != nil {
		logging.Error("failed to save battle", err, logging.Fields{constants.LogFieldBattleID: a.id})
		return nil, game.Persistence("update battle", err)
	}
	a.battle = next

	fields := logging.Fields{
		constants.LogFieldBattleID: a.id,
		constants.LogFieldSide:     string(role),
		constants.LogFieldTurn:     next.TurnNumber,
		constants.LogFieldStatus:   string(next.Status),
	}
	if resolved {
		logging.Info("turn resolved", fields)
	} else {
		logging.Debug("action recorded", fields)
	}

	if next.IsFinished() {
		a.finished()
	}
	if resolved {
		a.broadcast(log)
	}
	return &Outcome{Battle: next.Clone(), Resolved: resolved, Log: log}, nil
}

// fillAI commits the AI side's action once the barrier is only waiting on it.
func (a *battleActor) fillAI(b *game.Battle) {
	for _, role := range []game.SideRole{game.RolePlayer, game.RoleOpponent} {
		s := b.Side(role)
		if !s.IsAI() || s.PendingAction != nil {
			continue
		}
		switch b.Status {
		case game.StatusWaitingForSwitch:
			if !s.NeedsSwitch() {
				continue
			}
		case game.StatusWaitingForActions:
			if b.Side(role.Other()).PendingAction == nil {
				continue
			}
		default:
			continue
		}
		s.PendingAction = a.svc.engine.SelectAIAction(b, role, a.rng)
	}
}

func (a *battleActor) cancel(ctx context.Context, role game.SideRole) error {
	if a.battle.IsFinished() {
		return game.Illegalf("battle %s is finished", a.id)
	}
	s := a.battle.Side(role)
	if s == nil {
		return game.Invalidf("unknown side %q", role)
	}
	if s.PendingAction == nil {
		return game.Illegalf("%s has no pending action", role)
	}
	next := a.battle.Clone()
	next.Side(role).PendingAction = nil
	if err := a.svc.repo.UpdateBattle(ctx, next); err != nil {
		return game.Persistence("update battle", err)
	}
	a.battle = next
	if id := s.PartyIdentity; id != nil && *id != "" {
		a.svc.notify.Send(*id, EventActionCancelled, ActionCancelled{YourSide: role})
	}
	logging.Info("action cancelled", logging.Fields{constants.LogFieldBattleID: a.id, constants.LogFieldSide: string(role)})
	return nil
}

// finished credits the result and runs the end hooks. A stats failure is
// logged; the battle itself is already saved.
func (a *battleActor) finished() {
	b := a.battle
	ctx := context.Background()
	if err := a.svc.repo.UpdateStatsOnBattleEnd(ctx, b); err != nil {
		logging.Error("failed to update player stats", err, logging.Fields{constants.LogFieldBattleID: a.id})
	}
	logging.Info("battle finished", logging.Fields{
		constants.LogFieldBattleID: a.id,
		constants.LogFieldWinner:   string(b.Winner),
		constants.LogFieldTurn:     b.TurnNumber,
	})
	a.svc.mu.Lock()
	hooks := append([]func(*game.Battle){}, a.svc.endHooks...)
	a.svc.mu.Unlock()
	for _, fn := range hooks {
		fn(b.Clone())
	}
}

func (a *battleActor) broadcast(log []string) {
	b := a.battle
	for i := range b.Sides {
		s := &b.Sides[i]
		if s.IsAI() {
			continue
		}
		a.svc.notify.Send(*s.PartyIdentity, EventBattleUpdate, BattleUpdate{
			Battle:    b.Clone(),
			BattleLog: log,
			YourSide:  s.Role,
		})
		if b.IsFinished() {
			a.svc.notify.Send(*s.PartyIdentity, EventBattleEnd, BattleEnd{
				Winner:   b.Winner,
				YourSide: s.Role,
				Result:   resultFor(b.Winner, s.Role),
			})
		}
	}
}

func resultFor(w game.Winner, role game.SideRole) string {
	switch w {
	case game.WinnerDraw:
		return "draw"
	case role.Winner():
		return "win"
	default:
		return "lose"
	}
}
