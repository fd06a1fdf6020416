package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/shotam27/NoGambleMonsterBattle/internal/constants"
	"github.com/shotam27/NoGambleMonsterBattle/internal/engine"
	"github.com/shotam27/NoGambleMonsterBattle/internal/game"
	"github.com/shotam27/NoGambleMonsterBattle/internal/logging"
)

// StartRequest opens a battle against the AI. An empty OpponentRoster draws
// a random one.
type StartRequest struct {
	// Identity optionally binds the player side to a live connection so it
	// receives battle events.
	Identity       string
	PlayerName     string
	Roster         []string
	OpponentRoster []string
	Rematch        bool
}

// Participant is one human side of a PvP battle.
type Participant struct {
	ConnID     string
	PlayerName string
	Roster     []string
}

func (s *Service) StartBattle(ctx context.Context, req StartRequest) (*game.Battle, error) {
	identity := req.Identity
	if identity == "" {
		// REST clients drive the player side through a ticket, not a
		// connection; the side still needs an identity to count as human.
		identity = uuid.NewString()
	}
	player := engine.SideSpec{Identity: &identity, PlayerName: req.PlayerName, Roster: req.Roster}
	opponent := engine.SideSpec{PlayerName: "AI", Roster: req.OpponentRoster}
	return s.start(ctx, game.ModeAI, player, opponent, req.Rematch)
}

// StartPvP opens a battle between two matched connections; p1 plays the
// player side.
func (s *Service) StartPvP(ctx context.Context, p1, p2 Participant) (*game.Battle, error) {
	if p1.ConnID == "" || p2.ConnID == "" {
		return nil, game.Invalidf("pvp participants need connection ids")
	}
	id1, id2 := p1.ConnID, p2.ConnID
	return s.start(ctx, game.ModePvP,
		engine.SideSpec{Identity: &id1, PlayerName: p1.PlayerName, Roster: p1.Roster},
		engine.SideSpec{Identity: &id2, PlayerName: p2.PlayerName, Roster: p2.Roster},
		false)
}

func (s *Service) start(ctx context.Context, mode game.BattleMode, player, opponent engine.SideSpec, rematch bool) (*game.Battle, error) {
	b, err := s.engine.NewBattle(uuid.NewString(), mode, player, opponent, rematch, s.newRand())
	if err != nil {
		return nil, err
	}
	if err := s.repo.CreateBattle(ctx, b); err != nil {
		logging.Error("failed to create battle", err, logging.Fields{constants.LogFieldBattleID: b.ID})
		return nil, game.Persistence("create battle", err)
	}
	if _, err := s.spawn(b.Clone()); err != nil {
		return nil, err
	}
	logging.Info("battle created", logging.Fields{
		constants.LogFieldBattleID: b.ID,
		constants.LogFieldMode:     string(mode),
		"rematch":                  b.Rematch,
	})
	return b, nil
}

// SubmitAction records a side's action. When the barrier releases, every
// ready turn is resolved and saved in one step.
func (s *Service) SubmitAction(ctx context.Context, battleID string, role game.SideRole, action *game.Action) (*Outcome, error) {
	r, err := s.withActor(ctx, battleID, command{kind: cmdSubmit, role: role, action: action})
	if err != nil {
		return nil, err
	}
	return r.outcome, nil
}

// CancelAction withdraws a side's pending action before the turn resolves.
func (s *Service) CancelAction(ctx context.Context, battleID string, role game.SideRole) (*game.Battle, error) {
	r, err := s.withActor(ctx, battleID, command{kind: cmdCancel, role: role})
	if err != nil {
		return nil, err
	}
	return r.battle, nil
}

// GetStatus returns a snapshot of the battle. Finished battles are read from
// the store without starting an actor.
func (s *Service) GetStatus(ctx context.Context, battleID string) (*game.Battle, error) {
	if a := s.lookup(battleID); a != nil {
		r, err := a.send(ctx, command{kind: cmdStatus})
		if err == nil {
			return r.battle, nil
		}
		if err != errActorStopped {
			return nil, err
		}
	}
	return s.repo.GetBattleByID(ctx, battleID)
}
