package engine

import (
	"math/rand"

	"github.com/shotam27/NoGambleMonsterBattle/internal/game"
)

// SideSpec describes one combatant at battle creation. A nil Identity makes
// the side AI controlled.
type SideSpec struct {
	Identity   *string
	PlayerName string
	Roster     []string
}

// NewBattle builds a fresh battle. An AI opponent with an empty roster gets
// a random one.
func (e *Engine) NewBattle(id string, mode game.BattleMode, player, opponent SideSpec, rematch bool, rng *rand.Rand) (*game.Battle, error) {
	if opponent.Identity == nil && len(opponent.Roster) == 0 {
		opponent.Roster = e.cat.RandomRoster(rng, game.PartySize)
	}
	b := &game.Battle{
		ID:         id,
		Mode:       mode,
		Status:     game.StatusWaitingForActions,
		Winner:     game.WinnerNone,
		TurnNumber: 1,
		Rematch:    rematch && mode == game.ModeAI,
	}
	for _, sp := range []struct {
		role game.SideRole
		spec SideSpec
	}{{game.RolePlayer, player}, {game.RoleOpponent, opponent}} {
		side, err := e.newSide(sp.role, sp.spec)
		if err != nil {
			return nil, err
		}
		b.Sides = append(b.Sides, side)
	}

	rc := e.newTurnContext(b, rng)
	for _, role := range sideOrder {
		rc.onEntry(role)
	}
	if rc.err != nil {
		return nil, rc.err
	}
	b.LastLog = rc.log
	return b, nil
}

func (e *Engine) newSide(role game.SideRole, spec SideSpec) (game.Side, error) {
	if len(spec.Roster) != game.PartySize {
		return game.Side{}, game.Invalidf("%s roster must have exactly %d creatures, got %d", role, game.PartySize, len(spec.Roster))
	}
	s := game.Side{Role: role, PlayerName: spec.PlayerName}
	if spec.Identity != nil {
		id := *spec.Identity
		s.PartyIdentity = &id
	}
	for i, cid := range spec.Roster {
		def, err := e.cat.Creature(cid)
		if err != nil {
			return game.Side{}, game.Invalidf("unknown creature %q", cid)
		}
		s.Party = append(s.Party, game.NewPartyMember(i, def))
	}
	return s, nil
}
