package engine

import (
	"github.com/shotam27/NoGambleMonsterBattle/internal/game"
)

var sideOrder = [...]game.SideRole{game.RolePlayer, game.RoleOpponent}

// creature resolves a member's definition. A miss means the battle
// references an id the catalog no longer has, which is an internal error.
func (rc *turnContext) creature(m *game.PartyMember) *game.CreatureDefinition {
	def, err := rc.e.cat.Creature(m.CreatureID)
	if err != nil {
		rc.fail(err)
		return &game.CreatureDefinition{ID: m.CreatureID, Name: m.CreatureID, Stats: game.BaseStats{HP: m.MaxHP}}
	}
	return def
}

// label returns "<side>'s <creature name>" for log lines.
func (rc *turnContext) label(role game.SideRole, m *game.PartyMember) string {
	return sideLabel(rc.b.Side(role)) + "'s " + rc.creature(m).Name
}

// sideLabel prefers the player's display name over the role.
func sideLabel(s *game.Side) string {
	if s.PlayerName != "" {
		return s.PlayerName
	}
	if s.Role == game.RolePlayer {
		return "Player"
	}
	return "Opponent"
}
