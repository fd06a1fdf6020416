package api

import (
	"context"

	"github.com/shotam27/NoGambleMonsterBattle/internal/game"
	"github.com/shotam27/NoGambleMonsterBattle/internal/service"
)

// BattleService is the battle surface the REST handlers drive.
type BattleService interface {
	StartBattle(ctx context.Context, req service.StartRequest) (*game.Battle, error)
	SubmitAction(ctx context.Context, battleID string, role game.SideRole, action *game.Action) (*service.Outcome, error)
	CancelAction(ctx context.Context, battleID string, role game.SideRole) (*game.Battle, error)
	GetStatus(ctx context.Context, battleID string) (*game.Battle, error)
}

// CatalogReader lists the static definitions.
type CatalogReader interface {
	Creatures() []game.CreatureDefinition
	Moves() []game.MoveDefinition
	Abilities() []game.AbilityDefinition
}

type Leaderboard interface {
	GetTopPlayers(ctx context.Context, limit int) ([]game.PlayerProfile, error)
}

// BattleHandler groups all battle-related HTTP handlers.
type BattleHandler struct {
	battles         BattleService
	catalog         CatalogReader
	leaderboard     Leaderboard
	tickets         *Tickets
	leaderboardSize int
}

// NewBattleHandler creates a BattleHandler. leaderboardSize is the row count
// used when a request gives no limit.
func NewBattleHandler(battles BattleService, cat CatalogReader, lb Leaderboard, tickets *Tickets, leaderboardSize int) *BattleHandler {
	return &BattleHandler{
		battles:         battles,
		catalog:         cat,
		leaderboard:     lb,
		tickets:         tickets,
		leaderboardSize: leaderboardSize,
	}
}
