package storage

import (
	"context"

	"github.com/shotam27/NoGambleMonsterBattle/internal/game"
)

// Repository persists battles and player profiles. GetBattleByID returns a
// game.NotFoundError for unknown ids.
type Repository interface {
	CreateBattle(ctx context.Context, b *game.Battle) error
	GetBattleByID(ctx context.Context, id string) (*game.Battle, error)
	UpdateBattle(ctx context.Context, b *game.Battle) error
	// UpdateStatsOnBattleEnd credits the result of a finished battle to the
	// named human sides.
	UpdateStatsOnBattleEnd(ctx context.Context, b *game.Battle) error
	// Leaderboard
	GetTopPlayers(ctx context.Context, limit int) ([]game.PlayerProfile, error)
	Close() error
}

// statDelta is the profile change one side earns from a finished battle.
type statDelta struct {
	name                string
	wins, losses, draws int
}

// resultDeltas lists per-side deltas for human sides with a display name.
func resultDeltas(b *game.Battle) []statDelta {
	if !b.IsFinished() {
		return nil
	}
	var out []statDelta
	for i := range b.Sides {
		s := &b.Sides[i]
		if s.IsAI() || s.PlayerName == "" {
			continue
		}
		d := statDelta{name: s.PlayerName}
		switch b.Winner {
		case game.WinnerDraw:
			d.draws = 1
		case s.Role.Winner():
			d.wins = 1
		case game.WinnerNone:
			continue
		default:
			d.losses = 1
		}
		out = append(out, d)
	}
	return out
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return 10
	}
	return limit
}
