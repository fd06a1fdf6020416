package storage

import (
	"context"
	"errors"

	"github.com/shotam27/NoGambleMonsterBattle/internal/game"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type sqliteRepository struct {
	db *gorm.DB
}

func NewSQLiteRepository(db *gorm.DB) Repository {
	return &sqliteRepository{db: db}
}

func (r *sqliteRepository) CreateBattle(ctx context.Context, b *game.Battle) error {
	return game.Persistence("create battle", r.db.WithContext(ctx).Create(b).Error)
}

func (r *sqliteRepository) GetBattleByID(ctx context.Context, id string) (*game.Battle, error) {
	var b game.Battle
	err := r.db.WithContext(ctx).Preload("Sides.Party").First(&b, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, game.NotFound("battle", id)
	}
	if err != nil {
		return nil, game.Persistence("load battle", err)
	}
	b.Normalize()
	return &b, nil
}

func (r *sqliteRepository) UpdateBattle(ctx context.Context, b *game.Battle) error {
	err := r.db.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(b).Error
	return game.Persistence("update battle", err)
}

func (r *sqliteRepository) UpdateStatsOnBattleEnd(ctx context.Context, b *game.Battle) error {
	deltas := resultDeltas(b)
	if len(deltas) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, d := range deltas {
			p := game.PlayerProfile{PlayerName: d.name, Wins: d.wins, Losses: d.losses, Draws: d.draws}
			err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "player_name"}},
				DoUpdates: clause.Assignments(map[string]interface{}{
					"wins":       gorm.Expr("player_profiles.wins + ?", d.wins),
					"losses":     gorm.Expr("player_profiles.losses + ?", d.losses),
					"draws":      gorm.Expr("player_profiles.draws + ?", d.draws),
					"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
				}),
			}).Create(&p).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
	return game.Persistence("update player stats", err)
}

// GetTopPlayers returns top N players ordered by wins desc, then draws desc.
func (r *sqliteRepository) GetTopPlayers(ctx context.Context, limit int) ([]game.PlayerProfile, error) {
	var users []game.PlayerProfile
	if err := r.db.WithContext(ctx).Model(&game.PlayerProfile{}).
		Order("wins DESC").
		Order("draws DESC").
		Order("losses ASC").
		Order("player_name ASC").
		Limit(normalizeLimit(limit)).
		Find(&users).Error; err != nil {
		return nil, game.Persistence("load leaderboard", err)
	}
	return users, nil
}

func (r *sqliteRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
