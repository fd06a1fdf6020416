package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shotam27/NoGambleMonsterBattle/internal/game"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// postgresRepository stores each battle as one JSONB document; the scalar
// columns mirror it for indexing.
type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository connects to PostgreSQL. Migrations must already
// have run.
func NewPostgresRepository(ctx context.Context, dsn string) (Repository, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return &postgresRepository{pool: pool}, nil
}

func (r *postgresRepository) CreateBattle(ctx context.Context, b *game.Battle) error {
	now := time.Now().UTC()
	b.CreatedAt, b.UpdatedAt = now, now
	doc, err := json.Marshal(b)
	if err != nil {
		return game.Persistence("encode battle", err)
	}
	_, err = r.pool.Exec(ctx,
		`INSERT INTO battles (id, mode, status, winner, turn_number, document, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $7)`,
		b.ID, string(b.Mode), string(b.Status), string(b.Winner), b.TurnNumber, doc, now,
	)
	return game.Persistence("create battle", err)
}

func (r *postgresRepository) GetBattleByID(ctx context.Context, id string) (*game.Battle, error) {
	var doc []byte
	err := r.pool.QueryRow(ctx, `SELECT document FROM battles WHERE id = $1`, id).Scan(&doc)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, game.NotFound("battle", id)
	}
	if err != nil {
		return nil, game.Persistence("load battle", err)
	}
	var b game.Battle
	if err := json.Unmarshal(doc, &b); err != nil {
		return nil, game.Persistence("decode battle", err)
	}
	b.Normalize()
	return &b, nil
}

func (r *postgresRepository) UpdateBattle(ctx context.Context, b *game.Battle) error {
	b.UpdatedAt = time.Now().UTC()
	doc, err := json.Marshal(b)
	if err != nil {
		return game.Persistence("encode battle", err)
	}
	tag, err := r.pool.Exec(ctx,
		`UPDATE battles SET status = $2, winner = $3, turn_number = $4, document = $5, updated_at = $6
		 WHERE id = $1`,
		b.ID, string(b.Status), string(b.Winner), b.TurnNumber, doc, b.UpdatedAt,
	)
	if err != nil {
		return game.Persistence("update battle", err)
	}
	if tag.RowsAffected() == 0 {
		return game.NotFound("battle", b.ID)
	}
	return nil
}

func (r *postgresRepository) UpdateStatsOnBattleEnd(ctx context.Context, b *game.Battle) error {
	deltas := resultDeltas(b)
	if len(deltas) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, d := range deltas {
		batch.Queue(
			`INSERT INTO player_profiles (player_name, wins, losses, draws, updated_at)
			 VALUES ($1, $2, $3, $4, now())
			 ON CONFLICT (player_name) DO UPDATE SET
			   wins = player_profiles.wins + EXCLUDED.wins,
			   losses = player_profiles.losses + EXCLUDED.losses,
			   draws = player_profiles.draws + EXCLUDED.draws,
			   updated_at = now()`,
			d.name, d.wins, d.losses, d.draws,
		)
	}
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return game.Persistence("update player stats", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return game.Persistence("update player stats", err)
	}
	return game.Persistence("update player stats", tx.Commit(ctx))
}

func (r *postgresRepository) GetTopPlayers(ctx context.Context, limit int) ([]game.PlayerProfile, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT player_name, wins, losses, draws, updated_at FROM player_profiles
		 ORDER BY wins DESC, draws DESC, losses ASC, player_name ASC LIMIT $1`,
		normalizeLimit(limit),
	)
	if err != nil {
		return nil, game.Persistence("load leaderboard", err)
	}
	defer rows.Close()
	var out []game.PlayerProfile
	for rows.Next() {
		var p game.PlayerProfile
		if err := rows.Scan(&p.PlayerName, &p.Wins, &p.Losses, &p.Draws, &p.UpdatedAt); err != nil {
			return nil, game.Persistence("load leaderboard", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, game.Persistence("load leaderboard", err)
	}
	return out, nil
}

func (r *postgresRepository) Close() error {
	r.pool.Close()
	return nil
}
