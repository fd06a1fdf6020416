package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shotam27/NoGambleMonsterBattle/internal/catalog"
	"github.com/shotam27/NoGambleMonsterBattle/internal/engine"
	"github.com/shotam27/NoGambleMonsterBattle/internal/game"

	"github.com/stretchr/testify/require"
)

var errDiskFull = errors.New("disk full")

// fakeRepo keeps clones in memory so callers cannot alias stored state.
type fakeRepo struct {
	mu         sync.Mutex
	battles    map[string]*game.Battle
	failUpdate bool
	updates    int
	statsCalls int
}

func newFakeRepo() *fakeRepo { return &fakeRepo{battles: map[string]*game.Battle{}} }

func (r *fakeRepo) CreateBattle(_ context.Context, b *game.Battle) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.battles[b.ID] = b.Clone()
	return nil
}

func (r *fakeRepo) GetBattleByID(_ context.Context, id string) (*game.Battle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.battles[id]
	if !ok {
		return nil, game.NotFound("battle", id)
	}
	return b.Clone(), nil
}

func (r *fakeRepo) UpdateBattle(_ context.Context, b *game.Battle) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failUpdate {
		return errDiskFull
	}
	r.updates++
	r.battles[b.ID] = b.Clone()
	return nil
}

func (r *fakeRepo) UpdateStatsOnBattleEnd(context.Context, *game.Battle) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.statsCalls++
	return nil
}

func (r *fakeRepo) GetTopPlayers(context.Context, int) ([]game.PlayerProfile, error) {
	return nil, nil
}

func (r *fakeRepo) Close() error { return nil }

func (r *fakeRepo) setFailUpdate(v bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failUpdate = v
}

func (r *fakeRepo) stored(id string) *game.Battle {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.battles[id].Clone()
}

type sentEvent struct {
	connID  string
	event   string
	payload interface{}
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []sentEvent
}

func (n *fakeNotifier) Send(connID, event string, payload interface{}) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, sentEvent{connID, event, payload})
}

func (n *fakeNotifier) events(connID, event string) []sentEvent {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []sentEvent
	for _, e := range n.sent {
		if e.connID == connID && e.event == event {
			out = append(out, e)
		}
	}
	return out
}

func (n *fakeNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.sent)
}

// dart outruns and one-shots slug; poke is a weak neutral hit.
func newTestEngine(t *testing.T) *engine.Engine {
	t.Helper()
	moves := []game.MoveDefinition{
		{ID: "poke", Type: game.TypeNormal, Power: 10, Category: game.CategoryPhysical},
		{ID: "nuke", Type: game.TypeNormal, Power: 400, Category: game.CategoryPhysical},
	}
	mk := func(id string, hp, speed int) game.CreatureDefinition {
		return game.CreatureDefinition{
			ID:      id,
			Types:   []game.Type{game.TypeFire},
			Stats:   game.BaseStats{HP: hp, Attack: 100, Defense: 100, MagicAttack: 100, MagicDefense: 100, Speed: speed},
			MoveIDs: []string{"poke", "nuke"},
		}
	}
	cat, err := catalog.New([]game.CreatureDefinition{
		mk("dart", 30, 200),
		mk("slug", 30, 10),
		mk("brick", 200, 50),
	}, moves, nil)
	require.NoError(t, err)
	return engine.New(cat)
}

func newTestService(t *testing.T) (*Service, *fakeRepo, *fakeNotifier) {
	t.Helper()
	repo := newFakeRepo()
	notes := &fakeNotifier{}
	svc := New(repo, newTestEngine(t), notes, Options{Seed: 42})
	t.Cleanup(func() { _ = svc.Close(context.Background()) })
	return svc, repo, notes
}

var (
	darts  = []string{"dart", "dart", "dart"}
	slugs  = []string{"slug", "slug", "slug"}
	bricks = []string{"brick", "brick", "brick"}
)

func startPvP(t *testing.T, svc *Service) *game.Battle {
	t.Helper()
	b, err := svc.StartPvP(context.Background(),
		Participant{ConnID: "conn-1", PlayerName: "Ash", Roster: bricks},
		Participant{ConnID: "conn-2", PlayerName: "Gary", Roster: bricks})
	require.NoError(t, err)
	return b
}
