package service

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/shotam27/NoGambleMonsterBattle/internal/constants"
	"github.com/shotam27/NoGambleMonsterBattle/internal/dedupe"
	"github.com/shotam27/NoGambleMonsterBattle/internal/engine"
	"github.com/shotam27/NoGambleMonsterBattle/internal/game"
	"github.com/shotam27/NoGambleMonsterBattle/internal/logging"
	"github.com/shotam27/NoGambleMonsterBattle/internal/storage"
)

// Event names delivered to battle participants.
const (
	EventBattleUpdate    = "battle-update"
	EventBattleEnd       = "battle-end"
	EventActionCancelled = "action-cancelled"
)

// Notifier delivers an event to one connection, fire-and-forget.
type Notifier interface {
	Send(connID, event string, payload interface{})
}

// NopNotifier drops every event.
type NopNotifier struct{}

func (NopNotifier) Send(string, string, interface{}) {}

type BattleUpdate struct {
	Battle    *game.Battle  `json:"battle"`
	BattleLog []string      `json:"battleLog"`
	YourSide  game.SideRole `json:"yourSide"`
}

type BattleEnd struct {
	Winner   game.Winner   `json:"winner"`
	YourSide game.SideRole `json:"yourSide"`
	// Result is "win", "lose" or "draw" from the recipient's point of view.
	Result string `json:"result"`
}

type ActionCancelled struct {
	YourSide game.SideRole `json:"yourSide"`
}

// Outcome is what a submission produced.
type Outcome struct {
	Battle   *game.Battle
	Resolved bool
	Log      []string
}

type Options struct {
	// Seed fixes the AI random source; 0 seeds from the clock.
	Seed int64
}

// Service owns the live battles. Each battle id is served by one actor
// goroutine; the service lock only guards the actor table.
type Service struct {
	repo   storage.Repository
	engine *engine.Engine
	notify Notifier

	seedMu sync.Mutex
	seeds  *rand.Rand

	mu        sync.Mutex
	actors    map[string]*battleActor
	loads     dedupe.Group[*battleActor]
	endHooks  []func(*game.Battle)
	closed    bool
	actorWait sync.WaitGroup
}

func New(repo storage.Repository, eng *engine.Engine, notify Notifier, opts Options) *Service {
	if notify == nil {
		notify = NopNotifier{}
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Service{
		repo:   repo,
		engine: eng,
		notify: notify,
		seeds:  rand.New(rand.NewSource(seed)),
		actors: make(map[string]*battleActor),
	}
}

// OnBattleEnd registers fn to run after a finished battle was saved. Hooks
// run on the battle's actor and must not call back into it.
func (s *Service) OnBattleEnd(fn func(*game.Battle)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.endHooks = append(s.endHooks, fn)
}

func (s *Service) newRand() *rand.Rand {
	s.seedMu.Lock()
	defer s.seedMu.Unlock()
	return rand.New(rand.NewSource(s.seeds.Int63()))
}

// actorFor returns the live actor of a battle, loading it from the store
// once when several callers race for the same id.
func (s *Service) actorFor(ctx context.Context, id string) (*battleActor, error) {
	if a := s.lookup(id); a != nil {
		return a, nil
	}
	a, _, err := s.loads.Do(id, func() (*battleActor, error) {
		if a := s.lookup(id); a != nil {
			return a, nil
		}
		b, err := s.repo.GetBattleByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if b.IsFinished() {
			return nil, game.Illegalf("battle %s is finished", id)
		}
		return s.spawn(b)
	})
	return a, err
}

func (s *Service) lookup(id string) *battleActor {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.actors[id]
}

func (s *Service) spawn(b *game.Battle) (*battleActor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrServiceClosed
	}
	if a := s.actors[b.ID]; a != nil {
		return a, nil
	}
	a := newBattleActor(s, b, s.newRand())
	s.actors[b.ID] = a
	s.actorWait.Add(1)
	go func() {
		defer s.actorWait.Done()
		a.run()
	}()
	logging.Debug("battle actor started", logging.Fields{constants.LogFieldBattleID: b.ID})
	return a, nil
}

// forget removes a stopped actor, unless a newer one already replaced it.
func (s *Service) forget(a *battleActor) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.actors[a.id] == a {
		delete(s.actors, a.id)
	}
}

// withActor sends cmd to the battle's actor, retrying once when the actor
// stopped between lookup and delivery.
func (s *Service) withActor(ctx context.Context, id string, cmd command) (reply, error) {
	for attempt := 0; ; attempt++ {
		a, err := s.actorFor(ctx, id)
		if err != nil {
			return reply{}, err
		}
		r, err := a.send(ctx, cmd)
		if err == errActorStopped && attempt == 0 {
			continue
		}
		if err != nil {
			return reply{}, err
		}
		return r, r.err
	}
}

// Stop terminates the actor of a battle without changing the battle record.
func (s *Service) Stop(ctx context.Context, battleID string) error {
	a := s.lookup(battleID)
	if a == nil {
		return nil
	}
	_, err := a.send(ctx, command{kind: cmdStop})
	if err == errActorStopped {
		return nil
	}
	return err
}

// Close stops every actor and waits for them to exit.
func (s *Service) Close(ctx context.Context) error {
	s.mu.Lock()
	s.closed = true
	actors := make([]*battleActor, 0, len(s.actors))
	for _, a := range s.actors {
		actors = append(actors, a)
	}
	s.mu.Unlock()
	for _, a := range actors {
		if _, err := a.send(ctx, command{kind: cmdStop}); err != nil && err != errActorStopped {
			return err
		}
	}
	done := make(chan struct{})
	go func() {
		s.actorWait.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// LiveBattles reports how many actors are running.
func (s *Service) LiveBattles() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.actors)
}
