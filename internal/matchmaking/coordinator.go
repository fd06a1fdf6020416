package matchmaking

import (
	"context"

	"github.com/shotam27/NoGambleMonsterBattle/internal/catalog"
	"github.com/shotam27/NoGambleMonsterBattle/internal/constants"
	"github.com/shotam27/NoGambleMonsterBattle/internal/game"
	"github.com/shotam27/NoGambleMonsterBattle/internal/logging"
	"github.com/shotam27/NoGambleMonsterBattle/internal/service"
)

// Events sent by the coordinator.
const (
	EventQueueUpdate          = "queue-update"
	EventMatchFound           = "match-found"
	EventOpponentDisconnected = "opponent-disconnected"
	EventError                = "error"
)

type QueueUpdate struct {
	WaitingPlayers int `json:"waitingPlayers"`
}

type MatchFound struct {
	BattleID string        `json:"battleId"`
	YourSide game.SideRole `json:"yourSide"`
}

type OpponentDisconnected struct {
	BattleID string `json:"battleId"`
}

type ErrorEvent struct {
	Message string `json:"message"`
}

// Battles is the part of the battle service the coordinator drives.
type Battles interface {
	StartPvP(ctx context.Context, p1, p2 service.Participant) (*game.Battle, error)
	SubmitAction(ctx context.Context, battleID string, role game.SideRole, action *game.Action) (*service.Outcome, error)
	CancelAction(ctx context.Context, battleID string, role game.SideRole) (*game.Battle, error)
	Stop(ctx context.Context, battleID string) error
}

// Coordinator turns connection events into queue, registry and battle
// operations.
type Coordinator struct {
	battles  Battles
	queue    *Queue
	registry *Registry
	cat      catalog.Lookup
	notify   service.Notifier
}

func NewCoordinator(battles Battles, queue *Queue, registry *Registry, cat catalog.Lookup, notify service.Notifier) *Coordinator {
	return &Coordinator{battles: battles, queue: queue, registry: registry, cat: cat, notify: notify}
}

// JoinQueue validates the roster and waits for an opponent. When a pair forms
// the battle is started and both sides get match-found.
func (c *Coordinator) JoinQueue(ctx context.Context, connID, playerName string, roster []string) error {
	if _, busy := c.registry.BattleOf(connID); busy {
		return game.Illegalf("connection %s is already in a battle", connID)
	}
	if err := c.checkRoster(roster); err != nil {
		return err
	}
	pair, matched := c.queue.Join(Entry{ConnID: connID, PlayerName: playerName, Roster: append([]string(nil), roster...)})
	logging.Info("player joined queue", logging.Fields{constants.LogFieldConnID: connID, constants.LogFieldWaiting: c.queue.Len()})
	if !matched {
		c.broadcastQueue()
		return nil
	}
	return c.startMatch(ctx, pair)
}

func (c *Coordinator) startMatch(ctx context.Context, pair [2]Entry) error {
	p1, p2 := pair[0], pair[1]
	b, err := c.battles.StartPvP(ctx,
		service.Participant{ConnID: p1.ConnID, PlayerName: p1.PlayerName, Roster: p1.Roster},
		service.Participant{ConnID: p2.ConnID, PlayerName: p2.PlayerName, Roster: p2.Roster})
	if err != nil {
		logging.Error("failed to start pvp battle", err, logging.Fields{constants.LogFieldConnID: p1.ConnID})
		for _, e := range pair {
			c.notify.Send(e.ConnID, EventError, ErrorEvent{Message: constants.ErrFailedCreateBattle})
		}
		return err
	}
	c.registry.Register(b.ID, p1.ConnID, p2.ConnID)
	c.notify.Send(p1.ConnID, EventMatchFound, MatchFound{BattleID: b.ID, YourSide: game.RolePlayer})
	c.notify.Send(p2.ConnID, EventMatchFound, MatchFound{BattleID: b.ID, YourSide: game.RoleOpponent})
	logging.Info("match found", logging.Fields{constants.LogFieldBattleID: b.ID})
	c.broadcastQueue()
	return nil
}

func (c *Coordinator) checkRoster(roster []string) error {
	if len(roster) != game.PartySize {
		return game.Invalidf("roster must have exactly %d creatures, got %d", game.PartySize, len(roster))
	}
	for _, id := range roster {
		if _, err := c.cat.Creature(id); err != nil {
			return game.Invalidf("unknown creature %q", id)
		}
	}
	return nil
}

// LeaveQueue removes a waiting connection.
func (c *Coordinator) LeaveQueue(connID string) bool {
	if !c.queue.Cancel(connID) {
		return false
	}
	c.broadcastQueue()
	return true
}

// SubmitAction routes a connection's action to the battle it plays.
func (c *Coordinator) SubmitAction(ctx context.Context, connID string, action *game.Action) (*service.Outcome, error) {
	battleID, role, err := c.seat(connID)
	if err != nil {
		return nil, err
	}
	return c.battles.SubmitAction(ctx, battleID, role, action)
}

// CancelAction withdraws the connection's pending action.
func (c *Coordinator) CancelAction(ctx context.Context, connID string) error {
	battleID, role, err := c.seat(connID)
	if err != nil {
		return err
	}
	_, err = c.battles.CancelAction(ctx, battleID, role)
	return err
}

func (c *Coordinator) seat(connID string) (string, game.SideRole, error) {
	battleID, ok := c.registry.BattleOf(connID)
	if !ok {
		return "", "", game.Illegalf("connection %s is not in a battle", connID)
	}
	conns, _ := c.registry.Connections(battleID)
	if conns[0] == connID {
		return battleID, game.RolePlayer, nil
	}
	return battleID, game.RoleOpponent, nil
}

// Disconnect cleans up after a closed connection. A battle in progress is
// abandoned: the opponent is told, the actor stops and the stored battle is
// left as it was.
func (c *Coordinator) Disconnect(ctx context.Context, connID string) {
	c.LeaveQueue(connID)
	battleID, ok := c.registry.BattleOf(connID)
	if !ok {
		return
	}
	if opp, ok := c.registry.Opponent(connID); ok {
		c.notify.Send(opp, EventOpponentDisconnected, OpponentDisconnected{BattleID: battleID})
	}
	c.registry.Remove(battleID)
	if err := c.battles.Stop(ctx, battleID); err != nil {
		logging.Error("failed to stop battle", err, logging.Fields{constants.LogFieldBattleID: battleID})
	}
	logging.Info("player disconnected", logging.Fields{constants.LogFieldConnID: connID, constants.LogFieldBattleID: battleID})
}

// BattleEnded releases the registry entry of a finished battle. It is
// registered as a battle service end hook.
func (c *Coordinator) BattleEnded(b *game.Battle) {
	c.registry.Remove(b.ID)
}

func (c *Coordinator) broadcastQueue() {
	waiting := c.queue.Waiting()
	for _, conn := range waiting {
		c.notify.Send(conn, EventQueueUpdate, QueueUpdate{WaitingPlayers: len(waiting)})
	}
}
