package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/shotam27/NoGambleMonsterBattle/internal/constants"
	"github.com/shotam27/NoGambleMonsterBattle/internal/game"
	"github.com/shotam27/NoGambleMonsterBattle/internal/logging"
	"github.com/shotam27/NoGambleMonsterBattle/internal/matchmaking"
	"github.com/shotam27/NoGambleMonsterBattle/internal/service"
)

// Client message types.
const (
	msgJoinQueue    = "join-queue"
	msgLeaveQueue   = "leave-queue"
	msgSubmitAction = "submit-action"
	msgCancelAction = "cancel-action"

	// EventConnected tells a client its connection id.
	EventConnected = "connected"
)

// Matchmaker is the coordinator surface websocket clients drive.
type Matchmaker interface {
	JoinQueue(ctx context.Context, connID, playerName string, roster []string) error
	LeaveQueue(connID string) bool
	SubmitAction(ctx context.Context, connID string, action *game.Action) (*service.Outcome, error)
	CancelAction(ctx context.Context, connID string) error
	Disconnect(ctx context.Context, connID string)
}

type clientMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type joinQueueData struct {
	PlayerName string   `json:"playerName"`
	Roster     []string `json:"roster"`
}

type submitActionData struct {
	Type        game.ActionType `json:"type"`
	MoveID      string          `json:"moveId"`
	TargetIndex int             `json:"targetIndex"`
}

type Connected struct {
	ConnectionID string `json:"connectionId"`
}

// WebsocketHandler upgrades clients and feeds their messages to the
// matchmaking coordinator.
type WebsocketHandler struct {
	hub      *Hub
	mm       Matchmaker
	upgrader websocket.Upgrader
}

func NewWebsocketHandler(hub *Hub, mm Matchmaker) *WebsocketHandler {
	return &WebsocketHandler{
		hub: hub,
		mm:  mm,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

func (h *WebsocketHandler) Serve(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logging.Warn("websocket upgrade failed", logging.Fields{"error": err.Error()})
		return
	}
	cl := h.hub.register(uuid.NewString(), conn)
	logging.Info("websocket connected", logging.Fields{constants.LogFieldConnID: cl.id})
	h.hub.Send(cl.id, EventConnected, Connected{ConnectionID: cl.id})

	defer func() {
		h.mm.Disconnect(context.Background(), cl.id)
		h.hub.unregister(cl)
		logging.Info("websocket closed", logging.Fields{constants.LogFieldConnID: cl.id})
	}()

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		var msg clientMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logging.Warn("websocket read failed", logging.Fields{constants.LogFieldConnID: cl.id, "error": err.Error()})
			}
			return
		}
		if err := h.dispatch(c.Request.Context(), cl.id, msg); err != nil {
			h.hub.Send(cl.id, matchmaking.EventError, matchmaking.ErrorEvent{Message: clientError(err)})
		}
	}
}

func (h *WebsocketHandler) dispatch(ctx context.Context, connID string, msg clientMessage) error {
	switch msg.Type {
	case msgJoinQueue:
		var d joinQueueData
		if err := json.Unmarshal(msg.Data, &d); err != nil {
			return game.Invalidf("malformed %s payload", msgJoinQueue)
		}
		return h.mm.JoinQueue(ctx, connID, d.PlayerName, d.Roster)
	case msgLeaveQueue:
		h.mm.LeaveQueue(connID)
		return nil
	case msgSubmitAction:
		var d submitActionData
		if err := json.Unmarshal(msg.Data, &d); err != nil {
			return game.Invalidf("malformed %s payload", msgSubmitAction)
		}
		_, err := h.mm.SubmitAction(ctx, connID, &game.Action{Type: d.Type, MoveID: d.MoveID, TargetIndex: d.TargetIndex})
		return err
	case msgCancelAction:
		return h.mm.CancelAction(ctx, connID)
	default:
		return game.Invalidf("%s: %q", constants.ErrUnknownMessage, msg.Type)
	}
}

// clientError hides store failures from clients.
func clientError(err error) string {
	if game.IsPersistence(err) {
		logging.Error(constants.ErrFailedStoreAction, err, nil)
		return constants.ErrFailedStoreAction
	}
	return err.Error()
}
