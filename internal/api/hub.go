package api

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/shotam27/NoGambleMonsterBattle/internal/constants"
	"github.com/shotam27/NoGambleMonsterBattle/internal/logging"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBuffer     = 32
)

// envelope is the wire shape of every server event.
type envelope struct {
	Type string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
}

type wsClient struct {
	id   string
	conn *websocket.Conn
	send chan envelope
}

// Hub tracks open websocket connections and delivers events to them. It is
// the battle service's Notifier.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*wsClient
}

func NewHub() *Hub {
	return &Hub{clients: make(map[string]*wsClient)}
}

// Send queues an event for connID. Unknown connections and full buffers drop
// the event.
func (h *Hub) Send(connID, event string, payload interface{}) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	cl, ok := h.clients[connID]
	if !ok {
		return
	}
	select {
	case cl.send <- envelope{Type: event, Data: payload}:
	default:
		logging.Warn("dropping websocket event, client too slow", logging.Fields{
			constants.LogFieldConnID: connID,
			constants.LogFieldEvent:  event,
		})
	}
}

func (h *Hub) register(id string, conn *websocket.Conn) *wsClient {
	cl := &wsClient{id: id, conn: conn, send: make(chan envelope, sendBuffer)}
	h.mu.Lock()
	h.clients[id] = cl
	h.mu.Unlock()
	go cl.writeLoop()
	return cl
}

func (h *Hub) unregister(cl *wsClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[cl.id] == cl {
		delete(h.clients, cl.id)
		close(cl.send)
	}
}

// Len reports the number of open connections.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// writeLoop is the only writer of the connection.
func (cl *wsClient) writeLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = cl.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-cl.send:
			_ = cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = cl.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := cl.conn.WriteJSON(msg); err != nil {
				logging.Warn("websocket write failed", logging.Fields{constants.LogFieldConnID: cl.id, "error": err.Error()})
				return
			}
		case <-ticker.C:
			_ = cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := cl.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
