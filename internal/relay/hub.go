package relay

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/san-kum/golfsim/internal/session"
	"github.com/san-kum/golfsim/internal/shot"
	"github.com/san-kum/golfsim/internal/terrain"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 30 * time.Second
	maxMessageSize = 4096

	DefaultSendBuffer = 64
)

var ErrClosed = errors.New("relay: hub closed")

// Hub relays remote app actions into the session command channel and
// broadcasts session notifications back to every connected client.
type Hub struct {
	log        *zap.Logger
	commands   chan<- session.Command
	sendBuffer int
	upgrader   websocket.Upgrader

	mu      sync.RWMutex
	clients map[uuid.UUID]*Client
	done    chan struct{}
	closed  bool
}

type Client struct {
	ID   uuid.UUID
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

func NewHub(log *zap.Logger, commands chan<- session.Command, sendBuffer int) *Hub {
	if log == nil {
		log = zap.NewNop()
	}
	if sendBuffer <= 0 {
		sendBuffer = DefaultSendBuffer
	}
	return &Hub{
		log:        log,
		commands:   commands,
		sendBuffer: sendBuffer,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The remote app is served from anywhere on the local network.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		clients: make(map[uuid.UUID]*Client),
		done:    make(chan struct{}),
	}
}

func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	c := &Client{ID: uuid.New(), hub: h, conn: conn, send: make(chan []byte, h.sendBuffer)}
	if err := h.register(c); err != nil {
		conn.Close()
		return
	}
	h.log.Info("client connected", zap.Stringer("client", c.ID), zap.String("remote", r.RemoteAddr))

	go c.writePump()
	c.readPump()
}

func (h *Hub) register(c *Client) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return ErrClosed
	}
	h.clients[c.ID] = c
	return nil
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c.ID]; ok {
		delete(h.clients, c.ID)
		close(c.send)
		h.log.Info("client disconnected", zap.Stringer("client", c.ID))
	}
}

func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close disconnects every client and stops accepting new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	close(h.done)
	for id, c := range h.clients {
		delete(h.clients, id)
		close(c.send)
	}
}

// Broadcast queues msg for every client. Slow clients drop messages rather
// than block the caller.
func (h *Hub) Broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.log.Error("marshal broadcast", zap.String("type", msg.Type), zap.Error(err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.clients {
		select {
		case c.send <- data:
		default:
			h.log.Warn("client send buffer full, dropping message",
				zap.Stringer("client", c.ID), zap.String("type", msg.Type))
		}
	}
}

func (h *Hub) reply(c *Client, msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	if _, ok := h.clients[c.ID]; !ok {
		return
	}
	select {
	case c.send <- data:
	default:
	}
}

// dispatch hands cmd to the session loop, waiting until the loop takes it
// or the hub closes.
func (h *Hub) dispatch(cmd session.Command) error {
	select {
	case h.commands <- cmd:
		return nil
	case <-h.done:
		return ErrClosed
	}
}

func (h *Hub) StateChanged(from, to session.State) {
	h.Broadcast(Message{Type: MsgStateChanged, Data: StateChange{From: from, To: to}})
}

func (h *Hub) ShotRecorded(r shot.Result) {
	h.Broadcast(Message{Type: MsgShotResult, Data: ShotResult{Result: r}})
}

func (h *Hub) CameraModeChanged(mode session.CameraMode) {
	h.Broadcast(Message{Type: MsgCameraModeChanged, Data: CameraChange{Mode: mode}})
}

func (h *Hub) AudioCue(cue terrain.Cue) {
	h.Broadcast(Message{Type: MsgAudioCue, Data: AudioCue{Cue: cue}})
}

func (c *Client) readPump() {
	defer func() {
		c.hub.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.hub.log.Warn("websocket read", zap.Stringer("client", c.ID), zap.Error(err))
			}
			return
		}

		cmd, err := ParseAction(data)
		if err != nil {
			c.hub.log.Debug("rejected action", zap.Stringer("client", c.ID), zap.Error(err))
			c.hub.reply(c, Message{Type: MsgError, Data: ErrorReply{Message: err.Error()}})
			continue
		}
		if err := c.hub.dispatch(cmd); err != nil {
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
