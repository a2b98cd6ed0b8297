package ws

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const defaultWriteTimeout = 5 * time.Second

// client é uma conexão com seu próprio lock de escrita
// (gorilla não permite escritas concorrentes na mesma conexão)
type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

// Hub gerencia conexões WebSocket e assinaturas por sorteio
type Hub struct {
	upgrader websocket.Upgrader
	mu       sync.RWMutex
	// drawID -> clientes
	subs map[string]map[*client]struct{}

	// WriteTimeout limita cada escrita; cliente lento é desconectado
	WriteTimeout time.Duration
}

func NewHub(allowOrigin func(r *http.Request) bool) *Hub {
	return &Hub{
		upgrader:     websocket.Upgrader{CheckOrigin: allowOrigin},
		subs:         make(map[string]map[*client]struct{}),
		WriteTimeout: defaultWriteTimeout,
	}
}

// HandleWS atende uma conexão até o cliente desconectar
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	c := &client{conn: conn}
	defer h.drop(c)

	for {
		var msg ClientMsg
		if err := conn.ReadJSON(&msg); err != nil {
			break
		}
		switch msg.Type {
		case "subscribe":
			h.subscribe(msg.DrawID, c)
		case "unsubscribe":
			h.unsubscribe(msg.DrawID, c)
		case "ping":
			h.write(c, []byte(`{"type":"pong"}`))
		}
	}
}

func (h *Hub) subscribe(drawID string, c *client) {
	if drawID == "" {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subs[drawID]; !ok {
		h.subs[drawID] = make(map[*client]struct{})
	}
	h.subs[drawID][c] = struct{}{}
}

func (h *Hub) unsubscribe(drawID string, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if m, ok := h.subs[drawID]; ok {
		delete(m, c)
		if len(m) == 0 {
			delete(h.subs, drawID)
		}
	}
}

// drop remove o cliente de todas as assinaturas e fecha a conexão
func (h *Hub) drop(c *client) {
	h.mu.Lock()
	for id, set := range h.subs {
		delete(set, c)
		if len(set) == 0 {
			delete(h.subs, id)
		}
	}
	h.mu.Unlock()
	_ = c.conn.Close()
}

// Broadcast envia o update para quem assina o sorteio ou "*"
func (h *Hub) Broadcast(update BatchUpdate) {
	h.mu.RLock()
	targets := make([]*client, 0, len(h.subs[update.DrawID])+len(h.subs[allDraws]))
	for c := range h.subs[update.DrawID] {
		targets = append(targets, c)
	}
	for c := range h.subs[allDraws] {
		if _, dup := h.subs[update.DrawID][c]; !dup {
			targets = append(targets, c)
		}
	}
	h.mu.RUnlock()
	if len(targets) == 0 {
		return
	}

	b, _ := json.Marshal(update)
	for _, c := range targets {
		h.write(c, b)
	}
}

// Subscribers devolve quantas conexões assinam o sorteio
func (h *Hub) Subscribers(drawID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[drawID])
}

func (h *Hub) write(c *client, b []byte) {
	c.mu.Lock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(h.WriteTimeout))
	err := c.conn.WriteMessage(websocket.TextMessage, b)
	c.mu.Unlock()
	if err != nil {
		h.drop(c)
	}
}
