package ws

import (
	"log"
	"net/http"
	"sync"

	"github.com/cluns13/loadedteaclub-backend/services"
	"github.com/cluns13/loadedteaclub-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// FeedHub pushes claim lifecycle events to connected admin dashboards.
type FeedHub struct {
	clients    map[*websocket.Conn]bool
	broadcast  chan services.ClaimEvent
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	mu         sync.Mutex
}

func NewFeedHub() *FeedHub {
	return &FeedHub{
		clients:    make(map[*websocket.Conn]bool),
		broadcast:  make(chan services.ClaimEvent, 64),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
	}
}

// Publish is called by the orchestrator after a state change commits. The
// buffered channel keeps the request path from ever blocking on slow clients;
// overflow drops the event (the dashboard refetches on reconnect anyway).
func (h *FeedHub) Publish(ev services.ClaimEvent) {
	select {
	case h.broadcast <- ev:
	default:
		log.Println("claim feed buffer full, dropping event", ev.Event)
	}
}

func (h *FeedHub) Run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			h.clients[conn] = true
			h.mu.Unlock()

		case conn := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[conn]; ok {
				delete(h.clients, conn)
				conn.Close()
			}
			h.mu.Unlock()

		case ev := <-h.broadcast:
			h.mu.Lock()
			for conn := range h.clients {
				if err := conn.WriteJSON(ev); err != nil {
					log.Printf("ws write error: %v", err)
					conn.Close()
					delete(h.clients, conn)
				}
			}
			h.mu.Unlock()
		}
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WS route: /ws/admin/claims
func (h *FeedHub) HandleWebSocket(c *gin.Context) {
	if utils.CurrentRole(c) != "admin" {
		c.JSON(http.StatusForbidden, gin.H{"error": "no access"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("ws upgrade error: %v", err)
		return
	}

	h.register <- conn

	// Reader loop only detects close; the feed is one-way.
	go func() {
		defer func() { h.unregister <- conn }()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
