package websocket

import (
	"log"
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
)

// replyDelay makes the canned reply feel like a person typed it.
const replyDelay = time.Second

const tutorReply = "Cảm ơn bạn đã đặt câu hỏi. Giáo viên YENTHANH sẽ phản hồi bạn sớm nhất qua Zalo 0868 466 486!"

// ChatMessage is the wire format for chat traffic in both directions.
type ChatMessage struct {
	Sender string `json:"sender"`
	Text   string `json:"text"`
}

// Hub tracks connected chat clients. Every incoming student message is
// acknowledged with the tutor's canned reply; there is no fan-out
// between clients.
type Hub struct {
	mu         sync.RWMutex
	clients    map[uuid.UUID]*websocket.Conn
	Register   chan *Client
	Unregister chan *Client
}

type Client struct {
	ID   uuid.UUID
	Conn *websocket.Conn
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[uuid.UUID]*websocket.Conn),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
	}
}

// Run owns the clients map. Must be started once, before the server
// accepts connections.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.mu.Lock()
			h.clients[client.ID] = client.Conn
			h.mu.Unlock()
			log.Printf("Chat client connected: %s", client.ID)
		case client := <-h.Unregister:
			h.mu.Lock()
			delete(h.clients, client.ID)
			h.mu.Unlock()
			log.Printf("Chat client disconnected: %s", client.ID)
		}
	}
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Reply builds the tutor's acknowledgement for a student message.
func Reply(ChatMessage) ChatMessage {
	return ChatMessage{Sender: "tutor", Text: tutorReply}
}

// ServeChat runs the read loop for one chat connection.
func (h *Hub) ServeChat(conn *websocket.Conn) {
	client := &Client{ID: uuid.New(), Conn: conn}
	h.Register <- client
	defer func() {
		h.Unregister <- client
		conn.Close()
	}()

	for {
		var msg ChatMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				log.Printf("Chat read error: %v", err)
			}
			return
		}

		time.Sleep(replyDelay)
		if err := conn.WriteJSON(Reply(msg)); err != nil {
			log.Printf("Chat write error: %v", err)
			return
		}
	}
}
