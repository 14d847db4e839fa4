package ws

import (
	"context"
	"log"
	"sync"
)

type envelope struct {
	topic   string
	payload []byte
}

// Hub fans messages out to the clients joined to a topic. Each referral chat
// is one topic.
type Hub struct {
	rooms      map[string]map[*Client]struct{}
	broadcast  chan envelope
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	mutex      sync.RWMutex
	logger     *log.Logger
}

func NewHub(logger *log.Logger) *Hub {
	return &Hub{
		rooms:      make(map[string]map[*Client]struct{}),
		broadcast:  make(chan envelope, 1024),
		register:   make(chan *Client, 128),
		unregister: make(chan *Client, 128),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run owns room membership until ctx is done, then closes every client.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			h.mutex.Lock()
			for topic, room := range h.rooms {
				for c := range room {
					close(c.send)
				}
				delete(h.rooms, topic)
			}
			h.mutex.Unlock()
			return

		case client := <-h.register:
			if client == nil {
				continue
			}
			h.mutex.Lock()
			room, ok := h.rooms[client.topic]
			if !ok {
				room = make(map[*Client]struct{})
				h.rooms[client.topic] = room
			}
			room[client] = struct{}{}
			total := len(room)
			h.mutex.Unlock()
			if h.logger != nil {
				h.logger.Printf("[WS] joined | topic=%s clients=%d", client.topic, total)
			}

		case client := <-h.unregister:
			h.remove(client)

		case msg := <-h.broadcast:
			h.mutex.RLock()
			room := h.rooms[msg.topic]
			snapshot := make([]*Client, 0, len(room))
			for c := range room {
				snapshot = append(snapshot, c)
			}
			h.mutex.RUnlock()

			for _, client := range snapshot {
				select {
				case client.send <- msg.payload:
				default:
					h.remove(client)
				}
			}
		}
	}
}

func (h *Hub) remove(client *Client) {
	if client == nil {
		return
	}
	h.mutex.Lock()
	room := h.rooms[client.topic]
	if _, ok := room[client]; ok {
		delete(room, client)
		close(client.send)
		if len(room) == 0 {
			delete(h.rooms, client.topic)
		}
	}
	total := len(room)
	h.mutex.Unlock()
	if h.logger != nil {
		h.logger.Printf("[WS] left | topic=%s clients=%d", client.topic, total)
	}
}

func (h *Hub) Register(client *Client) {
	if h == nil {
		return
	}
	select {
	case h.register <- client:
	case <-h.done:
		close(client.send)
	}
}

func (h *Hub) Unregister(client *Client) {
	if h == nil {
		return
	}
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Broadcast queues payload for every client in topic. It never blocks; a
// full queue drops the message.
func (h *Hub) Broadcast(topic string, payload []byte) {
	if h == nil {
		return
	}
	select {
	case h.broadcast <- envelope{topic: topic, payload: payload}:
	default:
		if h.logger != nil {
			h.logger.Printf("[WS] broadcast dropped | topic=%s reason=buffer_full", topic)
		}
	}
}

func (h *Hub) ClientCount(topic string) int {
	if h == nil {
		return 0
	}
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.rooms[topic])
}
