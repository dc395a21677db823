package ws

import (
	"context"
	"encoding/json"
	"log"
)

// Hub manages all active WebSocket clients and routes tweet events.
type Hub struct {
	clients map[*Client]struct{}

	register   chan *Client
	unregister chan *Client
	broadcast  chan *broadcastMsg

	// done is closed when Run returns.
	done chan struct{}
}

type broadcastMsg struct {
	author string
	data   []byte
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *broadcastMsg, 256),
		done:       make(chan struct{}),
	}
}

// Run starts the Hub's main event loop and returns when ctx is done.
// Run must be called once.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			for client := range h.clients {
				h.drop(client)
			}
			return

		case client := <-h.register:
			h.clients[client] = struct{}{}
			log.Printf("ws hub: user %s connected (%d total)", client.userName, len(h.clients))

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				h.drop(client)
				log.Printf("ws hub: user %s disconnected (%d total)", client.userName, len(h.clients))
			}

		case msg := <-h.broadcast:
			for client := range h.clients {
				if !client.Follows(msg.author) {
					continue
				}
				select {
				case client.send <- msg.data:
				default:
					// Client buffer full - disconnect
					h.drop(client)
				}
			}
		}
	}
}

// BroadcastTweetEvent sends an event to every client following author or
// the public timeline.
func (h *Hub) BroadcastTweetEvent(author string, event *Event) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("ws hub: marshal error: %v", err)
		return
	}
	select {
	case h.broadcast <- &broadcastMsg{author: author, data: data}:
	case <-h.done:
	}
}

// Register adds client to the hub. It reports false once the hub has
// stopped.
func (h *Hub) Register(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// drop stops the client's WritePump. send stays open because ReadPump may
// still queue a pong or error on it.
func (h *Hub) drop(client *Client) {
	delete(h.clients, client)
	close(client.done)
}
