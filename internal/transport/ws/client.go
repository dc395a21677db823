package ws

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"
)

const (
	writeWait      = 10 * time.Second
	pingInterval   = 30 * time.Second
	maxMessageSize = 4096
	sendBufSize    = 256
)

// Client represents a single WebSocket connection.
type Client struct {
	hub      *Hub
	conn     *websocket.Conn
	userName string

	// following holds author user names; PublicTimeline means everyone.
	following map[string]struct{}
	mu        sync.RWMutex

	send chan []byte
	done chan struct{}
}

func NewClient(hub *Hub, conn *websocket.Conn, userName string) *Client {
	return &Client{
		hub:       hub,
		conn:      conn,
		userName:  userName,
		following: make(map[string]struct{}),
		send:      make(chan []byte, sendBufSize),
		done:      make(chan struct{}),
	}
}

// Follows reports whether events for author should reach this client.
func (c *Client) Follows(author string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if _, ok := c.following[PublicTimeline]; ok {
		return true
	}
	_, ok := c.following[author]
	return ok
}

func (c *Client) Subscribe(userName string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.following[userName] = struct{}{}
}

func (c *Client) Unsubscribe(userName string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.following, userName)
}

// ReadPump reads messages from the WebSocket and routes them to the Hub.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close(websocket.StatusNormalClosure, "")
	}()

	for {
		var event Event
		err := wsjson.Read(context.Background(), c.conn, &event)
		if err != nil {
			if websocket.CloseStatus(err) != -1 {
				log.Printf("ws: client %s disconnected", c.userName)
			} else {
				log.Printf("ws: read error from %s: %v", c.userName, err)
			}
			return
		}

		c.handleEvent(&event)
	}
}

// WritePump writes messages from the send channel to the WebSocket.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		c.conn.Close(websocket.StatusNormalClosure, "")
	}()

	for {
		select {
		case message, ok := <-c.send:
			if !ok {
				return
			}
			ctx, cancel := context.WithTimeout(context.Background(), writeWait)
			err := c.conn.Write(ctx, websocket.MessageText, message)
			cancel()
			if err != nil {
				log.Printf("ws: write error to %s: %v", c.userName, err)
				return
			}

		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), writeWait)
			err := c.conn.Ping(ctx)
			cancel()
			if err != nil {
				log.Printf("ws: ping error to %s: %v", c.userName, err)
				return
			}

		case <-c.done:
			return
		}
	}
}

// handleEvent routes an incoming client event.
func (c *Client) handleEvent(event *Event) {
	switch event.Type {
	case EventTypeTimelineSubscribe:
		var p TimelinePayload
		if err := json.Unmarshal(event.Payload, &p); err != nil {
			c.sendError("INVALID_PAYLOAD", "invalid timeline.subscribe payload")
			return
		}
		c.Subscribe(p.UserName)
		log.Printf("ws: %s follows %q", c.userName, p.UserName)

	case EventTypeTimelineUnsubscribe:
		var p TimelinePayload
		if err := json.Unmarshal(event.Payload, &p); err != nil {
			c.sendError("INVALID_PAYLOAD", "invalid timeline.unsubscribe payload")
			return
		}
		c.Unsubscribe(p.UserName)
		log.Printf("ws: %s unfollows %q", c.userName, p.UserName)

	case EventTypePing:
		c.sendPong()

	default:
		c.sendError("UNKNOWN_EVENT", "unknown event type: "+event.Type)
	}
}

func (c *Client) sendPong() {
	data, _ := json.Marshal(Event{Type: EventTypePong})
	select {
	case c.send <- data:
	default:
	}
}

func (c *Client) sendError(code, message string) {
	evt, err := NewEvent(EventTypeError, ErrorPayload{Code: code, Message: message})
	if err != nil {
		return
	}
	data, err := json.Marshal(evt)
	if err != nil {
		return
	}
	select {
	case c.send <- data:
	default:
	}
}
