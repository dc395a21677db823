package ws

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/nicorlas/twitter-api/internal/domain"
)

// Event types - Client → Server
const (
	EventTypeTimelineSubscribe   = "timeline.subscribe"
	EventTypeTimelineUnsubscribe = "timeline.unsubscribe"
	EventTypePing                = "ping"
)

// Event types - Server → Client
const (
	EventTypeTweetNew     = "tweet.new"
	EventTypeTweetEdited  = "tweet.edited"
	EventTypeTweetDeleted = "tweet.deleted"
	EventTypePong         = "pong"
	EventTypeError        = "error"
)

// PublicTimeline is the subscription key that receives every tweet.
const PublicTimeline = ""

// Event is the base envelope for all WebSocket messages.
type Event struct {
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	Timestamp int64           `json:"ts,omitempty"`
}

// --- Client → Server payloads ---

// TimelinePayload names the author to follow; an empty user_name selects
// the public timeline.
type TimelinePayload struct {
	UserName string `json:"user_name"`
}

// --- Server → Client payloads ---

type TweetPayload struct {
	domain.Tweet
}

type TweetDeletedPayload struct {
	TweetID  uuid.UUID `json:"tweet_id"`
	UserName string    `json:"user_name"`
}

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewEvent creates a server→client event with the current timestamp.
func NewEvent(eventType string, payload any) (*Event, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &Event{
		Type:      eventType,
		Payload:   data,
		Timestamp: time.Now().Unix(),
	}, nil
}
