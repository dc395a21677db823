package ws

import (
	"log"

	"github.com/nicorlas/twitter-api/internal/domain"
)

// HubNotifier implements service.Notifier using the WebSocket Hub.
type HubNotifier struct {
	hub *Hub
}

func NewHubNotifier(hub *Hub) *HubNotifier {
	return &HubNotifier{hub: hub}
}

func (n *HubNotifier) NotifyNewTweet(tweet *domain.Tweet) {
	n.publish(EventTypeTweetNew, tweet.By.UserName, TweetPayload{Tweet: *tweet})
}

func (n *HubNotifier) NotifyEditedTweet(tweet *domain.Tweet) {
	n.publish(EventTypeTweetEdited, tweet.By.UserName, TweetPayload{Tweet: *tweet})
}

func (n *HubNotifier) NotifyDeletedTweet(tweet *domain.Tweet) {
	n.publish(EventTypeTweetDeleted, tweet.By.UserName, TweetDeletedPayload{
		TweetID:  tweet.ID,
		UserName: tweet.By.UserName,
	})
}

func (n *HubNotifier) publish(eventType, author string, payload any) {
	evt, err := NewEvent(eventType, payload)
	if err != nil {
		log.Printf("ws notifier: marshal error: %v", err)
		return
	}
	n.hub.BroadcastTweetEvent(author, evt)
}
