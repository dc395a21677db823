package ws

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/nicorlas/twitter-api/internal/domain"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"
)

const testSecret = "test-secret"

func startHub(t *testing.T) *Hub {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	hub := NewHub()
	go hub.Run(ctx)
	return hub
}

func receive(t *testing.T, c *Client) Event {
	t.Helper()
	select {
	case data := <-c.send:
		var evt Event
		if err := json.Unmarshal(data, &evt); err != nil {
			t.Fatal(err)
		}
		return evt
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func expectNothing(t *testing.T, c *Client) {
	t.Helper()
	select {
	case data := <-c.send:
		t.Fatalf("unexpected event: %s", data)
	case <-time.After(100 * time.Millisecond):
	}
}

func tweetBy(author string) *domain.Tweet {
	return &domain.Tweet{
		ID:        uuid.New(),
		Content:   "hi",
		CreatedAt: time.Now().UTC(),
		By:        domain.User{UserName: author},
	}
}

func TestHubRoutesByAuthor(t *testing.T) {
	hub := startHub(t)
	notifier := NewHubNotifier(hub)

	public := NewClient(hub, nil, "reader")
	public.Subscribe(PublicTimeline)
	follower := NewClient(hub, nil, "fan")
	follower.Subscribe("nicorlas")
	idle := NewClient(hub, nil, "idle")
	for _, c := range []*Client{public, follower, idle} {
		hub.Register(c)
	}

	notifier.NotifyNewTweet(tweetBy("nicorlas"))

	for _, c := range []*Client{public, follower} {
		evt := receive(t, c)
		if evt.Type != EventTypeTweetNew {
			t.Errorf("%s got %s", c.userName, evt.Type)
		}
		var p TweetPayload
		if err := json.Unmarshal(evt.Payload, &p); err != nil {
			t.Fatal(err)
		}
		if p.By.UserName != "nicorlas" || p.Content != "hi" {
			t.Errorf("payload = %+v", p)
		}
	}
	expectNothing(t, idle)

	notifier.NotifyDeletedTweet(tweetBy("someone"))
	if evt := receive(t, public); evt.Type != EventTypeTweetDeleted {
		t.Errorf("public got %s", evt.Type)
	}
	expectNothing(t, follower)
}

func TestClientEvents(t *testing.T) {
	c := NewClient(nil, nil, "nicorlas")

	payload, _ := json.Marshal(TimelinePayload{UserName: "other"})
	c.handleEvent(&Event{Type: EventTypeTimelineSubscribe, Payload: payload})
	if !c.Follows("other") || c.Follows("third") {
		t.Error("subscribe did not follow exactly one author")
	}

	c.handleEvent(&Event{Type: EventTypeTimelineUnsubscribe, Payload: payload})
	if c.Follows("other") {
		t.Error("unsubscribe kept author")
	}

	c.handleEvent(&Event{Type: EventTypePing})
	if evt := receive(t, c); evt.Type != EventTypePong {
		t.Errorf("ping answered with %s", evt.Type)
	}

	c.handleEvent(&Event{Type: "bogus"})
	evt := receive(t, c)
	if evt.Type != EventTypeError || !strings.Contains(string(evt.Payload), "UNKNOWN_EVENT") {
		t.Errorf("bogus event answered with %+v", evt)
	}
}

func TestServeWS(t *testing.T) {
	hub := startHub(t)
	ts := httptest.NewServer(ServeWS(hub, testSecret))
	t.Cleanup(ts.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http")
	if _, _, err := websocket.Dial(ctx, wsURL, nil); err == nil {
		t.Fatal("dial without token succeeded")
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "reader",
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatal(err)
	}

	conn, _, err := websocket.Dial(ctx, wsURL+"?token="+token, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close(websocket.StatusNormalClosure, "")

	sub, _ := json.Marshal(TimelinePayload{UserName: "nicorlas"})
	if err := wsjson.Write(ctx, conn, Event{Type: EventTypeTimelineSubscribe, Payload: sub}); err != nil {
		t.Fatal(err)
	}
	// events are handled in order, so the pong means the subscription is active
	if err := wsjson.Write(ctx, conn, Event{Type: EventTypePing}); err != nil {
		t.Fatal(err)
	}
	var pong Event
	if err := wsjson.Read(ctx, conn, &pong); err != nil || pong.Type != EventTypePong {
		t.Fatalf("pong = %+v, err = %v", pong, err)
	}

	NewHubNotifier(hub).NotifyEditedTweet(tweetBy("nicorlas"))

	var evt Event
	if err := wsjson.Read(ctx, conn, &evt); err != nil {
		t.Fatal(err)
	}
	if evt.Type != EventTypeTweetEdited {
		t.Errorf("got %s, want %s", evt.Type, EventTypeTweetEdited)
	}
}

func TestHubStopped(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub()
	go hub.Run(ctx)

	c := NewClient(hub, nil, "nicorlas")
	if !hub.Register(c) {
		t.Fatal("Register on a running hub returned false")
	}

	cancel()
	<-hub.done

	select {
	case <-c.done:
	default:
		t.Error("registered client not dropped on shutdown")
	}

	evt, err := NewEvent(EventTypeTweetNew, TweetPayload{})
	if err != nil {
		t.Fatal(err)
	}

	finished := make(chan struct{})
	go func() {
		defer close(finished)
		if hub.Register(NewClient(hub, nil, "late")) {
			t.Error("Register after shutdown returned true")
		}
		hub.Unregister(c)
		for i := 0; i < 300; i++ {
			hub.BroadcastTweetEvent("nicorlas", evt)
		}
	}()

	select {
	case <-finished:
	case <-time.After(2 * time.Second):
		t.Fatal("hub calls blocked after shutdown")
	}
}
