package subscription

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/RakanDouli/souq-client/pkg/graphql"
)

// fakeServer implements enough of graphql-transport-ws to test the
// client: it acks the handshake, records the subscribe frame, and
// pushes the scripted frames.
func fakeServer(t *testing.T, frames []message) (*httptest.Server, chan message) {
	t.Helper()

	upgrader := websocket.Upgrader{}
	subscribes := make(chan message, 1)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade failed: %v", err)
			return
		}
		defer conn.Close()

		var init message
		if err := conn.ReadJSON(&init); err != nil || init.Type != msgConnectionInit {
			t.Errorf("expected connection_init, got %+v (err=%v)", init, err)
			return
		}
		_ = conn.WriteJSON(message{Type: msgConnectionAck})

		var sub message
		if err := conn.ReadJSON(&sub); err != nil || sub.Type != msgSubscribe {
			t.Errorf("expected subscribe, got %+v (err=%v)", sub, err)
			return
		}
		subscribes <- sub

		for _, frame := range frames {
			_ = conn.WriteJSON(frame)
		}

		// Hold the connection open until the client goes away.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	t.Cleanup(server.Close)

	return server, subscribes
}

func wsURL(server *httptest.Server) string {
	return "ws" + strings.TrimPrefix(server.URL, "http")
}

func newTestSubscription(t *testing.T, server *httptest.Server) *Client {
	t.Helper()

	client := NewClient(Config{
		URL:         wsURL(server),
		Document:    `subscription NewListings($categoryId: ID) { listingAdded(categoryId: $categoryId) { id title } }`,
		Variables:   map[string]interface{}{"categoryId": "cars"},
		Tokens:      &graphql.StaticTokenProvider{Value: "tok"},
		DialTimeout: 2 * time.Second,
		AckTimeout:  2 * time.Second,
		BufferSize:  16,
		Backoff: BackoffConfig{
			InitialDelay: 10 * time.Millisecond,
			MaxDelay:     50 * time.Millisecond,
			Multiplier:   2.0,
			Jitter:       0.2,
		},
		Logger: zap.NewNop(),
	})
	return client
}

func TestClient_ReceivesEvents(t *testing.T) {
	server, subscribes := fakeServer(t, []message{
		{ID: "1", Type: msgNext, Payload: json.RawMessage(`{"data":{"listingAdded":{"id":"car-7","title":"Sunny 2009"}}}`)},
	})

	client := newTestSubscription(t, server)
	if err := client.Start(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer client.Close()

	select {
	case sub := <-subscribes:
		var payload struct {
			Query     string                 `json:"query"`
			Variables map[string]interface{} `json:"variables"`
		}
		if err := json.Unmarshal(sub.Payload, &payload); err != nil {
			t.Fatalf("bad subscribe payload: %v", err)
		}
		if !strings.Contains(payload.Query, "listingAdded") {
			t.Errorf("unexpected subscribed document: %s", payload.Query)
		}
		if payload.Variables["categoryId"] != "cars" {
			t.Errorf("unexpected variables: %v", payload.Variables)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("server never saw a subscribe frame")
	}

	select {
	case event := <-client.Events():
		if event.Err != nil {
			t.Fatalf("unexpected event error: %v", event.Err)
		}
		if !strings.Contains(string(event.Data), "car-7") {
			t.Errorf("unexpected event payload: %s", event.Data)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no event delivered")
	}
}

func TestClient_SurfacesServerErrors(t *testing.T) {
	server, _ := fakeServer(t, []message{
		{ID: "1", Type: msgError, Payload: json.RawMessage(`[{"message":"unauthorized subscription"}]`)},
	})

	client := newTestSubscription(t, server)
	if err := client.Start(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer client.Close()

	select {
	case event := <-client.Events():
		if event.Err == nil {
			t.Fatal("expected an error event")
		}
		if !strings.Contains(event.Err.Error(), "unauthorized subscription") {
			t.Errorf("unexpected error: %v", event.Err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no error event delivered")
	}
}

func TestClient_CompleteClosesFeed(t *testing.T) {
	server, _ := fakeServer(t, []message{
		{ID: "1", Type: msgComplete},
	})

	client := newTestSubscription(t, server)
	if err := client.Start(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Close after complete must not hang.
	done := make(chan struct{})
	go func() {
		time.Sleep(100 * time.Millisecond)
		_ = client.Close()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("close hung after subscription completed")
	}
}
