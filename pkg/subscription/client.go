// Package subscription implements a graphql-transport-ws client used
// for the live listing feed: new listings matching a saved search are
// pushed by the server instead of polled.
package subscription

import (
	"context"
	"fmt"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/RakanDouli/souq-client/pkg/graphql"
)

// graphql-transport-ws message types.
const (
	msgConnectionInit = "connection_init"
	msgConnectionAck  = "connection_ack"
	msgPing           = "ping"
	msgPong           = "pong"
	msgSubscribe      = "subscribe"
	msgNext           = "next"
	msgError          = "error"
	msgComplete       = "complete"
)

type message struct {
	ID      string          `json:"id,omitempty"`
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Event is one item delivered by the subscription. Err is set when the
// server reported a subscription error; the channel stays open unless
// the subscription completed.
type Event struct {
	Data json.RawMessage
	Err  error
}

// Config holds subscription client configuration.
type Config struct {
	URL         string
	Document    string
	Variables   map[string]interface{}
	Tokens      graphql.TokenProvider
	DialTimeout time.Duration
	AckTimeout  time.Duration
	BufferSize  int
	Backoff     BackoffConfig
	Logger      *zap.Logger
}

// Client maintains one long-lived subscription over a websocket,
// reconnecting with exponential backoff and resubscribing after drops.
type Client struct {
	cfg     Config
	backoff *Backoff
	logger  *zap.Logger

	events chan Event
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu   sync.Mutex
	conn *websocket.Conn
}

// NewClient creates a subscription client. Start must be called before
// Events delivers anything.
func NewClient(cfg Config) *Client {
	ctx, cancel := context.WithCancel(context.Background())
	return &Client{
		cfg:     cfg,
		backoff: NewBackoff(cfg.Backoff),
		logger:  cfg.Logger,
		events:  make(chan Event, cfg.BufferSize),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Events returns the channel of subscription items. The channel is
// closed when the client is closed or the subscription completes.
func (c *Client) Events() <-chan Event {
	return c.events
}

// Start connects, performs the protocol handshake, subscribes, and
// launches the read loop.
func (c *Client) Start() error {
	err := c.connect(c.ctx)
	if err != nil {
		return fmt.Errorf("initial connection: %w", err)
	}

	c.wg.Add(1)
	go c.readLoop()

	return nil
}

// Close tears down the connection and closes the event channel.
func (c *Client) Close() error {
	c.cancel()

	c.mu.Lock()
	if c.conn != nil {
		_ = c.conn.Close()
	}
	c.mu.Unlock()

	c.wg.Wait()
	close(c.events)

	c.logger.Info("subscription-client-closed")
	return nil
}

// connect dials the endpoint, completes the connection_init/ack
// handshake, and sends the subscribe frame.
func (c *Client) connect(ctx context.Context) error {
	dialer := websocket.Dialer{
		HandshakeTimeout: c.cfg.DialTimeout,
		Subprotocols:     []string{"graphql-transport-ws"},
	}

	conn, _, err := dialer.DialContext(ctx, c.cfg.URL, nil)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}

	initPayload := map[string]interface{}{}
	if token, ok := c.cfg.Tokens.Token(); ok {
		initPayload["authToken"] = token
	}
	err = writeMessage(conn, message{Type: msgConnectionInit}, initPayload)
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("connection_init: %w", err)
	}

	ackTimeout := c.cfg.AckTimeout
	if ackTimeout == 0 {
		ackTimeout = 10 * time.Second
	}
	_ = conn.SetReadDeadline(time.Now().Add(ackTimeout))
	var ack message
	err = conn.ReadJSON(&ack)
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("read ack: %w", err)
	}
	if ack.Type != msgConnectionAck {
		_ = conn.Close()
		return fmt.Errorf("expected connection_ack, got %q", ack.Type)
	}
	_ = conn.SetReadDeadline(time.Time{})

	subscribePayload := map[string]interface{}{
		"query":     c.cfg.Document,
		"variables": c.cfg.Variables,
	}
	err = writeMessage(conn, message{ID: "1", Type: msgSubscribe}, subscribePayload)
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("subscribe: %w", err)
	}

	c.mu.Lock()
	c.conn = conn
	c.mu.Unlock()

	ConnectsTotal.Inc()
	c.logger.Info("subscription-connected", zap.String("url", c.cfg.URL))
	return nil
}

func (c *Client) readLoop() {
	defer c.wg.Done()

	for {
		c.mu.Lock()
		conn := c.conn
		c.mu.Unlock()

		var msg message
		err := conn.ReadJSON(&msg)
		if err != nil {
			if c.ctx.Err() != nil {
				return
			}
			c.logger.Warn("subscription-read-failed", zap.Error(err))
			if !c.reconnect() {
				return
			}
			continue
		}

		switch msg.Type {
		case msgNext:
			c.deliver(Event{Data: extractData(msg.Payload)})
		case msgError:
			c.deliver(Event{Err: &graphql.RemoteError{Message: firstMessage(msg.Payload)}})
		case msgComplete:
			c.logger.Info("subscription-completed")
			c.cancel()
			return
		case msgPing:
			_ = writeMessage(conn, message{Type: msgPong}, nil)
		}
	}
}

// reconnect retries until connected or the client is closed. Returns
// false when the client was closed while waiting.
func (c *Client) reconnect() bool {
	for {
		delay := c.backoff.Next()
		ReconnectsTotal.Inc()
		c.logger.Info("subscription-reconnecting", zap.Duration("backoff", delay))

		select {
		case <-time.After(delay):
		case <-c.ctx.Done():
			return false
		}

		err := c.connect(c.ctx)
		if err == nil {
			c.backoff.Reset()
			return true
		}

		ReconnectFailuresTotal.Inc()
		c.logger.Warn("subscription-reconnect-failed", zap.Error(err))
	}
}

// deliver pushes an event without blocking the read loop. When the
// buffer is full the event is dropped and counted; the feed is
// best-effort and must never stall the connection.
func (c *Client) deliver(event Event) {
	select {
	case c.events <- event:
		EventsTotal.Inc()
	default:
		DroppedEventsTotal.Inc()
		c.logger.Warn("subscription-event-dropped")
	}
}

func writeMessage(conn *websocket.Conn, msg message, payload interface{}) error {
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		msg.Payload = encoded
	}
	return conn.WriteJSON(msg)
}

// extractData unwraps the {"data": ...} envelope of a next frame.
func extractData(payload json.RawMessage) json.RawMessage {
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(payload, &envelope); err != nil || len(envelope.Data) == 0 {
		return payload
	}
	return envelope.Data
}

// firstMessage extracts the first error message of an error frame.
func firstMessage(payload json.RawMessage) string {
	var entries []struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(payload, &entries); err != nil || len(entries) == 0 || entries[0].Message == "" {
		return "subscription failed"
	}
	return entries[0].Message
}
