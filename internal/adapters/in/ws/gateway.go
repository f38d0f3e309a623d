// Package ws pushes live delivery events to browsers and partner apps over
// WebSocket.
//
// A connection authenticates once during the handshake, then manages its
// topic subscriptions with small JSON control messages. Delivery is best
// effort: a client that cannot keep up loses events rather than slowing
// everyone else down.
package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"quickdrop/internal/adapters/in/auth"
	"quickdrop/internal/core/application/services"
	"quickdrop/internal/core/domain/events"
	"quickdrop/internal/core/domain/model/kernel"
	"quickdrop/internal/core/domain/model/principal"
	"quickdrop/internal/core/ports"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

const (
	// writeWait bounds a single write to the peer.
	writeWait = 10 * time.Second

	// pongWait is how long a peer may stay silent before the connection is
	// considered dead. pingPeriod must be shorter.
	pongWait   = 60 * time.Second
	pingPeriod = 54 * time.Second

	maxMessageSize = 512

	// sendBuffer is the per-connection outbound queue. When it is full,
	// further events are dropped for that connection.
	sendBuffer = 64
)

// ActionSubscribe and ActionUnsubscribe are the client control actions.
const (
	ActionSubscribe   = "subscribe"
	ActionUnsubscribe = "unsubscribe"
)

// ControlMessage is what clients send to manage their subscriptions.
type ControlMessage struct {
	Action string `json:"action"`
	Topic  string `json:"topic"`
}

// Envelope wraps every server-to-client message.
type Envelope struct {
	Type    string       `json:"type"`
	Topic   string       `json:"topic,omitempty"`
	Kind    string       `json:"kind,omitempty"`
	Payload events.Event `json:"payload,omitempty"`
	Message string       `json:"message,omitempty"`
}

// Gateway upgrades HTTP requests to WebSocket connections and bridges the
// in-process event bus to them.
type Gateway struct {
	bus        ports.EventBus
	liveStatus *services.LiveStatusService
	logger     *slog.Logger
	upgrader   websocket.Upgrader
}

// NewGateway creates a gateway over the given bus.
func NewGateway(bus ports.EventBus, liveStatus *services.LiveStatusService, logger *slog.Logger) *Gateway {
	return &Gateway{
		bus:        bus,
		liveStatus: liveStatus,
		logger:     logger.With("component", "ws_gateway"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The browser cannot set custom headers on a WebSocket handshake,
			// so cross-origin requests are expected here.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// RegisterRoutes attaches the WebSocket endpoint to the router.
func (g *Gateway) RegisterRoutes(e *echo.Echo) {
	e.GET("/ws", g.Serve)
}

// Serve handles GET /ws. Identity comes from query parameters because
// browsers cannot attach headers to the handshake.
func (g *Gateway) Serve(ctx echo.Context) error {
	actor, err := auth.FromQuery(ctx.QueryParams())
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	}

	conn, err := g.upgrader.Upgrade(ctx.Response(), ctx.Request(), nil)
	if err != nil {
		// Upgrade already wrote the HTTP error response.
		return nil
	}

	c := &client{
		gateway:       g,
		actor:         actor,
		conn:          conn,
		send:          make(chan Envelope, sendBuffer),
		done:          make(chan struct{}),
		subscriptions: make(map[ports.Topic]ports.Subscription),
	}

	g.logger.Info("client connected",
		"user_id", actor.ID().String(), "role", actor.Role().String())

	go c.writePump()
	go c.readPump()

	return nil
}

// client is one live WebSocket connection and its subscriptions.
type client struct {
	gateway *Gateway
	actor   principal.Principal
	conn    *websocket.Conn
	send    chan Envelope

	closeOnce sync.Once
	done      chan struct{}

	mu            sync.Mutex
	subscriptions map[ports.Topic]ports.Subscription
}

// readPump consumes control messages until the peer goes away, then tears
// the connection down.
func (c *client) readPump() {
	defer c.close()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.gateway.logger.Warn("connection dropped",
					"user_id", c.actor.ID().String(), "error", err)
			}
			return
		}

		var msg ControlMessage
		if err = json.Unmarshal(raw, &msg); err != nil {
			c.enqueue(Envelope{Type: "error", Message: "malformed control message"})
			continue
		}

		c.handleControl(msg)
	}
}

// writePump owns all writes to the connection: queued envelopes and pings.
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.close()
	}()

	for {
		select {
		case envelope := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(envelope); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.done:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = c.conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}

func (c *client) handleControl(msg ControlMessage) {
	topic := ports.Topic(msg.Topic)

	switch msg.Action {
	case ActionSubscribe:
		c.subscribe(topic)
	case ActionUnsubscribe:
		c.unsubscribe(topic)
	default:
		c.enqueue(Envelope{
			Type: "error", Topic: msg.Topic,
			Message: "unknown action " + msg.Action,
		})
	}
}

func (c *client) subscribe(topic ports.Topic) {
	// The request context dies with the handshake handler; subscription
	// authorization runs on the connection's own lifetime.
	if err := c.gateway.liveStatus.Authorize(context.Background(), c.actor, topic); err != nil {
		c.enqueue(Envelope{Type: "error", Topic: string(topic), Message: err.Error()})
		return
	}

	c.mu.Lock()
	// close snapshots the subscription map after closing done; registering
	// past that point would leak the bus-side subscription for good.
	select {
	case <-c.done:
		c.mu.Unlock()
		return
	default:
	}
	if _, exists := c.subscriptions[topic]; exists {
		c.mu.Unlock()
		c.enqueue(Envelope{Type: "subscribed", Topic: string(topic)})
		return
	}
	sub := c.gateway.bus.Subscribe(topic)
	c.subscriptions[topic] = sub
	c.mu.Unlock()

	go c.forward(sub)

	c.enqueue(Envelope{Type: "subscribed", Topic: string(topic)})
	c.replayLastLocation(topic)
}

func (c *client) unsubscribe(topic ports.Topic) {
	c.mu.Lock()
	sub, exists := c.subscriptions[topic]
	if exists {
		delete(c.subscriptions, topic)
	}
	c.mu.Unlock()

	if exists {
		sub.Close()
	}
	c.enqueue(Envelope{Type: "unsubscribed", Topic: string(topic)})
}

// forward pushes one subscription's events into the outbound queue until the
// subscription or the connection ends.
func (c *client) forward(sub ports.Subscription) {
	for {
		select {
		case event, ok := <-sub.Events():
			if !ok {
				return
			}
			c.enqueue(Envelope{
				Type:    "event",
				Topic:   string(sub.Topic()),
				Kind:    string(event.EventKind()),
				Payload: event,
			})

		case <-c.done:
			return
		}
	}
}

// replayLastLocation hands a late joiner the cached courier position so the
// map is not empty until the next live update.
func (c *client) replayLastLocation(topic ports.Topic) {
	raw, found := strings.CutPrefix(string(topic), "order:")
	if !found {
		return
	}
	orderID, err := kernel.UUIDFromString(raw)
	if err != nil {
		return
	}

	sample, ok := c.gateway.liveStatus.Last(orderID)
	if !ok {
		return
	}

	c.enqueue(Envelope{
		Type:  "event",
		Topic: string(topic),
		Kind:  string(events.KindLocationUpdate),
		Payload: events.LocationUpdate{
			OrderID:    sample.OrderID().String(),
			Lat:        sample.Lat(),
			Lng:        sample.Lng(),
			Status:     sample.Status().String(),
			ObservedAt: sample.ObservedAt(),
		},
	})
}

// enqueue queues an envelope without ever blocking. A slow consumer loses
// events.
func (c *client) enqueue(envelope Envelope) {
	select {
	case c.send <- envelope:
	case <-c.done:
	default:
		c.gateway.logger.Warn("dropping message for slow client",
			"user_id", c.actor.ID().String(), "type", envelope.Type)
	}
}

// close tears down the connection and every subscription exactly once.
func (c *client) close() {
	c.closeOnce.Do(func() {
		close(c.done)

		c.mu.Lock()
		subs := make([]ports.Subscription, 0, len(c.subscriptions))
		for _, sub := range c.subscriptions {
			subs = append(subs, sub)
		}
		c.subscriptions = make(map[ports.Topic]ports.Subscription)
		c.mu.Unlock()

		for _, sub := range subs {
			sub.Close()
		}
		_ = c.conn.Close()

		c.gateway.logger.Info("client disconnected", "user_id", c.actor.ID().String())
	})
}
