// Package tracking follows a ride's status over the service's websocket
// push channel instead of polling. Updates that violate the ride lifecycle
// graph are reported as errors and never applied.
package tracking

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/gorilla/websocket"

	logx "zippgo/internal/common/log"
	"zippgo/internal/domain/ride"
	"zippgo/internal/gateway"
)

const (
	wsWriteTimeout   = 5 * time.Second
	wsCloseAckWindow = 2 * time.Second
	maxMessageBytes  = 64 << 10
)

// statusMessage mirrors the service's "ride_status_update" push frame.
type statusMessage struct {
	Type   string       `json:"type"`
	RideID string       `json:"ride_id"`
	Status string       `json:"status"`
	Driver *DriverBrief `json:"driver_info,omitempty"`
}

// DriverBrief is the assigned driver as carried on status frames.
type DriverBrief struct {
	DriverID string `json:"driver_id"`
	Name     string `json:"name,omitempty"`
	Vehicle  string `json:"vehicle,omitempty"`
}

// Update is one tracking event. Either Status (plus optional Driver) is set,
// or Err reports a frame that could not be applied.
type Update struct {
	Status ride.Status
	Driver *DriverBrief
	Err    error
}

// Client dials the websocket root and streams per-ride status updates.
type Client struct {
	wsURL  string // e.g. ws://localhost:5000/ws
	hooks  gateway.SessionHooks
	dialer *websocket.Dialer
	log    *slog.Logger
}

func New(wsURL string, hooks gateway.SessionHooks, logger *slog.Logger) *Client {
	return &Client{
		wsURL:  wsURL,
		hooks:  hooks,
		dialer: &websocket.Dialer{HandshakeTimeout: 10 * time.Second},
		log:    logger,
	}
}

// Follow subscribes to rideID's status stream. from is the last status the
// caller observed; frames that are not a legal transition from the running
// state are surfaced as Update.Err and skipped. The channel closes when the
// ride reaches a terminal status, the stream drops, or ctx is done.
//
// A rejected handshake (401) runs the same forced-logout protocol as any
// HTTP call.
func (client *Client) Follow(ctx context.Context, rideID string, from ride.Status) (<-chan Update, error) {
	token, ok := client.hooks.CurrentToken()
	if !ok {
		return nil, gateway.ErrSessionInvalid
	}

	endpoint := client.wsURL + "/rides/" + url.PathEscape(rideID) +
		"?Authorization=" + url.QueryEscape("Bearer "+token)

	conn, resp, err := client.dialer.DialContext(ctx, endpoint, nil)
	if err != nil {
		if resp != nil && resp.StatusCode == 401 {
			logx.Info(ctx, client.log, "forced_logout", "session rejected on tracking handshake, clearing credentials")
			client.hooks.ForceLogout(ctx)
			return nil, gateway.ErrSessionInvalid
		}
		return nil, fmt.Errorf("tracking: dial %s: %w", rideID, err)
	}
	conn.SetReadLimit(maxMessageBytes)

	updates := make(chan Update)
	go client.readLoop(ctx, conn, rideID, from, updates)
	return updates, nil
}

func (client *Client) readLoop(ctx context.Context, conn *websocket.Conn, rideID string, last ride.Status, updates chan<- Update) {
	defer close(updates)
	defer conn.Close()

	// unblock ReadMessage when the caller gives up
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			client.writeClose(conn, websocket.CloseNormalClosure, "client gone")
			conn.Close()
		case <-stop:
		}
	}()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() == nil && !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logx.Error(ctx, client.log, "tracking_read", "status stream dropped", err)
			}
			return
		}

		var msg statusMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			updates <- Update{Err: fmt.Errorf("tracking: malformed frame: %w", err)}
			continue
		}
		if msg.Type != "ride_status_update" || msg.RideID != rideID {
			continue
		}

		next, err := ride.ParseStatus(msg.Status)
		if err != nil {
			updates <- Update{Err: fmt.Errorf("tracking: %w: %q", err, msg.Status)}
			continue
		}
		if !last.CanTransitionTo(next) {
			updates <- Update{Err: fmt.Errorf("tracking: %w: %s -> %s", ride.ErrInvalidStatusTransition, last, next)}
			continue
		}

		last = next
		updates <- Update{Status: next, Driver: msg.Driver}

		if next.Terminal() {
			client.writeClose(conn, websocket.CloseNormalClosure, "ride finished")
			return
		}
	}
}

// writeClose sends a close control frame with the given code and reason.
func (client *Client) writeClose(conn *websocket.Conn, code int, reason string) {
	_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	_ = conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(code, reason),
		time.Now().Add(wsCloseAckWindow),
	)
}
