package gateway

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/gorilla/websocket"
)

// realtime change feed: a single long-lived websocket channel per
// subscription. The feed only reports row insertions.

type feedMessage struct {
	Topic   string          `json:"topic"`
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
	Ref     string          `json:"ref"`
}

type insertPayload struct {
	Type   string          `json:"type"`
	Table  string          `json:"table"`
	Record json.RawMessage `json:"record"`
}

// Subscribe opens the change feed for insert events on a collection and
// returns a channel of inserted rows. The channel closes when ctx is done.
// Connection drops are retried internally.
func (c *Client) Subscribe(ctx context.Context, collection string) <-chan json.RawMessage {
	rows := make(chan json.RawMessage, 16)
	go func() {
		defer close(rows)
		for {
			if err := c.streamFeed(ctx, collection, rows); err != nil {
				if ctx.Err() != nil {
					return
				}
				log.Printf("[Feed] %s subscription dropped: %v, reconnecting in 5s", collection, err)
			}
			select {
			case <-ctx.Done():
				return
			case <-time.After(5 * time.Second):
			}
		}
	}()
	return rows
}

func (c *Client) streamFeed(ctx context.Context, collection string, rows chan<- json.RawMessage) error {
	wsURL := strings.Replace(c.baseURL, "http", "ws", 1) + "/realtime/v1/websocket?apikey=" + c.anonKey + "&vsn=1.0.0"

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	topic := "realtime:public:" + collection
	join := feedMessage{Topic: topic, Event: "phx_join", Payload: json.RawMessage(`{}`), Ref: "1"}
	if err := conn.WriteJSON(join); err != nil {
		return err
	}
	log.Printf("[Feed] subscribed to %s", topic)

	// Heartbeats keep the channel open; the gateway closes silent sockets.
	heartbeat := time.NewTicker(30 * time.Second)
	defer heartbeat.Stop()
	go func() {
		for {
			select {
			case <-ctx.Done():
				conn.Close()
				return
			case <-heartbeat.C:
				msg := feedMessage{Topic: "phoenix", Event: "heartbeat", Payload: json.RawMessage(`{}`), Ref: "0"}
				if err := conn.WriteJSON(msg); err != nil {
					conn.Close()
					return
				}
			}
		}
	}()

	for {
		var msg feedMessage
		if err := conn.ReadJSON(&msg); err != nil {
			return err
		}
		if msg.Topic != topic || msg.Event != "INSERT" {
			continue
		}
		var payload insertPayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			log.Printf("[Feed] bad insert payload on %s: %v", topic, err)
			continue
		}
		select {
		case rows <- payload.Record:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
