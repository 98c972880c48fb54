// Package facade wires a dispatcher.Dispatcher to an MQTT transport,
// providing the four operations an app built on this fabric actually
// calls: publish a message, register a broadcast/incoming-request
// callback, register a request/response pair, and start the event loop.
// Grounded on original_source mqtt-client/src/mqtt_client.rs's MqttClient.
package facade

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/rustyeddy/fdp/dispatcher"
	"github.com/rustyeddy/fdp/facade/transport"
)

// QoS policy is fixed, per spec.md: every publish (including replies) uses
// QoS 0, every subscribe uses QoS 1.
const (
	publishQoS   byte = 0
	subscribeQoS byte = 1
)

// Client binds one transport connection to one dispatcher. It has two
// phases: Setup (Publish/RegisterCallback/RegisterResponse may be called
// freely) and Running (Start owns the event loop and returns only when ctx
// is done or the loop reports a fatal error) — callers are expected to
// finish setup before calling
// Start, mirroring the original's construction-then-`start` shape.
type Client struct {
	transport transport.Client
	dispatch  *dispatcher.Dispatcher
	log       *slog.Logger
}

// New builds a Client over an already-constructed transport.Client. t must
// be connected (see transport.Client.Connect) before Publish/Subscribe
// calls will succeed.
func New(t transport.Client, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		transport: t,
		dispatch:  dispatcher.New(logger),
		log:       logger,
	}
}

// Publish marshals payload as JSON and publishes it to topic at QoS 0.
func (c *Client) Publish(ctx context.Context, topic string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("facade: marshaling payload for topic %q: %w", topic, err)
	}
	if err := c.transport.Publish(ctx, topic, data, publishQoS); err != nil {
		return fmt.Errorf("facade: publishing to %q: %w", topic, err)
	}
	return nil
}

// RegisterCallback subscribes to topic at QoS 1 and registers callback to
// run, decoded into P, whenever a message arrives on it.
func RegisterCallback[P any](c *Client, ctx context.Context, topic string, callback func(P)) error {
	if err := c.transport.Subscribe(ctx, topic, subscribeQoS); err != nil {
		return fmt.Errorf("facade: subscribing to %q: %w", topic, err)
	}
	dispatcher.AddHandler(c.dispatch, topic, callback)
	return nil
}

// RegisterResponse subscribes to topic at QoS 1 and registers callback to
// run on arrival; its return value is published to replyTopic once the
// handler resolves, the same "reply after resolve" ordering the original
// implementation's register_response used.
func RegisterResponse[P, R any](c *Client, ctx context.Context, topic, replyTopic string, callback func(P) R) error {
	if err := c.transport.Subscribe(ctx, topic, subscribeQoS); err != nil {
		return fmt.Errorf("facade: subscribing to %q: %w", topic, err)
	}

	dispatcher.AddHandler(c.dispatch, topic, func(request P) {
		response := callback(request)
		if err := c.Publish(ctx, replyTopic, response); err != nil {
			c.log.Error("failed to publish response", "topic", replyTopic, "error", err)
		}
	})
	return nil
}

// Start polls loop indefinitely, dispatching each incoming event's payload
// to its topic's handler, until ctx is done or the event loop surfaces a
// fatal error. A topic that fails to decode as UTF-8 is logged and skipped
// rather than aborting the loop (spec.md's explicit tightening of the
// original implementation's unwrap-or-panic); a transport-level poll
// failure is not retried internally and is returned to the caller instead,
// terminating the loop.
func (c *Client) Start(ctx context.Context, loop transport.EventLoop) error {
	for {
		event, err := loop.Poll(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			c.log.Error("event loop poll failed", "error", err)
			return fmt.Errorf("facade: event loop poll failed: %w", err)
		}

		topic, err := decodeTopic(event.Topic)
		if err != nil {
			c.log.Error("dropping publish with non-UTF-8 topic", "error", err)
			continue
		}

		c.dispatch.Dispatch(topic, event.Payload)
	}
}

func decodeTopic(raw []byte) (string, error) {
	if !utf8.Valid(raw) {
		return "", fmt.Errorf("facade: topic is not valid UTF-8")
	}
	return string(raw), nil
}
