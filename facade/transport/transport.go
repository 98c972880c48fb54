// Package transport adapts github.com/eclipse/paho.mqtt.golang's
// callback-driven client into the producer/consumer split the original
// implementation had natively through rumqttc's v5 AsyncClient/EventLoop
// pair: a Client half the facade drives directly (connect, publish,
// subscribe) and a polled EventLoop half that yields one Event per
// incoming publish.
package transport

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
)

// Event is one incoming publish, handed to whoever is polling the event
// loop. Topic is kept as raw bytes rather than string so the facade layer
// can perform (and fail) its own UTF-8 decode, matching spec.md's
// tightened handling of a malformed topic.
type Event struct {
	Topic   []byte
	Payload []byte
}

// EventLoop is the consumer half: callers poll it in a loop, the same
// shape the original implementation's `client.start(event_loop)` drove
// against rumqttc's EventLoop.
type EventLoop interface {
	Poll(ctx context.Context) (Event, error)
}

// Client is the producer half: connect, publish, and subscribe.
type Client interface {
	Connect(ctx context.Context) error
	Publish(ctx context.Context, topic string, payload []byte, qos byte) error
	Subscribe(ctx context.Context, topic string, qos byte) error
}

// Config configures a Paho-backed transport.
type Config struct {
	Broker   string // e.g. "tcp://10.11.0.10:1883"
	ClientID string // if empty, random
	Username string
	Password string

	CleanSession bool
}

// Paho is a Client and EventLoop backed by paho.mqtt.golang. Subscribed
// topics feed an internal channel that Poll drains, bridging Paho's
// callback style into the polled shape the facade expects.
type Paho struct {
	opts   *paho.ClientOptions
	client paho.Client
	events chan Event
}

// New builds a Paho transport from cfg. It does not connect; call Connect.
func New(cfg Config) *Paho {
	id := cfg.ClientID
	if id == "" {
		id = "fdp-" + randSuffix()
	}

	p := &Paho{events: make(chan Event, 64)}

	opts := paho.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(id).
		SetUsername(cfg.Username).
		SetPassword(cfg.Password).
		SetAutoReconnect(true).
		SetConnectTimeout(10 * time.Second).
		SetKeepAlive(10 * time.Second).
		SetCleanSession(cfg.CleanSession)

	opts.SetConnectionLostHandler(func(_ paho.Client, err error) {
		slog.Info("mqtt disconnected", "error", err)
	})
	opts.OnConnect = func(_ paho.Client) {
		slog.Info("mqtt connected")
	}

	p.opts = opts
	return p
}

func randSuffix() string {
	const letters = "abcdefghijklmnopqrstuvwxyz0123456789"
	b := make([]byte, 8)
	for i := range b {
		b[i] = letters[rand.Intn(len(letters))]
	}
	return string(b)
}

// Connect dials the broker and blocks until the connection is established
// or the attempt times out.
func (p *Paho) Connect(ctx context.Context) error {
	if p.client == nil {
		p.client = paho.NewClient(p.opts)
	}
	tok := p.client.Connect()
	if !tok.WaitTimeout(15 * time.Second) {
		return errors.New("transport: mqtt connect timeout")
	}
	return tok.Error()
}

// Publish sends payload to topic at the given QoS. The facade always
// passes qos 0 (spec.md's fixed QoS policy); callers that need to wait for
// broker acknowledgement at qos >= 1 get that wait here.
func (p *Paho) Publish(ctx context.Context, topic string, payload []byte, qos byte) error {
	tok := p.client.Publish(topic, qos, false, payload)
	if qos > 0 {
		if !tok.WaitTimeout(5 * time.Second) {
			return errors.New("transport: mqtt publish timeout")
		}
	}
	return tok.Error()
}

// Subscribe subscribes to topic at the given QoS; every message Paho
// delivers on it is pushed onto the internal event channel for Poll to
// drain.
func (p *Paho) Subscribe(ctx context.Context, topic string, qos byte) error {
	tok := p.client.Subscribe(topic, qos, func(_ paho.Client, msg paho.Message) {
		p.events <- Event{Topic: []byte(msg.Topic()), Payload: msg.Payload()}
	})
	if !tok.WaitTimeout(10 * time.Second) {
		return errors.New("transport: mqtt subscribe timeout")
	}
	return tok.Error()
}

// Poll blocks until the next subscribed message arrives or ctx is done.
func (p *Paho) Poll(ctx context.Context) (Event, error) {
	select {
	case ev := <-p.events:
		return ev, nil
	case <-ctx.Done():
		return Event{}, ctx.Err()
	}
}
