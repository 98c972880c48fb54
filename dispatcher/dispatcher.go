// Package dispatcher routes incoming payloads to topic-keyed handlers,
// decoding each payload once into the type its handler declared and
// running the handler on its own goroutine so slow handlers never block
// dispatch of other topics.
package dispatcher

import (
	"encoding/json"
	"log/slog"
	"sync"
)

// rawHandler is the type-erased form every registered handler is reduced
// to: decode the payload, then run the typed callback. Decode failures are
// logged and swallowed, matching the original implementation's
// non-fallible dispatch.
type rawHandler func(payload []byte)

// Dispatcher holds one handler per topic. Registration is last-writer-wins:
// registering a second handler for an already-registered topic silently
// replaces the first (see DESIGN.md open question 5).
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[string]rawHandler
	log      *slog.Logger
}

// New creates an empty Dispatcher. A nil logger falls back to slog's
// default logger.
func New(logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		handlers: make(map[string]rawHandler),
		log:      logger,
	}
}

// AddHandler registers callback to run whenever a payload is dispatched to
// topic, decoded into P. Go's generics play the role that Rust's
// `P: DeserializeOwned` bound plays in the original event dispatcher.
func AddHandler[P any](d *Dispatcher, topic string, callback func(P)) {
	handler := func(payload []byte) {
		var decoded P
		if err := json.Unmarshal(payload, &decoded); err != nil {
			d.log.Error("failed to decode dispatched payload", "topic", topic, "error", err)
			return
		}
		callback(decoded)
	}

	d.mu.Lock()
	d.handlers[topic] = handler
	d.mu.Unlock()
}

// Dispatch runs topic's handler, if one is registered, on its own
// goroutine and returns a Handle the caller may use to wait for it. It
// returns nil if no handler is registered for topic — dispatching to an
// unregistered topic is not an error.
func (d *Dispatcher) Dispatch(topic string, payload []byte) *Handle {
	d.mu.RLock()
	handler, ok := d.handlers[topic]
	d.mu.RUnlock()
	if !ok {
		return nil
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		handler(payload)
	}()
	return &Handle{done: done}
}
