package dispatcher

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testPayload struct {
	Message string `json:"message"`
	Value   int    `json:"value"`
}

func TestAcceptsAsyncHandlers(t *testing.T) {
	d := New(nil)

	var called testPayload
	done := make(chan struct{})
	AddHandler(d, "topic", func(p testPayload) {
		called = p
		close(done)
	})

	payload, err := json.Marshal(testPayload{Message: "Hello", Value: 42})
	require.NoError(t, err)

	handle := d.Dispatch("topic", payload)
	require.NotNil(t, handle)
	require.NoError(t, handle.Wait(context.Background()))

	<-done
	assert.Equal(t, testPayload{Message: "Hello", Value: 42}, called)
}

func TestClashingTopicsLastWriterWins(t *testing.T) {
	d := New(nil)

	AddHandler(d, "clashing_topic", func(p testPayload) {
		t.Fatal("this handler should have been replaced")
	})

	called := make(chan testPayload, 1)
	AddHandler(d, "clashing_topic", func(p testPayload) {
		called <- p
	})

	payload, err := json.Marshal(testPayload{Message: "Hello from clashing test"})
	require.NoError(t, err)

	handle := d.Dispatch("clashing_topic", payload)
	require.NotNil(t, handle)
	require.NoError(t, handle.Wait(context.Background()))

	select {
	case p := <-called:
		assert.Equal(t, "Hello from clashing test", p.Message)
	default:
		t.Fatal("replacement handler was never called")
	}
}

type durationPayload struct {
	Value int `json:"value"`
}

// TestHandlersDoNotBlockEachOther mirrors the original dispatcher's
// isolation test: a slow, medium, and fast handler dispatched together
// must complete in fastest-first order, proving none of them blocks
// another.
func TestHandlersDoNotBlockEachOther(t *testing.T) {
	d := New(nil)

	var mu sync.Mutex
	var order []int

	record := func(v int) {
		mu.Lock()
		order = append(order, v)
		mu.Unlock()
	}

	AddHandler(d, "topic/slow", func(p durationPayload) {
		time.Sleep(30 * time.Millisecond)
		record(p.Value)
	})
	AddHandler(d, "topic/fast", func(p durationPayload) {
		time.Sleep(10 * time.Millisecond)
		record(p.Value)
	})
	AddHandler(d, "topic/medium", func(p durationPayload) {
		time.Sleep(20 * time.Millisecond)
		record(p.Value)
	})

	medium, _ := json.Marshal(durationPayload{Value: 2})
	slow, _ := json.Marshal(durationPayload{Value: 3})
	fast, _ := json.Marshal(durationPayload{Value: 1})

	handles := []*Handle{
		d.Dispatch("topic/medium", medium),
		d.Dispatch("topic/slow", slow),
		d.Dispatch("topic/fast", fast),
	}
	for _, h := range handles {
		require.NotNil(t, h)
		require.NoError(t, h.Wait(context.Background()))
	}

	assert.Equal(t, []int{1, 2, 3}, order)
}

func TestDispatchNonexistentTopic(t *testing.T) {
	d := New(nil)
	assert.Nil(t, d.Dispatch("nonexistent_topic", nil))
}

func TestDispatchSwallowsDeserializationErrors(t *testing.T) {
	d := New(nil)

	called := make(chan struct{}, 1)
	AddHandler(d, "test_deserialization_error", func(p testPayload) {
		called <- struct{}{}
	})

	incorrectPayload := []byte(`{"message": 123}`)
	handle := d.Dispatch("test_deserialization_error", incorrectPayload)
	require.NotNil(t, handle)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, handle.Wait(ctx))

	select {
	case <-called:
		t.Fatal("handler should not have been called after a decode error")
	default:
	}
}
