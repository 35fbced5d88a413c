package transport

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestKindAndStateNames(t *testing.T) {
	assert.Equal(t, "http", KindHTTP.String())
	assert.Equal(t, "websocket", KindWebSocket.String())
	assert.Equal(t, "ipc", KindIPC.String())
	assert.Equal(t, "kind(9)", Kind(9).String())

	assert.Equal(t, "ready", StateReady.String())
	assert.Equal(t, "closed", StateClosed.String())
}

func TestEmitterCallsHandlersInOrder(t *testing.T) {
	var e Emitter
	var calls []string

	e.On(EventMessage, func(data []byte) { calls = append(calls, "first:"+string(data)) })
	e.On(EventMessage, func(data []byte) { calls = append(calls, "second:"+string(data)) })
	e.On(EventConnect, func([]byte) { calls = append(calls, "connect") })
	e.On(EventMessage, nil)

	e.Emit(EventMessage, []byte("x"))
	assert.Equal(t, []string{"first:x", "second:x"}, calls)
	assert.Equal(t, 2, e.Count(EventMessage))
	assert.Equal(t, 0, e.Count(EventError))

	// emitting an event without handlers is a no-op
	e.Emit(EventDisconnect, nil)
}

func TestExponentialBackoff(t *testing.T) {
	initialDelay := 100 * time.Millisecond
	maxDelay := 5 * time.Second
	maxAttempts := 5

	backoff := NewExponentialBackoff(initialDelay, maxDelay, maxAttempts).WithFactor(1.5).WithJitter(0.1)

	assert.Equal(t, maxAttempts, backoff.MaxAttempts())

	firstDelay := backoff.NextDelay(1)
	assert.True(t, firstDelay >= 90*time.Millisecond, "First delay should be approximately initialDelay with jitter")
	assert.True(t, firstDelay <= 110*time.Millisecond, "First delay should be approximately initialDelay with jitter")

	secondDelay := backoff.NextDelay(2)
	assert.True(t, secondDelay > firstDelay, "Second delay should be greater than first delay")

	finalDelay := backoff.NextDelay(20)
	assert.True(t, finalDelay <= maxDelay, "Delay should never exceed maxDelay")

	assert.Equal(t, time.Duration(0), backoff.NextDelay(0), "Delay for attempt 0 should be 0")
}

func TestConstantBackoff(t *testing.T) {
	backoff := NewConstantBackoff(200*time.Millisecond, 3)

	assert.Equal(t, 3, backoff.MaxAttempts())
	assert.Equal(t, 200*time.Millisecond, backoff.NextDelay(1))
	assert.Equal(t, 200*time.Millisecond, backoff.NextDelay(7))
	assert.Equal(t, time.Duration(0), backoff.NextDelay(0))
}

func TestReconnectPolicyStrategy(t *testing.T) {
	s := ReconnectPolicy{AutoReconnect: true}.strategy()
	assert.Equal(t, DefaultReconnectMaxAttempts, s.MaxAttempts())
	assert.Equal(t, DefaultReconnectDelay, s.NextDelay(1))

	s = ReconnectPolicy{Delay: time.Second, MaxAttempts: -1}.strategy()
	assert.Equal(t, 0, s.MaxAttempts(), "negative MaxAttempts means unlimited")
	assert.Equal(t, time.Second, s.NextDelay(3))

	custom := NewExponentialBackoff(time.Millisecond, time.Second, 9)
	s = ReconnectPolicy{Delay: time.Hour, Backoff: custom}.strategy()
	assert.Same(t, custom, s)

	p := DefaultReconnectPolicy()
	assert.True(t, p.AutoReconnect)
	assert.Equal(t, 5*time.Second, p.Delay)
	assert.Equal(t, 5, p.MaxAttempts)
}
