package transport

import "time"

// Defaults applied to a zero ReconnectPolicy field.
const (
	DefaultReconnectDelay       = 5 * time.Second
	DefaultReconnectMaxAttempts = 5
)

// ReconnectPolicy governs connection-level reconnection of duplex
// transports. It never retries in-flight requests.
type ReconnectPolicy struct {
	// AutoReconnect enables reconnection after an unexpected disconnect.
	AutoReconnect bool
	// Delay between attempts when Backoff is nil.
	Delay time.Duration
	// MaxAttempts caps consecutive attempts; a negative value means unlimited.
	MaxAttempts int
	// Backoff overrides Delay and MaxAttempts when set.
	Backoff BackoffStrategy
}

// DefaultReconnectPolicy returns a policy with reconnection enabled.
func DefaultReconnectPolicy() ReconnectPolicy {
	return ReconnectPolicy{
		AutoReconnect: true,
		Delay:         DefaultReconnectDelay,
		MaxAttempts:   DefaultReconnectMaxAttempts,
	}
}

// strategy resolves the policy into a backoff strategy.
func (p ReconnectPolicy) strategy() BackoffStrategy {
	if p.Backoff != nil {
		return p.Backoff
	}
	delay := p.Delay
	if delay <= 0 {
		delay = DefaultReconnectDelay
	}
	attempts := p.MaxAttempts
	switch {
	case attempts == 0:
		attempts = DefaultReconnectMaxAttempts
	case attempts < 0:
		attempts = 0
	}
	return NewConstantBackoff(delay, attempts)
}
