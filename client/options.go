package client

import (
	"log/slog"
	"time"
)

// DefaultRequestTimeout applies to calls whose context has no deadline.
const DefaultRequestTimeout = 30 * time.Second

// Option is a session configuration option.
type Option func(*Session)

// WithLogger sets the session's logger. The logger is handed to the
// selected transport as well unless WithTransportOptions sets another.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithIDCeiling sets the id at which the sequencer wraps.
func WithIDCeiling(ceiling uint64) Option {
	return func(s *Session) {
		s.ids = NewSequencer(ceiling)
	}
}

// WithRequestTimeout sets the deadline applied when a call's context has
// none. Zero or negative disables it.
func WithRequestTimeout(timeout time.Duration) Option {
	return func(s *Session) {
		s.requestTimeout = timeout
	}
}

// WithTransportOptions configures the transport New selects.
func WithTransportOptions(opts ...TransportOption) Option {
	return func(s *Session) {
		s.transportOptions = append(s.transportOptions, opts...)
	}
}
