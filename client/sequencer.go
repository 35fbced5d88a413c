package client

import "sync"

// MaxSafeInteger is the largest integer every JSON implementation can
// represent exactly, 2^53-1.
const MaxSafeInteger uint64 = 1<<53 - 1

// Sequencer issues JSON-RPC request ids. Ids increase by one per request
// and restart at 1 once the ceiling has been issued.
type Sequencer struct {
	mu      sync.Mutex
	counter uint64
	ceiling uint64
}

// NewSequencer creates a sequencer wrapping at ceiling. A zero ceiling
// selects MaxSafeInteger.
func NewSequencer(ceiling uint64) *Sequencer {
	if ceiling == 0 {
		ceiling = MaxSafeInteger
	}
	return &Sequencer{ceiling: ceiling}
}

// Next returns the next id.
func (s *Sequencer) Next() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.next()
}

// Reserve returns n consecutive ids, in issue order, without interleaving
// ids handed to concurrent callers.
func (s *Sequencer) Reserve(n int) []uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]uint64, n)
	for i := range ids {
		ids[i] = s.next()
	}
	return ids
}

// Current returns the last issued id, 0 if none.
func (s *Sequencer) Current() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counter
}

func (s *Sequencer) next() uint64 {
	if s.counter >= s.ceiling {
		s.counter = 0
	}
	s.counter++
	return s.counter
}
