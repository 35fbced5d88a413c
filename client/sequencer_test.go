package client

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequencerIncrements(t *testing.T) {
	s := NewSequencer(0)
	assert.Equal(t, uint64(0), s.Current())
	for want := uint64(1); want <= 5; want++ {
		assert.Equal(t, want, s.Next())
	}
	assert.Equal(t, uint64(5), s.Current())
}

func TestSequencerWrapsAtCeiling(t *testing.T) {
	s := NewSequencer(3)
	got := []uint64{s.Next(), s.Next(), s.Next(), s.Next(), s.Next()}
	assert.Equal(t, []uint64{1, 2, 3, 1, 2}, got)
}

func TestSequencerDefaultCeiling(t *testing.T) {
	s := NewSequencer(0)
	s.counter = MaxSafeInteger - 1
	assert.Equal(t, MaxSafeInteger, s.Next())
	assert.Equal(t, uint64(1), s.Next())
	assert.Equal(t, uint64(9007199254740991), MaxSafeInteger)
}

func TestSequencerReserve(t *testing.T) {
	s := NewSequencer(4)
	s.Next()
	assert.Equal(t, []uint64{2, 3, 4, 1}, s.Reserve(4))
	assert.Empty(t, s.Reserve(0))
}

func TestSequencerConcurrentIDsAreUnique(t *testing.T) {
	s := NewSequencer(0)
	const workers, perWorker = 8, 250

	var mu sync.Mutex
	seen := make(map[uint64]bool, workers*perWorker)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				id := s.Next()
				mu.Lock()
				seen[id] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	require.Len(t, seen, workers*perWorker)
}
