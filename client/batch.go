package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/localrivet/chainrpc/payload"
	"github.com/localrivet/chainrpc/protocol"
)

// Item is one entry of a batch result. Err is set when the node reported an
// error for the entry, sent no reply for it, or its result failed to format.
type Item struct {
	Value any
	Err   error
}

// BatchResult holds the entries of a batch in submission order.
type BatchResult []Item

// Values returns every value, or the first entry error.
func (b BatchResult) Values() ([]any, error) {
	values := make([]any, len(b))
	for i, item := range b {
		if item.Err != nil {
			return nil, fmt.Errorf("batch item %d: %w", i, item.Err)
		}
		values[i] = item.Value
	}
	return values, nil
}

// SendBatch sends all payloads as one array request. Replies may come back
// in any order; each is matched to its payload by id. A reply that is not
// an array fails the whole batch with *BatchError.
func (s *Session) SendBatch(ctx context.Context, ps ...payload.Payload) (BatchResult, error) {
	if len(ps) == 0 {
		return BatchResult{}, nil
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	envelopes := s.CreateEnvelopes(ps)
	data, err := json.Marshal(envelopes)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal batch request: %w", err)
	}

	s.logger.Debug("Sending batch", "size", len(envelopes), "first_id", envelopes[0].ID)
	raw, err := s.transport.Request(ctx, data)
	if err != nil {
		return nil, err
	}
	if !protocol.IsBatch(raw) {
		return nil, &BatchError{Raw: string(raw)}
	}

	var replies []protocol.Response
	if err := json.Unmarshal(raw, &replies); err != nil {
		return nil, fmt.Errorf("%w: batch: %v", ErrInvalidResponse, err)
	}

	return s.correlate(ps, envelopes, replies), nil
}

// correlate orders replies by the position of their id among the
// submitted envelopes. Unknown ids are dropped; for a duplicated id the
// first reply wins.
func (s *Session) correlate(ps []payload.Payload, envelopes []*protocol.Request, replies []protocol.Response) BatchResult {
	position := make(map[uint64]int, len(envelopes))
	for i, env := range envelopes {
		position[env.ID] = i
	}

	matched := make([]*protocol.Response, len(envelopes))
	for i := range replies {
		id, err := protocol.NumericID(replies[i].ID)
		if err != nil {
			s.logger.Debug("Ignoring batch reply without usable id", "error", err)
			continue
		}
		idx, ok := position[id]
		if !ok {
			s.logger.Debug("Ignoring batch reply for unknown id", "id", id)
			continue
		}
		if matched[idx] == nil {
			matched[idx] = &replies[i]
		}
	}

	result := make(BatchResult, len(envelopes))
	for i, res := range matched {
		if res == nil {
			result[i] = Item{Err: fmt.Errorf("%w: %s (id %d)", ErrMissingResponse, ps[i].Method, envelopes[i].ID)}
			continue
		}
		v, err := unwrap(ps[i], res)
		result[i] = Item{Value: v, Err: err}
	}
	return result
}
