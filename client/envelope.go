package client

import (
	"github.com/localrivet/chainrpc/payload"
	"github.com/localrivet/chainrpc/protocol"
)

// CreateEnvelope stamps p with the next request id.
func (s *Session) CreateEnvelope(p payload.Payload) *protocol.Request {
	return protocol.NewRequest(s.ids.Next(), p.Method, p.Params)
}

// CreateEnvelopes stamps each payload in order; ids are consecutive.
func (s *Session) CreateEnvelopes(ps []payload.Payload) []*protocol.Request {
	ids := s.ids.Reserve(len(ps))
	envelopes := make([]*protocol.Request, len(ps))
	for i, p := range ps {
		envelopes[i] = protocol.NewRequest(ids[i], p.Method, p.Params)
	}
	return envelopes
}
