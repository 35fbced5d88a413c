package client

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/localrivet/chainrpc/payload"
	"github.com/localrivet/chainrpc/protocol"
)

// Callback receives the result of each notification and the subscription
// id it was tagged with.
type Callback func(result json.RawMessage, id string)

// Subscription is a live server subscription. Its handle is stable for the
// subscription's lifetime; its id changes when the session resubscribes
// after a reconnect.
type Subscription struct {
	session         *Session
	handle          string
	payload         payload.Payload
	autoResubscribe bool
	callback        Callback
	closed          atomic.Bool

	mu    sync.RWMutex
	id    string
	rawID json.RawMessage
}

// Handle returns the stable local handle.
func (sub *Subscription) Handle() string {
	return sub.handle
}

// ID returns the current server issued id.
func (sub *Subscription) ID() string {
	sub.mu.RLock()
	defer sub.mu.RUnlock()
	return sub.id
}

// RawID returns the current server issued id as sent by the node, a JSON
// string for Ethereum nodes and a number for Solana nodes.
func (sub *Subscription) RawID() json.RawMessage {
	sub.mu.RLock()
	defer sub.mu.RUnlock()
	return sub.rawID
}

// Unsubscribe detaches the local listener and cancels the subscription on
// the node. An empty method is derived from the subscribe method:
// eth_subscribe becomes eth_unsubscribe and slotSubscribe becomes
// slotUnsubscribe.
func (sub *Subscription) Unsubscribe(ctx context.Context, method string) (bool, error) {
	sub.Close()
	if method == "" {
		method = unsubscribeMethod(sub.payload.Method)
	}
	v, err := sub.session.Send(ctx, payload.Build(method, []any{sub.RawID()}, payload.Bool))
	if err != nil {
		return false, err
	}
	return v.(bool), nil
}

// Close detaches the local listener only.
func (sub *Subscription) Close() {
	sub.closed.Store(true)
	sub.session.subs.remove(sub.handle)
}

func (sub *Subscription) live() bool {
	return !sub.closed.Load()
}

func (sub *Subscription) deliver(result json.RawMessage, id string) {
	if sub.callback != nil && sub.live() {
		sub.callback(result, id)
	}
}

func (sub *Subscription) setID(raw json.RawMessage) (old string) {
	sub.mu.Lock()
	defer sub.mu.Unlock()
	old = sub.id
	sub.id = protocol.IDKey(raw)
	sub.rawID = raw
	return old
}

func unsubscribeMethod(subscribe string) string {
	switch {
	case strings.HasSuffix(subscribe, "_subscribe"):
		return strings.TrimSuffix(subscribe, "_subscribe") + "_unsubscribe"
	case strings.HasSuffix(subscribe, "Subscribe"):
		return strings.TrimSuffix(subscribe, "Subscribe") + "Unsubscribe"
	default:
		return subscribe
	}
}

// registry indexes subscriptions by handle and by current server id.
type registry struct {
	mu       sync.RWMutex
	byHandle map[string]*Subscription
	byID     map[string]string
}

func newRegistry() *registry {
	return &registry{
		byHandle: make(map[string]*Subscription),
		byID:     make(map[string]string),
	}
}

func newHandle() string {
	return uuid.NewString()
}

func (r *registry) add(sub *Subscription) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byHandle[sub.handle] = sub
	r.byID[sub.ID()] = sub.handle
}

// rebind points the subscription at a new server id. Notifications tagged
// with the old id are no longer delivered.
func (r *registry) rebind(handle string, raw json.RawMessage) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	sub, ok := r.byHandle[handle]
	if !ok {
		return false
	}
	old := sub.setID(raw)
	if r.byID[old] == handle {
		delete(r.byID, old)
	}
	r.byID[sub.ID()] = handle
	return true
}

func (r *registry) remove(handle string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sub, ok := r.byHandle[handle]
	if !ok {
		return
	}
	delete(r.byHandle, handle)
	if id := sub.ID(); r.byID[id] == handle {
		delete(r.byID, id)
	}
}

func (r *registry) lookup(id string) (*Subscription, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	handle, ok := r.byID[id]
	if !ok {
		return nil, false
	}
	sub, ok := r.byHandle[handle]
	return sub, ok
}

// resubscribable returns the subscriptions that follow reconnects.
func (r *registry) resubscribable() []*Subscription {
	r.mu.RLock()
	defer r.mu.RUnlock()
	subs := make([]*Subscription, 0, len(r.byHandle))
	for _, sub := range r.byHandle {
		if sub.autoResubscribe {
			subs = append(subs, sub)
		}
	}
	return subs
}

func (r *registry) len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byHandle)
}

func (r *registry) clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byHandle = make(map[string]*Subscription)
	r.byID = make(map[string]string)
}
