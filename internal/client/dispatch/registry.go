package dispatch

import (
	"sync"
	"time"

	"github.com/dmitrijs2005/gatekeeper/internal/client/client"
	"github.com/google/uuid"
)

// Registry remembers issued requests until their reply arrives or they
// expire. Classification never depends on it; it exists so that lost
// replies are noticed and so the UI can show what is still in flight.
//
// A reply may be resolved before its request is tracked: the transport
// delivers replies from its own goroutine and the issuer only gets the
// descriptor back afterwards. Resolve remembers such ids so the late Track
// is dropped instead of leaving a descriptor that can only expire.
type Registry struct {
	mu      sync.Mutex
	pending map[uuid.UUID]client.Descriptor
	early   map[uuid.UUID]time.Time
	now     func() time.Time
}

func NewRegistry() *Registry {
	return &Registry{
		pending: make(map[uuid.UUID]client.Descriptor),
		early:   make(map[uuid.UUID]time.Time),
		now:     time.Now,
	}
}

// Track records d as in flight, unless its reply was already resolved.
func (r *Registry) Track(d client.Descriptor) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.early[d.CorrelationID]; ok {
		delete(r.early, d.CorrelationID)
		return
	}
	r.pending[d.CorrelationID] = d
}

// Resolve removes and returns the descriptor for id. An id that is not
// tracked yet is remembered so that a later Track for it is a no-op.
func (r *Registry) Resolve(id uuid.UUID) (client.Descriptor, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.pending[id]
	if !ok {
		r.early[id] = r.now()
		return client.Descriptor{}, false
	}
	delete(r.pending, id)
	return d, true
}

// Expire drops and returns descriptors issued more than ttl before now.
// Remembered early resolutions older than ttl are forgotten as well.
func (r *Registry) Expire(now time.Time, ttl time.Duration) []client.Descriptor {
	r.mu.Lock()
	defer r.mu.Unlock()

	var expired []client.Descriptor
	for id, d := range r.pending {
		if now.Sub(d.IssuedAt) > ttl {
			expired = append(expired, d)
			delete(r.pending, id)
		}
	}
	for id, at := range r.early {
		if now.Sub(at) > ttl {
			delete(r.early, id)
		}
	}
	return expired
}

// Pending counts in-flight requests of kind k.
func (r *Registry) Pending(k client.Kind) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for _, d := range r.pending {
		if d.Kind == k {
			n++
		}
	}
	return n
}
