// Package ws fans out per-tenant change events to websocket subscribers.
package ws

import (
	"encoding/json"
	"sync"

	"taskboard/internal/domain"
	"taskboard/internal/logger"
)

// Hub keeps one subscriber set per tenant. Publishing never blocks: a
// subscriber whose buffer is full is disconnected.
type Hub struct {
	mu   sync.RWMutex
	subs map[int64]map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[int64]map[*Client]struct{})}
}

func (h *Hub) Subscribe(c *Client) {
	h.mu.Lock()
	set, ok := h.subs[c.TenantID]
	if !ok {
		set = make(map[*Client]struct{})
		h.subs[c.TenantID] = set
	}
	set[c] = struct{}{}
	h.mu.Unlock()

	subscribersGauge.Inc()
}

// Unsubscribe removes c and closes its send channel. Safe to call more than
// once.
func (h *Hub) Unsubscribe(c *Client) {
	h.mu.Lock()
	set := h.subs[c.TenantID]
	if _, ok := set[c]; !ok {
		h.mu.Unlock()
		return
	}
	delete(set, c)
	if len(set) == 0 {
		delete(h.subs, c.TenantID)
	}
	// closed under the write lock so Publish never sends on a closed channel
	close(c.Send)
	h.mu.Unlock()

	subscribersGauge.Dec()
}

// Publish delivers ev to every subscriber of tenantID and nobody else.
func (h *Hub) Publish(tenantID int64, ev domain.Event) {
	msg, err := json.Marshal(ev)
	if err != nil {
		logger.Error("ws: marshal event", "error", err, "type", ev.Type)
		return
	}

	var slow []*Client
	h.mu.RLock()
	for c := range h.subs[tenantID] {
		select {
		case c.Send <- msg:
		default:
			slow = append(slow, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range slow {
		logger.Warn("ws: dropping slow subscriber", "tenant_id", tenantID)
		droppedTotal.Inc()
		h.Unsubscribe(c)
	}
}

// Subscribers returns the number of open subscriptions for tenantID.
func (h *Hub) Subscribers(tenantID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[tenantID])
}

// Close disconnects every subscriber.
func (h *Hub) Close() {
	h.mu.RLock()
	var all []*Client
	for _, set := range h.subs {
		for c := range set {
			all = append(all, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range all {
		h.Unsubscribe(c)
	}
}
