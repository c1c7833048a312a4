// Package events fans report changes out to live subscribers.
package events

import (
	"sync"

	"github.com/techagentng/civiceye/models"
)

const bufferSize = 16

// Hub delivers every published event to all current subscribers. Publishing never blocks:
// a subscriber whose buffer is full misses the event.
type Hub struct {
	mu     sync.Mutex
	subs   map[chan models.ReportEvent]struct{}
	closed bool
}

func NewHub() *Hub {
	return &Hub{subs: make(map[chan models.ReportEvent]struct{})}
}

// Subscribe registers a new listener. The returned cancel func unregisters it and closes the channel.
func (h *Hub) Subscribe() (<-chan models.ReportEvent, func()) {
	ch := make(chan models.ReportEvent, bufferSize)

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			if _, ok := h.subs[ch]; ok {
				delete(h.subs, ch)
				close(ch)
			}
		})
	}
	return ch, cancel
}

// Publish returns the number of subscribers the event was delivered to.
func (h *Hub) Publish(ev models.ReportEvent) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	delivered := 0
	for ch := range h.subs {
		select {
		case ch <- ev:
			delivered++
		default:
		}
	}
	return delivered
}

func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Close closes every subscriber channel. Later subscriptions receive an already closed channel.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for ch := range h.subs {
		delete(h.subs, ch)
		close(ch)
	}
}
