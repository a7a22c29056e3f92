package service

import (
	"sync"

	"github.com/schoolevents/eventhub/internal/core/domain"
)

// SessionHub fans session changes out to subscribers. Callbacks run
// synchronously on the publishing goroutine, in subscription order.
type SessionHub struct {
	mu   sync.RWMutex
	next int
	subs map[int]func(domain.SessionChange)
	keys []int
}

func NewSessionHub() *SessionHub {
	return &SessionHub{subs: make(map[int]func(domain.SessionChange))}
}

// Subscribe registers fn and returns a function that removes it.
func (h *SessionHub) Subscribe(fn func(domain.SessionChange)) (unsubscribe func()) {
	h.mu.Lock()
	id := h.next
	h.next++
	h.subs[id] = fn
	h.keys = append(h.keys, id)
	h.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			delete(h.subs, id)
			for i, k := range h.keys {
				if k == id {
					h.keys = append(h.keys[:i], h.keys[i+1:]...)
					break
				}
			}
		})
	}
}

// Publish delivers change to every current subscriber.
func (h *SessionHub) Publish(change domain.SessionChange) {
	h.mu.RLock()
	fns := make([]func(domain.SessionChange), 0, len(h.keys))
	for _, k := range h.keys {
		fns = append(fns, h.subs[k])
	}
	h.mu.RUnlock()

	for _, fn := range fns {
		fn(change)
	}
}
