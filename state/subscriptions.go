package state

import "sync"

// Subscriptions tracks multiple unsubscribe callbacks so a host can
// drop every listener it attached in one call on teardown.
type Subscriptions struct {
	mu     sync.Mutex
	unsubs []func()
}

// NewSubscriptions creates an empty tracker.
func NewSubscriptions() *Subscriptions {
	return &Subscriptions{}
}

// Add registers an unsubscribe callback.
func (s *Subscriptions) Add(unsub func()) {
	if s == nil || unsub == nil {
		return
	}
	s.mu.Lock()
	s.unsubs = append(s.unsubs, unsub)
	s.mu.Unlock()
}

// Subscribe registers a listener and tracks the unsubscribe.
func (s *Subscriptions) Subscribe(sub Subscribable, fn func()) {
	if s == nil || sub == nil || fn == nil {
		return
	}
	s.Add(sub.Subscribe(fn))
}

// Clear unsubscribes all tracked callbacks.
func (s *Subscriptions) Clear() {
	if s == nil {
		return
	}
	s.mu.Lock()
	unsubs := s.unsubs
	s.unsubs = nil
	s.mu.Unlock()
	for _, unsub := range unsubs {
		if unsub != nil {
			unsub()
		}
	}
}
