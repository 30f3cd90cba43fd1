package event

import (
	"sync"
	"sync/atomic"
)

// Subscription is the handle returned when attaching a handler.
type Subscription interface {
	// Name returns the subscribed event name.
	Name() string

	// IsActive returns true until the subscription is cancelled.
	IsActive() bool

	// Cancel permanently detaches the handler from its emitter.
	// Safe to call multiple times.
	Cancel()
}

// subscription is the internal implementation of Subscription.
type subscription struct {
	id        uint64
	name      string
	handler   Handler
	config    subscriptionConfig
	emitter   *Emitter
	cancelled atomic.Bool
}

// Name returns the event name.
func (s *subscription) Name() string {
	return s.name
}

// IsActive returns true if the subscription has not been cancelled.
func (s *subscription) IsActive() bool {
	return !s.cancelled.Load()
}

// Cancel removes the subscription from its emitter.
func (s *subscription) Cancel() {
	if s.cancelled.Swap(true) {
		return
	}
	s.emitter.remove(s)
}

// SubscriptionSet collects handles so they can be released together.
// The zero value is ready to use.
type SubscriptionSet struct {
	mu   sync.Mutex
	subs []Subscription
}

// Add records a subscription.
func (ss *SubscriptionSet) Add(subs ...Subscription) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	ss.subs = append(ss.subs, subs...)
}

// Len returns the number of recorded subscriptions.
func (ss *SubscriptionSet) Len() int {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	return len(ss.subs)
}

// CancelAll cancels every recorded subscription and empties the set.
func (ss *SubscriptionSet) CancelAll() {
	ss.mu.Lock()
	subs := ss.subs
	ss.subs = nil
	ss.mu.Unlock()

	for _, s := range subs {
		s.Cancel()
	}
}
