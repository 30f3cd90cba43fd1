package event

import (
	"sort"
	"sync"
)

// Emitter is a synchronous, name-keyed event channel owned by one component.
// It is safe for concurrent use; handlers run without the lock held so they
// may subscribe or cancel while an event is being delivered.
type Emitter struct {
	mu     sync.RWMutex
	subs   map[string][]*subscription
	nextID uint64
}

// NewEmitter creates an empty emitter.
func NewEmitter() *Emitter {
	return &Emitter{subs: make(map[string][]*subscription)}
}

// On attaches a handler to the named event.
func (e *Emitter) On(name string, h Handler, opts ...SubscriptionOption) Subscription {
	cfg := subscriptionConfig{priority: PriorityNormal}
	for _, opt := range opts {
		opt(&cfg)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.subs == nil {
		e.subs = make(map[string][]*subscription)
	}

	e.nextID++
	sub := &subscription{id: e.nextID, name: name, handler: h, config: cfg, emitter: e}
	list := append(e.subs[name], sub)
	// Stable keeps insertion order among equal priorities.
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].config.priority < list[j].config.priority
	})
	e.subs[name] = list
	return sub
}

// Once attaches a handler that is cancelled after its first delivery.
func (e *Emitter) Once(name string, h Handler, opts ...SubscriptionOption) Subscription {
	return e.On(name, h, append(opts, WithOnce())...)
}

// Emit delivers payload to every active handler of the named event and
// returns the number of handlers invoked.
func (e *Emitter) Emit(name string, payload any) int {
	e.mu.RLock()
	list := make([]*subscription, len(e.subs[name]))
	copy(list, e.subs[name])
	e.mu.RUnlock()

	delivered := 0
	for _, sub := range list {
		if !sub.IsActive() {
			continue
		}
		if sub.config.once {
			sub.Cancel()
		}
		sub.handler(payload)
		delivered++
	}
	return delivered
}

// Count returns the number of active handlers for the named event.
func (e *Emitter) Count(name string) int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.subs[name])
}

// Total returns the number of active handlers across all events.
func (e *Emitter) Total() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	n := 0
	for _, list := range e.subs {
		n += len(list)
	}
	return n
}

func (e *Emitter) remove(sub *subscription) {
	e.mu.Lock()
	defer e.mu.Unlock()

	list := e.subs[sub.name]
	for i, s := range list {
		if s.id == sub.id {
			e.subs[sub.name] = append(list[:i:i], list[i+1:]...)
			break
		}
	}
	if len(e.subs[sub.name]) == 0 {
		delete(e.subs, sub.name)
	}
}
