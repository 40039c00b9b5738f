// Package counter holds the shared counter exposed to the pages.
//
// A Subject owns the current value and its listeners. Publishing is
// synchronous: by the time Publish returns every listener registered before
// the call has received the new value. Publishes are serialized, so all
// listeners observe the same order.
package counter

import "sync"

// Listener receives published values
type Listener func(value int)

// Subject is an observable integer. The zero value is not usable; use New.
type Subject struct {
	// publishMu serializes publishes and subscriptions so listeners see a
	// single order of values
	publishMu sync.Mutex

	mu        sync.RWMutex
	value     int
	nextID    uint64
	listeners map[uint64]Listener
	order     []uint64
}

// New creates a Subject holding initial
func New(initial int) *Subject {
	return &Subject{
		value:     initial,
		listeners: make(map[uint64]Listener),
	}
}

// Value returns the current value
func (s *Subject) Value() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Publish sets the value and delivers it to every listener in subscription
// order. Listeners must not call Publish, Update or Subscribe.
func (s *Subject) Publish(value int) {
	s.publishMu.Lock()
	defer s.publishMu.Unlock()
	s.publishLocked(value)
}

// Update applies fn to the current value and publishes the result
func (s *Subject) Update(fn func(int) int) int {
	s.publishMu.Lock()
	defer s.publishMu.Unlock()

	next := fn(s.Value())
	s.publishLocked(next)
	return next
}

// Subscribe registers fn and immediately delivers the current value to it.
// The returned function removes the listener; calling it more than once is
// harmless.
func (s *Subject) Subscribe(fn Listener) (unsubscribe func()) {
	s.publishMu.Lock()
	defer s.publishMu.Unlock()

	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.order = append(s.order, id)
	current := s.value
	s.mu.Unlock()

	fn(current)

	var once sync.Once
	return func() {
		once.Do(func() { s.remove(id) })
	}
}

// Len returns the number of registered listeners
func (s *Subject) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.listeners)
}

func (s *Subject) publishLocked(value int) {
	s.mu.Lock()
	s.value = value
	targets := make([]Listener, 0, len(s.order))
	for _, id := range s.order {
		targets = append(targets, s.listeners[id])
	}
	s.mu.Unlock()

	for _, fn := range targets {
		fn(value)
	}
}

func (s *Subject) remove(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.listeners, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}
