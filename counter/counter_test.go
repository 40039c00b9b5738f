package counter

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder collects every value a listener receives
type recorder struct {
	mu     sync.Mutex
	values []int
}

func (r *recorder) listen(v int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values = append(r.values, v)
}

func (r *recorder) got() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int(nil), r.values...)
}

func TestInitialValue(t *testing.T) {
	s := New(0)
	assert.Equal(t, 0, s.Value())
	assert.Equal(t, 0, s.Len())
}

func TestSubscribeReceivesCurrentValue(t *testing.T) {
	s := New(0)
	s.Publish(3)

	var r recorder
	unsubscribe := s.Subscribe(r.listen)
	defer unsubscribe()

	assert.Equal(t, []int{3}, r.got())
}

func TestPublishOrder(t *testing.T) {
	s := New(0)

	var a, b recorder
	s.Subscribe(a.listen)
	s.Subscribe(b.listen)

	for _, v := range []int{1, 2, 5, -4, 5} {
		s.Publish(v)
		// Publish is synchronous
		assert.Equal(t, v, a.got()[len(a.got())-1])
		assert.Equal(t, v, b.got()[len(b.got())-1])
	}

	assert.Equal(t, []int{0, 1, 2, 5, -4, 5}, a.got())
	assert.Equal(t, a.got(), b.got())
	assert.Equal(t, 5, s.Value())
}

func TestListenersCalledInSubscriptionOrder(t *testing.T) {
	s := New(0)

	var calls []string
	s.Subscribe(func(int) { calls = append(calls, "first") })
	s.Subscribe(func(int) { calls = append(calls, "second") })
	calls = nil

	s.Publish(1)
	assert.Equal(t, []string{"first", "second"}, calls)
}

func TestUnsubscribe(t *testing.T) {
	s := New(0)

	var r recorder
	unsubscribe := s.Subscribe(r.listen)
	s.Publish(1)
	unsubscribe()
	unsubscribe()
	s.Publish(2)

	assert.Equal(t, []int{0, 1}, r.got())
	assert.Equal(t, 0, s.Len())
}

func TestUnsubscribeDuringPublish(t *testing.T) {
	s := New(0)

	var unsubscribe func()
	var seen []int
	unsubscribe = s.Subscribe(func(v int) {
		seen = append(seen, v)
		if v == 1 && unsubscribe != nil {
			unsubscribe()
		}
	})

	s.Publish(1)
	s.Publish(2)
	assert.Equal(t, []int{0, 1}, seen)
}

func TestUpdate(t *testing.T) {
	s := New(0)

	var r recorder
	s.Subscribe(r.listen)

	assert.Equal(t, 1, s.Update(func(v int) int { return v + 1 }))
	assert.Equal(t, 0, s.Update(func(v int) int { return v - 1 }))
	assert.Equal(t, []int{0, 1, 0}, r.got())
}

func TestConcurrentUpdates(t *testing.T) {
	s := New(0)

	var r recorder
	s.Subscribe(r.listen)

	const n = 200
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Update(func(v int) int { return v + 1 })
		}()
	}
	wg.Wait()

	got := r.got()
	require.Len(t, got, n+1)
	// serialized updates are seen as a strictly increasing sequence
	for i, v := range got {
		assert.Equal(t, i, v)
	}
	assert.Equal(t, n, s.Value())
}
