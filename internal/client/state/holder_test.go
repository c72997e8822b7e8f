package state

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type counter struct {
	N    int
	Tags []string
}

func TestHolder_GetSetUpdate(t *testing.T) {
	h := New(counter{N: 1})
	assert.Equal(t, 1, h.Get().N)

	got := h.Update(func(c *counter) { c.N++ })
	assert.Equal(t, 2, got.N)
	assert.Equal(t, 2, h.Get().N)

	h.Set(counter{N: 10})
	assert.Equal(t, 10, h.Get().N)
}

func TestHolder_SubscribersSeeEveryChangeInOrder(t *testing.T) {
	h := New(counter{})
	var seenA, seenB []int

	unsubA := h.Subscribe(func(c counter) { seenA = append(seenA, c.N) })
	h.Subscribe(func(c counter) { seenB = append(seenB, c.N) })

	h.Update(func(c *counter) { c.N = 1 })
	h.Update(func(c *counter) { c.N = 2 })
	unsubA()
	unsubA()
	h.Update(func(c *counter) { c.N = 3 })

	assert.Equal(t, []int{1, 2}, seenA)
	assert.Equal(t, []int{1, 2, 3}, seenB)
}

func TestHolder_SubscriberMayReadHolder(t *testing.T) {
	h := New(counter{})
	var inside int
	h.Subscribe(func(counter) { inside = h.Get().N })

	h.Set(counter{N: 7})
	assert.Equal(t, 7, inside)
}

func TestHolder_ConcurrentUpdates(t *testing.T) {
	h := New(counter{})
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			h.Update(func(c *counter) { c.N++ })
		}()
	}
	wg.Wait()
	require.Equal(t, 50, h.Get().N)
}

func TestHolder_ConcurrentUpdatesNotifyInOrder(t *testing.T) {
	h := New(counter{})
	var seen []int
	h.Subscribe(func(c counter) {
		time.Sleep(100 * time.Microsecond)
		seen = append(seen, c.N)
	})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			h.Update(func(c *counter) { c.N++ })
		}()
	}
	wg.Wait()

	require.Len(t, seen, 20)
	for i, n := range seen {
		assert.Equal(t, i+1, n)
	}
	assert.Equal(t, h.Get().N, seen[len(seen)-1])
}
