package parallel

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobQueue_FIFO(t *testing.T) {
	q := NewJobQueue(0)

	for i := range 5 {
		q.Push(Tile{X: i, Y: i * 2})
	}
	q.PushStop(1)
	require.Equal(t, 6, q.Len())

	for i := range 5 {
		j := q.Pop()
		require.False(t, j.IsStop())
		assert.Equal(t, Tile{X: i, Y: i * 2}, j.Tile)
	}
	assert.True(t, q.Pop().IsStop())
	assert.Equal(t, 0, q.Len())
	assert.Equal(t, 6, q.Pushed())
	assert.Equal(t, 6, q.Popped())
}

func TestJobQueue_StopIsNotACoordinate(t *testing.T) {
	// A tile at (-1, -1) is still work: termination is carried by the tag.
	q := NewJobQueue(2)
	q.Push(Tile{X: -1, Y: -1})
	q.PushStop(1)

	j := q.Pop()
	assert.Equal(t, JobWork, j.Kind)
	assert.Equal(t, Tile{X: -1, Y: -1}, j.Tile)
	assert.Equal(t, JobStop, q.Pop().Kind)
}

func TestJobQueue_PopBlocksUntilPush(t *testing.T) {
	q := NewJobQueue(0)
	got := make(chan Job, 1)

	go func() {
		got <- q.Pop()
	}()

	select {
	case <-got:
		t.Fatal("Pop returned on an empty queue")
	case <-time.After(20 * time.Millisecond):
	}

	q.Push(Tile{X: 3, Y: 4})

	select {
	case j := <-got:
		assert.Equal(t, Tile{X: 3, Y: 4}, j.Tile)
	case <-time.After(time.Second):
		t.Fatal("Pop did not wake after Push")
	}
}

func TestJobQueue_PushStopWakesAllWaiters(t *testing.T) {
	const waiters = 8
	q := NewJobQueue(0)

	var wg sync.WaitGroup
	stops := make(chan Job, waiters)
	for range waiters {
		wg.Add(1)
		go func() {
			defer wg.Done()
			stops <- q.Pop()
		}()
	}

	q.PushStop(waiters)

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("waiters did not all wake")
	}

	close(stops)
	n := 0
	for j := range stops {
		assert.True(t, j.IsStop())
		n++
	}
	assert.Equal(t, waiters, n)
}

func TestJobQueue_ConcurrentConsumers(t *testing.T) {
	const (
		consumers = 4
		items     = 1000
	)
	q := NewJobQueue(0)

	var mu sync.Mutex
	seen := make(map[Tile]int)

	var wg sync.WaitGroup
	for range consumers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				j := q.Pop()
				if j.IsStop() {
					return
				}
				mu.Lock()
				seen[j.Tile]++
				mu.Unlock()
			}
		}()
	}

	for i := range items {
		q.Push(Tile{X: i})
	}
	q.PushStop(consumers)
	wg.Wait()

	require.Len(t, seen, items)
	for tile, n := range seen {
		require.Equalf(t, 1, n, "tile %v popped %d times", tile, n)
	}
	assert.Equal(t, items+consumers, q.Pushed())
	assert.Equal(t, items+consumers, q.Popped())
	assert.Equal(t, 0, q.Len())
}

func TestJobQueue_InterleavedKeepsOrder(t *testing.T) {
	// Exercise prefix reclamation: the queue is filled and half drained
	// repeatedly, and must still hand out jobs in push order.
	q := NewJobQueue(4)
	next := 0
	want := 0

	for range 50 {
		for range 7 {
			q.Push(Tile{X: next})
			next++
		}
		for range 4 {
			require.Equal(t, want, q.Pop().Tile.X)
			want++
		}
	}
	for q.Len() > 0 {
		require.Equal(t, want, q.Pop().Tile.X)
		want++
	}
	assert.Equal(t, next, want)
}
