package crawl_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/fwojciec/websearch"
	"github.com/fwojciec/websearch/crawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pushAll(f *crawl.Frontier, urls ...string) {
	for _, u := range urls {
		f.Push(u)
	}
}

func popAll(f *crawl.Frontier) []string {
	var out []string
	for {
		u, ok := f.Pop()
		if !ok {
			return out
		}
		out = append(out, u)
	}
}

func TestFrontier_Pop_breadth_first_is_FIFO(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier(websearch.BreadthFirst, 10)
	pushAll(f, "a", "b", "c")

	assert.Equal(t, []string{"a", "b", "c"}, popAll(f))
}

func TestFrontier_Pop_depth_first_is_LIFO(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier(websearch.DepthFirst, 10)
	pushAll(f, "a", "b", "c")

	assert.Equal(t, []string{"c", "b", "a"}, popAll(f))
}

func TestFrontier_Pop_interleaved_with_Push(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier(websearch.BreadthFirst, 10)
	pushAll(f, "a", "b")

	u, ok := f.Pop()
	require.True(t, ok)
	assert.Equal(t, "a", u)

	pushAll(f, "c", "d")
	assert.Equal(t, []string{"b", "c", "d"}, f.Snapshot())
	assert.Equal(t, []string{"b", "c", "d"}, popAll(f))
}

func TestFrontier_Pop_empty(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier(websearch.DepthFirst, 10)

	u, ok := f.Pop()
	assert.False(t, ok)
	assert.Empty(t, u)
	assert.True(t, f.IsEmpty())
}

func TestFrontier_Push_keeps_duplicates(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier(websearch.BreadthFirst, 10)
	pushAll(f, "a", "a")

	assert.Equal(t, 2, f.Len())
}

func TestFrontier_Push_drops_when_full(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier(websearch.BreadthFirst, 2)

	assert.True(t, f.Push("a"))
	assert.True(t, f.Push("b"))
	assert.False(t, f.Push("c"), "push beyond capacity should be dropped")
	assert.Equal(t, []string{"a", "b"}, f.Snapshot())

	f.Pop()
	assert.True(t, f.Push("c"), "room frees up after pop")
	assert.Equal(t, []string{"b", "c"}, f.Snapshot())
}

func TestFrontier_Truncate_keeps_first_entries(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier(websearch.BreadthFirst, 10)
	pushAll(f, "a", "b", "c", "d", "e")
	f.Pop()

	f.Truncate(2)
	assert.Equal(t, []string{"b", "c"}, f.Snapshot())

	f.Truncate(5)
	assert.Equal(t, 2, f.Len(), "truncating above length is a no-op")

	f.Truncate(0)
	assert.True(t, f.IsEmpty())
}

func TestNewFrontier_defaults(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier(websearch.DepthFirst, 0)

	assert.Equal(t, crawl.DefaultMaxFrontierSize, f.MaxSize())
	assert.Equal(t, websearch.DepthFirst, f.Order())
}

func TestFrontier_concurrent_access(t *testing.T) {
	t.Parallel()

	const numGoroutines = 10
	const numOpsPerGoroutine = 100

	f := crawl.NewFrontier(websearch.BreadthFirst, numGoroutines*numOpsPerGoroutine)

	var wg sync.WaitGroup
	wg.Add(numGoroutines * 2)

	for i := 0; i < numGoroutines; i++ {
		go func(id int) {
			defer wg.Done()
			for j := 0; j < numOpsPerGoroutine; j++ {
				f.Push(fmt.Sprintf("https://example.com/%d/%d", id, j))
			}
		}(i)
	}

	var mu sync.Mutex
	popped := 0
	for i := 0; i < numGoroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < numOpsPerGoroutine; j++ {
				if _, ok := f.Pop(); ok {
					mu.Lock()
					popped++
					mu.Unlock()
				}
				f.Len()
			}
		}()
	}

	wg.Wait()

	assert.Equal(t, numGoroutines*numOpsPerGoroutine, popped+f.Len())
	assert.LessOrEqual(t, f.Len(), f.MaxSize())
}

func TestVisitedSet(t *testing.T) {
	t.Parallel()

	s := crawl.NewVisitedSet()

	assert.False(t, s.Has("https://example.com/"))
	assert.True(t, s.Add("https://example.com/"))
	assert.False(t, s.Add("https://example.com/"), "second add reports already present")
	assert.True(t, s.Has("https://example.com/"))
	assert.Equal(t, 1, s.Len())
}
