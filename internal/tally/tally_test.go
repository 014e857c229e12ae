package tally

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotOrdering(t *testing.T) {
	tl := New()
	for _, w := range []string{"b", "a", "c", "a", "c", "d"} {
		tl.Increment(w)
	}

	// a and c tie at 2, a was seen first; b and d tie at 1, b was seen first
	want := []Entry{
		{Word: "a", Count: 2},
		{Word: "c", Count: 2},
		{Word: "b", Count: 1},
		{Word: "d", Count: 1},
	}
	assert.Equal(t, want, tl.Snapshot(0))
	assert.Equal(t, want[:2], tl.Snapshot(2))
	assert.Equal(t, 4, tl.Len())
	assert.Equal(t, 2, tl.Count("c"))
	assert.Equal(t, 0, tl.Count("missing"))
}

func TestSnapshotTruncatesToTopN(t *testing.T) {
	tl := New()
	for i := 0; i < 15; i++ {
		w := fmt.Sprintf("w%02d", i)
		for j := 0; j <= i; j++ {
			tl.Increment(w)
		}
	}

	top := tl.Snapshot(TopN)
	require.Len(t, top, TopN)
	assert.Equal(t, Entry{Word: "w14", Count: 15}, top[0])
	assert.Equal(t, Entry{Word: "w05", Count: 6}, top[TopN-1])
}

func TestSnapshotIsACopy(t *testing.T) {
	tl := New()
	tl.Increment("cat")

	snap := tl.Snapshot(0)
	tl.Increment("cat")
	assert.Equal(t, 1, snap[0].Count)
	assert.Equal(t, 2, tl.Count("cat"))
}

func TestReset(t *testing.T) {
	tl := New()
	tl.Increment("cat")
	tl.Reset()

	assert.Equal(t, 0, tl.Len())
	assert.Empty(t, tl.Snapshot(0))
}

func TestConcurrentIncrement(t *testing.T) {
	tl := New()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 500; j++ {
				tl.Increment("cat")
				if j%2 == 0 {
					tl.Increment("dog")
				}
				_ = tl.Snapshot(TopN)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 10000, tl.Count("cat"))
	assert.Equal(t, 5000, tl.Count("dog"))
}
