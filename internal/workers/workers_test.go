package workers

import (
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPool_Workers(t *testing.T) {
	t.Parallel()

	assert.Equal(t, runtime.NumCPU(), New(0).Workers())
	assert.Equal(t, runtime.NumCPU(), (&Pool{}).Workers())
	assert.Equal(t, 3, New(3).Workers())

	var nilPool *Pool
	assert.Equal(t, runtime.NumCPU(), nilPool.Workers())
}

func TestPool_Range_CoversEveryIndexOnce(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		n       int
		workers int
	}{
		{name: "empty", n: 0, workers: 4},
		{name: "single element", n: 1, workers: 4},
		{name: "smaller than a chunk", n: 100, workers: 8},
		{name: "many chunks", n: 10_000, workers: 8},
		{name: "one worker", n: 5_000, workers: 1},
		{name: "uneven split", n: 1_037, workers: 3},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			hits := make([]int, tt.n)
			New(tt.workers).Range(tt.n, func(start, end int) {
				for i := start; i < end; i++ {
					hits[i]++
				}
			})

			for i, h := range hits {
				if h != 1 {
					t.Fatalf("index %d visited %d times, want 1", i, h)
				}
			}
		})
	}
}

func TestPool_Range_RespectsLimit(t *testing.T) {
	t.Parallel()

	var (
		mu      sync.Mutex
		active  int
		maxSeen int
	)

	New(2).Range(minChunk*10, func(start, end int) {
		mu.Lock()
		active++
		if active > maxSeen {
			maxSeen = active
		}
		mu.Unlock()

		mu.Lock()
		active--
		mu.Unlock()
	})

	assert.LessOrEqual(t, maxSeen, 2)
}
