package syncmap_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"oss.terrastruct.com/tikzed/lib/syncmap"
)

func TestSwap(t *testing.T) {
	t.Parallel()

	sm := syncmap.New[string, int]()

	var wg sync.WaitGroup
	var mu sync.Mutex
	loadedCount := 0
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, loaded := sm.Swap("k", i)
			if loaded {
				mu.Lock()
				loadedCount++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()
	// Only the first swap finds the key empty.
	assert.Equal(t, 7, loadedCount)

	prev, loaded := sm.Swap("k", 100)
	assert.True(t, loaded)
	assert.True(t, prev >= 0 && prev < 8)
}

func TestDeleteFunc(t *testing.T) {
	t.Parallel()

	sm := syncmap.New[string, int]()
	_, loaded := sm.Swap("a", 1)
	assert.False(t, loaded)
	prev, loaded := sm.Swap("a", 2)
	assert.True(t, loaded)
	assert.Equal(t, 1, prev)

	assert.False(t, sm.DeleteFunc("a", func(v int) bool { return v == 1 }))
	assert.True(t, sm.DeleteFunc("a", func(v int) bool { return v == 2 }))
	assert.False(t, sm.DeleteFunc("a", func(int) bool { return true }))
	_, loaded = sm.Swap("a", 3)
	assert.False(t, loaded)
	assert.False(t, sm.DeleteFunc("missing", func(int) bool { return true }))
}
