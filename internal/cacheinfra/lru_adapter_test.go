package cacheinfra

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/goliatone/go-funcache/pkg/testsupport"
	"github.com/stretchr/testify/require"
)

func newTestLRU(t *testing.T, capacity int) (*lruStore, *testsupport.Clock) {
	t.Helper()

	clock := testsupport.NewClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	store, err := NewLRUStore(Config{Capacity: capacity, Now: clock.Now})
	require.NoError(t, err)
	return store, clock
}

func TestLRUStore_SetGet(t *testing.T) {
	store, _ := newTestLRU(t, 0)

	_, ok := store.Get("a")
	require.False(t, ok)
	require.False(t, store.Has("a"))

	store.Set("a", 1, 0)
	require.True(t, store.Has("a"))

	v, ok := store.Get("a")
	require.True(t, ok)
	require.Equal(t, 1, v)
}

func TestLRUStore_Overwrite(t *testing.T) {
	store, clock := newTestLRU(t, 0)

	store.Set("a", 1, 100*time.Millisecond)
	clock.Advance(90 * time.Millisecond)
	store.Set("a", 2, 100*time.Millisecond)
	clock.Advance(90 * time.Millisecond)

	v, ok := store.Get("a")
	require.True(t, ok, "overwrite must refresh age")
	require.Equal(t, 2, v)
	require.Equal(t, 1, store.Len())
}

func TestLRUStore_TTL(t *testing.T) {
	store, clock := newTestLRU(t, 0)

	store.Set("forever", "f", 0)
	store.Set("never", "n", -1)
	store.Set("short", "s", 100*time.Millisecond)

	_, ok := store.Get("never")
	require.False(t, ok)

	clock.Advance(90 * time.Millisecond)
	_, ok = store.Get("short")
	require.True(t, ok)

	clock.Advance(20 * time.Millisecond)
	require.False(t, store.Has("short"))
	_, ok = store.Get("short")
	require.False(t, ok)

	clock.Advance(24 * time.Hour)
	v, ok := store.Get("forever")
	require.True(t, ok)
	require.Equal(t, "f", v)
}

func TestLRUStore_StaleEntryRemovedOnGet(t *testing.T) {
	store, _ := newTestLRU(t, 0)

	store.Set("a", 1, -1)
	require.Equal(t, 1, store.Len())

	_, ok := store.Get("a")
	require.False(t, ok)
	require.Equal(t, 0, store.Len())
}

func TestLRUStore_CapacityEviction(t *testing.T) {
	store, _ := newTestLRU(t, 2)

	store.Set("a", 1, 0)
	store.Set("b", 2, 0)

	// promote a so b becomes the least recently used entry
	_, ok := store.Get("a")
	require.True(t, ok)

	store.Set("c", 3, 0)
	require.Equal(t, 2, store.Len())

	_, ok = store.Get("b")
	require.False(t, ok)
	_, ok = store.Get("a")
	require.True(t, ok)
	_, ok = store.Get("c")
	require.True(t, ok)
}

func TestLRUStore_HasDoesNotPromote(t *testing.T) {
	store, _ := newTestLRU(t, 2)

	store.Set("a", 1, 0)
	store.Set("b", 2, 0)
	require.True(t, store.Has("a"))

	store.Set("c", 3, 0)
	require.False(t, store.Has("a"))
	require.True(t, store.Has("b"))
}

func TestLRUStore_NegativeCapacity(t *testing.T) {
	_, err := NewLRUStore(Config{Capacity: -1})
	require.Error(t, err)
}

func TestLRUStore_Concurrent(t *testing.T) {
	store, _ := newTestLRU(t, 64)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				key := fmt.Sprintf("k%d", (worker*j)%100)
				store.Set(key, j, 0)
				store.Get(key)
				store.Has(key)
			}
		}(i)
	}
	wg.Wait()

	require.LessOrEqual(t, store.Len(), 64)
}
