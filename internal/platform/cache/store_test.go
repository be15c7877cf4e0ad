package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_GetOrLoad_DeduplicatesConcurrentLoads(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32
	loader := func(context.Context) (any, error) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		return "value", nil
	}

	const workers = 32
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			v, err := store.GetOrLoad(context.Background(), "standings:all", loader)
			if err != nil || v != "value" {
				t.Errorf("unexpected result %v, %v", v, err)
			}
		}()
	}
	close(start)
	wg.Wait()

	assert.EqualValues(t, 1, calls.Load())
}

func TestStore_GetOrLoad_CountsHitsAndMisses(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32
	loader := func(context.Context) (any, error) {
		calls.Add(1)
		return "cached", nil
	}

	for i := 0; i < 3; i++ {
		_, err := store.GetOrLoad(context.Background(), "k", loader)
		require.NoError(t, err)
	}

	assert.EqualValues(t, 1, calls.Load())
	hits, misses := store.Stats()
	assert.EqualValues(t, 2, hits)
	assert.EqualValues(t, 1, misses)
}

func TestStore_GetOrLoad_DoesNotCacheErrors(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	boom := errors.New("store down")

	_, err := store.GetOrLoad(context.Background(), "k", func(context.Context) (any, error) { return nil, boom })
	require.ErrorIs(t, err, boom)
	assert.Zero(t, store.Len())

	_, err = store.GetOrLoad(context.Background(), "k", nil)
	assert.ErrorIs(t, err, errNoLoader)
}

func TestStore_ExpiresAfterTTL(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	store := NewStore(30 * time.Second)
	store.now = func() time.Time { return now }

	store.Set(context.Background(), "standings:all", "rows")
	_, ok := store.Get(context.Background(), "standings:all")
	require.True(t, ok)

	now = now.Add(31 * time.Second)
	_, ok = store.Get(context.Background(), "standings:all")
	assert.False(t, ok)
	assert.Zero(t, store.Len())
}

func TestStore_DeletePrefix(t *testing.T) {
	t.Parallel()

	store := NewStore(0)
	ctx := context.Background()
	store.Set(ctx, "standings:all", 1)
	store.Set(ctx, "standings:league:la-liga", 2)
	store.Set(ctx, "transfers:recent", 3)

	assert.Equal(t, 2, store.DeletePrefix(ctx, "standings:"))
	assert.Equal(t, 1, store.Len())
	_, ok := store.Get(ctx, "transfers:recent")
	assert.True(t, ok)
}

func TestLoad_TypedValue(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	got, err := Load(context.Background(), store, "ints", func(context.Context) ([]int, error) {
		return []int{1, 2, 3}, nil
	})
	require.NoError(t, err)
	assert.Len(t, got, 3)

	store.Set(context.Background(), "wrong", "string")
	_, err = Load(context.Background(), store, "wrong", func(context.Context) ([]int, error) {
		return nil, nil
	})
	assert.Error(t, err)
}

func TestLoad_NilStoreCallsLoader(t *testing.T) {
	t.Parallel()

	got, err := Load(context.Background(), nil, "k", func(context.Context) (string, error) {
		return "direct", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "direct", got)
}
