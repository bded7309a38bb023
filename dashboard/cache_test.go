package dashboard

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func countingLoader(calls *atomic.Int32) LoaderFunc {
	return func(ctx context.Context, path string) (*Dataset, error) {
		calls.Add(1)
		return &Dataset{Path: path, Startups: []Startup{{Name: "Acme"}}}, nil
	}
}

func TestDatasetCacheLoadsOnce(t *testing.T) {
	var calls atomic.Int32
	cache, err := NewDatasetCache(2, countingLoader(&calls), zap.NewNop())
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		dataset, err := cache.Get(context.Background(), "data/processed/processed_startups.csv")
		require.NoError(t, err)
		assert.Equal(t, "Acme", dataset.Startups[0].Name)
	}
	assert.EqualValues(t, 1, calls.Load())
	assert.Equal(t, 1, cache.Len())

	cache.Purge()
	_, err = cache.Get(context.Background(), "data/processed/processed_startups.csv")
	require.NoError(t, err)
	assert.EqualValues(t, 2, calls.Load())
}

func TestDatasetCacheDoesNotKeepFailures(t *testing.T) {
	var calls atomic.Int32
	cache, err := NewDatasetCache(2, func(ctx context.Context, path string) (*Dataset, error) {
		calls.Add(1)
		return nil, errors.New("corrupt file")
	}, zap.NewNop())
	require.NoError(t, err)

	_, err = cache.Get(context.Background(), "x.csv")
	assert.Error(t, err)
	_, err = cache.Get(context.Background(), "x.csv")
	assert.Error(t, err)
	assert.EqualValues(t, 2, calls.Load())
	assert.Equal(t, 0, cache.Len())
}

func TestDatasetCacheWatchInvalidates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "processed_startups.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o600))

	var calls atomic.Int32
	cache, err := NewDatasetCache(2, countingLoader(&calls), zap.NewNop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	changed := make(chan string, 8)
	require.NoError(t, cache.Watch(ctx, dir, func(file string) { changed <- file }))

	_, err = cache.Get(ctx, path)
	require.NoError(t, err)
	require.Equal(t, 1, cache.Len())

	require.NoError(t, os.WriteFile(path, []byte(sampleCSV+"Umbrella,1,web,USA,10,0\n"), 0o600))
	assert.Eventually(t, func() bool { return cache.Len() == 0 }, 2*time.Second, 10*time.Millisecond)

	select {
	case file := <-changed:
		assert.Equal(t, path, file)
	case <-time.After(2 * time.Second):
		t.Fatal("no change notification")
	}
}

func TestDatasetCacheWatchMissingDir(t *testing.T) {
	cache, err := NewDatasetCache(1, countingLoader(new(atomic.Int32)), zap.NewNop())
	require.NoError(t, err)
	assert.Error(t, cache.Watch(context.Background(), filepath.Join(t.TempDir(), "absent"), nil))
}
