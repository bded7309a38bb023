package dashboard

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
)

const defaultCacheSize = 8

// LoaderFunc reads a dataset from a resolved path.
type LoaderFunc func(ctx context.Context, path string) (*Dataset, error)

// DatasetCache keeps loaded datasets keyed by absolute path for the process lifetime.
type DatasetCache struct {
	entries *lru.Cache[string, *Dataset]
	load    LoaderFunc
	log     *zap.Logger
}

func NewDatasetCache(size int, load LoaderFunc, log *zap.Logger) (*DatasetCache, error) {
	if size <= 0 {
		size = defaultCacheSize
	}
	entries, err := lru.New[string, *Dataset](size)
	if err != nil {
		return nil, fmt.Errorf("create dataset cache: %w", err)
	}
	return &DatasetCache{entries: entries, load: load, log: log}, nil
}

// Get returns the cached dataset for path, loading it on first use.
// Failed loads are not cached.
func (c *DatasetCache) Get(ctx context.Context, path string) (*Dataset, error) {
	key := cacheKey(path)
	if dataset, ok := c.entries.Get(key); ok {
		return dataset, nil
	}

	dataset, err := c.load(ctx, path)
	if err != nil {
		return nil, err
	}
	c.entries.Add(key, dataset)
	c.log.Info("dataset loaded",
		zap.String("path", path),
		zap.Int("rows", len(dataset.Startups)),
	)
	return dataset, nil
}

func (c *DatasetCache) Len() int {
	return c.entries.Len()
}

func (c *DatasetCache) Purge() {
	c.entries.Purge()
}

// Watch purges the cache whenever a file in dir is written, created, removed or renamed,
// then calls onChange (if set) with the file name.
// It returns once the watcher is running and stops when ctx is done.
func (c *DatasetCache) Watch(ctx context.Context, dir string, onChange func(file string)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
					continue
				}
				c.Purge()
				c.log.Info("dataset cache invalidated",
					zap.String("file", event.Name),
					zap.String("op", event.Op.String()),
				)
				if onChange != nil {
					onChange(event.Name)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				c.log.Warn("dataset watcher error", zap.Error(err))
			}
		}
	}()
	return nil
}

func cacheKey(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}
