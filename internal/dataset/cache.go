package dataset

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
)

// Source produces a dataset. *Loader implements it.
type Source interface {
	Load(ctx context.Context) (*Dataset, error)
}

// Cache memoizes the first Load of its source for the process lifetime.
// The first outcome, dataset or error, is returned to every later caller;
// there is no invalidation and no retry.
type Cache struct {
	source Source
	once   sync.Once
	ds     *Dataset
	err    error
	done   atomic.Bool
}

// NewCache wraps a source in a one-time cache.
func NewCache(source Source) *Cache {
	return &Cache{source: source}
}

// Get returns the cached dataset, loading it on the first call. Concurrent
// first callers block until that single load completes. Only the first
// caller's context is used.
func (c *Cache) Get(ctx context.Context) (*Dataset, error) {
	c.once.Do(func() {
		c.ds, c.err = c.source.Load(ctx)
		c.done.Store(true)
	})
	return c.ds, c.err
}

// CheckReadiness returns nil once the dataset has loaded successfully.
func (c *Cache) CheckReadiness(_ context.Context) error {
	if !c.done.Load() {
		return errors.New("dataset has not been loaded yet")
	}
	if c.err != nil {
		return fmt.Errorf("dataset load failed: %w", c.err)
	}
	return nil
}
