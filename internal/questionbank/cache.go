package questionbank

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Cache memoizes successful loads by dataset name. Entries are never
// invalidated: a question set is fixed for the lifetime of the process.
// Failed loads are not cached, so a later call retries. Concurrent loads of
// the same name share one underlying call.
//
// Returned slices are shared and must not be modified.
type Cache struct {
	src   Source
	group singleflight.Group

	mu   sync.RWMutex
	sets map[string][]Question
}

// NewCache wraps src with memoization.
func NewCache(src Source) *Cache {
	return &Cache{
		src:  src,
		sets: make(map[string][]Question),
	}
}

// Load returns the named set, loading it from the source on first use.
// The shared load runs detached from any one caller's cancellation; each
// caller stops waiting when its own ctx is done.
func (c *Cache) Load(ctx context.Context, name string) ([]Question, error) {
	if qs, ok := c.Cached(name); ok {
		return qs, nil
	}

	loadCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(name, func() (any, error) {
		if qs, ok := c.Cached(name); ok {
			return qs, nil
		}
		qs, err := c.src.Load(loadCtx, name)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.sets[name] = qs
		c.mu.Unlock()
		return qs, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]Question), nil
	}
}

// Cached returns a previously loaded set without touching the source.
func (c *Cache) Cached(name string) ([]Question, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	qs, ok := c.sets[name]
	return qs, ok
}
