package sheet

import (
	"context"
	"sync"
	"time"

	"github.com/dalemusser/presensihub/internal/app/system/timeouts"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// DefaultCacheTTL is how long worksheet values are served from memory.
const DefaultCacheTTL = 60 * time.Second

// CachedWorkbook serves Table.Values from a per-worksheet cache. Concurrent
// misses for the same worksheet share one backend read. Any write through a
// table drops that worksheet's entry, so this process always reads its own
// writes; changes made by other writers appear after at most ttl.
type CachedWorkbook struct {
	Workbook

	ttl   time.Duration
	log   *zap.Logger
	now   func() time.Time
	group singleflight.Group

	mu      sync.RWMutex
	entries map[string]cacheEntry
	gen     map[string]uint64 // bumped on every invalidation
}

type cacheEntry struct {
	values   [][]string
	loadedAt time.Time
}

// NewCachedWorkbook wraps wb. A ttl <= 0 uses DefaultCacheTTL.
func NewCachedWorkbook(wb Workbook, ttl time.Duration, logger *zap.Logger) *CachedWorkbook {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedWorkbook{
		Workbook: wb,
		ttl:      ttl,
		log:      logger,
		now:      time.Now,
		entries:  map[string]cacheEntry{},
		gen:      map[string]uint64{},
	}
}

func (c *CachedWorkbook) Table(ctx context.Context, name string) (Table, error) {
	t, err := c.Workbook.Table(ctx, name)
	if err != nil {
		return nil, err
	}
	return &cachedTable{Table: t, cache: c}, nil
}

func (c *CachedWorkbook) EnsureTable(ctx context.Context, name string, header []string) error {
	defer c.Invalidate(name)
	return c.Workbook.EnsureTable(ctx, name, header)
}

// Invalidate drops the cached values of one worksheet.
func (c *CachedWorkbook) Invalidate(name string) {
	c.mu.Lock()
	delete(c.entries, name)
	c.gen[name]++
	c.mu.Unlock()
}

// InvalidateAll empties the cache.
func (c *CachedWorkbook) InvalidateAll() {
	c.mu.Lock()
	for name := range c.entries {
		c.gen[name]++
	}
	c.entries = map[string]cacheEntry{}
	c.mu.Unlock()
}

func (c *CachedWorkbook) lookup(name string) ([][]string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[name]
	if !ok || c.now().Sub(e.loadedAt) >= c.ttl {
		return nil, false
	}
	return e.values, true
}

func (c *CachedWorkbook) generation(name string) uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.gen[name]
}

// store keeps values unless the worksheet was invalidated after the read
// began, which would mean values may predate a write.
func (c *CachedWorkbook) store(name string, values [][]string, at time.Time, gen uint64) {
	c.mu.Lock()
	if c.gen[name] == gen {
		c.entries[name] = cacheEntry{values: values, loadedAt: at}
	}
	c.mu.Unlock()
}

func (c *CachedWorkbook) load(ctx context.Context, t Table) ([][]string, error) {
	name := t.Name()
	gen, started := c.generation(name), c.now()
	vals, err := t.Values(ctx)
	if err != nil {
		return nil, err
	}
	c.store(name, vals, started, gen)
	return vals, nil
}

type cachedTable struct {
	Table
	cache *CachedWorkbook
}

func (t *cachedTable) Values(ctx context.Context) ([][]string, error) {
	name := t.Name()
	if !IsFresh(ctx) {
		if vals, ok := t.cache.lookup(name); ok {
			return vals, nil
		}
	}

	// Fresh reads never join a shared flight: one started before the
	// caller's last write could return stale rows.
	if IsFresh(ctx) {
		return t.cache.load(ctx, t.Table)
	}

	// The shared read outlives any one caller: it runs detached under its
	// own deadline, and each caller waits only as long as its own ctx allows.
	ch := t.cache.group.DoChan(name, func() (interface{}, error) {
		lctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeouts.Medium())
		defer cancel()
		return t.cache.load(lctx, t.Table)
	})
	select {
	case <-ctx.Done():
		return nil, connErr("read "+name, ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		if res.Shared {
			t.cache.log.Debug("sheet read coalesced", zap.String("table", name))
		}
		return res.Val.([][]string), nil
	}
}

func (t *cachedTable) Append(ctx context.Context, row []string) error {
	defer t.cache.Invalidate(t.Name())
	return t.Table.Append(ctx, row)
}

func (t *cachedTable) Update(ctx context.Context, position int, row []string) error {
	defer t.cache.Invalidate(t.Name())
	return t.Table.Update(ctx, position, row)
}

func (t *cachedTable) Delete(ctx context.Context, position int) error {
	defer t.cache.Invalidate(t.Name())
	return t.Table.Delete(ctx, position)
}
