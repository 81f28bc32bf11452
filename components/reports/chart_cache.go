package reports

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2/expirable"
)

const defaultChartCacheSize = 256

// RenderCache memoizes rendered chart HTML so repeated renders are cheap.
type RenderCache interface {
	GetOrRender(key string, render func() (string, error)) (string, error)
}

// ChartCache is a size-bounded LRU of rendered charts with a TTL.
type ChartCache struct {
	entries *lru.LRU[string, string]
	hits    atomic.Int64
	misses  atomic.Int64
}

// NewChartCache builds a cache holding at most size entries for ttl each.
// A non-positive ttl disables caching and returns nil, which renders every time.
func NewChartCache(size int, ttl time.Duration) *ChartCache {
	if ttl <= 0 {
		return nil
	}
	if size <= 0 {
		size = defaultChartCacheSize
	}
	return &ChartCache{entries: lru.NewLRU[string, string](size, nil, ttl)}
}

// GetOrRender returns a cached entry or renders and stores a new one.
func (c *ChartCache) GetOrRender(key string, render func() (string, error)) (string, error) {
	if c == nil {
		return render()
	}
	if html, ok := c.entries.Get(key); ok {
		c.hits.Add(1)
		return html, nil
	}
	c.misses.Add(1)
	html, err := render()
	if err != nil {
		return "", err
	}
	c.entries.Add(key, html)
	return html, nil
}

// Stats returns hit and miss counts.
func (c *ChartCache) Stats() (hits, misses int64) {
	if c == nil {
		return 0, 0
	}
	return c.hits.Load(), c.misses.Load()
}

// Len returns the number of live entries.
func (c *ChartCache) Len() int {
	if c == nil {
		return 0
	}
	return c.entries.Len()
}

// contentHash returns a deterministic hash of the chart input.
func contentHash(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "invalid"
	}
	sum := sha1.Sum(b)
	return hex.EncodeToString(sum[:])
}
