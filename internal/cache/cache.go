// Package cache memoizes compile results by snapshot content. Compilation is
// deterministic, so a hit is byte-identical to a fresh compile.
package cache

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/specialistvlad/blueprintgo/internal/compiler"
	"github.com/specialistvlad/blueprintgo/internal/model"
)

// DefaultSize is the number of results kept when no size is configured.
const DefaultSize = 256

// Cache is a thread-safe LRU of compile results.
type Cache struct {
	entries *lru.Cache[string, *compiler.Result]
}

// New creates a cache holding up to size results.
func New(size int) (*Cache, error) {
	if size <= 0 {
		size = DefaultSize
	}
	entries, err := lru.New[string, *compiler.Result](size)
	if err != nil {
		return nil, fmt.Errorf("create result cache: %w", err)
	}
	return &Cache{entries: entries}, nil
}

// Key derives the cache key of a snapshot compiled with opts.
func Key(snap *model.Snapshot, opts compiler.Options) (string, error) {
	h, err := model.Hash(snap)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s|%s|%s|%t|%t", h, opts.TargetNamespace, opts.ScriptType, opts.EmitComments, opts.AllowExecFanIn), nil
}

// Get returns the cached result for key.
func (c *Cache) Get(key string) (*compiler.Result, bool) {
	return c.entries.Get(key)
}

// Add stores a result.
func (c *Cache) Add(key string, res *compiler.Result) {
	c.entries.Add(key, res)
}

// Len returns the number of cached results.
func (c *Cache) Len() int {
	return c.entries.Len()
}

// Purge drops every entry.
func (c *Cache) Purge() {
	c.entries.Purge()
}
