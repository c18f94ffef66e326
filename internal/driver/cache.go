package driver

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"
)

// Bump when the payload format changes; stale entries are discarded.
const cacheSchemaVersion uint16 = 1

// Cache remembers, per content digest, that a document came through a run
// without rewrites or diagnostics. Unchanged clean files are skipped on
// the next run. Thread-safe for concurrent access.
type Cache struct {
	mu  sync.RWMutex
	dir string
}

// CachePayload is the stored record for one digest.
type CachePayload struct {
	Schema uint16
	Clean  bool
}

// OpenCache initializes the cache at the standard location
// ($XDG_CACHE_HOME/<app> or ~/.cache/<app>).
func OpenCache(app string) (*Cache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app, "docs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir}, nil
}

// OpenCacheAt initializes the cache in an explicit directory (tests).
func OpenCacheAt(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir}, nil
}

func (c *Cache) pathFor(digest [32]byte) string {
	return filepath.Join(c.dir, hex.EncodeToString(digest[:])+".bin")
}

// IsClean reports whether the digest was recorded clean by a prior run.
// Any read or decode problem counts as a miss, never an error.
func (c *Cache) IsClean(digest [32]byte) bool {
	if c == nil {
		return false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, err := os.ReadFile(c.pathFor(digest))
	if err != nil {
		return false
	}
	var payload CachePayload
	if err := msgpack.Unmarshal(data, &payload); err != nil {
		return false
	}
	return payload.Schema == cacheSchemaVersion && payload.Clean
}

// MarkClean records the digest as clean.
func (c *Cache) MarkClean(digest [32]byte) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	data, err := msgpack.Marshal(CachePayload{Schema: cacheSchemaVersion, Clean: true})
	if err != nil {
		return fmt.Errorf("cache: encode payload: %w", err)
	}
	tmp := c.pathFor(digest) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("cache: write payload: %w", err)
	}
	if err := os.Rename(tmp, c.pathFor(digest)); err != nil {
		return fmt.Errorf("cache: publish payload: %w", err)
	}
	return nil
}

// Invalidate removes the record for a digest if present.
func (c *Cache) Invalidate(digest [32]byte) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	err := os.Remove(c.pathFor(digest))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
