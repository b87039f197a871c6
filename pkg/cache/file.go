package cache

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// FileCache persists download payloads under a directory, one JSON file per
// URL. It backs the default cache under ~/.cache/pagebinder so repeated
// fetches of the same PDF skip the network entirely.
//
// Keys are hashed before they touch the filesystem, so URLs with slashes,
// query strings, or other unsafe characters need no escaping.
type FileCache struct {
	dir string
	now func() time.Time
}

// NewFileCache creates a cache rooted at dir, creating it if needed.
func NewFileCache(dir string) (Cache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir, now: time.Now}, nil
}

// entry is the on-disk record for one cached download.
type entry struct {
	Payload   []byte    `json:"payload"`
	FetchedAt time.Time `json:"fetched_at"`
	Expires   time.Time `json:"expires,omitempty"`
}

// expired reports whether the entry's TTL has run out as of now. A zero
// Expires means the entry never expires.
func (e *entry) expired(now time.Time) bool {
	return !e.Expires.IsZero() && now.After(e.Expires)
}

// Get returns the payload cached for key. Expired and unreadable entries
// count as misses and are removed on the way out.
func (c *FileCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	path := c.path(key)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var e entry
	if err := json.Unmarshal(data, &e); err != nil || e.expired(c.now()) {
		_ = os.Remove(path)
		return nil, false, nil
	}
	return e.Payload, true, nil
}

// Set caches payload under key. The TTL typically comes from the
// [download] cache_ttl_hours config value; 0 keeps the entry forever.
func (c *FileCache) Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	e := entry{Payload: payload, FetchedAt: c.now()}
	if ttl > 0 {
		e.Expires = e.FetchedAt.Add(ttl)
	}

	data, err := json.Marshal(e)
	if err != nil {
		return err
	}

	path := c.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Delete drops the entry for key. Deleting a missing key is not an error.
func (c *FileCache) Delete(ctx context.Context, key string) error {
	err := os.Remove(c.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Close is a no-op; every operation opens and closes its own file.
func (c *FileCache) Close() error {
	return nil
}

// path maps a key to its entry file. The first two hex digits of the key
// hash shard entries across subdirectories so one cache directory never
// accumulates thousands of siblings.
func (c *FileCache) path(key string) string {
	hash := Hash([]byte(key))
	return filepath.Join(c.dir, hash[:2], hash[2:]+".json")
}

// Ensure FileCache implements Cache.
var _ Cache = (*FileCache)(nil)
