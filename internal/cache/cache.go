// Package cache stores extracted article text between runs so repeated
// analyses of the same URL cost one fetch, not one per invocation.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache is the storage interface shared by all layers
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key derives a stable cache key from a source URL
func Key(url string) string {
	hash := sha256.Sum256([]byte(url))
	return "claimscope:v1:" + hex.EncodeToString(hash[:16])
}

// Layered fronts a disk cache with a memory cache. Reads check memory
// first and promote disk hits; writes go to both layers.
type Layered struct {
	memory Cache
	disk   Cache
}

// NewLayered builds the standard two-layer cache. An empty dir puts the
// disk layer under the user cache directory.
func NewLayered(memoryTTL time.Duration, dir string, diskTTL time.Duration) *Layered {
	return &Layered{
		memory: NewMemory(memoryTTL),
		disk:   NewDisk(dir, diskTTL),
	}
}

// Get checks memory, then disk
func (c *Layered) Get(key string) ([]byte, bool) {
	if val, found := c.memory.Get(key); found {
		return val, true
	}
	if val, found := c.disk.Get(key); found {
		_ = c.memory.Set(key, val, 0)
		return val, true
	}
	return nil, false
}

// Set stores in both layers
func (c *Layered) Set(key string, value []byte, ttl time.Duration) error {
	if err := c.memory.Set(key, value, ttl); err != nil {
		return err
	}
	return c.disk.Set(key, value, ttl)
}

// Delete removes from both layers
func (c *Layered) Delete(key string) error {
	_ = c.memory.Delete(key)
	return c.disk.Delete(key)
}

// Clear empties both layers
func (c *Layered) Clear() error {
	_ = c.memory.Clear()
	return c.disk.Clear()
}
