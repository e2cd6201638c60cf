package cache

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Disk persists cached payloads as files under a directory. Expiry is
// tracked through file modification times, so entries survive restarts
// without any index to maintain.
type Disk struct {
	dir string
	ttl time.Duration
}

// NewDisk creates a disk cache rooted at dir. An empty dir falls back
// to the user cache directory.
func NewDisk(dir string, ttl time.Duration) *Disk {
	if dir == "" {
		if base, err := os.UserCacheDir(); err == nil {
			dir = filepath.Join(base, "claimscope")
		} else {
			dir = filepath.Join(os.TempDir(), "claimscope-cache")
		}
	}
	_ = os.MkdirAll(dir, 0o755)
	return &Disk{dir: dir, ttl: ttl}
}

func (c *Disk) path(key string) string {
	// Keys may carry a namespace prefix with colons; keep filenames flat.
	name := strings.ReplaceAll(key, ":", "_")
	return filepath.Join(c.dir, name+".cache")
}

// Get retrieves a value if its file exists and has not expired
func (c *Disk) Get(key string) ([]byte, bool) {
	path := c.path(key)

	info, err := os.Stat(path)
	if err != nil {
		return nil, false
	}
	if c.ttl > 0 && time.Since(info.ModTime()) > c.ttl {
		_ = os.Remove(path)
		return nil, false
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	return data, true
}

// Set writes a value. The per-call ttl is ignored; the disk layer uses
// its configured TTL uniformly.
func (c *Disk) Set(key string, value []byte, _ time.Duration) error {
	return os.WriteFile(c.path(key), value, 0o644)
}

// Delete removes a value
func (c *Disk) Delete(key string) error {
	err := os.Remove(c.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Clear removes all cache files in the directory
func (c *Disk) Clear() error {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".cache") {
			continue
		}
		if err := os.Remove(filepath.Join(c.dir, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}
