package client

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Cache persists the last successfully fetched data as JSON files so the
// store can fall back to it when the API is unreachable.
type Cache struct {
	dir string
}

// NewCache creates a cache rooted at dir, creating it if needed.
func NewCache(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("error creating cache directory: %w", err)
	}
	return &Cache{dir: dir}, nil
}

func (c *Cache) path(key string) string {
	return filepath.Join(c.dir, key+".json")
}

// Save stores v under key, replacing any previous value atomically.
func (c *Cache) Save(key string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding cache entry: %w", err)
	}

	tmp := c.path(key) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("error writing cache entry: %w", err)
	}
	if err := os.Rename(tmp, c.path(key)); err != nil {
		return fmt.Errorf("error committing cache entry: %w", err)
	}
	return nil
}

// Load reads the value stored under key into v. A missing entry returns
// os.ErrNotExist.
func (c *Cache) Load(key string, v interface{}) error {
	data, err := os.ReadFile(c.path(key))
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("error decoding cache entry: %w", err)
	}
	return nil
}
