package config

import (
	"errors"
	"log/slog"
	"path/filepath"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Cache is a Provider that discovers the options file for each source file
// by walking up from its directory. Lookups are cached per directory and
// concurrent loads of the same file are collapsed into one.
type Cache struct {
	// Logger receives warnings about unreadable options files.
	Logger *slog.Logger

	group  singleflight.Group
	mu     sync.RWMutex
	byDir  map[string]*Config
	byPath map[string]*Config
}

// NewCache creates an empty Cache.
func NewCache(logger *slog.Logger) *Cache {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cache{
		Logger: logger,
		byDir:  make(map[string]*Config),
		byPath: make(map[string]*Config),
	}
}

// OptionsFor implements Provider.
func (c *Cache) OptionsFor(filename string) map[string]string {
	return c.ForDir(filepath.Dir(filename)).OptionsFor(filename)
}

// ForDir returns the configuration governing dir. A missing or broken
// options file yields Default; broken files are logged.
func (c *Cache) ForDir(dir string) *Config {
	c.mu.RLock()
	cfg, ok := c.byDir[dir]
	c.mu.RUnlock()
	if ok {
		return cfg
	}

	cfg = c.discover(dir)

	c.mu.Lock()
	c.byDir[dir] = cfg
	c.mu.Unlock()
	return cfg
}

func (c *Cache) discover(dir string) *Config {
	path, err := Find(dir)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			c.Logger.Warn("searching for options file", "dir", dir, "error", err)
		}
		return Default()
	}

	c.mu.RLock()
	cfg, ok := c.byPath[path]
	c.mu.RUnlock()
	if ok {
		return cfg
	}

	v, _, _ := c.group.Do(path, func() (any, error) {
		cfg, err := Load(path)
		if err != nil {
			c.Logger.Warn("ignoring options file", "path", path, "error", err)
			cfg = Default()
		}

		c.mu.Lock()
		c.byPath[path] = cfg
		c.mu.Unlock()
		return cfg, nil
	})
	return v.(*Config)
}
